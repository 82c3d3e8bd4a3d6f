package rendevo

import (
	"context"
	"errors"
	"time"

	"github.com/rendevo/client-go/internal/api"
	"github.com/rendevo/client-go/internal/poll"
)

const defaultWaitTimeout = 5 * time.Minute

// WaitOption configures WaitForVerification.
type WaitOption func(*waitConfig)

type waitConfig struct {
	timeout  time.Duration
	interval time.Duration
}

// WithWaitTimeout bounds the whole wait.
// Default: 5 minutes
func WithWaitTimeout(timeout time.Duration) WaitOption {
	return func(c *waitConfig) {
		c.timeout = timeout
	}
}

// WithPollInterval sets the first delay between checks. Later delays grow
// by 1.5x up to 30 seconds.
// Default: 2 seconds
func WithPollInterval(interval time.Duration) WaitOption {
	return func(c *waitConfig) {
		c.interval = interval
	}
}

// WaitForVerification polls /users/me until the authenticated user's email
// is verified and returns that user. Network failures, timeouts and 5xx
// responses are tolerated between checks; any other error ends the wait.
// If the wait times out, the context error is returned.
//
// Example:
//
//	client.Auth.ResendVerification(ctx, email)
//	user, err := client.Users.WaitForVerification(ctx, rendevo.WithWaitTimeout(10*time.Minute))
func (s *UserService) WaitForVerification(ctx context.Context, opts ...WaitOption) (*User, error) {
	cfg := &waitConfig{
		timeout:  defaultWaitTimeout,
		interval: poll.InitialInterval,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	pollCfg := poll.DefaultConfig()
	pollCfg.Interval = cfg.interval
	pollCfg.ContinueOn = transientError

	var verified *User
	err := poll.Until(ctx, pollCfg, func(ctx context.Context) (bool, error) {
		user, err := s.api.GetMe(ctx)
		if err != nil {
			return false, err
		}
		if user.EmailVerifiedAt == nil {
			return false, nil
		}
		verified = user
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return verified, nil
}

func transientError(err error) bool {
	var timeoutErr *TimeoutError
	return api.IsRetryable(err) || errors.As(err, &timeoutErr)
}
