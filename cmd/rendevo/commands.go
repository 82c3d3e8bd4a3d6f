package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	rendevo "github.com/rendevo/client-go"
)

func (a *app) loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and print the issued tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.client.Auth.Login(cmd.Context(), email, password)
			if err != nil {
				return fmt.Errorf("login: %w", err)
			}
			return a.printAuth(resp)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (a *app) registerCmd() *cobra.Command {
	var req rendevo.RegisterRequest
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and print the issued tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.client.Auth.Register(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("register: %w", err)
			}
			return a.printAuth(resp)
		},
	}
	cmd.Flags().StringVar(&req.Email, "email", "", "account email")
	cmd.Flags().StringVar(&req.Password, "password", "", "account password")
	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "last name")
	for _, name := range []string{"email", "password", "first-name", "last-name"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func (a *app) refreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Exchange the refresh token for a new token pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.client.Auth.Refresh(cmd.Context(), "")
			if err != nil {
				return fmt.Errorf("refresh: %w", err)
			}
			return a.printAuth(resp)
		},
	}
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the refresh token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.client.Auth.Logout(cmd.Context(), "")
			if err != nil {
				return fmt.Errorf("logout: %w", err)
			}
			return a.printMessage(resp)
		},
	}
}

func (a *app) forgotPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forgot-password EMAIL",
		Short: "Request a password reset email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.client.Auth.ForgotPassword(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("forgot password: %w", err)
			}
			return a.printMessage(resp)
		},
	}
}

func (a *app) resetPasswordCmd() *cobra.Command {
	var token, password string
	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Set a new password with a reset token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.client.Auth.ResetPassword(cmd.Context(), token, password)
			if err != nil {
				return fmt.Errorf("reset password: %w", err)
			}
			return a.printMessage(resp)
		},
	}
	cmd.Flags().StringVar(&token, "reset-token", "", "reset token from the email")
	cmd.Flags().StringVar(&password, "new-password", "", "new password")
	_ = cmd.MarkFlagRequired("reset-token")
	_ = cmd.MarkFlagRequired("new-password")
	return cmd
}

func (a *app) verifyEmailCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify-email TOKEN",
		Short: "Confirm an email address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.client.Auth.VerifyEmail(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("verify email: %w", err)
			}
			return a.printMessage(resp)
		},
	}
}

func (a *app) resendVerificationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resend-verification EMAIL",
		Short: "Send a new verification email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.client.Auth.ResendVerification(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("resend verification: %w", err)
			}
			return a.printMessage(resp)
		},
	}
}

func (a *app) usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage users",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List all users",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				users, err := a.client.Users.List(cmd.Context())
				if err != nil {
					return fmt.Errorf("list users: %w", err)
				}
				return a.printUsers(users)
			},
		},
		&cobra.Command{
			Use:   "get ID",
			Short: "Show a user",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				user, err := a.client.Users.Get(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("get user: %w", err)
				}
				return a.printUser(user)
			},
		},
		&cobra.Command{
			Use:   "me",
			Short: "Show the authenticated user",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				user, err := a.client.Users.Me(cmd.Context())
				if err != nil {
					return fmt.Errorf("get current user: %w", err)
				}
				return a.printUser(user)
			},
		},
		a.userUpdateCmd(),
		a.waitVerifiedCmd(),
		&cobra.Command{
			Use:   "delete ID",
			Short: "Delete a user",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.client.Users.Delete(cmd.Context(), args[0]); err != nil {
					return fmt.Errorf("delete user: %w", err)
				}
				fmt.Fprintf(a.cfg.Stdout, "deleted %s\n", args[0])
				return nil
			},
		},
	)
	return cmd
}

// userUpdateCmd sends only the fields whose flags were given.
func (a *app) userUpdateCmd() *cobra.Command {
	var (
		email, firstName, lastName, role string
		active                           bool
	)
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			var req rendevo.UpdateUserRequest
			if flags.Changed("email") {
				req.Email = &email
			}
			if flags.Changed("first-name") {
				req.FirstName = &firstName
			}
			if flags.Changed("last-name") {
				req.LastName = &lastName
			}
			if flags.Changed("active") {
				req.IsActive = &active
			}
			if flags.Changed("role") {
				r := rendevo.Role(role)
				if r != rendevo.RoleUser && r != rendevo.RoleAdmin {
					return fmt.Errorf("invalid role %q: want %s or %s", role, rendevo.RoleUser, rendevo.RoleAdmin)
				}
				req.Role = &r
			}

			user, err := a.client.Users.Update(cmd.Context(), args[0], req)
			if err != nil {
				return fmt.Errorf("update user: %w", err)
			}
			return a.printUser(user)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "new email")
	cmd.Flags().StringVar(&firstName, "first-name", "", "new first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "new last name")
	cmd.Flags().StringVar(&role, "role", "", "new role (USER, ADMIN)")
	cmd.Flags().BoolVar(&active, "active", false, "whether the account is active")
	return cmd
}

func (a *app) waitVerifiedCmd() *cobra.Command {
	var wait, interval time.Duration
	cmd := &cobra.Command{
		Use:   "wait-verified",
		Short: "Wait until the authenticated user's email is verified",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.log.Info().Dur("wait", wait).Msg("waiting for email verification")
			user, err := a.client.Users.WaitForVerification(cmd.Context(),
				rendevo.WithWaitTimeout(wait),
				rendevo.WithPollInterval(interval),
			)
			if err != nil {
				return fmt.Errorf("wait for verification: %w", err)
			}
			return a.printUser(user)
		},
	}
	cmd.Flags().DurationVar(&wait, "wait", 5*time.Minute, "how long to wait")
	cmd.Flags().DurationVar(&interval, "interval", 2*time.Second, "first delay between checks")
	return cmd
}
