package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	rendevo "github.com/rendevo/client-go"
	"github.com/rendevo/client-go/internal/logger"
)

// Config holds the process-level inputs of the CLI.
type Config struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// Home is searched for .rendevo.yaml. Empty skips the lookup.
	Home string
	// EnvFile is loaded into the environment before flags are read.
	// Empty skips it; a missing file is not an error.
	EnvFile string
}

// DefaultConfig returns the configuration used by main.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Home:    home,
		EnvFile: ".env",
	}
}

// app is the state shared by all subcommands once the root command has
// resolved configuration.
type app struct {
	cfg    *Config
	v      *viper.Viper
	log    zerolog.Logger
	client *rendevo.Client
}

func run(ctx context.Context, args []string, cfg *Config) error {
	cmd := newRootCmd(cfg)
	cmd.SetArgs(args)
	cmd.SetIn(cfg.Stdin)
	cmd.SetOut(cfg.Stdout)
	cmd.SetErr(cfg.Stderr)
	return cmd.ExecuteContext(ctx)
}

func newRootCmd(cfg *Config) *cobra.Command {
	a := &app{cfg: cfg, v: viper.New()}

	root := &cobra.Command{
		Use:           "rendevo",
		Short:         "Command-line client for the Rendevo auth and user API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default $HOME/.rendevo.yaml)")
	flags.String("url", "", "API base URL")
	flags.String("token", "", "access token")
	flags.String("refresh-token", "", "refresh token")
	flags.Duration("timeout", 10*time.Second, "per-attempt request timeout")
	flags.Bool("no-retry", false, "make exactly one attempt per request")
	flags.StringP("output", "o", "table", "output format (table, json)")
	flags.String("log-level", "warn", "log level (trace, debug, info, warn, error)")
	flags.String("log-format", "console", "log format (console, json)")
	_ = a.v.BindPFlags(flags)

	root.AddCommand(
		a.loginCmd(),
		a.registerCmd(),
		a.refreshCmd(),
		a.logoutCmd(),
		a.forgotPasswordCmd(),
		a.resetPasswordCmd(),
		a.verifyEmailCmd(),
		a.resendVerificationCmd(),
		a.usersCmd(),
	)
	return root
}

// setup loads .env, the config file and the environment, then builds the
// logger and the API client.
func (a *app) setup() error {
	if a.cfg.EnvFile != "" {
		if err := godotenv.Load(a.cfg.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", a.cfg.EnvFile, err)
		}
	}

	a.v.SetEnvPrefix("RENDEVO")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if err := a.readConfigFile(); err != nil {
		return err
	}

	logEnv := "production"
	if a.v.GetString("log-format") == "console" {
		logEnv = "development"
	}
	log, err := logger.New(logger.Config{
		Level: a.v.GetString("log-level"),
		Env:   logEnv,
		Out:   a.cfg.Stderr,
	})
	if err != nil {
		log.Warn().Err(err).Msg("using default log level")
	}
	a.log = log

	retries := rendevo.RetriesDefault
	if a.v.GetBool("no-retry") {
		retries = rendevo.RetriesDisabled
	}

	client, err := rendevo.New(a.v.GetString("url"),
		rendevo.WithTimeout(a.v.GetDuration("timeout")),
		rendevo.WithRetries(retries),
		rendevo.WithLogger(log),
	)
	if err != nil {
		if errors.Is(err, rendevo.ErrMissingBaseURL) {
			return fmt.Errorf("no API URL: set --url, RENDEVO_URL or url in the config file")
		}
		return fmt.Errorf("create client: %w", err)
	}
	if token := a.v.GetString("token"); token != "" {
		client.SetToken(token)
	}
	if refresh := a.v.GetString("refresh-token"); refresh != "" {
		client.SetRefreshToken(refresh)
	}
	a.client = client

	a.log.Debug().
		Str("url", client.BaseURL()).
		Dur("timeout", client.Timeout()).
		Str("retries", retries.String()).
		Msg("client ready")
	return nil
}

func (a *app) readConfigFile() error {
	if path := a.v.GetString("config"); path != "" {
		a.v.SetConfigFile(path)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
		return nil
	}
	if a.cfg.Home == "" {
		return nil
	}

	a.v.SetConfigName(".rendevo")
	a.v.SetConfigType("yaml")
	a.v.AddConfigPath(a.cfg.Home)
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", filepath.Join(a.cfg.Home, ".rendevo.yaml"), err)
	}
	return nil
}

func (a *app) jsonOutput() bool {
	return a.v.GetString("output") == "json"
}
