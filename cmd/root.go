package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/teemow/calendarctl/internal/api"
	"github.com/teemow/calendarctl/internal/command"
	"github.com/teemow/calendarctl/internal/config"
	"github.com/teemow/calendarctl/internal/google"
	"github.com/teemow/calendarctl/internal/instrumentation"
	"github.com/teemow/calendarctl/internal/logging"
	"github.com/teemow/calendarctl/internal/output"
	"github.com/teemow/calendarctl/internal/runner"
)

// Process exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// version will be set by main
var version = "dev"

// SetVersion sets the version reported by the version command and telemetry.
func SetVersion(v string) {
	version = v
}

// Execute runs the CLI with the process arguments and returns the exit code.
func Execute() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return run(ctx, os.Args[1:], os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := newApp(stdout, stderr)
	root := newRootCmd(a)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	a.close()

	if err == nil {
		return ExitOK
	}
	printError(stderr, err)
	if isUsageError(err) {
		fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", root.Name())
		return ExitUsage
	}
	return ExitError
}

// app holds the configuration and collaborators of one invocation.
// They are created lazily so that help and version never read a token.
type app struct {
	v      *viper.Viper
	stdout io.Writer
	stderr io.Writer

	// scopes overrides the per-service default scopes of every command.
	scopes []string

	cfg      *config.Config
	logger   *slog.Logger
	provider *instrumentation.Provider
	runner   *runner.Runner
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		v:      config.New(),
		stdout: stdout,
		stderr: stderr,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "calendarctl",
		Short: "Command-line client for the Google Calendar and Tasks APIs",
		Long: `calendarctl calls the Google Calendar v3 and Google Tasks v1 REST APIs
with an existing OAuth token file and prints each response as indented JSON.

The token file is created by an external consent flow. When it has expired
it is refreshed with its refresh token and rewritten in place.

It can run as:
  - A one-shot CLI (default)
  - An MCP (Model Context Protocol) server for AI assistants (serve)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.Context())
		},
	}
	root.Version = version
	root.SetVersionTemplate(`{{printf "calendarctl version %s\n" .Version}}`)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	flags := root.PersistentFlags()
	flags.String("token", "", fmt.Sprintf("Path to the OAuth token JSON (default %s). Can also use %s_TOKEN_PATH env var.", config.DefaultTokenPath, config.EnvPrefix))
	flags.StringSliceVar(&a.scopes, "scopes", nil, "OAuth scopes, comma or space separated (default: the service's scopes)")
	flags.String("config", "", "Config file (default ~/.config/"+config.DirName+"/config.yaml)")
	flags.Bool("debug", false, "Enable debug logging")
	flags.String("log-level", "", "Log level: debug, info, warn or error")

	bindFlag(a.v, config.KeyTokenPath, flags.Lookup("token"))
	bindFlag(a.v, config.KeyConfigFile, flags.Lookup("config"))
	bindFlag(a.v, config.KeyDebug, flags.Lookup("debug"))
	bindFlag(a.v, config.KeyLogLevel, flags.Lookup("log-level"))

	root.AddCommand(newCallCmd(a, "call"))
	addCalendarCommands(root, a)
	addTasksCommands(root, a)
	root.AddCommand(newServeCmd(a))
	root.AddCommand(newGenerateDocsCmd(a))
	root.AddCommand(newVersionCmd())

	return root
}

// init loads the configuration and builds the runner.
func (a *app) init(ctx context.Context) error {
	if a.runner != nil {
		return nil
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	cfg.Instrumentation.ServiceVersion = version
	a.cfg = cfg
	a.logger = logging.New(cfg.LogLevel, a.stderr)
	if cfg.ConfigFile != "" {
		a.logger.Debug("loaded config file", logging.Path(cfg.ConfigFile))
	}

	a.provider, err = instrumentation.NewProvider(ctx, cfg.Instrumentation)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	metrics := a.provider.Metrics()

	var audit *instrumentation.AuditLogger
	if cfg.Instrumentation.AuditLogging.Enabled {
		audit = instrumentation.NewAuditLogger(a.logger, cfg.Instrumentation.AuditLogging)
	}

	a.runner, err = runner.New(runner.Config{
		Settings: cfg,
		Tokens: google.NewStore(google.StoreConfig{
			Logger:  a.logger,
			Metrics: metrics,
		}),
		Dispatcher: api.NewDispatcher(api.Config{
			Logger:    a.logger,
			Metrics:   metrics,
			UserAgent: "calendarctl/" + version,
		}),
		Metrics: metrics,
		Audit:   audit,
		Logger:  a.logger,
	})
	return err
}

// close flushes telemetry. It is safe to call when init never ran.
func (a *app) close() {
	if a.provider == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.provider.Shutdown(ctx); err != nil {
		a.logger.Warn("instrumentation shutdown failed", logging.Err(err))
	}
}

// auth returns the credential selection given by the persistent flags.
// The token path reaches the runner through the configuration.
func (a *app) auth() command.Auth {
	var scopes []string
	for _, s := range a.scopes {
		scopes = append(scopes, strings.Fields(s)...)
	}
	return command.Auth{Scopes: scopes}
}

// execute runs c and prints its payload.
func (a *app) execute(ctx context.Context, c command.Command) error {
	payload, err := a.runner.Run(ctx, c)
	if err != nil {
		return err
	}
	return output.JSON(a.stdout, payload)
}

// usageError marks command-line parsing failures.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// usageArgs marks argument count failures as usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return &usageError{err: err}
		}
		return nil
	}
}

func isUsageError(err error) bool {
	var ue *usageError
	if errors.As(err, &ue) {
		return true
	}
	// cobra reports these without a hook.
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command ") || strings.HasPrefix(msg, "required flag(s) ")
}

// printError writes err with the uniform "Error: " prefix, coloured when
// w is a terminal.
func printError(w io.Writer, err error) {
	prefix := color.New(color.FgRed, color.Bold)
	if f, ok := w.(*os.File); !ok || !isatty.IsTerminal(f.Fd()) {
		prefix.DisableColor()
	} else {
		prefix.EnableColor()
	}
	prefix.Fprint(w, "Error: ")
	fmt.Fprintln(w, err)
}

func bindFlag(v *viper.Viper, key string, flag *pflag.Flag) {
	// BindPFlag only fails for a nil flag.
	_ = v.BindPFlag(key, flag)
}
