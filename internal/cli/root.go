// Package cli provides the command-line interface for ccnotify.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/xabinapal/ccnotify/internal/config"
	"github.com/xabinapal/ccnotify/internal/event"
	"github.com/xabinapal/ccnotify/internal/logging"
	"github.com/xabinapal/ccnotify/internal/notify"
)

// CLI holds the application state for the CLI.
type CLI struct {
	Config  *config.Config
	Logger  *logging.Logger
	rootCmd *cobra.Command

	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	backend notify.Backend

	// Flags
	configFlag  string
	historyFlag string
	verboseFlag bool
	dryRunFlag  bool
	outputFlag  string
}

// Option configures a CLI.
type Option func(*CLI)

// WithIO replaces the standard streams (for testing).
func WithIO(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(cli *CLI) {
		cli.stdin = stdin
		cli.stdout = stdout
		cli.stderr = stderr
	}
}

// WithBackend sets the notification backend (for testing).
func WithBackend(backend notify.Backend) Option {
	return func(cli *CLI) {
		cli.backend = backend
	}
}

// New creates a new CLI instance.
func New(opts ...Option) *CLI {
	cli := &CLI{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		Logger: logging.Nop(),
	}

	for _, opt := range opts {
		opt(cli)
	}

	cli.rootCmd = &cobra.Command{
		Use:   "ccnotify",
		Short: "ccnotify - desktop notifications for Claude Code",
		Long: `ccnotify is a Claude Code Notification hook. It reads the hook event
from standard input and raises a native desktop notification.

The title names the kind of notification and the project. When the session
can be found in the Claude Code history log, its first prompt is shown above
the message.

Configure it in ~/.claude/settings.json:

  "hooks": {
    "Notification": [
      {"hooks": [{"type": "command", "command": "ccnotify"}]}
    ]
  }`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.initialize(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.runHook()
		},
	}

	cli.rootCmd.SetIn(cli.stdin)
	cli.rootCmd.SetOut(cli.stdout)
	cli.rootCmd.SetErr(cli.stderr)

	// Global flags
	cli.rootCmd.PersistentFlags().StringVarP(&cli.configFlag, "config", "c", "", "Path to the configuration file")
	cli.rootCmd.PersistentFlags().BoolVarP(&cli.verboseFlag, "verbose", "v", false, "Enable debug logging")
	cli.rootCmd.PersistentFlags().StringVarP(&cli.outputFlag, "output", "o", "text", "Output format (text, json)")

	cli.rootCmd.PersistentFlags().StringVar(&cli.historyFlag, "history-file", "", "Claude Code history log (overrides config)")

	// Hook flags
	cli.rootCmd.Flags().BoolVar(&cli.dryRunFlag, "dry-run", false, "Print the notification instead of showing it")

	// Add commands
	cli.addCommands()

	return cli
}

// addCommands adds all subcommands to the root command.
func (cli *CLI) addCommands() {
	cli.rootCmd.AddCommand(
		cli.newVersionCmd(),
		cli.newConfigCmd(),
		cli.newCompletionCmd(),
	)
}

// initialize loads configuration and sets up logging.
func (cli *CLI) initialize(cmd *cobra.Command) error {
	// Skip initialization for commands that need no configuration
	switch cmd.Name() {
	case "version", "completion", "path", "init":
		return nil
	}

	cfg, err := cli.loadConfig()
	if err != nil {
		if cmd != cli.rootCmd {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		// The hook must still notify, so fall back to defaults.
		fmt.Fprintf(cli.stderr, "Warning: failed to load configuration, using defaults: %v\n", err)
		cfg = config.Default()
	}
	cli.Config = cfg

	logCfg := logging.Config{
		Level:    cfg.Log.Level,
		FilePath: cfg.Log.File,
		JSON:     cfg.Log.JSON,
		Out:      cli.stderr,
	}
	if cli.verboseFlag {
		logCfg.Level = "debug"
	}

	logger, err := logging.New(logCfg)
	if err != nil {
		// Logging must never block a notification
		fmt.Fprintf(cli.stderr, "Warning: %v\n", err)
		logCfg.FilePath = ""
		if logger, err = logging.New(logCfg); err != nil {
			return err
		}
	}
	cli.Logger = logger

	return nil
}

// loadConfig loads the configuration from --config or the default location.
func (cli *CLI) loadConfig() (*config.Config, error) {
	if cli.configFlag != "" {
		return config.LoadFrom(cli.configFlag)
	}
	return config.Load()
}

// runHook reads one notification event from stdin and dispatches it.
func (cli *CLI) runHook() error {
	req, err := event.Parse(cli.stdin)
	if err != nil {
		return fmt.Errorf("failed to read notification: %w", err)
	}

	cli.Logger.Debug().
		Stringer("kind", req.Kind()).
		Str("cwd", req.Cwd).
		Str("session_id", req.SessionID).
		Msg("notification received")

	opts := []notify.Option{
		notify.WithLogger(cli.Logger.Logger),
		notify.WithHistoryFile(cli.historyFlag),
	}
	if cli.backend != nil {
		opts = append(opts, notify.WithBackend(cli.backend))
	}
	n := notify.New(cli.Config, opts...)

	if cli.dryRunFlag {
		return cli.printNotification(n.Prepare(req))
	}

	// The dispatch result is not part of the hook's outcome.
	_, _ = n.Send(req)
	return nil
}

// printNotification writes a composed notification instead of showing it.
func (cli *CLI) printNotification(nt notify.Notification) error {
	format, err := ParseOutputFormat(cli.outputFlag)
	if err != nil {
		return err
	}

	writer := NewOutputWriter(format, cli.stdout)
	return writer.Write(nt, func(w io.Writer) {
		fmt.Fprintf(w, "Title:   %s\n", nt.Title)
		fmt.Fprintf(w, "Message: %s\n", nt.Message)
		fmt.Fprintf(w, "Sound:   %t\n", nt.Sound)
	})
}

// Execute runs the CLI.
func (cli *CLI) Execute(ctx context.Context) error {
	defer func() {
		_ = cli.Logger.Close()
	}()
	return cli.rootCmd.ExecuteContext(ctx)
}

// SetArgs overrides the command-line arguments (for testing).
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}
