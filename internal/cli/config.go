package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/xabinapal/ccnotify/internal/config"
)

// configPathOutput represents config path output for JSON.
type configPathOutput struct {
	ConfigFile    string `json:"config_file"`
	ConfigDir     string `json:"config_dir"`
	DataDir       string `json:"data_dir"`
	HistoryFile   string `json:"history_file"`
	ConfigExists  bool   `json:"config_exists"`
	HistoryExists bool   `json:"history_exists"`
}

// newConfigCmd creates the config command group.
func (cli *CLI) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage ccnotify configuration",
		Long: `Manage ccnotify configuration files and settings.

Use 'ccnotify config init' to write a default configuration file.
Use 'ccnotify config path' to see configuration file locations.
Use 'ccnotify config show' to print the effective configuration.`,
	}

	cmd.AddCommand(
		cli.newConfigInitCmd(),
		cli.newConfigPathCmd(),
		cli.newConfigShowCmd(),
	)

	return cmd
}

// configFilePath returns the configuration file in use.
func (cli *CLI) configFilePath() string {
	if cli.configFlag != "" {
		return cli.configFlag
	}
	return config.GetPaths().ConfigFile
}

// historyFilePath returns the history log the hook would read: the
// --history-file flag, then history_file from the configuration.
// An unreadable configuration leaves the default path in place.
func (cli *CLI) historyFilePath(paths config.Paths) string {
	if cli.historyFlag != "" {
		return cli.historyFlag
	}
	if cfg, err := cli.loadConfig(); err == nil {
		return cfg.HistoryFile
	}
	return paths.HistoryFile
}

// newConfigInitCmd creates the config init command.
func (cli *CLI) newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cli.configFilePath()

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("configuration file %s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("failed to check configuration file: %w", err)
			}

			if err := config.GetPaths().EnsureDirs(); err != nil {
				return fmt.Errorf("failed to create directories: %w", err)
			}

			cfg := config.Default()
			cfg.SetFilePath(path)

			if err := cfg.Save(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing configuration file")

	return cmd
}

// newConfigPathCmd creates the config path command.
func (cli *CLI) newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show configuration file paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := ParseOutputFormat(cli.outputFlag)
			if err != nil {
				return err
			}

			paths := config.GetPaths()
			configFile := cli.configFilePath()
			historyFile := cli.historyFilePath(paths)

			_, configErr := os.Stat(configFile)
			_, historyErr := os.Stat(historyFile)
			output := configPathOutput{
				ConfigFile:    configFile,
				ConfigDir:     paths.ConfigDir,
				DataDir:       paths.DataDir,
				HistoryFile:   historyFile,
				ConfigExists:  configErr == nil,
				HistoryExists: historyErr == nil,
			}

			writer := NewOutputWriter(format, cmd.OutOrStdout())
			return writer.Write(output, func(w io.Writer) {
				fmt.Fprintln(w, "Configuration paths:")
				fmt.Fprintf(w, "  Config file:  %s\n", output.ConfigFile)
				fmt.Fprintf(w, "  Config dir:   %s\n", output.ConfigDir)
				fmt.Fprintf(w, "  Data dir:     %s\n", output.DataDir)
				fmt.Fprintf(w, "  History log:  %s\n", output.HistoryFile)

				fmt.Fprintln(w, "\nStatus:")
				if output.ConfigExists {
					fmt.Fprintln(w, "  Config file exists")
				} else {
					fmt.Fprintln(w, "  Config file does not exist (defaults in use)")
				}
				if output.HistoryExists {
					fmt.Fprintln(w, "  History log exists")
				} else {
					fmt.Fprintln(w, "  History log does not exist (session labels disabled)")
				}
			})
		},
	}
}

// newConfigShowCmd creates the config show command.
func (cli *CLI) newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := ParseOutputFormat(cli.outputFlag)
			if err != nil {
				return err
			}

			if format == OutputFormatJSON {
				return NewOutputWriter(format, cmd.OutOrStdout()).WriteJSON(cli.Config)
			}

			data, err := cli.Config.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
