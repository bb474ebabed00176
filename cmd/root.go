/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/fulmenhq/iconeat/internal/ops"
	"github.com/fulmenhq/iconeat/pkg/buildinfo"
	"github.com/fulmenhq/iconeat/pkg/config"
	"github.com/fulmenhq/iconeat/pkg/exitcode"
	"github.com/fulmenhq/iconeat/pkg/logger"
	"github.com/spf13/cobra"
)

// errCheckFailed is returned by commands whose check found problems. The
// problems themselves have already been logged.
var errCheckFailed = errors.New("check failed")

// configError marks failures to load configuration so Execute can exit
// with ConfigError.
type configError struct{ err error }

func (e *configError) Error() string { return e.err.Error() }
func (e *configError) Unwrap() error { return e.err }

// newRootCommand creates a fresh root command whose grouped help lists the
// commands of reg. Tests build isolated trees with their own registry.
func newRootCommand(reg *ops.Registry) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "iconeat",
		Short: "Maintain a line-art icon theme",
		Long: `Iconeat keeps an icon theme's mapping file, source SVGs and generated
variants consistent.

Examples:
   iconeat mapping validate          # Check mapping.yaml
   iconeat mapping validate --fix    # Sort and deduplicate mapping.yaml
   iconeat sync --fix                # Copy missing black/white icons
   iconeat search firefox            # Find installed icons for an app
   iconeat generate -c generate.toml # Build theme variants`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			initializeLogger(cmd)
		},
	}

	cmd.PersistentFlags().String("log-level", "info", "Set log level (trace|debug|info|warn|error)")
	cmd.PersistentFlags().Bool("json", false, "Output logs in JSON format")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	cmd.PersistentFlags().String("config", "", "Config file (default ./iconeat.yaml when present)")

	cmd.Version = buildinfo.BinaryVersion
	cmd.SetVersionTemplate("iconeat {{.Version}}\n")

	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if c != cmd {
			c.Println(c.Long)
			c.Println()
			c.Print(c.UsageString())
			return
		}
		c.Println(c.Long)
		c.Println()
		for _, group := range ops.Groups {
			regs := reg.GetCommandsByGroup(group)
			if len(regs) == 0 {
				continue
			}
			c.Println(group.Title() + ":")
			for _, r := range regs {
				c.Printf("  %-12s %s\n", r.Name, r.Description)
			}
			c.Println()
		}
		c.Println("Flags:")
		c.Print(c.LocalFlags().FlagUsages())
	})

	return cmd
}

// registerSubcommands adds every subcommand to cmd and records it in reg.
func registerSubcommands(cmd *cobra.Command, reg *ops.Registry) {
	subcommands := []struct {
		group ops.CommandGroup
		cmd   *cobra.Command
	}{
		{ops.GroupCheck, newMappingCommand()},
		{ops.GroupCheck, newSyncCommand()},
		{ops.GroupCheck, newDuplicatesCommand()},
		{ops.GroupTheme, newSearchCommand()},
		{ops.GroupTheme, newGenerateCommand()},
		{ops.GroupSupport, newVersionCommand()},
	}
	for _, sc := range subcommands {
		cmd.AddCommand(sc.cmd)
		if err := reg.Register(sc.cmd.Name(), sc.group, sc.cmd, sc.cmd.Short); err != nil {
			panic(fmt.Sprintf("Failed to register %s command: %v", sc.cmd.Name(), err))
		}
	}
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCommand(ops.GetRegistry())

func init() {
	registerSubcommands(rootCmd, ops.GetRegistry())
}

// Execute runs the root command and maps failures to exit codes. It is
// called by main.main().
func Execute() {
	os.Exit(run(rootCmd))
}

func run(cmd *cobra.Command) int {
	err := cmd.Execute()
	if err == nil {
		return exitcode.Success
	}
	var cfgErr *configError
	switch {
	case errors.Is(err, errCheckFailed):
		return exitcode.ValidationError
	case errors.As(err, &cfgErr):
		logger.Error("Invalid configuration", logger.Err(err))
		return exitcode.ConfigError
	default:
		logger.Error("Command execution failed", logger.Err(err))
		return exitcode.GeneralError
	}
}

// initializeLogger sets up the default logger from the global flags
func initializeLogger(cmd *cobra.Command) {
	logLevelStr, _ := cmd.Flags().GetString("log-level")
	jsonLogs, _ := cmd.Flags().GetBool("json")
	noColor, _ := cmd.Flags().GetBool("no-color")

	cfg := logger.Config{
		Level:     logger.ParseLevel(logLevelStr),
		UseColor:  !noColor,
		JSON:      jsonLogs,
		Component: "iconeat",
	}
	if err := logger.Initialize(cfg); err != nil {
		_, _ = os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(exitcode.ConfigError)
	}
	logger.SetOutput(cmd.ErrOrStderr())
}

// loadConfig reads the configuration named by --config, letting the given
// command flags override their keys.
func loadConfig(cmd *cobra.Command, bindings map[string]string) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	var binds []config.Binding
	for key, flag := range bindings {
		binds = append(binds, config.Binding{Key: key, Flag: cmd.Flags().Lookup(flag)})
	}
	cfg, err := config.LoadConfig(path, binds...)
	if err != nil {
		return nil, &configError{err: err}
	}
	return cfg, nil
}
