package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	_ "time/tzdata"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/XGenerationLab/XiYan-DateResolver/internal/config"
	"github.com/XGenerationLab/XiYan-DateResolver/internal/output"
	"github.com/XGenerationLab/XiYan-DateResolver/internal/plugin"
	"github.com/XGenerationLab/XiYan-DateResolver/libdate"
)

var (
	configMgr *config.Manager
	cfg       *config.Config
	rootCmd   = &cobra.Command{
		Use:   "xiyandate",
		Short: "Resolve Chinese time expressions into literal dates",
		Long: `xiyandate resolves Chinese time expressions such as "去年本季度", "近3个完整月"
or "本月第2周" into literal dates and date ranges relative to today.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")

			var err error
			configMgr, err = config.NewManager(path)
			if err != nil {
				return fmt.Errorf("failed to initialize config manager: %w", err)
			}
			if err := bindFlags(cmd); err != nil {
				return err
			}
			cfg, err = configMgr.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// If no subcommand is provided, show help
			if len(args) == 0 {
				return cmd.Help()
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: false,
	}
)

// flagKeys maps command-line flags onto configuration keys.
var flagKeys = map[string]string{
	"workers":            config.KeyWorkers,
	"header":             config.KeyHeader,
	"last-complete-week": config.KeyLastCompleteWeek,
	"addr":               config.KeyServerAddr,
}

func bindFlags(cmd *cobra.Command) error {
	for name, key := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			continue
		}
		if err := configMgr.Viper().BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind --%s: %w", name, err)
		}
	}
	return nil
}

func newLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(cfg.Level()).
		With().
		Timestamp().
		Logger()
}

func newEngine(logger zerolog.Logger) *libdate.Engine {
	return libdate.NewEngine(
		libdate.WithLogger(logger),
		libdate.WithWorkers(cfg.Workers),
		libdate.WithLastCompleteWeek(cfg.LastCompleteWeek),
	)
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.xiyandate/config.yaml)")

	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(commentCmd)
	rootCmd.AddCommand(patternsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(pluginsCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Manage xiyandate configuration settings`,
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set configuration values",
	Long:  `Persist configuration values like the time zone or worker count to the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		values := make(map[string]any)
		flags := cmd.Flags()

		if flags.Changed("timezone") {
			values[config.KeyTimezone], _ = flags.GetString("timezone")
		}
		if flags.Changed("workers") {
			values[config.KeyWorkers], _ = flags.GetInt("workers")
		}
		if flags.Changed("output") {
			values[config.KeyOutput], _ = flags.GetString("output")
		}
		if flags.Changed("log-level") {
			values[config.KeyLogLevel], _ = flags.GetString("log-level")
		}
		if flags.Changed("header") {
			values[config.KeyHeader], _ = flags.GetBool("header")
		}
		if flags.Changed("last-complete-week") {
			values[config.KeyLastCompleteWeek], _ = flags.GetBool("last-complete-week")
		}
		if flags.Changed("addr") {
			values[config.KeyServerAddr], _ = flags.GetString("addr")
		}
		if len(values) == 0 {
			return fmt.Errorf("nothing to set. See 'xiyandate config set --help'")
		}

		if err := configMgr.Save(values); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		jsonOutput, _ := flags.GetBool("json")
		if jsonOutput {
			msg := fmt.Sprintf("Configuration saved to %s", configMgr.Path())
			return output.WriteJSON(cmd.OutOrStdout(), output.FormatActionResponse(true, msg))
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Configuration saved successfully!")
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the effective configuration: defaults, config file and XIYANDATE_* environment overrides`,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json")
		if jsonOutput {
			return output.WriteJSON(cmd.OutOrStdout(), cfg)
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Config file: %s\n", configMgr.Path())
		fmt.Fprintf(w, "Timezone: %s\n", cfg.Timezone)
		fmt.Fprintf(w, "Workers: %d\n", cfg.Workers)
		fmt.Fprintf(w, "Output: %s\n", cfg.Output)
		fmt.Fprintf(w, "Header: %t\n", cfg.Header)
		fmt.Fprintf(w, "Log level: %s\n", cfg.LogLevel)
		fmt.Fprintf(w, "Last complete week: %t\n", cfg.LastCompleteWeek)
		fmt.Fprintf(w, "Server address: %s\n", cfg.Server.Addr)
		fmt.Fprintf(w, "Shutdown timeout: %s\n", cfg.Server.ShutdownTimeout)

		return nil
	},
}

var pluginsCmd = &cobra.Command{
	Use:   "plugins",
	Short: "List available plugins",
	Long:  `List all available xiyandate-* plugins in PATH`,
	RunE: func(cmd *cobra.Command, args []string) error {
		plugins, err := plugin.ListPlugins()
		if err != nil {
			return fmt.Errorf("failed to list plugins: %w", err)
		}

		if len(plugins) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No plugins found in PATH")
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Available plugins:")
		for _, p := range plugins {
			fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", p)
		}

		return nil
	},
}

func init() {
	configSetCmd.Flags().String("timezone", "", "IANA time zone used for today (e.g. Asia/Shanghai, Local)")
	configSetCmd.Flags().Int("workers", 0, "Number of expressions resolved concurrently")
	configSetCmd.Flags().String("output", "", "Default output format (text or json)")
	configSetCmd.Flags().String("log-level", "", "Log level (debug, info, warn, error)")
	configSetCmd.Flags().Bool("header", false, "Prepend the today header to resolve output")
	configSetCmd.Flags().Bool("last-complete-week", false, "Recognize \"本月最后一个完整周\" expressions")
	configSetCmd.Flags().String("addr", "", "Listen address for serve")
	configSetCmd.Flags().Bool("json", false, "Output as JSON")

	configShowCmd.Flags().Bool("json", false, "Output as JSON")

	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configShowCmd)
}

func main() {
	// Check if we should try to execute a plugin
	if len(os.Args) > 1 {
		// Check if this is a known command
		cmdName := os.Args[1]
		isKnownCmd := false
		for _, cmd := range rootCmd.Commands() {
			if cmd.Name() == cmdName || cmd.HasAlias(cmdName) {
				isKnownCmd = true
				break
			}
		}

		// If not a known command and not a flag, try plugin
		if !isKnownCmd && cmdName != "help" && !strings.HasPrefix(cmdName, "-") {
			if err := plugin.ExecutePlugin(cmdName, os.Args[2:]); err == nil {
				return
			}
			// If plugin fails, fall through to normal cobra execution
			// which will show the "unknown command" error
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
