package cmd

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/espalier/internal/config"
	"github.com/zjrosen/espalier/internal/flags"
	"github.com/zjrosen/espalier/internal/keys"
	"github.com/zjrosen/espalier/internal/log"
	"github.com/zjrosen/espalier/internal/menus"
	"github.com/zjrosen/espalier/internal/paths"
	"github.com/zjrosen/espalier/internal/tracing"
	"github.com/zjrosen/espalier/internal/ui/styles"
	"github.com/zjrosen/espalier/internal/ui/treeview"
	"github.com/zjrosen/espalier/internal/watcher"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

// localConfigFile is the per-directory config, checked before the user one.
const localConfigFile = ".espalier/config.yaml"

var (
	version  = "dev"
	cfgFile  string
	debugLog string
	cfg      config.Config
)

var rootCmd = &cobra.Command{
	Use:   "espalier",
	Short: "A fragment-driven launcher menu for the terminal",
	Long: `Espalier assembles a launcher menu from YAML fragment files and opens it
as an interactive tree. Selecting an action prints its command to stdout,
ready for shell eval; fragments merge into a stable tree whose order is
remembered across runs.`,
	Version: version,
	RunE:    runBrowser,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/espalier/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&debugLog, "debug-log", "",
		"write debug logs to this file")
	rootCmd.PersistentFlags().String("fragments", "",
		"fragments directory override")
	rootCmd.Flags().Bool("no-auto-reload", false,
		"disable re-assembly when fragment files change")

	// Bind flags to viper
	_ = viper.BindPFlag("fragments_dir", rootCmd.PersistentFlags().Lookup("fragments"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("auto_reload", defaults.AutoReload)
	viper.SetDefault("debounce_ms", defaults.DebounceMs)
	viper.SetDefault("ui.show_status_bar", defaults.UI.ShowStatusBar)
	viper.SetDefault("ui.show_descriptions", defaults.UI.ShowDescriptions)
	viper.SetDefault("ui.markdown_style", defaults.UI.MarkdownStyle)
	viper.SetDefault("ui.mouse", defaults.UI.Mouse)
	viper.SetDefault("ordering.backend", defaults.Ordering.Backend)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.service_name", defaults.Tracing.ServiceName)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .espalier/config.yaml (current directory)
		// 2. ~/.config/espalier/config.yaml (user config)
		if _, err := os.Stat(localConfigFile); err == nil {
			viper.SetConfigFile(localConfigFile)
		} else {
			viper.AddConfigPath(paths.ConfigDir())
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - write the commented template to
		// the user config dir so the first run leaves something editable.
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if defaultPath := paths.DefaultConfigFile(); defaultPath != "" {
				if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
					viper.SetConfigFile(defaultPath)
					_ = viper.ReadInConfig()
				}
				// If write fails, just continue with defaults (no config file)
			}
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func runBrowser(cmd *cobra.Command, args []string) error {
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if debugLog != "" {
		cleanup, err := log.InitWithTeaLog(debugLog, "espalier")
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		defer cleanup()
	}

	if noReload, _ := cmd.Flags().GetBool("no-auto-reload"); noReload {
		cfg.AutoReload = false
	}

	if err := styles.ApplyTheme(styles.ThemeConfig{
		Preset: cfg.Theme.Preset,
		Mode:   cfg.Theme.Mode,
		Colors: cfg.Theme.FlattenedColors(),
	}); err != nil {
		return fmt.Errorf("applying theme: %w", err)
	}

	flagreg := newFlags(cfg)

	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("starting tracing: %w", err)
	}
	defer func() { _ = provider.Shutdown(context.Background()) }()

	store, closeStore, err := openStore(cfg, flagreg.Enabled(flags.FlagOrderFreeze))
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()
	seedStore(cfg, store)

	svc := newService(cfg, store, provider.Tracer(), false)
	defer svc.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.AutoReload {
		startReloader(ctx, cfg, svc)
	}

	// Mouse zones are matched against the final composited frame.
	zone.NewGlobal()

	model := treeview.New(ctx, treeview.Config{
		Service:       svc,
		Keys:          keys.FromConfig(cfg.Keys),
		ShowDetails:   cfg.UI.ShowDescriptions,
		ShowStatus:    cfg.UI.ShowStatusBar,
		MarkdownStyle: cfg.UI.MarkdownStyle,
		Flags:         flagreg,
	})

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		return fmt.Errorf("running browser: %w", err)
	}

	sel := model.Selection()
	if sel == nil {
		return nil
	}
	if flagreg.Enabled(flags.FlagExecInPlace) {
		return execInPlace(sel.Exec)
	}

	// Default contract: the command goes to stdout for the caller to eval,
	// e.g.  eval "$(espalier)"
	fmt.Fprintln(cmd.OutOrStdout(), sel.Exec)
	return nil
}

// startReloader reassembles whenever a fragment file changes. The result
// reaches the browser through its snapshot subscription, so nothing here
// touches the UI. Watcher failures degrade to manual reloads.
func startReloader(ctx context.Context, cfg config.Config, svc *menus.Service) {
	w, err := watcher.New(watcher.Config{
		Dir:         cfg.ResolvedFragmentsDir(),
		DebounceDur: cfg.Debounce(),
	})
	if err != nil {
		log.ErrorErr(log.CatWatcher, "watcher unavailable", err)
		return
	}
	changes, err := w.Start()
	if err != nil {
		log.ErrorErr(log.CatWatcher, "watcher start failed", err)
		_ = w.Stop()
		return
	}

	go func() {
		defer func() { _ = w.Stop() }()
		for {
			select {
			case <-ctx.Done():
				return
			case <-changes:
				if _, err := svc.Assemble(ctx); err != nil {
					log.ErrorErr(log.CatWatcher, "reload failed", err)
				}
			}
		}
	}()
}

// execInPlace hands the selected command to the user's shell, attached to
// the terminal the browser just released.
func execInPlace(command string) error {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}
	c := exec.Command(shell, "-c", command)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
