package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/currencybox/internal/app"
	"github.com/zjrosen/currencybox/internal/clipboard"
	"github.com/zjrosen/currencybox/internal/config"
	"github.com/zjrosen/currencybox/internal/log"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in the number box.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

const (
	localConfigPath = ".currencybox/config.yaml"
	debugLogPath    = "currencybox-debug.log"
)

var (
	version = "dev"
	cfgFile string
	cfg     config.Config
	debug   bool
	watch   bool
)

var rootCmd = &cobra.Command{
	Use:   "currencybox",
	Short: "A masked decimal editor for the terminal",
	Long: `A terminal number box for currency, number and percent values.

Digits shift in from the right like a cash register, arrows step the value,
'-' inverts the sign and '+' opens an add panel that sums values into the
field. Enter prints the final value.`,
	Version:      version,
	SilenceUsage: true,
	RunE:         runApp,
}

// editorFlags maps persistent flags onto editor config keys.
var editorFlags = map[string]string{
	"format": "editor.format",
	"locale": "editor.locale",
	"mode":   "editor.input_mode",
	"value":  "editor.value",
	"min":    "editor.minimum",
	"max":    "editor.maximum",
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/currencybox/config.yaml)")
	flags.BoolVarP(&debug, "debug", "d", false,
		"write a debug log to "+debugLogPath+" (or log.path)")
	flags.StringP("format", "f", "", "format specifier: C, N or P followed by 0-6 fraction digits")
	flags.StringP("locale", "l", "", "BCP 47 locale tag, e.g. en-US, fr-FR")
	flags.StringP("mode", "m", "", "input mode: simplified, extended or segmented")
	flags.String("value", "", "initial value")
	flags.String("min", "", "minimum value (0 disables)")
	flags.String("max", "", "maximum value (0 disables)")

	rootCmd.Flags().BoolVarP(&watch, "watch", "w", false,
		"reload format, locale and bounds when the config file changes")
}

// bindFlags binds flags to viper. It runs on every initConfig so a reset
// viper keeps its bindings.
func bindFlags() {
	for name, key := range editorFlags {
		_ = viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(name))
	}
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("editor.format", defaults.Editor.Format)
	viper.SetDefault("editor.input_mode", defaults.Editor.InputMode)
	viper.SetDefault("editor.undo_limit", defaults.Editor.UndoLimit)
	viper.SetDefault("editor.undo_enabled", defaults.Editor.UndoEnabled)
	viper.SetDefault("editor.repeat_amount", defaults.Editor.RepeatAmount)
	viper.SetDefault("editor.add_panel", defaults.Editor.AddPanel)
	viper.SetDefault("ui.show_status_bar", defaults.UI.ShowStatusBar)
	viper.SetDefault("ui.show_help", defaults.UI.ShowHelp)
	viper.SetDefault("log.level", defaults.Log.Level)
	bindFlags()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .currencybox/config.yaml (current directory)
		// 2. ~/.config/currencybox/config.yaml (user config)
		if _, err := os.Stat(localConfigPath); err == nil {
			viper.SetConfigFile(localConfigPath)
		} else {
			viper.AddConfigPath(userConfigDir())
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create the default user config
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			defaultPath := filepath.Join(userConfigDir(), "config.yaml")
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	cfg = config.Config{}
	_ = viper.Unmarshal(&cfg)
}

func userConfigDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "currencybox")
}

// reloadConfig re-reads the config file for --watch.
func reloadConfig() (config.Config, error) {
	if err := viper.ReadInConfig(); err != nil {
		return config.Config{}, fmt.Errorf("reading %s: %w", viper.ConfigFileUsed(), err)
	}
	var reloaded config.Config
	if err := viper.Unmarshal(&reloaded); err != nil {
		return config.Config{}, fmt.Errorf("decoding %s: %w", viper.ConfigFileUsed(), err)
	}
	if err := config.Validate(reloaded); err != nil {
		return config.Config{}, err
	}
	return reloaded, nil
}

// initLogging opens the debug log when --debug, CURRENCYBOX_DEBUG or
// log.path asks for one.
func initLogging() (func(), error) {
	path := cfg.Log.Path
	if path == "" && (debug || os.Getenv("CURRENCYBOX_DEBUG") != "") {
		path = debugLogPath
	}
	if path == "" {
		return func() {}, nil
	}

	cleanup, err := log.InitWithTeaLog(path, "currencybox")
	if err != nil {
		return nil, fmt.Errorf("opening debug log: %w", err)
	}
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("log.level: %w", err)
	}
	log.SetMinLevel(level)
	log.Info(log.CatConfig, "currencybox starting", "version", version, "config", viper.ConfigFileUsed())
	return cleanup, nil
}

func runApp(cmd *cobra.Command, args []string) error {
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	cleanup, err := initLogging()
	if err != nil {
		return err
	}
	defer cleanup()

	// Store the config file path for ctrl+s and --watch
	configFilePath := viper.ConfigFileUsed()
	if configFilePath == "" {
		configFilePath = localConfigPath
	}

	model, err := app.New(app.Options{
		Config:     cfg,
		ConfigPath: configFilePath,
		Clipboard:  clipboard.NewSystem(os.Stderr),
		Reload:     reloadConfig,
		Watch:      watch,
	})
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	p := tea.NewProgram(
		&model,
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()

	// Clean up watcher resources
	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}

	if m, ok := submitted(final); ok {
		fmt.Fprintln(cmd.OutOrStdout(), m.Value())
	}
	return nil
}

// submitted unwraps the final program model. Bubble Tea hands back the
// pointer passed to NewProgram when Update never ran.
func submitted(final tea.Model) (app.Model, bool) {
	switch m := final.(type) {
	case app.Model:
		return m, m.Submitted()
	case *app.Model:
		return *m, m.Submitted()
	}
	return app.Model{}, false
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
