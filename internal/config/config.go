// Package config provides configuration types and defaults for currencybox.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/govalues/decimal"

	"github.com/zjrosen/currencybox/internal/log"
	"github.com/zjrosen/currencybox/internal/numedit"
)

// Config holds all configuration options for currencybox.
type Config struct {
	Editor EditorConfig `mapstructure:"editor"`
	UI     UIConfig     `mapstructure:"ui"`
	Log    LogConfig    `mapstructure:"log"`
}

// EditorConfig configures the number box. Decimal values are strings so
// they survive YAML without float rounding.
type EditorConfig struct {
	Format       string `mapstructure:"format" yaml:"format"`         // C, N or P plus 0-6 fraction digits
	Locale       string `mapstructure:"locale" yaml:"locale"`         // BCP 47 tag; empty for invariant
	InputMode    string `mapstructure:"input_mode" yaml:"input_mode"` // simplified, extended or segmented
	Value        string `mapstructure:"value" yaml:"value,omitempty"`
	Minimum      string `mapstructure:"minimum" yaml:"minimum,omitempty"`
	Maximum      string `mapstructure:"maximum" yaml:"maximum,omitempty"`
	MaxLength    int    `mapstructure:"max_length" yaml:"max_length"`
	UndoLimit    int    `mapstructure:"undo_limit" yaml:"undo_limit"`
	UndoEnabled  bool   `mapstructure:"undo_enabled" yaml:"undo_enabled"`
	RepeatAmount int    `mapstructure:"repeat_amount" yaml:"repeat_amount"`
	ReadOnly     bool   `mapstructure:"read_only" yaml:"read_only"`
	AddPanel     bool   `mapstructure:"add_panel" yaml:"add_panel"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowStatusBar bool `mapstructure:"show_status_bar"`
	ShowHelp      bool `mapstructure:"show_help"`
}

// LogConfig configures the debug log.
type LogConfig struct {
	Path  string `mapstructure:"path"`  // debug log file; empty disables logging unless --debug
	Level string `mapstructure:"level"` // debug, info, warn or error
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Editor: EditorConfig{
			Format:       "C2",
			InputMode:    "simplified",
			UndoLimit:    numedit.DefaultUndoLimit,
			UndoEnabled:  true,
			RepeatAmount: numedit.DefaultRepeatAmount,
			AddPanel:     true,
		},
		UI: UIConfig{
			ShowStatusBar: true,
			ShowHelp:      true,
		},
		Log: LogConfig{
			Level: "debug",
		},
	}
}

// Validate checks the whole configuration and joins every problem found.
func Validate(cfg Config) error {
	return errors.Join(ValidateEditor(cfg.Editor), ValidateLog(cfg.Log))
}

// ValidateEditor checks editor configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateEditor(e EditorConfig) error {
	_, err := e.ControllerConfig()
	return err
}

// ValidateLog checks log configuration for errors.
func ValidateLog(l LogConfig) error {
	if _, err := log.ParseLevel(l.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// ControllerConfig converts the editor section into a numedit.Config.
// Every field is checked; all errors are reported together.
func (e EditorConfig) ControllerConfig() (numedit.Config, error) {
	var errs []error
	cfg := numedit.Config{
		Format:       e.Format,
		MaxLength:    e.MaxLength,
		UndoLimit:    e.UndoLimit,
		DisableUndo:  !e.UndoEnabled,
		RepeatAmount: e.RepeatAmount,
		ReadOnly:     e.ReadOnly,
		AddPanel:     e.AddPanel,
	}

	if e.Format != "" {
		if _, err := numedit.ParseFormat(e.Format); err != nil {
			errs = append(errs, fmt.Errorf("editor.format: %w", err))
		}
	}

	loc, err := numedit.LookupLocale(e.Locale)
	if err != nil {
		errs = append(errs, fmt.Errorf("editor.locale: %w", err))
	}
	cfg.Locale = loc

	mode, err := numedit.ParseInputMode(e.InputMode)
	if err != nil {
		errs = append(errs, fmt.Errorf("editor.input_mode: %w", err))
	}
	cfg.InputMode = mode

	cfg.Value, err = parseDecimal("editor.value", e.Value, false)
	errs = append(errs, err)
	cfg.Minimum, err = parseDecimal("editor.minimum", e.Minimum, true)
	errs = append(errs, err)
	cfg.Maximum, err = parseDecimal("editor.maximum", e.Maximum, true)
	errs = append(errs, err)

	if e.MaxLength < 0 {
		errs = append(errs, fmt.Errorf("editor.max_length: must not be negative, got %d", e.MaxLength))
	}
	if e.UndoLimit < 0 {
		errs = append(errs, fmt.Errorf("editor.undo_limit: must not be negative, got %d", e.UndoLimit))
	}
	if e.RepeatAmount < 0 {
		errs = append(errs, fmt.Errorf("editor.repeat_amount: must not be negative, got %d", e.RepeatAmount))
	}

	return cfg, errors.Join(errs...)
}

func parseDecimal(key, s string, bound bool) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Decimal{}, nil
	}
	d, err := decimal.Parse(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%s: %q is not a decimal: %w", key, s, err)
	}
	if bound {
		if err := numedit.ValidateBound(d); err != nil {
			return decimal.Decimal{}, fmt.Errorf("%s: %w", key, err)
		}
	}
	return d, nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Currencybox Configuration

# Number editor settings
editor:
  # Format specifier: C (currency), N (number) or P (percent), followed by
  # the number of fraction digits 0-6. P stores 0.125 and shows 12.5 %.
  format: C2

  # Locale for separators and symbols (BCP 47). Empty uses the invariant
  # culture: "." decimal, "," groups, "¤" currency.
  # locale: en-US

  # simplified: digits stream in from the right like a cash register
  # extended:   edit the integer and fraction parts separately (. or → switches)
  # segmented:  same as extended
  input_mode: simplified

  # Initial value and optional bounds. Zero or empty means no bound.
  # value: "0"
  # minimum: "-1000"
  # maximum: "1000"

  # max_length: 0         # Refuse digits once the value text reaches this length (0 = off)
  undo_limit: 100         # Undo depth (0 = unlimited)
  undo_enabled: true
  repeat_amount: 10       # Step size for pgup/pgdown and shift+arrows
  read_only: false
  add_panel: true         # '+' opens a panel that adds to the current value

# UI settings
ui:
  show_status_bar: true   # Show the last log line below the editor
  show_help: true         # Show key help

# Debug log (also enabled by --debug or CURRENCYBOX_DEBUG)
log:
  # path: currencybox.log
  level: debug            # debug, info, warn or error
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	// Create parent directory if needed
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	// Write the template
	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
