package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete symposium configuration
type Config struct {
	Table   TableConfig   `mapstructure:"table" yaml:"table"`
	Dinner  DinnerConfig  `mapstructure:"dinner" yaml:"dinner"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	TUI     TUIConfig     `mapstructure:"tui" yaml:"tui"`
}

// TableConfig controls the shape of the table
type TableConfig struct {
	// Seats is the number of philosophers sitting in the ring (default: 5, min: 1, max: 64)
	Seats int `mapstructure:"seats" yaml:"seats"`
}

// DinnerConfig controls how philosophers behave during a run
type DinnerConfig struct {
	// Meals is how many times each philosopher eats before leaving (0 = until the run ends)
	Meals int `mapstructure:"meals" yaml:"meals"`
	// Duration bounds the whole run (0 = no limit)
	Duration time.Duration `mapstructure:"duration" yaml:"duration"`
	// ThinkTime is the upper bound of a random thinking pause
	ThinkTime time.Duration `mapstructure:"think_time" yaml:"think_time"`
	// EatTime is the upper bound of a random eating pause
	EatTime time.Duration `mapstructure:"eat_time" yaml:"eat_time"`
	// TalkTime is the upper bound of a random talking pause
	TalkTime time.Duration `mapstructure:"talk_time" yaml:"talk_time"`
	// TalkProbability is the chance a philosopher asks to talk after a meal (0..1)
	TalkProbability float64 `mapstructure:"talk_probability" yaml:"talk_probability"`
	// Seed makes the run reproducible when non-zero
	Seed uint64 `mapstructure:"seed" yaml:"seed"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Level is the minimum level written: "debug", "info", "warn", "error" (default: "info")
	// At debug level every seat transition is logged.
	Level string `mapstructure:"level" yaml:"level"`
	// Dir is the directory for symposium.log (default: "" writes to stderr)
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// TUIConfig controls the live table viewer
type TUIConfig struct {
	// RefreshMs is how often the viewer redraws, in milliseconds (default: 100)
	RefreshMs int `mapstructure:"refresh_ms" yaml:"refresh_ms"`
}

// RefreshInterval returns the viewer refresh interval as a duration.
func (c *TUIConfig) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshMs) * time.Millisecond
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Table: TableConfig{
			Seats: 5,
		},
		Dinner: DinnerConfig{
			Meals:           10,
			Duration:        0,
			ThinkTime:       20 * time.Millisecond,
			EatTime:         20 * time.Millisecond,
			TalkTime:        10 * time.Millisecond,
			TalkProbability: 0.3,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		TUI: TUIConfig{
			RefreshMs: 100,
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("table.seats", defaults.Table.Seats)

	viper.SetDefault("dinner.meals", defaults.Dinner.Meals)
	viper.SetDefault("dinner.duration", defaults.Dinner.Duration)
	viper.SetDefault("dinner.think_time", defaults.Dinner.ThinkTime)
	viper.SetDefault("dinner.eat_time", defaults.Dinner.EatTime)
	viper.SetDefault("dinner.talk_time", defaults.Dinner.TalkTime)
	viper.SetDefault("dinner.talk_probability", defaults.Dinner.TalkProbability)
	viper.SetDefault("dinner.seed", defaults.Dinner.Seed)

	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)

	viper.SetDefault("tui.refresh_ms", defaults.TUI.RefreshMs)
}

// Read reads the configuration from viper without validating it
func Read() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads the configuration from viper and validates it
func Load() (*Config, error) {
	cfg, err := Read()
	if err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return cfg, nil
}

// ConfigDir returns the directory holding the config file
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "symposium")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "symposium")
}

// ConfigFile returns the path of the default config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
