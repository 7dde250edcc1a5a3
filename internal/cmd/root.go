package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/symposium/internal/config"
)

// flagKeys maps persistent flags to the config keys they override.
var flagKeys = map[string]string{
	"seats":     "table.seats",
	"meals":     "dinner.meals",
	"duration":  "dinner.duration",
	"seed":      "dinner.seed",
	"log-level": "logging.level",
	"log-dir":   "logging.dir",
}

// NewRootCmd builds the symposium command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "symposium",
		Short: "Dining philosophers around a monitor",
		Long: `Symposium seats philosophers around a table and lets a single monitor
arbitrate their chopsticks and a shared talking token.

Each philosopher thinks, gets hungry, eats once both neighbors have put down
their chopsticks, and sometimes asks to talk. Every state the monitor passes
through is audited for adjacent eaters and overlapping talkers.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd)
		},
	}

	// Global flags
	flags := root.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default is $HOME/.config/symposium/config.yaml)")
	flags.IntP("seats", "n", 0, "number of philosophers at the table")
	flags.IntP("meals", "m", 0, "meals per philosopher (0 eats until --duration ends or the run is interrupted)")
	flags.DurationP("duration", "d", 0, "stop the dinner after this long (0 for no limit)")
	flags.Uint64("seed", 0, "seed for reproducible pacing (0 for random)")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("log-dir", "", "directory for symposium.log (default is stderr)")

	root.AddCommand(newRunCmd())
	root.AddCommand(newWatchCmd())
	root.AddCommand(newConfigCmd())
	return root
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

func initConfig(cmd *cobra.Command) error {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	flags := cmd.Root().PersistentFlags()
	if err := viper.BindPFlag("config", flags.Lookup("config")); err != nil {
		return err
	}
	for name, key := range flagKeys {
		if err := viper.BindPFlag(key, flags.Lookup(name)); err != nil {
			return err
		}
	}

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		if _, err := os.Stat(cfgFile); err != nil {
			return fmt.Errorf("config file: %w", err)
		}
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/symposium")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("SYMPOSIUM")
	// Replace dots with underscores for nested keys in env vars
	// e.g., SYMPOSIUM_TABLE_SEATS for table.seats
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// A missing config file is fine; a broken one is not
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}
	return nil
}
