// Package cmd holds the sonjit command tree.
package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"sonjit/internal/config"
	"sonjit/internal/logging"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "sonjit",
	Short: "Hangul input from drawn consonants and pinched vowels",
	Long: `sonjit composes Hangul from hand input: consonants are drawn as
multi-stroke gestures and matched against templates, vowels are read from
the direction of a single pinch drag.

Stroke input is read from YAML recordings. The type command drives the same
composer from the keyboard with a dubeolsik layout.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./"+config.DefaultFile+")")
	flags.String("templates", "", "consonant template directory")
	flags.String("dictionary", "", "word list for suggestions")
	flags.String("layout", "", "keyboard layout for the type command")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("log-format", "", "log format: text or json")
	flags.Bool("verbose", false, "shorthand for --log-level=debug")

	for _, name := range []string{"templates", "dictionary", "layout", "log-level", "log-format", "verbose"} {
		viper.BindPFlag(name, flags.Lookup(name))
	}
}

func initConfig() {
	viper.SetEnvPrefix("SONJIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// loadSettings reads the config file and applies flag and environment
// overrides on top.
func loadSettings() (config.Config, *slog.Logger, error) {
	cfg, err := config.Resolve(cfgFile)
	if err != nil {
		return cfg, nil, err
	}

	if v := viper.GetString("templates"); v != "" {
		cfg.Chosung.Templates = v
	}
	if v := viper.GetString("dictionary"); v != "" {
		cfg.Complete.Dictionary = v
	}
	if v := viper.GetString("layout"); v != "" {
		cfg.Layout.Name = v
	}
	if v := viper.GetString("log-level"); v != "" {
		cfg.Log.Level = v
	}
	if v := viper.GetString("log-format"); v != "" {
		cfg.Log.Format = v
	}
	if viper.GetBool("verbose") {
		cfg.Log.Level = "debug"
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return cfg, nil, fmt.Errorf("config: %w", err)
	}
	format, err := logging.ParseFormat(cfg.Log.Format)
	if err != nil {
		return cfg, nil, fmt.Errorf("config: %w", err)
	}
	logCfg := logging.DefaultConfig()
	logCfg.Level = level
	logCfg.Format = format
	return cfg, logging.New(logCfg), nil
}
