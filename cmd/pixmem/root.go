package main

import (
	"github.com/spf13/cobra"

	"github.com/kpfaulkner/pixmem/config"
)

const (
	version       = "0.1.0"
	exitUserError = 1
)

var (
	flagConfigFile string
	flagConfigDir  string
	flagLogLevel   string
)

// cfg is loaded by PersistentPreRunE for all subcommands.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:           "pixmem",
	Short:         "Inspect, convert and crop images through pixmem containers",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadConfig()
		if err != nil {
			return err
		}
		if flagLogLevel != "" {
			loaded.LogLevel = flagLogLevel
			if err := loaded.Validate(); err != nil {
				return err
			}
		}
		loaded.ConfigureLogging()
		cfg = loaded
		return nil
	},
}

func loadConfig() (*config.Config, error) {
	if flagConfigFile != "" {
		return config.LoadFile(flagConfigFile)
	}
	dirs := []string{"."}
	if flagConfigDir != "" {
		dirs = []string{flagConfigDir}
	}
	return config.Load(dirs...)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigFile, "config", "", "explicit config file")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "directory holding pixmem.yaml (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level, overrides the config file")

	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(cropCmd)
	rootCmd.AddCommand(versionCmd)
}
