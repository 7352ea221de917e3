// Package cmd wires the mtga-reader subcommands.
package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Drasnov/mtga-reader/internal/config"
	"github.com/Drasnov/mtga-reader/internal/logger"
	"github.com/Drasnov/mtga-reader/internal/mtga"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "mtga-reader",
	Short: "Read MTGA data files: schemas, localized cards, and card art",
	Long: `mtga-reader works against a local Magic: The Gathering Arena install.
It inspects the .mtga SQLite databases (schema, indexes, pragmas), resolves
cards with localized text and flattened references, and extracts card art
from the game's asset bundles.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
}

// cfg holds the merged file + flag configuration for the running command.
var cfg *config.Config

func init() {
	RootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	RootCmd.PersistentFlags().String("root", "", "Game install root directory")
	RootCmd.PersistentFlags().String("language", "", "Display language, e.g. en-US")
	RootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	RootCmd.PersistentFlags().String("log-format", "", "Log format: json or console")
}

// loadConfig reads the config file, layers flag overrides on top, and
// installs the process logger.
func loadConfig(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	loaded, err := config.Load(path)
	if err != nil {
		return err
	}

	if v, _ := cmd.Flags().GetString("root"); v != "" {
		loaded.Root = v
	}
	if v, _ := cmd.Flags().GetString("language"); v != "" {
		loaded.Language = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		loaded.Log.Level = v
	}
	if v, _ := cmd.Flags().GetString("log-format"); v != "" {
		loaded.Log.Format = v
	}

	logCfg := logger.DefaultConfig()
	logCfg.Level = loaded.Log.Level
	logCfg.Format = loaded.Log.Format
	logger.SetGlobal(logger.New(logCfg))

	cfg = loaded
	return nil
}

// openReader builds a Reader from the merged configuration.
func openReader(ctx context.Context) (*mtga.Reader, error) {
	return mtga.New(ctx, mtga.Config{
		Root:     cfg.Root,
		Language: cfg.Language,
	})
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}
