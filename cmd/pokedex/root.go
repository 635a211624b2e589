package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jackzampolin/pokedex/internal/api"
	"github.com/jackzampolin/pokedex/internal/config"
	"github.com/jackzampolin/pokedex/internal/home"
	"github.com/jackzampolin/pokedex/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
	verbose      bool

	// Set by the root PersistentPreRunE.
	homeDirPath *home.Dir
	configMgr   *config.Manager
	logger      *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "pokedex",
	Short: "Paginated Pokémon browser backed by a collection API",
	Long: `Pokedex is a front end for a Pokémon collection API.

It serves:
  - A paginated list page with page size selection and page jumping
  - A detail page with the record's evolution chain
  - A cache-clear action with toast notifications

The same views are available from the terminal under "pokedex browse".`,
	Version:       version.GitRelease,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Set output format before any command runs
		api.SetOutputFormat(outputFormat)

		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)

		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		homeDirPath = h

		// Home .env fills in anything the working directory's .env did not.
		if _, err := os.Stat(h.EnvPath()); err == nil {
			if err := godotenv.Load(h.EnvPath()); err != nil {
				return fmt.Errorf("failed to load %s: %w", h.EnvPath(), err)
			}
		}

		mgr, err := config.NewManager(h.ConfigFile(cfgFile))
		if err != nil {
			return err
		}
		configMgr = mgr
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.pokedex/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "pokedex home directory (default: ~/.pokedex)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "text", "output format: text, yaml or json",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "enable debug logging",
	)

	rootCmd.AddCommand(versionCmd)
}
