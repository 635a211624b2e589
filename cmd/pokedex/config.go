package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/pokedex/internal/api"
	"github.com/jackzampolin/pokedex/internal/config"
	"github.com/jackzampolin/pokedex/internal/home"
)

var forceInit bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and initialize configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config to the home directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := homeDirPath.EnsureExists(); err != nil {
			return err
		}
		path := homeDirPath.ConfigPath()
		if homeDirPath.HasConfig() && !forceInit {
			return fmt.Errorf("%w: %s (use --force to overwrite)", home.ErrConfigExists, path)
		}
		if err := config.WriteDefault(path); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "wrote %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if f := configMgr.ConfigFile(); f != "" {
			fmt.Fprintf(os.Stderr, "# from %s\n", f)
		}
		return api.Output(configMgr.Get())
	},
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List every config key with its current and default value",
	RunE: func(cmd *cobra.Command, args []string) error {
		type keyView struct {
			Key         string `json:"key" yaml:"key"`
			Value       any    `json:"value" yaml:"value"`
			Default     any    `json:"default" yaml:"default"`
			Description string `json:"description" yaml:"description"`
		}
		var out []keyView
		for _, e := range config.DefaultEntries() {
			out = append(out, keyView{
				Key:         e.Key,
				Value:       configMgr.Value(e.Key),
				Default:     e.Value,
				Description: e.Description,
			})
		}
		return api.Output(out)
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "overwrite an existing config")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configKeysCmd)
	rootCmd.AddCommand(configCmd)
}
