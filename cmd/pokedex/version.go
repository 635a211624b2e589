package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/pokedex/internal/api"
	"github.com/jackzampolin/pokedex/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	// Skip config loading; version must work anywhere.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pokedex %s\n", version.GitRelease)
		fmt.Printf("  Go:     %s\n", version.GoInfo)
		fmt.Printf("  Commit: %s\n", version.GitCommit)
		fmt.Printf("  Date:   %s\n", version.GitCommitDate)
		fmt.Printf("  API:    %s\n", api.DefaultBaseURL)
	},
}
