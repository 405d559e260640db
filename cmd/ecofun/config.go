package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ecofun-kids/ecofun/internal/config"
	"github.com/ecofun-kids/ecofun/internal/registry"
)

var configCmd = &cobra.Command{
	Use:   "config <game>",
	Short: "Print a game's default config YAML",
	Long: `Print the built-in configuration of a game. Save it as
~/.ecofun/configs/<game>.yaml and edit it, or pass it to play --config.

Examples:
  ecofun config fallblock > ~/.ecofun/configs/fallblock.yaml
  ecofun config fallblock > slow.yaml && ecofun play fallblock --config slow.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'ecofun list' to see available games.")
		os.Exit(1)
	}

	data := config.GetDefaultYAML(gameID)
	if data == nil {
		fmt.Fprintf(os.Stderr, "Game %q has no configurable settings.\n", gameID)
		return
	}
	os.Stdout.Write(data)
}
