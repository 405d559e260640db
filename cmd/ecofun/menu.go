package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ecofun-kids/ecofun/internal/core"
	"github.com/ecofun-kids/ecofun/internal/games/fallblock"
	"github.com/ecofun-kids/ecofun/internal/platform/tui"
	"github.com/ecofun-kids/ecofun/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start EcoFun with a game picker menu",
	Long: `Start EcoFun in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game, then pick how
fast the blocks fall. Leaving a game returns you to the menu, which shows
your EcoFun points.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select game
  Tab          - Scoreboard
  Q            - Quit

Examples:
  ecofun menu
  ecofun menu --player mia
  ecofun menu --fps 30 --db ./ecofun.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog, err := fileLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	opts := tui.HostOptions{
		Player: flagPlayer,
		Logger: logger,
	}

	for {
		menuResult, err := tui.RunMenu(store, cfg, flagPlayer)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH, flagPlayer)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return
		}

		gameID := menuResult.GameID
		if gameID == "" {
			return
		}

		game, err := registry.Create(gameID)
		if err != nil {
			logger.Error("cannot create game", "game", gameID, "error", err)
			continue
		}

		preset, err := tui.RunPresetSelector(game.Title(), cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		if preset == nil {
			continue
		}

		if gameID == fallblock.ID {
			fallblock.SetConfigPath(flagConfig)
		}
		if t, ok := game.(registry.Tunable); ok {
			t.SetPreset(*preset)
		}

		// Fresh pieces every round unless --seed pins them
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		logger.Info("game started", "game", gameID, "player", flagPlayer, "preset", *preset)
		backToMenu, err := tui.Run(game, store, cfg, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			return
		}

		st := game.State()
		logger.Info("game ended", "game", gameID, "score", st.Score, "lines", st.Lines, "outcome", st.Outcome())

		if !backToMenu {
			return
		}
	}
}
