package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ecofun-kids/ecofun/internal/config"
	"github.com/ecofun-kids/ecofun/internal/core"
	"github.com/ecofun-kids/ecofun/internal/games/fallblock"
	"github.com/ecofun-kids/ecofun/internal/platform/tui"
	"github.com/ecofun-kids/ecofun/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Left/Right, A/D  - Move the block
  Up, W, X         - Rotate
  Down, S          - Drop one row
  Space            - Drop to the bottom
  P                - Pause
  Enter            - Claim points after the round
  R                - Play again after the round
  Esc/B            - Back (when paused or finished)
  Q/Ctrl+C         - Quit

Difficulty options (how fast blocks fall):
  easy    - Slow blocks, gentle speed-up
  normal  - Standard speed
  hard    - Fast blocks from the start
  fixed   - Speed never changes

Without --difficulty a picker is shown before the game starts.

Examples:
  ecofun play fallblock
  ecofun play fallblock --difficulty easy
  ecofun play fallblock --config ./my-blocks.yaml --seed 42`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'ecofun list' to see available games.")
		os.Exit(1)
	}

	logger, closeLog, err := fileLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

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

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	var preset config.DifficultyPreset
	if flagDifficulty != "" {
		preset, err = config.ParsePreset(flagDifficulty)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	} else {
		picked, pickErr := tui.RunPresetSelector(game.Title(), cfg)
		if pickErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", pickErr)
			os.Exit(1)
		}
		if picked == nil {
			return
		}
		preset = *picked
	}

	if gameID == fallblock.ID {
		fallblock.SetConfigPath(flagConfig)
	}
	if t, ok := game.(registry.Tunable); ok {
		t.SetPreset(preset)
	}

	store := openStore(logger)

	logger.Info("game started", "game", gameID, "player", flagPlayer, "preset", preset, "seed", flagSeed)
	_, runErr := tui.Run(game, store, cfg, tui.HostOptions{
		Player: flagPlayer,
		Logger: logger,
	})

	if runErr == nil {
		st := game.State()
		logger.Info("game ended", "game", gameID, "score", st.Score, "lines", st.Lines, "outcome", st.Outcome())
	}

	if g, ok := game.(*fallblock.Game); ok && g.LoadErr() != nil {
		fmt.Fprintf(os.Stderr, "Warning: using default config: %v\n", g.LoadErr())
	}

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
