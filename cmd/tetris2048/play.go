package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tetris2048/internal/platform/tui"
)

var flagDifficulty string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game straight away.

Controls:
  Left/Right/A/D  - Move
  Up/W/X          - Rotate clockwise
  Down/S          - Soft drop
  Space           - Hard drop
  P/Esc           - Pause (or click the Pause button)
  R               - Restart (after game over)
  Q/Ctrl+C        - Quit

Difficulty options:
  easy   - one row every 250 ms
  normal - one row every 200 ms
  hard   - one row every 125 ms

Without --difficulty the speed last chosen in the menu is used.

Examples:
  tetris2048 play
  tetris2048 play --difficulty hard
  tetris2048 play --seed 42
  tetris2048 play --config ./my-tetris2048.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

func runPlay(_ *cobra.Command, _ []string) error {
	gameCfg, err := loadGameConfig()
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	preset, err := resolvePreset(flagDifficulty, store, gameCfg)
	if err != nil {
		return err
	}

	game, err := newGame(gameCfg, preset)
	if err != nil {
		return err
	}
	logger.Info("starting game", "difficulty", preset, "seed", flagSeed)

	if _, err := tui.Run(game, store, logger, runtimeConfig()); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
