package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tetris2048/internal/games/tetris2048"
	"github.com/vovakirdan/tetris2048/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the interactive menu",
	Long: `Start in interactive menu mode.

Pick the speed, start a game or browse the high scores.
After a game ends, press B to return to the menu.

Controls:
  Up/Down/j/k   - Navigate menu
  Left/Right    - Change speed
  Enter/Space   - Select
  Tab           - High scores
  Q             - Quit

Examples:
  tetris2048 menu
  tetris2048 menu --fps 30
  tetris2048 menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	gameCfg, err := loadGameConfig()
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()
	preset := gameCfg.Difficulty.Preset

	for {
		result, err := tui.RunMenu(store, logger, cfg, preset)
		if err != nil {
			return fmt.Errorf("run menu: %w", err)
		}
		cfg = result.Config
		preset = result.Difficulty

		switch {
		case result.Quit:
			return nil

		case result.WantsScoreboard:
			goBack, err := tui.RunScoreboard(store, tetris2048.GameID, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return fmt.Errorf("run scoreboard: %w", err)
			}
			if !goBack {
				return nil
			}

		case result.Play:
			if flagSeed == 0 {
				cfg.Seed = time.Now().UnixNano()
			}
			logger.Info("starting game", "difficulty", preset, "seed", cfg.Seed)

			game, err := newGame(gameCfg, preset)
			if err != nil {
				return err
			}
			backToMenu, err := tui.Run(game, store, logger, cfg)
			if err != nil {
				return fmt.Errorf("run game: %w", err)
			}
			if !backToMenu {
				return nil
			}
		}
	}
}
