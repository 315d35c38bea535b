package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tetris2048/internal/config"
	"github.com/vovakirdan/tetris2048/internal/games/tetris2048"
	"github.com/vovakirdan/tetris2048/internal/storage"
)

var (
	flagScoresDifficulty string
	flagScoresLimit      int
	flagScoresClear      bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top high scores, optionally for one speed tier.

Examples:
  tetris2048 scores
  tetris2048 scores --difficulty hard
  tetris2048 scores --limit 25
  tetris2048 scores --limit 0   # every recorded score
  tetris2048 scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresDifficulty, "difficulty", "", "Only show scores for this preset: easy, normal, hard")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show, 0 for all")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all recorded scores")
}

func runScores(_ *cobra.Command, _ []string) error {
	difficulty := ""
	title := "all speeds"
	if flagScoresDifficulty != "" {
		p, err := config.ParsePreset(flagScoresDifficulty)
		if err != nil {
			return err
		}
		difficulty = string(p)
		title = p.Label()
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(tetris2048.GameID); err != nil {
			return err
		}
		logger.Info("scores cleared", "db", flagDBPath)
		return nil
	}

	scores, err := queryScores(store, difficulty, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - Tetris 2048 (%s)\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'tetris2048 play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %-8s  %-6s  %s\n", "Rank", "Score", "Max Tile", "Speed", "Date")
	fmt.Printf("  %-4s  %-10s  %-8s  %-6s  %s\n", "----", "-----", "--------", "-----", "----")

	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %-8d  %-6s  %s\n",
			i+1, entry.Score, entry.MaxTile, entry.Difficulty, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(tetris2048.GameID)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Best: %d  Best tile: %d  Games: %d\n", stats.HighScore, stats.BestTile, stats.GamesCount)
	return nil
}

// queryScores returns the best scores, or every score when limit is zero.
func queryScores(store *storage.Store, difficulty string, limit int) ([]storage.ScoreEntry, error) {
	if limit <= 0 {
		return store.AllScores(tetris2048.GameID, difficulty)
	}
	return store.TopScores(tetris2048.GameID, difficulty, limit)
}
