// tetris2048 is a falling-block puzzle for the terminal: Tetris pieces made
// of 2048 tiles that merge when equal values stack.
//
// Usage:
//
//	tetris2048 play          - Play a game
//	tetris2048 menu          - Start the menu (speed choice, scores)
//	tetris2048 scores        - Show high scores
//	tetris2048 serve         - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible gameplay
//	--db <path>        - Set database path (default: ~/.tetris2048/scores.db)
//	--config <path>    - Game config YAML
//	--log-file <path>  - Write logs to a file
//	--telemetry        - Export traces over OTLP
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tetris2048/internal/config"
	"github.com/vovakirdan/tetris2048/internal/core"
	"github.com/vovakirdan/tetris2048/internal/games/tetris2048"
	"github.com/vovakirdan/tetris2048/internal/registry"
	"github.com/vovakirdan/tetris2048/internal/storage"
	"github.com/vovakirdan/tetris2048/internal/telemetry"
)

var (
	// Global flags
	flagFPS       int
	flagSeed      int64
	flagDBPath    string
	flagConfig    string
	flagLogFile   string
	flagLogLevel  string
	flagTelemetry bool
)

var (
	logger            = log.New(io.Discard)
	closeLog          = func() {}
	shutdownTelemetry = func(context.Context) error { return nil }
)

func main() {
	err := rootCmd.Execute()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if shutdownErr := shutdownTelemetry(ctx); shutdownErr != nil {
		logger.Warn("telemetry shutdown failed", "error", shutdownErr)
	}
	cancel()
	closeLog()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris2048",
	Short: "Tetris 2048 - falling tiles that merge",
	Long: `Tetris 2048 drops tetrominoes built from numbered tiles.
Equal tiles stacked on top of each other merge, full rows clear,
and anything left hanging falls until it lands.

Available commands:
  play     - Play a game directly
  menu     - Interactive menu with speed selection and scores
  scores   - View high scores
  serve    - Start SSH server for remote play

Examples:
  tetris2048 play
  tetris2048 play --difficulty hard
  tetris2048 menu
  tetris2048 serve --ssh :2222
  tetris2048 scores --difficulty normal`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tetris2048/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&flagTelemetry, "telemetry", false, "Export traces over OTLP (also enabled by OTEL_EXPORTER_OTLP_ENDPOINT)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// setup loads .env, opens the log and starts tracing before any command runs.
func setup(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	// The terminal belongs to the game, so interactive commands only log to a file.
	var fallback io.Writer = io.Discard
	if cmd == serveCmd || cmd == scoresCmd {
		fallback = os.Stderr
	}
	if err := openLog(fallback); err != nil {
		return err
	}

	if flagTelemetry || telemetry.Enabled() {
		shutdown, err := telemetry.Setup(cmd.Context())
		if err != nil {
			logger.Warn("telemetry disabled", "error", err)
			return nil
		}
		shutdownTelemetry = shutdown
		logger.Debug("telemetry enabled")
	}
	return nil
}

func openLog(fallback io.Writer) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	w := fallback
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeLog = func() { f.Close() }
	}

	logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "tetris2048",
		Level:           level,
	})
	return nil
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}

func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.ScreenW, cfg.ScreenH = terminalSize()
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	cfg.Seed = flagSeed
	return cfg
}

// loadGameConfig reads the game config from --config or the usual locations.
func loadGameConfig() (config.Tetris2048Config, error) {
	cfg, err := config.LoadTetris2048(flagConfig)
	if err != nil {
		return cfg, err
	}
	logger.Debug("config loaded",
		"board", fmt.Sprintf("%dx%d", cfg.Board.Width, cfg.Board.Height),
		"difficulty", cfg.Difficulty.Preset,
	)
	return cfg, nil
}

// resolvePreset picks the speed tier: the flag, then the stored setting,
// then the config file.
func resolvePreset(flag string, store *storage.Store, cfg config.Tetris2048Config) (config.DifficultyPreset, error) {
	if flag != "" {
		return config.ParsePreset(flag)
	}
	if store != nil {
		v, ok, err := store.Setting(storage.SettingDifficulty)
		if err != nil {
			logger.Warn("could not load difficulty", "error", err)
		} else if ok {
			if p, perr := config.ParsePreset(v); perr == nil {
				return p, nil
			}
		}
	}
	return cfg.Difficulty.Preset, nil
}

// newGame builds the game from the registry with cfg and a speed tier.
func newGame(cfg config.Tetris2048Config, preset config.DifficultyPreset) (registry.Game, error) {
	game, err := registry.Create(tetris2048.GameID, registry.Options{Config: cfg, Difficulty: preset})
	if err != nil {
		return nil, fmt.Errorf("create game: %w", err)
	}
	return game, nil
}

// openStore opens the score database. Failure is logged and play continues
// without persistence.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}
