package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the given variant (default: snake).

Controls:
  Arrows/WASD/HJKL - Steer
  Enter/Space      - Start a run / leave the game over screen
  P                - Pause
  R                - Restart after game over
  Esc/B            - Back to the title screen after game over
  Ctrl+S           - Save a screenshot to ~/.snake/screenshots
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Slow start, speeds up as you score
  normal - Start at 30% difficulty, speeds up as you score
  hard   - Fast start at 70% difficulty
  fixed  - No speed-up, stays at the config's initial level

Examples:
  snake play
  snake play snake_wrap
  snake play --difficulty hard
  snake play --config ./my-snake.yaml --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := variantArg(args)

	if !registry.Exists(gameID) {
		exitf("Error: unknown variant %q\nRun 'snake list' to see available variants.\n", gameID)
	}

	// The TUI owns the terminal, so logs are dropped unless --log-file is set.
	logger, closeLog, err := newLogger(io.Discard, "snake")
	if err != nil {
		exitf("Error: %v\n", err)
	}
	defer closeLog()

	if err := configureGame(logger); err != nil {
		exitf("Error: %v\n", err)
	}

	width, height := 80, 24 // Defaults
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
		exitf("Error creating game: %v\n", err)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(game, cfg, tui.Options{Store: store, Logger: logger})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		exitf("Error running game: %v\n", runErr)
	}
}
