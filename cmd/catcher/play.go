package main

import (
	"context"
	"fmt"
	"os"
	"os/user"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/pose-catcher/internal/audio"
	"github.com/vovakirdan/pose-catcher/internal/core"
	"github.com/vovakirdan/pose-catcher/internal/platform/tui"
	"github.com/vovakirdan/pose-catcher/internal/storage"
)

var flagSound bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a 60 second session in the terminal.

Without a feed, the keyboard stands in for the pose classifier: the held
pose is sent as a noisy prediction twenty times a second and goes through
the same stabilizer as a real classifier.

Controls:
  ←/a        - Lean left
  ↓/s        - Stand upright
  →/d        - Lean right
  R/Enter    - Restart (after game over)
  X/Esc      - Stop the session
  M          - Toggle sound
  Tab        - High scores
  Ctrl+S     - Save a screenshot
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Fewer bombs, slower fruit
  normal - The default schedule
  hard   - More bombs, faster fruit, longer stabilizer window
  fixed  - No level-ups

Examples:
  catcher play
  catcher play --sound --difficulty hard
  catcher play --feed ./session.yaml
  catcher play --listen :8080`,
	Run: runPlay,
}

func init() {
	addFeedFlags(playCmd)
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound effects")
}

func runPlay(cmd *cobra.Command, _ []string) {
	if err := playGame(cmd.Context()); err != nil {
		fatal("%v", err)
	}
}

// playGame runs the terminal game. Every resource it opens is released
// before it returns.
func playGame(ctx context.Context) error {
	logger := newLogger("catcher")

	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	f, err := openFeed(ctx, logger)
	if err != nil {
		return err
	}

	runtime := core.DefaultConfig()
	runtime.TickRate = flagFPS
	runtime.Seed = flagSeed
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		runtime.ScreenW = w
		runtime.ScreenH = h
	}

	opts := tui.Options{
		Game:    cfg,
		Runtime: runtime,
		Logger:  logger,
		Player:  currentUser(),
	}

	// Results live for this process only
	store, err := storage.OpenMemory()
	if err != nil {
		logger.Warn("could not open results database", "err", err)
	} else {
		opts.Store = store
		defer store.Close()
	}

	if flagSound {
		sound := audio.NewSoundManager()
		if err := sound.Initialize(); err != nil {
			logger.Warn("sound disabled", "err", err)
		} else {
			opts.Sound = sound
			defer sound.Cleanup()
		}
	}

	interval := time.Duration(0)
	if f != nil {
		defer f.close()
		opts.Feed = f
		interval = f.interval
	}

	if err := tui.Run(ctx, opts, interval); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// currentUser names the local player in results.
func currentUser() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return ""
}
