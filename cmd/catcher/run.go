package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pose-catcher/internal/platform/tui"
	"github.com/vovakirdan/pose-catcher/internal/runner"
	"github.com/vovakirdan/pose-catcher/internal/storage"
)

var (
	flagRuns   int
	flagFast   bool
	flagPlayer string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Play headless sessions from a feed",
	Long: `Play one or more sessions without a terminal UI, steered by a recorded
(--feed) or remote (--listen) classifier feed, then print each summary and
the leaderboard of the batch.

With --fast, a recorded feed is replayed on a simulated clock, so a 60
second session finishes immediately. Runs with the same --seed and feed
give the same results.

Examples:
  catcher run --feed ./session.yaml
  catcher run --feed ./session.yaml --runs 10 --fast --seed 42
  catcher run --listen :8080 --player alice`,
	Run: runRun,
}

func init() {
	addFeedFlags(runCmd)
	runCmd.Flags().IntVar(&flagRuns, "runs", 1, "Number of sessions to play")
	runCmd.Flags().BoolVar(&flagFast, "fast", false, "Replay a recorded feed on a simulated clock")
	runCmd.Flags().StringVar(&flagPlayer, "player", "", "Player name recorded with results")
}

func runRun(cmd *cobra.Command, _ []string) {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	err := runBatch(ctx, os.Stdout)
	stop()
	if err != nil {
		fatal("%v", err)
	}
}

// runBatch plays the sessions selected by the flags and writes the
// summaries and the leaderboard to w. The feed and the store are closed
// before it returns, on success and on error.
func runBatch(ctx context.Context, w io.Writer) error {
	logger := newLogger("catcher")

	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}

	f, err := openFeed(ctx, logger)
	if err != nil {
		return err
	}
	if f == nil {
		return errors.New("run needs a classifier feed: use --feed or --listen")
	}
	defer f.close()

	if flagFast && f.replay == nil {
		return errors.New("--fast needs a recorded feed (--feed)")
	}

	store, err := storage.OpenMemory()
	if err != nil {
		return fmt.Errorf("opening results database: %w", err)
	}
	defer store.Close()

	player := flagPlayer
	if player == "" {
		player = currentUser()
	}

	r := runner.New(runner.Options{
		Game:   cfg,
		FPS:    flagFPS,
		Seed:   flagSeed,
		Player: player,
		Store:  store,
		Logger: logger,
	})

	for i := 1; i <= max(flagRuns, 1); i++ {
		if ctx.Err() != nil {
			break
		}
		if f.replay != nil {
			f.replay.Rewind()
		}

		var (
			summary fmt.Stringer
			runErr  error
		)
		if flagFast {
			summary, runErr = r.Simulate(f.replay)
		} else {
			summary, runErr = r.Play(ctx, f, f.interval)
		}
		if runErr != nil {
			if errors.Is(runErr, context.Canceled) {
				break
			}
			return fmt.Errorf("run %d: %w", i, runErr)
		}
		fmt.Fprintf(w, "run %d: %s\n", i, summary)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, tui.RenderLeaderboard(store, 80))
	return nil
}
