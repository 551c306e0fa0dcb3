package runner

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pose-catcher/internal/classifier"
	"github.com/vovakirdan/pose-catcher/internal/config"
	"github.com/vovakirdan/pose-catcher/internal/games/catcher"
	"github.com/vovakirdan/pose-catcher/internal/storage"
)

func steadyReplay(label string) *classifier.Replay {
	return classifier.NewReplay(classifier.ReplayFile{
		IntervalMs: 50,
		Loop:       true,
		Frames: []classifier.ReplayFrame{
			{Hold: 1, Predictions: []classifier.Prediction{{Label: label, Probability: 0.95}}},
		},
	})
}

func newRunner(t *testing.T, seed int64) (*Runner, *storage.Store) {
	t.Helper()
	return newRunnerWithConfig(t, seed, config.DefaultCatcherConfig())
}

func newRunnerWithConfig(t *testing.T, seed int64, cfg config.CatcherConfig) (*Runner, *storage.Store) {
	t.Helper()
	store, err := storage.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return New(Options{
		Game:   cfg,
		FPS:    60,
		Seed:   seed,
		Player: "bot",
		Store:  store,
		Logger: log.New(io.Discard),
	}), store
}

func TestSimulateEndsAndRecords(t *testing.T) {
	r, store := newRunner(t, 42)
	cfg := config.DefaultCatcherConfig()

	summary, err := r.Simulate(steadyReplay(cfg.Controls.Left))
	if err != nil {
		t.Fatalf("Simulate() failed: %v", err)
	}

	if summary.Cause != catcher.CauseTimeout && summary.Cause != catcher.CauseHazard {
		t.Errorf("Cause = %v, expected timeout or hazard", summary.Cause)
	}
	if summary.Cause == catcher.CauseHazard && summary.FinalScore != 0 {
		t.Errorf("FinalScore = %d, expected 0 after a hazard", summary.FinalScore)
	}
	if maxLevel := config.NewLevelSchedule(cfg).MaxLevel(); summary.Level < 1 || summary.Level > maxLevel {
		t.Errorf("Level = %d, expected 1..%d", summary.Level, maxLevel)
	}
	if summary.FinalScore%100 != 0 {
		t.Errorf("FinalScore = %d, expected a multiple of 100", summary.FinalScore)
	}

	results, err := store.TopResults(10)
	if err != nil {
		t.Fatalf("TopResults() failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("len(TopResults()) = %d, expected 1", len(results))
	}
	if results[0].Player != "bot" || results[0].Score != summary.FinalScore {
		t.Errorf("result = %+v, expected bot with score %d", results[0], summary.FinalScore)
	}
}

func TestSimulateIsDeterministic(t *testing.T) {
	label := config.DefaultCatcherConfig().Controls.Right

	a, _ := newRunner(t, 7)
	b, _ := newRunner(t, 7)
	for run := 0; run < 3; run++ {
		sa, err := a.Simulate(steadyReplay(label))
		if err != nil {
			t.Fatalf("Simulate() failed: %v", err)
		}
		sb, err := b.Simulate(steadyReplay(label))
		if err != nil {
			t.Fatalf("Simulate() failed: %v", err)
		}
		if sa.FinalScore != sb.FinalScore || sa.Level != sb.Level || sa.Cause != sb.Cause {
			t.Errorf("run %d: %v and %v, expected equal results for equal seeds", run, sa, sb)
		}
		if sa.SessionID == sb.SessionID {
			t.Errorf("run %d: sessions share ID %v", run, sa.SessionID)
		}
	}
}

func TestSimulateExhaustedFeed(t *testing.T) {
	r, _ := newRunner(t, 3)
	replay := classifier.NewReplay(classifier.ReplayFile{
		IntervalMs: 100,
		Frames: []classifier.ReplayFrame{
			{Hold: 3, Predictions: []classifier.Prediction{{Label: "left", Probability: 0.9}}},
		},
	})

	summary, err := r.Simulate(replay)
	if err != nil {
		t.Fatalf("Simulate() failed: %v", err)
	}
	if summary.Cause == catcher.CauseStopped {
		t.Errorf("Cause = %v, expected the session to end on its own", summary.Cause)
	}
}

func TestPlayStopsOnCancel(t *testing.T) {
	r, store := newRunner(t, 1)
	kb := classifier.NewKeyboard(config.DefaultCatcherConfig().Controls.Labels(), 1)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	summary, err := r.Play(ctx, kb, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("Play() failed: %v", err)
	}
	if summary.Cause != catcher.CauseStopped {
		t.Errorf("Cause = %v, expected stopped", summary.Cause)
	}
	if n, _ := store.Count(); n != 1 {
		t.Errorf("Count() = %d, expected 1", n)
	}
}

func TestSimulateFixedScheduleStaysAtLevelOne(t *testing.T) {
	cfg := config.DefaultCatcherConfig()
	config.ApplyCatcherPreset(&cfg, config.DifficultyFixed)
	r, _ := newRunnerWithConfig(t, 11, cfg)

	// Any ending is fine; the level must not move
	summary, err := r.Simulate(steadyReplay(cfg.Controls.Center))
	if err != nil {
		t.Fatalf("Simulate() failed: %v", err)
	}
	if summary.Level != 1 {
		t.Errorf("Level = %d, expected 1 with no level-ups", summary.Level)
	}
}
