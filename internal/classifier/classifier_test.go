package classifier

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestKeyboardPredict(t *testing.T) {
	k := NewKeyboard([]string{"left", "center", "right"}, 42)
	ctx := context.Background()

	preds, err := k.Predict(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range preds {
		if math.Abs(p.Probability-1.0/3) > 1e-9 {
			t.Errorf("Idle frame %s = %v, expected uniform", p.Label, p.Probability)
		}
	}

	k.Hold("right")
	for i := 0; i < 100; i++ {
		preds, _ := k.Predict(ctx)
		sum := 0.0
		best := preds[0]
		for _, p := range preds {
			sum += p.Probability
			if p.Probability > best.Probability {
				best = p
			}
		}
		if best.Label != "right" {
			t.Fatalf("frame %d: best label = %s, expected right", i, best.Label)
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Fatalf("frame %d: probabilities sum to %v", i, sum)
		}
		if best.Probability < DefaultConfidence-0.08-1e-9 || best.Probability > 1 {
			t.Fatalf("frame %d: probability %v outside jitter band", i, best.Probability)
		}
	}

	k.Hold("jump")
	if k.Held() != "" {
		t.Errorf("Hold(unknown) should release the pose, held %q", k.Held())
	}
}

func TestKeyboardDeterminism(t *testing.T) {
	a := NewKeyboard([]string{"left", "right"}, 7)
	b := NewKeyboard([]string{"left", "right"}, 7)
	a.Hold("left")
	b.Hold("left")
	for i := 0; i < 20; i++ {
		pa, _ := a.Predict(context.Background())
		pb, _ := b.Predict(context.Background())
		if pa[0] != pb[0] {
			t.Fatalf("frame %d differs: %v vs %v", i, pa[0], pb[0])
		}
	}
}

func TestReplayHoldAndExhaust(t *testing.T) {
	r := NewReplay(ReplayFile{Frames: []ReplayFrame{
		{Hold: 2, Predictions: []Prediction{{Label: "left", Probability: 0.9}}},
		{Predictions: []Prediction{{Label: "right", Probability: 0.9}}},
	}})
	ctx := context.Background()

	if r.Len() != 3 {
		t.Errorf("Len() = %d, expected 3", r.Len())
	}
	if r.Interval() != 100*time.Millisecond {
		t.Errorf("Interval() = %v, expected 100ms default", r.Interval())
	}

	expected := []string{"left", "left", "right"}
	for i, label := range expected {
		preds, err := r.Predict(ctx)
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		if preds[0].Label != label {
			t.Errorf("frame %d = %s, expected %s", i, preds[0].Label, label)
		}
	}

	if _, err := r.Predict(ctx); !errors.Is(err, ErrFeedExhausted) {
		t.Errorf("Predict() after last frame error = %v, expected ErrFeedExhausted", err)
	}

	r.Rewind()
	if preds, err := r.Predict(ctx); err != nil || preds[0].Label != "left" {
		t.Errorf("Predict() after Rewind = %v, %v", preds, err)
	}
}

func TestReplayLoop(t *testing.T) {
	r := NewReplay(ReplayFile{Loop: true, Frames: []ReplayFrame{
		{Predictions: []Prediction{{Label: "center", Probability: 1}}},
	}})
	for i := 0; i < 5; i++ {
		if _, err := r.Predict(context.Background()); err != nil {
			t.Fatalf("looping replay failed at frame %d: %v", i, err)
		}
	}
}

func TestLoadReplay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "feed.yaml")
	data := []byte(`interval_ms: 50
frames:
  - hold: 3
    predictions:
      - {label: left, probability: 0.93}
      - {label: center, probability: 0.07}
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	r, err := LoadReplay(path)
	if err != nil {
		t.Fatalf("LoadReplay() failed: %v", err)
	}
	if r.Interval() != 50*time.Millisecond || r.Len() != 3 {
		t.Errorf("LoadReplay() interval=%v len=%d, expected 50ms and 3", r.Interval(), r.Len())
	}

	empty := filepath.Join(dir, "empty.yaml")
	if err := os.WriteFile(empty, []byte("frames: []\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadReplay(empty); err == nil {
		t.Error("LoadReplay() should reject a feed without frames")
	}
	if _, err := LoadReplay(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadReplay() should fail for a missing file")
	}
}

func TestPollDeliversUntilExhausted(t *testing.T) {
	r := NewReplay(ReplayFile{Frames: []ReplayFrame{
		{Hold: 4, Predictions: []Prediction{{Label: "left", Probability: 0.9}}},
	}})

	var got int
	err := Poll(context.Background(), r, time.Millisecond, func([]Prediction) { got++ })
	if !errors.Is(err, ErrFeedExhausted) {
		t.Errorf("Poll() error = %v, expected ErrFeedExhausted", err)
	}
	if got != 4 {
		t.Errorf("Poll() delivered %d frames, expected 4", got)
	}
}

func TestPollStopsOnCancel(t *testing.T) {
	k := NewKeyboard([]string{"left"}, 1)
	ctx, cancel := context.WithCancel(context.Background())

	var got int
	err := Poll(ctx, k, 0, func([]Prediction) {
		got++
		if got == 10 {
			cancel()
		}
	})
	if err != nil {
		t.Errorf("Poll() error = %v, expected nil on cancel", err)
	}
	if got != 10 {
		t.Errorf("Poll() delivered %d frames, expected 10", got)
	}
}
