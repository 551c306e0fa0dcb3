// Package classifier defines the pose classifier collaborator and the
// feeds that stand in for it: a keyboard-driven synthetic classifier, a
// recorded replay and (in package remote) a network feed.
package classifier

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrFeedExhausted is returned by finite feeds once every frame was delivered.
var ErrFeedExhausted = errors.New("classifier: feed exhausted")

// Prediction is one labeled probability of a classifier frame.
type Prediction struct {
	Label       string  `yaml:"label" json:"label"`
	Probability float64 `yaml:"probability" json:"probability"`
}

// Classifier produces one frame of predictions per call.
// Implementations may block until a frame is available.
type Classifier interface {
	Predict(ctx context.Context) ([]Prediction, error)
}

// Poll calls c.Predict at the given interval and hands every frame to
// handle. An interval <= 0 polls back to back, which suits classifiers
// that block until the next frame arrives.
//
// Poll returns nil when ctx is cancelled and the classifier's error
// otherwise (ErrFeedExhausted for a finished replay).
func Poll(ctx context.Context, c Classifier, interval time.Duration, handle func([]Prediction)) error {
	var tick <-chan time.Time
	if interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		if tick != nil {
			select {
			case <-ctx.Done():
				return nil
			case <-tick:
			}
		} else if ctx.Err() != nil {
			return nil
		}

		preds, err := c.Predict(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, ErrFeedExhausted) {
				return err
			}
			return fmt.Errorf("classifier: predict: %w", err)
		}
		handle(preds)
	}
}
