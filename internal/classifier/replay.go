package classifier

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// ReplayFrame is one recorded frame, repeated Hold times.
type ReplayFrame struct {
	Hold        int          `yaml:"hold"`
	Predictions []Prediction `yaml:"predictions"`
}

// ReplayFile is the on-disk format of a recorded feed.
//
//	interval_ms: 100
//	loop: false
//	frames:
//	  - hold: 10
//	    predictions:
//	      - {label: left, probability: 0.93}
//	      - {label: center, probability: 0.05}
type ReplayFile struct {
	IntervalMs int           `yaml:"interval_ms"`
	Loop       bool          `yaml:"loop"`
	Frames     []ReplayFrame `yaml:"frames"`
}

// Replay plays back a recorded feed frame by frame.
type Replay struct {
	mu       sync.Mutex
	file     ReplayFile
	frame    int // index into file.Frames
	repeated int // times the current frame was returned
}

// NewReplay creates a replay from decoded frames.
func NewReplay(file ReplayFile) *Replay {
	for i := range file.Frames {
		if file.Frames[i].Hold < 1 {
			file.Frames[i].Hold = 1
		}
	}
	if file.IntervalMs <= 0 {
		file.IntervalMs = 100
	}
	return &Replay{file: file}
}

// LoadReplay reads a YAML replay file.
func LoadReplay(path string) (*Replay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("classifier: read replay %s: %w", path, err)
	}
	var file ReplayFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("classifier: parse replay %s: %w", path, err)
	}
	if len(file.Frames) == 0 {
		return nil, fmt.Errorf("classifier: replay %s has no frames", path)
	}
	return NewReplay(file), nil
}

// Interval returns the recorded frame cadence.
func (r *Replay) Interval() time.Duration {
	return time.Duration(r.file.IntervalMs) * time.Millisecond
}

// Len returns the total number of frames including holds.
func (r *Replay) Len() int {
	n := 0
	for _, f := range r.file.Frames {
		n += f.Hold
	}
	return n
}

// Rewind restarts playback from the first frame.
func (r *Replay) Rewind() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frame, r.repeated = 0, 0
}

// Predict returns the next recorded frame. Finite replays return
// ErrFeedExhausted after the last one.
func (r *Replay) Predict(ctx context.Context) ([]Prediction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frame >= len(r.file.Frames) {
		if !r.file.Loop || len(r.file.Frames) == 0 {
			return nil, ErrFeedExhausted
		}
		r.frame, r.repeated = 0, 0
	}

	f := r.file.Frames[r.frame]
	r.repeated++
	if r.repeated >= f.Hold {
		r.frame++
		r.repeated = 0
	}
	return append([]Prediction(nil), f.Predictions...), nil
}
