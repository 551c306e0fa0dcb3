package catcher

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/vovakirdan/pose-catcher/internal/config"
	"github.com/vovakirdan/pose-catcher/internal/core"
)

// Status is the lifecycle state of a session.
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusEnded
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Cause is why a session ended.
type Cause int

const (
	CauseNone    Cause = iota
	CauseTimeout       // Countdown reached zero
	CauseHazard        // Hazard caught
	CauseStopped       // Stop called while running
)

func (c Cause) String() string {
	switch c {
	case CauseNone:
		return "none"
	case CauseTimeout:
		return "timeout"
	case CauseHazard:
		return "hazard"
	case CauseStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Summary is the terminal result of a session.
type Summary struct {
	SessionID  uuid.UUID
	FinalScore int
	Level      int
	Cause      Cause
}

func (s Summary) String() string {
	return fmt.Sprintf("score %d (level %d, %s)", s.FinalScore, s.Level, s.Cause)
}

// Snapshot is a read-only copy of session state for renderers.
type Snapshot struct {
	SessionID uuid.UUID
	Status    Status
	Cause     Cause
	Lane      Lane
	Items     []Item
	Score     int
	Level     int
	TimeLeft  int
	Duration  int
	Field     config.FieldConfig
}

// State converts the snapshot to the platform-facing game state.
func (s Snapshot) State() core.GameState {
	return core.GameState{
		Score:    s.Score,
		Level:    s.Level,
		TimeLeft: s.TimeLeft,
		GameOver: s.Status == StatusEnded,
	}
}

// Renderer consumes one snapshot per frame.
type Renderer interface {
	Render(s Snapshot) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(s Snapshot) error

// Render calls f(s).
func (f RendererFunc) Render(s Snapshot) error {
	return f(s)
}
