// Package tui runs the catcher in a terminal: the Bubble Tea model that
// drives a session, key bindings, the leaderboard view and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pose-catcher/internal/classifier"
)

// TickMsg is sent to advance the session clock by one frame.
type TickMsg time.Time

// SampleMsg asks the keyboard classifier for a frame.
type SampleMsg time.Time

// PredictionsMsg carries a frame from an external classifier feed.
type PredictionsMsg []classifier.Prediction

// FeedErrorMsg reports that the external feed stopped.
type FeedErrorMsg struct {
	Err error
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleCmd schedules the next keyboard classifier frame.
func sampleCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return SampleMsg(t)
	})
}
