package tui

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pose-catcher/internal/audio"
	"github.com/vovakirdan/pose-catcher/internal/classifier"
	"github.com/vovakirdan/pose-catcher/internal/clock"
	"github.com/vovakirdan/pose-catcher/internal/config"
	"github.com/vovakirdan/pose-catcher/internal/core"
	"github.com/vovakirdan/pose-catcher/internal/games/catcher"
	"github.com/vovakirdan/pose-catcher/internal/stabilizer"
	"github.com/vovakirdan/pose-catcher/internal/storage"
)

// keyboardSampleInterval is how often the keyboard classifier is sampled.
const keyboardSampleInterval = 50 * time.Millisecond

// Options configures a game screen.
type Options struct {
	Game    config.CatcherConfig
	Runtime core.RuntimeConfig
	Store   *storage.Store        // Results of finished games; may be nil
	Sound   *audio.SoundManager   // May be nil
	Logger  *log.Logger           // Nil uses the default logger
	Player  string                // Recorded with results
	Feed    classifier.Classifier // External feed; nil plays with the keyboard
}

// Model is the Bubble Tea model for one player's game.
type Model struct {
	opts     Options
	loop     *clock.Loop
	session  *catcher.Session
	pilot    *catcher.Pilot
	keyboard *classifier.Keyboard
	renderer *catcher.ScreenRenderer
	keys     *KeyMapper
	help     help.Model

	scoreboard  ScoreboardModel
	showScores  bool
	resultSaved bool
	highScore   int
	status      string // One-line notice shown in the help row
	quitting    bool
}

// NewModel creates a model and its session. The session starts in Init.
func NewModel(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	// Use time-based seed if not specified
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = 60
	}

	cfg := opts.Game
	loop := clock.NewLoop(time.Now())
	bus := catcher.NewBus(opts.Logger)
	session := catcher.NewSession(cfg, loop, bus, rand.New(rand.NewSource(opts.Runtime.Seed)), opts.Logger)
	pilot := catcher.NewPilot(session, stabilizer.New(cfg.Stabilizer.Threshold, cfg.Stabilizer.SmoothingFrames))
	if opts.Sound != nil {
		bus.Subscribe(opts.Sound)
	}

	screen := core.NewScreen(opts.Runtime.ScreenW, max(1, opts.Runtime.ScreenH-1))
	renderer := catcher.NewScreenRenderer(screen)
	renderer.Hint = "press r to play again, tab for scores"
	session.AddRenderer(renderer)

	keys := NewKeyMapper()
	return Model{
		opts:       opts,
		loop:       loop,
		session:    session,
		pilot:      pilot,
		keyboard:   classifier.NewKeyboard(cfg.Controls.Labels(), opts.Runtime.Seed),
		renderer:   renderer,
		keys:       keys,
		help:       help.New(),
		scoreboard: NewScoreboardModel(opts.Store, opts.Runtime.ScreenW, opts.Runtime.ScreenH),
	}
}

// Init starts the session and the tick loop.
func (m Model) Init() tea.Cmd {
	m.session.Start()
	m.keyboard.Hold(m.opts.Game.Controls.Center)

	cmds := []tea.Cmd{tickCmd(m.opts.Runtime.TickRate)}
	if m.opts.Feed == nil {
		cmds = append(cmds, sampleCmd(keyboardSampleInterval))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case SampleMsg:
		preds, err := m.keyboard.Predict(context.Background())
		if err == nil {
			m.pilot.Feed(preds)
		}
		return m, sampleCmd(keyboardSampleInterval)

	case PredictionsMsg:
		m.pilot.Feed(msg)
		return m, nil

	case FeedErrorMsg:
		if errors.Is(msg.Err, classifier.ErrFeedExhausted) {
			m.status = "feed finished"
		} else {
			m.status = fmt.Sprintf("feed stopped: %v", msg.Err)
		}
		m.opts.Logger.Warn("classifier feed stopped", "err", msg.Err)
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.showScores {
		next, cmd := m.scoreboard.Update(msg)
		m.scoreboard = next.(ScoreboardModel)
		switch {
		case m.scoreboard.IsQuitting():
			m.quitting = true
			m.session.Stop()
			return m, tea.Quit
		case m.scoreboard.IsGoingBack():
			m.showScores = false
			m.scoreboard.goingBack = false
		}
		return m, cmd
	}

	if key.Matches(msg, m.keys.Keys().Scores) {
		m.scoreboard.Reload()
		m.showScores = true
		return m, nil
	}

	switch action := m.keys.MapKey(msg); action {
	case core.ActionQuit:
		m.quitting = true
		m.session.Stop()
		return m, tea.Quit

	case core.ActionLeft, core.ActionCenter, core.ActionRight:
		if m.opts.Feed == nil {
			m.keyboard.Hold(m.poseLabel(action))
		}

	case core.ActionRestart:
		if m.session.Status() != catcher.StatusRunning {
			m.session.Start()
			m.resultSaved = false
			m.status = ""
		}

	case core.ActionStop:
		m.session.Stop()

	case core.ActionSound:
		if m.opts.Sound != nil {
			if m.opts.Sound.Toggle() {
				m.status = "sound on"
			} else {
				m.status = "sound off"
			}
		}
	}

	return m, nil
}

// poseLabel maps a pose action to the configured classifier label.
func (m Model) poseLabel(a core.Action) string {
	switch a {
	case core.ActionLeft:
		return m.opts.Game.Controls.Left
	case core.ActionRight:
		return m.opts.Game.Controls.Right
	default:
		return m.opts.Game.Controls.Center
	}
}

// handleResize processes window resize events. The session keeps running.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.opts.Runtime.ScreenW = msg.Width
	m.opts.Runtime.ScreenH = msg.Height
	m.renderer.Screen().Resize(msg.Width, max(1, msg.Height-1))
	m.help.Width = msg.Width

	next, _ := m.scoreboard.Update(msg)
	m.scoreboard = next.(ScoreboardModel)
	return m, nil
}

// handleTick advances the session clock.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.loop.Advance(now)

	// Save result on game over (once)
	if summary, ended := m.session.Summary(); ended && !m.resultSaved {
		m.saveResult(summary)
		m.resultSaved = true
	}

	return m, tickCmd(m.opts.Runtime.TickRate)
}

func (m *Model) saveResult(summary catcher.Summary) {
	if m.opts.Store == nil {
		return
	}
	_, err := m.opts.Store.SaveResult(storage.Result{
		SessionID: summary.SessionID.String(),
		Player:    m.opts.Player,
		Score:     summary.FinalScore,
		Level:     summary.Level,
		Cause:     summary.Cause.String(),
	})
	if err != nil {
		m.opts.Logger.Warn("could not save result", "err", err)
		return
	}
	if high, err := m.opts.Store.HighScore(); err == nil {
		m.highScore = high
	}
	m.scoreboard.Highlight(summary.SessionID.String())
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	dir := filepath.Join(os.Getenv("HOME"), ".catcher", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("catcher_%s.txt", timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.renderer.Screen().String()), 0o600)
	m.status = "screenshot saved"
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showScores {
		return m.scoreboard.View()
	}

	// Frames render while running; otherwise draw the current state here
	if m.session.Status() != catcher.StatusRunning {
		//nolint:errcheck // ScreenRenderer never fails
		m.renderer.Render(m.session.Snapshot())
	}
	m.drawPose()

	footer := m.help.View(m.keys.Keys())
	if m.status != "" {
		footer = m.status + "  " + footer
	}
	if m.highScore > 0 {
		footer = fmt.Sprintf("best %d  %s", m.highScore, footer)
	}
	footerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	return RenderScreen(m.renderer.Screen()) + "\n" + footerStyle.Render(footer)
}

// drawPose writes the stable pose and the raw classifier frame into the
// bottom border of the field.
func (m Model) drawPose() {
	screen := m.renderer.Screen()
	y := screen.Height() - 1
	if y < 2 {
		return
	}

	pose := m.pilot.Pose()
	if pose == stabilizer.None {
		pose = "..."
	}
	text := fmt.Sprintf(" pose: %s ", pose)
	screen.DrawText(2, y, text, core.ColorPose)

	x := 2 + len([]rune(text)) + 1
	for _, p := range m.pilot.Raw() {
		bar := fmt.Sprintf(" %s %s ", p.Label, probabilityBar(p.Probability, 5))
		if x+len([]rune(bar)) >= screen.Width()-1 {
			break
		}
		screen.DrawText(x, y, bar, core.ColorDim)
		x += len([]rune(bar))
	}
}

// probabilityBar renders p in [0,1] as a bar of width cells.
func probabilityBar(p float64, width int) string {
	filled := int(core.ClampF(p, 0, 1)*float64(width) + 0.5)
	return strings.Repeat("▮", filled) + strings.Repeat("▯", width-filled)
}

// Session exposes the model's session, for tests.
func (m Model) Session() *catcher.Session {
	return m.session
}

// Run starts the Bubble Tea program. When opts.Feed is set, it is
// polled on its own goroutine and frames are forwarded to the model.
func Run(ctx context.Context, opts Options, interval time.Duration) error {
	model := NewModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if opts.Feed != nil {
		feedCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			err := classifier.Poll(feedCtx, opts.Feed, interval, func(preds []classifier.Prediction) {
				p.Send(PredictionsMsg(preds))
			})
			if err != nil {
				p.Send(FeedErrorMsg{Err: err})
			}
		}()
	}

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
