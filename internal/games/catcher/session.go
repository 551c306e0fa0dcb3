package catcher

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/pose-catcher/internal/clock"
	"github.com/vovakirdan/pose-catcher/internal/config"
)

// Session owns one game: score, level, countdown, basket lane and the
// falling items. It runs two timelines on its scheduler, a frame
// callback that advances the simulation and a one-second countdown
// timer, and cancels both together when it ends.
//
// A Session is not safe for concurrent use. Call it from the goroutine
// that drives its scheduler.
type Session struct {
	cfg      config.CatcherConfig
	schedule *config.LevelSchedule
	sched    clock.Scheduler
	bus      *Bus
	spawner  *Spawner
	logger   *log.Logger

	renderers []Renderer

	id              uuid.UUID
	status          Status
	cause           Cause
	score           int
	level           int
	timeLeft        int
	lane            Lane
	spawnIntervalMs float64
	sinceSpawnMs    float64
	items           []Item

	// generation changes on every start and end; callbacks scheduled for
	// an older generation return without touching state.
	generation uint64
	frame      clock.Handle
	timer      clock.Handle
	lastFrame  time.Time
	summary    Summary
}

// NewSession creates an idle session. cfg should be validated.
func NewSession(cfg config.CatcherConfig, sched clock.Scheduler, bus *Bus, rng Rand, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.Default()
	}
	if bus == nil {
		bus = NewBus(logger)
	}
	s := &Session{
		cfg:      cfg,
		schedule: config.NewLevelSchedule(cfg),
		sched:    sched,
		bus:      bus,
		spawner:  NewSpawner(cfg, rng),
		logger:   logger,
	}
	s.reset()
	s.status = StatusIdle
	return s
}

// Bus returns the session's event bus.
func (s *Session) Bus() *Bus { return s.bus }

// AddRenderer registers a renderer called once per frame.
func (s *Session) AddRenderer(r Renderer) {
	s.renderers = append(s.renderers, r)
}

func (s *Session) reset() {
	s.id = uuid.New()
	s.cause = CauseNone
	s.score = 0
	s.level = 1
	s.timeLeft = s.cfg.Session.Duration
	s.lane = LaneCenter
	s.spawnIntervalMs = s.schedule.SpawnInterval(1)
	// The spawn clock starts expired so the first frame spawns
	s.sinceSpawnMs = math.Inf(1)
	s.items = s.items[:0]
	s.summary = Summary{}
}

// Start begins a new game. A running game is stopped first.
func (s *Session) Start() {
	if s.status == StatusRunning {
		s.Stop()
	}

	s.generation++
	gen := s.generation
	s.reset()
	s.status = StatusRunning
	s.lastFrame = s.sched.Now()

	s.timer = s.sched.Every(time.Second, func(time.Time) { s.onSecond(gen) })
	s.frame = s.sched.RequestFrame(func(now time.Time) { s.onFrame(gen, now) })

	s.logger.Debug("session started", "session", s.id, "duration", s.timeLeft)
	s.emit(Event{Kind: EventStarted})
}

// Stop ends a running game with CauseStopped. No-op otherwise.
func (s *Session) Stop() {
	if s.status != StatusRunning {
		return
	}
	s.end(CauseStopped)
}

// end cancels both timelines, then publishes the summary.
func (s *Session) end(cause Cause) {
	s.frame.Cancel()
	s.timer.Cancel()
	s.generation++

	s.status = StatusEnded
	s.cause = cause
	s.summary = Summary{
		SessionID:  s.id,
		FinalScore: s.score,
		Level:      s.level,
		Cause:      cause,
	}

	s.logger.Debug("session ended", "session", s.id, "score", s.score, "cause", cause)
	s.emit(Event{Kind: EventEnded, Summary: s.summary})
}

// SetLane moves the basket. Ignored unless running.
func (s *Session) SetLane(l Lane) bool {
	if s.status != StatusRunning || !l.Valid() {
		return false
	}
	s.lane = l
	return true
}

// Command moves the basket to the lane mapped to a classifier label.
// Unknown labels and the empty label are ignored.
func (s *Session) Command(label string) bool {
	switch label {
	case "":
		return false
	case s.cfg.Controls.Left:
		return s.SetLane(LaneLeft)
	case s.cfg.Controls.Center:
		return s.SetLane(LaneCenter)
	case s.cfg.Controls.Right:
		return s.SetLane(LaneRight)
	default:
		return false
	}
}

func (s *Session) onFrame(gen uint64, now time.Time) {
	if gen != s.generation || s.status != StatusRunning {
		return
	}

	dt := float64(now.Sub(s.lastFrame)) / float64(time.Millisecond)
	s.lastFrame = now
	s.Advance(dt)

	if gen != s.generation && s.status == StatusRunning {
		// Restarted by a subscriber; the new generation has its own frame
		return
	}
	s.render()
	if gen == s.generation && s.status == StatusRunning {
		s.frame = s.sched.RequestFrame(func(now time.Time) { s.onFrame(gen, now) })
	}
}

func (s *Session) onSecond(gen uint64) {
	if gen != s.generation || s.status != StatusRunning {
		return
	}

	s.timeLeft = max(0, s.timeLeft-1)
	if s.schedule.IsLevelUp(s.timeLeft) {
		s.level++
		s.spawnIntervalMs = s.schedule.SpawnInterval(s.level)
		s.emit(Event{Kind: EventLevelUp})
		if gen != s.generation {
			return
		}
	}
	if s.timeLeft <= 0 {
		s.end(CauseTimeout)
	}
}

func (s *Session) render() {
	if len(s.renderers) == 0 {
		return
	}
	snap := s.Snapshot()
	for _, r := range s.renderers {
		if err := renderSafely(r, snap); err != nil {
			s.logger.Warn("renderer failed", "session", s.id, "err", err)
		}
	}
}

func renderSafely(r Renderer, snap Snapshot) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return r.Render(snap)
}

// emit fills in the session fields and publishes e.
func (s *Session) emit(e Event) {
	e.SessionID = s.id
	e.Score = s.score
	e.Level = s.level
	e.TimeLeft = s.timeLeft
	s.bus.Emit(e)
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	items := make([]Item, len(s.items))
	copy(items, s.items)
	return Snapshot{
		SessionID: s.id,
		Status:    s.status,
		Cause:     s.cause,
		Lane:      s.lane,
		Items:     items,
		Score:     s.score,
		Level:     s.level,
		TimeLeft:  s.timeLeft,
		Duration:  s.cfg.Session.Duration,
		Field:     s.cfg.Field,
	}
}

// Summary returns the result of the last ended game.
func (s *Session) Summary() (Summary, bool) {
	return s.summary, s.status == StatusEnded
}

// ID returns the identifier of the current or last game.
func (s *Session) ID() uuid.UUID { return s.id }

// Status returns the lifecycle state.
func (s *Session) Status() Status { return s.status }

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// Level returns the current level.
func (s *Session) Level() int { return s.level }

// TimeLeft returns the remaining seconds.
func (s *Session) TimeLeft() int { return s.timeLeft }

// Lane returns the basket lane.
func (s *Session) Lane() Lane { return s.lane }

// SpawnIntervalMs returns the current spawn interval.
func (s *Session) SpawnIntervalMs() float64 { return s.spawnIntervalMs }

// Items returns a copy of the falling items in spawn order.
func (s *Session) Items() []Item {
	return append([]Item(nil), s.items...)
}
