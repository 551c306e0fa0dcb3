// Package runner plays catcher sessions without a terminal, steered by a
// classifier feed. Sessions run either in real time on a clock.Loop or on
// a simulated clock that replays a recorded feed as fast as possible.
package runner

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pose-catcher/internal/classifier"
	"github.com/vovakirdan/pose-catcher/internal/clock"
	"github.com/vovakirdan/pose-catcher/internal/config"
	"github.com/vovakirdan/pose-catcher/internal/games/catcher"
	"github.com/vovakirdan/pose-catcher/internal/stabilizer"
	"github.com/vovakirdan/pose-catcher/internal/storage"
)

// simulationSlack is how far past the session duration a simulated run
// may go before it is abandoned.
const simulationSlack = 5 * time.Second

// Options configures a Runner.
type Options struct {
	Game   config.CatcherConfig
	FPS    int
	Seed   int64
	Player string
	Store  *storage.Store // May be nil
	Logger *log.Logger    // Nil uses the default logger
}

// Runner plays headless sessions. Each run gets a fresh session seeded
// with Seed plus the run number.
type Runner struct {
	opts     Options
	schedule *config.LevelSchedule
	runs     int64
}

// New creates a runner.
func New(opts Options) *Runner {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	return &Runner{opts: opts, schedule: config.NewLevelSchedule(opts.Game)}
}

// game is one session wired to its loop and pilot.
type game struct {
	loop    *clock.Loop
	session *catcher.Session
	pilot   *catcher.Pilot
	done    chan struct{}
}

func (r *Runner) newGame(start time.Time) *game {
	seed := r.opts.Seed + r.runs
	r.runs++

	cfg := r.opts.Game
	loop := clock.NewLoop(start)
	bus := catcher.NewBus(r.opts.Logger)
	session := catcher.NewSession(cfg, loop, bus, rand.New(rand.NewSource(seed)), r.opts.Logger)
	g := &game{
		loop:    loop,
		session: session,
		pilot:   catcher.NewPilot(session, stabilizer.New(cfg.Stabilizer.Threshold, cfg.Stabilizer.SmoothingFrames)),
		done:    make(chan struct{}),
	}

	bus.Subscribe(catcher.SubscriberFunc(func(e catcher.Event) error {
		switch e.Kind {
		case catcher.EventCollect:
			r.opts.Logger.Debug("collect", "item", e.Item, "points", e.Points, "score", e.Score)
		case catcher.EventHazard:
			r.opts.Logger.Debug("hazard", "time_left", e.TimeLeft)
		case catcher.EventLevelUp:
			r.opts.Logger.Debug("level up", "level", e.Level, "time_left", e.TimeLeft)
		case catcher.EventEnded:
			close(g.done)
		}
		return nil
	}))
	return g
}

// Simulate plays one session against a recorded feed on a simulated
// clock: frames advance by 1/FPS and the replay is sampled at its own
// interval. An exhausted feed leaves the basket where it is.
func (r *Runner) Simulate(replay *classifier.Replay) (catcher.Summary, error) {
	start := time.Unix(0, 0)
	g := r.newGame(start)
	g.session.Start()

	frame := time.Second / time.Duration(r.opts.FPS)
	sample := replay.Interval()
	limit := start.Add(time.Duration(r.opts.Game.Session.Duration)*time.Second + simulationSlack)

	now := start
	nextSample := start
	exhausted := false
	for g.session.Status() == catcher.StatusRunning {
		if now.After(limit) {
			g.session.Stop()
			return catcher.Summary{}, errors.New("runner: simulated session did not end")
		}

		for !exhausted && !nextSample.After(now) {
			preds, err := replay.Predict(context.Background())
			if err != nil {
				exhausted = true
				r.opts.Logger.Debug("feed exhausted", "at", now.Sub(start))
				break
			}
			g.pilot.Feed(preds)
			nextSample = nextSample.Add(sample)
		}

		now = now.Add(frame)
		g.loop.Advance(now)
	}

	return r.finish(g)
}

// Play runs one session in real time, polling feed at interval on its
// own goroutine. Frames are handed to the loop goroutine with Post. Play
// returns when the session ends or ctx is cancelled, which stops it.
func (r *Runner) Play(ctx context.Context, feed classifier.Classifier, interval time.Duration) (catcher.Summary, error) {
	g := r.newGame(time.Now())

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	feedErr := make(chan error, 1)
	go func() {
		feedErr <- classifier.Poll(runCtx, feed, interval, func(preds []classifier.Prediction) {
			g.loop.Post(func() { g.pilot.Feed(preds) })
		})
	}()

	loopDone := make(chan struct{})
	g.loop.Post(g.session.Start)
	go func() {
		defer close(loopDone)
		//nolint:errcheck // Run only returns when its context is done
		g.loop.Run(runCtx, r.opts.FPS)
	}()

	for running := true; running; {
		select {
		case <-g.done:
			running = false
		case err := <-feedErr:
			if err != nil && !errors.Is(err, classifier.ErrFeedExhausted) {
				r.opts.Logger.Warn("classifier feed stopped", "err", err)
			}
			feedErr = nil
		case <-runCtx.Done():
			running = false
		}
	}
	cancel()
	<-loopDone

	// The loop goroutine has exited; stopping here is race free
	g.session.Stop()
	return r.finish(g)
}

// finish records the summary of an ended session.
func (r *Runner) finish(g *game) (catcher.Summary, error) {
	summary, ok := g.session.Summary()
	if !ok {
		return catcher.Summary{}, errors.New("runner: session has no summary")
	}
	if maxLevel := r.schedule.MaxLevel(); summary.Level > maxLevel {
		return summary, fmt.Errorf("runner: session reached level %d, schedule ends at %d", summary.Level, maxLevel)
	}

	r.opts.Logger.Info("session ended",
		"session", summary.SessionID,
		"score", summary.FinalScore,
		"level", summary.Level,
		"cause", summary.Cause,
	)

	if r.opts.Store != nil {
		_, err := r.opts.Store.SaveResult(storage.Result{
			SessionID: summary.SessionID.String(),
			Player:    r.opts.Player,
			Score:     summary.FinalScore,
			Level:     summary.Level,
			Cause:     summary.Cause.String(),
		})
		if err != nil {
			return summary, fmt.Errorf("runner: %w", err)
		}
	}
	return summary, nil
}
