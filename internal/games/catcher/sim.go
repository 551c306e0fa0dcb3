package catcher

import (
	"slices"

	"github.com/vovakirdan/pose-catcher/internal/core"
)

// Advance runs one simulation step of dtMs milliseconds: spawn if due,
// move every item, then resolve catches and misses. Items are visited in
// reverse spawn order so removal is safe. Non-positive or NaN deltas
// move nothing. Has no effect unless the session is running.
func (s *Session) Advance(dtMs float64) {
	if s.status != StatusRunning {
		return
	}
	if !core.Finite(dtMs) || dtMs < 0 {
		dtMs = 0
	}
	gen := s.generation

	s.sinceSpawnMs += dtMs
	if s.sinceSpawnMs > s.spawnIntervalMs {
		s.items = append(s.items, s.spawner.Spawn(s.level))
		s.sinceSpawnMs = 0
	}

	field := s.cfg.Field
	top, ground := field.BasketTopY(), field.GroundY
	scale := dtMs / field.ReferenceFrameMs

	for i := len(s.items) - 1; i >= 0; i-- {
		item := &s.items[i]
		item.Y += item.Speed * scale

		if item.Lane == s.lane && item.Y >= top && item.Y < ground {
			caught := *item
			s.items = slices.Delete(s.items, i, i+1)
			s.catch(gen, caught)
			// A subscriber may have stopped or restarted the session
			if s.generation != gen || s.status != StatusRunning {
				return
			}
			continue
		}

		if item.Y > ground {
			s.items = slices.Delete(s.items, i, i+1)
		}
	}
}

func (s *Session) catch(gen uint64, item Item) {
	if item.Kind == KindHazard {
		s.score = 0
		s.emit(Event{Kind: EventHazard, Item: item.Kind})
		if s.generation == gen && s.status == StatusRunning {
			s.end(CauseHazard)
		}
		return
	}

	s.score += item.Points
	s.emit(Event{Kind: EventCollect, Item: item.Kind, Points: item.Points})
}
