// Package catcher implements the lane catcher game: items fall through
// three lanes, the player moves a basket between lanes to catch fruit,
// and a single hazard ends the session.
package catcher

// Lane is one of the three columns items fall through.
type Lane int

const (
	LaneLeft Lane = iota
	LaneCenter
	LaneRight
)

// NumLanes is the number of lanes.
const NumLanes = 3

func (l Lane) String() string {
	switch l {
	case LaneLeft:
		return "left"
	case LaneCenter:
		return "center"
	case LaneRight:
		return "right"
	default:
		return "unknown"
	}
}

// Valid reports whether l is one of the three lanes.
func (l Lane) Valid() bool {
	return l >= LaneLeft && l <= LaneRight
}

// Kind is the type of a falling item.
type Kind int

const (
	KindFruitLow Kind = iota
	KindFruitHigh
	KindHazard
)

func (k Kind) String() string {
	switch k {
	case KindFruitLow:
		return "fruit_low"
	case KindFruitHigh:
		return "fruit_high"
	case KindHazard:
		return "hazard"
	default:
		return "unknown"
	}
}

// Item is a falling object. Lane, Kind, Speed and Points are fixed at
// spawn; Y only grows.
type Item struct {
	Lane   Lane
	Kind   Kind
	Y      float64 // World units, increasing downward
	Speed  float64 // World units per reference frame
	Points int     // Awarded on catch (unused for hazards)
}
