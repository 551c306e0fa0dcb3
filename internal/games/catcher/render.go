package catcher

import (
	"fmt"

	"github.com/vovakirdan/pose-catcher/internal/core"
)

// Visual characters for rendering
const (
	FruitLowChar  = '●'
	FruitHighChar = '◆'
	HazardChar    = '✱'
	FuseChar      = '\''
	LaneChar      = '┊'
	Basket        = "╰───╯"
)

// Layout rows
const (
	hudRow   = 0
	fieldTop = 1 // box border; inner rows start one below
)

// ScreenRenderer draws snapshots into a character screen: a HUD line,
// a boxed field split into three lanes, the basket on the bottom row and
// a banner once the game has ended.
type ScreenRenderer struct {
	screen *core.Screen
	Hint   string // Shown under the game over banner
}

var _ Renderer = (*ScreenRenderer)(nil)

// NewScreenRenderer creates a renderer drawing into screen.
func NewScreenRenderer(screen *core.Screen) *ScreenRenderer {
	return &ScreenRenderer{screen: screen}
}

// Screen returns the target screen.
func (r *ScreenRenderer) Screen() *core.Screen {
	return r.screen
}

// Render clears the screen and draws the snapshot.
func (r *ScreenRenderer) Render(snap Snapshot) error {
	dst := r.screen
	dst.Clear()

	r.drawHUD(snap)

	w, h := dst.Width(), dst.Height()
	if w < 3*len([]rune(Basket))+2 || h < 6 {
		return nil // Too small for a field
	}

	box := core.NewRect(0, fieldTop, w, h-fieldTop)
	dst.DrawBox(box, core.ColorLane)

	innerTop := fieldTop + 1
	innerBottom := h - 2
	lw := (w - 2) / NumLanes
	for i := 1; i < NumLanes; i++ {
		dst.DrawVLine(1+i*lw, innerTop, innerBottom-innerTop, LaneChar, core.ColorDim)
	}

	for _, item := range snap.Items {
		if item.Y < 0 {
			continue // Still above the field
		}
		x := LaneColumn(item.Lane, w)
		y := fieldRow(item.Y, snap.Field.GroundY, innerTop, innerBottom)
		switch item.Kind {
		case KindFruitLow:
			dst.SetColored(x, y, FruitLowChar, core.ColorFruitLow)
		case KindFruitHigh:
			dst.SetColored(x, y, FruitHighChar, core.ColorFruitHigh)
		case KindHazard:
			dst.SetColored(x, y, HazardChar, core.ColorHazard)
			if y-1 >= innerTop {
				dst.SetColored(x, y-1, FuseChar, core.ColorFuse)
			}
		}
	}

	bx := LaneColumn(snap.Lane, w) - len([]rune(Basket))/2
	dst.DrawText(bx, innerBottom, Basket, core.ColorBasket)

	if snap.Status == StatusEnded {
		r.drawBanner(snap, (innerTop+innerBottom)/2)
	}
	return nil
}

func (r *ScreenRenderer) drawHUD(snap Snapshot) {
	st := snap.State()
	hud := fmt.Sprintf(" SCORE %d  LEVEL %d  TIME %02d", st.Score, st.Level, st.TimeLeft)
	r.screen.DrawText(0, hudRow, hud, core.ColorHUD)

	if snap.Duration > 0 {
		// Countdown bar on the right side of the HUD
		barW := min(20, r.screen.Width()-len(hud)-3)
		if barW > 0 {
			filled := core.Clamp(barW*st.TimeLeft/snap.Duration, 0, barW)
			x := r.screen.Width() - barW - 1
			r.screen.DrawHLine(x, hudRow, barW, '░', core.ColorDim)
			r.screen.DrawHLine(x, hudRow, filled, '█', core.ColorHUD)
		}
	}
}

func (r *ScreenRenderer) drawBanner(snap Snapshot, y int) {
	title := "GAME OVER"
	if snap.Cause == CauseHazard {
		title = "BOOM! GAME OVER"
	}
	// Blank the rows behind the banner so falling items do not show through
	r.screen.DrawRect(core.NewRect(1, y-1, r.screen.Width()-2, 3), ' ', core.ColorDefault)
	r.screen.DrawTextCentered(y-1, title, core.ColorAlert)
	r.screen.DrawTextCentered(y, fmt.Sprintf("final score %d", snap.Score), core.ColorHUD)
	if r.Hint != "" {
		r.screen.DrawTextCentered(y+1, r.Hint, core.ColorDim)
	}
}

// LaneColumn returns the screen column at the center of a lane.
func LaneColumn(l Lane, width int) int {
	lw := (width - 2) / NumLanes
	return 1 + int(l)*lw + lw/2
}

// fieldRow maps a world Y in [0, groundY] to a row in [top, bottom].
func fieldRow(y, groundY float64, top, bottom int) int {
	if groundY <= 0 {
		return bottom
	}
	frac := core.ClampF(y/groundY, 0, 1)
	return top + int(frac*float64(bottom-top))
}
