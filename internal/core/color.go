package core

// Color represents a foreground color for a screen cell.
// Values map to ANSI 256-color codes in the platform layer.
type Color uint8

// Palette used by the catcher field.
const (
	ColorDefault   Color = iota
	ColorFruitLow        // apples
	ColorFruitHigh       // grapes
	ColorHazard          // bombs
	ColorFuse            // bomb fuse spark
	ColorBasket          // player basket
	ColorLane            // lane dividers and ground
	ColorHUD             // score/level/time line
	ColorPose            // stable pose label
	ColorAlert           // game over banner
	ColorDim             // secondary text
)

// String returns the palette name, used in screenshots and tests.
func (c Color) String() string {
	switch c {
	case ColorDefault:
		return "default"
	case ColorFruitLow:
		return "fruit-low"
	case ColorFruitHigh:
		return "fruit-high"
	case ColorHazard:
		return "hazard"
	case ColorFuse:
		return "fuse"
	case ColorBasket:
		return "basket"
	case ColorLane:
		return "lane"
	case ColorHUD:
		return "hud"
	case ColorPose:
		return "pose"
	case ColorAlert:
		return "alert"
	case ColorDim:
		return "dim"
	default:
		return "unknown"
	}
}
