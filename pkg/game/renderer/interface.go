package renderer

import (
	"roguekernel/pkg/game/actors"
)

// TextStyle represents different text styling options
type TextStyle int

const (
	StyleNormal TextStyle = iota
	StyleFloor
	StyleWall
	StyleRemembered
	StylePlayer
	StyleMonster
	StyleExit
	StyleSubtle
)

// Renderer defines the interface for rendering backends.
type Renderer interface {
	// Init initializes the renderer (colors, locale-dependent labels, etc.)
	Init()

	// Clear clears the display
	Clear()

	// RenderFrame renders the map around the player, the status line and the
	// message log.
	RenderFrame(w *actors.World)

	// StyleText applies a style to text and returns the styled string
	StyleText(text string, style TextStyle) string

	// GetViewportSize returns the current viewport dimensions (rows, cols)
	GetViewportSize() (rows, cols int)
}

// Current holds the active renderer instance
var Current Renderer

// SetRenderer sets the active renderer
func SetRenderer(r Renderer) {
	Current = r
}

// Init initializes the current renderer
func Init() {
	if Current != nil {
		Current.Init()
	}
}

// Clear clears the display using the current renderer
func Clear() {
	if Current != nil {
		Current.Clear()
	}
}

// RenderFrame renders a complete frame
func RenderFrame(w *actors.World) {
	if Current != nil {
		Current.RenderFrame(w)
	}
}

// StyleText applies a style to text
func StyleText(text string, style TextStyle) string {
	if Current != nil {
		return Current.StyleText(text, style)
	}
	return text
}

// GetViewportSize returns viewport dimensions
func GetViewportSize() (rows, cols int) {
	if Current != nil {
		return Current.GetViewportSize()
	}
	return 15, 30
}
