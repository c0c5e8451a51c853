package renderer

import (
	"roguekernel/pkg/game/actors"
)

// Icons shared by every backend.
const (
	IconPlayer = "@"
	IconFloor  = "."
	IconWall   = "#"
	IconExit   = ">"
	IconVoid   = " "
)

// CellGlyph decides what to draw at (x, y): actors and the current field of
// view first, then remembered cells in a dimmer style, then nothing.
func CellGlyph(w *actors.World, x, y int) (string, TextStyle) {
	m := w.Level.Map
	if !m.IsValidPosition(x, y) {
		return IconVoid, StyleNormal
	}

	visible := m.IsInFOV(x, y)
	explored := w.IsExplored(x, y)

	if a := w.ActorAt(x, y); a != nil {
		if a.IsPlayer() {
			return IconPlayer, StylePlayer
		}
		if visible {
			return string(a.Glyph), StyleMonster
		}
	}

	if w.Level.Exit.X == x && w.Level.Exit.Y == y && explored {
		if visible {
			return IconExit, StyleExit
		}
		return IconExit, StyleRemembered
	}

	icon := IconWall
	if m.IsWalkable(x, y) {
		icon = IconFloor
	}

	switch {
	case visible && icon == IconFloor:
		return icon, StyleFloor
	case visible:
		return icon, StyleWall
	case explored:
		return icon, StyleRemembered
	}
	return IconVoid, StyleNormal
}
