// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"roguekernel/pkg/engine/bsp"
	"roguekernel/pkg/game/actors"
)

const mapDumpFilename = "map.txt"

// ErrNoLevel is returned when there is no world or level to dump.
var ErrNoLevel = errors.New("no level")

// cellSymbol returns the single-character symbol for a cell (no actor/exit overlay).
// If revealedOnly is true, cells never seen return '#'; otherwise they show their type.
func cellSymbol(w *actors.World, x, y int, revealedOnly bool) rune {
	m := w.Level.Map
	if revealedOnly && !w.IsExplored(x, y) {
		return '#'
	}
	switch {
	case !m.IsWalkable(x, y):
		return '#'
	case m.IsInFOV(x, y):
		return '*'
	default:
		return '.'
	}
}

// writeMapGrid writes the map with actors and the exit overlaid.
func writeMapGrid(out io.Writer, w *actors.World, revealedOnly bool) {
	m := w.Level.Map
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			if a := w.ActorAt(x, y); a != nil && (!revealedOnly || a.IsPlayer() || m.IsInFOV(x, y)) {
				fmt.Fprintf(out, "%c", a.Glyph)
				continue
			}
			if w.Level.Exit.X == x && w.Level.Exit.Y == y && (!revealedOnly || w.IsExplored(x, y)) {
				fmt.Fprint(out, "E")
				continue
			}
			fmt.Fprintf(out, "%c", cellSymbol(w, x, y, revealedOnly))
		}
		fmt.Fprintln(out)
	}
}

// DumpWorld writes a full debug dump: metadata, legend, revealed-only map,
// fully-revealed map, the BSP partition, rooms and actors.
// Format is human-readable (sections, key: value, consistent structure).
func DumpWorld(out io.Writer, w *actors.World) error {
	if w == nil || w.Level == nil || w.Level.Map == nil {
		return ErrNoLevel
	}

	level := w.Level
	m := level.Map
	p := w.Player()

	// --- Metadata ---
	fmt.Fprintln(out, "=== MAP DUMP DEBUG (level layout, partition, actors) ===")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "--- Metadata ---")
	fmt.Fprintf(out, "level_seed: %d\n", level.Seed)
	fmt.Fprintf(out, "width: %d\n", m.Width())
	fmt.Fprintf(out, "height: %d\n", m.Height())
	fmt.Fprintf(out, "coordinate_system: x,y (0-based, x=horizontal, y=vertical)\n")
	fmt.Fprintf(out, "turn: %d\n", w.Turn)
	fmt.Fprintf(out, "player_cell: %d,%d\n", p.Pos.X, p.Pos.Y)
	fmt.Fprintf(out, "start_cell: %d,%d\n", level.Start.X, level.Start.Y)
	fmt.Fprintf(out, "exit_cell: %d,%d\n", level.Exit.X, level.Exit.Y)
	fmt.Fprintf(out, "torch_radius: %d\n", w.TorchRadius())
	fmt.Fprintf(out, "cells_in_fov: %d\n", m.CountInFOV())
	fmt.Fprintf(out, "scheduled: %d\n", w.Scheduler().Len())
	fmt.Fprintln(out, "")

	// --- Legend ---
	fmt.Fprintln(out, "--- Legend (cell symbols) ---")
	fmt.Fprintln(out, ". = floor  * = floor in view  # = wall or unexplored  E = exit  @ = player  other letters = monsters")
	fmt.Fprintln(out, "")

	fmt.Fprintln(out, "--- Map (explored cells only; unexplored = #) ---")
	writeMapGrid(out, w, true)
	fmt.Fprintln(out, "")

	fmt.Fprintln(out, "--- Map (fully revealed; full layout) ---")
	writeMapGrid(out, w, false)
	fmt.Fprintln(out, "")

	// --- Partition, shallowest nodes first ---
	fmt.Fprintln(out, "--- BSP nodes (level order) ---")
	if level.Tree != nil {
		level.Tree.TraverseLevelOrder(func(n *bsp.Node) bsp.Action {
			if n.IsLeaf() {
				fmt.Fprintf(out, "  level: %d rect: %d,%d %dx%d leaf\n", n.Level(), n.X(), n.Y(), n.W(), n.H())
				return bsp.Continue
			}
			axis := "vertical"
			if n.Horizontal() {
				axis = "horizontal"
			}
			fmt.Fprintf(out, "  level: %d rect: %d,%d %dx%d split: %s at %d\n", n.Level(), n.X(), n.Y(), n.W(), n.H(), axis, n.Position())
			return bsp.Continue
		})
	}
	fmt.Fprintln(out, "")

	fmt.Fprintln(out, "Rooms:")
	for _, r := range level.Rooms {
		fmt.Fprintf(out, "  x: %d y: %d w: %d h: %d name: %q\n", r.X, r.Y, r.W, r.H, r.Name)
	}
	fmt.Fprintln(out, "")

	fmt.Fprintln(out, "Actors:")
	all := append([]*actors.Actor{p}, w.Monsters()...)
	for _, a := range all {
		fmt.Fprintf(out, "  x: %d y: %d kind: %q turns: %d wait: %d visible: %v\n", a.Pos.X, a.Pos.Y, a.Name, a.Turns, a.WaitTime(), m.IsInFOV(a.Pos.X, a.Pos.Y))
	}
	fmt.Fprintln(out, "")

	fmt.Fprintln(out, "Messages:")
	if len(w.Messages) == 0 {
		fmt.Fprintln(out, "  (none)")
	}
	for _, msg := range w.Messages {
		fmt.Fprintf(out, "  %s\n", msg)
	}
	fmt.Fprintln(out, "")

	fmt.Fprintln(out, "=== END MAP DUMP ===")
	return nil
}

// DumpWorldToFile writes DumpWorld's output to path (map.txt when empty) and
// returns the absolute path written.
func DumpWorldToFile(w *actors.World, path string) (string, error) {
	if path == "" {
		path = mapDumpFilename
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := DumpWorld(f, w); err != nil {
		return absPath, err
	}
	if err := f.Sync(); err != nil {
		return absPath, err
	}
	return absPath, nil
}
