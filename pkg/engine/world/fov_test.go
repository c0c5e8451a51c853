// Package world tests map queries and restrictive shadowcasting.
package world

import (
	"testing"
)

// openMap returns a w x h map where every cell is walkable and transparent.
func openMap(w, h int) *Map {
	m := NewMap(w, h)
	m.Clear(true, true)
	return m
}

func TestMapQueries_OutOfRangeAreFalse(t *testing.T) {
	m := openMap(5, 5)
	m.ComputeFOV(2, 2, 0, true)
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {5, 0}, {0, 5}, {100, 100}} {
		if m.IsWalkable(p[0], p[1]) || m.IsTransparent(p[0], p[1]) || m.IsInFOV(p[0], p[1]) {
			t.Errorf("query at (%d,%d) = true, want false", p[0], p[1])
		}
	}
	m.SetCell(-1, 3, true, true) // must not panic
}

func TestSetCell(t *testing.T) {
	m := NewMap(3, 3)
	if m.IsWalkable(1, 1) || m.IsTransparent(1, 1) {
		t.Fatal("new map cell should be blocked and opaque")
	}
	m.SetCell(1, 1, true, false)
	if !m.IsWalkable(1, 1) {
		t.Error("IsWalkable(1,1) = false, want true")
	}
	if m.IsTransparent(1, 1) {
		t.Error("IsTransparent(1,1) = true, want false")
	}
	m.SetTransparent(1, 1, true)
	m.SetWalkable(1, 1, false)
	if m.IsWalkable(1, 1) || !m.IsTransparent(1, 1) {
		t.Error("single-flag setters did not apply")
	}
}

func TestNewMap_PanicsOnEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewMap(0, 5) did not panic")
		}
	}()
	NewMap(0, 5)
}

func TestComputeFOV_OpenRoomAllVisible(t *testing.T) {
	m := openMap(20, 20)
	m.ComputeFOV(10, 10, 20, true)
	m.ForEachCell(func(x, y int) {
		if !m.IsInFOV(x, y) {
			t.Errorf("cell (%d,%d) not in FOV on an open map", x, y)
		}
	})
}

func TestComputeFOV_OriginAlwaysVisible(t *testing.T) {
	m := NewMap(5, 5) // all opaque
	m.ComputeFOV(2, 2, 3, true)
	if !m.IsInFOV(2, 2) {
		t.Error("origin not in FOV")
	}
}

func TestComputeFOV_RadiusLimitsRings(t *testing.T) {
	m := openMap(21, 21)
	m.ComputeFOV(10, 10, 3, true)
	m.ForEachCell(func(x, y int) {
		dx, dy := abs(x-10), abs(y-10)
		ring := max(dx, dy)
		if ring <= 3 && !m.IsInFOV(x, y) {
			t.Errorf("cell (%d,%d) in ring %d not visible", x, y, ring)
		}
		if ring > 3 && m.IsInFOV(x, y) {
			t.Errorf("cell (%d,%d) in ring %d visible beyond radius 3", x, y, ring)
		}
	})
}

func TestComputeFOV_PillarCastsShadow(t *testing.T) {
	m := openMap(20, 20)
	m.SetCell(10, 7, false, false)
	m.ComputeFOV(10, 10, 20, true)

	if !m.IsInFOV(10, 7) {
		t.Error("pillar itself should be lit")
	}
	for y := 0; y < 7; y++ {
		if m.IsInFOV(10, y) {
			t.Errorf("cell (10,%d) behind the pillar is visible", y)
		}
	}
	for _, x := range []int{9, 11} {
		if !m.IsInFOV(x, 7) {
			t.Errorf("lateral cell (%d,7) beside the pillar not visible", x)
		}
	}
}

func TestComputeFOV_WallBlocksNorth(t *testing.T) {
	m := openMap(20, 20)
	for x := 0; x < 20; x++ {
		m.SetCell(x, 9, false, false)
	}
	m.ComputeFOV(10, 10, 20, true)

	for y := 0; y < 9; y++ {
		for x := 0; x < 20; x++ {
			if m.IsInFOV(x, y) {
				t.Errorf("cell (%d,%d) north of the wall is visible", x, y)
			}
		}
	}
	for y := 10; y < 20; y++ {
		for x := 0; x < 20; x++ {
			if !m.IsInFOV(x, y) {
				t.Errorf("cell (%d,%d) at or south of the viewpoint is not visible", x, y)
			}
		}
	}
	if !m.IsInFOV(10, 9) {
		t.Error("wall cell next to the viewpoint should be lit")
	}
}

func TestComputeFOV_UnlitWalls(t *testing.T) {
	m := openMap(20, 20)
	for x := 0; x < 20; x++ {
		m.SetCell(x, 9, false, false)
	}
	m.ComputeFOV(10, 10, 20, false)

	for x := 0; x < 20; x++ {
		if m.IsInFOV(x, 9) {
			t.Errorf("wall cell (%d,9) in FOV with lightWalls=false", x)
		}
		for y := 0; y < 9; y++ {
			if m.IsInFOV(x, y) {
				t.Errorf("cell (%d,%d) behind unlit wall is visible", x, y)
			}
		}
	}
	if !m.IsInFOV(10, 11) {
		t.Error("open cell south of viewpoint not visible")
	}
}

func TestComputeFOV_OverwritesPreviousResult(t *testing.T) {
	m := openMap(30, 10)
	m.ComputeFOV(2, 5, 2, true)
	if !m.IsInFOV(3, 5) {
		t.Fatal("neighbour of first origin not visible")
	}
	m.ComputeFOV(27, 5, 2, true)
	if m.IsInFOV(3, 5) {
		t.Error("stale visibility survived a new ComputeFOV")
	}
	if !m.IsInFOV(27, 5) {
		t.Error("new origin not visible")
	}
}

func TestComputeFOV_OriginOutsideClears(t *testing.T) {
	m := openMap(5, 5)
	m.ComputeFOV(2, 2, 0, true)
	m.ComputeFOV(-1, 2, 0, true)
	if n := m.CountInFOV(); n != 0 {
		t.Errorf("CountInFOV() = %d after out-of-range origin, want 0", n)
	}
}

func TestComputeFOV_CornerOrigin(t *testing.T) {
	m := openMap(6, 4)
	m.ComputeFOV(0, 0, 0, true)
	if n := m.CountInFOV(); n != 24 {
		t.Errorf("CountInFOV() = %d from corner of open map, want 24", n)
	}
}

func TestComputeFOV_ClosedRoomHidesOutside(t *testing.T) {
	// A 5x5 room (walls included) inside a 15x15 open map.
	m := openMap(15, 15)
	for i := 5; i <= 9; i++ {
		m.SetCell(i, 5, false, false)
		m.SetCell(i, 9, false, false)
		m.SetCell(5, i, false, false)
		m.SetCell(9, i, false, false)
	}
	m.ComputeFOV(7, 7, 0, true)
	m.ForEachCell(func(x, y int) {
		inside := x >= 5 && x <= 9 && y >= 5 && y <= 9
		if inside && !m.IsInFOV(x, y) {
			t.Errorf("room cell (%d,%d) not visible", x, y)
		}
		if !inside && m.IsInFOV(x, y) {
			t.Errorf("cell (%d,%d) outside the closed room is visible", x, y)
		}
	})
}

func TestComputeFOV_DiagonalGapIsClosed(t *testing.T) {
	// (12,14) is only reachable by slipping between (11,13) and (12,13).
	m := openMap(21, 21)
	m.SetCell(11, 13, false, false)
	m.SetCell(12, 13, false, false)
	m.ComputeFOV(10, 10, 0, true)
	if m.IsInFOV(12, 14) {
		t.Error("cell behind a diagonal gap is visible")
	}
	if !m.IsInFOV(10, 14) {
		t.Error("(10,14) should stay visible")
	}

	single := openMap(21, 21)
	single.SetCell(12, 13, false, false)
	single.ComputeFOV(10, 10, 0, true)
	if !single.IsInFOV(12, 14) {
		t.Error("(12,14) should be visible with a single wall at (12,13)")
	}
}

func TestComputeFOV_AdjacentWallsMergeShadows(t *testing.T) {
	m := openMap(21, 21)
	for _, p := range [][2]int{{10, 13}, {11, 12}, {11, 13}, {12, 13}} {
		m.SetCell(p[0], p[1], false, false)
	}
	m.ComputeFOV(10, 10, 0, true)

	// (11,13) and (12,13) widen the shadow started by (11,12) rather than
	// casting their own, which covers these cells.
	for _, p := range [][2]int{{13, 14}, {14, 15}} {
		if m.IsInFOV(p[0], p[1]) {
			t.Errorf("cell (%d,%d) in the merged shadow is visible", p[0], p[1])
		}
	}
	if !m.IsInFOV(14, 14) {
		t.Error("(14,14) should be visible past the merged shadow")
	}
}

func TestCopy_IsIndependent(t *testing.T) {
	m := openMap(4, 4)
	c := m.Copy()
	c.SetCell(1, 1, false, false)
	if !m.IsWalkable(1, 1) {
		t.Error("modifying the copy changed the original")
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
