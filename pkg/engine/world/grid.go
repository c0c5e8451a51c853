// Package world provides the tile map the kernel reasons about: per-cell
// walkable and transparent flags plus the visibility computed from them.
package world

// Map is a width x height grid of cell properties. Cells are addressed by
// (x, y) with x growing east and y growing south.
type Map struct {
	width  int
	height int

	walkable    []bool
	transparent []bool
	fov         []bool
}

// NewMap creates a map whose cells are all blocked and opaque.
func NewMap(width, height int) *Map {
	m := &Map{}
	m.Build(width, height)
	return m
}

// Build (re)initializes the map with the given dimensions.
func (m *Map) Build(width, height int) {
	if width <= 0 || height <= 0 {
		panic("Map dimensions must be positive")
	}

	m.width = width
	m.height = height

	n := width * height
	m.walkable = make([]bool, n)
	m.transparent = make([]bool, n)
	m.fov = make([]bool, n)
}

// Width returns the number of columns.
func (m *Map) Width() int {
	return m.width
}

// Height returns the number of rows.
func (m *Map) Height() int {
	return m.height
}

// IsValidPosition checks if (x, y) is within map bounds
func (m *Map) IsValidPosition(x, y int) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.height
}

// IsOnPerimeter checks if (x, y) is on the edge of the map
func (m *Map) IsOnPerimeter(x, y int) bool {
	return m.IsValidPosition(x, y) && (x == 0 || y == 0 || x == m.width-1 || y == m.height-1)
}

// CenterPosition returns the coordinates of the map center
func (m *Map) CenterPosition() (int, int) {
	return m.width / 2, m.height / 2
}

func (m *Map) index(x, y int) int {
	return x + y*m.width
}

// SetCell overwrites a cell's static properties. Out of range is ignored.
func (m *Map) SetCell(x, y int, walkable, transparent bool) {
	if !m.IsValidPosition(x, y) {
		return
	}
	i := m.index(x, y)
	m.walkable[i] = walkable
	m.transparent[i] = transparent
}

// SetWalkable changes only the walkable flag.
func (m *Map) SetWalkable(x, y int, walkable bool) {
	if m.IsValidPosition(x, y) {
		m.walkable[m.index(x, y)] = walkable
	}
}

// SetTransparent changes only the transparent flag.
func (m *Map) SetTransparent(x, y int, transparent bool) {
	if m.IsValidPosition(x, y) {
		m.transparent[m.index(x, y)] = transparent
	}
}

// Clear sets every cell to the given properties and empties the field of view.
func (m *Map) Clear(walkable, transparent bool) {
	for i := range m.walkable {
		m.walkable[i] = walkable
		m.transparent[i] = transparent
		m.fov[i] = false
	}
}

// IsWalkable returns false for out of range coordinates.
func (m *Map) IsWalkable(x, y int) bool {
	return m.IsValidPosition(x, y) && m.walkable[m.index(x, y)]
}

// IsTransparent returns false for out of range coordinates.
func (m *Map) IsTransparent(x, y int) bool {
	return m.IsValidPosition(x, y) && m.transparent[m.index(x, y)]
}

// IsInFOV reports whether the cell was visible in the last ComputeFOV call.
func (m *Map) IsInFOV(x, y int) bool {
	return m.IsValidPosition(x, y) && m.fov[m.index(x, y)]
}

// Copy returns a deep copy of the map, field of view included.
func (m *Map) Copy() *Map {
	c := &Map{width: m.width, height: m.height}
	c.walkable = append([]bool(nil), m.walkable...)
	c.transparent = append([]bool(nil), m.transparent...)
	c.fov = append([]bool(nil), m.fov...)
	return c
}

// ForEachCell iterates over all cells in row-major order
func (m *Map) ForEachCell(fn func(x, y int)) {
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			fn(x, y)
		}
	}
}

// CountInFOV returns the number of visible cells.
func (m *Map) CountInFOV() int {
	n := 0
	for _, v := range m.fov {
		if v {
			n++
		}
	}
	return n
}
