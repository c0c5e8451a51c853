package world

import (
	"github.com/sirupsen/logrus"

	"roguekernel/pkg/logger"
)

// FOVRadius is the default field of view radius.
const FOVRadius = 8

// sweepDirs is the order the quadrants are processed in. Each entry runs the
// vertical sweep then the horizontal sweep for (dx, dy). Cells already lit by
// an earlier sweep affect the diagonal check of later ones, so the order is
// part of the result.
var sweepDirs = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

// ComputeFOV recomputes the field of view from (x, y) with restrictive precise
// angle shadowcasting. The previous field of view is discarded.
//
// maxRadius bounds the number of rings walked outward; zero or negative means
// up to the map edge. With lightWalls false, opaque cells stay out of the
// field of view while still hiding what is behind them.
func (m *Map) ComputeFOV(x, y, maxRadius int, lightWalls bool) {
	for i := range m.fov {
		m.fov[i] = false
	}
	if !m.IsValidPosition(x, y) {
		return
	}

	m.fov[m.index(x, y)] = true
	for _, d := range sweepDirs {
		dx, dy := d[0], d[1]
		m.sweep(x, y, maxRadius, lightWalls, dy, dx, false)
		m.sweep(x, y, maxRadius, lightWalls, dx, dy, true)
	}

	if logger.Log.IsLevelEnabled(logrus.DebugLevel) {
		logger.For("fov").WithFields(logrus.Fields{
			"origin_x": x,
			"origin_y": y,
			"radius":   maxRadius,
			"visible":  m.CountInFOV(),
		}).Debug("FOV computed")
	}
}

// ComputeFOVDefault computes the field of view with FOVRadius and lit walls.
func (m *Map) ComputeFOVDefault(x, y int) {
	m.ComputeFOV(x, y, FOVRadius, true)
}

// sweep walks one quadrant ring by ring. Rows move away from the origin along
// the outer axis by outerStep; cells within a row move along the inner axis by
// innerStep starting at the origin's column. transposed selects whether the
// outer axis is x (horizontal sweep) or y (vertical sweep).
//
// Each cell in ring n covers the slope interval centre ± 1/(2n). A cell is
// hidden when an obstacle recorded in an earlier ring covers it: its centre for
// transparent cells, its whole interval for opaque ones. Opaque cells that
// touch the blocked prefix [0, minAngle] extend minAngle instead of recording
// a new obstacle.
func (m *Map) sweep(ox, oy, maxRadius int, lightWalls bool, outerStep, innerStep int, transposed bool) {
	// at maps (outer, inner) to a cell index; the outer coordinate is always in range.
	outerOrigin, innerOrigin := oy, ox
	outerLen, innerLen := m.height, m.width
	at := func(outer, inner int) int { return m.index(inner, outer) }
	if transposed {
		outerOrigin, innerOrigin = ox, oy
		outerLen, innerLen = m.width, m.height
		at = func(outer, inner int) int { return m.index(outer, inner) }
	}

	var startAngle, endAngle []float64
	obstaclesInLastLine := 0
	minAngle := 0.0

	outer := outerOrigin + outerStep
	done := outer < 0 || outer >= outerLen
	for iteration := 1; !done; iteration++ {
		slopesPerCell := 1.0 / float64(iteration)
		halfSlopes := slopesPerCell * 0.5
		processedCell := int((minAngle + halfSlopes) / slopesPerCell)
		minInner := max(0, innerOrigin-iteration)
		maxInner := min(innerLen-1, innerOrigin+iteration)

		done = true
		for inner := innerOrigin + processedCell*innerStep; inner >= minInner && inner <= maxInner; inner += innerStep {
			c := at(outer, inner)
			visible := true
			extended := false
			centreSlope := float64(processedCell) * slopesPerCell
			startSlope := centreSlope - halfSlopes
			endSlope := centreSlope + halfSlopes

			if obstaclesInLastLine > 0 && !m.fov[c] {
				back := at(outer-outerStep, inner)
				diagInner := inner - innerStep
				if (!m.fov[back] || !m.transparent[back]) &&
					diagInner >= 0 && diagInner < innerLen &&
					(!m.fov[at(outer-outerStep, diagInner)] || !m.transparent[at(outer-outerStep, diagInner)]) {
					visible = false
				} else {
					for idx := 0; visible && idx < obstaclesInLastLine; idx++ {
						if startSlope > endAngle[idx] || endSlope < startAngle[idx] {
							continue
						}
						if m.transparent[c] {
							if centreSlope > startAngle[idx] && centreSlope < endAngle[idx] {
								visible = false
							}
						} else if startSlope >= startAngle[idx] && endSlope <= endAngle[idx] {
							visible = false
						} else {
							startAngle[idx] = min(startAngle[idx], startSlope)
							endAngle[idx] = max(endAngle[idx], endSlope)
							extended = true
						}
					}
				}
			}

			if visible {
				done = false
				m.fov[c] = true
				if !m.transparent[c] {
					if minAngle >= startSlope {
						minAngle = endSlope
						// The blocked prefix now reaches the last cell of the ring.
						if processedCell == iteration {
							done = true
						}
					} else if !extended {
						startAngle = append(startAngle, startSlope)
						endAngle = append(endAngle, endSlope)
					}
					if !lightWalls {
						m.fov[c] = false
					}
				}
			}
			processedCell++
		}

		if iteration == maxRadius {
			done = true
		}
		obstaclesInLastLine = len(startAngle)
		outer += outerStep
		if outer < 0 || outer >= outerLen {
			done = true
		}
	}
}
