package generator

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"

	"roguekernel/pkg/engine/bsp"
	"roguekernel/pkg/engine/rng"
	"roguekernel/pkg/engine/world"
	"roguekernel/pkg/game/config"
	"roguekernel/pkg/logger"
)

// BSPGenerator generates levels using Binary Space Partitioning
type BSPGenerator struct{}

// Name returns the name of this generator
func (g *BSPGenerator) Name() string {
	return "BSP Tree"
}

// Room kinds and how often they come up.
var roomKinds = map[string]int{
	"Cellar":    4,
	"Crypt":     2,
	"Guardroom": 3,
	"Hall":      2,
	"Library":   1,
	"Shrine":    1,
	"Storeroom": 3,
}

var roomAdjectives = []string{
	"Abandoned", "Collapsed", "Dark", "Dusty", "Flooded",
	"Forgotten", "Mossy", "Sealed", "Silent", "Smoky",
}

// Generate creates a new level. The same seed and configuration always give
// the same level.
func (g *BSPGenerator) Generate(cfg config.Config, r *rng.CMWC) *Level {
	m := world.NewMap(cfg.Width, cfg.Height)

	// The leaves tile the whole map; rooms keep one cell off every leaf edge,
	// which leaves the perimeter as wall.
	root := bsp.New(0, 0, cfg.Width, cfg.Height)
	root.SplitRecursive(r, cfg.Depth, cfg.MinSize, cfg.MaxRatio)

	level := &Level{Map: m, Tree: root, Seed: r.Seed()}

	// Create rooms in leaf nodes
	rooms := make(map[*bsp.Node]Room)
	root.TraversePreOrder(func(node *bsp.Node) bsp.Action {
		if node.IsLeaf() {
			room := createRoom(node, r)
			rooms[node] = room
			level.Rooms = append(level.Rooms, room)
			carveRoom(m, room)
		}
		return bsp.Continue
	})

	// Connect sibling subtrees bottom-up
	root.TraversePostOrder(func(node *bsp.Node) bsp.Action {
		if node.IsLeaf() {
			return bsp.Continue
		}
		left := pickRoom(node.Left(), rooms, r)
		right := pickRoom(node.Right(), rooms, r)
		connectRooms(m, left, right, r)
		return bsp.Continue
	})

	// Start in a random room, exit at the furthest reachable cell
	start := level.Rooms[r.GetNumber(0, len(level.Rooms)-1)]
	sx, sy := start.Center()
	level.Start = Point{sx, sy}
	level.Exit = findFurthestCell(m, level.Start)

	logger.For("generator").WithFields(logrus.Fields{
		"seed":   r.Seed(),
		"width":  cfg.Width,
		"height": cfg.Height,
		"rooms":  len(level.Rooms),
	}).Debug("Level generated")

	return level
}

// createRoom picks a room inside a leaf, one cell in from every edge.
func createRoom(node *bsp.Node, r *rng.CMWC) Room {
	availW := node.W() - 2
	availH := node.H() - 2

	roomW := r.GetNumber(max(1, availW/2), availW)
	roomH := r.GetNumber(max(1, availH/2), availH)
	roomX := node.X() + 1 + r.GetNumber(0, availW-roomW)
	roomY := node.Y() + 1 + r.GetNumber(0, availH-roomH)

	adjective := roomAdjectives[r.GetNumber(0, len(roomAdjectives)-1)]
	kind := rng.GetRandomChance(r, roomKinds)

	return Room{
		X:    roomX,
		Y:    roomY,
		W:    roomW,
		H:    roomH,
		Name: fmt.Sprintf("%s %s", adjective, kind),
	}
}

// carveRoom marks room cells as walkable and transparent
func carveRoom(m *world.Map, room Room) {
	for y := room.Y; y < room.Y+room.H; y++ {
		for x := room.X; x < room.X+room.W; x++ {
			m.SetCell(x, y, true, true)
		}
	}
}

// pickRoom returns a room from a subtree (picks randomly between the two
// children at every level)
func pickRoom(node *bsp.Node, rooms map[*bsp.Node]Room, r *rng.CMWC) Room {
	for !node.IsLeaf() {
		if r.GetNumber(0, 1) == 0 {
			node = node.Left()
		} else {
			node = node.Right()
		}
	}
	return rooms[node]
}

// connectRooms joins two rooms with an L-shaped corridor between their centres
func connectRooms(m *world.Map, a, b Room, r *rng.CMWC) {
	ax, ay := a.Center()
	bx, by := b.Center()

	if r.GetNumber(0, 1) == 0 {
		// Horizontal first, then vertical
		carveHorizontal(m, ay, ax, bx)
		carveVertical(m, bx, ay, by)
	} else {
		// Vertical first, then horizontal
		carveVertical(m, ax, ay, by)
		carveHorizontal(m, by, ax, bx)
	}
}

func carveHorizontal(m *world.Map, y, x0, x1 int) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	for x := x0; x <= x1; x++ {
		m.SetCell(x, y, true, true)
	}
}

func carveVertical(m *world.Map, x, y0, y1 int) {
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		m.SetCell(x, y, true, true)
	}
}

var neighbours = [4]Point{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

// findFurthestCell uses BFS to find the walkable cell with the longest path
// distance from start
func findFurthestCell(m *world.Map, start Point) Point {
	type cellDist struct {
		p    Point
		dist int
	}

	visited := mapset.New[Point]()
	queue := []cellDist{{start, 0}}
	visited.Put(start)

	furthest := start
	maxDist := -1

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current.dist > maxDist {
			maxDist = current.dist
			furthest = current.p
		}

		for _, d := range neighbours {
			n := Point{current.p.X + d.X, current.p.Y + d.Y}
			if m.IsWalkable(n.X, n.Y) && !visited.Has(n) {
				visited.Put(n)
				queue = append(queue, cellDist{n, current.dist + 1})
			}
		}
	}

	return furthest
}

// Reachable returns every walkable cell connected to start
func Reachable(m *world.Map, start Point) mapset.Set[Point] {
	visited := mapset.New[Point]()
	if !m.IsWalkable(start.X, start.Y) {
		return visited
	}
	queue := []Point{start}
	visited.Put(start)
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, d := range neighbours {
			n := Point{p.X + d.X, p.Y + d.Y}
			if m.IsWalkable(n.X, n.Y) && !visited.Has(n) {
				visited.Put(n)
				queue = append(queue, n)
			}
		}
	}
	return visited
}
