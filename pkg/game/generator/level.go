package generator

import (
	"roguekernel/pkg/engine/bsp"
	"roguekernel/pkg/engine/world"
)

// Room is a rectangular carved area inside one BSP leaf.
type Room struct {
	X, Y, W, H int
	Name       string
}

// Center returns the room's centre cell.
func (r Room) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Contains reports whether (x, y) is inside the room.
func (r Room) Contains(x, y int) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.W && y < r.Y+r.H
}

// Point is a map position.
type Point struct {
	X, Y int
}

// Level is a generated map with its layout metadata.
type Level struct {
	Map   *world.Map
	Tree  *bsp.Node
	Rooms []Room
	Start Point
	Exit  Point

	// Seed is the seed of the generator the level was built from.
	Seed uint32
}

// RoomAt returns the room containing (x, y) by looking up the BSP leaf that
// holds the point.
func (l *Level) RoomAt(x, y int) (Room, bool) {
	if l.Tree == nil {
		return Room{}, false
	}
	leaf := l.Tree.FindNode(x, y)
	if leaf == nil {
		return Room{}, false
	}
	for _, room := range l.Rooms {
		if leaf.Contains(room.X, room.Y) && room.Contains(x, y) {
			return room, true
		}
	}
	return Room{}, false
}
