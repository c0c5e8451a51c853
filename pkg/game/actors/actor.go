// Package actors drives the creatures of a generated level through the turn
// scheduler: the player walks with a flickering torch that recomputes the
// field of view after every step, monsters wander and eventually leave.
package actors

import (
	"roguekernel/pkg/game/generator"
)

// Kind describes a class of actor.
type Kind struct {
	Name  string
	Glyph rune
	// Speed is the number of ticks between two turns; lower is faster.
	Speed int
	// Lifespan is how many turns a monster stays before leaving; 0 means forever.
	Lifespan int
}

// Player is the kind used for the viewer.
var Player = Kind{Name: "you", Glyph: '@', Speed: 10}

// monsterKinds are keyed by name; monsterWeights gives their spawn odds.
var monsterKinds = map[string]Kind{
	"rat":    {Name: "rat", Glyph: 'r', Speed: 5, Lifespan: 12},
	"goblin": {Name: "goblin", Glyph: 'g', Speed: 10, Lifespan: 8},
	"zombie": {Name: "zombie", Glyph: 'z', Speed: 20, Lifespan: 4},
	"bat":    {Name: "bat", Glyph: 'b', Speed: 4, Lifespan: 10},
}

var monsterWeights = map[string]int{
	"rat":    4,
	"goblin": 3,
	"zombie": 2,
	"bat":    1,
}

// Actor is a creature on the map. It implements scheduler.TimedEntity.
type Actor struct {
	Kind
	Pos   generator.Point
	Turns int

	wait  int
	prev  generator.Point
	world *World
}

// WaitTime returns the ticks left until the actor's next turn.
func (a *Actor) WaitTime() int {
	return a.wait
}

// SetWaitTime sets the ticks left until the actor's next turn.
func (a *Actor) SetWaitTime(ticks int) {
	a.wait = ticks
}

// Update plays one turn and schedules the next one.
func (a *Actor) Update() {
	a.Turns++
	a.wait = a.Speed
	a.world.act(a)
}

// IsPlayer reports whether the actor is the viewer.
func (a *Actor) IsPlayer() bool {
	return a.world != nil && a.world.player == a
}
