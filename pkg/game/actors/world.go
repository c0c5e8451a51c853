package actors

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"

	"roguekernel/pkg/engine/noise"
	"roguekernel/pkg/engine/rng"
	"roguekernel/pkg/engine/scheduler"
	"roguekernel/pkg/game/config"
	"roguekernel/pkg/game/generator"
	"roguekernel/pkg/logger"
)

const maxMessages = 5

// flickerRate is how far along the noise curve the torch moves per player turn.
const flickerRate = 0.35

// World owns a level and everything acting on it.
type World struct {
	Level *generator.Level

	cfg       config.Config
	rng       *rng.CMWC
	flicker   noise.Generator
	scheduler *scheduler.Scheduler

	player   *Actor
	monsters []*Actor
	occupied mapset.Set[generator.Point]

	// explored remembers every cell that has ever been in the field of view.
	explored mapset.Set[generator.Point]
	torch    int

	Messages []string
	Turn     int
	Arrivals int
	Departed int

	log *logrus.Entry
}

// NewWorld places the player at the level start and cfg.Monsters monsters in
// random rooms, and registers all of them with a fresh scheduler.
func NewWorld(level *generator.Level, cfg config.Config, r *rng.CMWC) *World {
	w := &World{
		Level:     level,
		cfg:       cfg,
		rng:       r,
		flicker:   newFlicker(cfg.Flicker, r),
		scheduler: scheduler.New(),
		occupied:  mapset.New[generator.Point](),
		explored:  mapset.New[generator.Point](),
		log:       logger.For("actors"),
	}

	w.player = &Actor{Kind: Player, Pos: level.Start, prev: level.Start, world: w}
	w.occupied.Put(level.Start)
	w.scheduler.Add(w.player)

	for i := 0; i < cfg.Monsters; i++ {
		w.spawnMonster()
	}

	w.refreshFOV()
	return w
}

func newFlicker(kind string, r *rng.CMWC) noise.Generator {
	if kind == config.FlickerOpenSimplex {
		return noise.NewOpenSimplex(r)
	}
	return noise.NewSimplex(r)
}

// Player returns the viewer.
func (w *World) Player() *Actor {
	return w.player
}

// Monsters returns the monsters currently on the level.
func (w *World) Monsters() []*Actor {
	return w.monsters
}

// Scheduler exposes the turn scheduler, mainly to pause and resume it.
func (w *World) Scheduler() *scheduler.Scheduler {
	return w.scheduler
}

// TorchRadius returns the radius used for the last field of view.
func (w *World) TorchRadius() int {
	return w.torch
}

// IsExplored reports whether (x, y) has ever been seen.
func (w *World) IsExplored(x, y int) bool {
	return w.explored.Has(generator.Point{X: x, Y: y})
}

// ActorAt returns the actor standing on (x, y), if any.
func (w *World) ActorAt(x, y int) *Actor {
	p := generator.Point{X: x, Y: y}
	if !w.occupied.Has(p) {
		return nil
	}
	if w.player.Pos == p {
		return w.player
	}
	for _, m := range w.monsters {
		if m.Pos == p {
			return m
		}
	}
	return nil
}

// Step runs one scheduler pass.
func (w *World) Step() {
	w.scheduler.Run()
	w.Turn++
}

// Run runs n scheduler passes.
func (w *World) Run(n int) {
	for i := 0; i < n; i++ {
		w.Step()
	}
}

// AddMessage adds a message to the log, keeping only the most recent ones.
func (w *World) AddMessage(msg string, a ...any) {
	w.Messages = append(w.Messages, fmt.Sprintf(msg, a...))
	if len(w.Messages) > maxMessages {
		w.Messages = w.Messages[len(w.Messages)-maxMessages:]
	}
}

// act is called from Actor.Update while the scheduler is running.
func (w *World) act(a *Actor) {
	if a == w.player {
		w.wander(a)
		w.refreshFOV()
		return
	}

	if a.Lifespan > 0 && a.Turns >= a.Lifespan {
		w.depart(a)
		w.spawnMonster()
		return
	}

	w.wander(a)
	if w.Level.Map.IsInFOV(a.Pos.X, a.Pos.Y) {
		w.AddMessage("The MONSTER{%s} moves in the torchlight.", a.Name)
	}
}

var steps = [4]generator.Point{{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}}

// wander moves a to a random free neighbouring cell, avoiding the cell it just
// came from unless it is a dead end.
func (w *World) wander(a *Actor) {
	var options []generator.Point
	var back *generator.Point
	for _, d := range steps {
		p := generator.Point{X: a.Pos.X + d.X, Y: a.Pos.Y + d.Y}
		if !w.Level.Map.IsWalkable(p.X, p.Y) || w.occupied.Has(p) {
			continue
		}
		if p == a.prev {
			back = &p
			continue
		}
		options = append(options, p)
	}
	if len(options) == 0 {
		if back == nil {
			return
		}
		options = append(options, *back)
	}

	next := options[w.rng.GetNumber(0, len(options)-1)]
	w.occupied.Remove(a.Pos)
	a.prev = a.Pos
	a.Pos = next
	w.occupied.Put(next)
}

// refreshFOV recomputes the player's field of view with a flickering radius.
func (w *World) refreshFOV() {
	w.torch = w.cfg.FOVRadius
	if w.torch > 0 {
		flick := w.flicker.Noise1D(float64(w.player.Turns) * flickerRate)
		w.torch = max(1, w.torch+int(flick*2))
	}

	m := w.Level.Map
	m.ComputeFOV(w.player.Pos.X, w.player.Pos.Y, w.torch, w.cfg.LightWalls)
	m.ForEachCell(func(x, y int) {
		if m.IsInFOV(x, y) {
			w.explored.Put(generator.Point{X: x, Y: y})
		}
	})
}

// spawnMonster places a new monster in a random room on a free cell.
func (w *World) spawnMonster() *Actor {
	rooms := w.Level.Rooms
	if len(rooms) == 0 {
		return nil
	}
	kind := monsterKinds[rng.GetRandomChance(w.rng, monsterWeights)]

	for tries := 0; tries < 20; tries++ {
		room := rooms[w.rng.GetNumber(0, len(rooms)-1)]
		p := generator.Point{
			X: w.rng.GetNumber(room.X, room.X+room.W-1),
			Y: w.rng.GetNumber(room.Y, room.Y+room.H-1),
		}
		if w.occupied.Has(p) {
			continue
		}

		m := &Actor{Kind: kind, Pos: p, prev: p, world: w}
		// Stagger first turns so monsters of one kind do not move in lockstep.
		m.wait = w.rng.GetNumber(1, kind.Speed)
		w.monsters = append(w.monsters, m)
		w.occupied.Put(p)
		w.scheduler.Add(m)
		w.Arrivals++

		w.log.WithFields(logrus.Fields{"kind": kind.Name, "x": p.X, "y": p.Y}).Debug("Monster spawned")
		return m
	}
	return nil
}

// depart removes a monster from the level and the scheduler.
func (w *World) depart(a *Actor) {
	w.scheduler.Remove(a)
	w.occupied.Remove(a.Pos)
	for i, m := range w.monsters {
		if m == a {
			w.monsters = append(w.monsters[:i], w.monsters[i+1:]...)
			break
		}
	}
	w.Departed++
	if w.Level.Map.IsInFOV(a.Pos.X, a.Pos.Y) {
		w.AddMessage("The MONSTER{%s} slips away.", a.Name)
	}
	w.log.WithField("kind", a.Name).Debug("Monster departed")
}
