// Package scheduler advances a discrete turn clock over timed entities,
// updating each one when its wait time runs out.
package scheduler

import (
	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"

	"roguekernel/pkg/engine/heap"
	"roguekernel/pkg/logger"
)

// TimedEntity is anything the scheduler can drive. WaitTime is the number of
// ticks until the next Update; Update is expected to set a new wait time.
type TimedEntity interface {
	WaitTime() int
	SetWaitTime(ticks int)
	Update()
}

// Scheduler orders timed entities by wait time. It does not own the entities;
// callers add and remove them, including from inside Update.
//
// Entities are compared by identity, so use pointer types. A Scheduler is
// not safe for concurrent use.
type Scheduler struct {
	entities *heap.BinaryHeap[TimedEntity]
	paused   bool

	// Entities updated during the current Run pass, waiting to be reinserted.
	pending []TimedEntity
	updated mapset.Set[TimedEntity]

	// The entity whose Update is running, and whether it removed itself.
	current     TimedEntity
	dropCurrent bool

	log *logrus.Entry
}

// New creates an empty, running scheduler.
func New() *Scheduler {
	return &Scheduler{
		entities: heap.New(func(e TimedEntity) int { return e.WaitTime() }),
		updated:  mapset.New[TimedEntity](),
		log:      logger.For("scheduler"),
	}
}

// Add registers an entity. Adding an entity that is already scheduled only
// refreshes its position.
func (s *Scheduler) Add(e TimedEntity) {
	s.entities.Push(e)
	s.log.WithField("wait", e.WaitTime()).Debug("Entity added to scheduler")
}

// AddAll registers several entities.
func (s *Scheduler) AddAll(entities ...TimedEntity) {
	for _, e := range entities {
		s.Add(e)
	}
}

// Remove unregisters an entity. An entity removed during a Run pass is not
// updated later in that pass and is not put back afterwards.
func (s *Scheduler) Remove(e TimedEntity) {
	removed := s.entities.Remove(e)
	if s.current != nil && s.current == e {
		s.dropCurrent = true
		removed = true
	}
	for i, p := range s.pending {
		if p == e {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			removed = true
			break
		}
	}
	if removed {
		s.log.Debug("Entity removed from scheduler")
	}
}

// Clear unregisters every entity.
func (s *Scheduler) Clear() {
	s.entities.Clear()
	s.pending = s.pending[:0]
	if s.current != nil {
		s.dropCurrent = true
	}
}

// Len returns the number of scheduled entities. An entity that was updated
// this pass and then re-added is counted once.
func (s *Scheduler) Len() int {
	n := s.entities.Len()
	for _, p := range s.pending {
		if !s.entities.Contains(p) {
			n++
		}
	}
	return n
}

// Contains reports whether e is scheduled.
func (s *Scheduler) Contains(e TimedEntity) bool {
	if s.entities.Contains(e) {
		return true
	}
	for _, p := range s.pending {
		if p == e {
			return true
		}
	}
	return false
}

// Pause stops Run from doing anything until Resume.
func (s *Scheduler) Pause() {
	s.paused = true
}

// Resume undoes Pause.
func (s *Scheduler) Resume() {
	s.paused = false
}

// IsPaused reports whether the scheduler is paused.
func (s *Scheduler) IsPaused() bool {
	return s.paused
}

// Run advances the clock to the next expiry. Every entity's wait time drops by
// the smallest wait time, then all entities at or below zero are updated in
// heap order and rescheduled with the wait time their Update set.
//
// An entity is updated at most once per pass: if an entity that was already
// updated comes out of the queue again (it re-added itself from Update), the
// pass ends there.
func (s *Scheduler) Run() {
	if s.paused || s.entities.IsEmpty() {
		return
	}

	next, _ := s.entities.Peek(0)
	elapsed := next.WaitTime()
	// A uniform shift keeps the heap order intact.
	for i := 0; i < s.entities.Len(); i++ {
		e, _ := s.entities.Peek(i)
		e.SetWaitTime(e.WaitTime() - elapsed)
	}

	s.pending = s.pending[:0]
	s.updated = mapset.New[TimedEntity]()
	for !s.entities.IsEmpty() {
		e, _ := s.entities.Peek(0)
		if e.WaitTime() > 0 {
			break
		}
		s.entities.Pop()
		if s.updated.Has(e) {
			s.log.WithField("wait", e.WaitTime()).Warn("Entity rescheduled itself during its own pass, ending pass")
			s.entities.Push(e)
			break
		}
		s.current, s.dropCurrent = e, false
		e.Update()
		s.updated.Put(e)
		if !s.dropCurrent {
			s.pending = append(s.pending, e)
		}
		s.current, s.dropCurrent = nil, false
	}

	for _, e := range s.pending {
		s.entities.Push(e)
	}
	s.pending = s.pending[:0]
}
