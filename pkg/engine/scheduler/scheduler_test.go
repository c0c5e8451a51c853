package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// actor waits wait ticks, then on update runs onUpdate and waits speed ticks.
type actor struct {
	name     string
	wait     int
	speed    int
	updates  int
	onUpdate func(a *actor)
}

func (a *actor) WaitTime() int         { return a.wait }
func (a *actor) SetWaitTime(ticks int) { a.wait = ticks }
func (a *actor) Update() {
	a.updates++
	a.wait = a.speed
	if a.onUpdate != nil {
		a.onUpdate(a)
	}
}

func newActor(name string, wait, speed int) *actor {
	return &actor{name: name, wait: wait, speed: speed}
}

func TestRun_SimultaneousExpiry(t *testing.T) {
	s := New()
	a := newActor("a", 5, 10)
	b := newActor("b", 3, 10)
	c := newActor("c", 3, 10)
	d := newActor("d", 8, 10)
	s.AddAll(a, b, c, d)

	s.Run()

	assert.Equal(t, 0, a.updates)
	assert.Equal(t, 1, b.updates)
	assert.Equal(t, 1, c.updates)
	assert.Equal(t, 0, d.updates)

	assert.Equal(t, 2, a.wait)
	assert.Equal(t, 5, d.wait)
	assert.Equal(t, 10, b.wait)
	assert.Equal(t, 10, c.wait)
	assert.Equal(t, 4, s.Len())
}

func TestRun_TurnOrderFollowsSpeed(t *testing.T) {
	s := New()
	var order []string
	record := func(a *actor) { order = append(order, a.name) }

	fast := newActor("fast", 1, 1)
	slow := newActor("slow", 3, 3)
	fast.onUpdate, slow.onUpdate = record, record
	s.AddAll(fast, slow)

	for i := 0; i < 5; i++ {
		s.Run()
	}
	// ticks 1,2,3(fast+slow) then 4,5
	require.Len(t, order, 6)
	assert.Equal(t, 5, fast.updates)
	assert.Equal(t, 1, slow.updates)
}

func TestRun_RemovedDuringUpdateIsSkipped(t *testing.T) {
	s := New()
	victim := newActor("victim", 2, 5)
	killer := newActor("killer", 2, 5)
	killer.onUpdate = func(*actor) { s.Remove(victim) }
	victim.onUpdate = func(*actor) { s.Remove(killer) }
	s.AddAll(killer, victim)

	s.Run()

	// Exactly one of them acts first and removes the other.
	assert.Equal(t, 1, killer.updates+victim.updates)
	assert.Equal(t, 1, s.Len())
}

func TestRun_RemovedAfterItsUpdateIsNotReinserted(t *testing.T) {
	s := New()
	first := newActor("first", 1, 5)
	second := newActor("second", 1, 5)
	// Whichever order they come out in, second must end up unscheduled: either
	// it is still queued, or it already acted and sits in the pass buffer.
	first.onUpdate = func(*actor) { s.Remove(second) }
	s.AddAll(first, second)

	s.Run()

	assert.Equal(t, 1, first.updates)
	assert.Equal(t, 1, s.Len())
	assert.True(t, s.Contains(first))
	assert.False(t, s.Contains(second))
}

func TestRun_RemoveSelfDuringUpdate(t *testing.T) {
	s := New()
	leaver := newActor("leaver", 1, 5)
	leaver.onUpdate = func(a *actor) { s.Remove(a) }
	stayer := newActor("stayer", 1, 5)
	s.AddAll(leaver, stayer)

	s.Run()

	assert.Equal(t, 1, leaver.updates)
	assert.False(t, s.Contains(leaver))
	assert.True(t, s.Contains(stayer))
	assert.Equal(t, 1, s.Len())
}

func TestRun_AddDuringUpdate(t *testing.T) {
	s := New()
	spawn := newActor("spawn", 0, 4)
	parent := newActor("parent", 1, 10)
	parent.onUpdate = func(*actor) {
		if parent.updates == 1 {
			s.Add(spawn)
		}
	}
	s.Add(parent)

	s.Run()
	// The spawned actor had wait 0 and is due in the same pass.
	assert.Equal(t, 1, parent.updates)
	assert.Equal(t, 1, spawn.updates)
	assert.Equal(t, 2, s.Len())
}

func TestRun_ReentrancyGuard(t *testing.T) {
	s := New()
	var loops int
	looper := newActor("looper", 1, 0)
	looper.onUpdate = func(a *actor) {
		loops++
		a.wait = 0
		s.Add(a) // puts itself straight back with zero wait
	}
	other := newActor("other", 5, 5)
	s.AddAll(looper, other)

	s.Run()

	assert.Equal(t, 1, loops, "looper must be updated once per pass")
	assert.Equal(t, 2, s.Len(), "no duplicate entries after the pass")
	assert.Equal(t, 0, other.updates)
}

func TestLen_ReaddedDuringPassCountedOnce(t *testing.T) {
	s := New()
	all := []*actor{newActor("a", 1, 5), newActor("b", 1, 5), newActor("c", 1, 5)}
	var counts []int
	for _, a := range all {
		a.onUpdate = func(self *actor) {
			for _, other := range all {
				if other != self && other.updates > 0 {
					s.Add(other)
				}
			}
			counts = append(counts, s.Len())
		}
		s.Add(a)
	}

	s.Run()

	for _, a := range all {
		require.Equal(t, 1, a.updates, a.name)
		assert.True(t, s.Contains(a), a.name)
	}
	// The entity being updated is neither queued nor pending; the other two are.
	assert.Equal(t, []int{2, 2, 2}, counts)
	assert.Equal(t, 3, s.Len())
}

func TestRun_StuckEntityIsUpdatedOncePerPass(t *testing.T) {
	s := New()
	stuck := newActor("stuck", 1, 0) // never moves its wait time off zero
	s.Add(stuck)

	s.Run()
	s.Run()

	assert.Equal(t, 2, stuck.updates)
}

func TestPauseResume(t *testing.T) {
	s := New()
	a := newActor("a", 1, 1)
	s.Add(a)

	s.Pause()
	assert.True(t, s.IsPaused())
	s.Run()
	s.Run()
	assert.Equal(t, 0, a.updates)
	assert.Equal(t, 1, a.wait)

	s.Resume()
	assert.False(t, s.IsPaused())
	s.Run()
	assert.Equal(t, 1, a.updates)
}

func TestRun_EmptyIsNoop(t *testing.T) {
	s := New()
	s.Run()
	assert.Zero(t, s.Len())
}

func TestAddTwiceSchedulesOnce(t *testing.T) {
	s := New()
	a := newActor("a", 3, 3)
	s.Add(a)
	s.Add(a)
	assert.Equal(t, 1, s.Len())
	s.Remove(a)
	assert.Zero(t, s.Len())
	assert.False(t, s.Contains(a))
}

func TestRun_GuardKeepsEntityThatRemovedAndReaddedItself(t *testing.T) {
	s := New()
	a := newActor("a", 1, 0)
	a.onUpdate = func(a *actor) {
		s.Remove(a)
		s.Add(a)
	}
	s.Add(a)

	s.Run()

	assert.Equal(t, 1, a.updates)
	require.True(t, s.Contains(a), "entity lost when the pass ended on it")
	assert.Equal(t, 1, s.Len())
}

func TestClearDuringUpdate(t *testing.T) {
	s := New()
	a := newActor("a", 1, 1)
	b := newActor("b", 2, 1)
	a.onUpdate = func(*actor) { s.Clear() }
	s.AddAll(a, b)

	s.Run()

	assert.Zero(t, s.Len())
	assert.False(t, s.Contains(a))
	assert.Equal(t, 1, a.updates)
	assert.Equal(t, 0, b.updates)
}
