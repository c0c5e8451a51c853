// Package rng provides the deterministic random number generator used by every
// generator in the kernel: a complementary multiply-with-carry (CMWC) generator
// with a 4096 word lag table.
//
// Two generators built from the same seed produce the same sequence for the
// lifetime of the process. A generator is not safe for concurrent use.
package rng

import (
	"cmp"
	"maps"
	"math"
	"slices"
	"time"
)

const (
	tableSize = 4096
	tableMask = tableSize - 1

	lcgMul     = 1103515245
	lcgAdd     = 12345
	carryLimit = 809430660
	multiplier = 18782
)

// Source is anything that can draw an integer from an inclusive range.
// The BSP tree and the dungeon builder only need this much.
type Source interface {
	GetNumber(min, max int) int
}

// CMWC is a complementary multiply-with-carry generator.
type CMWC struct {
	q    [tableSize]uint32
	c    uint32
	cur  int
	seed uint32
}

// New creates a generator from an explicit seed.
func New(seed uint32) *CMWC {
	r := &CMWC{seed: seed}
	s := seed
	for i := 0; i < tableSize; i++ {
		s = s*lcgMul + lcgAdd
		r.q[i] = s
	}
	r.c = (s*lcgMul + lcgAdd) % carryLimit
	r.cur = 0
	return r
}

// NewRandom creates a generator seeded from the wall clock.
func NewRandom() *CMWC {
	now := uint64(time.Now().UnixNano())
	return New(uint32(now) ^ uint32(now>>32))
}

// Seed returns the seed the generator was created with.
func (r *CMWC) Seed() uint32 {
	return r.seed
}

// next advances the generator and returns the next raw 32 bit value.
func (r *CMWC) next() uint32 {
	r.cur = (r.cur + 1) & tableMask
	t := multiplier*uint64(r.q[r.cur]) + uint64(r.c)
	r.c = uint32(t >> 32)
	x := uint32(t) + r.c
	if x < r.c {
		x++
		r.c++
	}
	if x == 0xFFFFFFFF {
		r.c++
		x = 0
	}
	r.q[r.cur] = 0xFFFFFFFE - x
	return r.q[r.cur]
}

// Uint32 returns the next raw value.
func (r *CMWC) Uint32() uint32 {
	return r.next()
}

// GetNumber returns an integer in [min, max]. Reversed bounds are swapped.
// When min == max no value is drawn.
func (r *CMWC) GetNumber(min, max int) int {
	if min == max {
		return min
	}
	if min > max {
		min, max = max, min
	}
	span := uint64(max) - uint64(min)
	if span == math.MaxUint64 {
		return int(uint64(min) + r.next64())
	}
	var v uint64
	if span <= math.MaxUint32 {
		v = uint64(r.next()) % (span + 1)
	} else {
		v = r.next64() % (span + 1)
	}
	return int(uint64(min) + v)
}

func (r *CMWC) next64() uint64 {
	return uint64(r.next())<<32 | uint64(r.next())
}

// GetFloat returns a value in [0, 1).
func (r *CMWC) GetFloat() float64 {
	return float64(r.next()) / (1 << 32)
}

// Shuffle performs a Fisher-Yates shuffle of n elements using swap.
func (r *CMWC) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := r.GetNumber(0, i)
		if i != j {
			swap(i, j)
		}
	}
}

// GetRandomChance picks a key with probability proportional to its weight.
// Keys are scanned in ascending order so the pick only depends on the
// generator state. A key with weight 0 is never picked. If no weight is
// positive the call is a caller error and the zero key is returned.
func GetRandomChance[K cmp.Ordered](r Source, chances map[K]int) K {
	var zero K
	keys := slices.Sorted(maps.Keys(chances))

	sum := 0
	for _, k := range keys {
		if w := chances[k]; w > 0 {
			sum += w
		}
	}
	if sum <= 0 {
		return zero
	}

	n := r.GetNumber(0, sum-1)
	acc := 0
	for _, k := range keys {
		w := chances[k]
		if w <= 0 {
			continue
		}
		acc += w
		if n < acc {
			return k
		}
	}
	return zero
}
