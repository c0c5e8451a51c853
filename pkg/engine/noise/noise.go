// Package noise provides smooth one dimensional noise for intensity variation
// such as torch flicker.
package noise

import (
	"math"

	"github.com/ojrac/opensimplex-go"

	"roguekernel/pkg/engine/rng"
)

// Generator produces smooth noise in [-1, 1].
type Generator interface {
	Noise1D(x float64) float64
}

// shuffler is the part of the generator the permutation table needs.
type shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

const permSize = 256

// Simplex is one dimensional gradient noise: each integer position gets a
// pseudo random slope from a shuffled permutation table and the contributions
// of the two surrounding lattice points are summed under a (1 - d²)³ kernel.
// The value is zero on every lattice point.
type Simplex struct {
	perm [permSize * 2]uint8
}

// NewSimplex builds the permutation table by shuffling 0..255 with r.
func NewSimplex(r shuffler) *Simplex {
	s := &Simplex{}
	var p [permSize]uint8
	for i := range p {
		p[i] = uint8(i)
	}
	r.Shuffle(permSize, func(i, j int) { p[i], p[j] = p[j], p[i] })
	for i := range s.perm {
		s.perm[i] = p[i&(permSize-1)]
	}
	return s
}

// simplexScale maps the largest possible sum, 8 * 27/64 at d = 0.5 with
// opposing slopes, onto 1.
const simplexScale = 8.0 / 27.0

// gradient maps lattice point i to a slope in ±1..±8.
func (s *Simplex) gradient(i int) float64 {
	h := s.perm[(i&(permSize-1))+int(s.perm[(i>>8)&(permSize-1)])]
	g := float64(h&7 + 1)
	if h&8 != 0 {
		g = -g
	}
	return g
}

func falloff(d float64) float64 {
	t := 1 - d*d
	if t <= 0 {
		return 0
	}
	return t * t * t
}

// Noise1D returns the noise value at x.
func (s *Simplex) Noise1D(x float64) float64 {
	fl := math.Floor(x)
	i0 := int(fl)
	d0 := x - fl
	d1 := d0 - 1

	v := falloff(d0)*s.gradient(i0)*d0 + falloff(d1)*s.gradient(i0+1)*d1
	return clamp(v * simplexScale)
}

// OpenSimplex slices a two dimensional OpenSimplex field along one axis.
type OpenSimplex struct {
	field  opensimplex.Noise
	offset float64
}

// NewOpenSimplex seeds an OpenSimplex field from r so that it is reproducible
// from the generator's seed.
func NewOpenSimplex(r *rng.CMWC) *OpenSimplex {
	seed := int64(r.Uint32())<<32 | int64(r.Uint32())
	return &OpenSimplex{
		field:  opensimplex.New(seed),
		offset: r.GetFloat() * permSize,
	}
}

// Noise1D returns the noise value at x.
func (o *OpenSimplex) Noise1D(x float64) float64 {
	return clamp(o.field.Eval2(x, o.offset))
}

func clamp(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
