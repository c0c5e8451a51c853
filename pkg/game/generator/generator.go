package generator

import (
	"roguekernel/pkg/engine/rng"
	"roguekernel/pkg/game/config"
)

// MapGenerator is an interface for level generation algorithms
type MapGenerator interface {
	Generate(cfg config.Config, r *rng.CMWC) *Level
	Name() string
}

// BSP is the binary space partition generator.
var BSP = &BSPGenerator{}

// DefaultGenerator is the default level generator
var DefaultGenerator MapGenerator = BSP
