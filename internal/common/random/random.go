package random

import (
	"math/rand"
	"time"

	"github.com/robalobadob/memory-buttons/internal/models"
)

const maxColor = 0xFFFFFF

//go:generate mockgen -package=mocks -destination=mocks/mock_random.go github.com/robalobadob/memory-buttons/internal/common/random Source
type Source interface {
	// Colors returns n independently drawn colors. Duplicates are possible.
	Colors(n int) []models.Color

	// Positions returns n independently drawn top-left corners such that an
	// itemW x itemH box stays inside boundsW x boundsH. Items may overlap.
	Positions(n int, itemW, itemH, boundsW, boundsH float64) []models.Position
}

// Generator is the math/rand backed Source. Not safe for concurrent use;
// each session owns its own.
type Generator struct {
	random *rand.Rand
}

// Config for the generator
type Config struct {
	// Optional seed; zero means seed from the clock
	Seed int64
}

// New creates a new generator
func New(cfg *Config) *Generator {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &Generator{
		random: rand.New(rand.NewSource(seed)),
	}
}

// NewSeeded is shorthand for a deterministic generator.
func NewSeeded(seed uint64) *Generator {
	s := int64(seed)
	if s == 0 {
		s = 1
	}
	return New(&Config{Seed: s})
}

// Colors draws from the full 24-bit range, 0x000000..0xFFFFFF inclusive.
func (g *Generator) Colors(n int) []models.Color {
	if n <= 0 {
		return nil
	}
	out := make([]models.Color, n)
	for i := range out {
		out[i] = models.ColorFromInt(uint32(g.random.Intn(maxColor + 1)))
	}
	return out
}

// Positions pins a coordinate to 0 when the bounds are smaller than the item.
func (g *Generator) Positions(n int, itemW, itemH, boundsW, boundsH float64) []models.Position {
	if n <= 0 {
		return nil
	}
	spanX := boundsW - itemW
	spanY := boundsH - itemH
	out := make([]models.Position, n)
	for i := range out {
		out[i] = models.Position{
			X: g.span(spanX),
			Y: g.span(spanY),
		}
	}
	return out
}

func (g *Generator) span(max float64) float64 {
	if max <= 0 {
		return 0
	}
	return g.random.Float64() * max
}
