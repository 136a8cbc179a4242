package canvas

import (
	"math/rand"
	"sync"

	"rulecanvas/internal/domain"
)

// Default canvas surface used for initial block placement.
const (
	DefaultWidth  = 400
	DefaultHeight = 300
)

// Placer picks the initial position of a newly added block.
type Placer interface {
	Place() domain.Position
}

// RandomPlacer scatters blocks uniformly over the canvas bounds. Overlaps are allowed.
type RandomPlacer struct {
	mu            sync.Mutex
	rng           *rand.Rand
	width, height float64
}

// NewRandomPlacer returns a placer drawing from a source seeded with seed.
// Non-positive bounds fall back to the default canvas size.
func NewRandomPlacer(seed int64, width, height float64) *RandomPlacer {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &RandomPlacer{rng: rand.New(rand.NewSource(seed)), width: width, height: height}
}

func (p *RandomPlacer) Place() domain.Position {
	p.mu.Lock()
	defer p.mu.Unlock()
	return domain.Position{X: p.rng.Float64() * p.width, Y: p.rng.Float64() * p.height}
}

// FixedPlacer puts every block at the same point.
type FixedPlacer domain.Position

func (p FixedPlacer) Place() domain.Position { return domain.Position(p) }
