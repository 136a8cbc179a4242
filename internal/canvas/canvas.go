// Package canvas holds the in-memory model of the rule being built: the
// ordered list of blocks currently placed on the canvas.
package canvas

import (
	"sync"
	"time"

	"rulecanvas/internal/domain"
)

// Patch lists the fields to overwrite on a block. Nil fields are left alone.
// A Config patch replaces the whole config; callers merge prior values themselves.
type Patch struct {
	Position *domain.Position
	Config   *domain.Config
}

// Canvas is the authoritative block list for one editing session.
type Canvas struct {
	mu     sync.Mutex
	blocks []domain.Block
	placer Placer
	now    func() time.Time
	lastID int64
}

// Option configures a Canvas.
type Option func(*Canvas)

// WithClock sets the clock block IDs are derived from.
func WithClock(now func() time.Time) Option {
	return func(c *Canvas) { c.now = now }
}

// New creates an empty canvas. A nil placer uses a time-seeded RandomPlacer.
func New(placer Placer, opts ...Option) *Canvas {
	c := &Canvas{placer: placer, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	if c.placer == nil {
		c.placer = NewRandomPlacer(c.now().UnixNano(), DefaultWidth, DefaultHeight)
	}
	return c
}

// Add places a new block copied from t and returns it.
func (c *Canvas) Add(t domain.Template) domain.Block {
	c.mu.Lock()
	defer c.mu.Unlock()

	b := domain.Block{
		ID:       c.nextID(),
		Kind:     t.Kind,
		Category: t.Category,
		Label:    t.Label,
		Config:   t.Defaults,
		Position: c.placer.Place(),
	}
	c.blocks = append(c.blocks, b)
	return b
}

// Update applies p to the block with the given id. It reports false, and
// changes nothing, when no such block exists.
func (c *Canvas) Update(id int64, p Patch) (domain.Block, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return domain.Block{}, false
	}
	b := c.blocks[i]
	if p.Position != nil {
		b.Position = *p.Position
	}
	if p.Config != nil {
		b.Config = *p.Config
	}
	c.blocks[i] = b
	return b, true
}

// Remove deletes the block with the given id, reporting whether it existed.
func (c *Canvas) Remove(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.blocks = append(c.blocks[:i:i], c.blocks[i+1:]...)
	return true
}

// Clear removes every block.
func (c *Canvas) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.blocks = nil
}

// Replace swaps the whole block list, e.g. when a saved rule is loaded.
// Later IDs continue above the highest loaded ID.
func (c *Canvas) Replace(blocks []domain.Block) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.blocks = make([]domain.Block, len(blocks))
	copy(c.blocks, blocks)
	for _, b := range blocks {
		if b.ID > c.lastID {
			c.lastID = b.ID
		}
	}
}

// Get returns the block with the given id.
func (c *Canvas) Get(id int64) (domain.Block, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return domain.Block{}, false
	}
	return c.blocks[i], true
}

// Blocks returns a copy of the blocks in insertion order.
func (c *Canvas) Blocks() []domain.Block {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]domain.Block, len(c.blocks))
	copy(out, c.blocks)
	return out
}

// Len returns the number of blocks on the canvas.
func (c *Canvas) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.blocks)
}

// nextID derives an ID from the clock's millisecond tick, bumping past the
// previous ID when two blocks land in the same tick.
func (c *Canvas) nextID() int64 {
	id := c.now().UnixMilli()
	if id <= c.lastID {
		id = c.lastID + 1
	}
	c.lastID = id
	return id
}

func (c *Canvas) indexOf(id int64) int {
	for i, b := range c.blocks {
		if b.ID == id {
			return i
		}
	}
	return -1
}
