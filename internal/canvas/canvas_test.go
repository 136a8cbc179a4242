package canvas_test

import (
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rulecanvas/internal/canvas"
	"rulecanvas/internal/domain"
	"rulecanvas/internal/palette"
)

// fixedClock always returns the same instant, forcing IDs to collide on the tick.
func fixedClock() time.Time { return time.UnixMilli(1_700_000_000_000) }

func newCanvas() *canvas.Canvas {
	return canvas.New(canvas.FixedPlacer{X: 10, Y: 20}, canvas.WithClock(fixedClock))
}

func template(t *testing.T, kind domain.BlockKind) domain.Template {
	t.Helper()
	tpl, ok := palette.Lookup(kind)
	require.True(t, ok, "kind %s", kind)
	return tpl
}

func TestAdd_CopiesTemplate(t *testing.T) {
	c := newCanvas()
	tpl := template(t, domain.KindAmountGreater)

	b := c.Add(tpl)

	assert.Equal(t, int64(1_700_000_000_000), b.ID)
	assert.Equal(t, domain.KindAmountGreater, b.Kind)
	assert.Equal(t, domain.CategoryCondition, b.Category)
	assert.Equal(t, "If amount greater than", b.Label)
	assert.Equal(t, tpl.Defaults, b.Config)
	assert.Equal(t, domain.Position{X: 10, Y: 20}, b.Position)
	assert.Equal(t, 1, c.Len())
}

func TestAdd_ConfigIsIndependentOfTemplate(t *testing.T) {
	c := newCanvas()
	tpl := template(t, domain.KindAmountGreater)
	b := c.Add(tpl)

	cfg := domain.Config{Amount: 5, Comparison: "less"}
	_, ok := c.Update(b.ID, canvas.Patch{Config: &cfg})
	require.True(t, ok)

	again, _ := palette.Lookup(domain.KindAmountGreater)
	assert.Equal(t, float64(1000), again.Defaults.Amount)
}

func TestAdd_UniqueIDsWithinOneTick(t *testing.T) {
	c := newCanvas()
	tpl := template(t, domain.KindEmailReceived)

	seen := map[int64]bool{}
	var prev int64
	for i := 0; i < 10; i++ {
		b := c.Add(tpl)
		assert.False(t, seen[b.ID])
		assert.Greater(t, b.ID, prev)
		seen[b.ID] = true
		prev = b.ID
	}
}

func TestAdd_EmptyDefaults(t *testing.T) {
	c := newCanvas()
	b := c.Add(domain.Template{Kind: "custom", Category: domain.CategoryAction, Label: "Do it"})
	assert.True(t, b.Config.IsZero())
}

func TestAdd_PreservesOrder(t *testing.T) {
	c := newCanvas()
	a := c.Add(template(t, domain.KindEmailReceived))
	b := c.Add(template(t, domain.KindSendNotification))
	d := c.Add(template(t, domain.KindAmountGreater))

	var ids []int64
	for _, blk := range c.Blocks() {
		ids = append(ids, blk.ID)
	}
	assert.Equal(t, []int64{a.ID, b.ID, d.ID}, ids)
}

func TestAddThenRemove_YieldsEmpty(t *testing.T) {
	c := newCanvas()
	b := c.Add(template(t, domain.KindEmailReceived))

	assert.True(t, c.Remove(b.ID))
	assert.Empty(t, c.Blocks())
	assert.Equal(t, 0, c.Len())
}

func TestUpdate_UnknownIDIsNoop(t *testing.T) {
	c := newCanvas()
	c.Add(template(t, domain.KindEmailReceived))
	c.Add(template(t, domain.KindSendNotification))
	before := c.Blocks()

	pos := domain.Position{X: 99, Y: 99}
	_, ok := c.Update(12345, canvas.Patch{Position: &pos})

	assert.False(t, ok)
	if diff := cmp.Diff(before, c.Blocks()); diff != "" {
		t.Errorf("blocks changed (-before +after):\n%s", diff)
	}
}

func TestUpdate_Position(t *testing.T) {
	c := newCanvas()
	a := c.Add(template(t, domain.KindEmailReceived))
	b := c.Add(template(t, domain.KindSendNotification))

	pos := domain.Position{X: 150, Y: 75}
	updated, ok := c.Update(b.ID, canvas.Patch{Position: &pos})
	require.True(t, ok)
	assert.Equal(t, pos, updated.Position)
	assert.Equal(t, b.Config, updated.Config)

	blocks := c.Blocks()
	require.Len(t, blocks, 2)
	assert.Equal(t, a, blocks[0], "untargeted block must be untouched")
	assert.Equal(t, updated, blocks[1])
}

func TestUpdate_ConfigReplacesWhole(t *testing.T) {
	c := newCanvas()
	b := c.Add(template(t, domain.KindAmountGreater))

	cfg := domain.Config{Amount: 250}
	updated, ok := c.Update(b.ID, canvas.Patch{Config: &cfg})
	require.True(t, ok)

	assert.Equal(t, float64(250), updated.Config.Amount)
	assert.Empty(t, updated.Config.Comparison, "config patches are not merged")
	assert.Equal(t, b.Position, updated.Position)
}

func TestRemove_UnknownIDIsNoop(t *testing.T) {
	c := newCanvas()
	c.Add(template(t, domain.KindEmailReceived))

	assert.False(t, c.Remove(42))
	assert.Equal(t, 1, c.Len())
}

func TestRemove_MiddleKeepsOrder(t *testing.T) {
	c := newCanvas()
	a := c.Add(template(t, domain.KindEmailReceived))
	b := c.Add(template(t, domain.KindAmountGreater))
	d := c.Add(template(t, domain.KindSendNotification))
	snapshot := c.Blocks()

	require.True(t, c.Remove(b.ID))

	assert.Equal(t, []domain.Block{a, d}, c.Blocks())
	assert.Len(t, snapshot, 3, "earlier snapshots are not affected")
}

func TestClear(t *testing.T) {
	c := newCanvas()
	c.Add(template(t, domain.KindEmailReceived))
	c.Add(template(t, domain.KindSendNotification))

	c.Clear()

	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Blocks())
}

func TestReplace_AdvancesIDs(t *testing.T) {
	c := newCanvas()
	loaded := []domain.Block{
		{ID: 1_800_000_000_000, Kind: domain.KindEmailReceived, Category: domain.CategoryTrigger, Label: "When new email received"},
	}
	c.Replace(loaded)

	b := c.Add(template(t, domain.KindSendNotification))
	assert.Equal(t, int64(1_800_000_000_001), b.ID)
	assert.Equal(t, 2, c.Len())
}

func TestBlocks_ReturnsCopy(t *testing.T) {
	c := newCanvas()
	c.Add(template(t, domain.KindEmailReceived))

	blocks := c.Blocks()
	blocks[0].Label = "mutated"

	got, ok := c.Get(blocks[0].ID)
	require.True(t, ok)
	assert.Equal(t, "When new email received", got.Label)
}

func TestRandomPlacer_WithinBoundsAndSeeded(t *testing.T) {
	p1 := canvas.NewRandomPlacer(7, 400, 300)
	p2 := canvas.NewRandomPlacer(7, 400, 300)
	for i := 0; i < 100; i++ {
		a, b := p1.Place(), p2.Place()
		assert.Equal(t, a, b)
		assert.GreaterOrEqual(t, a.X, 0.0)
		assert.Less(t, a.X, 400.0)
		assert.GreaterOrEqual(t, a.Y, 0.0)
		assert.Less(t, a.Y, 300.0)
	}
}

func TestRandomPlacer_DefaultBounds(t *testing.T) {
	p := canvas.NewRandomPlacer(1, 0, -5)
	for i := 0; i < 50; i++ {
		pos := p.Place()
		assert.Less(t, pos.X, float64(canvas.DefaultWidth))
		assert.Less(t, pos.Y, float64(canvas.DefaultHeight))
	}
}

func TestCanvas_ConcurrentAdds(t *testing.T) {
	c := canvas.New(canvas.NewRandomPlacer(1, 0, 0))
	tpl := template(t, domain.KindEmailReceived)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Add(tpl)
		}()
	}
	wg.Wait()

	seen := map[int64]bool{}
	for _, b := range c.Blocks() {
		seen[b.ID] = true
	}
	assert.Len(t, seen, 20)
}
