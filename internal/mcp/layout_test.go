package mcpserver

import (
	"testing"

	"rulecanvas/internal/domain"
)

func TestArrange_Empty(t *testing.T) {
	le := NewLayoutEngine()
	if got := le.Arrange(nil, 0, 0); len(got) != 0 {
		t.Errorf("expected no positions for empty canvas, got %d", len(got))
	}
}

func TestArrange_ColumnsByCategory(t *testing.T) {
	le := NewLayoutEngine()
	blocks := []domain.Block{
		{ID: 1, Category: domain.CategoryAction},
		{ID: 2, Category: domain.CategoryTrigger},
		{ID: 3, Category: domain.CategoryAction},
		{ID: 4, Category: domain.CategoryCondition},
	}

	got := le.Arrange(blocks, 0, 0)

	want := map[int64]domain.Position{
		2: {X: 0, Y: 0},
		4: {X: 300, Y: 0},
		1: {X: 600, Y: 0},
		3: {X: 600, Y: 120},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d positions, got %d", len(want), len(got))
	}
	for id, pos := range want {
		if got[id] != pos {
			t.Errorf("block %d: got (%.0f, %.0f), want (%.0f, %.0f)", id, got[id].X, got[id].Y, pos.X, pos.Y)
		}
	}
}

func TestArrange_SnapsOrigin(t *testing.T) {
	le := NewLayoutEngine()
	got := le.Arrange([]domain.Block{{ID: 7, Category: domain.CategoryCondition}}, 44, 16)
	if want := (domain.Position{X: 330, Y: 30}); got[7] != want {
		t.Errorf("got (%.0f, %.0f), want (%.0f, %.0f)", got[7].X, got[7].Y, want.X, want.Y)
	}
}

func TestArrange_NoOverlap(t *testing.T) {
	le := NewLayoutEngine()
	var blocks []domain.Block
	for i := int64(1); i <= 9; i++ {
		blocks = append(blocks, domain.Block{ID: i, Category: domain.Categories[i%3]})
	}
	got := le.Arrange(blocks, 0, 0)

	for i := int64(1); i <= 9; i++ {
		for j := i + 1; j <= 9; j++ {
			a, b := got[i], got[j]
			if a.X < b.X+BlockWidth && a.X+BlockWidth > b.X && a.Y < b.Y+BlockHeight && a.Y+BlockHeight > b.Y {
				t.Errorf("blocks %d and %d overlap: (%.0f,%.0f) and (%.0f,%.0f)", i, j, a.X, a.Y, b.X, b.Y)
			}
		}
	}
}

func TestSnap(t *testing.T) {
	le := NewLayoutEngine()
	tests := []struct {
		input, want float64
	}{
		{0, 0},
		{15, 30},
		{29, 30},
		{30, 30},
		{45, 60},
		{100, 90}, // rounds to nearest grid: 3*30=90
	}
	for _, tt := range tests {
		got := le.snap(tt.input)
		if got != tt.want {
			t.Errorf("snap(%.0f) = %.0f, want %.0f", tt.input, got, tt.want)
		}
	}
}
