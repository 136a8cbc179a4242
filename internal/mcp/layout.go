package mcpserver

import (
	"math"

	"rulecanvas/internal/domain"
)

const (
	GridSize    = 30.0 // matches frontend GRID_SIZE
	BlockWidth  = 240.0
	BlockHeight = 60.0
	Padding     = 60.0 // 2 grid cells between blocks
)

// LayoutEngine arranges rule blocks into a readable left-to-right flow:
// one column per category, triggers first.
type LayoutEngine struct {
	gridSize float64
	padding  float64
	colW     float64
	rowH     float64
}

func NewLayoutEngine() *LayoutEngine {
	return &LayoutEngine{
		gridSize: GridSize,
		padding:  Padding,
		colW:     BlockWidth,
		rowH:     BlockHeight,
	}
}

// snap rounds v to the nearest grid point.
func (le *LayoutEngine) snap(v float64) float64 {
	return math.Round(v/le.gridSize) * le.gridSize
}

// Arrange returns the position of every block keyed by ID. Each category gets
// a column starting at (startX, startY); blocks stack downward in insertion order.
func (le *LayoutEngine) Arrange(blocks []domain.Block, startX, startY float64) map[int64]domain.Position {
	x0 := le.snap(startX)
	y0 := le.snap(startY)
	colStep := le.snap(le.colW + le.padding)
	rowStep := le.snap(le.rowH + le.padding)

	rows := map[domain.Category]int{}
	out := make(map[int64]domain.Position, len(blocks))
	for _, b := range blocks {
		col := columnOf(b.Category)
		if col < 0 {
			continue
		}
		out[b.ID] = domain.Position{
			X: x0 + float64(col)*colStep,
			Y: y0 + float64(rows[b.Category])*rowStep,
		}
		rows[b.Category]++
	}
	return out
}

func columnOf(c domain.Category) int {
	for i, cat := range domain.Categories {
		if cat == c {
			return i
		}
	}
	return -1
}
