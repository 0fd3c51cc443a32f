package physics

import "math"

// SpatialGrid is a uniform grid for broad-phase collision detection over a
// bounded field. Objects are inserted by position and index; QueryCircle then
// visits every index stored in the cells a circle's bounding box covers.
//
// Positions outside the field are clamped into the edge cells, so a query
// never misses an item that lies within its radius.
type SpatialGrid struct {
	bounds      Rect
	cellSize    float64
	invCellSize float64 // 1 / cellSize (precomputed to avoid division)
	cols        int
	rows        int
	cells       []gridCell
}

// gridCell stores the indices of objects that fall within a grid cell.
// The slice is reused between frames (reset to [:0]) to avoid allocations.
type gridCell struct {
	items []int
}

// NewSpatialGrid creates a spatial grid covering bounds.
func NewSpatialGrid(bounds Rect, cellSize float64) *SpatialGrid {
	if cellSize <= 0 {
		cellSize = 1
	}
	cols := int(math.Ceil(bounds.W / cellSize))
	rows := int(math.Ceil(bounds.H / cellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	return &SpatialGrid{
		bounds:      bounds,
		cellSize:    cellSize,
		invCellSize: 1.0 / cellSize,
		cols:        cols,
		rows:        rows,
		cells:       make([]gridCell, cols*rows),
	}
}

// Clear removes all items from the grid without deallocating cell memory.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i].items = g.cells[i].items[:0]
	}
}

// Insert adds an item (identified by index) at the given position.
func (g *SpatialGrid) Insert(p Vec2, index int) {
	col, row := g.posToCell(p.X, p.Y)
	idx := row*g.cols + col
	g.cells[idx].items = append(g.cells[idx].items, index)
}

// QueryCircle calls fn for each item index stored in a cell touched by the
// bounding box of the circle (center, radius). Callers still perform the
// exact distance test. If fn returns true, iteration stops early.
func (g *SpatialGrid) QueryCircle(center Vec2, radius float64, fn func(index int) bool) {
	if radius < 0 {
		radius = 0
	}
	minCol, minRow := g.posToCell(center.X-radius, center.Y-radius)
	maxCol, maxRow := g.posToCell(center.X+radius, center.Y+radius)

	for r := minRow; r <= maxRow; r++ {
		rowOffset := r * g.cols
		for c := minCol; c <= maxCol; c++ {
			for _, itemIdx := range g.cells[rowOffset+c].items {
				if fn(itemIdx) {
					return
				}
			}
		}
	}
}

// posToCell converts field coordinates to grid cell coordinates.
// Clamps to valid range so out-of-field positions map to edge cells.
func (g *SpatialGrid) posToCell(x, y float64) (col, row int) {
	col = int(math.Floor((x - g.bounds.X) * g.invCellSize))
	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}

	row = int(math.Floor((y - g.bounds.Y) * g.invCellSize))
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return col, row
}
