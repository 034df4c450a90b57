package system

import "math"

// grid buckets collider indices into square cells. The cell size is at
// least the largest collider diameter, so every overlapping pair lies in a
// 3x3 neighbourhood. Rebuilt each frame; accessed only from the game loop.
type grid struct {
	size  float64
	cells map[cellKey][]int
}

type cellKey struct {
	cx int64
	cy int64
}

func newGrid() *grid {
	return &grid{size: 1, cells: make(map[cellKey][]int)}
}

// reset empties the grid, keeping cell slices for reuse.
func (g *grid) reset(size float64) {
	if size <= 0 {
		size = 1
	}
	g.size = size
	for k, v := range g.cells {
		g.cells[k] = v[:0]
	}
}

func (g *grid) key(x, y float64) cellKey {
	return cellKey{cx: int64(math.Floor(x / g.size)), cy: int64(math.Floor(y / g.size))}
}

func (g *grid) add(i int, x, y float64) {
	k := g.key(x, y)
	g.cells[k] = append(g.cells[k], i)
}

// nearby appends the indices in the 3x3 neighbourhood of (x, y) to out.
// Caller does the exact overlap test.
func (g *grid) nearby(x, y float64, out []int) []int {
	c := g.key(x, y)
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			out = append(out, g.cells[cellKey{cx: c.cx + dx, cy: c.cy + dy}]...)
		}
	}
	return out
}
