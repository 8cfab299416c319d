// Package t2048 implements the 2048 game engine: the pure move/merge
// algorithm, a turn-based session with bounded undo, and snapshots for
// persistence.
package t2048

// DefaultSize is the default grid dimension.
const DefaultSize = 4

// Grid is a square matrix of tiles. 0 marks an empty cell, any other value
// is a power of two.
type Grid [][]int

// Cell addresses a grid position.
type Cell struct {
	Row, Col int
}

// NewGrid returns an empty size x size grid.
func NewGrid(size int) Grid {
	g := make(Grid, size)
	for r := range g {
		g[r] = make([]int, size)
	}
	return g
}

// Size returns the grid dimension.
func (g Grid) Size() int {
	return len(g)
}

// Clone returns a deep copy of the grid.
func (g Grid) Clone() Grid {
	if g == nil {
		return nil
	}
	c := make(Grid, len(g))
	for r, row := range g {
		c[r] = append([]int(nil), row...)
	}
	return c
}

// Equal reports whether both grids have the same shape and contents.
func (g Grid) Equal(other Grid) bool {
	if len(g) != len(other) {
		return false
	}
	for r := range g {
		if len(g[r]) != len(other[r]) {
			return false
		}
		for c := range g[r] {
			if g[r][c] != other[r][c] {
				return false
			}
		}
	}
	return true
}

// EmptyCells returns coordinates of all empty cells in row-major order.
func (g Grid) EmptyCells() []Cell {
	var cells []Cell
	for r, row := range g {
		for c, v := range row {
			if v == 0 {
				cells = append(cells, Cell{Row: r, Col: c})
			}
		}
	}
	return cells
}

// EmptyCount returns the number of empty cells.
func (g Grid) EmptyCount() int {
	n := 0
	for _, row := range g {
		for _, v := range row {
			if v == 0 {
				n++
			}
		}
	}
	return n
}

// HasPossibleMerge returns true if any two adjacent tiles on either axis are equal.
func (g Grid) HasPossibleMerge() bool {
	size := len(g)
	for r := range size {
		for c := range size {
			v := g[r][c]
			if v == 0 {
				continue
			}
			if c < size-1 && g[r][c+1] == v {
				return true
			}
			if r < size-1 && g[r+1][c] == v {
				return true
			}
		}
	}
	return false
}

// CanMove returns true if any direction would change the grid.
func (g Grid) CanMove() bool {
	return g.EmptyCount() > 0 || g.HasPossibleMerge()
}

// MaxTile returns the highest tile value on the grid.
func (g Grid) MaxTile() int {
	maxVal := 0
	for _, row := range g {
		for _, v := range row {
			if v > maxVal {
				maxVal = v
			}
		}
	}
	return maxVal
}

// isPowerOfTwo reports whether v is a positive power of two.
func isPowerOfTwo(v int) bool {
	return v > 0 && v&(v-1) == 0
}
