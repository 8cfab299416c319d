package t2048

import (
	"fmt"
	"strings"
)

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists every direction in a fixed order.
var Directions = []Direction{DirUp, DirDown, DirLeft, DirRight}

// String returns the lower-case direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// ParseDirection converts a name such as "left" into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return DirUp, nil
	case "down":
		return DirDown, nil
	case "left":
		return DirLeft, nil
	case "right":
		return DirRight, nil
	}
	return 0, fmt.Errorf("t2048: unknown direction %q", s)
}

// MoveResult is the outcome of sliding a grid in one direction.
type MoveResult struct {
	Grid        Grid
	Moved       bool
	ScoreGained int
}

// compact slides non-empty cells to the front of the line, keeping order.
func compact(line []int) {
	write := 0
	for _, v := range line {
		if v == 0 {
			continue
		}
		line[write] = v
		write++
	}
	for i := write; i < len(line); i++ {
		line[i] = 0
	}
}

// slideLine compacts, merges and re-compacts a line toward index 0.
// A tile produced by a merge is never merged again in the same call.
func slideLine(line []int) (score int) {
	compact(line)

	for i := 0; i < len(line)-1; i++ {
		if line[i] == 0 {
			break
		}
		if line[i] == line[i+1] {
			line[i] *= 2
			line[i+1] = 0
			score += line[i]
			i++ // skip the cleared cell
		}
	}

	compact(line)
	return score
}

// reverseRows reverses every row in place.
func reverseRows(g Grid) {
	for _, row := range g {
		for i, j := 0, len(row)-1; i < j; i, j = i+1, j-1 {
			row[i], row[j] = row[j], row[i]
		}
	}
}

// transpose returns the matrix transpose as a new grid.
func transpose(g Grid) Grid {
	size := len(g)
	result := NewGrid(size)
	for r := range size {
		for c := range size {
			result[r][c] = g[c][r]
		}
	}
	return result
}

// slideRowsLeft slides every row of g toward column 0 in place.
func slideRowsLeft(g Grid) int {
	total := 0
	for _, row := range g {
		total += slideLine(row)
	}
	return total
}

// ApplyDirection slides every line of grid in the given direction.
// The input grid is never modified.
func ApplyDirection(grid Grid, dir Direction) MoveResult {
	var (
		next  Grid
		score int
	)

	switch dir {
	case DirLeft:
		next = grid.Clone()
		score = slideRowsLeft(next)
	case DirRight:
		// Reverse, slide left, reverse back
		next = grid.Clone()
		reverseRows(next)
		score = slideRowsLeft(next)
		reverseRows(next)
	case DirUp:
		// Transpose, slide left, transpose back
		next = transpose(grid)
		score = slideRowsLeft(next)
		next = transpose(next)
	case DirDown:
		next = transpose(grid)
		reverseRows(next)
		score = slideRowsLeft(next)
		reverseRows(next)
		next = transpose(next)
	default:
		return MoveResult{Grid: grid.Clone()}
	}

	if next.Equal(grid) {
		return MoveResult{Grid: next}
	}
	return MoveResult{Grid: next, Moved: true, ScoreGained: score}
}
