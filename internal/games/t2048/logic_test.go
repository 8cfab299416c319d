package t2048

import (
	"slices"
	"testing"
)

func TestSlideLineMerge(t *testing.T) {
	tests := []struct {
		name     string
		input    []int
		expected []int
		score    int
	}{
		{
			name:     "simple merge",
			input:    []int{2, 2, 0, 0},
			expected: []int{4, 0, 0, 0},
			score:    4,
		},
		{
			name:     "merge with trailing tile",
			input:    []int{2, 2, 2, 0},
			expected: []int{4, 2, 0, 0},
			score:    4,
		},
		{
			name:     "double merge",
			input:    []int{2, 2, 2, 2},
			expected: []int{4, 4, 0, 0},
			score:    8,
		},
		{
			name:     "no merge possible",
			input:    []int{2, 4, 8, 16},
			expected: []int{2, 4, 8, 16},
			score:    0,
		},
		{
			name:     "slide with gap",
			input:    []int{0, 0, 2, 2},
			expected: []int{4, 0, 0, 0},
			score:    4,
		},
		{
			name:     "slide with multiple gaps",
			input:    []int{2, 0, 0, 2},
			expected: []int{4, 0, 0, 0},
			score:    4,
		},
		{
			name:     "merged tile not merged again",
			input:    []int{4, 2, 2, 0},
			expected: []int{4, 4, 0, 0},
			score:    4,
		},
		{
			name:     "near pair merges first",
			input:    []int{8, 8, 8, 0},
			expected: []int{16, 8, 0, 0},
			score:    16,
		},
		{
			name:     "empty row",
			input:    []int{0, 0, 0, 0},
			expected: []int{0, 0, 0, 0},
			score:    0,
		},
		{
			name:     "single tile",
			input:    []int{0, 4, 0, 0},
			expected: []int{4, 0, 0, 0},
			score:    0,
		},
		{
			name:     "five wide",
			input:    []int{2, 2, 4, 4, 4},
			expected: []int{4, 8, 4, 0, 0},
			score:    12,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := slices.Clone(tt.input)
			score := slideLine(line)
			if !slices.Equal(line, tt.expected) {
				t.Errorf("slideLine(%v) = %v, want %v", tt.input, line, tt.expected)
			}
			if score != tt.score {
				t.Errorf("slideLine(%v) score = %d, want %d", tt.input, score, tt.score)
			}
		})
	}
}

func TestApplyDirectionLeft(t *testing.T) {
	grid := Grid{
		{2, 2, 0, 0},
		{4, 0, 4, 0},
		{2, 2, 2, 2},
		{0, 0, 0, 2},
	}

	expected := Grid{
		{4, 0, 0, 0},
		{8, 0, 0, 0},
		{4, 4, 0, 0},
		{2, 0, 0, 0},
	}

	result := ApplyDirection(grid, DirLeft)

	if !result.Grid.Equal(expected) {
		t.Errorf("left: got\n%v\nwant\n%v", result.Grid, expected)
	}
	if !result.Moved {
		t.Error("left should report the grid moved")
	}
	if result.ScoreGained != 4+8+4+4 {
		t.Errorf("left score = %d, want %d", result.ScoreGained, 20)
	}
}

func TestApplyDirectionRight(t *testing.T) {
	grid := Grid{
		{2, 2, 0, 0},
		{4, 0, 4, 0},
		{2, 2, 2, 2},
		{0, 0, 0, 2},
	}

	expected := Grid{
		{0, 0, 0, 4},
		{0, 0, 0, 8},
		{0, 0, 4, 4},
		{0, 0, 0, 2},
	}

	result := ApplyDirection(grid, DirRight)

	if !result.Grid.Equal(expected) {
		t.Errorf("right: got\n%v\nwant\n%v", result.Grid, expected)
	}
	if !result.Moved {
		t.Error("right should report the grid moved")
	}
}

func TestApplyDirectionUp(t *testing.T) {
	grid := Grid{
		{2, 4, 2, 0},
		{2, 0, 2, 0},
		{0, 4, 2, 0},
		{0, 0, 2, 2},
	}

	expected := Grid{
		{4, 8, 4, 2},
		{0, 0, 4, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}

	result := ApplyDirection(grid, DirUp)

	if !result.Grid.Equal(expected) {
		t.Errorf("up: got\n%v\nwant\n%v", result.Grid, expected)
	}
	if result.ScoreGained != 4+8+4+4 {
		t.Errorf("up score = %d, want 20", result.ScoreGained)
	}
}

func TestApplyDirectionDown(t *testing.T) {
	grid := Grid{
		{2, 4, 2, 2},
		{2, 0, 2, 0},
		{0, 4, 2, 0},
		{0, 0, 2, 0},
	}

	expected := Grid{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 4, 0},
		{4, 8, 4, 2},
	}

	result := ApplyDirection(grid, DirDown)

	if !result.Grid.Equal(expected) {
		t.Errorf("down: got\n%v\nwant\n%v", result.Grid, expected)
	}
	if !result.Moved {
		t.Error("down should report the grid moved")
	}
}

func TestApplyDirectionScenario(t *testing.T) {
	grid := Grid{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}

	result := ApplyDirection(grid, DirLeft)

	expected := Grid{
		{4, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}
	if !result.Grid.Equal(expected) {
		t.Errorf("got\n%v\nwant\n%v", result.Grid, expected)
	}
	if !result.Moved || result.ScoreGained != 4 {
		t.Errorf("Moved = %v, ScoreGained = %d, want true, 4", result.Moved, result.ScoreGained)
	}
}

func TestApplyDirectionDoesNotMutateInput(t *testing.T) {
	grid := Grid{
		{2, 2, 4, 4},
		{0, 2, 0, 2},
		{8, 0, 8, 0},
		{2, 4, 2, 4},
	}
	original := grid.Clone()

	for _, dir := range Directions {
		result := ApplyDirection(grid, dir)
		if !grid.Equal(original) {
			t.Fatalf("%s mutated its input:\n%v", dir, grid)
		}
		result.Grid[0][0] = 1024
		if !grid.Equal(original) {
			t.Fatalf("%s result aliases its input", dir)
		}
	}
}

func TestApplyDirectionNoChange(t *testing.T) {
	// Sliding left when tiles are already left-aligned
	grid := Grid{
		{4, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}

	result := ApplyDirection(grid, DirLeft)

	if result.Moved {
		t.Error("left should not move already left-aligned tiles")
	}
	if result.ScoreGained != 0 {
		t.Errorf("ScoreGained = %d, want 0", result.ScoreGained)
	}
	if !result.Grid.Equal(grid) {
		t.Errorf("no-op result differs from input: %v", result.Grid)
	}
}

func TestApplyDirectionBlockedGrid(t *testing.T) {
	grid := checkerboard(4)

	for _, dir := range Directions {
		result := ApplyDirection(grid, dir)
		if result.Moved {
			t.Errorf("%s moved a blocked grid", dir)
		}
		if result.ScoreGained != 0 {
			t.Errorf("%s ScoreGained = %d, want 0", dir, result.ScoreGained)
		}
	}
}

func TestApplyDirectionUnknown(t *testing.T) {
	grid := Grid{{2, 2}, {0, 0}}
	result := ApplyDirection(grid, Direction(42))
	if result.Moved || !result.Grid.Equal(grid) {
		t.Errorf("unknown direction changed the grid: %+v", result)
	}
}

func TestCompactionConservesTiles(t *testing.T) {
	// No equal neighbours along any row or column after compaction
	grid := Grid{
		{2, 0, 4, 0},
		{0, 8, 0, 16},
		{32, 0, 0, 64},
		{0, 128, 256, 0},
	}

	for _, dir := range Directions {
		result := ApplyDirection(grid, dir)
		if result.ScoreGained != 0 {
			t.Fatalf("%s merged tiles unexpectedly (score %d)", dir, result.ScoreGained)
		}
		if got, want := tiles(result.Grid), tiles(grid); !slices.Equal(got, want) {
			t.Errorf("%s tiles = %v, want %v", dir, got, want)
		}
	}
}

func TestApplyDirectionFiveByFive(t *testing.T) {
	grid := Grid{
		{2, 2, 2, 2, 2},
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
		{4, 0, 0, 0, 4},
	}

	result := ApplyDirection(grid, DirRight)

	expected := Grid{
		{0, 0, 2, 4, 4},
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 8},
	}
	if !result.Grid.Equal(expected) {
		t.Errorf("got\n%v\nwant\n%v", result.Grid, expected)
	}
	if result.ScoreGained != 16 {
		t.Errorf("ScoreGained = %d, want 16", result.ScoreGained)
	}
}

func TestParseDirection(t *testing.T) {
	for _, dir := range Directions {
		got, err := ParseDirection(dir.String())
		if err != nil {
			t.Fatalf("ParseDirection(%q) error: %v", dir.String(), err)
		}
		if got != dir {
			t.Errorf("ParseDirection(%q) = %v, want %v", dir.String(), got, dir)
		}
	}

	if _, err := ParseDirection("diagonal"); err == nil {
		t.Error("ParseDirection should reject unknown names")
	}
}

func TestGridHelpers(t *testing.T) {
	grid := Grid{
		{2, 0, 8, 0},
		{0, 64, 0, 256},
		{512, 0, 2048, 0},
		{0, 16, 0, 64},
	}

	if n := len(grid.EmptyCells()); n != 8 {
		t.Errorf("EmptyCells count = %d, want 8", n)
	}
	if n := grid.EmptyCount(); n != 8 {
		t.Errorf("EmptyCount = %d, want 8", n)
	}
	if m := grid.MaxTile(); m != 2048 {
		t.Errorf("MaxTile = %d, want 2048", m)
	}
}

func TestTerminalDetection(t *testing.T) {
	blocked := checkerboard(4)
	if blocked.CanMove() {
		t.Error("checkerboard should have no moves")
	}

	// One adjacent pair anywhere re-opens the grid
	for _, pos := range []Cell{{0, 0}, {1, 3}, {3, 2}} {
		grid := blocked.Clone()
		if pos.Col < 3 {
			grid[pos.Row][pos.Col+1] = grid[pos.Row][pos.Col]
		} else {
			grid[pos.Row+1][pos.Col] = grid[pos.Row][pos.Col]
		}
		if !grid.CanMove() {
			t.Errorf("grid with pair near %v should have moves:\n%v", pos, grid)
		}
	}

	withEmpty := blocked.Clone()
	withEmpty[2][2] = 0
	if !withEmpty.CanMove() {
		t.Error("grid with an empty cell should have moves")
	}
}

// checkerboard returns a full grid of alternating 2s and 4s.
func checkerboard(size int) Grid {
	g := NewGrid(size)
	for r := range size {
		for c := range size {
			if (r+c)%2 == 0 {
				g[r][c] = 2
			} else {
				g[r][c] = 4
			}
		}
	}
	return g
}

// tiles returns the sorted non-zero values of g.
func tiles(g Grid) []int {
	var out []int
	for _, row := range g {
		for _, v := range row {
			if v != 0 {
				out = append(out, v)
			}
		}
	}
	slices.Sort(out)
	return out
}
