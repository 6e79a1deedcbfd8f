package regions

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestLabel_SingleBlob(t *testing.T) {
	mask := maskFromRows(t, []string{
		"..........",
		".###......",
		".###......",
		".###......",
		"..........",
	})

	labeled, err := Label(mask, Connect8)
	if err != nil {
		t.Fatalf("Label failed: %v", err)
	}

	if labeled.Count != 1 {
		t.Fatalf("Count: got %d, want 1", labeled.Count)
	}
	if labeled.Width != 10 || labeled.Height != 5 {
		t.Errorf("dimensions: got %dx%d, want 10x5", labeled.Width, labeled.Height)
	}
	for row := 1; row <= 3; row++ {
		for col := 1; col <= 3; col++ {
			if got := labeled.At(row, col); got != 1 {
				t.Errorf("At(%d, %d): got %d, want 1", row, col, got)
			}
		}
	}
	if got := labeled.At(0, 0); got != 0 {
		t.Errorf("background At(0, 0): got %d, want 0", got)
	}
}

func TestLabel_RowMajorNumbering(t *testing.T) {
	// Three blobs; labels must follow the scan order of their first pixels:
	// top-right blob before bottom-left blob.
	mask := maskFromRows(t, []string{
		".##....##.",
		".##....##.",
		"..........",
		"....##....",
		"....##....",
	})

	labeled, err := Label(mask, Connect8)
	if err != nil {
		t.Fatalf("Label failed: %v", err)
	}

	if labeled.Count != 3 {
		t.Fatalf("Count: got %d, want 3", labeled.Count)
	}
	checks := []struct {
		row, col, want int
	}{
		{0, 1, 1},
		{0, 7, 2},
		{3, 4, 3},
	}
	for _, c := range checks {
		if got := labeled.At(c.row, c.col); got != c.want {
			t.Errorf("At(%d, %d): got %d, want %d", c.row, c.col, got, c.want)
		}
	}
}

func TestLabel_Connectivity(t *testing.T) {
	// Two pixels touching only diagonally: one component under Connect8,
	// two under Connect4.
	mask := maskFromRows(t, []string{
		"#.",
		".#",
	})

	tests := []struct {
		name string
		conn Connectivity
		want int
	}{
		{"connect8 joins diagonals", Connect8, 1},
		{"connect4 splits diagonals", Connect4, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			labeled, err := Label(mask, tt.conn)
			if err != nil {
				t.Fatalf("Label failed: %v", err)
			}
			if labeled.Count != tt.want {
				t.Errorf("Count: got %d, want %d", labeled.Count, tt.want)
			}
		})
	}
}

func TestLabel_MergesProvisionalLabels(t *testing.T) {
	// U shape: the two arms get separate provisional labels that must be
	// merged when the bottom row connects them.
	mask := maskFromRows(t, []string{
		"#...#",
		"#...#",
		"#####",
	})

	labeled, err := Label(mask, Connect4)
	if err != nil {
		t.Fatalf("Label failed: %v", err)
	}

	if labeled.Count != 1 {
		t.Fatalf("Count: got %d, want 1", labeled.Count)
	}
	for _, p := range [][2]int{{0, 0}, {0, 4}, {2, 2}} {
		if got := labeled.At(p[0], p[1]); got != 1 {
			t.Errorf("At(%d, %d): got %d, want 1", p[0], p[1], got)
		}
	}
}

func TestLabel_LabelsContiguous(t *testing.T) {
	// W shape merges late; renumbering must still produce 1..Count with
	// no gaps.
	mask := maskFromRows(t, []string{
		"#.#.#.#",
		"#.#.#.#",
		"#######",
		".......",
		"##..##.",
	})

	labeled, err := Label(mask, Connect4)
	if err != nil {
		t.Fatalf("Label failed: %v", err)
	}

	if labeled.Count != 3 {
		t.Fatalf("Count: got %d, want 3", labeled.Count)
	}
	seen := make(map[int]bool)
	for row := 0; row < labeled.Height; row++ {
		for col := 0; col < labeled.Width; col++ {
			if id := labeled.At(row, col); id != 0 {
				if id < 1 || id > labeled.Count {
					t.Fatalf("At(%d, %d): label %d outside 1..%d", row, col, id, labeled.Count)
				}
				seen[id] = true
			}
		}
	}
	if len(seen) != labeled.Count {
		t.Errorf("distinct labels: got %d, want %d", len(seen), labeled.Count)
	}
}

func TestLabel_AnyNonZeroIsForeground(t *testing.T) {
	mask := image.NewGray(image.Rect(0, 0, 4, 4))
	mask.SetGray(1, 1, color.Gray{Y: 7})
	mask.SetGray(2, 1, color.Gray{Y: 255})

	labeled, err := Label(mask, Connect8)
	if err != nil {
		t.Fatalf("Label failed: %v", err)
	}
	if labeled.Count != 1 {
		t.Errorf("Count: got %d, want 1", labeled.Count)
	}
	if got := labeled.At(1, 1); got != 1 {
		t.Errorf("At(1, 1) with value 7: got %d, want 1", got)
	}
}

func TestLabel_EmptyMask(t *testing.T) {
	mask := image.NewGray(image.Rect(0, 0, 8, 8))

	labeled, err := Label(mask, Connect8)
	if err != nil {
		t.Fatalf("Label failed: %v", err)
	}
	if labeled.Count != 0 {
		t.Errorf("Count: got %d, want 0", labeled.Count)
	}
}

func TestLabel_InvalidInputs(t *testing.T) {
	tests := []struct {
		name string
		mask *image.Gray
		conn Connectivity
		want error
	}{
		{"nil mask", nil, Connect8, ErrInvalidMask},
		{"zero-area mask", image.NewGray(image.Rect(0, 0, 0, 0)), Connect8, ErrInvalidMask},
		{"zero-width mask", image.NewGray(image.Rect(0, 0, 0, 5)), Connect4, ErrInvalidMask},
		{"bad connectivity", image.NewGray(image.Rect(0, 0, 4, 4)), Connectivity(5), ErrConfiguration},
		{"zero connectivity", image.NewGray(image.Rect(0, 0, 4, 4)), Connectivity(0), ErrConfiguration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Label(tt.mask, tt.conn)
			if !errors.Is(err, tt.want) {
				t.Errorf("error: got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLabel_NonZeroOrigin(t *testing.T) {
	// Masks cropped out of a larger image keep their offset bounds; labels
	// must still be reported relative to the mask's own top-left corner.
	mask := image.NewGray(image.Rect(10, 20, 16, 24))
	mask.SetGray(12, 21, color.Gray{Y: 255})
	mask.SetGray(13, 21, color.Gray{Y: 255})

	labeled, err := Label(mask, Connect8)
	if err != nil {
		t.Fatalf("Label failed: %v", err)
	}
	if labeled.Count != 1 {
		t.Fatalf("Count: got %d, want 1", labeled.Count)
	}
	if got := labeled.At(1, 2); got != 1 {
		t.Errorf("At(1, 2): got %d, want 1", got)
	}
	if got := labeled.At(0, 0); got != 0 {
		t.Errorf("At(0, 0): got %d, want 0", got)
	}
}

func TestLabel_Idempotent(t *testing.T) {
	mask := maskFromRows(t, []string{
		"##..#",
		"##..#",
		".....",
		"#..##",
	})

	first, err := Label(mask, Connect8)
	if err != nil {
		t.Fatalf("Label failed: %v", err)
	}
	second, err := Label(mask, Connect8)
	if err != nil {
		t.Fatalf("Label failed: %v", err)
	}

	if first.Count != second.Count {
		t.Fatalf("Count: got %d then %d", first.Count, second.Count)
	}
	for row := 0; row < first.Height; row++ {
		for col := 0; col < first.Width; col++ {
			if first.At(row, col) != second.At(row, col) {
				t.Fatalf("At(%d, %d): got %d then %d",
					row, col, first.At(row, col), second.At(row, col))
			}
		}
	}
}

// Helper functions

// maskFromRows builds a binary mask from an ASCII grid where '#' marks
// foreground and anything else background.
func maskFromRows(t *testing.T, rows []string) *image.Gray {
	t.Helper()
	if len(rows) == 0 {
		t.Fatal("maskFromRows: no rows")
	}
	width := len(rows[0])
	mask := image.NewGray(image.Rect(0, 0, width, len(rows)))
	for row, line := range rows {
		if len(line) != width {
			t.Fatalf("maskFromRows: row %d has %d cells, want %d", row, len(line), width)
		}
		for col := 0; col < width; col++ {
			if line[col] == '#' {
				mask.SetGray(col, row, color.Gray{Y: 255})
			}
		}
	}
	return mask
}
