package raster

import "testing"

// TestScanlineBoundsCoversApex checks that the row/column bounds for a
// simple upward-pointing triangle cover its base row fully and narrow to
// the apex column at its top row.
func TestScanlineBoundsCoversApex(t *testing.T) {
	p0, p1, p2 := SortTriVerts(TriVert{X: 0, Y: 0}, TriVert{X: 8, Y: 0}, TriVert{X: 4, Y: 8})
	sb := NewScanlineBounds(p0, p1, p2)

	yMin, yMax := sb.YBounds()
	if yMin != 0 || yMax != 8 {
		t.Fatalf("YBounds() = (%d,%d), want (0,8)", yMin, yMax)
	}

	xMin, xMax := sb.RowBounds(0)
	if xMin > 0 || xMax < 8 {
		t.Errorf("RowBounds(0) = (%d,%d), want to cover [0,8]", xMin, xMax)
	}

	xMin, xMax = sb.RowBounds(7.5)
	if xMin > 4 || xMax < 4 {
		t.Errorf("RowBounds(7.5) = (%d,%d), want to cover x=4", xMin, xMax)
	}
}

func TestScanlineBoundsDegenerateFlatBottom(t *testing.T) {
	p0, p1, p2 := SortTriVerts(TriVert{X: 0, Y: 0}, TriVert{X: 10, Y: 0}, TriVert{X: 5, Y: 0})
	sb := NewScanlineBounds(p0, p1, p2)
	yMin, yMax := sb.YBounds()
	if yMin != 0 || yMax != 0 {
		t.Fatalf("YBounds() on degenerate triangle = (%d,%d), want (0,0)", yMin, yMax)
	}
}

func TestScanlineOffsetPartitionsRowsDisjointly(t *testing.T) {
	const numThreads = 3
	const yMin = 7
	seen := map[int]int{}
	for tid := 0; tid < numThreads; tid++ {
		off := ScanlineOffset(numThreads, tid, yMin)
		row := yMin + off
		if row%numThreads != tid {
			t.Errorf("thread %d first row %d %% %d = %d, want %d", tid, row, numThreads, row%numThreads, tid)
		}
		seen[row%numThreads]++
	}
	for tid := 0; tid < numThreads; tid++ {
		if seen[tid] != 1 {
			t.Errorf("row-owner residue %d claimed by %d threads, want exactly 1", tid, seen[tid])
		}
	}
}
