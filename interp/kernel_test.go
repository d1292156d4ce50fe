package interp

import "testing"

func grid3x3() *Grid {
	// {1..9} row-major, scan mode 64 (+x, +y up):
	// row y=1: 1 2 3
	// row y=2: 4 5 6
	// row y=3: 7 8 9
	return &Grid{
		Nx: 3, Ny: 3,
		Data:        []float64{1, 2, 3, 4, 5, 6, 7, 8, 9},
		Index:       ScanMode64Index,
		MissPrimary: -9999,
	}
}

func TestNearestNeighborScenario1(t *testing.T) {
	g := grid3x3()
	got, ok := NearestNeighbor(g, 2.0, 2.0)
	if !ok || got != 5 {
		t.Errorf("got (%v, %v), want (5, true)", got, ok)
	}
}

func TestBilinearScenario2(t *testing.T) {
	g := grid3x3()
	got, ok := Bilinear(g, 1.5, 1.5)
	if !ok || got != 3.0 {
		t.Errorf("got (%v, %v), want (3.0, true)", got, ok)
	}
}

func TestNearestNeighborOutOfRangeScenario3(t *testing.T) {
	g := grid3x3()
	got, ok := NearestNeighbor(g, 0.4, 1.0)
	if ok {
		t.Errorf("expected out of range, got ok=true value=%v", got)
	}
	if got != g.MissPrimary {
		t.Errorf("got %v, want MissPrimary %v", got, g.MissPrimary)
	}
}

func TestBilinearMissingCornerScenario4(t *testing.T) {
	g := grid3x3()
	// d12 is the (x2, y1) corner of the (1,1)-(2,2) cell: index (2,1) -> value 2.
	g.Data[1] = g.MissPrimary
	got, ok := Bilinear(g, 1.5, 1.5)
	if ok {
		t.Errorf("expected missing, got ok=true value=%v", got)
	}
	if got != g.MissPrimary {
		t.Errorf("got %v, want MissPrimary", got)
	}
}

func TestBilinearD22CornerBugFix(t *testing.T) {
	// Regression test for spec.md §9's noted source bug: the (2,2)
	// corner check must test d22, not re-test d21. Corrupt only d22
	// (index (2,2) -> value 5, the center) and confirm it is caught.
	g := grid3x3()
	g.Data[4] = g.MissPrimary // center cell, value at (2,2)
	got, ok := Bilinear(g, 1.5, 1.5)
	if ok {
		t.Errorf("expected missing when d22 corner is the sentinel, got ok=true value=%v", got)
	}
	if got != g.MissPrimary {
		t.Errorf("got %v, want MissPrimary", got)
	}
}

func TestBilinearEqualsNearestNeighborAtIntegerPoint(t *testing.T) {
	g := grid3x3()
	nn, nnOK := NearestNeighbor(g, 2, 2)
	bl, blOK := Bilinear(g, 2, 2)
	if !nnOK || !blOK {
		t.Fatalf("expected both in range")
	}
	if nn != bl {
		t.Errorf("nearest-neighbor %v != bilinear %v at integer point", nn, bl)
	}
}

func TestBilinearWithinCornerBounds(t *testing.T) {
	g := grid3x3()
	got, ok := Bilinear(g, 1.3, 1.7)
	if !ok {
		t.Fatalf("expected in range")
	}
	if got < 1 || got > 9 {
		t.Errorf("interior bilinear sample %v outside corner min/max", got)
	}
}

func TestBilinearDisabledForWeatherGrids(t *testing.T) {
	g := grid3x3()
	g.Weather = true
	_, ok := Bilinear(g, 1.5, 1.5)
	if ok {
		t.Errorf("bilinear must be disabled for weather-coded grids")
	}
}

func TestScanMode0Index(t *testing.T) {
	// nx=3,ny=3, data row-major with y decreasing: row j=0 is the LAST
	// geographic row. (1,1) (bottom-left in grid-space) maps to the last
	// data row.
	data := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}
	g := &Grid{Nx: 3, Ny: 3, Data: data, Index: ScanMode0Index, MissPrimary: -9999}
	got, ok := NearestNeighbor(g, 1, 1)
	if !ok || got != 7 {
		t.Errorf("got (%v,%v), want (7,true)", got, ok)
	}
	got, ok = NearestNeighbor(g, 1, 3)
	if !ok || got != 1 {
		t.Errorf("got (%v,%v), want (1,true)", got, ok)
	}
}

func TestBorderInterpolateWraps(t *testing.T) {
	// 4x2 lat/lon grid; sampling near the east edge should wrap to column 1.
	data := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	g := &Grid{
		Nx: 4, Ny: 2, Data: data, Index: ScanMode64Index,
		MissPrimary: -9999, IsLatLon: true, LonWrapsCleanly: true,
	}
	got, ok := Bilinear(g, 4.5, 1.0)
	if !ok {
		t.Fatalf("expected border interpolation to succeed")
	}
	if got < 1 || got > 8 {
		t.Errorf("wrapped sample %v outside data range", got)
	}
}

func TestSecondaryMissingValue(t *testing.T) {
	g := grid3x3()
	g.HasSecondary = true
	g.MissSecondary = -8888
	g.Data[1] = -8888 // corner d12
	got, ok := Bilinear(g, 1.5, 1.5)
	if ok {
		t.Errorf("expected missing via secondary sentinel, got ok=true value=%v", got)
	}
	if got != g.MissPrimary {
		t.Errorf("got %v, want MissPrimary on secondary-missing propagation", got)
	}
}
