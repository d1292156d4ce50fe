// Package interp implements the grid-point interpolation kernel (C3):
// nearest-neighbor and bilinear sampling of an Nx x Ny grid at a
// real-valued grid-space point, with scan-mode awareness and
// missing-value propagation.
package interp

import "math"

// IndexFunc maps a 1-based grid coordinate (x, y) to an offset into a
// row-major backing slice of nx*ny cells. Parameterizing the kernel over
// this function — chosen once per grid, per the record's scan mode — is
// the scan-mode polymorphism the kernel uses instead of branching on scan
// mode inside every read.
type IndexFunc func(x, y, nx, ny int) int

// ScanMode64Index is the index function for scan mode 64: row-major, y
// increasing "up". This is the default for GRIB2 grids.
func ScanMode64Index(x, y, nx, ny int) int {
	return (x - 1) + (y-1)*nx
}

// ScanMode0Index is the index function for scan mode 0: row-major, y
// decreasing from the first row. Cube data files use this scan mode.
func ScanMode0Index(x, y, nx, ny int) int {
	return (x - 1) + (ny-1-(y-1))*nx
}

// Grid bundles a sampled field with the geometry and missing-value policy
// the kernel needs to interpret it.
type Grid struct {
	Nx, Ny int
	Data   []float64
	Index  IndexFunc

	// MissPrimary/MissSecondary/HasSecondary mirror GridMeta's missing
	// value policy (spec.md §3): a corner equal to MissPrimary, or to
	// MissSecondary when HasSecondary, makes the sample missing.
	MissPrimary   float64
	MissSecondary float64
	HasSecondary  bool

	// IsLatLon and LonWrapsCleanly gate the border-interpolation helper:
	// only a lat/lon grid whose longitude spacing evenly divides 360 can
	// treat its east edge as wrapping back to the west.
	IsLatLon        bool
	LonWrapsCleanly bool

	// Weather marks a categorical (weather-coded) grid; bilinear
	// interpolation is disabled for these per spec.md §4.3's restriction.
	Weather bool
}

func (g *Grid) at(x, y int) float64 {
	return g.Data[g.Index(x, y, g.Nx, g.Ny)]
}

func (g *Grid) inBounds(x, y int) bool {
	return x >= 1 && x <= g.Nx && y >= 1 && y <= g.Ny
}

func (g *Grid) isMissingValue(v float64) bool {
	if v == g.MissPrimary {
		return true
	}
	if g.HasSecondary && v == g.MissSecondary {
		return true
	}
	return false
}

// NearestNeighbor rounds (x, y) to the nearest integer grid coordinate. If
// the rounded point falls outside [1,Nx] x [1,Ny], it returns the primary
// missing value and ok=false.
func NearestNeighbor(g *Grid, x, y float64) (value float64, ok bool) {
	ix := int(math.Round(x))
	iy := int(math.Round(y))
	if !g.inBounds(ix, iy) {
		return g.MissPrimary, false
	}
	return g.at(ix, iy), true
}

// Bilinear samples g at the real-valued point (x, y) using the four
// corners surrounding it. Bilinear interpolation is disabled for
// weather-coded grids; callers must use NearestNeighbor for those.
//
// Formula (spec.md §4.3, accepted bit-for-bit on in-bounds inputs):
//
//	t1 = d11 + (x-x1)*(d11-d12)/(x1-x2)
//	t2 = d21 + (x-x1)*(d21-d22)/(x1-x2)
//	result = t1 + (y-y1)*(t1-t2)/(y1-y2)
func Bilinear(g *Grid, x, y float64) (value float64, ok bool) {
	if g.Weather {
		return g.MissPrimary, false
	}

	x1 := int(math.Floor(x))
	x2 := x1 + 1
	y1 := int(math.Floor(y))
	y2 := y1 + 1

	if !g.inBounds(x1, y1) || !g.inBounds(x2, y1) || !g.inBounds(x1, y2) || !g.inBounds(x2, y2) {
		if g.IsLatLon && g.LonWrapsCleanly {
			return borderInterpolate(g, x, y)
		}
		return g.MissPrimary, false
	}

	d11 := g.at(x1, y1)
	d12 := g.at(x2, y1)
	d21 := g.at(x1, y2)
	d22 := g.at(x2, y2)

	// The (2,2) corner check tests d22, correcting the source's
	// copy-paste bug that tested d21 twice (spec.md §9 Design Notes).
	if g.isMissingValue(d11) || g.isMissingValue(d12) || g.isMissingValue(d21) || g.isMissingValue(d22) {
		return g.MissPrimary, false
	}

	t1 := d11 + (x-float64(x1))*(d11-d12)/float64(x1-x2)
	t2 := d21 + (x-float64(x1))*(d21-d22)/float64(x1-x2)
	result := t1 + (y-float64(y1))*(t1-t2)/float64(y1-y2)
	return result, true
}

// borderInterpolate handles a bilinear sample whose corners straddle the
// east/west edge of a lat/lon grid whose longitude spacing evenly divides
// 360: the east edge wraps back to column 1 instead of reading out of
// bounds.
func borderInterpolate(g *Grid, x, y float64) (value float64, ok bool) {
	x1 := int(math.Floor(x))
	x2 := x1 + 1
	y1 := int(math.Floor(y))
	y2 := y1 + 1

	wrapX := func(ix int) int {
		if ix < 1 {
			return g.Nx
		}
		if ix > g.Nx {
			return 1
		}
		return ix
	}

	wx1, wx2 := wrapX(x1), wrapX(x2)
	if !g.inBounds(wx1, y1) || !g.inBounds(wx2, y1) || !g.inBounds(wx1, y2) || !g.inBounds(wx2, y2) {
		return g.MissPrimary, false
	}

	d11 := g.at(wx1, y1)
	d12 := g.at(wx2, y1)
	d21 := g.at(wx1, y2)
	d22 := g.at(wx2, y2)

	if g.isMissingValue(d11) || g.isMissingValue(d12) || g.isMissingValue(d21) || g.isMissingValue(d22) {
		return g.MissPrimary, false
	}

	t1 := d11 + (x-float64(x1))*(d11-d12)/float64(x1-x2)
	t2 := d21 + (x-float64(x1))*(d21-d22)/float64(x1-x2)
	result := t1 + (y-float64(y1))*(t1-t2)/float64(y1-y2)
	return result, true
}
