package cube

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/mmp/ndfdprobe/grib2/grid"
	"github.com/mmp/ndfdprobe/internal"
)

// gdsRecordLen is GDSLEN (spec.md §4.6): the fixed byte width of one GDS
// block in the cube index. The cube format carries the same projection
// parameters GRIB2's Grid Definition Section does — grid type, point
// counts, corner, spacing, scan mode — packed fixed-width so the index
// reader can walk past GDS blocks it isn't using without decoding them.
//
//	u8  gridType   (0 = lat/lon, 30 = Lambert Conformal; GRIB2 template numbers)
//	u32 nx
//	u32 ny
//	i32 la1        (grib2/grid's template units: millidegrees for lat/lon,
//	               microdegrees for Lambert)
//	i32 lo1        (same units as la1)
//	u8  resFlags
//	i32 p3         (la2 for lat/lon; LaD for Lambert)
//	i32 p4         (lo2 for lat/lon; LoV for Lambert)
//	u32 p5         (di for lat/lon; dx for Lambert)
//	u32 p6         (dj for lat/lon; dy for Lambert)
//	i32 p7         (unused for lat/lon; latin1 for Lambert)
//	i32 p8         (unused for lat/lon; latin2 for Lambert)
//	u8  scanMode
const gdsRecordLen = 1 + 4 + 4 + 4 + 4 + 1 + 4 + 4 + 4 + 4 + 4 + 4 + 1

// GDSBlock is one parsed GDS record. Its exported fields mirror the grid
// definition templates grib2/grid already parses for GRIB2 (C5); ToGrid
// builds the same grid.Grid value C5 samples through, so the interpolation
// kernel and projection code are shared verbatim between the two
// unpackers.
type GDSBlock struct {
	GridType uint8
	Nx, Ny   uint32
	La1, Lo1 int32
	ResFlags uint8
	P3, P4   int32
	P5, P6   uint32
	P7, P8   int32
	ScanMode uint8
}

func parseGDSBlock(data []byte) (*GDSBlock, error) {
	if len(data) < gdsRecordLen {
		return nil, errors.Errorf("GDS block requires %d bytes, got %d", gdsRecordLen, len(data))
	}
	r := internal.NewReaderWithOrder(data, binary.LittleEndian)

	b := &GDSBlock{}
	var err error
	read := func(f func() error) {
		if err == nil {
			err = f()
		}
	}
	read(func() (e error) { b.GridType, e = r.Uint8(); return })
	read(func() (e error) { b.Nx, e = r.Uint32(); return })
	read(func() (e error) { b.Ny, e = r.Uint32(); return })
	read(func() (e error) { b.La1, e = r.Int32(); return })
	read(func() (e error) { b.Lo1, e = r.Int32(); return })
	read(func() (e error) { b.ResFlags, e = r.Uint8(); return })
	read(func() (e error) { b.P3, e = r.Int32(); return })
	read(func() (e error) { b.P4, e = r.Int32(); return })
	read(func() (e error) { b.P5, e = r.Uint32(); return })
	read(func() (e error) { b.P6, e = r.Uint32(); return })
	read(func() (e error) { b.P7, e = r.Int32(); return })
	read(func() (e error) { b.P8, e = r.Int32(); return })
	read(func() (e error) { b.ScanMode, e = r.Uint8(); return })
	if err != nil {
		return nil, errors.Wrap(err, "parsing GDS block")
	}
	return b, nil
}

// ToGrid builds the grib2/grid.Grid value this block describes, so the
// rest of the probe can sample and project through it exactly as it would
// a GRIB2-derived grid.
func (b *GDSBlock) ToGrid() (grid.Grid, error) {
	switch b.GridType {
	case 0:
		return &grid.LatLonGrid{
			Ni: b.Nx, Nj: b.Ny,
			La1: b.La1, Lo1: b.Lo1,
			ResFlags:     b.ResFlags,
			La2:          b.P3,
			Lo2:          b.P4,
			Di:           b.P5,
			Dj:           b.P6,
			ScanningMode: b.ScanMode,
		}, nil
	case 30:
		return &grid.LambertConformalGrid{
			Nx: b.Nx, Ny: b.Ny,
			La1: b.La1, Lo1: b.Lo1,
			ResolutionFlags: b.ResFlags,
			LaD:             b.P3,
			LoV:             b.P4,
			Dx:              b.P5,
			Dy:              b.P6,
			Latin1:          b.P7,
			Latin2:          b.P8,
			ScanningMode:    b.ScanMode,
		}, nil
	default:
		return nil, errors.Errorf("unsupported cube GDS grid type %d", b.GridType)
	}
}
