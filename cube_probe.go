package ndfdprobe

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/exp/slices"

	"github.com/mmp/ndfdprobe/cube"
	"github.com/mmp/ndfdprobe/element"
	"github.com/mmp/ndfdprobe/grib2/grid"
	"github.com/mmp/ndfdprobe/interp"
	"github.com/mmp/ndfdprobe/match"
	"github.com/mmp/ndfdprobe/weather"
)

// probeCube implements the Cube Index Reader (C6): parse the index,
// walk its super-PDS/inner-PDS records in order, and sample each kept
// record's data file at every probe point.
//
// Grid and point reprojection are cached across consecutive records that
// share a GDS index, and the data file handle is cached across
// consecutive records that name the same file (spec.md §4.6's two
// "if it differs from the cached one" steps).
func probeCube(c *config, indexPath string, filtered []element.ElementDescriptor, acc *match.Accumulator) error {
	data, err := os.ReadFile(indexPath)
	if err != nil {
		return newProbeError(indexPath, err)
	}

	idx, err := cube.ParseIndex(data, c.cubeHeaderLen)
	if err != nil {
		return newFormatError(indexPath, "invalid cube index", err)
	}

	baseDir := filepath.Dir(indexPath)
	files := cube.NewDataFileCache()
	defer files.Close()

	var cachedGDSIndex uint16
	var cachedGrid grid.Grid
	var cachedProjected []projectedPoint

	for _, sp := range idx.SuperPDS {
		if sp.Center != c.cubeCenter {
			continue
		}
		if sp.ElementEnum == element.UNDEF {
			continue
		}
		if !slices.ContainsFunc(filtered, func(d element.ElementDescriptor) bool {
			return d.NDFDEnum == sp.ElementEnum
		}) {
			continue
		}

		for _, rec := range sp.Records {
			if !passesTimeFilter(rec.ValidTime.Unix(), c.timeMask, c.startTime, c.endTime) {
				continue
			}

			if cachedGrid == nil || sp.GDSIndex != cachedGDSIndex {
				block, err := idx.GDS1Based(sp.GDSIndex)
				if err != nil {
					return newFormatError(indexPath, "invalid GDS index", err)
				}
				g, err := block.ToGrid()
				if err != nil {
					return newFormatError(indexPath, "unsupported cube grid", err)
				}
				cachedGrid = g
				cachedGDSIndex = sp.GDSIndex
				cachedProjected = projectPoints(c, g)
			}

			dataPath := rec.DataFile
			if !filepath.IsAbs(dataPath) {
				dataPath = filepath.Join(baseDir, dataPath)
			}
			f, err := files.GetOrOpen(dataPath)
			if err != nil {
				return newProbeError(dataPath, err)
			}

			nx, ny, err := gridDimensions(cachedGrid)
			if err != nil {
				return newFormatError(indexPath, "cube grid missing dimensions", err)
			}

			values, err := cube.ReadGrid(f, rec.DataOffset, nx, ny, rec.BigEndian)
			if err != nil {
				return newProbeError(dataPath, err)
			}

			isWeather := sp.ElementEnum == element.Wx
			kernelGrid := &interp.Grid{
				Nx: nx, Ny: ny,
				Data:        values,
				Index:       scanIndexForMode(rec.ScanMode),
				MissPrimary: cube.MissingSentinel,
				Weather:     isWeather,
			}

			sampled := sampleCubePoints(c, cachedProjected, kernelGrid, rec.Table, isWeather)

			acc.Append(match.Match{
				NDFDEnum:      sp.ElementEnum,
				ReferenceTime: sp.ReferenceTime,
				ValidTime:     rec.ValidTime,
				Unit:          sp.Unit,
				Values:        sampled,
			})
		}
	}

	return nil
}

// projectedPoint is a probe point already resolved into one grid's
// fractional (x, y) space, 1-based to match the interpolation kernel.
type projectedPoint struct {
	x, y float64
}

// projectPoints reprojects every configured point into g's grid frame
// once per GDS change, rather than on every record (spec.md §4.6). Each
// point keeps its own loop index throughout — the off-by-loop-variable
// bug spec.md §9 calls out (pnts[i] reused across an outer loop variable
// k) has no analogue here because there is exactly one loop variable.
func projectPoints(c *config, g grid.Grid) []projectedPoint {
	out := make([]projectedPoint, len(c.points))
	for k, pt := range c.points {
		if c.pointType != PointGeographic {
			out[k] = projectedPoint{x: pt.X, y: pt.Y}
			continue
		}
		x, y, err := gridProject(g, pt.X, pt.Y)
		if err != nil {
			out[k] = projectedPoint{x: -1, y: -1} // forced out of bounds
			continue
		}
		out[k] = projectedPoint{x: x + 1, y: y + 1}
	}
	return out
}

func sampleCubePoints(c *config, points []projectedPoint, g *interp.Grid, table []string, isWeather bool) []match.Value {
	values := make([]match.Value, len(points))
	for i, p := range points {
		var sample float64
		var ok bool
		if isWeather || !c.interpolate {
			sample, ok = interp.NearestNeighbor(g, p.x, p.y)
		} else {
			sample, ok = interp.Bilinear(g, p.x, p.y)
		}

		if !ok {
			values[i] = match.Missing(cube.MissingSentinel, "")
			continue
		}
		if isWeather {
			values[i] = match.Text(weather.Decode(sample, table, c.weatherMode.mode))
			continue
		}
		values[i] = match.Numeric(sample)
	}
	return values
}

func scanIndexForMode(mode uint8) interp.IndexFunc {
	if mode == 0 {
		return interp.ScanMode0Index
	}
	return interp.ScanMode64Index
}

// gridDimensions and gridProject dispatch through the same anonymous
// interfaces grib2.Message.Dimensions/ProjectLatLonToXY use, since
// grib2/grid's concrete types satisfy them structurally regardless of
// which package is doing the type assertion.
func gridDimensions(g grid.Grid) (nx, ny int, err error) {
	type dimensioned interface {
		Dimensions() (int, int)
	}
	d, ok := g.(dimensioned)
	if !ok {
		return 0, 0, fmt.Errorf("grid type %T does not report dimensions", g)
	}
	nx, ny = d.Dimensions()
	return nx, ny, nil
}

func gridProject(g grid.Grid, lat, lon float64) (x, y float64, err error) {
	type projector interface {
		ProjectLatLonToXY(lat, lon float64) (float64, float64)
	}
	p, ok := g.(projector)
	if !ok {
		return 0, 0, fmt.Errorf("grid type %T does not support lat/lon projection", g)
	}
	x, y = p.ProjectLatLonToXY(lat, lon)
	return x, y, nil
}
