// Package ndfdprobe implements a point-probe engine for gridded NDFD
// forecasts: given a set of geographic (or grid-cell) points and a set of
// GRIB2 or cube-index input files, it samples the requested forecast
// elements at each point and returns the results as an ordered sequence
// of Match records.
package ndfdprobe

import (
	"github.com/mmp/ndfdprobe/element"
	"github.com/mmp/ndfdprobe/match"
)

// Probe runs one probe call: resolve the element filter, then walk every
// configured input file in order, dispatching each to the GRIB2 unpacker
// (C5) or the cube index reader (C6) by its FileType, and appending every
// sample that passes to a single Accumulator.
//
// A per-file I/O or format failure is logged through WithLogger and that
// file is skipped; it does not halt the rest of the call (spec.md §7
// kinds 2/3). An empty file list is a configuration error and returns
// before any I/O (spec.md §7 kind 1).
func Probe(opts ...ProbeOption) (*match.Accumulator, error) {
	c := newConfig()
	for _, opt := range opts {
		opt(c)
	}

	if len(c.files) == 0 {
		return nil, newConfigError("no input files", nil, CodeNoInputFiles)
	}

	catalog := element.Catalog()
	filtered := element.ResolveFilter(catalog, c.callerInterest, c.elementFilter)

	acc := match.NewAccumulator()
	for i, path := range c.files {
		var err error
		switch c.fileTypes[i] {
		case FileGRIB:
			err = probeGRIB(c, path, filtered, catalog, acc)
		case FileCube:
			err = probeCube(c, path, filtered, acc)
		}
		if err != nil {
			c.warnf("%v", err)
		}
	}

	return acc, nil
}
