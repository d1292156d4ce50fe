package ndfdprobe

import (
	"time"

	"github.com/mmp/ndfdprobe/element"
	"github.com/mmp/ndfdprobe/weather"
)

// FileType selects which unpacker a probe input file is read with.
type FileType int

const (
	FileGRIB FileType = iota
	FileCube
)

// UnitSystem selects output unit conversion. Conversion itself is out of
// scope for this engine's core (spec.md Non-goals); native is the only
// system implemented end to end today.
type UnitSystem int

const (
	UnitNative UnitSystem = iota
	UnitEnglish
	UnitMetric
)

// PointType distinguishes geographic (lat/lon) input points from grid-cell
// (1-based X, Y) input points.
type PointType int

const (
	PointGeographic PointType = iota
	PointGridCell
)

// TimeFilterMask is the 2-bit mask from spec.md §4.5 step 3: bit 0 requires
// validTime >= StartTime, bit 1 requires validTime <= EndTime.
type TimeFilterMask uint8

const (
	TimeFilterNone      TimeFilterMask = 0
	TimeFilterAfterOnly TimeFilterMask = 1 << 0
	TimeFilterBeforeOnly TimeFilterMask = 1 << 1
	TimeFilterRange     TimeFilterMask = TimeFilterAfterOnly | TimeFilterBeforeOnly
)

// config accumulates every ProbeOption before a call to Probe. It is
// per-call state; nothing here is shared across calls or goroutines.
type config struct {
	points       []inputPoint
	pointType    PointType
	files        []string
	fileTypes    []FileType
	interpolate  bool
	units        UnitSystem
	weatherMode  weatherModeOption
	elementFilter []element.Enum
	callerInterest map[element.Enum]int
	timeMask     TimeFilterMask
	startTime    time.Time
	endTime      time.Time
	cubeCenter    uint16
	cubeHeaderLen int
	majorEarth   float64
	minorEarth   float64
	logger       logSink
}

type inputPoint struct {
	Label string
	X, Y  float64
}

type weatherModeOption struct {
	mode               weather.Mode
	simpleTableVersion int
}

// logSink lets the driver's zerolog logger reach into the probe call
// without the core packages importing zerolog themselves (only the
// outermost driver layer logs; see DESIGN.md).
type logSink interface {
	Warnf(format string, args ...any)
}

func newConfig() *config {
	return &config{
		pointType:  PointGeographic,
		units:      UnitNative,
		cubeCenter: 8, // NDFD; spec.md §9 calls out the source's hard-coded 8 as a parameter
	}
}

// ProbeOption configures one call to Probe. Options compose; later options
// override earlier ones for scalar fields.
type ProbeOption func(*config)

// WithPoints supplies the probe points and whether they are geographic or
// grid-cell coordinates.
func WithPoints(points []Point, pointType PointType) ProbeOption {
	return func(c *config) {
		c.pointType = pointType
		c.points = make([]inputPoint, len(points))
		for i, p := range points {
			c.points[i] = inputPoint{Label: p.Label, X: p.X, Y: p.Y}
		}
	}
}

// Point is the external representation of one probe location, independent
// of the point package's file-parsing concerns.
type Point struct {
	Label string
	X, Y  float64
}

// WithFile adds one input file of the given type to the probe call.
func WithFile(path string, fileType FileType) ProbeOption {
	return func(c *config) {
		c.files = append(c.files, path)
		c.fileTypes = append(c.fileTypes, fileType)
	}
}

// WithInterpolation enables bilinear sampling; the default is
// nearest-neighbor. The probe loop overrides this back to
// nearest-neighbor for weather-coded grids regardless of this setting.
func WithInterpolation(interpolate bool) ProbeOption {
	return func(c *config) { c.interpolate = interpolate }
}

// WithUnitSystem selects output unit conversion.
func WithUnitSystem(u UnitSystem) ProbeOption {
	return func(c *config) { c.units = u }
}

// WithEarthRadii overrides the major/minor earth radii used by the
// projection math; zero means "use the grid-definition default."
func WithEarthRadii(major, minor float64) ProbeOption {
	return func(c *config) {
		c.majorEarth = major
		c.minorEarth = minor
	}
}

// WithWeatherMode selects the Weather Decoder's output form and, for
// simple mode, the simple-weather-table version.
func WithWeatherMode(mode weather.Mode, simpleTableVersion int) ProbeOption {
	return func(c *config) {
		c.weatherMode = weatherModeOption{mode: mode, simpleTableVersion: simpleTableVersion}
	}
}

// WithElementFilter supplies the user-selected element enums and the
// caller's per-enum interest, feeding the Element Filter (C2).
func WithElementFilter(userSelected []element.Enum, callerInterest map[element.Enum]int) ProbeOption {
	return func(c *config) {
		c.elementFilter = userSelected
		c.callerInterest = callerInterest
	}
}

// WithTimeFilter sets the validTime mask and bounds.
func WithTimeFilter(mask TimeFilterMask, start, end time.Time) ProbeOption {
	return func(c *config) {
		c.timeMask = mask
		c.startTime = start
		c.endTime = end
	}
}

// WithCubeCenter overrides the originating center the cube reader accepts
// (default 8, NDFD); spec.md §9 flags the source's hard-coded 8 as an
// open question this rewrite resolves by making it a parameter.
func WithCubeCenter(center uint16) ProbeOption {
	return func(c *config) { c.cubeCenter = center }
}

// WithCubeHeaderLen overrides the byte length of the cube index's opening
// header block, which spec.md §4.6 leaves opaque to this module and
// therefore not a fixed constant here; the default is 0 (no header).
func WithCubeHeaderLen(n int) ProbeOption {
	return func(c *config) { c.cubeHeaderLen = n }
}

// WithLogger attaches a sink for the probe call's warnings (per-file
// errors that don't halt the run). Omitting it makes warnings silent.
func WithLogger(l logSink) ProbeOption {
	return func(c *config) { c.logger = l }
}

func (c *config) warnf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Warnf(format, args...)
	}
}
