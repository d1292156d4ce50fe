// Package element implements the NDFD element catalog (C1) and the
// caller/user interest filter (C2): the static table of forecast-variable
// descriptors, name/enum lookup under three naming conventions, and the
// algorithm that turns caller interest plus user selection into the set of
// descriptors a probe run should match against.
package element

// Enum identifies a forecast variable symbolically. UNDEF and MatchAll are
// sentinel catalog entries; every other value names a well-known NDFD
// element.
type Enum int

const (
	UNDEF Enum = iota
	MatchAll
	MaxT
	MinT
	PoP12
	Temp
	WDir
	WSpd
	Td
	Sky
	QPF
	Snow
	Wx
	WaveH
	AppT
	RH
	WGust
	TCond
	MixHgt
	TransW
	CritFireO
	DryFireO
	ConvHazO
)

// ElementDescriptor identifies a forecast variable by the composite key
// the GRIB2 product/identification sections carry. Any field may be a
// "match-any" Option in the None state; for a well-known variable every
// field is Some, and for UNDEF every field is None.
//
// Descriptors are value types: copyable and immutable once constructed.
type ElementDescriptor struct {
	NDFDEnum           Enum
	Version            Option[uint8]
	Center             Option[uint16]
	Subcenter          Option[uint16]
	GeneratingID       Option[uint8]
	ProductType        Option[uint8]
	Template           Option[uint16]
	Category           Option[uint8]
	Subcategory        Option[uint8]
	IntervalLength     Option[int]
	SurfaceType        Option[uint8]
	SurfaceValue       Option[float64]
	SecondSurfaceValue Option[float64]
}

// MissingValuePolicy enumerates how a grid encodes missing samples.
type MissingValuePolicy int

const (
	MissingNone MissingValuePolicy = iota
	MissingPrimary
	MissingPrimarySecondary
)

// GridMeta is the read-only metadata the unpacker (GRIB2 decoder or cube
// index reader) hands the probe loop alongside a decoded grid. It carries
// everything step 4 of the GRIB2 probe loop (spec.md §4.5) needs to test a
// descriptor against, plus the grid geometry and missing-value policy the
// interpolation kernel needs.
type GridMeta struct {
	Version        uint8
	Center         uint16
	Subcenter      uint16
	GeneratingID   uint8
	ProductType    uint8
	Template       uint16
	Category       uint8
	Subcategory    uint8
	NumIntervals   int
	IntervalLength int
	FirstSurfaceType   uint8
	FirstSurfaceValue  float64
	SecondSurfaceValue float64

	ReferenceTime int64 // Unix seconds
	ValidTime     int64 // Unix seconds
	UnitName      string
	ElementName   string

	// WeatherTable holds the per-grid "ugly string" keyword table for
	// weather-carrying grids (ElementName == "Wx"); nil otherwise.
	WeatherTable []string

	Nx, Ny int

	MissingPolicy MissingValuePolicy
	MissPrimary   float64
	MissSecondary float64
}
