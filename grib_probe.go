package ndfdprobe

import (
	"bytes"
	stderrors "errors"
	"math"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/mmp/ndfdprobe/element"
	"github.com/mmp/ndfdprobe/grib2"
	"github.com/mmp/ndfdprobe/grib2/data"
	"github.com/mmp/ndfdprobe/grib2/product"
	"github.com/mmp/ndfdprobe/grib2/section"
	"github.com/mmp/ndfdprobe/grib2/tables"
	"github.com/mmp/ndfdprobe/interp"
	"github.com/mmp/ndfdprobe/match"
	"github.com/mmp/ndfdprobe/weather"
)

// probeGRIB implements the GRIB2 Probe Loop (C5): stream messages from
// path, filter each by meta and valid-time, sample it at every probe
// point, and append a Match for every grid that passes.
//
// State machine per message: Initial -> Unpacked -> Filtered{pass|skip} ->
// Sampled -> Appended -> Initial. A message that fails unpacking aborts
// the rest of this file (spec.md §4.5 step 1), except an unsupported GRIB
// edition (spec.md §4.5 step 2), which is a per-message condition and only
// skips that one message; other per-message failures (time filter miss, no
// descriptor match) simply skip to the next message.
func probeGRIB(c *config, path string, filtered []element.ElementDescriptor, catalog []element.ElementDescriptor, acc *match.Accumulator) error {
	f, err := os.Open(path)
	if err != nil {
		return newProbeError(path, err)
	}
	defer f.Close()

	boundaries, err := grib2.FindMessagesInStream(f)
	if err != nil {
		return newProbeError(path, err)
	}

	for _, b := range boundaries {
		raw, err := grib2.ReadMessageAt(f, int64(b.Start), b.Length)
		if err != nil {
			// Unpacker failure is fatal to this file (spec.md §4.5 step 1).
			return newProbeError(path, err)
		}

		msg, err := grib2.ParseMessage(raw)
		if err != nil {
			var editionErr *section.UnsupportedEditionError
			if stderrors.As(err, &editionErr) {
				c.warnf("skipping message with unsupported GRIB edition %d in %s", editionErr.Edition, path)
				continue
			}
			return newProbeError(path, err)
		}

		meta, err := gridMetaFromMessage(msg)
		if err != nil {
			return newFormatError(path, "invalid grid or product definition", err)
		}

		if !passesTimeFilter(meta.ValidTime, c.timeMask, c.startTime, c.endTime) {
			continue
		}

		if _, ok := element.SelectDescriptor(filtered, meta); !ok {
			continue
		}

		nx, ny, err := msg.Dimensions()
		if err != nil {
			return newFormatError(path, "grid definition missing dimensions", err)
		}
		meta.Nx, meta.Ny = nx, ny

		values, err := msg.DecodeData()
		if err != nil {
			return newFormatError(path, "failed to decode data section", err)
		}
		if nx*ny < len(values) {
			return newFormatError(path, "Nx*Ny smaller than decoded grid", nil)
		}

		ndfdEnum := element.ReverseLookup(catalog, meta)
		if ndfdEnum == element.UNDEF {
			// Not one of NDFD's well-known elements: fall back to the WMO
			// parameter tables so the skip is still identifiable in logs.
			pid := grib2.ParameterID{Discipline: msg.Section0.Discipline, Category: meta.Category, Number: meta.Subcategory}
			name := pid.ShortName()
			if name == "" {
				name = pid.String()
			}
			meta.ElementName = name
			c.warnf("skipping unrecognized parameter %s in %s", name, path)
			continue
		}
		meta.ElementName = element.EnumToName(ndfdEnum, element.NamingFile)
		isWeather := ndfdEnum == element.Wx
		if isWeather && msg.Section2 != nil {
			meta.WeatherTable = parseEmbeddedWeatherTable(msg.Section2.Data)
		}

		onLatLon := isLatLonGrid(msg)
		kernelGrid := &interp.Grid{
			Nx: nx, Ny: ny,
			Data:            values,
			Index:           interp.ScanMode64Index,
			MissPrimary:     meta.MissPrimary,
			MissSecondary:   meta.MissSecondary,
			HasSecondary:    meta.MissingPolicy == element.MissingPrimarySecondary,
			IsLatLon:        onLatLon,
			LonWrapsCleanly: onLatLon,
			Weather:         isWeather,
		}

		values, skipMsg := sampleAllPoints(c, msg, meta, kernelGrid)
		if skipMsg {
			continue
		}

		acc.Append(match.Match{
			NDFDEnum:      ndfdEnum,
			ReferenceTime: time.Unix(meta.ReferenceTime, 0).UTC(),
			ValidTime:     time.Unix(meta.ValidTime, 0).UTC(),
			Unit:          meta.UnitName,
			Values:        values,
		})
	}

	return nil
}

func sampleAllPoints(c *config, msg *grib2.Message, meta element.GridMeta, grid *interp.Grid) ([]match.Value, bool) {
	values := make([]match.Value, len(c.points))

	for i, pt := range c.points {
		x, y := pt.X, pt.Y
		if c.pointType == PointGeographic {
			px, py, err := msg.ProjectLatLonToXY(pt.X, pt.Y)
			if err != nil {
				return nil, true
			}
			x, y = px+1, py+1
		}

		var sample float64
		var ok bool
		if grid.Weather || !c.interpolate {
			sample, ok = interp.NearestNeighbor(grid, x, y)
		} else {
			sample, ok = interp.Bilinear(grid, x, y)
		}

		if !ok {
			values[i] = match.Missing(meta.MissPrimary, "")
			continue
		}

		if grid.Weather {
			mode := c.weatherMode.mode
			text := weather.Decode(sample, meta.WeatherTable, mode)
			values[i] = match.Text(text)
			continue
		}

		values[i] = match.Numeric(sample)
	}

	return values, false
}

func passesTimeFilter(validTime int64, mask TimeFilterMask, start, end time.Time) bool {
	if mask&TimeFilterAfterOnly != 0 && validTime < start.Unix() {
		return false
	}
	if mask&TimeFilterBeforeOnly != 0 && validTime > end.Unix() {
		return false
	}
	return true
}

func isLatLonGrid(msg *grib2.Message) bool {
	if msg.Section3 == nil || msg.Section3.Grid == nil {
		return false
	}
	return msg.Section3.Grid.TemplateNumber() == 0
}

// gridMetaFromMessage builds a GridMeta from a parsed GRIB2 message. Only
// edition 2 messages reach here (the unpacker rejects other editions at
// Section 0), so Version is always 2.
func gridMetaFromMessage(msg *grib2.Message) (element.GridMeta, error) {
	if msg.Section1 == nil || msg.Section3 == nil || msg.Section4 == nil || msg.Section5 == nil {
		return element.GridMeta{}, errors.New("message is missing a required section")
	}

	meta := element.GridMeta{
		Version:       msg.Section0.Edition,
		Center:        msg.Section1.OriginatingCenter,
		Subcenter:     msg.Section1.OriginatingSubcenter,
		ProductType:   msg.Section1.TypeOfData,
		Template:      msg.Section4.ProductDefinitionTemplate,
		ReferenceTime: msg.Section1.ReferenceTime.Unix(),
	}

	prod := msg.Section4.Product
	if prod == nil {
		return element.GridMeta{}, errors.New("section 4 has no parsed product")
	}
	meta.Category = prod.GetParameterCategory()
	meta.Subcategory = prod.GetParameterNumber()
	if msg.Section0 != nil {
		meta.UnitName = tables.GetParameterUnit(int(msg.Section0.Discipline), int(meta.Category), int(meta.Subcategory))
	}

	switch t := prod.(type) {
	case *product.Template40:
		meta.GeneratingID = t.GeneratingProcess
		meta.FirstSurfaceType = t.FirstSurfaceType
		meta.FirstSurfaceValue = t.FirstSurfaceValueScaled()
		meta.SecondSurfaceValue = t.SecondSurfaceValueScaled()
		meta.NumIntervals = 0
		meta.ValidTime = forecastValidTime(msg.Section1.ReferenceTime, t.TimeRangeUnit, t.ForecastTime)
	case *product.Template48:
		meta.GeneratingID = t.GeneratingProcess
		meta.FirstSurfaceType = t.FirstSurfaceType
		meta.FirstSurfaceValue = t.FirstSurfaceValueScaled()
		meta.SecondSurfaceValue = t.SecondSurfaceValueScaled()
		meta.NumIntervals = int(t.NumberOfTimeRanges)
		if len(t.TimeRanges) > 0 {
			meta.IntervalLength = hoursForUnit(t.TimeRanges[0].TimeRangeUnit, int(t.TimeRanges[0].TimeRangeLength))
		}
		meta.ValidTime = time.Date(int(t.EndYear), time.Month(t.EndMonth), int(t.EndDay),
			int(t.EndHour), int(t.EndMinute), int(t.EndSecond), 0, time.UTC).Unix()
	default:
		return element.GridMeta{}, errors.Errorf("unsupported product template %T", prod)
	}

	switch rep := msg.Section5.Representation.(type) {
	case *data.Template50:
		meta.MissingPolicy = element.MissingNone
		meta.MissPrimary = math.NaN() // never equals itself, so no sample is ever flagged missing
	case *data.Template53:
		switch rep.MissingValueManagement {
		case 1:
			meta.MissingPolicy = element.MissingPrimary
			meta.MissPrimary = float64(rep.PrimaryMissingValue)
		case 2:
			meta.MissingPolicy = element.MissingPrimarySecondary
			meta.MissPrimary = float64(rep.PrimaryMissingValue)
			meta.MissSecondary = float64(rep.SecondaryMissingValue)
		default:
			meta.MissingPolicy = element.MissingNone
		}
	}

	return meta, nil
}

// forecastValidTime applies GRIB2 Table 4.4's time-range unit to a
// reference time and forecast-time count to produce an absolute valid
// time.
func forecastValidTime(ref time.Time, unit uint8, amount uint32) int64 {
	return ref.Add(durationForUnit(unit, int(amount))).Unix()
}

func durationForUnit(unit uint8, amount int) time.Duration {
	switch unit {
	case 0: // minute
		return time.Duration(amount) * time.Minute
	case 1: // hour
		return time.Duration(amount) * time.Hour
	case 2: // day
		return time.Duration(amount) * 24 * time.Hour
	case 10: // 3 hours
		return time.Duration(amount) * 3 * time.Hour
	case 11: // 6 hours
		return time.Duration(amount) * 6 * time.Hour
	case 12: // 12 hours
		return time.Duration(amount) * 12 * time.Hour
	case 13: // second
		return time.Duration(amount) * time.Second
	default:
		return time.Duration(amount) * time.Hour
	}
}

func hoursForUnit(unit uint8, amount int) int {
	return int(durationForUnit(unit, amount).Hours())
}

// parseEmbeddedWeatherTable splits a NUL-delimited sequence of ugly
// strings out of a Section 2 local-use payload.
func parseEmbeddedWeatherTable(payload []byte) []string {
	if len(payload) == 0 {
		return nil
	}
	var table []string
	for _, part := range bytes.Split(payload, []byte{0}) {
		if len(part) == 0 {
			continue
		}
		table = append(table, string(part))
	}
	return table
}
