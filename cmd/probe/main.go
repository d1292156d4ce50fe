// Command probe samples NDFD forecast elements from GRIB2 or cube-index
// files at a set of points and prints the resulting matches as
// tab-separated text.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mmp/ndfdprobe"
	"github.com/mmp/ndfdprobe/element"
	"github.com/mmp/ndfdprobe/internal"
	"github.com/mmp/ndfdprobe/match"
	"github.com/mmp/ndfdprobe/point"
	"github.com/mmp/ndfdprobe/weather"
)

var (
	pointsFlag    = flag.String("points", "", "path to a point file (required)")
	gridCellFlag  = flag.Bool("grid-cell", false, "treat point file coordinates as grid-cell (x,y) rather than lat/lon")
	interpFlag    = flag.Bool("interp", false, "bilinear interpolation instead of nearest-neighbor")
	unitsFlag     = flag.String("units", "native", "output unit system: native, english, or metric")
	weatherFlag   = flag.String("weather", "raw", "weather decode mode: raw, english, or simple")
	elementsFlag  = flag.String("elements", "", "comma-separated element short names to select (default: every catalog element)")
	centerFlag    = flag.Uint("cube-center", 8, "originating center the cube reader accepts (8 = NDFD)")
	headerLenFlag = flag.Int("cube-header-len", 0, "byte length of the cube index's opaque header block")
	startFlag     = flag.String("start", "", "RFC3339 validTime lower bound (inclusive)")
	endFlag       = flag.String("end", "", "RFC3339 validTime upper bound (inclusive)")
	workersFlag   = flag.Int("workers", 4, "number of input files probed concurrently")
	logLevelFlag  = flag.String("log-level", "info", "debug, info, warn, or error")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <input-file> [input-file ...]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Sample NDFD forecast elements at the points in -points from each\n")
		fmt.Fprintf(os.Stderr, "GRIB2 (.grib2/.grb2) or cube index (.flx/.idx) input file.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	configureLogging(*logLevelFlag)

	if *pointsFlag == "" || flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	points, err := loadPoints(*pointsFlag)
	if err != nil {
		log.Fatal().Err(err).Str("file", *pointsFlag).Msg("failed to read point file")
	}

	weatherMode, err := parseWeatherMode(*weatherFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid -weather")
	}
	units, err := parseUnitSystem(*unitsFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid -units")
	}
	selected := parseElements(*elementsFlag)
	callerInterest := defaultCallerInterest()

	timeMask, start, end := parseTimeFilter(*startFlag, *endFlag)

	pointType := ndfdprobe.PointGeographic
	if *gridCellFlag {
		pointType = ndfdprobe.PointGridCell
	}

	files := flag.Args()
	matches := probeFilesConcurrently(files, probeConfig{
		points:         points,
		pointType:      pointType,
		interpolate:    *interpFlag,
		units:          units,
		weatherMode:    weatherMode,
		selected:       selected,
		callerInterest: callerInterest,
		center:         uint16(*centerFlag),
		headerLen:      *headerLenFlag,
		timeMask:       timeMask,
		start:          start,
		end:            end,
	}, *workersFlag)

	printMatches(os.Stdout, points, matches)
}

// probeConfig bundles the options shared by every concurrent per-file
// Probe call.
type probeConfig struct {
	points         []point.Point
	pointType      ndfdprobe.PointType
	interpolate    bool
	units          ndfdprobe.UnitSystem
	weatherMode    weather.Mode
	selected       []element.Enum
	callerInterest map[element.Enum]int
	center         uint16
	headerLen      int
	timeMask       ndfdprobe.TimeFilterMask
	start, end     time.Time
}

// defaultCallerInterest leaves every catalog element at interest 0
// (spec.md §4.2's "don't care"): this command has no picks of its own, so
// -elements alone decides what is selected, and omitting -elements falls
// through to the filter's "select everything" rule.
func defaultCallerInterest() map[element.Enum]int {
	return map[element.Enum]int{}
}

// zerologSink adapts zerolog to ndfdprobe's logSink interface so the
// library packages never import zerolog directly (only this driver does).
type zerologSink struct{}

func (zerologSink) Warnf(format string, args ...any) {
	log.Warn().Msg(fmt.Sprintf(format, args...))
}

func buildOpts(cfg probeConfig, file string) []ndfdprobe.ProbeOption {
	pts := make([]ndfdprobe.Point, len(cfg.points))
	for i, p := range cfg.points {
		pts[i] = ndfdprobe.Point{Label: p.Label, X: p.Lat, Y: p.Lon}
	}

	opts := []ndfdprobe.ProbeOption{
		ndfdprobe.WithPoints(pts, cfg.pointType),
		ndfdprobe.WithFile(file, fileTypeFor(file)),
		ndfdprobe.WithInterpolation(cfg.interpolate),
		ndfdprobe.WithUnitSystem(cfg.units),
		ndfdprobe.WithWeatherMode(cfg.weatherMode, 0),
		ndfdprobe.WithElementFilter(cfg.selected, cfg.callerInterest),
		ndfdprobe.WithCubeCenter(cfg.center),
		ndfdprobe.WithCubeHeaderLen(cfg.headerLen),
		ndfdprobe.WithLogger(zerologSink{}),
	}
	if cfg.timeMask != ndfdprobe.TimeFilterNone {
		opts = append(opts, ndfdprobe.WithTimeFilter(cfg.timeMask, cfg.start, cfg.end))
	}
	return opts
}

// probeFilesConcurrently runs one Probe call per input file on a
// WorkerPool, per SPEC_FULL.md §5: the core stays single-threaded and
// synchronous per call, and the driver is the one layer allowed to run
// independent calls in parallel. Every task always reports nil to the
// pool — a failing file is logged and skipped (spec.md §7 kind 2/3), not
// treated as a reason to cancel the other in-flight files, so the pool's
// built-in cancel-on-first-error behavior is deliberately not exercised.
// Results are collected per file index and flattened back into file
// order afterward to preserve the ordering guarantee of spec.md §5.
func probeFilesConcurrently(files []string, cfg probeConfig, workers int) []match.Match {
	results := make([][]match.Match, len(files))
	var mu sync.Mutex

	pool := internal.NewWorkerPool(context.Background(), workers)
	for i, file := range files {
		pool.Submit(func() error {
			acc, err := ndfdprobe.Probe(buildOpts(cfg, file)...)
			if err != nil {
				log.Error().Err(err).Str("file", file).Msg("probe failed")
				return nil
			}
			mu.Lock()
			results[i] = acc.Matches()
			mu.Unlock()
			return nil
		})
	}
	pool.Wait()

	var all []match.Match
	for _, r := range results {
		all = append(all, r...)
	}
	return all
}

func fileTypeFor(path string) ndfdprobe.FileType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".flx", ".idx":
		return ndfdprobe.FileCube
	default:
		return ndfdprobe.FileGRIB
	}
}

func loadPoints(path string) ([]point.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return point.Parse(f)
}

func parseWeatherMode(s string) (weather.Mode, error) {
	switch strings.ToLower(s) {
	case "raw", "":
		return weather.Raw, nil
	case "english":
		return weather.English, nil
	case "simple":
		return weather.Simple, nil
	default:
		return 0, fmt.Errorf("unknown weather mode %q", s)
	}
}

func parseUnitSystem(s string) (ndfdprobe.UnitSystem, error) {
	switch strings.ToLower(s) {
	case "native", "":
		return ndfdprobe.UnitNative, nil
	case "english":
		return ndfdprobe.UnitEnglish, nil
	case "metric":
		return ndfdprobe.UnitMetric, nil
	default:
		return 0, fmt.Errorf("unknown unit system %q", s)
	}
}

func parseElements(s string) []element.Enum {
	if s == "" {
		return nil
	}
	var enums []element.Enum
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		enums = append(enums, element.NameToEnum(name, element.NamingShort))
	}
	return enums
}

func parseTimeFilter(startStr, endStr string) (ndfdprobe.TimeFilterMask, time.Time, time.Time) {
	var mask ndfdprobe.TimeFilterMask
	var start, end time.Time

	if startStr != "" {
		t, err := time.Parse(time.RFC3339, startStr)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid -start")
		}
		start = t
		mask |= ndfdprobe.TimeFilterAfterOnly
	}
	if endStr != "" {
		t, err := time.Parse(time.RFC3339, endStr)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid -end")
		}
		end = t
		mask |= ndfdprobe.TimeFilterBeforeOnly
	}
	return mask, start, end
}

func printMatches(w *os.File, points []point.Point, matches []match.Match) {
	fmt.Fprintln(w, "element\tvalidTime\tunit\tpoint\tvalue")
	for _, m := range matches {
		name := element.EnumToName(m.NDFDEnum, element.NamingShort)
		for i, v := range m.Values {
			label := fmt.Sprintf("point%d", i)
			if i < len(points) {
				label = points[i].Label
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				name, m.ValidTime.Format(time.RFC3339), m.Unit, label, formatValue(v))
		}
	}
}

func formatValue(v match.Value) string {
	switch v.Kind() {
	case match.KindNumeric:
		f, _ := v.Float()
		return fmt.Sprintf("%g", f)
	case match.KindText:
		s, _ := v.String()
		return s
	case match.KindMissing:
		return "M"
	default:
		return ""
	}
}

func configureLogging(level string) {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	switch strings.ToLower(level) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
