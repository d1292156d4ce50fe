// Package point implements Point Input (C8): parsing a comma-delimited
// point file into (label, lat, lon, optional output file) tuples.
//
// The format has no library in the example pack's domain-stack (no CSV
// dialect, no quoting, just comma-split-and-trim) that a general-purpose
// CSV reader would serve better than a direct scan — pulling in
// encoding/csv would need its quoting/comment semantics disabled and
// still wouldn't express "exactly one field is an error" or the
// two-shape-by-field-count dispatch naturally. The parse stays
// hand-rolled on the standard library for that reason.
package point

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Point is one parsed input location: an explicit or synthesized label, its
// geographic coordinates, and an optional per-point output file name.
type Point struct {
	Label   string
	Lat     float64
	Lon     float64
	OutFile string
}

// Parse reads comma-delimited lines from r. '#' at column one marks a
// comment line. Two line shapes are accepted, detected by field count:
// "label, lat, lon [, outFile]" (explicit label) or "lat, lon" (label
// synthesized as "(lat,lon)"). A line with exactly one field is malformed
// and fails the entire call.
func Parse(r io.Reader) ([]Point, error) {
	var points []Point

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, ",")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}

		pt, err := parseFields(fields)
		if err != nil {
			return nil, errors.Wrapf(err, "point file line %d", lineNo)
		}
		points = append(points, pt)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading point file")
	}

	return points, nil
}

func parseFields(fields []string) (Point, error) {
	switch len(fields) {
	case 1:
		return Point{}, fmt.Errorf("malformed line: exactly one field %q", fields[0])
	case 2:
		lat, lon, err := parseLatLon(fields[0], fields[1])
		if err != nil {
			return Point{}, err
		}
		return Point{
			Label: fmt.Sprintf("(%.6f,%.6f)", lat, lon),
			Lat:   lat,
			Lon:   lon,
		}, nil
	case 3:
		lat, lon, err := parseLatLon(fields[1], fields[2])
		if err != nil {
			return Point{}, err
		}
		return Point{Label: fields[0], Lat: lat, Lon: lon}, nil
	case 4:
		lat, lon, err := parseLatLon(fields[1], fields[2])
		if err != nil {
			return Point{}, err
		}
		return Point{Label: fields[0], Lat: lat, Lon: lon, OutFile: fields[3]}, nil
	default:
		return Point{}, fmt.Errorf("malformed line: %d fields", len(fields))
	}
}

func parseLatLon(latField, lonField string) (lat, lon float64, err error) {
	lat, err = strconv.ParseFloat(latField, 64)
	if err != nil {
		return 0, 0, errors.Wrap(err, "parsing latitude")
	}
	lon, err = strconv.ParseFloat(lonField, 64)
	if err != nil {
		return 0, 0, errors.Wrap(err, "parsing longitude")
	}
	return lat, lon, nil
}
