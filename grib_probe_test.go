package ndfdprobe

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mmp/ndfdprobe/element"
	"github.com/mmp/ndfdprobe/grib2/section"
	"github.com/mmp/ndfdprobe/match"
)

func TestPassesTimeFilterNoMask(t *testing.T) {
	if !passesTimeFilter(0, TimeFilterNone, time.Time{}, time.Time{}) {
		t.Error("TimeFilterNone should always pass")
	}
}

func TestPassesTimeFilterScenario8(t *testing.T) {
	// spec.md §8 scenario 8: validTime 2024-01-01T12Z, mask 2 (before-only),
	// endTime 2024-01-01T00Z -> excluded.
	validTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC).Unix()
	end := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	if passesTimeFilter(validTime, TimeFilterBeforeOnly, time.Time{}, end) {
		t.Error("validTime after endTime should fail the before-only filter")
	}
}

func TestPassesTimeFilterAfterOnly(t *testing.T) {
	validTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC).Unix()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	if !passesTimeFilter(validTime, TimeFilterAfterOnly, start, time.Time{}) {
		t.Error("validTime after startTime should pass the after-only filter")
	}

	start2 := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	if passesTimeFilter(validTime, TimeFilterAfterOnly, start2, time.Time{}) {
		t.Error("validTime before startTime should fail the after-only filter")
	}
}

func TestPassesTimeFilterRange(t *testing.T) {
	validTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC).Unix()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	if !passesTimeFilter(validTime, TimeFilterRange, start, end) {
		t.Error("validTime inside [start,end] should pass the range filter")
	}
}

func TestDurationForUnitTable(t *testing.T) {
	cases := []struct {
		unit   uint8
		amount int
		want   time.Duration
	}{
		{0, 30, 30 * time.Minute},
		{1, 6, 6 * time.Hour},
		{2, 2, 48 * time.Hour},
		{10, 2, 6 * time.Hour},
		{11, 2, 12 * time.Hour},
		{12, 1, 12 * time.Hour},
		{13, 90, 90 * time.Second},
		{255, 1, time.Hour}, // unrecognized unit defaults to hours
	}
	for _, c := range cases {
		got := durationForUnit(c.unit, c.amount)
		if got != c.want {
			t.Errorf("durationForUnit(%d, %d) = %v, want %v", c.unit, c.amount, got, c.want)
		}
	}
}

func TestForecastValidTime(t *testing.T) {
	ref := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	got := forecastValidTime(ref, 1, 12)
	want := ref.Add(12 * time.Hour).Unix()
	if got != want {
		t.Errorf("forecastValidTime = %d, want %d", got, want)
	}
}

func TestParseEmbeddedWeatherTable(t *testing.T) {
	payload := []byte("R1|L|R^\x00SChc|Chc^\x00")
	table := parseEmbeddedWeatherTable(payload)
	if len(table) != 2 {
		t.Fatalf("got %d entries, want 2: %v", len(table), table)
	}
	if table[0] != "R1|L|R^" || table[1] != "SChc|Chc^" {
		t.Errorf("table = %v", table)
	}
}

func TestParseEmbeddedWeatherTableEmpty(t *testing.T) {
	if table := parseEmbeddedWeatherTable(nil); table != nil {
		t.Errorf("got %v, want nil for empty payload", table)
	}
}

func TestParseEmbeddedWeatherTableSkipsEmptyParts(t *testing.T) {
	payload := []byte("\x00\x00R1^\x00")
	table := parseEmbeddedWeatherTable(payload)
	if len(table) != 1 || table[0] != "R1^" {
		t.Errorf("table = %v, want [R1^]", table)
	}
}

// makeBareSection0Message builds a minimal Section 0 + "7777" GRIB message
// (no sections 1-7) with the given edition, for exercising ParseMessage's
// edition check without a full message body.
func makeBareSection0Message(edition uint8, messageLength uint64) []byte {
	if messageLength < 20 {
		messageLength = 20
	}
	msg := make([]byte, messageLength)
	copy(msg[0:4], "GRIB")
	msg[6] = 0 // discipline
	msg[7] = edition
	for i := 0; i < 8; i++ {
		msg[15-i] = byte(messageLength >> (8 * i))
	}
	copy(msg[len(msg)-4:], "7777")
	return msg
}

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Warnf(format string, args ...any) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

// TestProbeGRIBSkipsUnsupportedEditionMessage exercises spec.md §4.5 step
// 2: a message carrying an edition other than 2 is skipped (logged,
// continue to the next message in the file), not treated as a file-level
// abort the way other unpacker failures are.
func TestProbeGRIBSkipsUnsupportedEditionMessage(t *testing.T) {
	bad := makeBareSection0Message(1, 24)  // unsupported edition
	good := makeBareSection0Message(2, 24) // edition 2, but no further sections

	dir := t.TempDir()
	path := filepath.Join(dir, "bare.grib2")
	if err := os.WriteFile(path, append(bad, good...), 0o644); err != nil {
		t.Fatalf("writing test file: %v", err)
	}

	log := &recordingLogger{}
	c := newConfig()
	c.logger = log

	catalog := element.Catalog()
	acc := match.NewAccumulator()
	err := probeGRIB(c, path, catalog, catalog, acc)

	if err == nil {
		t.Fatal("expected the second (edition-2 but sectionless) message to fail parsing")
	}
	var editionErr *section.UnsupportedEditionError
	if stderrors.As(err, &editionErr) {
		t.Fatalf("returned error should not be the edition error: %v", err)
	}

	if len(log.lines) != 1 || !strings.Contains(log.lines[0], "unsupported GRIB edition") {
		t.Fatalf("expected exactly one warning about the skipped edition-1 message, got %v", log.lines)
	}
}
