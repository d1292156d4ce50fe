package ndfdprobe

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/mmp/ndfdprobe/element"
)

func TestProbeEmptyFileListIsConfigError(t *testing.T) {
	_, err := Probe()
	if err == nil {
		t.Fatal("expected a ConfigError for an empty file list")
	}
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("got %T, want *ConfigError", err)
	}
	if cfgErr.Code() != CodeNoInputFiles {
		t.Errorf("Code() = %d, want %d", cfgErr.Code(), CodeNoInputFiles)
	}
}

// buildCubeIndex writes a minimal index + data file pair to dir and
// returns the index path: one 3x3 lat/lon grid, one temperature record at
// a point that lands exactly on grid cell (2,2).
func buildCubeIndex(t *testing.T, dir string) string {
	t.Helper()

	var idx bytes.Buffer
	binary.Write(&idx, binary.LittleEndian, uint16(1)) // numGDS

	var gds bytes.Buffer
	binary.Write(&gds, binary.LittleEndian, uint8(0))           // lat/lon
	binary.Write(&gds, binary.LittleEndian, uint32(3))          // nx
	binary.Write(&gds, binary.LittleEndian, uint32(3))          // ny
	binary.Write(&gds, binary.LittleEndian, int32(40000))       // la1 = 40.0 (millidegrees)
	binary.Write(&gds, binary.LittleEndian, int32(-100000))     // lo1 = -100.0
	binary.Write(&gds, binary.LittleEndian, uint8(0))           // resFlags
	binary.Write(&gds, binary.LittleEndian, int32(42000))       // la2 = 42.0
	binary.Write(&gds, binary.LittleEndian, int32(-98000))      // lo2 = -98.0
	binary.Write(&gds, binary.LittleEndian, uint32(1000))       // di = 1.0 deg
	binary.Write(&gds, binary.LittleEndian, uint32(1000))       // dj = 1.0 deg
	binary.Write(&gds, binary.LittleEndian, int32(0))
	binary.Write(&gds, binary.LittleEndian, int32(0))
	binary.Write(&gds, binary.LittleEndian, uint8(0x40)) // scan 64: +i, +j
	idx.Write(gds.Bytes())

	binary.Write(&idx, binary.LittleEndian, uint16(1)) // numSuperPDS

	name := "temp" // resolves to element.Temp under NamingFile
	binary.Write(&idx, binary.LittleEndian, int32(0))
	binary.Write(&idx, binary.LittleEndian, uint16(0))
	binary.Write(&idx, binary.LittleEndian, uint8(len(name)))
	idx.WriteString(name)
	binary.Write(&idx, binary.LittleEndian, float64(1704067200)) // 2024-01-01T00:00:00Z
	unit := "F"
	binary.Write(&idx, binary.LittleEndian, uint8(len(unit)))
	idx.WriteString(unit)
	binary.Write(&idx, binary.LittleEndian, uint8(0)) // comment
	binary.Write(&idx, binary.LittleEndian, uint16(1)) // gdsIndex
	binary.Write(&idx, binary.LittleEndian, uint16(8)) // center
	binary.Write(&idx, binary.LittleEndian, uint16(0)) // subcenter
	binary.Write(&idx, binary.LittleEndian, uint16(1)) // numPDS

	binary.Write(&idx, binary.LittleEndian, uint16(0))
	binary.Write(&idx, binary.LittleEndian, float64(1704110400)) // validTime 2024-01-01T12:00:00Z
	dataFile := "t.dat"
	binary.Write(&idx, binary.LittleEndian, uint8(len(dataFile)))
	idx.WriteString(dataFile)
	binary.Write(&idx, binary.LittleEndian, int32(0)) // dataOffset
	binary.Write(&idx, binary.LittleEndian, uint8(0)) // little-endian data
	binary.Write(&idx, binary.LittleEndian, uint8(64)) // scanMode 64
	binary.Write(&idx, binary.LittleEndian, uint16(0)) // numTable

	idxPath := filepath.Join(dir, "t.flx")
	if err := os.WriteFile(idxPath, idx.Bytes(), 0o644); err != nil {
		t.Fatalf("writing index: %v", err)
	}

	var data bytes.Buffer
	for _, v := range []float32{1, 2, 3, 4, 5, 6, 7, 8, 9} {
		var bits [4]byte
		binary.LittleEndian.PutUint32(bits[:], math.Float32bits(v))
		data.Write(bits[:])
	}
	if err := os.WriteFile(filepath.Join(dir, dataFile), data.Bytes(), 0o644); err != nil {
		t.Fatalf("writing data file: %v", err)
	}

	return idxPath
}

func TestProbeCubeEndToEnd(t *testing.T) {
	dir := t.TempDir()
	idxPath := buildCubeIndex(t, dir)

	acc, err := Probe(
		WithFile(idxPath, FileCube),
		WithPoints([]Point{{Label: "center", X: 41.0, Y: -99.0}}, PointGeographic),
		WithElementFilter([]element.Enum{element.Temp}, map[element.Enum]int{element.Temp: 1}),
	)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}

	matches := acc.Matches()
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	m := matches[0]
	if len(m.Values) != 1 {
		t.Fatalf("got %d values, want 1", len(m.Values))
	}
	f, ok := m.Values[0].Float()
	if !ok {
		t.Fatalf("value is not numeric: %+v", m.Values[0])
	}
	if f != 5 {
		t.Errorf("sampled value = %v, want 5 (center cell of {1..9})", f)
	}
}

func TestProbeCubeWrongCenterSkipped(t *testing.T) {
	dir := t.TempDir()
	idxPath := buildCubeIndex(t, dir)

	acc, err := Probe(
		WithFile(idxPath, FileCube),
		WithPoints([]Point{{Label: "center", X: 41.0, Y: -99.0}}, PointGeographic),
		WithElementFilter([]element.Enum{element.Temp}, map[element.Enum]int{element.Temp: 1}),
		WithCubeCenter(99),
	)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if acc.Len() != 0 {
		t.Errorf("got %d matches, want 0 when center filter excludes every super-PDS", acc.Len())
	}
}
