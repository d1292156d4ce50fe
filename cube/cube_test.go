package cube

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/mmp/ndfdprobe/element"
)

// buildIndex assembles a minimal but fully-formed cube index: headerLen
// bytes of opaque header, one lat/lon GDS block, one super-PDS with one
// inner PDS record carrying a two-entry weather table.
func buildIndex(t *testing.T, headerLen int) []byte {
	t.Helper()
	var buf bytes.Buffer
	buf.Write(make([]byte, headerLen))

	binary.Write(&buf, binary.LittleEndian, uint16(1)) // numGDS

	gds := bytes.Buffer{}
	binary.Write(&gds, binary.LittleEndian, uint8(0))    // gridType: lat/lon
	binary.Write(&gds, binary.LittleEndian, uint32(3))   // nx
	binary.Write(&gds, binary.LittleEndian, uint32(3))   // ny
	binary.Write(&gds, binary.LittleEndian, int32(1000)) // la1
	binary.Write(&gds, binary.LittleEndian, int32(1000)) // lo1
	binary.Write(&gds, binary.LittleEndian, uint8(0))    // resFlags
	binary.Write(&gds, binary.LittleEndian, int32(3000)) // la2 (p3)
	binary.Write(&gds, binary.LittleEndian, int32(3000)) // lo2 (p4)
	binary.Write(&gds, binary.LittleEndian, uint32(1000)) // di (p5)
	binary.Write(&gds, binary.LittleEndian, uint32(1000)) // dj (p6)
	binary.Write(&gds, binary.LittleEndian, int32(0))     // p7 unused
	binary.Write(&gds, binary.LittleEndian, int32(0))     // p8 unused
	binary.Write(&gds, binary.LittleEndian, uint8(64))    // scanMode
	if gds.Len() != gdsRecordLen {
		t.Fatalf("test GDS block is %d bytes, want %d", gds.Len(), gdsRecordLen)
	}
	buf.Write(gds.Bytes())

	binary.Write(&buf, binary.LittleEndian, uint16(1)) // numSuperPDS

	name := "wx"
	binary.Write(&buf, binary.LittleEndian, int32(0))      // lenTotPDS (unused)
	binary.Write(&buf, binary.LittleEndian, uint16(0))      // superLen (skipped)
	binary.Write(&buf, binary.LittleEndian, uint8(len(name)))
	buf.WriteString(name)
	binary.Write(&buf, binary.LittleEndian, float64(1704067200)) // referenceTime 2024-01-01T00:00:00Z
	unit := "wx"
	binary.Write(&buf, binary.LittleEndian, uint8(len(unit)))
	buf.WriteString(unit)
	comment := ""
	binary.Write(&buf, binary.LittleEndian, uint8(len(comment)))
	buf.WriteString(comment)
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // gdsIndex
	binary.Write(&buf, binary.LittleEndian, uint16(8)) // center
	binary.Write(&buf, binary.LittleEndian, uint16(0)) // subcenter
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // numPDS

	binary.Write(&buf, binary.LittleEndian, uint16(0))            // lenPDS (unused)
	binary.Write(&buf, binary.LittleEndian, float64(1704110400)) // validTime 2024-01-01T12:00:00Z
	dataFile := "wx.dat"
	binary.Write(&buf, binary.LittleEndian, uint8(len(dataFile)))
	buf.WriteString(dataFile)
	binary.Write(&buf, binary.LittleEndian, int32(0)) // dataOffset
	binary.Write(&buf, binary.LittleEndian, uint8(0)) // endian: little
	binary.Write(&buf, binary.LittleEndian, uint8(64)) // scanMode
	binary.Write(&buf, binary.LittleEndian, uint16(2)) // numTable
	for _, tok := range []string{"R1", "L"} {
		binary.Write(&buf, binary.LittleEndian, uint16(len(tok)))
		buf.WriteString(tok)
	}

	return buf.Bytes()
}

func TestParseIndexRoundTrip(t *testing.T) {
	data := buildIndex(t, 8)
	idx, err := ParseIndex(data, 8)
	if err != nil {
		t.Fatalf("ParseIndex: %v", err)
	}

	if len(idx.GDS) != 1 {
		t.Fatalf("got %d GDS blocks, want 1", len(idx.GDS))
	}
	if idx.GDS[0].Nx != 3 || idx.GDS[0].Ny != 3 {
		t.Errorf("GDS dims = %d x %d, want 3x3", idx.GDS[0].Nx, idx.GDS[0].Ny)
	}

	if len(idx.SuperPDS) != 1 {
		t.Fatalf("got %d super-PDS, want 1", len(idx.SuperPDS))
	}
	sp := idx.SuperPDS[0]
	if sp.ElementEnum != element.Wx {
		t.Errorf("ElementEnum = %v, want Wx", sp.ElementEnum)
	}
	if sp.Center != 8 {
		t.Errorf("Center = %d, want 8", sp.Center)
	}
	if len(sp.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(sp.Records))
	}
	rec := sp.Records[0]
	if rec.DataFile != "wx.dat" {
		t.Errorf("DataFile = %q, want wx.dat", rec.DataFile)
	}
	if len(rec.Table) != 2 || rec.Table[0] != "R1" || rec.Table[1] != "L" {
		t.Errorf("Table = %v, want [R1 L]", rec.Table)
	}
	if rec.BigEndian {
		t.Errorf("BigEndian = true, want false")
	}
}

func TestParseIndexUnknownElementNameYieldsUNDEF(t *testing.T) {
	data := buildIndex(t, 0)
	// Overwrite the element name bytes ("wx") with an unrecognized code,
	// same length so offsets don't shift.
	idx := bytes.Index(data, []byte("wx"))
	copy(data[idx:idx+2], "zz")

	parsed, err := ParseIndex(data, 0)
	if err != nil {
		t.Fatalf("ParseIndex: %v", err)
	}
	if parsed.SuperPDS[0].ElementEnum != element.UNDEF {
		t.Errorf("ElementEnum = %v, want UNDEF", parsed.SuperPDS[0].ElementEnum)
	}
}

func TestGDS1BasedIndexing(t *testing.T) {
	data := buildIndex(t, 0)
	idx, err := ParseIndex(data, 0)
	if err != nil {
		t.Fatalf("ParseIndex: %v", err)
	}
	if _, err := idx.GDS1Based(0); err == nil {
		t.Error("GDS1Based(0) should be out of range")
	}
	if _, err := idx.GDS1Based(2); err == nil {
		t.Error("GDS1Based(2) should be out of range for a single-block index")
	}
	b, err := idx.GDS1Based(1)
	if err != nil {
		t.Fatalf("GDS1Based(1): %v", err)
	}
	if b.Nx != 3 {
		t.Errorf("Nx = %d, want 3", b.Nx)
	}
}

func TestGDSBlockToGridLatLon(t *testing.T) {
	data := buildIndex(t, 0)
	idx, _ := ParseIndex(data, 0)
	g, err := idx.GDS[0].ToGrid()
	if err != nil {
		t.Fatalf("ToGrid: %v", err)
	}
	if g.TemplateNumber() != 0 {
		t.Errorf("TemplateNumber = %d, want 0 (lat/lon)", g.TemplateNumber())
	}
	if g.NumPoints() != 9 {
		t.Errorf("NumPoints = %d, want 9", g.NumPoints())
	}
}

func TestGDSBlockToGridUnsupportedType(t *testing.T) {
	b := &GDSBlock{GridType: 99}
	if _, err := b.ToGrid(); err == nil {
		t.Error("expected an error for an unsupported GDS grid type")
	}
}

func TestDataFileCacheReopensOnPathChange(t *testing.T) {
	dir := t.TempDir()
	pathA := filepath.Join(dir, "a.dat")
	pathB := filepath.Join(dir, "b.dat")
	os.WriteFile(pathA, []byte("aaaa"), 0o644)
	os.WriteFile(pathB, []byte("bbbb"), 0o644)

	c := NewDataFileCache()
	defer c.Close()

	fa, err := c.GetOrOpen(pathA)
	if err != nil {
		t.Fatalf("GetOrOpen(a): %v", err)
	}
	fa2, err := c.GetOrOpen(pathA)
	if err != nil {
		t.Fatalf("GetOrOpen(a) again: %v", err)
	}
	if fa != fa2 {
		t.Error("GetOrOpen should return the same handle for an unchanged path")
	}

	fb, err := c.GetOrOpen(pathB)
	if err != nil {
		t.Fatalf("GetOrOpen(b): %v", err)
	}
	if fb == fa {
		t.Error("GetOrOpen should open a new handle when the path changes")
	}

	// The old handle must be closed; reading from it should now fail.
	if _, err := fa.Read(make([]byte, 1)); err == nil {
		t.Error("previous handle should be closed after switching files")
	}
}

func TestDataFileCacheCloseIsIdempotent(t *testing.T) {
	c := NewDataFileCache()
	if err := c.Close(); err != nil {
		t.Fatalf("Close on empty cache: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestReadGridLittleEndian(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "grid.dat")

	var buf bytes.Buffer
	for _, v := range []float32{1, 2, 3, 4, 5, 6, 7, 8, 9} {
		binary.Write(&buf, binary.LittleEndian, math.Float32bits(v))
	}
	os.WriteFile(path, buf.Bytes(), 0o644)

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	values, err := ReadGrid(f, 0, 3, 3, false)
	if err != nil {
		t.Fatalf("ReadGrid: %v", err)
	}
	if len(values) != 9 || values[0] != 1 || values[8] != 9 {
		t.Errorf("values = %v, want {1..9}", values)
	}
}

func TestReadGridBigEndian(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "grid.dat")

	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, math.Float32bits(42.5))
	os.WriteFile(path, buf.Bytes(), 0o644)

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	values, err := ReadGrid(f, 0, 1, 1, true)
	if err != nil {
		t.Fatalf("ReadGrid: %v", err)
	}
	if values[0] != 42.5 {
		t.Errorf("values[0] = %v, want 42.5", values[0])
	}
}

func TestMissingSentinelValue(t *testing.T) {
	if MissingSentinel != 9999.0 {
		t.Errorf("MissingSentinel = %v, want 9999.0", MissingSentinel)
	}
}
