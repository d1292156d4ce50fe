package cube

import (
	"encoding/binary"
	"math"
	"os"

	"github.com/pkg/errors"
)

// DataFileCache is the "open file across records" re-architecture from
// spec.md §9: a single-slot cache that holds at most one cube data file
// open at a time, closing the previous one automatically when a record
// names a different file. Grounded on the same deterministic-close
// discipline as the teacher's WorkerPool.Close().
type DataFileCache struct {
	path string
	f    *os.File
}

// NewDataFileCache returns an empty cache holding no open file.
func NewDataFileCache() *DataFileCache {
	return &DataFileCache{}
}

// GetOrOpen returns the open file for path, opening it (and closing
// whatever was previously open) if path differs from the cached one.
func (c *DataFileCache) GetOrOpen(path string) (*os.File, error) {
	if c.f != nil && c.path == path {
		return c.f, nil
	}
	if c.f != nil {
		c.f.Close()
		c.f = nil
		c.path = ""
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening cube data file %s", path)
	}
	c.f = f
	c.path = path
	return f, nil
}

// Close releases whatever file is currently open. Safe to call on an
// empty cache and more than once.
func (c *DataFileCache) Close() error {
	if c.f == nil {
		return nil
	}
	err := c.f.Close()
	c.f = nil
	c.path = ""
	return err
}

// MissingSentinel is the cube format's literal missing-value marker
// (spec.md §6).
const MissingSentinel = 9999.0

// ReadGrid reads nx*ny contiguous 32-bit IEEE-754 floats starting at
// byteOffset, honoring the per-record endianness byte, and widens them to
// float64 for the interpolation kernel.
func ReadGrid(f *os.File, byteOffset int32, nx, ny int, bigEndian bool) ([]float64, error) {
	n := nx * ny
	buf := make([]byte, n*4)
	if _, err := f.ReadAt(buf, int64(byteOffset)); err != nil {
		return nil, errors.Wrap(err, "reading cube grid data")
	}

	order := binary.ByteOrder(binary.LittleEndian)
	if bigEndian {
		order = binary.BigEndian
	}

	values := make([]float64, n)
	for i := 0; i < n; i++ {
		bits := order.Uint32(buf[i*4:])
		values[i] = float64(math.Float32frombits(bits))
	}
	return values, nil
}
