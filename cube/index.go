// Package cube implements the Cube Index Reader (C6): the little-endian
// "flx" index format that describes a directory of packed-float data
// files, and the single-slot cache used to sample them. Index.go owns the
// byte-exact parse (spec.md §4.6); the walk-and-sample loop this parse
// feeds lives in the root ndfdprobe package (cube_probe.go), matching the
// split grib_probe.go already uses between the grib2 unpacker and the
// probe loop that drives it.
package cube

import (
	"encoding/binary"
	"time"

	"github.com/pkg/errors"

	"github.com/mmp/ndfdprobe/element"
	"github.com/mmp/ndfdprobe/internal"
)

// Index is the parsed contents of one cube index ("flx") file.
type Index struct {
	GDS      []*GDSBlock
	SuperPDS []*SuperPDS
}

// GDS1Based returns the 1-based GDS block referenced by a SuperPDS's GDSIndex.
func (idx *Index) GDS1Based(i uint16) (*GDSBlock, error) {
	if i == 0 || int(i) > len(idx.GDS) {
		return nil, errors.Errorf("GDS index %d out of range [1,%d]", i, len(idx.GDS))
	}
	return idx.GDS[i-1], nil
}

// SuperPDS groups the inner PDS records that share one element identity
// (spec.md §4.6, Glossary).
type SuperPDS struct {
	ElementName   string
	ElementEnum   element.Enum
	ReferenceTime time.Time
	Unit          string
	Comment       string
	GDSIndex      uint16 // 1-based, indexes Index.GDS
	Center        uint16
	Subcenter     uint16
	Records       []*PDSRecord
}

// PDSRecord is one inner PDS: a single valid time's worth of data for its
// SuperPDS's element, addressed by file name and byte offset.
//
// Table is owned by this record; ParseIndex allocates a fresh slice per
// record rather than reusing a buffer, so nothing aliases between records
// and the spec's "freed before the next record overwrites it" invariant
// holds for free under Go's GC.
type PDSRecord struct {
	ValidTime  time.Time
	DataFile   string
	DataOffset int32
	BigEndian  bool
	ScanMode   uint8
	Table      []string
}

// ParseIndex parses a complete cube index. headerLen is the byte size of
// the format's opening header block (spec.md §4.6 calls it opaque to this
// module); the cube format doesn't pin its length down, so it's supplied
// by the caller rather than hard-coded (see WithCubeHeaderLen, and spec.md
// §9's treatment of the similarly under-specified center constant).
func ParseIndex(data []byte, headerLen int) (*Index, error) {
	r := internal.NewReaderWithOrder(data, binary.LittleEndian)
	if err := r.Skip(headerLen); err != nil {
		return nil, errors.Wrap(err, "skipping index header")
	}

	numGDS, err := r.Uint16()
	if err != nil {
		return nil, errors.Wrap(err, "reading numGDS")
	}
	gdsBlocks := make([]*GDSBlock, numGDS)
	for i := range gdsBlocks {
		raw, err := r.Bytes(gdsRecordLen)
		if err != nil {
			return nil, errors.Wrapf(err, "reading GDS block %d", i)
		}
		block, err := parseGDSBlock(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing GDS block %d", i)
		}
		gdsBlocks[i] = block
	}

	numSuperPDS, err := r.Uint16()
	if err != nil {
		return nil, errors.Wrap(err, "reading numSuperPDS")
	}
	superPDS := make([]*SuperPDS, numSuperPDS)
	for i := range superPDS {
		sp, err := parseSuperPDS(r)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing super-PDS %d", i)
		}
		superPDS[i] = sp
	}

	return &Index{GDS: gdsBlocks, SuperPDS: superPDS}, nil
}

func parseSuperPDS(r *internal.Reader) (*SuperPDS, error) {
	if _, err := r.Int32(); err != nil { // lenTotPDS: navigational only, not validated
		return nil, errors.Wrap(err, "reading lenTotPDS")
	}
	if _, err := r.Uint16(); err != nil { // superLen: skipped per spec.md §4.6
		return nil, errors.Wrap(err, "reading superLen")
	}

	nameLen, err := r.Uint8()
	if err != nil {
		return nil, errors.Wrap(err, "reading nameLen")
	}
	nameBytes, err := r.Bytes(int(nameLen))
	if err != nil {
		return nil, errors.Wrap(err, "reading element name")
	}

	refSeconds, err := r.Float64()
	if err != nil {
		return nil, errors.Wrap(err, "reading referenceTime")
	}

	unitLen, err := r.Uint8()
	if err != nil {
		return nil, errors.Wrap(err, "reading unitLen")
	}
	unitBytes, err := r.Bytes(int(unitLen))
	if err != nil {
		return nil, errors.Wrap(err, "reading unit")
	}

	commentLen, err := r.Uint8()
	if err != nil {
		return nil, errors.Wrap(err, "reading commentLen")
	}
	commentBytes, err := r.Bytes(int(commentLen))
	if err != nil {
		return nil, errors.Wrap(err, "reading comment")
	}

	gdsIndex, err := r.Uint16()
	if err != nil {
		return nil, errors.Wrap(err, "reading gdsIndex")
	}
	center, err := r.Uint16()
	if err != nil {
		return nil, errors.Wrap(err, "reading center")
	}
	subcenter, err := r.Uint16()
	if err != nil {
		return nil, errors.Wrap(err, "reading subcenter")
	}
	numPDS, err := r.Uint16()
	if err != nil {
		return nil, errors.Wrap(err, "reading numPDS")
	}

	records := make([]*PDSRecord, numPDS)
	for i := range records {
		rec, err := parsePDSRecord(r)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing inner PDS %d", i)
		}
		records[i] = rec
	}

	name := string(nameBytes)
	return &SuperPDS{
		ElementName:   name,
		ElementEnum:   element.NameToEnum(name, element.NamingFile),
		ReferenceTime: time.Unix(int64(refSeconds), 0).UTC(),
		Unit:          string(unitBytes),
		Comment:       string(commentBytes),
		GDSIndex:      gdsIndex,
		Center:        center,
		Subcenter:     subcenter,
		Records:       records,
	}, nil
}

func parsePDSRecord(r *internal.Reader) (*PDSRecord, error) {
	if _, err := r.Uint16(); err != nil { // lenPDS: navigational only
		return nil, errors.Wrap(err, "reading lenPDS")
	}

	validSeconds, err := r.Float64()
	if err != nil {
		return nil, errors.Wrap(err, "reading validTime")
	}

	fileLen, err := r.Uint8()
	if err != nil {
		return nil, errors.Wrap(err, "reading fileLen")
	}
	fileBytes, err := r.Bytes(int(fileLen))
	if err != nil {
		return nil, errors.Wrap(err, "reading data file name")
	}

	dataOffset, err := r.Int32()
	if err != nil {
		return nil, errors.Wrap(err, "reading dataOffset")
	}
	endianByte, err := r.Uint8()
	if err != nil {
		return nil, errors.Wrap(err, "reading endian byte")
	}
	scanMode, err := r.Uint8()
	if err != nil {
		return nil, errors.Wrap(err, "reading scanMode")
	}

	numTable, err := r.Uint16()
	if err != nil {
		return nil, errors.Wrap(err, "reading numTable")
	}
	table := make([]string, numTable)
	for i := range table {
		sLen, err := r.Uint16()
		if err != nil {
			return nil, errors.Wrapf(err, "reading table entry %d length", i)
		}
		sBytes, err := r.Bytes(int(sLen))
		if err != nil {
			return nil, errors.Wrapf(err, "reading table entry %d", i)
		}
		table[i] = string(sBytes)
	}

	return &PDSRecord{
		ValidTime:  time.Unix(int64(validSeconds), 0).UTC(),
		DataFile:   string(fileBytes),
		DataOffset: dataOffset,
		BigEndian:  endianByte == 1,
		ScanMode:   scanMode,
		Table:      table,
	}, nil
}
