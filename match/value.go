// Package match implements the Match Accumulator (C7): the Value sum type
// and the append-only result list the probe loop builds as it samples
// grids at input points.
package match

import (
	"time"

	"github.com/mmp/ndfdprobe/element"
)

// Value is a closed sum type for one sampled point, replacing the source's
// tagged union with a manually-managed string pointer (spec.md §9's
// Re-architectures: "Tagged Value union"). Exactly one of Numeric, Text, or
// Missing constructs a Value; callers switch on Kind to recover it.
type Value struct {
	kind ValueKind
	num  float64
	str  string
}

type ValueKind int

const (
	KindNumeric ValueKind = iota
	KindText
	KindMissing
)

// Numeric constructs a Value carrying a plain floating-point sample.
func Numeric(v float64) Value {
	return Value{kind: KindNumeric, num: v}
}

// Text constructs a Value carrying a decoded weather string.
func Text(s string) Value {
	return Value{kind: KindText, str: s}
}

// Missing constructs a Value for an out-of-domain or missing-data sample.
// repr, when non-empty, carries the weather-table's decimal rendering of the
// out-of-range index; it is empty for an ordinary numeric miss.
func Missing(v float64, repr string) Value {
	return Value{kind: KindMissing, num: v, str: repr}
}

func (v Value) Kind() ValueKind { return v.kind }

// Float returns the carried float and whether the Value holds one (Kind
// Numeric or Missing).
func (v Value) Float() (float64, bool) {
	return v.num, v.kind == KindNumeric || v.kind == KindMissing
}

// String returns the carried text and whether the Value holds one (Kind
// Text, or Kind Missing with a non-empty repr).
func (v Value) String() (string, bool) {
	if v.kind == KindText {
		return v.str, true
	}
	if v.kind == KindMissing && v.str != "" {
		return v.str, true
	}
	return "", false
}

// Match is the record the probe loop appends for one grid that passed the
// meta and time filters: the resolved descriptor identity, its valid/
// reference times, unit, and one Value per input point, in input order.
type Match struct {
	NDFDEnum      element.Enum
	ReferenceTime time.Time
	ValidTime     time.Time
	Unit          string
	Values        []Value
}
