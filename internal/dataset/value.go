//-------------------------------------------------------------------------
//
// AG Data Generator
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package dataset holds the in-memory tabular representation shared by the
// generator and the loader.
package dataset

import (
	"math"
	"strconv"
	"time"
)

// Kind identifies the dynamic type held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindText
	KindInt
	KindFloat
	KindBool
	KindTime
)

// TimeLayout is the textual form used for timestamps in CSV files.
const TimeLayout = "2006-01-02 15:04:05"

// Value is a single cell. The zero Value is null.
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
	b    bool
	t    time.Time
}

// Null returns the null marker.
func Null() Value { return Value{} }

// Text returns a text value.
func Text(s string) Value { return Value{kind: KindText, s: s} }

// Int returns an integer value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a decimal value. NaN and infinities are kept as-is; the
// normalizer turns them into nulls.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Time returns a timestamp value.
func Time(t time.Time) Value { return Value{kind: KindTime, t: t} }

// Kind returns the dynamic type of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null marker.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Str returns the raw text of a text value and whether v is text.
func (v Value) Str() (string, bool) { return v.s, v.kind == KindText }

// Int64 returns the integer held by v and whether v is an integer.
func (v Value) Int64() (int64, bool) { return v.i, v.kind == KindInt }

// Float64 returns the number held by v. Integers are widened.
func (v Value) Float64() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.f, true
	case KindInt:
		return float64(v.i), true
	}
	return 0, false
}

// Boolean returns the boolean held by v and whether v is a boolean.
func (v Value) Boolean() (bool, bool) { return v.b, v.kind == KindBool }

// Timestamp returns the time held by v and whether v is a timestamp.
func (v Value) Timestamp() (time.Time, bool) { return v.t, v.kind == KindTime }

// IsNaNOrInf reports whether v is a float that is not a finite number.
func (v Value) IsNaNOrInf() bool {
	return v.kind == KindFloat && (math.IsNaN(v.f) || math.IsInf(v.f, 0))
}

// String renders v as text. Null renders as "None" and booleans as
// "True"/"False", which is what the boolean normalizer lower-cases.
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.s
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		switch {
		case math.IsNaN(v.f):
			return "nan"
		case math.IsInf(v.f, 1):
			return "inf"
		case math.IsInf(v.f, -1):
			return "-inf"
		}
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindBool:
		if v.b {
			return "True"
		}
		return "False"
	case KindTime:
		return v.t.Format(TimeLayout)
	}
	return "None"
}

// CSV renders v for a CSV cell; null becomes the empty string.
func (v Value) CSV() string {
	if v.kind == KindNull {
		return ""
	}
	return v.String()
}

// Any returns v as a database driver argument.
func (v Value) Any() any {
	switch v.kind {
	case KindText:
		return v.s
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindBool:
		return v.b
	case KindTime:
		return v.t
	}
	return nil
}

// Equal reports whether two values have the same kind and content. NaN
// floats compare equal to each other.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindText:
		return v.s == o.s
	case KindInt:
		return v.i == o.i
	case KindFloat:
		if math.IsNaN(v.f) && math.IsNaN(o.f) {
			return true
		}
		return v.f == o.f
	case KindBool:
		return v.b == o.b
	case KindTime:
		return v.t.Equal(o.t)
	}
	return false
}
