// Package value implements the tagged scalar that flows through every
// row, expression, and query result in machdb.
package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind discriminates a Value's payload.
type Kind int

const (
	KindNull Kind = iota
	KindInt
	KindFloat
	KindString
	KindDate
	KindTime
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "NULL"
	case KindInt:
		return "INT"
	case KindFloat:
		return "FLOAT"
	case KindString:
		return "STRING"
	case KindDate:
		return "DATE"
	case KindTime:
		return "TIME"
	case KindError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Date is a calendar date, stored as its three components per spec §3.
type Date struct {
	Year, Month, Day int
}

// Time is a wall-clock time of day.
type Time struct {
	Hour, Minute, Second int
}

// Value is the tagged sum described in spec §3: Null, Int, Float, Str,
// Date, Time, Error. Error is distinct from Null — arithmetic or
// invalid conversions yield Error, missing/unknown data yields Null.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
	d    Date
	t    Time
}

// Null is the canonical NULL value.
var Null = Value{kind: KindNull}

// Err is the canonical ERROR value.
var Err = Value{kind: KindError}

func Int(i int64) Value       { return Value{kind: KindInt, i: i} }
func Float(f float64) Value   { return Value{kind: KindFloat, f: f} }
func Str(s string) Value      { return Value{kind: KindString, s: s} }
func DateOf(d Date) Value     { return Value{kind: KindDate, d: d} }
func TimeOf(t Time) Value     { return Value{kind: KindTime, t: t} }

func (v Value) Kind() Kind       { return v.kind }
func (v Value) IsNull() bool     { return v.kind == KindNull }
func (v Value) IsError() bool    { return v.kind == KindError }
func (v Value) IsNumeric() bool  { return v.kind == KindInt || v.kind == KindFloat }
func (v Value) Int() int64       { return v.i }
func (v Value) Float() float64   { return v.f }
func (v Value) Str() string      { return v.s }
func (v Value) Date() Date       { return v.d }
func (v Value) Time() Time       { return v.t }

// AsFloat widens Int/Float to a float64; any other kind returns 0,
// false.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	default:
		return 0, false
	}
}

// MaxStringLen is the design default from spec §3 invariant 7.
const MaxStringLen = 255

// Display formatting constants from spec §4.3.
const (
	floatSignificantDigits = 6
	aggregateDecimalDigits = 2
)

// Repr renders a Value the way spec §4.3 requires: ints as decimal,
// floats to up to 6 significant digits (magnitudes that would need
// exponent notation are printed in full plain decimal instead), dates
// as YYYY-MM-DD, times as HH:MM:SS, NULL as the literal text "NULL",
// strings verbatim.
func (v Value) Repr() string {
	switch v.kind {
	case KindNull:
		return "NULL"
	case KindError:
		return "ERROR"
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return formatFloat(v.f, floatSignificantDigits)
	case KindString:
		return v.s
	case KindDate:
		return fmt.Sprintf("%04d-%02d-%02d", v.d.Year, v.d.Month, v.d.Day)
	case KindTime:
		return fmt.Sprintf("%02d:%02d:%02d", v.t.Hour, v.t.Minute, v.t.Second)
	default:
		return ""
	}
}

// ReprAggregate renders a numeric Value to 2 decimal places, the
// display convention spec §4.3 calls out for aggregation output.
func (v Value) ReprAggregate() string {
	switch v.kind {
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', aggregateDecimalDigits, 64)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	default:
		return v.Repr()
	}
}

func formatFloat(f float64, sig int) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	s := strconv.FormatFloat(f, 'g', sig, 64)
	// strconv's 'g' verb emits exponent notation for very large or very
	// small magnitudes; print those in plain decimal at full precision.
	if !strings.ContainsAny(s, "eE") {
		return s
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (v Value) String() string { return v.Repr() }
