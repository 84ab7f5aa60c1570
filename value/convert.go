package value

import (
	"fmt"
	"strconv"
)

// Type is the declared column type a Value may be converted to.
type Type int

const (
	TypeInt Type = iota
	TypeFloat
	TypeString
	TypeDate
	TypeTime
)

func (t Type) String() string {
	switch t {
	case TypeInt:
		return "INT"
	case TypeFloat:
		return "FLOAT"
	case TypeString:
		return "STRING"
	case TypeDate:
		return "DATE"
	case TypeTime:
		return "TIME"
	default:
		return "UNKNOWN"
	}
}

// Convert widens or parses v into target, per spec §4.3: INT<->FLOAT
// widening is always allowed, string->numeric is attempted by parsing,
// and any value can be re-rendered into STRING. An invalid parse
// yields ERROR, not NULL. NULL converts to NULL regardless of target.
func Convert(v Value, target Type) Value {
	r, _ := TryConvert(v, target)
	return r
}

// TryConvert is Convert with an explicit success flag, per spec §4.3.
func TryConvert(v Value, target Type) (Value, bool) {
	if v.IsNull() {
		return Null, true
	}
	if v.IsError() {
		return Err, false
	}

	switch target {
	case TypeInt:
		switch v.kind {
		case KindInt:
			return v, true
		case KindFloat:
			return Int(int64(v.f)), true
		case KindString:
			i, err := strconv.ParseInt(v.s, 10, 64)
			if err != nil {
				return Err, false
			}
			return Int(i), true
		default:
			return Err, false
		}
	case TypeFloat:
		switch v.kind {
		case KindInt:
			return Float(float64(v.i)), true
		case KindFloat:
			return v, true
		case KindString:
			f, err := strconv.ParseFloat(v.s, 64)
			if err != nil {
				return Err, false
			}
			return Float(f), true
		default:
			return Err, false
		}
	case TypeString:
		return Str(v.Repr()), true
	case TypeDate:
		switch v.kind {
		case KindDate:
			return v, true
		case KindString:
			d, ok := parseDate(v.s)
			if !ok {
				return Err, false
			}
			return DateOf(d), true
		default:
			return Err, false
		}
	case TypeTime:
		switch v.kind {
		case KindTime:
			return v, true
		case KindString:
			t, ok := parseTime(v.s)
			if !ok {
				return Err, false
			}
			return TimeOf(t), true
		default:
			return Err, false
		}
	default:
		return Err, false
	}
}

func parseDate(s string) (Date, bool) {
	var y, m, d int
	n, err := fmt.Sscanf(s, "%d-%d-%d", &y, &m, &d)
	if err != nil || n != 3 {
		return Date{}, false
	}
	return Date{Year: y, Month: m, Day: d}, true
}

func parseTime(s string) (Time, bool) {
	var h, m, sec int
	n, err := fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec)
	if err != nil || n != 3 {
		return Time{}, false
	}
	return Time{Hour: h, Minute: m, Second: sec}, true
}
