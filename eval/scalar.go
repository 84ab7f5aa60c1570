package eval

import (
	"math"
	"strings"

	"github.com/freeeve/machdb/ast"
	"github.com/freeeve/machdb/dblog"
	"github.com/freeeve/machdb/value"
)

// scalarNames is the function library from spec §4.6.
var scalarNames = map[string]bool{
	"ABS": true, "SQRT": true, "MOD": true, "POWER": true, "ROUND": true,
	"FLOOR": true, "CEIL": true,
	"UPPER": true, "LOWER": true, "LENGTH": true, "LEFT": true, "RIGHT": true,
	"MID": true, "CONCAT": true,
}

// IsScalarName reports whether name is one of spec §4.6's functions.
func IsScalarName(name string) bool { return scalarNames[strings.ToUpper(name)] }

func evalScalar(n *ast.FuncExpr, b Binding) value.Value {
	name := strings.ToUpper(n.Name)
	if !scalarNames[name] {
		b.log(dblog.Error, "unknown scalar function %s", n.Name)
		return value.Err
	}

	args := make([]value.Value, len(n.Args))
	for i, a := range n.Args {
		args[i] = EvalValue(a, b)
	}

	// Every function except CONCAT short-circuits to NULL here on a
	// NULL argument; CONCAT does its own NULL check in scalarConcat,
	// which likewise returns NULL.
	if name != "CONCAT" {
		for _, a := range args {
			if a.IsNull() {
				return value.Null
			}
		}
	}

	switch name {
	case "ABS":
		return scalarAbs(args, b)
	case "SQRT":
		return scalarSqrt(args, b)
	case "MOD":
		return scalarMod(args, b)
	case "POWER":
		return scalarPower(args, b)
	case "ROUND":
		return scalarRound(args, b)
	case "FLOOR":
		return scalarFloor(args, b)
	case "CEIL":
		return scalarCeil(args, b)
	case "UPPER":
		return scalarUpper(args, b)
	case "LOWER":
		return scalarLower(args, b)
	case "LENGTH":
		return scalarLength(args, b)
	case "LEFT":
		return scalarLeft(args, b)
	case "RIGHT":
		return scalarRight(args, b)
	case "MID":
		return scalarMid(args, b)
	case "CONCAT":
		return scalarConcat(args, b)
	default:
		return value.Err
	}
}

func wrongArity(b Binding, name string) value.Value {
	b.log(dblog.Error, "%s: wrong number of arguments", name)
	return value.Err
}

func scalarAbs(args []value.Value, b Binding) value.Value {
	if len(args) != 1 || !args[0].IsNumeric() {
		return wrongArity(b, "ABS")
	}
	if args[0].Kind() == value.KindInt {
		i := args[0].Int()
		if i < 0 {
			i = -i
		}
		return value.Int(i)
	}
	return value.Float(math.Abs(args[0].Float()))
}

func scalarSqrt(args []value.Value, b Binding) value.Value {
	if len(args) != 1 || !args[0].IsNumeric() {
		return wrongArity(b, "SQRT")
	}
	f, _ := args[0].AsFloat()
	if f < 0 {
		return value.Null
	}
	return value.Float(math.Sqrt(f))
}

func scalarMod(args []value.Value, b Binding) value.Value {
	if len(args) != 2 || !args[0].IsNumeric() || !args[1].IsNumeric() {
		return wrongArity(b, "MOD")
	}
	bf, _ := args[1].AsFloat()
	if bf == 0 {
		return value.Null
	}
	af, _ := args[0].AsFloat()
	return value.Float(math.Mod(af, bf))
}

func scalarPower(args []value.Value, b Binding) value.Value {
	if len(args) != 2 || !args[0].IsNumeric() || !args[1].IsNumeric() {
		return wrongArity(b, "POWER")
	}
	af, _ := args[0].AsFloat()
	bf, _ := args[1].AsFloat()
	return value.Float(math.Pow(af, bf))
}

func scalarRound(args []value.Value, b Binding) value.Value {
	if len(args) < 1 || len(args) > 2 || !args[0].IsNumeric() {
		return wrongArity(b, "ROUND")
	}
	n := 0
	if len(args) == 2 {
		if args[1].Kind() != value.KindInt {
			return wrongArity(b, "ROUND")
		}
		n = int(args[1].Int())
	}
	f, _ := args[0].AsFloat()
	mult := math.Pow(10, float64(n))
	rounded := math.Round(f*mult) / mult
	if n == 0 {
		return value.Int(int64(rounded))
	}
	return value.Float(rounded)
}

func scalarFloor(args []value.Value, b Binding) value.Value {
	if len(args) != 1 || !args[0].IsNumeric() {
		return wrongArity(b, "FLOOR")
	}
	f, _ := args[0].AsFloat()
	return value.Int(int64(math.Floor(f)))
}

func scalarCeil(args []value.Value, b Binding) value.Value {
	if len(args) != 1 || !args[0].IsNumeric() {
		return wrongArity(b, "CEIL")
	}
	f, _ := args[0].AsFloat()
	return value.Int(int64(math.Ceil(f)))
}

func scalarUpper(args []value.Value, b Binding) value.Value {
	if len(args) != 1 || args[0].Kind() != value.KindString {
		return wrongArity(b, "UPPER")
	}
	return value.Str(strings.ToUpper(args[0].Str()))
}

func scalarLower(args []value.Value, b Binding) value.Value {
	if len(args) != 1 || args[0].Kind() != value.KindString {
		return wrongArity(b, "LOWER")
	}
	return value.Str(strings.ToLower(args[0].Str()))
}

func scalarLength(args []value.Value, b Binding) value.Value {
	if len(args) != 1 || args[0].Kind() != value.KindString {
		return wrongArity(b, "LENGTH")
	}
	return value.Int(int64(len(args[0].Str())))
}

func scalarLeft(args []value.Value, b Binding) value.Value {
	if len(args) != 2 || args[0].Kind() != value.KindString || args[1].Kind() != value.KindInt {
		return wrongArity(b, "LEFT")
	}
	s := args[0].Str()
	n := int(args[1].Int())
	if n < 0 {
		n = 0
	}
	if n > len(s) {
		n = len(s)
	}
	return value.Str(s[:n])
}

func scalarRight(args []value.Value, b Binding) value.Value {
	if len(args) != 2 || args[0].Kind() != value.KindString || args[1].Kind() != value.KindInt {
		return wrongArity(b, "RIGHT")
	}
	s := args[0].Str()
	n := int(args[1].Int())
	if n < 0 {
		n = 0
	}
	if n > len(s) {
		n = len(s)
	}
	return value.Str(s[len(s)-n:])
}

// scalarMid implements MID(s, start, len?): 1-based start; a missing
// length runs to the end of the string; a start past the end of the
// string yields an empty string (spec §4.6).
func scalarMid(args []value.Value, b Binding) value.Value {
	if len(args) < 2 || len(args) > 3 || args[0].Kind() != value.KindString || args[1].Kind() != value.KindInt {
		return wrongArity(b, "MID")
	}
	s := args[0].Str()
	start := int(args[1].Int())
	if start < 1 {
		start = 1
	}
	if start > len(s) {
		return value.Str("")
	}
	from := start - 1
	to := len(s)
	if len(args) == 3 {
		if args[2].Kind() != value.KindInt {
			return wrongArity(b, "MID")
		}
		l := int(args[2].Int())
		if l < 0 {
			l = 0
		}
		if from+l < to {
			to = from + l
		}
	}
	return value.Str(s[from:to])
}

// scalarConcat implements CONCAT(a, ...): numerics are stringified,
// any NULL argument makes the whole result NULL, result is capped at
// MaxStringLen (spec §4.6).
func scalarConcat(args []value.Value, b Binding) value.Value {
	if len(args) == 0 {
		return wrongArity(b, "CONCAT")
	}
	var sb strings.Builder
	for _, a := range args {
		if a.IsNull() {
			return value.Null
		}
		if a.IsError() {
			return value.Err
		}
		sb.WriteString(a.Repr())
	}
	s := sb.String()
	if len(s) > value.MaxStringLen {
		s = s[:value.MaxStringLen]
	}
	return value.Str(s)
}
