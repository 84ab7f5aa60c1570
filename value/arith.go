package value

// Arith implements spec §4.5 value-mode arithmetic: if both operands
// are INT the result is INT; if either is FLOAT the result is FLOAT;
// any NULL operand propagates to NULL; division by zero is ERROR;
// modulus is only defined for INT operands (ERROR otherwise).
func Arith(op string, a, b Value) Value {
	if a.IsNull() || b.IsNull() {
		return Null
	}
	if a.IsError() || b.IsError() {
		return Err
	}
	if !a.IsNumeric() || !b.IsNumeric() {
		return Err
	}

	bothInt := a.kind == KindInt && b.kind == KindInt

	switch op {
	case "+":
		if bothInt {
			return Int(a.i + b.i)
		}
		af, _ := a.AsFloat()
		bf, _ := b.AsFloat()
		return Float(af + bf)
	case "-":
		if bothInt {
			return Int(a.i - b.i)
		}
		af, _ := a.AsFloat()
		bf, _ := b.AsFloat()
		return Float(af - bf)
	case "*":
		if bothInt {
			return Int(a.i * b.i)
		}
		af, _ := a.AsFloat()
		bf, _ := b.AsFloat()
		return Float(af * bf)
	case "/":
		if bothInt {
			if b.i == 0 {
				return Err
			}
			return Int(a.i / b.i)
		}
		af, _ := a.AsFloat()
		bf, _ := b.AsFloat()
		if bf == 0 {
			return Err
		}
		return Float(af / bf)
	case "%":
		if !bothInt {
			return Err
		}
		if b.i == 0 {
			return Err
		}
		return Int(a.i % b.i)
	default:
		return Err
	}
}
