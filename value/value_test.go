package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRepr(t *testing.T) {
	assert.Equal(t, "NULL", Null.Repr())
	assert.Equal(t, "ERROR", Err.Repr())
	assert.Equal(t, "3", Int(3).Repr())
	assert.Equal(t, "15", Float(15).Repr())
	assert.Equal(t, "1.5", Float(1.5).Repr())
	assert.Equal(t, "Alice", Str("Alice").Repr())
	assert.Equal(t, "2024-01-02", DateOf(Date{2024, 1, 2}).Repr())
	assert.Equal(t, "08:09:10", TimeOf(Time{8, 9, 10}).Repr())
}

func TestReprAggregate(t *testing.T) {
	assert.Equal(t, "15.00", Float(15).ReprAggregate())
	assert.Equal(t, "10", Int(10).ReprAggregate())
}

func TestArith(t *testing.T) {
	assert.Equal(t, Int(3), Arith("+", Int(1), Int(2)))
	assert.Equal(t, Int(1), Arith("/", Int(3), Int(2)))
	assert.Equal(t, Float(1.5), Arith("/", Float(3), Int(2)))
	assert.Equal(t, Int(1), Arith("%", Int(5), Int(2)))
	assert.True(t, Arith("/", Int(1), Int(0)).IsError())
	assert.True(t, Arith("+", Null, Int(1)).IsNull())
	assert.True(t, Arith("%", Float(1), Int(2)).IsError())
}

func TestConvert(t *testing.T) {
	assert.Equal(t, Float(3), Convert(Int(3), TypeFloat))
	assert.Equal(t, Int(3), Convert(Float(3.9), TypeInt))
	v, ok := TryConvert(Str("abc"), TypeInt)
	assert.False(t, ok)
	assert.True(t, v.IsError())
	v, ok = TryConvert(Str("42"), TypeInt)
	assert.True(t, ok)
	assert.Equal(t, Int(42), v)
}

func TestCompare(t *testing.T) {
	assert.Equal(t, Less, Compare(Int(1), Int(2)))
	assert.Equal(t, Equal, Compare(Int(2), Float(2)))
	assert.Equal(t, Unordered, Compare(Null, Int(1)))
	assert.False(t, Equals(Null, Null))
	assert.True(t, Equals(Str("a"), Str("a")))
}
