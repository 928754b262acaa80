// Package counters normalizes the live counter object published by the
// statistics site into plain numeric readings.
package counters

import (
	"encoding/json"
	"strconv"
)

type kind uint8

const (
	kindAbsent kind = iota
	kindInt
	kindFloat
)

// Value is a single counter reading: an integer, a float, or absent.
// The zero Value is absent.
type Value struct {
	kind kind
	i    int64
	f    float64
}

// Int returns an integer reading.
func Int(v int64) Value {
	return Value{kind: kindInt, i: v}
}

// Float returns a floating point reading.
func Float(v float64) Value {
	return Value{kind: kindFloat, f: v}
}

// Absent returns a missing reading.
func Absent() Value {
	return Value{}
}

// Valid reports whether the reading is present.
func (v Value) Valid() bool {
	return v.kind != kindAbsent
}

// IsFloat reports whether the reading was a floating point number.
func (v Value) IsFloat() bool {
	return v.kind == kindFloat
}

// Int64 returns the reading truncated to an integer. Absent readings are 0.
func (v Value) Int64() int64 {
	if v.kind == kindFloat {
		return int64(v.f)
	}
	return v.i
}

// Float64 returns the reading as a float. Absent readings are 0.
func (v Value) Float64() float64 {
	if v.kind == kindInt {
		return float64(v.i)
	}
	return v.f
}

// Any returns int64, float64 or nil.
func (v Value) Any() any {
	switch v.kind {
	case kindInt:
		return v.i
	case kindFloat:
		return v.f
	default:
		return nil
	}
}

func (v Value) String() string {
	switch v.kind {
	case kindInt:
		return strconv.FormatInt(v.i, 10)
	case kindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	default:
		return "None"
	}
}

// MarshalJSON encodes absent readings as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case kindInt:
		return []byte(strconv.FormatInt(v.i, 10)), nil
	case kindFloat:
		return json.Marshal(v.f)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts null, integers and floats.
func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = Value{}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	parsed, ok := parseNumber(n.String())
	if !ok {
		return &strconv.NumError{Func: "UnmarshalJSON", Num: n.String(), Err: strconv.ErrSyntax}
	}
	*v = parsed
	return nil
}
