package counters

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// LastValueKey is the sub-record field holding the most recent reading.
const LastValueKey = "last_value"

// RawObject is the live counter object as evaluated in the page:
// metric key -> sub-record with several fields, one of which is last_value.
type RawObject map[string]map[string]any

// Sanitized maps every metric key to its last observed reading.
type Sanitized map[string]Value

// DecodeRaw decodes the JSON result of evaluating the counter script.
// Numbers are kept as json.Number so integers survive unchanged.
func DecodeRaw(data []byte) (RawObject, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw RawObject
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding counter object: %w", err)
	}
	if raw == nil {
		raw = RawObject{}
	}
	return raw, nil
}

// Sanitize reduces each sub-record to its last_value. Every input key is
// kept. A missing last_value and a falsy one (0, 0.0, "", false, null, empty
// collection) both become an absent Value, so a real zero reading cannot be
// told apart from no reading.
func Sanitize(raw RawObject) Sanitized {
	out := make(Sanitized, len(raw))
	for key, sub := range raw {
		out[key] = valueOf(sub[LastValueKey])
	}
	return out
}

// Get looks up a key; unknown keys read as absent.
func (s Sanitized) Get(key string) Value {
	return s[key]
}

// Keys returns the metric keys in sorted order.
func (s Sanitized) Keys() []string {
	return slices.Sorted(maps.Keys(s))
}

// Clone returns an independent copy.
func (s Sanitized) Clone() Sanitized {
	if s == nil {
		return nil
	}
	return maps.Clone(s)
}

func valueOf(v any) Value {
	switch x := v.(type) {
	case nil:
		return Value{}
	case bool:
		if x {
			return Int(1)
		}
		return Value{}
	case json.Number:
		return truthy(parseNumber(x.String()))
	case string:
		return truthy(parseNumber(strings.TrimSpace(x)))
	case float32:
		return truthy(Float(float64(x)), true)
	case float64:
		return truthy(Float(x), true)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return truthy(Int(rv.Int()), true)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return truthy(Float(float64(u)), true)
		}
		return truthy(Int(int64(u)), true)
	}
	// Collections and other non-numeric values carry no reading.
	return Value{}
}

func truthy(v Value, ok bool) Value {
	if !ok {
		return Value{}
	}
	if v.kind == kindInt && v.i == 0 {
		return Value{}
	}
	if v.kind == kindFloat && v.f == 0 {
		return Value{}
	}
	return v
}

func parseNumber(s string) (Value, bool) {
	if s == "" {
		return Value{}, false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int(i), true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Float(f), true
	}
	return Value{}, false
}
