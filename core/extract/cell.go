package extract

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	intPattern       = regexp.MustCompile(`^[+-]?\d+$`)
	floatPattern     = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)
	thousandsPattern = regexp.MustCompile(`^[+-]?\d{1,3}(,\d{3})+(\.\d+)?$`)
)

// InferValue converts cell text into int64, float64 or string. Thousands
// separators are accepted in numbers ("1,234" is 1234). Anything that is not
// a plain number, including percentages and empty cells, stays a string.
func InferValue(text string) any {
	s := strings.TrimSpace(text)
	if thousandsPattern.MatchString(s) {
		s = strings.ReplaceAll(s, ",", "")
	}
	if intPattern.MatchString(s) {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i
		}
	}
	if floatPattern.MatchString(s) {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return strings.TrimSpace(text)
}

// Cell holds an inferred cell value without committing to a Go type. It is
// the field type for columns whose upstream type is not stable, such as a
// numeric column that sometimes reads "N.A.".
type Cell struct {
	v any
}

// NewCell wraps an int64, float64 or string. Other values are stored as
// their string form.
func NewCell(v any) Cell {
	switch x := v.(type) {
	case int64, float64, string:
		return Cell{v: x}
	case int:
		return Cell{v: int64(x)}
	case nil:
		return Cell{}
	default:
		return Cell{v: fmt.Sprint(x)}
	}
}

// Value returns the wrapped int64, float64 or string, or nil for the zero Cell.
func (c Cell) Value() any {
	return c.v
}

// Int64 returns the value when it is an integer.
func (c Cell) Int64() (int64, bool) {
	i, ok := c.v.(int64)
	return i, ok
}

// Float64 returns the value when it is numeric.
func (c Cell) Float64() (float64, bool) {
	switch x := c.v.(type) {
	case int64:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}

// IsNumber reports whether the cell holds an int64 or float64.
func (c Cell) IsNumber() bool {
	_, ok := c.Float64()
	return ok
}

func (c Cell) String() string {
	switch x := c.v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

func (c Cell) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.v)
}

func (c *Cell) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = Cell{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		c.v = s
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		c.v = InferValue(n.String())
		return nil
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*c = NewCell(v)
	return nil
}
