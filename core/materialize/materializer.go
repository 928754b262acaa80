// Package materialize maps extracted records onto typed Go structs.
// It:
//  1. Derives the declared field names of a struct type from `col` tags
//  2. Requires every record to carry exactly those names
//  3. Assigns cell values with numeric coercion between compatible kinds
//  4. Flattens typed rows back into columns for rendering
//
// Fields without a tag use the snake_case form of the Go field name;
// `col:"-"` excludes a field.
package materialize

import (
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/gaurav-prasanna/worldometer/core"
	"github.com/gaurav-prasanna/worldometer/core/extract"
)

const tagName = "col"

var cellType = reflect.TypeFor[extract.Cell]()

type field struct {
	name  string
	index []int
}

type plan struct {
	typeName string
	fields   []field
	names    map[string]int
}

var plans sync.Map // reflect.Type -> *plan

func planFor(t reflect.Type) (*plan, error) {
	if p, ok := plans.Load(t); ok {
		return p.(*plan), nil
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("materialize: %s is not a struct type", t)
	}

	p := &plan{typeName: t.String(), names: map[string]int{}}
	for _, sf := range reflect.VisibleFields(t) {
		if !sf.IsExported() || sf.Anonymous {
			continue
		}
		name := sf.Tag.Get(tagName)
		if name == "-" {
			continue
		}
		if name == "" {
			name = snakeCase(sf.Name)
		}
		if _, dup := p.names[name]; dup {
			return nil, fmt.Errorf("materialize: %s declares column %q twice", t, name)
		}
		p.names[name] = len(p.fields)
		p.fields = append(p.fields, field{name: name, index: sf.Index})
	}

	actual, _ := plans.LoadOrStore(t, p)
	return actual.(*plan), nil
}

// Rows converts every record of table into a T, stopping at the first
// record that does not fit.
func Rows[T any](table extract.Table) ([]T, error) {
	p, err := planFor(reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(table.Records))
	for i, rec := range table.Records {
		var row T
		if err := p.decode(reflect.ValueOf(&row).Elem(), rec, i); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}

// Row converts a single record into a T.
func Row[T any](rec extract.Record) (T, error) {
	var row T
	p, err := planFor(reflect.TypeFor[T]())
	if err != nil {
		return row, err
	}
	if err := p.decode(reflect.ValueOf(&row).Elem(), rec, 0); err != nil {
		return row, err
	}
	return row, nil
}

// Columns returns the declared field names of T in declaration order.
func Columns[T any]() []string {
	p, err := planFor(reflect.TypeFor[T]())
	if err != nil {
		return nil
	}
	names := make([]string, len(p.fields))
	for i, f := range p.fields {
		names[i] = f.name
	}
	return names
}

// Values returns the field values of row in Columns order. Cell fields are
// unwrapped to their int64, float64 or string value.
func Values[T any](row T) []any {
	v := reflect.ValueOf(row)
	p, err := planFor(v.Type())
	if err != nil {
		return nil
	}
	out := make([]any, len(p.fields))
	for i, f := range p.fields {
		fv := v.FieldByIndex(f.index)
		if fv.Type() == cellType {
			out[i] = fv.Interface().(extract.Cell).Value()
			continue
		}
		out[i] = fv.Interface()
	}
	return out
}

// Table flattens typed rows into a named document table.
func Table[T any](name string, rows []T) core.Table {
	out := core.Table{Name: name, Columns: Columns[T](), Rows: make([][]any, 0, len(rows))}
	for _, row := range rows {
		out.Rows = append(out.Rows, Values(row))
	}
	return out
}

func (p *plan) decode(dst reflect.Value, rec extract.Record, row int) error {
	if err := p.checkNames(rec, row); err != nil {
		return err
	}
	for _, f := range p.fields {
		value := rec[f.name]
		if !assign(dst.FieldByIndex(f.index), value) {
			return &FieldTypeError{
				Type:  p.typeName,
				Row:   row,
				Field: f.name,
				Value: value,
				Want:  dst.FieldByIndex(f.index).Type().String(),
			}
		}
	}
	return nil
}

func (p *plan) checkNames(rec extract.Record, row int) error {
	var missing, unexpected []string
	for _, f := range p.fields {
		if _, ok := rec[f.name]; !ok {
			missing = append(missing, f.name)
		}
	}
	for name := range rec {
		if _, ok := p.names[name]; !ok {
			unexpected = append(unexpected, name)
		}
	}
	if len(missing) == 0 && len(unexpected) == 0 {
		return nil
	}
	slices.Sort(missing)
	slices.Sort(unexpected)
	return &FieldMismatchError{Type: p.typeName, Row: row, Missing: missing, Unexpected: unexpected}
}

// assign stores v into dst, reporting false when the kinds are incompatible.
func assign(dst reflect.Value, v any) bool {
	if dst.Type() == cellType {
		dst.Set(reflect.ValueOf(extract.NewCell(v)))
		return true
	}

	switch dst.Kind() {
	case reflect.String:
		switch x := v.(type) {
		case string:
			dst.SetString(x)
		case int64:
			dst.SetString(strconv.FormatInt(x, 10))
		case float64:
			dst.SetString(strconv.FormatFloat(x, 'f', -1, 64))
		default:
			return false
		}
		return true

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, ok := integral(v)
		if !ok || dst.OverflowInt(i) {
			return false
		}
		dst.SetInt(i)
		return true

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		i, ok := integral(v)
		if !ok || i < 0 || dst.OverflowUint(uint64(i)) {
			return false
		}
		dst.SetUint(uint64(i))
		return true

	case reflect.Float32, reflect.Float64:
		switch x := v.(type) {
		case int64:
			dst.SetFloat(float64(x))
		case float64:
			dst.SetFloat(x)
		default:
			return false
		}
		return true

	case reflect.Interface:
		if v == nil {
			dst.SetZero()
			return true
		}
		rv := reflect.ValueOf(v)
		if !rv.Type().AssignableTo(dst.Type()) {
			return false
		}
		dst.Set(rv)
		return true
	}
	return false
}

func integral(v any) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case float64:
		if x != math.Trunc(x) || x < math.MinInt64 || x >= math.MaxInt64 {
			return 0, false
		}
		return int64(x), true
	}
	return 0, false
}

// snakeCase turns a Go field name into its column name:
// YearlyChangePercent -> yearly_change_percent, ISOCode -> iso_code.
func snakeCase(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
