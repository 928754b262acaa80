package topic

import (
	"fmt"
	"slices"

	"github.com/gaurav-prasanna/worldometer/core"
	"github.com/gaurav-prasanna/worldometer/core/extract"
	"github.com/gaurav-prasanna/worldometer/core/materialize"
)

// Rows is the snapshot of a single-table topic.
type Rows[T any] []T

// Clone copies the slice. Row types hold only values, so this is a deep copy.
func (r Rows[T]) Clone() Rows[T] {
	return slices.Clone(r)
}

func (r Rows[T]) Tables() []core.Table {
	return []core.Table{materialize.Table("", []T(r))}
}

// SingleTable builds a Rows snapshot from a one-table topic.
func SingleTable[T any](tables []extract.Table) (Rows[T], error) {
	rows, err := TableAt[T](tables, 0)
	if err != nil {
		return nil, err
	}
	return Rows[T](rows), nil
}

// TableAt materializes the table at position i.
func TableAt[T any](tables []extract.Table, i int) ([]T, error) {
	if i < 0 || i >= len(tables) {
		return nil, fmt.Errorf("table %d of %d not extracted", i, len(tables))
	}
	rows, err := materialize.Rows[T](tables[i])
	if err != nil {
		return nil, fmt.Errorf("table %d: %w", i, err)
	}
	return rows, nil
}

// NewRowsHolder creates a Holder for a single-table topic.
func NewRowsHolder[T any](loader *Loader, src Source) *Holder[Rows[T]] {
	return NewHolder[Rows[T]](loader, src, SingleTable[T])
}
