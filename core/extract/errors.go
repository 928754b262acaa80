package extract

import (
	"errors"
	"fmt"
)

// Parser error kinds. Use errors.Is to discriminate; the concrete error
// carries the detail.
var (
	// ErrHTMLTablesNotFound means the document holds no table matching the
	// filter although at least one table was expected.
	ErrHTMLTablesNotFound = errors.New("no HTML tables found")
	// ErrColumnNamesLengthMismatch means either the number of tables or the
	// number of columns of one table differs from the supplied schemas.
	ErrColumnNamesLengthMismatch = errors.New("column names length mismatch")
)

// TableCountPosition is the Position reported when the number of tables,
// rather than the columns of a single table, did not match.
const TableCountPosition = -1

// ColumnCountError reports a shape mismatch between the document and the
// expected schemas.
type ColumnCountError struct {
	// Position is the 0-based table index in document order, or
	// TableCountPosition for a table-count mismatch.
	Position int
	Expected int
	Actual   int
}

func (e *ColumnCountError) Error() string {
	if e.Position == TableCountPosition {
		return fmt.Sprintf("%s: found %d tables, expected %d", ErrColumnNamesLengthMismatch, e.Actual, e.Expected)
	}
	return fmt.Sprintf("%s: table %d has %d columns, expected %d", ErrColumnNamesLengthMismatch, e.Position, e.Actual, e.Expected)
}

func (e *ColumnCountError) Is(target error) bool {
	return target == ErrColumnNamesLengthMismatch
}

// TablesNotFoundError reports which filter matched nothing.
type TablesNotFoundError struct {
	Selector string
	Expected int
}

func (e *TablesNotFoundError) Error() string {
	return fmt.Sprintf("%s: selector %q matched nothing, expected %d tables", ErrHTMLTablesNotFound, e.Selector, e.Expected)
}

func (e *TablesNotFoundError) Is(target error) bool {
	return target == ErrHTMLTablesNotFound
}
