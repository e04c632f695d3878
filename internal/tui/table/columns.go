// Package table is the row-selection and expansion table every catalog view
// is built on. It adapts a grid.Instance to Bubble Tea, owns the selection
// store of one mounted table, and resolves how each column is rendered.
package table

import (
	"github.com/hay-kot/tvconsole/internal/core/grid"
)

// Built-in column ids.
const (
	SelectColumnID = "select"
	ExpandColumnID = "expand"
)

const (
	selectColumnWidth = 3
	expandColumnWidth = 1
)

// SelectColumn returns the checkbox column. Its header selects or clears
// every row and its cells toggle their row.
func SelectColumn[T any]() grid.Column[T] {
	return grid.Column[T]{
		ID:    SelectColumnID,
		Width: selectColumnWidth,
	}
}

// ExpandColumn returns the disclosure column that expands a row in place.
func ExpandColumn[T any]() grid.Column[T] {
	return grid.Column[T]{
		ID:    ExpandColumnID,
		Width: expandColumnWidth,
	}
}
