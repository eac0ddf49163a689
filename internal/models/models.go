package models

import "encoding/json"

// Value is a generic type to represent any decoded JSON value.
// This can be a string, json.Number, bool, nil, Object, or Array.
type Value interface{}

// Member is a single key/value pair within an Object.
type Member struct {
	Key   string
	Value Value
}

// Object represents a JSON object as an ordered sequence of members.
// Document order is preserved, including duplicate keys; consumers that
// need one value per key resolve duplicates by position (later wins).
type Object []Member

// Array represents a JSON array, which is a slice of Values.
type Array []Value

// CellKind discriminates the scalar kinds a table cell can hold.
type CellKind int

const (
	NullCell CellKind = iota
	BoolCell
	NumberCell
	StringCell
)

// Cell is a single scalar table value: null, boolean, number, or string.
// Numbers carry the exact literal they had in the source document so no
// precision is lost between input and output.
type Cell struct {
	Kind   CellKind
	Bool   bool
	Number json.Number
	String string
}

// Row holds the flattened cells of one record, keyed by column name.
// A column with no entry reads as a null cell.
type Row map[string]Cell

// Table is the normalized output: an ordered sequence of unique column
// names plus one row per input record, in record order. It is handed to
// the output sink immediately after construction and never mutated.
type Table struct {
	Columns []string
	Rows    []Row
}

// CellAt returns the cell at (row, column). Columns the row never set
// read as null, so every row spans the full column set.
func (t *Table) CellAt(row int, column string) Cell {
	if cell, ok := t.Rows[row][column]; ok {
		return cell
	}
	return Cell{Kind: NullCell}
}
