package normalizer

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/jsontab/jsontab/internal/errors"
	"github.com/jsontab/jsontab/internal/models"
	"github.com/jsontab/jsontab/internal/schema"
)

// DefaultSeparator joins path segments into column names.
const DefaultSeparator = "."

// Normalizer flattens a parsed JSON value into a flat table: one column
// per leaf path, one row per record.
type Normalizer struct {
	// separator joins object keys and array indices into leaf paths
	separator string
	// columns records leaf paths in first-appearance order across all records
	columns *schema.Registry
	// rows accumulates one row per record, in record order
	rows []models.Row
}

// NewNormalizer creates a Normalizer with the default "." separator.
func NewNormalizer() *Normalizer {
	return NewNormalizerWithSeparator(DefaultSeparator)
}

// NewNormalizerWithSeparator creates a Normalizer joining path segments
// with the given separator.
func NewNormalizerWithSeparator(separator string) *Normalizer {
	if separator == "" {
		separator = DefaultSeparator
	}
	return &Normalizer{
		separator: separator,
		columns:   schema.NewRegistry(),
		rows:      make([]models.Row, 0),
	}
}

// Normalize converts a top-level JSON value into a Table.
//
// The value must be an object (one record) or an array of objects (one
// record per element, in order). Each record is walked depth-first:
// nested object keys and array indices join into dot-separated leaf
// paths, and every leaf scalar becomes the cell at its path. Arrays
// expand into additional columns (a.0, a.1, ...), never into additional
// rows. The column order is the first-appearance order of leaf paths
// across the whole record sequence; records missing a path read as null
// in that column. Empty objects and arrays contribute no columns. When
// two leaves join to the same path, the later one wins the cell while
// the column keeps its first-discovered position.
//
// The transform is pure: identical input yields an identical table.
func (n *Normalizer) Normalize(root models.Value) (*models.Table, error) {
	n.reset()

	records, err := n.records(root)
	if err != nil {
		return nil, err
	}

	for _, record := range records {
		row := make(models.Row)
		if err := n.flattenValue(record, "", row); err != nil {
			return nil, err
		}
		n.rows = append(n.rows, row)
	}

	return &models.Table{Columns: n.columns.Columns(), Rows: n.rows}, nil
}

// reset clears per-run state so a Normalizer can be reused.
func (n *Normalizer) reset() {
	n.columns = schema.NewRegistry()
	n.rows = make([]models.Row, 0)
}

// records turns the top-level value into the ordered record sequence,
// rejecting shapes that cannot form a table.
func (n *Normalizer) records(root models.Value) ([]models.Object, error) {
	switch v := root.(type) {
	case models.Object:
		return []models.Object{v}, nil
	case models.Array:
		records := make([]models.Object, len(v))
		for i, element := range v {
			obj, ok := element.(models.Object)
			if !ok {
				return nil, errors.NewShapeError(
					fmt.Sprintf("array element %d is %s, expected an object", i, kindName(element)),
					errors.ErrInvalidRecordShape,
				)
			}
			records[i] = obj
		}
		return records, nil
	default:
		return nil, errors.NewShapeError(
			fmt.Sprintf("top-level JSON value is %s, expected an object or an array of objects", kindName(root)),
			errors.ErrUnsupportedTopLevelShape,
		)
	}
}

// flattenValue walks one value depth-first, writing leaf cells into row
// at their joined paths.
func (n *Normalizer) flattenValue(value models.Value, path string, row models.Row) error {
	switch v := value.(type) {
	case models.Object:
		for _, member := range v {
			if err := n.flattenValue(member.Value, n.extend(path, member.Key), row); err != nil {
				return err
			}
		}
	case models.Array:
		for i, element := range v {
			if err := n.flattenValue(element, n.extend(path, strconv.Itoa(i)), row); err != nil {
				return err
			}
		}
	case nil:
		n.setCell(row, path, models.Cell{Kind: models.NullCell})
	case bool:
		n.setCell(row, path, models.Cell{Kind: models.BoolCell, Bool: v})
	case json.Number:
		n.setCell(row, path, models.Cell{Kind: models.NumberCell, Number: v})
	case string:
		n.setCell(row, path, models.Cell{Kind: models.StringCell, String: v})
	default:
		return fmt.Errorf("unexpected json value type: %T", value)
	}
	return nil
}

// setCell registers the column on first sight and writes the cell.
func (n *Normalizer) setCell(row models.Row, path string, cell models.Cell) {
	n.columns.Add(path)
	row[path] = cell
}

// extend joins a path prefix with the next segment.
func (n *Normalizer) extend(prefix, segment string) string {
	if prefix == "" {
		return segment
	}
	return prefix + n.separator + segment
}

// kindName names a JSON value kind for error messages.
func kindName(value models.Value) string {
	switch value.(type) {
	case nil:
		return "null"
	case bool:
		return "a boolean"
	case json.Number:
		return "a number"
	case string:
		return "a string"
	case models.Object:
		return "an object"
	case models.Array:
		return "an array"
	default:
		return fmt.Sprintf("%T", value)
	}
}
