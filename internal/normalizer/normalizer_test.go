package normalizer

import (
	"encoding/json"
	"testing"

	stderrors "errors"

	"github.com/jsontab/jsontab/internal/errors"
	"github.com/jsontab/jsontab/internal/models"
	"github.com/jsontab/jsontab/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nullCell() models.Cell {
	return models.Cell{Kind: models.NullCell}
}

func boolCell(v bool) models.Cell {
	return models.Cell{Kind: models.BoolCell, Bool: v}
}

func numberCell(literal string) models.Cell {
	return models.Cell{Kind: models.NumberCell, Number: json.Number(literal)}
}

func stringCell(v string) models.Cell {
	return models.Cell{Kind: models.StringCell, String: v}
}

func normalizeString(t *testing.T, jsonInput string) (*models.Table, error) {
	t.Helper()
	root, err := parser.ParseString(jsonInput)
	require.NoError(t, err, "test input must be valid JSON")
	return NewNormalizer().Normalize(root)
}

func TestNormalize_SimpleObject(t *testing.T) {
	jsonInput := `{"name": "John Doe", "age": 30, "is_student": false, "nickname": null}`
	table, err := normalizeString(t, jsonInput)
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "age", "is_student", "nickname"}, table.Columns)
	require.Len(t, table.Rows, 1, "a top-level object is exactly one record")

	expectedRow := models.Row{
		"name":       stringCell("John Doe"),
		"age":        numberCell("30"),
		"is_student": boolCell(false),
		"nickname":   nullCell(),
	}
	assert.Equal(t, expectedRow, table.Rows[0])
}

func TestNormalize_NestedObject(t *testing.T) {
	jsonInput := `{
		"user_id": 123,
		"profile": {
			"full_name": "John Doe",
			"address": {
				"street": "123 Main St",
				"city": "Anytown"
			}
		},
		"active": true
	}`
	table, err := normalizeString(t, jsonInput)
	require.NoError(t, err)

	expectedColumns := []string{
		"user_id",
		"profile.full_name",
		"profile.address.street",
		"profile.address.city",
		"active",
	}
	assert.Equal(t, expectedColumns, table.Columns)

	require.Len(t, table.Rows, 1)
	assert.Equal(t, stringCell("Anytown"), table.Rows[0]["profile.address.city"])
	assert.Equal(t, numberCell("123"), table.Rows[0]["user_id"])
}

func TestNormalize_ArrayOfObjects(t *testing.T) {
	jsonInput := `[{"item_id": 1, "item_name": "Apple"}, {"item_id": 2, "item_name": "Banana"}]`
	table, err := normalizeString(t, jsonInput)
	require.NoError(t, err)

	assert.Equal(t, []string{"item_id", "item_name"}, table.Columns)
	require.Len(t, table.Rows, 2, "each array element is one record")

	// Row order follows record order.
	assert.Equal(t, stringCell("Apple"), table.Rows[0]["item_name"])
	assert.Equal(t, stringCell("Banana"), table.Rows[1]["item_name"])
	assert.Equal(t, numberCell("1"), table.Rows[0]["item_id"])
	assert.Equal(t, numberCell("2"), table.Rows[1]["item_id"])
}

func TestNormalize_ArraysBecomeColumns(t *testing.T) {
	// Arrays inside a record widen the table; they never add rows.
	jsonInput := `{"tags": ["go", "json"], "matrix": [[1, 2], [3]]}`
	table, err := normalizeString(t, jsonInput)
	require.NoError(t, err)

	expectedColumns := []string{"tags.0", "tags.1", "matrix.0.0", "matrix.0.1", "matrix.1.0"}
	assert.Equal(t, expectedColumns, table.Columns)

	require.Len(t, table.Rows, 1)
	expectedRow := models.Row{
		"tags.0":     stringCell("go"),
		"tags.1":     stringCell("json"),
		"matrix.0.0": numberCell("1"),
		"matrix.0.1": numberCell("2"),
		"matrix.1.0": numberCell("3"),
	}
	assert.Equal(t, expectedRow, table.Rows[0])
}

func TestNormalize_ObjectsInsideArrays(t *testing.T) {
	jsonInput := `{"orders": [{"sku": "A-1", "qty": 2}, {"sku": "B-9"}]}`
	table, err := normalizeString(t, jsonInput)
	require.NoError(t, err)

	assert.Equal(t, []string{"orders.0.sku", "orders.0.qty", "orders.1.sku"}, table.Columns)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, stringCell("B-9"), table.Rows[0]["orders.1.sku"])
}

func TestNormalize_ColumnOrderFirstAppearance(t *testing.T) {
	// Later records contribute their new columns at the end; columns the
	// earlier records introduced keep their positions.
	jsonInput := `[
		{"a": 1, "b": 2},
		{"c": 3, "a": 4},
		{"b": 5, "d": 6}
	]`
	table, err := normalizeString(t, jsonInput)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c", "d"}, table.Columns)
	require.Len(t, table.Rows, 3)
}

func TestNormalize_MissingPathsReadAsNull(t *testing.T) {
	jsonInput := `[{"a": 1, "b": null}, {"a": 2}]`
	table, err := normalizeString(t, jsonInput)
	require.NoError(t, err)

	require.Len(t, table.Rows, 2)

	// Explicit null is stored in the row; a missing path is not. Both
	// read back as a null cell through CellAt.
	_, hasExplicit := table.Rows[0]["b"]
	assert.True(t, hasExplicit, "explicit null should occupy the row")
	_, hasMissing := table.Rows[1]["b"]
	assert.False(t, hasMissing, "missing path should not occupy the row")

	assert.Equal(t, nullCell(), table.CellAt(0, "b"))
	assert.Equal(t, nullCell(), table.CellAt(1, "b"))
}

func TestNormalize_EmptyContainersContributeNothing(t *testing.T) {
	jsonInput := `{"a": {}, "b": [], "c": 1}`
	table, err := normalizeString(t, jsonInput)
	require.NoError(t, err)

	assert.Equal(t, []string{"c"}, table.Columns)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, models.Row{"c": numberCell("1")}, table.Rows[0])
}

func TestNormalize_EmptyObject(t *testing.T) {
	table, err := normalizeString(t, `{}`)
	require.NoError(t, err)

	assert.Empty(t, table.Columns)
	require.Len(t, table.Rows, 1, "an empty object is still one record")
	assert.Empty(t, table.Rows[0])
}

func TestNormalize_EmptyArray(t *testing.T) {
	table, err := normalizeString(t, `[]`)
	require.NoError(t, err)

	assert.Empty(t, table.Columns)
	assert.Empty(t, table.Rows, "an empty array has no records and no columns")
}

func TestNormalize_CollidingPathsLaterWins(t *testing.T) {
	// The literal key "a.b" joins to the same path as the nested b under
	// a. The column keeps its first-discovered position; the later leaf
	// wins the cell.
	jsonInput := `{"a": {"b": 1}, "a.b": 2, "z": 3}`
	table, err := normalizeString(t, jsonInput)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.b", "z"}, table.Columns)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, numberCell("2"), table.Rows[0]["a.b"])
}

func TestNormalize_DuplicateObjectKeysLaterWins(t *testing.T) {
	jsonInput := `{"x": 1, "x": 2}`
	table, err := normalizeString(t, jsonInput)
	require.NoError(t, err)

	assert.Equal(t, []string{"x"}, table.Columns)
	assert.Equal(t, numberCell("2"), table.Rows[0]["x"])
}

func TestNormalize_NumberLiteralsPreserved(t *testing.T) {
	jsonInput := `{"price": 12.90, "count": 1e3, "big": 12345678901234567890}`
	table, err := normalizeString(t, jsonInput)
	require.NoError(t, err)

	assert.Equal(t, numberCell("12.90"), table.Rows[0]["price"])
	assert.Equal(t, numberCell("1e3"), table.Rows[0]["count"])
	assert.Equal(t, numberCell("12345678901234567890"), table.Rows[0]["big"])
}

func TestNormalize_Deterministic(t *testing.T) {
	jsonInput := `[{"b": 1, "a": [true, null]}, {"c": {"d": "x"}}]`
	root, err := parser.ParseString(jsonInput)
	require.NoError(t, err)

	first, err := NewNormalizer().Normalize(root)
	require.NoError(t, err)
	second, err := NewNormalizer().Normalize(root)
	require.NoError(t, err)

	assert.Equal(t, first, second, "identical input must produce an identical table")
}

func TestNormalize_ReuseResetsState(t *testing.T) {
	n := NewNormalizer()

	root1, err := parser.ParseString(`{"a": 1}`)
	require.NoError(t, err)
	_, err = n.Normalize(root1)
	require.NoError(t, err)

	root2, err := parser.ParseString(`{"b": 2}`)
	require.NoError(t, err)
	table, err := n.Normalize(root2)
	require.NoError(t, err)

	assert.Equal(t, []string{"b"}, table.Columns, "columns from the previous run must not leak")
	require.Len(t, table.Rows, 1)
}

func TestNormalize_CustomSeparator(t *testing.T) {
	root, err := parser.ParseString(`{"a": {"b": [1]}}`)
	require.NoError(t, err)

	table, err := NewNormalizerWithSeparator("/").Normalize(root)
	require.NoError(t, err)

	assert.Equal(t, []string{"a/b/0"}, table.Columns)
}

func TestNewNormalizerWithSeparator_EmptyFallsBack(t *testing.T) {
	root, err := parser.ParseString(`{"a": {"b": 1}}`)
	require.NoError(t, err)

	table, err := NewNormalizerWithSeparator("").Normalize(root)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.b"}, table.Columns)
}

func TestNormalize_UnsupportedTopLevelShapes(t *testing.T) {
	tests := []struct {
		name      string
		jsonInput string
	}{
		{"string root", `"hello"`},
		{"number root", `42`},
		{"boolean root", `true`},
		{"null root", `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := normalizeString(t, tt.jsonInput)
			require.Error(t, err)
			assert.True(t, stderrors.Is(err, errors.ErrUnsupportedTopLevelShape))
			assert.Equal(t, errors.ErrorTypeShape, errors.TypeOf(err))
			assert.Contains(t, err.Error(), "expected an object or an array of objects")
		})
	}
}

func TestNormalize_InvalidRecordShapes(t *testing.T) {
	tests := []struct {
		name            string
		jsonInput       string
		expectedMessage string
	}{
		{
			name:            "scalar element",
			jsonInput:       `[{"a": 1}, 2]`,
			expectedMessage: "array element 1 is a number, expected an object",
		},
		{
			name:            "string element",
			jsonInput:       `["x"]`,
			expectedMessage: "array element 0 is a string, expected an object",
		},
		{
			name:            "null element",
			jsonInput:       `[{"a": 1}, null]`,
			expectedMessage: "array element 1 is null, expected an object",
		},
		{
			name:            "nested array element",
			jsonInput:       `[[{"a": 1}]]`,
			expectedMessage: "array element 0 is an array, expected an object",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := normalizeString(t, tt.jsonInput)
			require.Error(t, err)
			assert.True(t, stderrors.Is(err, errors.ErrInvalidRecordShape))
			assert.Equal(t, errors.ErrorTypeShape, errors.TypeOf(err))
			assert.Contains(t, err.Error(), tt.expectedMessage)
		})
	}
}

func TestTable_CellAt(t *testing.T) {
	table, err := normalizeString(t, `[{"a": 1}]`)
	require.NoError(t, err)

	assert.Equal(t, numberCell("1"), table.CellAt(0, "a"))
	assert.Equal(t, nullCell(), table.CellAt(0, "never-seen"))
}
