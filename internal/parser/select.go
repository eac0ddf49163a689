package parser

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/jsontab/jsontab/internal/errors"
)

// SelectPath extracts the raw subtree at a gjson dot-notation path (for
// example "data.items") from a JSON document. Callers validate the full
// document first, so a miss here means the document genuinely lacks the
// configured record path.
func SelectPath(data []byte, path string) ([]byte, error) {
	result := gjson.GetBytes(data, path)
	if !result.Exists() {
		return nil, errors.NewShapeError(
			fmt.Sprintf("record path %q not found in input", path),
			errors.ErrRecordPathNotFound,
		)
	}
	return []byte(result.Raw), nil
}
