package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	stderrors "errors" // Standard errors package

	"github.com/jsontab/jsontab/internal/errors" // Custom errors package
	"github.com/jsontab/jsontab/internal/models"
)

// Parse decodes exactly one JSON document from an io.Reader into a
// models.Value tree. Decoding walks the token stream rather than
// unmarshalling into maps so that object member order survives; column
// ordering downstream depends on it. Numbers are kept as json.Number.
func Parse(reader io.Reader) (models.Value, error) {
	decoder := json.NewDecoder(reader)
	decoder.UseNumber() // Ensure numbers keep their source literal

	token, err := decoder.Token()
	if err != nil {
		if stderrors.Is(err, io.EOF) { // io.EOF before any token means empty input
			return nil, errors.NewInputError("input is empty or contains only whitespace", errors.ErrEmptyInput)
		}
		return nil, decodeError(err)
	}

	value, err := parseValue(decoder, token)
	if err != nil {
		return nil, err
	}

	// Exactly one document per run: anything but a clean EOF after the
	// first value is either a second value or trailing garbage.
	trailing, err := decoder.Token()
	switch {
	case stderrors.Is(err, io.EOF):
		// Clean end of stream.
	case err != nil:
		return nil, errors.NewInputError("invalid trailing data after first JSON value", err)
	default:
		_ = trailing
		return nil, errors.NewInputError("multiple JSON values found at the root", errors.ErrMultipleJSON)
	}

	return value, nil
}

// parseValue turns the token just read into a models.Value, descending
// into containers via the decoder.
func parseValue(decoder *json.Decoder, token json.Token) (models.Value, error) {
	switch tok := token.(type) {
	case json.Delim:
		switch tok {
		case '{':
			return parseObject(decoder)
		case '[':
			return parseArray(decoder)
		}
		// Closing delimiters never reach here; the decoder reports them
		// as syntax errors before handing us a token.
		return nil, errors.NewInputError(fmt.Sprintf("unexpected delimiter %q", tok.String()), errors.ErrInvalidJSON)
	case string, bool, json.Number:
		return tok, nil
	case nil:
		return nil, nil
	default:
		return nil, errors.NewInputError(fmt.Sprintf("unexpected JSON token type %T", token), errors.ErrInvalidJSON)
	}
}

// parseObject consumes members up to and including the closing brace,
// preserving document order and duplicate keys.
func parseObject(decoder *json.Decoder) (models.Object, error) {
	obj := models.Object{}
	for decoder.More() {
		keyToken, err := decoder.Token()
		if err != nil {
			return nil, decodeError(err)
		}
		key, ok := keyToken.(string)
		if !ok {
			return nil, errors.NewInputError(fmt.Sprintf("unexpected object key token %v", keyToken), errors.ErrInvalidJSON)
		}

		valueToken, err := decoder.Token()
		if err != nil {
			return nil, decodeError(err)
		}
		value, err := parseValue(decoder, valueToken)
		if err != nil {
			return nil, err
		}

		obj = append(obj, models.Member{Key: key, Value: value})
	}

	// Consume the closing '}'
	if _, err := decoder.Token(); err != nil {
		return nil, decodeError(err)
	}
	return obj, nil
}

// parseArray consumes elements up to and including the closing bracket.
func parseArray(decoder *json.Decoder) (models.Array, error) {
	arr := models.Array{}
	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return nil, decodeError(err)
		}
		value, err := parseValue(decoder, token)
		if err != nil {
			return nil, err
		}
		arr = append(arr, value)
	}

	// Consume the closing ']'
	if _, err := decoder.Token(); err != nil {
		return nil, decodeError(err)
	}
	return arr, nil
}

// decodeError wraps decoder failures into input errors, keeping the byte
// offset when the decoder provides one.
func decodeError(err error) error {
	var syntaxErr *json.SyntaxError
	if stderrors.As(err, &syntaxErr) {
		return errors.NewInputError(
			fmt.Sprintf("JSON syntax error at offset %d", syntaxErr.Offset),
			errors.ErrInvalidJSON,
		)
	}
	if stderrors.Is(err, io.ErrUnexpectedEOF) || stderrors.Is(err, io.EOF) {
		return errors.NewInputError("unexpected end of JSON input", errors.ErrInvalidJSON)
	}
	return errors.NewInputError("failed to decode JSON", err)
}

// ParseBytes parses JSON from a byte slice
func ParseBytes(data []byte) (models.Value, error) {
	// TrimSpace keeps the empty-input error specific; a whitespace-only
	// stream would otherwise surface as a plain io.EOF from the decoder.
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.NewInputError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}
	return Parse(bytes.NewReader(data))
}

// ParseString parses JSON from a string
func ParseString(jsonString string) (models.Value, error) {
	return ParseBytes([]byte(jsonString))
}
