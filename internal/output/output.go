// Package output renders command results.
package output

import (
	"bytes"
	"encoding/json"
	"io"
)

// Indent is the indentation used for all rendered JSON.
const Indent = "  "

// Marshal renders v as indented JSON with object keys in sorted order and
// a trailing newline. HTML characters are not escaped.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", Indent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// JSON writes v to w as Marshal renders it.
func JSON(w io.Writer, v any) error {
	data, err := Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
