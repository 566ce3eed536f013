// Package iojson reads and writes the JSON documents exchanged by CLI
// commands: pretty reports, JSON lines listings, and file-or-stdin input.
package iojson

import (
	"encoding/json"
	"fmt"
	"io"
)

// marshalFailure is written in place of a document that cannot be encoded,
// so scripts reading JSON still get JSON.
type marshalFailure struct {
	Message string `json:"message"`
	Data    struct {
		JSONError string `json:"json_error"`
	} `json:"data"`
}

// WriteWith writes obj to w as indented JSON. When obj cannot be marshalled
// a marshalFailure object goes to ew instead.
func WriteWith(w, ew io.Writer, obj any) error {
	bits, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		var f marshalFailure
		f.Message = "cannot encode output"
		f.Data.JSONError = err.Error()
		return WriteLine(ew, f)
	}
	_, err = fmt.Fprintf(w, "%s\n", bits)
	return err
}

// WriteLine writes obj as one compact JSON line.
func WriteLine(w io.Writer, obj any) error {
	bits, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("marshal json line: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", bits)
	return err
}
