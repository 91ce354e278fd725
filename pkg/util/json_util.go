package util

import (
	"bytes"
	"io"

	"github.com/goccy/go-json"
)

func StructToJSONReader(data interface{}) io.Reader {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil
	}
	return bytes.NewReader(jsonBytes)
}

// PrettyJSON re-indents a JSON document with two spaces. Invalid input is returned unchanged.
func PrettyJSON(raw []byte) []byte {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return raw
	}
	return buf.Bytes()
}
