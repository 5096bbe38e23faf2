package export

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// EncodeJSON renders records as a pretty printed array of objects with a
// two space indent. Keys keep their insertion order.
func EncodeJSON(records []*Record) ([]byte, error) {
	if len(records) == 0 {
		return nil, ErrNoData
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("export: encode json: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
