package view

import (
	"encoding/json"
	"io"
)

// WriteJSON writes the report as an indented JSON object with raw numbers.
func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
