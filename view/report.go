package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
)

const (
	title      = "Git Repository Statistics"
	labelWidth = 20
	valueWidth = 12
)

// Report is the set of statistics selected for display. Nil fields were
// not requested and are left out of every format.
type Report struct {
	Commits      *int   `json:"commits,omitempty"`
	Branches     *int   `json:"branches,omitempty"`
	Contributors *int   `json:"contributors,omitempty"`
	SizeBytes    *int64 `json:"size_bytes,omitempty"`
}

type row struct {
	Label string
	Value string
}

// rows returns the present statistics in display order, formatted for humans.
func (r Report) rows() []row {
	var out []row
	if r.Commits != nil {
		out = append(out, row{"Total Commits:", humanize.Comma(int64(*r.Commits))})
	}
	if r.Branches != nil {
		out = append(out, row{"Branches:", humanize.Comma(int64(*r.Branches))})
	}
	if r.Contributors != nil {
		out = append(out, row{"Contributors:", humanize.Comma(int64(*r.Contributors))})
	}
	if r.SizeBytes != nil {
		out = append(out, row{"Repository Size:", FormatSize(*r.SizeBytes)})
	}
	return out
}

// FormatSize renders a byte count with binary units, e.g. "1.5 KiB".
func FormatSize(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}

// WriteTable writes the fixed-width text report.
func WriteTable(w io.Writer, r Report) error {
	var b strings.Builder
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n")
	for _, row := range r.rows() {
		fmt.Fprintf(&b, "%-*s %*s\n", labelWidth, row.Label, valueWidth, row.Value)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
