package output

import (
	"context"
	"encoding/json"
	"io"

	"github.com/ccollicutt/devjournal/pkg/parser"
)

// JSONFormatter formats reports as JSON.
type JSONFormatter struct {
	opts FormatOptions
}

// NewJSONFormatter creates a new JSON formatter with the given options.
func NewJSONFormatter(opts FormatOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// Summary is the quiet-mode JSON document.
type Summary struct {
	Window      parser.Window `json:"window"`
	Reflections int           `json:"reflections"`
}

// Format renders the report as JSON.
func (f *JSONFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if f.opts.Quiet {
		return encoder.Encode(Summary{Window: report.Window, Reflections: len(report.Reflections)})
	}

	return encoder.Encode(report)
}
