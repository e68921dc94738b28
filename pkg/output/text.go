package output

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ccollicutt/devjournal/pkg/parser"
)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	_, err := fmt.Fprintf(w, "devjournal: %d reflection(s) between %s and %s\n",
		len(report.Reflections),
		report.Window.Start.UTC().Format(time.RFC3339),
		report.Window.End.UTC().Format(time.RFC3339))
	return err
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	fmt.Fprintln(w, "=== Reflections ===")
	fmt.Fprintf(w, "Window: %s .. %s\n",
		report.Window.Start.UTC().Format(time.RFC3339),
		report.Window.End.UTC().Format(time.RFC3339))
	fmt.Fprintln(w)

	if !report.HasReflections() {
		fmt.Fprintln(w, "  No reflections recorded")
		fmt.Fprintln(w)
	}

	for i := range report.Reflections {
		f.formatReflection(&report.Reflections[i], w)
	}

	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %d reflection(s)\n", len(report.Reflections))

	if f.opts.Verbose {
		if report.Metadata.JournalDir != "" {
			fmt.Fprintf(w, "Journal: %s\n", report.Metadata.JournalDir)
		}
		if report.Metadata.Location != "" {
			fmt.Fprintf(w, "Timezone: %s\n", report.Metadata.Location)
		}
	}

	return nil
}

func (f *TextFormatter) formatReflection(r *parser.Reflection, w io.Writer) {
	fmt.Fprintf(w, "[%s] %s\n", r.Timestamp.UTC().Format(time.RFC3339), r.Label)
	if f.opts.Verbose && r.Source != "" {
		fmt.Fprintf(w, "  Source: %s:%d\n", r.Source, r.LineNum)
	}
	for _, line := range r.Body {
		fmt.Fprintf(w, "  %s\n", line)
	}
	fmt.Fprintln(w)
}
