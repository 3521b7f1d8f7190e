// Package cliutil provides shared output helpers for the gospdx command-line tools.
package cliutil

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/gospdx/gospdx"
)

// GetOutput opens the output file or returns stdout.
func GetOutput(outputFile string) (io.Writer, func(), error) {
	if outputFile == "" || outputFile == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(outputFile)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

// PrintError writes a formatted error message to stderr.
func PrintError(format string, args ...any) {
	FprintError(os.Stderr, format, args...)
}

// FprintError writes a formatted error message to w with a red prefix.
func FprintError(w io.Writer, format string, args ...any) {
	color.New(color.FgRed, color.Bold).Fprint(w, "error: ")
	fmt.Fprintf(w, format+"\n", args...)
}

var severityColors = map[gospdx.Severity]*color.Color{
	gospdx.SeverityError:   color.New(color.FgRed),
	gospdx.SeverityWarning: color.New(color.FgYellow),
	gospdx.SeverityInfo:    color.New(color.FgCyan),
}

// PrintDiagnostic writes one diagnostic line, coloured by severity:
//
//	warning: [property-unknown] SPDXRef-Package: ignored property "foo"
func PrintDiagnostic(w io.Writer, d gospdx.Diagnostic) {
	c, ok := severityColors[d.Severity]
	if !ok {
		c = color.New(color.Reset)
	}
	fmt.Fprint(w, "  ")
	c.Fprint(w, d.Severity.String()+":")
	fmt.Fprint(w, " ")
	if d.Code != "" {
		fmt.Fprintf(w, "[%s] ", d.Code)
	}
	if d.Element != "" {
		fmt.Fprintf(w, "%s: ", d.Element)
	}
	fmt.Fprintln(w, d.Message)
}

// Table renders rows as aligned columns under a bold header.
type Table struct {
	w       io.Writer
	headers []string
	rows    [][]string
}

// NewTable returns a table writing to w.
func NewTable(w io.Writer, headers ...string) *Table {
	return &Table{w: w, headers: headers}
}

// AddRow appends a row. Missing cells render empty.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Render writes the table.
func (t *Table) Render() {
	if len(t.headers) == 0 {
		return
	}
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = len(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	bold := color.New(color.Bold, color.FgCyan)
	for i, h := range t.headers {
		bold.Fprint(t.w, pad(h, widths[i], i == len(t.headers)-1))
		if i < len(t.headers)-1 {
			fmt.Fprint(t.w, "  ")
		}
	}
	fmt.Fprintln(t.w)

	for _, row := range t.rows {
		for i := range widths {
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			fmt.Fprint(t.w, pad(cell, widths[i], i == len(widths)-1))
			if i < len(widths)-1 {
				fmt.Fprint(t.w, "  ")
			}
		}
		fmt.Fprintln(t.w)
	}
}

// pad right-pads s to width. The last column is never padded.
func pad(s string, width int, last bool) string {
	if last || len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
