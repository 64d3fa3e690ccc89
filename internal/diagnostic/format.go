package diagnostic

import (
	"fmt"
	"io"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiDim    = "\x1b[2m"
)

// WriteText writes one line per diagnostic in the String format. With color
// set, severities and hints are highlighted with ANSI escapes.
func WriteText(w io.Writer, diags []Diagnostic, color bool) error {
	for _, d := range diags {
		line := d.String()
		if color {
			line = colorize(d)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func colorize(d Diagnostic) string {
	code := ansiDim
	switch d.Severity {
	case SeverityError:
		code = ansiRed
	case SeverityWarning:
		code = ansiYellow
	}
	s := d.location() + code + d.Severity.String() + ansiReset + ": " + d.body()
	if d.Hint != "" {
		s += "\n  " + ansiDim + "hint: " + d.Hint + ansiReset
	}
	return s
}

// record is the JSON form of a diagnostic.
type record struct {
	File     string `json:"file,omitempty"`
	Line     int    `json:"line,omitzero"`
	Column   int    `json:"column,omitzero"`
	Severity string `json:"severity"`
	Rule     string `json:"rule,omitempty"`
	Message  string `json:"message"`
	Hint     string `json:"hint,omitempty"`
}

// report is the top-level JSON document written by WriteJSON.
type report struct {
	Diagnostics []record `json:"diagnostics"`
	Errors      int      `json:"errors"`
	Warnings    int      `json:"warnings"`
}

// WriteJSON writes diags as an indented JSON report with error and warning
// totals.
func WriteJSON(w io.Writer, diags []Diagnostic) error {
	r := report{Diagnostics: make([]record, 0, len(diags))}
	for _, d := range diags {
		r.Diagnostics = append(r.Diagnostics, record{
			File:     d.File,
			Line:     d.Line,
			Column:   d.Column,
			Severity: d.Severity.String(),
			Rule:     string(d.Category),
			Message:  d.Message,
			Hint:     d.Hint,
		})
		switch d.Severity {
		case SeverityError:
			r.Errors++
		case SeverityWarning:
			r.Warnings++
		}
	}
	if err := json.MarshalWrite(w, r, jsontext.WithIndent("  ")); err != nil {
		return fmt.Errorf("diagnostic: write json: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}
