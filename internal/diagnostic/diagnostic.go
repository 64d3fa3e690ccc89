package diagnostic

import (
	"cmp"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Category classifies diagnostics for filtering. Lint rules use their rule
// id as the category.
type Category string

const (
	CategoryRequirePropTypes        Category = "require-prop-types"
	CategoryRequireValidDefaultProp Category = "require-valid-default-prop"
	CategoryParseError              Category = "parse-error"
	CategoryConfigInvalid           Category = "config-invalid"
	CategoryIO                      Category = "io"
)

// Diagnostic represents a structured diagnostic message.
type Diagnostic struct {
	Severity Severity
	Category Category
	File     string // source file path
	Line     int    // 1-based line number (0 = unknown)
	Column   int    // 1-based column number (0 = unknown)
	Message  string
	Hint     string // optional suggestion for fixing the issue
}

// String formats the diagnostic for display.
func (d Diagnostic) String() string {
	var sb strings.Builder
	sb.WriteString(d.location())
	sb.WriteString(d.Severity.String())
	sb.WriteString(": ")
	sb.WriteString(d.body())
	if d.Hint != "" {
		sb.WriteString("\n  hint: ")
		sb.WriteString(d.Hint)
	}
	return sb.String()
}

// location returns the "file:line:col - " prefix, or "" without a file.
func (d Diagnostic) location() string {
	if d.File == "" {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(d.File)
	if d.Line > 0 {
		sb.WriteString(fmt.Sprintf(":%d", d.Line))
		if d.Column > 0 {
			sb.WriteString(fmt.Sprintf(":%d", d.Column))
		}
	}
	sb.WriteString(" - ")
	return sb.String()
}

// body returns the "[category] message" part.
func (d Diagnostic) body() string {
	if d.Category == "" {
		return d.Message
	}
	return "[" + string(d.Category) + "] " + d.Message
}

// Compare orders diagnostics by file, line and column.
func Compare(a, b Diagnostic) int {
	return cmp.Or(
		cmp.Compare(a.File, b.File),
		cmp.Compare(a.Line, b.Line),
		cmp.Compare(a.Column, b.Column),
	)
}

// Collector collects diagnostics during analysis.
type Collector struct {
	diagnostics []Diagnostic
	strict      bool // if true, warnings become errors
	quiet       bool // if true, suppress warnings
}

// NewCollector creates a new diagnostic collector.
func NewCollector(strict, quiet bool) *Collector {
	return &Collector{
		strict: strict,
		quiet:  quiet,
	}
}

// Add records d. In quiet mode only errors are kept; in strict mode
// warnings are recorded as errors.
func (c *Collector) Add(d Diagnostic) {
	if c == nil {
		return
	}
	if c.quiet && d.Severity != SeverityError {
		return
	}
	if d.Severity == SeverityWarning && c.strict {
		d.Severity = SeverityError
	}
	c.diagnostics = append(c.diagnostics, d)
}

// Warn adds a warning diagnostic.
func (c *Collector) Warn(category Category, file string, line int, message string) {
	c.Add(Diagnostic{
		Severity: SeverityWarning,
		Category: category,
		File:     file,
		Line:     line,
		Message:  message,
	})
}

// Diagnostics returns all collected diagnostics.
func (c *Collector) Diagnostics() []Diagnostic {
	if c == nil {
		return nil
	}
	return c.diagnostics
}

// HasErrors returns true if any error-level diagnostics exist.
func (c *Collector) HasErrors() bool {
	return c.ErrorCount() > 0
}

// ErrorCount returns the number of error diagnostics.
func (c *Collector) ErrorCount() int {
	return c.count(SeverityError)
}

// WarningCount returns the number of warning diagnostics.
func (c *Collector) WarningCount() int {
	return c.count(SeverityWarning)
}

func (c *Collector) count(sev Severity) int {
	if c == nil {
		return 0
	}
	count := 0
	for _, d := range c.diagnostics {
		if d.Severity == sev {
			count++
		}
	}
	return count
}

var printer = message.NewPrinter(language.English)

// Summary returns a summary line like "1 error(s), 2 warning(s)". Counts use
// digit grouping ("1,204 warning(s)").
func (c *Collector) Summary() string {
	if c == nil {
		return ""
	}
	warnings := c.WarningCount()
	errors := c.ErrorCount()

	parts := []string{}
	if errors > 0 {
		parts = append(parts, printer.Sprintf("%d error(s)", errors))
	}
	if warnings > 0 {
		parts = append(parts, printer.Sprintf("%d warning(s)", warnings))
	}
	if len(parts) == 0 {
		return "no issues"
	}
	return strings.Join(parts, ", ")
}
