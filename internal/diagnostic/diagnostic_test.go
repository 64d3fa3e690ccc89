package diagnostic

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/go-json-experiment/json"
)

func errorAt(category Category, file string, line int, message string) Diagnostic {
	return Diagnostic{Severity: SeverityError, Category: category, File: file, Line: line, Message: message}
}

func TestDiagnostic_String(t *testing.T) {
	d := Diagnostic{
		Severity: SeverityWarning,
		Category: CategoryRequirePropTypes,
		File:     "src/Card.vue",
		Line:     10,
		Column:   5,
		Message:  "Prop 'title' should define at least its type.",
		Hint:     "declare it as { type: String }",
	}

	s := d.String()
	if !strings.HasPrefix(s, "src/Card.vue:10:5 - warning: ") {
		t.Errorf("expected file:line:col prefix, got %q", s)
	}
	if !strings.Contains(s, "[require-prop-types]") {
		t.Errorf("expected category, got %q", s)
	}
	if !strings.Contains(s, "hint:") {
		t.Errorf("expected hint, got %q", s)
	}
}

func TestDiagnostic_StringWithoutFile(t *testing.T) {
	d := Diagnostic{Severity: SeverityError, Category: CategoryConfigInvalid, Message: "bad"}
	if got, want := d.String(), "error: [config-invalid] bad"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestCollector_WarnAndError(t *testing.T) {
	c := NewCollector(false, false)
	c.Warn(CategoryRequirePropTypes, "a.vue", 5, "untyped prop")
	c.Add(errorAt(CategoryConfigInvalid, "", 0, "missing config field"))

	if c.WarningCount() != 1 {
		t.Errorf("expected 1 warning, got %d", c.WarningCount())
	}
	if c.ErrorCount() != 1 {
		t.Errorf("expected 1 error, got %d", c.ErrorCount())
	}
	if !c.HasErrors() {
		t.Error("expected HasErrors() = true")
	}
}

func TestCollector_StrictMode(t *testing.T) {
	c := NewCollector(true, false) // strict mode
	c.Warn(CategoryRequireValidDefaultProp, "a.vue", 1, "bad default")

	// In strict mode, warnings become errors
	if c.ErrorCount() != 1 {
		t.Errorf("expected 1 error (strict mode), got %d", c.ErrorCount())
	}
	if c.WarningCount() != 0 {
		t.Errorf("expected 0 warnings (strict mode), got %d", c.WarningCount())
	}
}

func TestCollector_QuietMode(t *testing.T) {
	c := NewCollector(false, true) // quiet mode
	c.Warn(CategoryRequirePropTypes, "a.vue", 1, "untyped prop")
	c.Add(errorAt(CategoryParseError, "b.vue", 3, "syntax error")) // errors still show

	if len(c.Diagnostics()) != 1 {
		t.Errorf("expected 1 diagnostic (only error), got %d", len(c.Diagnostics()))
	}
}

func TestCollector_Summary(t *testing.T) {
	c := NewCollector(false, false)
	c.Warn(CategoryRequirePropTypes, "a.vue", 1, "warn1")
	c.Warn(CategoryRequirePropTypes, "b.vue", 2, "warn2")
	c.Add(errorAt(CategoryParseError, "c.vue", 1, "err1"))

	summary := c.Summary()
	if summary != "1 error(s), 2 warning(s)" {
		t.Errorf("unexpected summary %q", summary)
	}
}

func TestCollector_SummaryGroupsDigits(t *testing.T) {
	c := NewCollector(false, false)
	for i := 0; i < 1204; i++ {
		c.Warn(CategoryRequirePropTypes, "a.vue", i+1, "w")
	}
	if got := c.Summary(); got != "1,204 warning(s)" {
		t.Errorf("Summary() = %q", got)
	}
}

func TestCollector_NilSafe(t *testing.T) {
	var c *Collector
	// Should not panic
	c.Warn(CategoryRequirePropTypes, "", 0, "test")
	c.Add(errorAt(CategoryConfigInvalid, "", 0, "test"))
	if c.HasErrors() {
		t.Error("nil collector should not have errors")
	}
	if c.Summary() != "" {
		t.Error("nil collector should return empty summary")
	}
}

func TestCompare(t *testing.T) {
	diags := []Diagnostic{
		{File: "b.vue", Line: 1, Column: 1, Message: "b"},
		{File: "a.vue", Line: 9, Column: 1, Message: "a9"},
		{File: "a.vue", Line: 2, Column: 7, Message: "a2-7"},
		{File: "a.vue", Line: 2, Column: 3, Message: "a2-3"},
		{File: "a.vue", Line: 2, Column: 3, Message: "a2-3 second"},
	}
	slices.SortStableFunc(diags, Compare)

	var got []string
	for _, d := range diags {
		got = append(got, d.Message)
	}
	if strings.Join(got, ",") != "a2-3,a2-3 second,a2-7,a9,b" {
		t.Errorf("unexpected order %v", got)
	}
}

func TestWriteText_Color(t *testing.T) {
	d := Diagnostic{Severity: SeverityError, Category: CategoryRequireValidDefaultProp, File: "a.vue", Line: 1, Column: 2, Message: "m"}

	var plain, colored bytes.Buffer
	if err := WriteText(&plain, []Diagnostic{d}, false); err != nil {
		t.Fatal(err)
	}
	if err := WriteText(&colored, []Diagnostic{d}, true); err != nil {
		t.Fatal(err)
	}
	if plain.String() != d.String()+"\n" {
		t.Errorf("plain output = %q", plain.String())
	}
	if !strings.Contains(colored.String(), ansiRed+"error"+ansiReset) {
		t.Errorf("colored output lacks highlighted severity: %q", colored.String())
	}
}

func TestWriteJSON(t *testing.T) {
	diags := []Diagnostic{
		{Severity: SeverityError, Category: CategoryRequirePropTypes, File: "a.vue", Line: 3, Column: 5, Message: "x"},
		{Severity: SeverityWarning, Category: CategoryRequireValidDefaultProp, File: "b.vue", Message: "y"},
	}
	var buf bytes.Buffer
	if err := WriteJSON(&buf, diags); err != nil {
		t.Fatal(err)
	}

	var got struct {
		Diagnostics []map[string]any `json:"diagnostics"`
		Errors      int              `json:"errors"`
		Warnings    int              `json:"warnings"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if got.Errors != 1 || got.Warnings != 1 || len(got.Diagnostics) != 2 {
		t.Fatalf("unexpected report %+v", got)
	}
	first := got.Diagnostics[0]
	if first["severity"] != "error" || first["rule"] != "require-prop-types" || first["line"] != float64(3) {
		t.Errorf("unexpected first record %v", first)
	}
	if _, ok := got.Diagnostics[1]["line"]; ok {
		t.Errorf("zero line should be omitted: %v", got.Diagnostics[1])
	}
}
