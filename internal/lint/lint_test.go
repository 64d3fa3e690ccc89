package lint

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"

	"github.com/proplint/proplint/internal/ast"
	"github.com/proplint/proplint/internal/config"
	"github.com/proplint/proplint/internal/diagnostic"
)

func format(diags []diagnostic.Diagnostic) string {
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("%d:%d %s [%s] %s", d.Line, d.Column, d.Severity, d.Category, d.Message)
	}
	return strings.Join(lines, "\n")
}

// TestGolden lints each archive in testdata. An archive holds one source
// file and a "want" file listing the expected diagnostics.
func TestGolden(t *testing.T) {
	archives, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	if err != nil {
		t.Fatal(err)
	}
	if len(archives) == 0 {
		t.Fatal("no golden archives found")
	}
	l := New(config.DefaultConfig(), false)
	for _, path := range archives {
		t.Run(strings.TrimSuffix(filepath.Base(path), ".txtar"), func(t *testing.T) {
			ar, err := txtar.ParseFile(path)
			if err != nil {
				t.Fatalf("ParseFile: %v", err)
			}
			var (
				name string
				src  []byte
				want string
			)
			for _, f := range ar.Files {
				if f.Name == "want" {
					want = strings.TrimSpace(string(f.Data))
					continue
				}
				name, src = f.Name, f.Data
			}
			if name == "" {
				t.Fatal("archive has no source file")
			}

			diags, err := l.LintSource(name, src)
			if err != nil {
				t.Fatalf("LintSource: %v", err)
			}
			for _, d := range diags {
				if d.File != name {
					t.Errorf("diagnostic file = %q, want %q", d.File, name)
				}
			}
			if got := format(diags); got != want {
				t.Errorf("diagnostics mismatch\ngot:\n%s\nwant:\n%s", got, want)
			}
		})
	}
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

const badCard = `<script>
export default {
  props: {
    size: { type: Number, default: 'lg' },
    anything: {},
  },
}
</script>
`

func TestCollect(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/Card.vue":              badCard,
		"src/util.ts":               "export const x = 1\n",
		"src/env.d.ts":              "declare const y: number\n",
		"README.md":                 "# demo\n",
		"node_modules/lib/Comp.vue": badCard,
		".cache/Hidden.vue":         badCard,
		"dist/out.js":               "export default {}\n",
	})
	l := New(config.DefaultConfig(), false)

	t.Run("directory", func(t *testing.T) {
		got, err := l.Collect([]string{root})
		if err != nil {
			t.Fatalf("Collect: %v", err)
		}
		want := []string{
			filepath.Join(root, "src", "Card.vue"),
			filepath.Join(root, "src", "util.ts"),
		}
		if !slices.Equal(got, want) {
			t.Errorf("Collect = %v, want %v", got, want)
		}
	})

	t.Run("explicit files and duplicates", func(t *testing.T) {
		card := filepath.Join(root, "src", "Card.vue")
		got, err := l.Collect([]string{
			card,
			filepath.Join(root, "README.md"),
			filepath.Join(root, "src", "env.d.ts"),
			filepath.Join(root, "src"),
		})
		if err != nil {
			t.Fatalf("Collect: %v", err)
		}
		want := []string{card, filepath.Join(root, "src", "util.ts")}
		if !slices.Equal(got, want) {
			t.Errorf("Collect = %v, want %v", got, want)
		}
	})

	t.Run("missing root", func(t *testing.T) {
		if _, err := l.Collect([]string{filepath.Join(root, "nope")}); err == nil {
			t.Fatal("expected error for missing root")
		}
	})

	t.Run("estree input", func(t *testing.T) {
		dir := writeTree(t, map[string]string{
			"ast/Card.vue.json": "{}",
			"ast/Card.vue":      badCard,
		})
		got, err := New(config.DefaultConfig(), true).Collect([]string{dir})
		if err != nil {
			t.Fatalf("Collect: %v", err)
		}
		if want := []string{filepath.Join(dir, "ast", "Card.vue.json")}; !slices.Equal(got, want) {
			t.Errorf("Collect = %v, want %v", got, want)
		}
	})
}

func TestLint(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a/Card.vue":  badCard,
		"b/util.ts":   "export const x = 1\n",
		"c/broken.ts": "const a = 1\nconst = ;\n",
	})
	files := []string{
		filepath.Join(root, "a", "Card.vue"),
		filepath.Join(root, "b", "util.ts"),
		filepath.Join(root, "c", "broken.ts"),
		filepath.Join(root, "d", "missing.vue"),
	}

	cfg := config.DefaultConfig()
	cfg.Jobs = 2
	diags, err := New(cfg, false).Lint(context.Background(), files)
	if err != nil {
		t.Fatalf("Lint: %v", err)
	}
	if len(diags) != 4 {
		t.Fatalf("got %d diagnostics:\n%s", len(diags), format(diags))
	}

	wantFiles := []string{files[0], files[0], files[2], files[3]}
	wantCats := []diagnostic.Category{
		diagnostic.CategoryRequireValidDefaultProp,
		diagnostic.CategoryRequirePropTypes,
		diagnostic.CategoryParseError,
		diagnostic.CategoryIO,
	}
	for i, d := range diags {
		if d.File != wantFiles[i] || d.Category != wantCats[i] {
			t.Errorf("diags[%d] = %s %s, want %s %s", i, d.File, d.Category, wantFiles[i], wantCats[i])
		}
	}
	if d := diags[2]; d.Line != 2 || d.Column == 0 || d.Severity != diagnostic.SeverityError {
		t.Errorf("parse error = %+v", d)
	}
}

func TestLint_Canceled(t *testing.T) {
	root := writeTree(t, map[string]string{"Card.vue": badCard})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(config.DefaultConfig(), false).Lint(ctx, []string{filepath.Join(root, "Card.vue")}); err == nil {
		t.Fatal("expected context error")
	}
}

func TestLint_RuleLevels(t *testing.T) {
	tests := []struct {
		name   string
		rules  config.RulesConfig
		want   []diagnostic.Category
		warned int
	}{
		{
			name:  "defaults",
			rules: config.RulesConfig{},
			want:  []diagnostic.Category{diagnostic.CategoryRequireValidDefaultProp, diagnostic.CategoryRequirePropTypes},
		},
		{
			name:   "types as warnings",
			rules:  config.RulesConfig{RequirePropTypes: config.LevelWarn},
			want:   []diagnostic.Category{diagnostic.CategoryRequireValidDefaultProp, diagnostic.CategoryRequirePropTypes},
			warned: 1,
		},
		{
			name:  "defaults off",
			rules: config.RulesConfig{RequireValidDefaultProp: config.LevelOff},
			want:  []diagnostic.Category{diagnostic.CategoryRequirePropTypes},
		},
		{
			name:  "all off",
			rules: config.RulesConfig{RequirePropTypes: config.LevelOff, RequireValidDefaultProp: config.LevelOff},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Rules = tt.rules
			diags, err := New(cfg, false).LintSource("Card.vue", []byte(badCard))
			if err != nil {
				t.Fatalf("LintSource: %v", err)
			}
			var got []diagnostic.Category
			warned := 0
			for _, d := range diags {
				got = append(got, d.Category)
				if d.Severity == diagnostic.SeverityWarning {
					warned++
				}
			}
			if !slices.Equal(got, tt.want) || warned != tt.warned {
				t.Errorf("got %v (%d warnings), want %v (%d warnings)", got, warned, tt.want, tt.warned)
			}
		})
	}
}

func TestLint_CustomMacros(t *testing.T) {
	src := `export default createComponent({ props: { a: {} } })
`
	cfg := config.DefaultConfig()
	if diags, _ := New(cfg, false).LintSource("a.ts", []byte(src)); len(diags) != 0 {
		t.Fatalf("unknown factory should be ignored, got:\n%s", format(diags))
	}
	cfg.Macros.Factories = []string{"createComponent"}
	diags, err := New(cfg, false).LintSource("a.ts", []byte(src))
	if err != nil {
		t.Fatalf("LintSource: %v", err)
	}
	if len(diags) != 1 || diags[0].Message != "Prop 'a' should define at least its type." {
		t.Fatalf("diagnostics:\n%s", format(diags))
	}
}

func TestLintSource_ESTree(t *testing.T) {
	doc := `{
  "source": "export default {\n  props: ['a']\n}",
  "ast": {
    "type": "Program",
    "body": [{
      "type": "ExportDefaultDeclaration",
      "declaration": {
        "type": "ObjectExpression",
        "properties": [{
          "type": "Property", "kind": "init",
          "key": {"type": "Identifier", "name": "props"},
          "value": {"type": "ArrayExpression", "elements": [
            {"type": "Literal", "value": "a", "raw": "'a'", "range": [27, 30]}
          ]}
        }]
      }
    }]
  }
}`
	diags, err := New(config.DefaultConfig(), true).LintSource("Card.vue.json", []byte(doc))
	if err != nil {
		t.Fatalf("LintSource: %v", err)
	}
	if len(diags) != 1 {
		t.Fatalf("diagnostics:\n%s", format(diags))
	}
	// No loc in the document: the position is counted from the range.
	if d := diags[0]; d.Line != 2 || d.Column != 11 || d.Message != "Prop 'a' should define at least its type." {
		t.Errorf("diagnostic = %+v", d)
	}

	diags, _ = New(config.DefaultConfig(), true).LintSource("bad.json", []byte(`{"nope": true}`))
	if len(diags) != 1 || diags[0].Category != diagnostic.CategoryParseError || diags[0].Line != 0 {
		t.Errorf("decode failure = %+v", diags)
	}
}

func TestPosition(t *testing.T) {
	byteFile := &ast.File{Source: "ab\ncé d"}
	utf16File := &ast.File{Source: "ab\n😀 d", UTF16: true}

	tests := []struct {
		name     string
		file     *ast.File
		node     *ast.Node
		wantLine int
		wantCol  int
	}{
		{"loc wins", byteFile, &ast.Node{Loc: ast.Location{Start: ast.Position{Line: 7, Column: 2}}}, 7, 3},
		{"start of file", byteFile, &ast.Node{}, 1, 1},
		{"byte offsets", byteFile, &ast.Node{Range: ast.Range{7, 8}}, 2, 5},
		{"utf16 offsets", utf16File, &ast.Node{Range: ast.Range{6, 7}}, 2, 4},
		{"nil node", byteFile, nil, 0, 0},
		{"no source", &ast.File{}, &ast.Node{Range: ast.Range{3, 4}}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, col := position(tt.file, tt.node)
			if line != tt.wantLine || col != tt.wantCol {
				t.Errorf("position = %d:%d, want %d:%d", line, col, tt.wantLine, tt.wantCol)
			}
		})
	}
}
