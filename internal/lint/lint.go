// Package lint runs the prop checks over files on disk and turns their
// findings into diagnostics.
package lint

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/proplint/proplint/internal/ast"
	"github.com/proplint/proplint/internal/config"
	"github.com/proplint/proplint/internal/diagnostic"
	"github.com/proplint/proplint/internal/estree"
	"github.com/proplint/proplint/internal/parser"
	"github.com/proplint/proplint/internal/props"
	"github.com/proplint/proplint/internal/typealias"
	"github.com/proplint/proplint/internal/vue"
)

// Linter checks files against one configuration. A Linter is safe for
// concurrent use; each call creates its own parsers.
type Linter struct {
	cfg      config.Config
	resolver *vue.Resolver
	estree   bool
}

// New creates a linter for cfg. When estreeInput is set, inputs are ESTree
// JSON documents instead of source files.
func New(cfg config.Config, estreeInput bool) *Linter {
	return &Linter{
		cfg:      cfg,
		resolver: vue.NewResolver(orNil(cfg.Macros.Props), orNil(cfg.Macros.WithDefaults), orNil(cfg.Macros.Model), orNil(cfg.Macros.Factories)),
		estree:   estreeInput,
	}
}

func orNil(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	return names
}

// Accepts reports whether path has an extension this linter reads.
func (l *Linter) Accepts(path string) bool {
	if l.estree {
		return strings.EqualFold(filepath.Ext(path), ".json")
	}
	return parser.Supported(path)
}

// Collect expands roots into the sorted list of files to lint. Directories
// are walked and filtered by the include and exclude patterns, relative to
// the directory. Files named directly are kept when their extension is
// accepted and no exclude pattern matches them.
func (l *Linter) Collect(roots []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	include := l.cfg.Include
	if l.estree {
		include = []string{"**/*.json"}
	}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("lint: %w", err)
		}
		if !info.IsDir() {
			if l.Accepts(root) && !matchAny(slashed(root), l.cfg.Exclude) {
				add(root)
			}
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				return relErr
			}
			if d.IsDir() {
				if path != root && (d.Name() == "node_modules" || strings.HasPrefix(d.Name(), ".")) {
					return filepath.SkipDir
				}
				return nil
			}
			if l.Accepts(path) && MatchesGlob(rel, include, l.cfg.Exclude) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("lint: walking %s: %w", root, err)
		}
	}
	slices.Sort(files)
	return files, nil
}

func slashed(path string) string {
	path = filepath.ToSlash(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + strings.TrimPrefix(path, "./")
	}
	return path
}

// Lint checks files concurrently and returns their diagnostics in input
// order. Unreadable and unparsable files are reported as diagnostics; the
// returned error is only set when ctx is canceled.
func (l *Linter) Lint(ctx context.Context, files []string) ([]diagnostic.Diagnostic, error) {
	results := make([][]diagnostic.Diagnostic, len(files))

	jobs := l.cfg.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	chunks := min(jobs, len(files))

	g, ctx := errgroup.WithContext(ctx)
	for w := range chunks {
		g.Go(func() error {
			var p *parser.Parser
			if !l.estree {
				var err error
				if p, err = parser.New(); err != nil {
					return err
				}
				defer p.Close()
			}
			for i := w; i < len(files); i += chunks {
				if err := ctx.Err(); err != nil {
					return err
				}
				results[i] = l.lintPath(p, files[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []diagnostic.Diagnostic
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}

func (l *Linter) lintPath(p *parser.Parser, path string) []diagnostic.Diagnostic {
	src, err := os.ReadFile(path)
	if err != nil {
		return []diagnostic.Diagnostic{{
			Severity: diagnostic.SeverityError,
			Category: diagnostic.CategoryIO,
			File:     path,
			Message:  err.Error(),
		}}
	}
	return l.lintSource(p, path, src)
}

// LintSource checks one in-memory file. The path selects the front end and
// is used in diagnostics.
func (l *Linter) LintSource(path string, src []byte) ([]diagnostic.Diagnostic, error) {
	var p *parser.Parser
	if !l.estree {
		var err error
		if p, err = parser.New(); err != nil {
			return nil, err
		}
		defer p.Close()
	}
	return l.lintSource(p, path, src), nil
}

func (l *Linter) lintSource(p *parser.Parser, path string, src []byte) []diagnostic.Diagnostic {
	file, err := l.load(p, path, src)
	if err != nil {
		return []diagnostic.Diagnostic{parseDiagnostic(path, err)}
	}
	return l.Check(file)
}

func (l *Linter) load(p *parser.Parser, path string, src []byte) (*ast.File, error) {
	if l.estree {
		return estree.DecodeFile(path, src)
	}
	return p.Parse(path, src)
}

func parseDiagnostic(path string, err error) diagnostic.Diagnostic {
	d := diagnostic.Diagnostic{
		Severity: diagnostic.SeverityError,
		Category: diagnostic.CategoryParseError,
		File:     path,
		Message:  err.Error(),
	}
	var pe *parser.ParseError
	if errors.As(err, &pe) {
		d.Line = pe.Line
		d.Column = pe.Column + 1
		d.Message = pe.Message
	}
	return d
}

// Check runs both rules over every component of an already parsed file.
func (l *Linter) Check(file *ast.File) []diagnostic.Diagnostic {
	opts := props.Options{
		Resolver: l.resolver,
		Oracle:   typealias.NewLocal(file.Program),
		File:     file,
	}

	var out []diagnostic.Diagnostic
	for _, desc := range l.resolver.FindComponents(file.Program) {
		res := props.Analyze(desc, opts)
		if level := l.cfg.Rules.RequirePropTypes; level.Enabled() {
			out = l.convert(out, file, level, diagnostic.CategoryRequirePropTypes, res.Specificity)
		}
		if level := l.cfg.Rules.RequireValidDefaultProp; level.Enabled() {
			out = l.convert(out, file, level, diagnostic.CategoryRequireValidDefaultProp, res.Compatibility)
		}
	}
	slices.SortStableFunc(out, diagnostic.Compare)
	return out
}

func (l *Linter) convert(out []diagnostic.Diagnostic, file *ast.File, level config.Level, cat diagnostic.Category, found []props.Diagnostic) []diagnostic.Diagnostic {
	severity := diagnostic.SeverityError
	if level == config.LevelWarn {
		severity = diagnostic.SeverityWarning
	}
	for _, d := range found {
		line, col := position(file, d.Node)
		out = append(out, diagnostic.Diagnostic{
			Severity: severity,
			Category: cat,
			File:     file.Path,
			Line:     line,
			Column:   col,
			Message:  d.Message,
		})
	}
	return out
}

// position returns the 1-based line and column of n. Trees without
// locations fall back to counting through the source up to the node's
// start offset.
func position(file *ast.File, n *ast.Node) (line, col int) {
	if n == nil {
		return 0, 0
	}
	if n.Loc.Start.Line > 0 {
		return n.Loc.Start.Line, n.Loc.Start.Column + 1
	}
	if file.Source == "" {
		return 0, 0
	}

	line, col = 1, 1
	if !file.UTF16 {
		prefix := file.Source[:min(n.Range[0], len(file.Source))]
		line += strings.Count(prefix, "\n")
		col += len(prefix) - (strings.LastIndexByte(prefix, '\n') + 1)
		return line, col
	}
	units := 0
	for _, r := range file.Source {
		if units >= n.Range[0] {
			break
		}
		if r == '\n' {
			line, col = line+1, 1
		} else {
			col += utf16Len(r)
		}
		units += utf16Len(r)
	}
	return line, col
}

func utf16Len(r rune) int {
	if r >= 0x10000 {
		return 2
	}
	return 1
}
