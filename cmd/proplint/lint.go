package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/proplint/proplint/internal/config"
	"github.com/proplint/proplint/internal/diagnostic"
	"github.com/proplint/proplint/internal/lint"
	"github.com/proplint/proplint/internal/lintcache"
)

// options are the flags shared by lint and watch.
type options struct {
	configPath string
	format     string
	color      string
	estree     bool
	strict     bool
	quiet      bool
	jobs       int
	cache      bool
	cacheFile  string
	paths      []string
}

// cachePath returns where results are cached, or "" when caching is off.
func (o *options) cachePath() string {
	if !o.cache {
		return ""
	}
	if o.cacheFile != "" {
		return o.cacheFile
	}
	return lintcache.FileName
}

func parseFlags(name string, args []string) (*options, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	opts := &options{}

	fs.StringVar(&opts.configPath, "config", "", "Path to proplint config file (proplint.config.json)")
	fs.StringVar(&opts.format, "format", "", "Output format: text or json")
	fs.StringVar(&opts.color, "color", "", "Colorize text output: auto, always or never")
	fs.BoolVar(&opts.estree, "estree", false, "Inputs are ESTree JSON documents")
	fs.BoolVar(&opts.strict, "strict", false, "Report warnings as errors")
	fs.BoolVar(&opts.quiet, "quiet", false, "Report errors only")
	fs.IntVar(&opts.jobs, "jobs", 0, "Files checked in parallel (0 = number of CPUs)")
	fs.BoolVar(&opts.cache, "cache", false, "Reuse results for unchanged files")
	fs.StringVar(&opts.cacheFile, "cache-location", "", "Cache file (default "+lintcache.FileName+")")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: proplint %s [flags] [paths...]\n\nFlags:\n", name)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	opts.paths = fs.Args()
	if len(opts.paths) == 0 {
		opts.paths = []string{"."}
	}
	return opts, nil
}

// loadConfig reads the config named by --config, or the first default
// config file in the working directory, and applies flag overrides.
// Validation warnings are returned as diagnostics against the config file.
func loadConfig(opts *options) (config.Config, []diagnostic.Diagnostic, error) {
	cfg := config.DefaultConfig()
	notes := diagnostic.NewCollector(false, false)

	path := opts.configPath
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return cfg, nil, fmt.Errorf("could not get working directory: %w", err)
		}
		path = config.Find(cwd)
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return cfg, nil, err
		}
		cfg = *loaded
		fmt.Fprintf(os.Stderr, "loaded config from %s\n", filepath.Base(path))
		for _, w := range cfg.ValidateDetailed().Warnings {
			notes.Warn(diagnostic.CategoryConfigInvalid, path, 0, w)
		}
	}

	if opts.format != "" {
		cfg.Output.Format = opts.format
	}
	if opts.color != "" {
		cfg.Output.Color = opts.color
	}
	if opts.jobs != 0 {
		cfg.Jobs = opts.jobs
	}
	cfg.Strict = cfg.Strict || opts.strict
	cfg.Quiet = cfg.Quiet || opts.quiet

	if result := cfg.ValidateDetailed(); !result.IsValid() {
		return cfg, nil, fmt.Errorf("invalid options: %s", result.Errors[0])
	}
	return cfg, notes.Diagnostics(), nil
}

func runLint(args []string) int {
	opts, err := parseFlags("lint", args)
	if err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 1
	}
	cfg, notes, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	linter := lint.New(cfg, opts.estree)
	files, err := linter.Collect(opts.paths)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	s := session{linter: linter, cfg: cfg, notes: notes, cachePath: opts.cachePath(), prune: true}
	return s.lintFiles(context.Background(), files, os.Stdout)
}

// session is one configured lint invocation, shared by the runs of watch.
type session struct {
	linter    *lint.Linter
	cfg       config.Config
	notes     []diagnostic.Diagnostic // reported ahead of the lint results
	cachePath string

	// prune drops cache entries for files outside the current run.
	prune bool
}

// lintFiles checks files and prints the report. It returns the process exit
// code: 1 when any error was reported.
func (s session) lintFiles(ctx context.Context, files []string, out io.Writer) int {
	cfg := s.cfg
	start := time.Now()
	diags, err := s.lint(ctx, files)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	c := diagnostic.NewCollector(cfg.Strict, cfg.Quiet)
	for _, d := range s.notes {
		c.Add(d)
	}
	for _, d := range diags {
		c.Add(d)
	}

	if cfg.Output.Format == "json" {
		err = diagnostic.WriteJSON(out, c.Diagnostics())
	} else {
		err = diagnostic.WriteText(out, c.Diagnostics(), useColor(cfg.Output.Color, out))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: writing report: %v\n", err)
		return 1
	}

	fmt.Fprintf(os.Stderr, "checked %d file(s) in %s: %s\n", len(files), time.Since(start).Round(time.Millisecond), c.Summary())
	if c.HasErrors() {
		return 1
	}
	return 0
}

func useColor(mode string, out io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := out.(*os.File)
	if !ok || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
