package main

import (
	"context"
	"fmt"
	"os"

	"github.com/proplint/proplint/internal/diagnostic"
	"github.com/proplint/proplint/internal/lintcache"
)

// lint checks files, reusing cached results for unchanged files when a
// cache path is set. Cache failures are reported and otherwise ignored.
func (s session) lint(ctx context.Context, files []string) ([]diagnostic.Diagnostic, error) {
	if s.cachePath == "" {
		return s.linter.Lint(ctx, files)
	}

	configHash, err := lintcache.HashValue(s.cfg)
	if err != nil {
		return nil, fmt.Errorf("hashing config: %w", err)
	}
	cache := lintcache.LoadFor(s.cachePath, configHash)

	hashes := make([]string, len(files))
	cached := make([][]diagnostic.Diagnostic, len(files))
	hit := make([]bool, len(files))
	var misses []string
	for i, f := range files {
		hashes[i] = lintcache.HashFile(f)
		if diags, ok := cache.Lookup(f, hashes[i]); ok {
			cached[i], hit[i] = diags, true
			continue
		}
		misses = append(misses, f)
	}

	fresh, err := s.linter.Lint(ctx, misses)
	if err != nil {
		return nil, err
	}
	byFile := make(map[string][]diagnostic.Diagnostic, len(misses))
	for _, d := range fresh {
		byFile[d.File] = append(byFile[d.File], d)
	}

	var out []diagnostic.Diagnostic
	for i, f := range files {
		if hit[i] {
			out = append(out, cached[i]...)
			continue
		}
		cache.Store(f, hashes[i], byFile[f])
		out = append(out, byFile[f]...)
	}

	if s.prune {
		cache.Prune(files)
	}
	if err := lintcache.Save(s.cachePath, cache); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	if len(misses) < len(files) {
		fmt.Fprintf(os.Stderr, "reused cached results for %d file(s)\n", len(files)-len(misses))
	}
	return out, nil
}
