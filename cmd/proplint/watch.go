package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/proplint/proplint/internal/lint"
	"github.com/proplint/proplint/internal/watcher"
)

// runWatch lints all files once, then re-lints the files that change until
// interrupted.
func runWatch(args []string) int {
	opts, err := parseFlags("watch", args)
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	linter := lint.New(cfg, opts.estree)
	files, err := linter.Collect(opts.paths)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	s := session{linter: linter, cfg: cfg, notes: notes, cachePath: opts.cachePath(), prune: true}
	s.lintFiles(ctx, files, os.Stdout)
	s.notes, s.prune = nil, false

	relint := func(events []watcher.Event) {
		changed, err := linter.Collect(watcher.Paths(events))
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return
		}
		fmt.Fprintf(os.Stderr, "\ndetected %d change(s), linting %d file(s)...\n", len(events), len(changed))
		if len(changed) > 0 {
			s.lintFiles(ctx, changed, os.Stdout)
		}
	}

	w := watcher.New(opts.paths, linter.Accepts, 100*time.Millisecond, relint)
	fmt.Fprintln(os.Stderr, "watching for changes...")
	if err := w.Watch(ctx); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	fmt.Fprintln(os.Stderr, "\nshutting down...")
	return 0
}
