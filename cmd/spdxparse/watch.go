package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/gospdx/gospdx"
	"github.com/gospdx/gospdx/internal/types"
)

const defaultDebounce = 100 * time.Millisecond

func (c *cli) watchCmd() *cobra.Command {
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:   "watch FILE...",
		Short: "Re-read documents whenever they change",
		Long: `Read the documents, print their summaries, then re-read and print each
one again whenever it is written. Stops on interrupt.`,
		Example: `  spdxparse watch sbom.spdx.json
  spdxparse watch --debounce 500ms a.spdx b.spdx`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			show := func(path string) {
				doc, err := gospdx.ReadFile(path, opts...)
				printResult(w, gospdx.Result{Path: path, Document: doc, Err: err})
			}

			fw, err := newFileWatcher(args, debounce, c.setupLogger())
			if err != nil {
				return err
			}
			defer fw.Close() //nolint:errcheck // shutting down

			for _, p := range args {
				show(p)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return fw.Run(ctx, func(path string) {
				fmt.Fprintf(w, "\n--- %s changed at %s\n", path, time.Now().Format(time.TimeOnly))
				show(path)
			})
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", defaultDebounce, "wait this long after the last write before re-reading")
	return cmd
}

// fileWatcher reports writes to a fixed set of files. It watches their
// directories rather than the files so that editors which save by
// renaming a temporary file over the original are still seen.
type fileWatcher struct {
	w        *fsnotify.Watcher
	targets  map[string]string // absolute path -> path as given
	debounce time.Duration
	types.Logger
}

func newFileWatcher(paths []string, debounce time.Duration, logger *slog.Logger) (*fileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	fw := &fileWatcher{
		w:        w,
		targets:  make(map[string]string, len(paths)),
		debounce: debounce,
		Logger:   types.Logger{L: types.Component(logger, "watch")},
	}

	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			_ = w.Close()
			return nil, err
		}
		if _, err := os.Stat(abs); err != nil {
			_ = w.Close()
			return nil, err
		}
		fw.targets[abs] = p
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
		fw.Log(slog.LevelDebug, "watching directory", slog.String("path", dir))
	}
	return fw, nil
}

// Run calls onChange with the path as given once a target has been quiet
// for the debounce interval after a write. It blocks until ctx is done.
// onChange runs on Run's goroutine.
func (fw *fileWatcher) Run(ctx context.Context, onChange func(path string)) error {
	db := newDebouncer(ctx, fw.debounce)
	defer db.stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			name := filepath.Clean(ev.Name)
			if _, ok := fw.targets[name]; !ok {
				continue
			}
			if fw.TraceEnabled() {
				fw.Trace("file event", slog.String("path", name), slog.String("op", ev.Op.String()))
			}
			db.touch(name)

		case f := <-db.fire:
			if !db.take(f) {
				continue
			}
			fw.Log(slog.LevelDebug, "file changed", slog.String("path", f.name))
			onChange(fw.targets[f.name])

		case err, ok := <-fw.w.Errors:
			if !ok {
				return nil
			}
			fw.Log(slog.LevelWarn, "watch error", slog.Any("error", err))
		}
	}
}

// firing is a debounce timer's report that name has been quiet.
type firing struct {
	name string
	gen  int
}

type pendingTimer struct {
	timer *time.Timer
	gen   int
}

// debouncer restarts a per-name timer on every touch. Each timer sends a
// firing on fire when it expires; take accepts only the firing of the
// latest timer for a name, since an expired timer may still be blocked
// sending when the name is touched again. It is not safe for concurrent
// use apart from the timers' sends.
type debouncer struct {
	ctx     context.Context
	delay   time.Duration
	fire    chan firing
	pending map[string]*pendingTimer
}

func newDebouncer(ctx context.Context, delay time.Duration) *debouncer {
	return &debouncer{
		ctx:     ctx,
		delay:   delay,
		fire:    make(chan firing),
		pending: make(map[string]*pendingTimer),
	}
}

func (d *debouncer) touch(name string) {
	p, ok := d.pending[name]
	if ok {
		p.timer.Stop()
	} else {
		p = &pendingTimer{}
		d.pending[name] = p
	}
	p.gen++
	f := firing{name: name, gen: p.gen}
	p.timer = time.AfterFunc(d.delay, func() {
		select {
		case d.fire <- f:
		case <-d.ctx.Done():
		}
	})
}

// take reports whether f is current and, if so, clears the name.
func (d *debouncer) take(f firing) bool {
	p, ok := d.pending[f.name]
	if !ok || p.gen != f.gen {
		return false
	}
	delete(d.pending, f.name)
	return true
}

func (d *debouncer) stop() {
	for _, p := range d.pending {
		p.timer.Stop()
	}
}

// Close stops watching.
func (fw *fileWatcher) Close() error {
	return fw.w.Close()
}
