package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"

	"github.com/Veraticus/numbercruncher/internal/cleaner"
	"github.com/Veraticus/numbercruncher/internal/model"
)

// FileResult reports how one source file loaded.
type FileResult struct {
	Err    error
	Source Source
	Stats  cleaner.Stats
}

// Batch is the merged, year-stamped result of loading several files.
type Batch struct {
	Records []model.Record
	Files   []FileResult
	Skipped []Skip
}

// Years lists the distinct years that contributed records, in load order.
func (b Batch) Years() []int {
	var years []int
	seen := make(map[int]struct{})
	for _, f := range b.Files {
		if f.Err != nil || f.Stats.RowCount == 0 {
			continue
		}
		if _, ok := seen[f.Source.Year]; ok {
			continue
		}
		seen[f.Source.Year] = struct{}{}
		years = append(years, f.Source.Year)
	}
	return years
}

// Failed returns the files that could not be loaded.
func (b Batch) Failed() []FileResult {
	var out []FileResult
	for _, f := range b.Files {
		if f.Err != nil {
			out = append(out, f)
		}
	}
	return out
}

// Loader reads yearly exports with a shared set of cleaning options.
type Loader struct {
	// Progress receives a progress bar when non-nil.
	Progress io.Writer
	Options  cleaner.Options
}

// NewLoader creates a loader with the given cleaning options.
func NewLoader(opts cleaner.Options) *Loader {
	return &Loader{Options: opts}
}

// LoadDir discovers and loads every matching file in dir.
func (l *Loader) LoadDir(ctx context.Context, dir, pattern string) (Batch, error) {
	sources, skips, err := Discover(dir, pattern)
	if err != nil {
		return Batch{}, err
	}
	batch, err := l.LoadSources(ctx, sources)
	batch.Skipped = append(skips, batch.Skipped...)
	return batch, err
}

// LoadFiles resolves command-line style arguments and loads them.
func (l *Loader) LoadFiles(ctx context.Context, args []string, pattern string) (Batch, error) {
	sources, skips, err := Resolve(args, pattern)
	if err != nil {
		return Batch{}, err
	}
	batch, err := l.LoadSources(ctx, sources)
	batch.Skipped = append(skips, batch.Skipped...)
	return batch, err
}

// LoadSources cleans each source, stamps its records with the source year
// and concatenates them. A file that fails to load is reported in Files and
// contributes no records; only cancellation aborts the batch.
func (l *Loader) LoadSources(ctx context.Context, sources []Source) (Batch, error) {
	var batch Batch
	bar := l.newProgressBar(len(sources))

	for _, src := range sources {
		select {
		case <-ctx.Done():
			return batch, ctx.Err()
		default:
		}

		ds, err := l.loadOne(src)
		batch.Files = append(batch.Files, FileResult{Source: src, Stats: ds.Stats, Err: err})
		if err != nil {
			slog.Warn("Failed to load file", "file", filepath.Base(src.Path), "error", err)
		} else {
			for i := range ds.Records {
				ds.Records[i].Year = src.Year
			}
			batch.Records = append(batch.Records, ds.Records...)
			slog.Debug("Loaded file",
				"file", filepath.Base(src.Path),
				"year", src.Year,
				"rows", ds.Stats.RowCount,
				"dropped", ds.Stats.Dropped(),
				"fingerprint", cleaner.ShortFingerprint(ds.Stats.Fingerprint))
		}

		if bar != nil {
			if err := bar.Add(1); err != nil {
				slog.Warn("Failed to update progress bar", "error", err)
			}
		}
	}

	return batch, nil
}

func (l *Loader) loadOne(src Source) (cleaner.Dataset, error) {
	f, err := os.Open(src.Path)
	if err != nil {
		return cleaner.Dataset{}, fmt.Errorf("failed to open %s: %w", src.Path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			slog.Warn("Failed to close file", "file", src.Path, "error", cerr)
		}
	}()

	ds, err := cleaner.Load(f, l.Options)
	if err != nil {
		return cleaner.Dataset{}, fmt.Errorf("%s: %w", filepath.Base(src.Path), err)
	}
	return ds, nil
}

func (l *Loader) newProgressBar(total int) *progressbar.ProgressBar {
	if l.Progress == nil || total == 0 {
		return nil
	}
	w := l.Progress
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Loading exports...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(w); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}
