// Package ingest discovers yearly export files, cleans each one and merges
// the year-stamped records into one set.
package ingest

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/Veraticus/numbercruncher/internal/common"
)

// DefaultPattern matches delimited exports.
const DefaultPattern = "*.csv"

// Source is one file paired with the year it covers.
type Source struct {
	Path string
	Year int
}

// Skip records a file left out of a batch and why.
type Skip struct {
	Err  error
	Path string
}

// Discover lists files in dir matching pattern. Files without a year in the
// name are returned as skips rather than failing the whole discovery.
func Discover(dir, pattern string) ([]Source, []Skip, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read directory: %w", err)
	}
	if !info.IsDir() {
		return nil, nil, fmt.Errorf("%s is not a directory", dir)
	}

	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
	}

	var files []string
	for _, m := range matches {
		if fi, statErr := os.Stat(m); statErr == nil && fi.Mode().IsRegular() {
			files = append(files, m)
		}
	}
	if len(files) == 0 {
		return nil, nil, fmt.Errorf("%w: %s in %s", common.ErrNoFiles, pattern, dir)
	}

	sources, skips := classifyPaths(files)
	return sources, skips, nil
}

// Resolve turns command-line arguments into sources. A single directory
// argument is discovered with pattern; other arguments are expanded as globs
// and must name existing files.
func Resolve(args []string, pattern string) ([]Source, []Skip, error) {
	if len(args) == 1 {
		if fi, err := os.Stat(args[0]); err == nil && fi.IsDir() {
			return Discover(args[0], pattern)
		}
	}

	var files []string
	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid pattern %s: %w", arg, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(arg); err == nil {
				files = append(files, arg)
			} else {
				slog.Warn("No files found matching pattern", "pattern", arg)
			}
			continue
		}
		files = append(files, matches...)
	}
	if len(files) == 0 {
		return nil, nil, fmt.Errorf("%w to load", common.ErrNoFiles)
	}

	sources, skips := classifyPaths(files)
	return sources, skips, nil
}

func classifyPaths(files []string) ([]Source, []Skip) {
	var (
		sources []Source
		skips   []Skip
		seen    = make(map[string]struct{}, len(files))
	)
	for _, f := range files {
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}

		year, err := ExtractYear(f)
		if err != nil {
			slog.Warn("Skipping file without a year in its name", "file", filepath.Base(f))
			skips = append(skips, Skip{Path: f, Err: err})
			continue
		}
		sources = append(sources, Source{Path: f, Year: year})
	}

	sort.SliceStable(sources, func(i, j int) bool {
		if sources[i].Year != sources[j].Year {
			return sources[i].Year < sources[j].Year
		}
		return sources[i].Path < sources[j].Path
	})
	return sources, skips
}
