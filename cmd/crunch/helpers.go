package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/numbercruncher/internal/common"
	"github.com/Veraticus/numbercruncher/internal/config"
	"github.com/Veraticus/numbercruncher/internal/ingest"
	"github.com/Veraticus/numbercruncher/internal/render"
	"github.com/Veraticus/numbercruncher/internal/storage"
	"github.com/Veraticus/numbercruncher/internal/taxonomy"
)

var envKeyReplacer = strings.NewReplacer(".", "_")

// loadConfig reads the typed configuration from the global viper instance.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return config.Config{}, common.NewUserError("invalid configuration", err)
	}
	return cfg, nil
}

// openLedger opens the ledger, or returns nil when it is disabled. Ledger
// failures never block a report; they are logged and the ledger is skipped.
func openLedger(ctx context.Context, cfg config.Config) *storage.Ledger {
	if !cfg.Ledger.Enabled {
		return nil
	}
	ledger, err := storage.Open(ctx, cfg.Ledger.Path)
	if err != nil {
		slog.Warn("Ledger unavailable, continuing without it", "path", cfg.Ledger.Path, "error", err)
		return nil
	}
	return ledger
}

func closeLedger(ledger *storage.Ledger) {
	if ledger == nil {
		return
	}
	if err := ledger.Close(); err != nil {
		slog.Warn("Failed to close ledger", "error", err)
	}
}

// loadBatch resolves args and loads every export. It fails only when no
// records at all could be loaded.
func loadBatch(cmd *cobra.Command, cfg config.Config, args []string) (ingest.Batch, error) {
	opts, err := cfg.CleanerOptions()
	if err != nil {
		return ingest.Batch{}, common.NewUserError("invalid input settings", err)
	}

	pattern := cfg.Input.Pattern
	if p, _ := cmd.Flags().GetString("pattern"); p != "" {
		pattern = p
	}

	loader := ingest.NewLoader(opts)
	if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
		loader.Progress = cmd.ErrOrStderr()
	}

	batch, err := loader.LoadFiles(cmd.Context(), args, pattern)
	if err != nil {
		return batch, common.NewUserError("failed to load exports", err)
	}

	for _, s := range batch.Skipped {
		fmt.Fprintln(cmd.ErrOrStderr(), render.FormatWarning(fmt.Sprintf("Skipped %s: %v", filepath.Base(s.Path), s.Err)))
	}
	for _, f := range batch.Failed() {
		fmt.Fprintln(cmd.ErrOrStderr(), render.FormatWarning(fmt.Sprintf("Could not load %s: %v", filepath.Base(f.Source.Path), f.Err)))
	}

	if len(batch.Records) == 0 {
		return batch, common.NewUserError("nothing to report", common.ErrEmptyDataset)
	}
	return batch, nil
}

// recordLoads writes each successfully loaded file to the ledger and logs
// files whose content changed since their previous load.
func recordLoads(ctx context.Context, ledger *storage.Ledger, batch ingest.Batch) {
	if ledger == nil {
		return
	}
	for _, f := range batch.Files {
		if f.Err != nil {
			continue
		}
		path, err := filepath.Abs(f.Source.Path)
		if err != nil {
			path = f.Source.Path
		}

		if last, lastErr := ledger.LastLoad(ctx, path); lastErr == nil && last.Fingerprint != f.Stats.Fingerprint {
			slog.Info("File changed since last load",
				"file", filepath.Base(path),
				"previous", last.Fingerprint,
				"current", f.Stats.Fingerprint,
				"previous_rows", last.Rows,
				"rows", f.Stats.RowCount)
		}

		entry := &storage.LoadEntry{
			Path:             path,
			Year:             f.Source.Year,
			Fingerprint:      f.Stats.Fingerprint,
			Rows:             f.Stats.RowCount,
			Columns:          f.Stats.ColumnCount,
			DroppedEmpty:     f.Stats.DroppedEmpty,
			DroppedHeader:    f.Stats.DroppedHeader,
			DroppedNoMeasure: f.Stats.DroppedNoMeasure,
		}
		if err := ledger.RecordLoad(ctx, entry); err != nil {
			slog.Warn("Failed to record load", "file", filepath.Base(path), "error", err)
		}
	}
}

// applyTaxonFlags layers --exclude and --no-group on top of configured rules.
func applyTaxonFlags(rules taxonomy.RuleSet, exclude, noGroup []string) (taxonomy.RuleSet, error) {
	var err error
	for _, key := range exclude {
		rule, ok := rules.Lookup(key)
		if !ok {
			return nil, fmt.Errorf("%w: %q", common.ErrUnknownTaxon, key)
		}
		if rules, err = rules.With(key, taxonomy.Flags{Include: false, Group: rule.Group}); err != nil {
			return nil, err
		}
	}
	for _, key := range noGroup {
		rule, ok := rules.Lookup(key)
		if !ok {
			return nil, fmt.Errorf("%w: %q", common.ErrUnknownTaxon, key)
		}
		if rules, err = rules.With(key, taxonomy.Flags{Include: rule.Include, Group: false}); err != nil {
			return nil, err
		}
	}
	return rules, nil
}

// createOutput opens path for writing, creating parent directories.
func createOutput(path string) (io.WriteCloser, error) {
	path = config.ExpandPath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path) //nolint:gosec // user-specified output path
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	return f, nil
}

// writeOutput creates path and hands it to write, closing it afterwards.
func writeOutput(path string, write func(io.Writer) error) error {
	f, err := createOutput(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
