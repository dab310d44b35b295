package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Veraticus/numbercruncher/internal/cleaner"
	"github.com/Veraticus/numbercruncher/internal/common"
	"github.com/Veraticus/numbercruncher/internal/ingest"
	"github.com/Veraticus/numbercruncher/internal/render"
)

func inspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Clean one export and show what was kept",
		Long: `Load a single export, print its integrity stats and validation report,
and preview the first and last cleaned rows.`,
		Args: cobra.ExactArgs(1),
		RunE: runInspect,
	}

	cmd.Flags().IntP("rows", "n", 5, "rows to preview from each end")

	return cmd
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]
	rows, _ := cmd.Flags().GetInt("rows")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	opts, err := cfg.CleanerOptions()
	if err != nil {
		return common.NewUserError("invalid input settings", err)
	}

	f, err := os.Open(path) //nolint:gosec // user-specified input path
	if err != nil {
		return common.NewUserError("cannot open "+path, err)
	}
	defer func() { _ = f.Close() }()

	ds, err := cleaner.Load(f, opts)
	if err != nil {
		return common.NewUserError("cannot load "+filepath.Base(path), err)
	}

	out := cmd.OutOrStdout()
	title := filepath.Base(path)
	if year, yearErr := ingest.ExtractYear(path); yearErr == nil {
		title = fmt.Sprintf("%s (%d)", title, year)
	} else {
		slog.Debug("No year in file name", "file", filepath.Base(path))
	}
	fmt.Fprintln(out, render.FormatTitle(title))

	if err := render.Summary(out, ds.Stats, cleaner.Describe(ds.Records)); err != nil {
		return fmt.Errorf("failed to render summary: %w", err)
	}

	if rows <= 0 || len(ds.Records) == 0 {
		return nil
	}
	head, tail := previewRows(len(ds.Records), rows)
	fmt.Fprintln(out, render.SubtleStyle.Render(fmt.Sprintf("First %d rows", head)))
	if err := render.Records(out, ds.Records[:head], ds.Stats.ColumnNames); err != nil {
		return err
	}
	if tail > 0 {
		fmt.Fprintln(out, render.SubtleStyle.Render(fmt.Sprintf("Last %d rows", tail)))
		if err := render.Records(out, ds.Records[len(ds.Records)-tail:], ds.Stats.ColumnNames); err != nil {
			return err
		}
	}
	return nil
}

// previewRows returns how many rows to show from the head and tail of total
// without repeating any.
func previewRows(total, n int) (head, tail int) {
	head = min(n, total)
	tail = min(n, total-head)
	return head, tail
}
