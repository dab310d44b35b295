package main

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Veraticus/numbercruncher/internal/aggregate"
	"github.com/Veraticus/numbercruncher/internal/cleaner"
	"github.com/Veraticus/numbercruncher/internal/common"
	"github.com/Veraticus/numbercruncher/internal/export"
	"github.com/Veraticus/numbercruncher/internal/ingest"
	"github.com/Veraticus/numbercruncher/internal/model"
	"github.com/Veraticus/numbercruncher/internal/pipeline"
	"github.com/Veraticus/numbercruncher/internal/render"
	"github.com/Veraticus/numbercruncher/internal/storage"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <dir | files...>",
		Short: "Pivot income by category and year",
		Long: `Load yearly exports, classify categories into taxa and print an income pivot.

The year of each file is taken from its name ("Inventory Income 2023.csv").

Examples:
  # Every export in a directory
  crunch report ~/exports

  # Two years, years on rows, tents left out
  crunch report ~/exports --years 2023,2024 --orientation by-year --exclude tent

  # Keep audio/visual categories separate and save a workbook
  crunch report ~/exports/*.csv --no-group audio_visual --xlsx pivot.xlsx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runReport,
	}

	cmd.Flags().IntSlice("years", nil, "years to include (default: every year loaded)")
	cmd.Flags().StringP("orientation", "o", "", "pivot orientation: by-category or by-year")
	cmd.Flags().StringSlice("exclude", nil, "taxa to exclude (e.g. tent,lavatory)")
	cmd.Flags().StringSlice("no-group", nil, "taxa whose categories keep their original labels")
	cmd.Flags().String("pattern", "", "file glob when a directory is given (default: *.csv)")
	cmd.Flags().String("xlsx", "", "also write the pivot to this .xlsx file")
	cmd.Flags().String("csv", "", "also write the classified records to this .csv file")
	cmd.Flags().String("pivot-csv", "", "also write the pivot to this .csv file")
	cmd.Flags().BoolP("quiet", "q", false, "hide the progress bar")

	return cmd
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	runID := uuid.NewString()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	batch, err := loadBatch(cmd, cfg, args)
	if err != nil {
		return err
	}

	opts, err := reportOptions(cmd, cfg.PipelineOptions, batch)
	if err != nil {
		return common.NewUserError("invalid report options", err)
	}

	res := pipeline.Run(batch.Records, opts)
	fingerprint := cleaner.Fingerprint(batch.Records)

	slog.Info("Report built",
		"run_id", runID,
		"files", len(batch.Files),
		"records", len(batch.Records),
		"classified", res.Classify.Output,
		"excluded", res.Classify.Excluded,
		"uncategorized", res.Classify.Uncategorized,
		"years", opts.Years.Sorted())

	if err := render.PivotTable(cmd.OutOrStdout(), res.Table, res.Title); err != nil {
		return fmt.Errorf("failed to render pivot: %w", err)
	}

	if err := writeReportOutputs(cmd, res); err != nil {
		return err
	}

	ledger := openLedger(ctx, cfg)
	defer closeLedger(ledger)
	recordLoads(ctx, ledger, batch)
	if ledger != nil {
		entry := &storage.ReportEntry{
			RunID:       runID,
			Title:       res.Title,
			Orientation: string(res.Table.Orientation),
			Years:       joinYears(opts.Years.Sorted()),
			Records:     len(res.Records),
			Total:       res.Table.Total(),
			Fingerprint: fingerprint,
		}
		if err := ledger.RecordReport(ctx, entry); err != nil {
			slog.Warn("Failed to record report", "error", err)
		}
	}

	return nil
}

// reportOptions resolves pipeline options from config, then applies the
// command's flags on top.
func reportOptions(cmd *cobra.Command, fromConfig func(aggregate.YearSet) (pipeline.Options, error), batch ingest.Batch) (pipeline.Options, error) {
	opts, err := fromConfig(aggregate.YearsOf(batch.Records))
	if err != nil {
		return pipeline.Options{}, err
	}

	if cmd.Flags().Changed("years") {
		years, _ := cmd.Flags().GetIntSlice("years")
		opts.Years = aggregate.NewYearSet(years...)
	}
	if o, _ := cmd.Flags().GetString("orientation"); o != "" {
		if opts.Orientation, err = model.ParseOrientation(o); err != nil {
			return pipeline.Options{}, err
		}
	}

	exclude, _ := cmd.Flags().GetStringSlice("exclude")
	noGroup, _ := cmd.Flags().GetStringSlice("no-group")
	if opts.Rules, err = applyTaxonFlags(opts.Rules, exclude, noGroup); err != nil {
		return pipeline.Options{}, err
	}

	return opts, nil
}

func writeReportOutputs(cmd *cobra.Command, res pipeline.Result) error {
	outputs := []struct {
		flag  string
		write func(io.Writer) error
	}{
		{flag: "xlsx", write: func(w io.Writer) error { return export.WritePivotXLSX(w, res.Table, res.Title) }},
		{flag: "pivot-csv", write: func(w io.Writer) error { return export.WritePivotCSV(w, res.Table) }},
		{flag: "csv", write: func(w io.Writer) error { return export.WriteRecordsCSV(w, res.Records) }},
	}

	for _, out := range outputs {
		path, _ := cmd.Flags().GetString(out.flag)
		if path == "" {
			continue
		}
		if err := writeOutput(path, out.write); err != nil {
			return common.NewUserError("failed to write "+out.flag+" output", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), render.FormatSuccess("Wrote "+path))
	}
	return nil
}

func joinYears(years []int) string {
	parts := make([]string, len(years))
	for i, y := range years {
		parts[i] = strconv.Itoa(y)
	}
	return strings.Join(parts, ",")
}
