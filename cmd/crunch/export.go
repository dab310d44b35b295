package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Veraticus/numbercruncher/internal/common"
	"github.com/Veraticus/numbercruncher/internal/export"
	"github.com/Veraticus/numbercruncher/internal/render"
	"github.com/Veraticus/numbercruncher/internal/taxonomy"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <dir | files...>",
		Short: "Write cleaned records from every export to one CSV",
		Long: `Load yearly exports and write the cleaned, year-stamped records in canonical
column order. The output can be loaded again and cleans to the same records.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runExport,
	}

	cmd.Flags().String("out", "", "output CSV path (required)")
	cmd.Flags().Bool("classified", false, "apply the configured taxonomy before writing")
	cmd.Flags().String("pattern", "", "file glob when a directory is given (default: *.csv)")
	cmd.Flags().BoolP("quiet", "q", false, "hide the progress bar")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out, _ := cmd.Flags().GetString("out")
	classified, _ := cmd.Flags().GetBool("classified")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	batch, err := loadBatch(cmd, cfg, args)
	if err != nil {
		return err
	}

	records := batch.Records
	if classified {
		rules, rulesErr := cfg.RuleSet()
		if rulesErr != nil {
			return common.NewUserError("invalid taxonomy settings", rulesErr)
		}
		records = taxonomy.Classify(records, rules)
	}

	if err := writeOutput(out, func(w io.Writer) error { return export.WriteRecordsCSV(w, records) }); err != nil {
		return common.NewUserError("failed to write "+out, err)
	}

	ledger := openLedger(ctx, cfg)
	defer closeLedger(ledger)
	recordLoads(ctx, ledger, batch)

	slog.Info("Exported records", "records", len(records), "files", len(batch.Files), "out", out)
	fmt.Fprintln(cmd.OutOrStdout(), render.FormatSuccess(fmt.Sprintf("Wrote %d records to %s", len(records), out)))
	return nil
}
