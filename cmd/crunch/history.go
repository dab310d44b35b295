package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/numbercruncher/internal/common"
	"github.com/Veraticus/numbercruncher/internal/render"
	"github.com/Veraticus/numbercruncher/internal/storage"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded file loads and report runs",
		Args:  cobra.NoArgs,
		RunE:  runHistory,
	}

	cmd.Flags().IntP("limit", "l", 20, "entries to show per section (0 for all)")

	return cmd
}

func runHistory(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	limit, _ := cmd.Flags().GetInt("limit")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.Ledger.Enabled {
		return common.NewUserError("the ledger is disabled (ledger.enabled: false)", nil)
	}

	ledger, err := storage.Open(ctx, cfg.Ledger.Path)
	if err != nil {
		return common.NewUserError("cannot open ledger "+cfg.Ledger.Path, err)
	}
	defer closeLedger(ledger)

	loads, err := ledger.ListLoads(ctx, limit)
	if err != nil {
		return err
	}
	reports, err := ledger.ListReports(ctx, limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(loads) == 0 && len(reports) == 0 {
		fmt.Fprintln(out, render.SubtleStyle.Render("No loads recorded yet."))
		return nil
	}

	fmt.Fprintln(out, render.FormatTitle("Loads"))
	if err := render.Loads(out, loads); err != nil {
		return err
	}
	fmt.Fprintln(out, render.FormatTitle("Reports"))
	return render.Reports(out, reports)
}
