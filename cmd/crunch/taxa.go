package main

import (
	"github.com/spf13/cobra"

	"github.com/Veraticus/numbercruncher/internal/common"
	"github.com/Veraticus/numbercruncher/internal/config"
	"github.com/Veraticus/numbercruncher/internal/render"
)

func taxaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "taxa",
		Short: "List taxa, their match rules and effective flags",
		Long: `Show every taxon in evaluation order. Relabeling runs top to bottom and
later taxa see labels written by earlier ones.`,
		Args: cobra.NoArgs,
		RunE: runTaxa,
	}

	cmd.Flags().StringSlice("exclude", nil, "preview with these taxa excluded")
	cmd.Flags().StringSlice("no-group", nil, "preview with these taxa ungrouped")
	cmd.Flags().Bool("yaml", false, "print the effective flags as a config file snippet")

	return cmd
}

func runTaxa(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	rules, err := cfg.RuleSet()
	if err != nil {
		return common.NewUserError("invalid taxonomy settings", err)
	}

	exclude, _ := cmd.Flags().GetStringSlice("exclude")
	noGroup, _ := cmd.Flags().GetStringSlice("no-group")
	if rules, err = applyTaxonFlags(rules, exclude, noGroup); err != nil {
		return common.NewUserError("invalid taxon", err)
	}

	if asYAML, _ := cmd.Flags().GetBool("yaml"); asYAML {
		return config.WriteTaxonomyYAML(cmd.OutOrStdout(), rules)
	}
	return render.Taxa(cmd.OutOrStdout(), rules)
}
