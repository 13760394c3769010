package cmd

import (
	"github.com/spf13/cobra"

	"github.com/maastricht-university/labgrid/orchestrator"
)

func (a *app) tierCmd() *cobra.Command {
	tier := &cobra.Command{
		Use:   "tier",
		Short: "Edit the tiers of existing TextGrid files",
	}
	tier.PersistentFlags().StringP("in", "i", "", "folder holding the .TextGrid files")
	tier.PersistentFlags().StringP("out", "o", "", "folder receiving the edited files (may equal --in)")
	tier.PersistentFlags().StringP("tier", "t", "TargetWord", "name of the tier to create")

	add := &cobra.Command{
		Use:   "add",
		Short: "Add an empty interval tier to every TextGrid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, (*orchestrator.Pipeline).AddTier)
		},
	}

	keywords := &cobra.Command{
		Use:   "keywords",
		Short: "Copy intervals whose text is a keyword into a new tier",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, (*orchestrator.Pipeline).CopyKeywords)
		},
	}
	keywords.Flags().StringP("source", "s", "words", "tier searched for keywords")
	keywords.Flags().StringSliceP("keyword", "k", nil, "keyword to copy (repeatable or comma separated)")

	tier.AddCommand(add, keywords)
	return tier
}
