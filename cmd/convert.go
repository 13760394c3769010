package cmd

import (
	"github.com/spf13/cobra"

	"github.com/maastricht-university/labgrid/orchestrator"
)

func (a *app) convertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert every .lab file of a folder into a TextGrid",
		Long: `Convert reads the Julius segmentation-kit .lab files of the input folder
and writes one single-tier TextGrid per file into the output folder.
Files that cannot be converted are reported and skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, (*orchestrator.Pipeline).Convert)
		},
	}
	cmd.Flags().StringP("in", "i", "", "folder holding the .lab files")
	cmd.Flags().StringP("out", "o", "", "folder receiving the .TextGrid files (created if missing)")
	cmd.Flags().BoolP("mora", "m", false, "group phonemes into moras")
	return cmd
}
