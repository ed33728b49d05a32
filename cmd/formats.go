package cmd

import (
	"github.com/AnyUserName/imgembed-cli/internal/report"
	"github.com/spf13/cobra"
)

var formatsJSON bool

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the image formats the decoder supports",
	Args:  cobra.NoArgs,
	RunE:  runFormats,
}

func init() {
	formatsCmd.Flags().BoolVar(&formatsJSON, "json", false, "print the table as JSON")
	rootCmd.AddCommand(formatsCmd)
}

func runFormats(cmd *cobra.Command, _ []string) error {
	table := report.Formats(newDecoder().Registry())
	if formatsJSON || settings.Report.Format == "json" {
		return report.WriteJSON(cmd.OutOrStdout(), table)
	}
	return report.WriteFormatsText(cmd.OutOrStdout(), table)
}
