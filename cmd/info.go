package cmd

import (
	"fmt"

	"github.com/AnyUserName/imgembed-cli/internal/logging"
	"github.com/AnyUserName/imgembed-cli/internal/report"
	"github.com/spf13/cobra"
)

var (
	infoLiteral string
	infoJSON    bool
)

var infoCmd = &cobra.Command{
	Use:   "info [variant]",
	Short: "Decode an embedded image and print its raster metadata",
	Long: `Decodes one of the built-in variants (0, 1 or 2; anything else selects 0)
or a literal read from --literal, and prints width, height, colour space,
byte length, alpha, sample depth, channel count, row stride and the
image's options. The keys original-width, original-height, x-dpi and
y-dpi are always listed, as "not present" when the image lacks them.`,
	Args:               cobra.ArbitraryArgs,
	FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
	RunE:               runInfo,
}

func init() {
	infoCmd.Flags().StringVarP(&infoLiteral, "literal", "l", "", "read the literal from a file (any style)")
	infoCmd.Flags().BoolVar(&infoJSON, "json", false, "print the report as JSON")
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	data, name, err := loadImage(args, infoLiteral)
	if err != nil {
		return err
	}

	desc, err := newDecoder().Decode(data)
	if err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	logging.Debug().
		Add(logging.Str("literal", name)).
		Add(logging.Format(desc.Format)).
		Msg("image decoded")

	r := report.Describe(desc)
	if infoJSON || settings.Report.Format == "json" {
		return report.WriteJSON(cmd.OutOrStdout(), r)
	}
	return report.WriteText(cmd.OutOrStdout(), r)
}
