package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AnyUserName/imgembed-cli/internal/backend"
	"github.com/AnyUserName/imgembed-cli/internal/logging"
	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"
)

var (
	exportLiteral string
	exportOut     string
	exportWidth   int
	exportQuality int
)

var exportCmd = &cobra.Command{
	Use:   "export [variant] -o <file>",
	Short: "Decode an embedded image and write it to a file",
	Long: `Decodes a built-in variant or a literal file and re-encodes it in the
format given by the output extension. SVG and WebP are read-only.`,
	Args:               cobra.ArbitraryArgs,
	FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
	RunE:               runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportLiteral, "literal", "l", "", "read the literal from a file (any style)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file; the extension selects the format")
	exportCmd.Flags().IntVar(&exportWidth, "width", 0, "resize to this width, keeping aspect ratio (0 = original)")
	exportCmd.Flags().IntVarP(&exportQuality, "quality", "q", 0, "quality 1-100 for lossy formats (0 = default)")
	_ = exportCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportWidth < 0 {
		return fmt.Errorf("--width must be >= 0, got %d", exportWidth)
	}

	dec := newDecoder()
	ext := strings.TrimPrefix(filepath.Ext(exportOut), ".")
	b, ok := dec.Registry().ForExtension(ext)
	if !ok {
		return fmt.Errorf("no back end for extension %q", ext)
	}
	enc, ok := b.(backend.Encoder)
	if !ok || !b.Descriptor().Writable {
		return fmt.Errorf("format %s is not writable", b.Descriptor().Name)
	}

	data, name, err := loadImage(args, exportLiteral)
	if err != nil {
		return err
	}
	desc, err := dec.Decode(data)
	if err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}

	img := desc.Image()
	if exportWidth > 0 && exportWidth != desc.Width {
		img = imaging.Resize(img, exportWidth, 0, imaging.Lanczos)
	}

	f, err := os.Create(exportOut)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := enc.Encode(f, img, exportQuality); err != nil {
		f.Close()
		os.Remove(exportOut)
		return fmt.Errorf("encode %s: %w", b.Descriptor().Name, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(exportOut)
		return fmt.Errorf("close output: %w", err)
	}

	logging.Info().
		Add(logging.Path(exportOut)).
		Add(logging.Format(b.Descriptor().Name)).
		Add(logging.Int("width", img.Bounds().Dx())).
		Add(logging.Int("height", img.Bounds().Dy())).
		Msg("exported")
	return nil
}
