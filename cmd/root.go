package cmd

import (
	"fmt"
	"runtime"

	"github.com/AnyUserName/imgembed-cli/internal/backend"
	"github.com/AnyUserName/imgembed-cli/internal/config"
	"github.com/AnyUserName/imgembed-cli/internal/logging"
	"github.com/AnyUserName/imgembed-cli/internal/raster"
	"github.com/spf13/cobra"
)

var (
	version    = "0.1.0"
	verbose    bool
	configPath string
	logFormat  string

	// settings is loaded before any subcommand runs.
	settings = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "imgembed",
	Short: "Embed images in source code as base64 literals",
	Long: `imgembed turns image files into base64 text literals that can be pasted
into a program's source, and decodes such literals back into a raster
image to report its dimensions, channel layout and embedded options.

Supported back ends: PNG, JPEG, GIF, WebP, BMP, TIFF, ICO/CUR and SVG.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ./"+config.DefaultPath+" if present)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: console or json")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"imgembed %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	settings = cfg

	logCfg := logging.DefaultConfig()
	logCfg.Output = cmd.ErrOrStderr()
	if cfg.Log.Level != "" {
		logCfg.Level = cfg.Log.Level
	}
	if cfg.Log.Format != "" {
		logCfg.Format = cfg.Log.Format
	}
	if logFormat != "" {
		logCfg.Format = logFormat
	}
	if verbose {
		logCfg.Level = "debug"
	}
	logging.Init(logCfg)

	logging.Debug().
		Add(logging.Str("config", configPath)).
		Add(logging.Str("level", logCfg.Level)).
		Msg("settings loaded")
	return nil
}

// newDecoder builds a decoder honouring the decode settings.
func newDecoder() *raster.Decoder {
	reg := backend.NewRegistry(
		backend.WithDisabled(settings.Decode.DisabledFormats...),
		backend.WithSVGSize(settings.Decode.SVGSize),
		backend.WithMaxPixels(settings.Decode.MaxPixels),
	)
	logging.Debug().Add(logging.Str("backends", reg.String())).Msg("registry ready")
	return raster.NewDecoder(reg)
}
