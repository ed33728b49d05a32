package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/AnyUserName/imgembed-cli/internal/hasher"
	"github.com/AnyUserName/imgembed-cli/internal/literal"
	"github.com/AnyUserName/imgembed-cli/internal/logging"
	"github.com/AnyUserName/imgembed-cli/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	embedName    string
	embedStyle   string
	embedWrap    int
	embedVerify  bool
	embedWorkers int
	embedOut     string
)

var embedCmd = &cobra.Command{
	Use:   "embed <path>...",
	Short: "Encode image files as base64 source literals",
	Long: `Reads each file (directories are scanned for known image extensions) and
prints it as a named base64 literal. The first literal is called NAME,
later ones NAME_1, NAME_2, ... in input order.

Styles: python (NAME = (b"""..."""), the default), go (var NAME = ` + "`...`" + `)
and raw (payload only).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEmbed,
}

func init() {
	embedCmd.Flags().StringVarP(&embedName, "name", "n", "", "literal name (default from config, "+literal.DefaultName+")")
	embedCmd.Flags().StringVarP(&embedStyle, "style", "s", "", "literal style: "+strings.Join(literal.StyleNames(), ", "))
	embedCmd.Flags().IntVar(&embedWrap, "wrap", 0, "payload line width, 0 = no wrapping (default from config, 76)")
	embedCmd.Flags().BoolVar(&embedVerify, "verify", false, "reject files that do not decode as images")
	embedCmd.Flags().IntVarP(&embedWorkers, "workers", "w", 0, "parallel workers (0 = NumCPU)")
	embedCmd.Flags().StringVarP(&embedOut, "out", "o", "", "write literals to file instead of stdout")
	rootCmd.AddCommand(embedCmd)
}

func runEmbed(cmd *cobra.Command, args []string) error {
	start := time.Now()

	name := settings.Literal.Name
	if embedName != "" {
		name = embedName
	}
	style := settings.Literal.Style
	if embedStyle != "" {
		style = embedStyle
	}
	wrap := settings.Literal.Wrap
	if cmd.Flags().Changed("wrap") {
		if embedWrap < 0 {
			return fmt.Errorf("--wrap must be >= 0, got %d", embedWrap)
		}
		wrap = embedWrap
	}

	p := pipeline.New(pipeline.Config{
		Paths:   args,
		Workers: embedWorkers,
		Name:    name,
		Style:   literal.GetStyle(style),
		Wrap:    wrap,
		Verify:  embedVerify,
		Decoder: newDecoder(),
	})

	batch, err := p.Run()
	if err != nil {
		return fmt.Errorf("embed: %w", err)
	}

	if embedOut == "" {
		if err := writeLiterals(cmd.OutOrStdout(), batch.Entries); err != nil {
			return fmt.Errorf("write literals: %w", err)
		}
	} else if err := writeLiteralsFile(embedOut, batch.Entries); err != nil {
		return err
	}

	var in int64
	for _, e := range batch.Entries {
		in += e.Source.Size
		if e.DuplicateOf != "" {
			logging.Warn().
				Add(logging.Str("name", e.Literal.Name)).
				Add(logging.Str("duplicate_of", e.DuplicateOf)).
				Add(logging.Str("fingerprint", hasher.Short(e.Fingerprint))).
				Msg("identical image embedded twice")
		}
	}
	logging.Info().
		Add(logging.Int("literals", len(batch.Entries))).
		Add(logging.Int("failed", len(batch.Errors))).
		Add(logging.Str("input", formatBytes(in))).
		Add(logging.Duration(time.Since(start))).
		Msg("embed complete")
	return nil
}

// writeLiteralsFile writes literals to path. The file is removed if
// writing or closing it fails.
func writeLiteralsFile(path string, entries []pipeline.Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := writeLiterals(f, entries); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("write literals: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("close output: %w", err)
	}
	return nil
}

// writeLiterals prints rendered literals separated by blank lines.
func writeLiterals(w io.Writer, entries []pipeline.Entry) error {
	for i, e := range entries {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		out := e.Rendered
		if !strings.HasSuffix(out, "\n") {
			out += "\n"
		}
		if _, err := io.WriteString(w, out); err != nil {
			return err
		}
	}
	return nil
}
