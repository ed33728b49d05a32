package pipeline

import (
	"fmt"
	"os"

	"github.com/AnyUserName/imgembed-cli/internal/codec"
	"github.com/AnyUserName/imgembed-cli/internal/hasher"
)

// processResult holds the outcome for a single source.
type processResult struct {
	entry Entry
	err   error
}

// processSource reads one file, optionally checks that it decodes as an
// image, and encodes it.
func processSource(src Source, cfg Config) processResult {
	result := processResult{entry: Entry{Source: src}}

	data, err := os.ReadFile(src.AbsPath)
	if err != nil {
		result.err = fmt.Errorf("read %s: %w", src.RelPath, err)
		return result
	}
	if len(data) == 0 {
		result.err = fmt.Errorf("read %s: empty file", src.RelPath)
		return result
	}

	result.entry.Fingerprint = hasher.Fingerprint(data)

	if cfg.Verify {
		desc, err := cfg.Decoder.Decode(data)
		if err != nil {
			result.err = fmt.Errorf("verify %s: %w", src.RelPath, err)
			return result
		}
		result.entry.Format = desc.Format
		result.entry.Width = desc.Width
		result.entry.Height = desc.Height
	}

	result.entry.Literal.Text = codec.EncodeWrapped(data, cfg.Wrap)
	return result
}
