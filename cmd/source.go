package cmd

import (
	"fmt"
	"os"

	"github.com/AnyUserName/imgembed-cli/internal/codec"
	"github.com/AnyUserName/imgembed-cli/internal/literal"
	"github.com/AnyUserName/imgembed-cli/internal/logging"
)

// builtins holds the variants compiled into the binary.
var builtins = literal.Builtin()

// selectVariant picks a built-in literal from the first argument. A
// missing, non-numeric or out-of-range selector yields the default
// variant. Commands taking a selector ignore unknown flags, so a
// negative selector such as -1 never reaches here and also selects it.
func selectVariant(args []string) literal.Literal {
	i := builtins.Default()
	if len(args) > 0 {
		i = builtins.ParseSelector(args[0])
	}
	return builtins.Select(i)
}

// loadImage returns the binary image named by a literal file, or by the
// variant selector when literalFile is empty, plus a label for messages.
func loadImage(args []string, literalFile string) ([]byte, string, error) {
	var name, text string
	if literalFile != "" {
		raw, err := os.ReadFile(literalFile)
		if err != nil {
			return nil, "", err
		}
		name, text = literal.Parse(string(raw))
		if name == "" {
			name = literalFile
		}
	} else {
		lit := selectVariant(args)
		name, text = lit.Name, lit.Text
	}

	data, err := codec.Decode(text)
	if err != nil {
		return nil, name, fmt.Errorf("decode %s: %w", name, err)
	}
	logging.Debug().
		Add(logging.Str("literal", name)).
		Add(logging.Int("bytes", len(data))).
		Msg("literal decoded")
	return data, name, nil
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
