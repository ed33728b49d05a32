package literal

import (
	"regexp"
	"slices"
	"strings"
)

// Style renders a payload as an assignable literal in some language.
type Style struct {
	Name string
	// Open precedes the payload; "%s" is replaced by the literal's name.
	Open string
	// Close follows the payload.
	Close string

	parse *regexp.Regexp
}

// Built-in styles.
var styles = map[string]Style{
	"python": {
		Name:  "python",
		Open:  "%s = (b\"\"\"\n",
		Close: "\"\"\")",
		parse: regexp.MustCompile(`(?s)([A-Za-z_][A-Za-z0-9_]*)\s*=\s*\(?\s*b?"""(.*?)"""`),
	},
	"go": {
		Name:  "go",
		Open:  "var %s = `\n",
		Close: "`",
		parse: regexp.MustCompile("(?s)(?:var|const)\\s+([A-Za-z_][A-Za-z0-9_]*)\\s*=\\s*`(.*?)`"),
	},
	"raw": {
		Name: "raw",
	},
}

// DefaultStyle is the style of the original embedding tool's output.
const DefaultStyle = "python"

// GetStyle returns a style by name. Unknown names fall back to python.
func GetStyle(name string) Style {
	if s, ok := styles[strings.ToLower(name)]; ok {
		return s
	}
	return styles[DefaultStyle]
}

// StyleNames lists the built-in style names, sorted.
func StyleNames() []string {
	out := make([]string, 0, len(styles))
	for n := range styles {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// Format renders payload (typically codec.EncodeWrapped output) as a
// literal named name.
func Format(name, payload string, s Style) string {
	if name == "" {
		name = DefaultName
	}
	var b strings.Builder
	b.Grow(len(s.Open) + len(name) + len(payload) + len(s.Close) + 1)
	b.WriteString(strings.ReplaceAll(s.Open, "%s", name))
	b.WriteString(payload)
	b.WriteString(s.Close)
	if s.Close != "" {
		b.WriteByte('\n')
	}
	return b.String()
}

// Parse extracts the first literal found in text, whatever its style.
// Text with no recognizable delimiters is treated as a raw payload with
// an empty name.
func Parse(text string) (name, payload string) {
	for _, n := range []string{"python", "go"} {
		if m := styles[n].parse.FindStringSubmatch(text); m != nil {
			return m[1], m[2]
		}
	}
	return "", text
}
