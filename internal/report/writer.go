package report

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
)

// WriteText prints the report as "label: value" lines.
func WriteText(w io.Writer, r *Report) error {
	return writeLines(w, r.Lines())
}

// WriteFormatsText prints the format catalog, one blank-line separated
// block per format.
func WriteFormatsText(w io.Writer, t *FormatTable) error {
	for i, block := range FormatLines(slices.Values(t.Formats)) {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := writeLines(w, block); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON serializes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

func writeLines(w io.Writer, lines []Line) error {
	width := 0
	for _, l := range lines {
		width = max(width, len(l.Label))
	}
	for _, l := range lines {
		if _, err := fmt.Fprintf(w, "%-*s %s\n", width+1, l.Label+":", l.Value); err != nil {
			return err
		}
	}
	return nil
}
