// Package report renders decoded image descriptors and the back-end format
// catalog for display, as line-oriented text or JSON.
package report

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/AnyUserName/imgembed-cli/internal/backend"
	"github.com/AnyUserName/imgembed-cli/internal/raster"
)

// Describe builds a report from a descriptor. Every well-known key is
// always present in WellKnown, absent ones carrying NotPresent.
func Describe(d *raster.Descriptor) *Report {
	r := &Report{
		Width:         d.Width,
		Height:        d.Height,
		ColorSpace:    d.ColorSpace.String(),
		ByteLength:    d.ByteLength(),
		HasAlpha:      d.HasAlpha,
		BitsPerSample: d.BitsPerSample,
		Channels:      d.Channels,
		RowStride:     d.RowStride,
		Options:       maps.Clone(d.Options),
		Format:        d.Format,
		SourceModel:   d.SourceModel,
		SourceBytes:   d.SourceBytes,
		Fingerprint:   d.Fingerprint,
	}
	if r.Options == nil {
		r.Options = map[string]string{}
	}
	for _, k := range WellKnownKeys {
		v, ok := d.Option(k)
		if !ok {
			v = NotPresent
		}
		r.WellKnown = append(r.WellKnown, Lookup{Key: k, Value: v, Present: ok})
	}
	return r
}

// Lines flattens the report in display order: fixed fields, option keys
// sorted, well-known lookups, then source details.
func (r *Report) Lines() []Line {
	lines := []Line{
		{"Width", strconv.Itoa(r.Width)},
		{"Height", strconv.Itoa(r.Height)},
		{"Colorspace", r.ColorSpace},
		{"Byte Length", strconv.Itoa(r.ByteLength)},
		{"Has Alpha", strconv.FormatBool(r.HasAlpha)},
		{"Bits per Sample", strconv.Itoa(r.BitsPerSample)},
		{"N Channels", strconv.Itoa(r.Channels)},
		{"Row Stride", strconv.Itoa(r.RowStride)},
	}
	for _, k := range slices.Sorted(maps.Keys(r.Options)) {
		lines = append(lines, Line{"Option " + k, abbreviate(r.Options[k])})
	}
	for _, l := range r.WellKnown {
		lines = append(lines, Line{"Get Option ~ " + l.Key, l.Value})
	}
	lines = append(lines,
		Line{"Format", r.Format},
		Line{"Source Model", r.SourceModel},
		Line{"Source Bytes", strconv.Itoa(r.SourceBytes)},
		Line{"Fingerprint", r.Fingerprint},
	)
	return lines
}

// Formats collects the registry's format catalog.
func Formats(reg *backend.Registry) *FormatTable {
	return &FormatTable{Formats: slices.Collect(reg.Formats())}
}

// FormatLines renders the catalog as one block per format.
func FormatLines(formats iter.Seq[backend.FormatDescriptor]) [][]Line {
	var out [][]Line
	for f := range formats {
		out = append(out, []Line{
			{"Name", f.Name},
			{"Description", f.Description},
			{"MIME Types", strings.Join(f.MimeTypes, ", ")},
			{"Extensions", strings.Join(f.Extensions, ", ")},
			{"License", f.License},
			{"Disabled", strconv.FormatBool(f.Disabled)},
			{"Scalable", strconv.FormatBool(f.Scalable)},
			{"Writable", strconv.FormatBool(f.Writable)},
		})
	}
	return out
}

const maxValueLen = 64

// abbreviate shortens long option values, like embedded ICC profiles,
// for terminal output.
func abbreviate(v string) string {
	if len(v) <= maxValueLen {
		return v
	}
	cut := maxValueLen
	for cut > 0 && !utf8.RuneStart(v[cut]) {
		cut--
	}
	return fmt.Sprintf("%s... (%d bytes)", v[:cut], len(v))
}
