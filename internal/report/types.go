package report

import "github.com/AnyUserName/imgembed-cli/internal/backend"

// NotPresent is reported for a well-known option the image does not carry.
const NotPresent = "not present"

// WellKnownKeys are looked up on every report, in this order.
var WellKnownKeys = []string{"original-width", "original-height", "x-dpi", "y-dpi"}

// Report is the diagnostic view of a decoded image. Field order matches
// the text rendering.
type Report struct {
	Width         int               `json:"width"`
	Height        int               `json:"height"`
	ColorSpace    string            `json:"color_space"`
	ByteLength    int               `json:"byte_length"`
	HasAlpha      bool              `json:"has_alpha"`
	BitsPerSample int               `json:"bits_per_sample"`
	Channels      int               `json:"channels"`
	RowStride     int               `json:"row_stride"`
	Options       map[string]string `json:"options"`
	WellKnown     []Lookup          `json:"well_known"`

	Format      string `json:"format"`
	SourceModel string `json:"source_model"`
	SourceBytes int    `json:"source_bytes"`
	Fingerprint string `json:"fingerprint"`
}

// Lookup is the result of querying one option key.
type Lookup struct {
	Key     string `json:"key"`
	Value   string `json:"value"`
	Present bool   `json:"present"`
}

// FormatTable is the JSON shape of the supported format listing.
type FormatTable struct {
	Formats []backend.FormatDescriptor `json:"formats"`
}

// Line is one "label: value" row of a text report.
type Line struct {
	Label string
	Value string
}
