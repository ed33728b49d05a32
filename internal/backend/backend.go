// Package backend holds the pluggable image format back ends used to turn
// encoded image bytes into pixels. Each back end recognizes its own byte
// signature and reports format metadata as string options using the key
// names GdkPixbuf loaders use (x-dpi, tEXt::Comment, icc-profile, ...).
package backend

import (
	"image"
	"io"
)

// Backend decodes one image format.
type Backend interface {
	// Descriptor returns the static description of the format.
	Descriptor() FormatDescriptor

	// Match reports whether header (the leading bytes of a buffer) carries
	// this format's signature.
	Match(header []byte) bool

	// DecodeConfig reports the dimensions Decode would produce, reading
	// only headers.
	DecodeConfig(data []byte) (image.Config, error)

	// Decode parses a complete buffer. The returned options may be nil.
	Decode(data []byte) (image.Image, map[string]string, error)
}

// Encoder is implemented by back ends that can write their format.
type Encoder interface {
	// Encode writes img at the given quality (1-100, ignored by lossless formats).
	Encode(w io.Writer, img image.Image, quality int) error
}

// FormatDescriptor describes a registered back end.
type FormatDescriptor struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	MimeTypes   []string `json:"mime_types"`
	Extensions  []string `json:"extensions"`
	License     string   `json:"license"`
	Disabled    bool     `json:"disabled"`
	Scalable    bool     `json:"scalable"`
	Writable    bool     `json:"writable"`
}

// HeaderSize is the number of leading bytes handed to Match.
const HeaderSize = 512

const goLicense = "BSD-3-Clause"

// DefaultMaxPixels caps width*height of a decoded image, about 128 MB
// of 8-bit RGBA.
const DefaultMaxPixels = 1 << 25

// DefaultQuality is used when a caller passes an out-of-range quality.
const DefaultQuality = 82

func clampQuality(q int) int {
	if q <= 0 || q > 100 {
		return DefaultQuality
	}
	return q
}
