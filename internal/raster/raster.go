// Package raster turns encoded image bytes into a Descriptor. Format
// parsing is delegated to the back ends in package backend; this package
// normalises their output the way GdkPixbuf does (8 bits per sample, RGB,
// rows padded to 4 bytes) and classifies failures.
package raster

import (
	"errors"
	"fmt"

	"github.com/AnyUserName/imgembed-cli/internal/backend"
	"github.com/AnyUserName/imgembed-cli/internal/hasher"
	"github.com/disintegration/imaging"
)

// Decoder decodes in-memory image buffers. It performs no I/O and is safe
// for concurrent use.
type Decoder struct {
	registry *backend.Registry
}

// NewDecoder creates a decoder over registry; nil uses every built-in back end.
func NewDecoder(registry *backend.Registry) *Decoder {
	if registry == nil {
		registry = backend.NewRegistry()
	}
	return &Decoder{registry: registry}
}

// Registry returns the back ends the decoder consults.
func (d *Decoder) Registry() *backend.Registry { return d.registry }

// Decode parses data in one shot. It returns ErrUnsupportedFormat when no
// back end claims the signature and a *CorruptImageError when the claiming
// back end fails, including images whose header declares more pixels
// than the registry allows; a partially populated descriptor is never
// returned.
func (d *Decoder) Decode(data []byte) (desc *Descriptor, err error) {
	b, ok := d.registry.Sniff(data)
	if !ok {
		return nil, ErrUnsupportedFormat
	}
	name := b.Descriptor().Name

	// Third-party decoders may panic on hostile input.
	defer func() {
		if r := recover(); r != nil {
			desc = nil
			err = &CorruptImageError{Format: name, Err: fmt.Errorf("decoder panic: %v", r)}
		}
	}()

	cfg, err := b.DecodeConfig(data)
	if err != nil {
		return nil, &CorruptImageError{Format: name, Err: err}
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, &CorruptImageError{Format: name, Err: errors.New("empty image")}
	}
	if limit := d.registry.MaxPixels(); int64(cfg.Width)*int64(cfg.Height) > limit {
		return nil, &CorruptImageError{
			Format: name,
			Err:    fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrImageTooLarge, cfg.Width, cfg.Height, limit),
		}
	}

	img, opts, err := b.Decode(data)
	if err != nil {
		return nil, &CorruptImageError{Format: name, Err: err}
	}
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, &CorruptImageError{Format: name, Err: errors.New("empty image")}
	}

	nrgba := imaging.Clone(img)
	pixels, channels, stride, hasAlpha := pack(nrgba)

	return &Descriptor{
		Format:        name,
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		ColorSpace:    ColorSpaceRGB,
		BitsPerSample: 8,
		Channels:      channels,
		RowStride:     stride,
		HasAlpha:      hasAlpha,
		Pixels:        pixels,
		Options:       cloneOptions(opts),
		SourceModel:   colorModelName(img.ColorModel()),
		SourceBytes:   len(data),
		Fingerprint:   hasher.Fingerprint(data),
	}, nil
}

var defaultDecoder = NewDecoder(nil)

// Decode parses data with every built-in back end enabled.
func Decode(data []byte) (*Descriptor, error) {
	return defaultDecoder.Decode(data)
}
