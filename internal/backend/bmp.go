package backend

import (
	"bytes"
	"encoding/binary"
	"image"
	"io"

	"github.com/disintegration/imaging"
	"golang.org/x/image/bmp"
)

// BMP decodes Windows bitmaps.
type BMP struct{}

func (b *BMP) Descriptor() FormatDescriptor {
	return FormatDescriptor{
		Name:        "bmp",
		Description: "BMP",
		MimeTypes:   []string{"image/bmp", "image/x-bmp", "image/x-MS-bmp"},
		Extensions:  []string{"bmp"},
		License:     goLicense,
	}
}

// Match requires a known DIB header size after the "BM" tag, since two
// bytes alone match too much text.
func (b *BMP) Match(header []byte) bool {
	if len(header) < 18 || header[0] != 'B' || header[1] != 'M' {
		return false
	}
	switch binary.LittleEndian.Uint32(header[14:18]) {
	case 12, 40, 52, 56, 64, 108, 124:
		return true
	}
	return false
}

func (b *BMP) DecodeConfig(data []byte) (image.Config, error) {
	return bmp.DecodeConfig(bytes.NewReader(data))
}

func (b *BMP) Decode(data []byte) (image.Image, map[string]string, error) {
	img, err := bmp.Decode(bytes.NewReader(data))
	return img, nil, err
}

func (b *BMP) Encode(w io.Writer, img image.Image, _ int) error {
	return imaging.Encode(w, img, imaging.BMP)
}
