package backend

import (
	"bytes"
	"image"
	"io"

	"github.com/disintegration/imaging"
	"golang.org/x/image/tiff"
)

// TIFF decodes baseline TIFF in either byte order.
type TIFF struct{}

func (b *TIFF) Descriptor() FormatDescriptor {
	return FormatDescriptor{
		Name:        "tiff",
		Description: "TIFF",
		MimeTypes:   []string{"image/tiff"},
		Extensions:  []string{"tiff", "tif"},
		License:     goLicense,
	}
}

func (b *TIFF) Match(header []byte) bool {
	return bytes.HasPrefix(header, []byte("II*\x00")) || bytes.HasPrefix(header, []byte("MM\x00*"))
}

func (b *TIFF) DecodeConfig(data []byte) (image.Config, error) {
	return tiff.DecodeConfig(bytes.NewReader(data))
}

func (b *TIFF) Decode(data []byte) (image.Image, map[string]string, error) {
	img, err := tiff.Decode(bytes.NewReader(data))
	return img, nil, err
}

func (b *TIFF) Encode(w io.Writer, img image.Image, _ int) error {
	return imaging.Encode(w, img, imaging.TIFF)
}
