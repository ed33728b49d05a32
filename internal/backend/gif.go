package backend

import (
	"bytes"
	"image"
	"image/gif"
	"io"

	"github.com/disintegration/imaging"
)

// GIF decodes the first frame of a GIF87a/GIF89a stream.
type GIF struct{}

func (b *GIF) Descriptor() FormatDescriptor {
	return FormatDescriptor{
		Name:        "gif",
		Description: "GIF",
		MimeTypes:   []string{"image/gif"},
		Extensions:  []string{"gif"},
		License:     goLicense,
	}
}

func (b *GIF) Match(header []byte) bool {
	return bytes.HasPrefix(header, []byte("GIF87a")) || bytes.HasPrefix(header, []byte("GIF89a"))
}

func (b *GIF) DecodeConfig(data []byte) (image.Config, error) {
	return gif.DecodeConfig(bytes.NewReader(data))
}

func (b *GIF) Decode(data []byte) (image.Image, map[string]string, error) {
	img, err := gif.Decode(bytes.NewReader(data))
	return img, nil, err
}

func (b *GIF) Encode(w io.Writer, img image.Image, _ int) error {
	return imaging.Encode(w, img, imaging.GIF, imaging.GIFNumColors(256))
}
