package backend

import (
	"bytes"
	"image"

	"golang.org/x/image/webp"
)

// WebP decodes lossy and lossless WebP. There is no pure-Go encoder, so
// the format is read-only.
type WebP struct{}

func (b *WebP) Descriptor() FormatDescriptor {
	return FormatDescriptor{
		Name:        "webp",
		Description: "WebP",
		MimeTypes:   []string{"image/webp"},
		Extensions:  []string{"webp"},
		License:     goLicense,
	}
}

func (b *WebP) Match(header []byte) bool {
	return len(header) >= 12 && string(header[0:4]) == "RIFF" && string(header[8:12]) == "WEBP"
}

func (b *WebP) DecodeConfig(data []byte) (image.Config, error) {
	return webp.DecodeConfig(bytes.NewReader(data))
}

func (b *WebP) Decode(data []byte) (image.Image, map[string]string, error) {
	img, err := webp.Decode(bytes.NewReader(data))
	return img, nil, err
}
