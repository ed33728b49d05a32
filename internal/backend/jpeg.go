package backend

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/jpeg"
	"io"
	"strconv"

	"github.com/disintegration/imaging"
)

// JPEG decodes baseline and progressive JPEG.
type JPEG struct{}

func (b *JPEG) Descriptor() FormatDescriptor {
	return FormatDescriptor{
		Name:        "jpeg",
		Description: "JPEG",
		MimeTypes:   []string{"image/jpeg"},
		Extensions:  []string{"jpeg", "jpe", "jpg"},
		License:     goLicense,
	}
}

func (b *JPEG) Match(header []byte) bool {
	return len(header) >= 3 && header[0] == 0xFF && header[1] == 0xD8 && header[2] == 0xFF
}

func (b *JPEG) DecodeConfig(data []byte) (image.Config, error) {
	return jpeg.DecodeConfig(bytes.NewReader(data))
}

func (b *JPEG) Decode(data []byte) (image.Image, map[string]string, error) {
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, nil, err
	}
	return img, jfifOptions(data), nil
}

func (b *JPEG) Encode(w io.Writer, img image.Image, quality int) error {
	return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(clampQuality(quality)))
}

// jfifOptions reads the pixel density from the APP0 segment, if any.
func jfifOptions(data []byte) map[string]string {
	opts := make(map[string]string)
	i := 2
	for i+4 <= len(data) {
		if data[i] != 0xFF {
			break
		}
		marker := data[i+1]
		if marker == 0xFF {
			i++ // fill byte
			continue
		}
		if marker == 0x01 || (marker >= 0xD0 && marker <= 0xD8) {
			i += 2
			continue
		}
		if marker == 0xDA || marker == 0xD9 {
			break
		}
		length := int(binary.BigEndian.Uint16(data[i+2 : i+4]))
		if length < 2 || i+2+length > len(data) {
			break
		}
		seg := data[i+4 : i+2+length]
		if marker == 0xE0 && len(seg) >= 12 && string(seg[:5]) == "JFIF\x00" {
			x := float64(binary.BigEndian.Uint16(seg[8:10]))
			y := float64(binary.BigEndian.Uint16(seg[10:12]))
			switch seg[7] {
			case 1: // dots per inch
				opts["x-dpi"] = strconv.Itoa(int(x))
				opts["y-dpi"] = strconv.Itoa(int(y))
			case 2: // dots per centimetre
				opts["x-dpi"] = strconv.Itoa(int(x*2.54 + 0.5))
				opts["y-dpi"] = strconv.Itoa(int(y*2.54 + 0.5))
			}
			break
		}
		i += 2 + length
	}
	return opts
}
