package backend

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/png"
	"io"
	"strconv"
	"strings"

	"github.com/AnyUserName/imgembed-cli/internal/codec"
	"github.com/disintegration/imaging"
	"github.com/klauspost/compress/zlib"
)

var pngSignature = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// maxInflate bounds decompressed text and ICC chunks. Larger chunks are
// skipped rather than reported truncated.
const maxInflate = 8 << 20

var errInflateLimit = errors.New("decompressed data exceeds limit")

// PNG decodes Portable Network Graphics and reports ancillary chunks.
type PNG struct{}

func (b *PNG) Descriptor() FormatDescriptor {
	return FormatDescriptor{
		Name:        "png",
		Description: "PNG",
		MimeTypes:   []string{"image/png"},
		Extensions:  []string{"png"},
		License:     goLicense,
	}
}

func (b *PNG) Match(header []byte) bool { return bytes.HasPrefix(header, pngSignature) }

func (b *PNG) DecodeConfig(data []byte) (image.Config, error) {
	return png.DecodeConfig(bytes.NewReader(data))
}

func (b *PNG) Decode(data []byte) (image.Image, map[string]string, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, nil, err
	}
	return img, pngOptions(data), nil
}

func (b *PNG) Encode(w io.Writer, img image.Image, _ int) error {
	return imaging.Encode(w, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression))
}

// pngOptions walks the chunk list of an already validated PNG.
func pngOptions(data []byte) map[string]string {
	opts := make(map[string]string)
	p := data[len(pngSignature):]
	for len(p) >= 12 {
		n := binary.BigEndian.Uint32(p[:4])
		if uint64(n) > uint64(len(p)-12) {
			break
		}
		typ := string(p[4:8])
		body := p[8 : 8+n]
		p = p[12+n:]

		switch typ {
		case "tEXt":
			if k, v, ok := bytes.Cut(body, []byte{0}); ok {
				opts["tEXt::"+latin1(k)] = latin1(v)
			}
		case "zTXt":
			k, rest, ok := bytes.Cut(body, []byte{0})
			if !ok || len(rest) < 1 || rest[0] != 0 {
				continue
			}
			if v, err := inflate(rest[1:]); err == nil {
				opts["tEXt::"+latin1(k)] = latin1(v)
			}
		case "iTXt":
			if k, v, ok := parseITXt(body); ok {
				opts["tEXt::"+k] = v
			}
		case "pHYs":
			// Unit 1 is the metre; unknown units carry only an aspect ratio.
			if len(body) == 9 && body[8] == 1 {
				opts["x-dpi"] = strconv.Itoa(metresToDPI(binary.BigEndian.Uint32(body[0:4])))
				opts["y-dpi"] = strconv.Itoa(metresToDPI(binary.BigEndian.Uint32(body[4:8])))
			}
		case "iCCP":
			_, rest, ok := bytes.Cut(body, []byte{0})
			if !ok || len(rest) < 1 || rest[0] != 0 {
				continue
			}
			if prof, err := inflate(rest[1:]); err == nil {
				opts["icc-profile"] = codec.Encode(prof)
			}
		case "IEND":
			return opts
		}
	}
	return opts
}

func parseITXt(body []byte) (string, string, bool) {
	k, rest, ok := bytes.Cut(body, []byte{0})
	if !ok || len(rest) < 2 {
		return "", "", false
	}
	compressed := rest[0] == 1
	rest = rest[2:]
	// Skip language tag and translated keyword.
	if _, rest, ok = bytes.Cut(rest, []byte{0}); !ok {
		return "", "", false
	}
	if _, rest, ok = bytes.Cut(rest, []byte{0}); !ok {
		return "", "", false
	}
	if compressed {
		v, err := inflate(rest)
		if err != nil {
			return "", "", false
		}
		rest = v
	}
	return string(k), string(rest), true
}

func metresToDPI(ppm uint32) int {
	return int(float64(ppm)*0.0254 + 0.5)
}

func inflate(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	out, err := io.ReadAll(io.LimitReader(zr, maxInflate+1))
	if err != nil {
		return nil, err
	}
	if len(out) > maxInflate {
		return nil, errInflateLimit
	}
	return out, nil
}

// latin1 converts ISO 8859-1 bytes, the PNG text encoding, to UTF-8.
func latin1(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, c := range b {
		sb.WriteRune(rune(c))
	}
	return sb.String()
}
