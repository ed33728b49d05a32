package backend

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"strconv"

	"github.com/klauspost/compress/gzip"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

const svgSniffLen = 4096

// maxSVGInflate bounds a decompressed svgz document.
const maxSVGInflate = 32 << 20

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// SVG rasterizes a subset of SVG 1.1 documents.
type SVG struct {
	// Size is the target length of the longest side in pixels; zero
	// renders at the document's intrinsic size.
	Size int
}

func (b *SVG) Descriptor() FormatDescriptor {
	return FormatDescriptor{
		Name:        "svg",
		Description: "Scalable Vector Graphics",
		MimeTypes:   []string{"image/svg+xml", "image/svg", "image/svg-xml", "image/vnd.adobe.svg+xml"},
		Extensions:  []string{"svg", "svgz"},
		License:     goLicense,
		Scalable:    true,
	}
}

func (b *SVG) Match(header []byte) bool {
	if isGzip(header) {
		// A truncated header still inflates far enough to sniff.
		header, _ = gunzip(header, svgSniffLen)
	}
	if len(header) > svgSniffLen {
		header = header[:svgSniffLen]
	}
	header = bytes.TrimLeft(bytes.TrimPrefix(header, utf8BOM), " \t\r\n")
	if len(header) == 0 || header[0] != '<' {
		return false
	}
	return bytes.Contains(bytes.ToLower(header), []byte("<svg"))
}

func (b *SVG) DecodeConfig(data []byte) (image.Config, error) {
	icon, err := b.parse(data)
	if err != nil {
		return image.Config{}, err
	}
	w, h := svgTargetSize(icon.ViewBox.W, icon.ViewBox.H, b.Size)
	return image.Config{ColorModel: color.RGBAModel, Width: w, Height: h}, nil
}

func (b *SVG) Decode(data []byte) (image.Image, map[string]string, error) {
	icon, err := b.parse(data)
	if err != nil {
		return nil, nil, err
	}
	ow, oh := icon.ViewBox.W, icon.ViewBox.H

	w, h := svgTargetSize(ow, oh, b.Size)
	icon.SetTarget(0, 0, float64(w), float64(h))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)

	opts := map[string]string{
		"original-width":  strconv.Itoa(roundDim(ow)),
		"original-height": strconv.Itoa(roundDim(oh)),
	}
	return img, opts, nil
}

// parse reads a plain or gzip-compressed document that has an intrinsic size.
func (b *SVG) parse(data []byte) (*oksvg.SvgIcon, error) {
	if isGzip(data) {
		doc, err := gunzip(data, maxSVGInflate)
		if err != nil {
			return nil, fmt.Errorf("svgz: %w", err)
		}
		data = doc
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, err
	}
	if icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0 {
		return nil, errors.New("svg: document has no intrinsic size")
	}
	return icon, nil
}

func isGzip(p []byte) bool {
	return len(p) >= 3 && p[0] == 0x1F && p[1] == 0x8B && p[2] == 0x08
}

// gunzip inflates at most limit bytes. It returns what it could read
// along with any error.
func gunzip(p []byte, limit int64) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(p))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	out, err := io.ReadAll(io.LimitReader(zr, limit+1))
	if err == nil && int64(len(out)) > limit {
		return out[:limit], errInflateLimit
	}
	return out, err
}

func svgTargetSize(ow, oh float64, size int) (int, int) {
	if size <= 0 {
		return roundDim(ow), roundDim(oh)
	}
	scale := float64(size) / math.Max(ow, oh)
	return roundDim(ow * scale), roundDim(oh * scale)
}

func roundDim(v float64) int {
	if n := int(math.Round(v)); n > 0 {
		return n
	}
	return 1
}
