package raster

import (
	"image"
	"image/color"
	"maps"
)

// ColorSpace enumerates pixel buffer colour spaces.
type ColorSpace int

const (
	ColorSpaceRGB ColorSpace = iota
)

func (c ColorSpace) String() string {
	switch c {
	case ColorSpaceRGB:
		return "RGB"
	default:
		return "Unknown"
	}
}

// Descriptor is a decoded image: its packed 8-bit pixel buffer plus the
// layout and metadata needed to interpret it.
type Descriptor struct {
	// Format is the short name of the back end that decoded the buffer.
	Format string

	Width         int
	Height        int
	ColorSpace    ColorSpace
	BitsPerSample int
	Channels      int
	// RowStride is the distance in bytes between row starts, a multiple of 4.
	RowStride int
	HasAlpha  bool

	// Pixels holds Height rows of RowStride bytes; the final row is not padded.
	Pixels []byte

	// Options holds format metadata such as "x-dpi" or "tEXt::Comment".
	Options map[string]string

	// SourceModel names the colour model the back end produced before
	// normalisation (e.g. "NRGBA", "Paletted", "YCbCr").
	SourceModel string
	// SourceBytes is the length of the encoded input.
	SourceBytes int
	// Fingerprint is the xxHash64 of the encoded input.
	Fingerprint string
}

// ByteLength returns the size of the pixel buffer.
func (d *Descriptor) ByteLength() int {
	return len(d.Pixels)
}

// Option returns the value stored under key, if present.
func (d *Descriptor) Option(key string) (string, bool) {
	v, ok := d.Options[key]
	return v, ok
}

// Image rebuilds an image from the pixel buffer.
func (d *Descriptor) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, d.Width, d.Height))
	for y := 0; y < d.Height; y++ {
		src := d.Pixels[y*d.RowStride:]
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < d.Width; x++ {
			s := src[x*d.Channels:]
			dst[x*4+0], dst[x*4+1], dst[x*4+2] = s[0], s[1], s[2]
			if d.Channels == 4 {
				dst[x*4+3] = s[3]
			} else {
				dst[x*4+3] = 0xFF
			}
		}
	}
	return img
}

// pack converts normalised NRGBA pixels into the descriptor layout:
// RGB when fully opaque, RGBA otherwise.
func pack(img *image.NRGBA) (pixels []byte, channels, stride int, hasAlpha bool) {
	hasAlpha = !img.Opaque()
	channels = 3
	if hasAlpha {
		channels = 4
	}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	stride = (w*channels + 3) &^ 3
	pixels = make([]byte, (h-1)*stride+w*channels)

	for y := 0; y < h; y++ {
		src := img.Pix[y*img.Stride:]
		dst := pixels[y*stride:]
		if hasAlpha {
			copy(dst[:w*4], src[:w*4])
			continue
		}
		for x := 0; x < w; x++ {
			dst[x*3+0], dst[x*3+1], dst[x*3+2] = src[x*4+0], src[x*4+1], src[x*4+2]
		}
	}
	return pixels, channels, stride, hasAlpha
}

func cloneOptions(opts map[string]string) map[string]string {
	if opts == nil {
		return map[string]string{}
	}
	return maps.Clone(opts)
}

func colorModelName(cm color.Model) string {
	switch cm {
	case color.RGBAModel:
		return "RGBA"
	case color.RGBA64Model:
		return "RGBA64"
	case color.NRGBAModel:
		return "NRGBA"
	case color.NRGBA64Model:
		return "NRGBA64"
	case color.AlphaModel:
		return "Alpha"
	case color.Alpha16Model:
		return "Alpha16"
	case color.GrayModel:
		return "Gray"
	case color.Gray16Model:
		return "Gray16"
	case color.YCbCrModel:
		return "YCbCr"
	case color.NYCbCrAModel:
		return "NYCbCrA"
	case color.CMYKModel:
		return "CMYK"
	default:
		if _, ok := cm.(color.Palette); ok {
			return "Paletted"
		}
		return "Unknown"
	}
}
