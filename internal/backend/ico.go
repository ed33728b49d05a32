package backend

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strconv"

	"github.com/disintegration/imaging"
	"golang.org/x/image/bmp"
)

const (
	icoTypeIcon   = 1
	icoTypeCursor = 2

	icoHeaderLen = 6
	icoEntryLen  = 16
	icoMaxDim    = 256
)

// ICO decodes Windows icons and cursors. The largest directory entry is
// used; entries may hold a PNG stream or a headerless DIB with an AND mask.
type ICO struct{}

type icoEntry struct {
	width, height int
	bpp           int
	hotX, hotY    int
	size, offset  uint32
}

func (b *ICO) Descriptor() FormatDescriptor {
	return FormatDescriptor{
		Name:        "ico",
		Description: "Windows icon",
		MimeTypes:   []string{"image/x-icon", "image/x-ico", "image/x-win-bitmap", "image/vnd.microsoft.icon"},
		Extensions:  []string{"ico", "cur"},
		License:     goLicense,
	}
}

func (b *ICO) Match(header []byte) bool {
	if len(header) < icoHeaderLen || header[0] != 0 || header[1] != 0 {
		return false
	}
	typ := binary.LittleEndian.Uint16(header[2:4])
	count := binary.LittleEndian.Uint16(header[4:6])
	return (typ == icoTypeIcon || typ == icoTypeCursor) && count > 0
}

func (b *ICO) DecodeConfig(data []byte) (image.Config, error) {
	_, _, payload, err := icoSelect(data)
	if err != nil {
		return image.Config{}, err
	}
	if bytes.HasPrefix(payload, pngSignature) {
		return png.DecodeConfig(bytes.NewReader(payload))
	}
	h, err := parseDIBHeader(payload)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: color.NRGBAModel, Width: h.width, Height: h.height}, nil
}

func (b *ICO) Decode(data []byte) (image.Image, map[string]string, error) {
	typ, best, payload, err := icoSelect(data)
	if err != nil {
		return nil, nil, err
	}

	var img image.Image
	if bytes.HasPrefix(payload, pngSignature) {
		img, err = png.Decode(bytes.NewReader(payload))
	} else {
		img, err = decodeDIB(payload)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("ico: %w", err)
	}

	opts := make(map[string]string)
	if typ == icoTypeCursor {
		opts["x_hot"] = strconv.Itoa(best.hotX)
		opts["y_hot"] = strconv.Itoa(best.hotY)
	}
	return img, opts, nil
}

// icoSelect reads the directory and returns the largest entry with its
// payload.
func icoSelect(data []byte) (uint16, icoEntry, []byte, error) {
	if len(data) < icoHeaderLen {
		return 0, icoEntry{}, nil, io.ErrUnexpectedEOF
	}
	typ := binary.LittleEndian.Uint16(data[2:4])
	count := int(binary.LittleEndian.Uint16(data[4:6]))
	if count == 0 {
		return 0, icoEntry{}, nil, errors.New("ico: empty directory")
	}
	if len(data) < icoHeaderLen+count*icoEntryLen {
		return 0, icoEntry{}, nil, io.ErrUnexpectedEOF
	}

	var best icoEntry
	for i := 0; i < count; i++ {
		e := parseIcoEntry(data[icoHeaderLen+i*icoEntryLen:], typ)
		if e.width*e.height > best.width*best.height ||
			(e.width*e.height == best.width*best.height && e.bpp > best.bpp) {
			best = e
		}
	}

	end := uint64(best.offset) + uint64(best.size)
	if best.size == 0 || end > uint64(len(data)) {
		return 0, icoEntry{}, nil, io.ErrUnexpectedEOF
	}
	return typ, best, data[best.offset:end], nil
}

// Encode writes a single-entry icon with a PNG payload, the layout
// Windows accepts since Vista.
func (b *ICO) Encode(w io.Writer, img image.Image, _ int) error {
	bounds := img.Bounds()
	iw, ih := bounds.Dx(), bounds.Dy()
	if iw <= 0 || ih <= 0 || iw > icoMaxDim || ih > icoMaxDim {
		return fmt.Errorf("ico: %dx%d exceeds %dx%d", iw, ih, icoMaxDim, icoMaxDim)
	}

	var payload bytes.Buffer
	if err := png.Encode(&payload, img); err != nil {
		return err
	}

	hdr := make([]byte, icoHeaderLen+icoEntryLen)
	binary.LittleEndian.PutUint16(hdr[2:], icoTypeIcon)
	binary.LittleEndian.PutUint16(hdr[4:], 1)
	hdr[6] = byte(iw % icoMaxDim) // 0 means 256
	hdr[7] = byte(ih % icoMaxDim)
	binary.LittleEndian.PutUint16(hdr[10:], 1)  // planes
	binary.LittleEndian.PutUint16(hdr[12:], 32) // bits per pixel
	binary.LittleEndian.PutUint32(hdr[14:], uint32(payload.Len()))
	binary.LittleEndian.PutUint32(hdr[18:], icoHeaderLen+icoEntryLen)

	if _, err := w.Write(hdr); err != nil {
		return err
	}
	_, err := w.Write(payload.Bytes())
	return err
}

func parseIcoEntry(p []byte, typ uint16) icoEntry {
	e := icoEntry{
		width:  int(p[0]),
		height: int(p[1]),
		size:   binary.LittleEndian.Uint32(p[8:12]),
		offset: binary.LittleEndian.Uint32(p[12:16]),
	}
	if e.width == 0 {
		e.width = icoMaxDim
	}
	if e.height == 0 {
		e.height = icoMaxDim
	}
	if typ == icoTypeCursor {
		e.hotX = int(binary.LittleEndian.Uint16(p[4:6]))
		e.hotY = int(binary.LittleEndian.Uint16(p[6:8]))
	} else {
		e.bpp = int(binary.LittleEndian.Uint16(p[6:8]))
	}
	return e
}

type dibHeader struct {
	hdrLen        int
	width, height int
	bpp           int
}

// parseDIBHeader reads a BITMAPINFOHEADER as stored inside an icon: the
// height field covers both the colour rows and the 1-bit AND mask.
func parseDIBHeader(p []byte) (dibHeader, error) {
	if len(p) < 40 {
		return dibHeader{}, io.ErrUnexpectedEOF
	}
	h := dibHeader{
		hdrLen: int(binary.LittleEndian.Uint32(p[0:4])),
		width:  int(int32(binary.LittleEndian.Uint32(p[4:8]))),
		height: int(int32(binary.LittleEndian.Uint32(p[8:12]))) / 2,
		bpp:    int(binary.LittleEndian.Uint16(p[14:16])),
	}
	if h.hdrLen < 40 || h.hdrLen > len(p) {
		return dibHeader{}, fmt.Errorf("dib: bad header length %d", h.hdrLen)
	}
	if h.width <= 0 || h.height <= 0 || h.width > 1<<14 || h.height > 1<<14 {
		return dibHeader{}, fmt.Errorf("dib: bad dimensions %dx%d", h.width, h.height)
	}
	if c := binary.LittleEndian.Uint32(p[16:20]); c != 0 {
		return dibHeader{}, fmt.Errorf("dib: unsupported compression %d", c)
	}
	return h, nil
}

func decodeDIB(p []byte) (*image.NRGBA, error) {
	hdr, err := parseDIBHeader(p)
	if err != nil {
		return nil, err
	}
	w, h, bpp := hdr.width, hdr.height, hdr.bpp

	colors := 0
	if bpp <= 8 {
		colors = int(binary.LittleEndian.Uint32(p[32:36]))
		if colors == 0 {
			colors = 1 << bpp
		}
	}
	pixOff := hdr.hdrLen + colors*4
	xorStride := (w*bpp + 31) / 32 * 4
	andStride := (w + 31) / 32 * 4
	maskOff := pixOff + xorStride*h
	if len(p) < maskOff {
		return nil, io.ErrUnexpectedEOF
	}

	var (
		img       *image.NRGBA
		haveAlpha bool
	)
	if bpp == 32 {
		img, haveAlpha = dib32(p[pixOff:], w, h, xorStride)
	} else {
		decoded, err := bmp.Decode(bytes.NewReader(bitmapFile(p, hdr.hdrLen, h, pixOff)))
		if err != nil {
			return nil, err
		}
		img = imaging.Clone(decoded)
	}

	if !haveAlpha && len(p) >= maskOff+andStride*h {
		applyMask(img, p[maskOff:], w, h, andStride)
	}
	return img, nil
}

// bitmapFile prefixes a DIB with a BITMAPFILEHEADER and halves its height
// so a regular BMP reader sees only the colour rows.
func bitmapFile(dib []byte, hdrLen, h, pixOff int) []byte {
	out := make([]byte, 14+len(dib))
	out[0], out[1] = 'B', 'M'
	binary.LittleEndian.PutUint32(out[2:], uint32(len(out)))
	binary.LittleEndian.PutUint32(out[10:], uint32(14+pixOff))
	copy(out[14:], dib)
	binary.LittleEndian.PutUint32(out[14+8:], uint32(h))
	return out
}

// dib32 converts bottom-up BGRA rows. Icons that leave every alpha byte
// at zero predate per-pixel alpha and rely on the AND mask instead.
func dib32(pix []byte, w, h, stride int) (*image.NRGBA, bool) {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	var anyAlpha bool
	for y := 0; y < h; y++ {
		src := pix[(h-1-y)*stride:]
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < w; x++ {
			s, d := src[x*4:x*4+4], dst[x*4:x*4+4]
			d[0], d[1], d[2], d[3] = s[2], s[1], s[0], s[3]
			if s[3] != 0 {
				anyAlpha = true
			}
		}
	}
	if !anyAlpha {
		for i := 3; i < len(img.Pix); i += 4 {
			img.Pix[i] = 0xFF
		}
	}
	return img, anyAlpha
}

// applyMask clears alpha wherever the bottom-up AND mask has a set bit.
func applyMask(img *image.NRGBA, mask []byte, w, h, stride int) {
	for y := 0; y < h; y++ {
		row := mask[(h-1-y)*stride:]
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < w; x++ {
			if row[x/8]>>(7-uint(x%8))&1 == 1 {
				dst[x*4+3] = 0
			}
		}
	}
}
