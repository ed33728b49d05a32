package report

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/AnyUserName/imgembed-cli/internal/backend"
	"github.com/AnyUserName/imgembed-cli/internal/raster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDescriptor() *raster.Descriptor {
	return &raster.Descriptor{
		Format:        "png",
		Width:         4,
		Height:        2,
		ColorSpace:    raster.ColorSpaceRGB,
		BitsPerSample: 8,
		Channels:      4,
		RowStride:     16,
		HasAlpha:      true,
		Pixels:        make([]byte, 32),
		Options: map[string]string{
			"y-dpi":         "72",
			"tEXt::Comment": "hi",
		},
		SourceModel: "NRGBA",
		SourceBytes: 90,
		Fingerprint: "0123456789abcdef",
	}
}

func TestDescribe_MissingKeysNotPresent(t *testing.T) {
	r := Describe(sampleDescriptor())

	require.Len(t, r.WellKnown, len(WellKnownKeys))
	got := map[string]Lookup{}
	for _, l := range r.WellKnown {
		got[l.Key] = l
	}
	assert.Equal(t, Lookup{Key: "x-dpi", Value: NotPresent}, got["x-dpi"])
	assert.Equal(t, Lookup{Key: "y-dpi", Value: "72", Present: true}, got["y-dpi"])
	assert.False(t, got["original-width"].Present)
}

func TestDescribe_NilOptions(t *testing.T) {
	d := sampleDescriptor()
	d.Options = nil
	r := Describe(d)
	assert.NotNil(t, r.Options)
	for _, l := range r.WellKnown {
		assert.Equal(t, NotPresent, l.Value)
	}
}

func TestLines_FixedOrder(t *testing.T) {
	lines := Describe(sampleDescriptor()).Lines()

	var labels []string
	for _, l := range lines {
		labels = append(labels, l.Label)
	}
	want := []string{
		"Width", "Height", "Colorspace", "Byte Length", "Has Alpha",
		"Bits per Sample", "N Channels", "Row Stride",
		"Option tEXt::Comment", "Option y-dpi",
		"Get Option ~ original-width", "Get Option ~ original-height",
		"Get Option ~ x-dpi", "Get Option ~ y-dpi",
		"Format", "Source Model", "Source Bytes", "Fingerprint",
	}
	assert.Equal(t, want, labels)
	assert.Equal(t, "32", lines[3].Value)
	assert.Equal(t, "RGB", lines[2].Value)
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, Describe(sampleDescriptor())))
	out := buf.String()

	assert.Contains(t, out, "Get Option ~ x-dpi:")
	assert.Contains(t, out, "not present")
	assert.Less(t, strings.Index(out, "Width:"), strings.Index(out, "Height:"))
}

func TestAbbreviate(t *testing.T) {
	long := strings.Repeat("A", 200)
	got := abbreviate(long)
	assert.True(t, strings.HasSuffix(got, "(200 bytes)"))
	assert.Equal(t, "short", abbreviate("short"))

	// Byte 64 falls inside the second byte of an "é".
	accented := strings.Repeat("a", 63) + strings.Repeat("é", 10)
	got = abbreviate(accented)
	assert.True(t, utf8.ValidString(got), got)
	assert.True(t, strings.HasPrefix(got, strings.Repeat("a", 63)+"..."), got)
}

func TestWriteJSON_Report(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, Describe(sampleDescriptor())))

	var back Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, 4, back.Width)
	assert.Equal(t, "hi", back.Options["tEXt::Comment"])
	assert.Equal(t, NotPresent, back.WellKnown[2].Value)
}

func TestDescribe_FromDecodedImage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 6, 3))))
	d, err := raster.Decode(buf.Bytes())
	require.NoError(t, err)

	r := Describe(d)
	assert.Equal(t, 6, r.Width)
	assert.Equal(t, "Gray", r.SourceModel)
	assert.Equal(t, 3, r.Channels)
	assert.Equal(t, 20, r.RowStride)
	assert.Len(t, r.Fingerprint, 16)
}

func TestFormats(t *testing.T) {
	reg := backend.NewRegistry(backend.WithDisabled("tiff"))
	table := Formats(reg)
	require.NotEmpty(t, table.Formats)

	var buf bytes.Buffer
	require.NoError(t, WriteFormatsText(&buf, table))
	out := buf.String()
	assert.Contains(t, out, "image/svg+xml")
	assert.Equal(t, len(table.Formats), strings.Count(out, "Name:"))

	// Listing twice gives the same result.
	assert.Equal(t, table, Formats(reg))

	for _, f := range table.Formats {
		if f.Name == "tiff" {
			assert.True(t, f.Disabled)
		}
	}
}
