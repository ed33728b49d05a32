package pipeline

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/AnyUserName/imgembed-cli/internal/codec"
	"github.com/AnyUserName/imgembed-cli/internal/literal"
	"github.com/AnyUserName/imgembed-cli/internal/raster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, w, h int, c color.NRGBA) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return buf.Bytes()
}

func TestScanPaths(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "b.png"), 1, 1, color.NRGBA{A: 255})
	writePNG(t, filepath.Join(dir, "icons", "a.PNG"), 1, 1, color.NRGBA{A: 255})
	writePNG(t, filepath.Join(dir, ".cache", "skip.png"), 1, 1, color.NRGBA{A: 255})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	sources, err := ScanPaths([]string{dir}, []string{"png"})
	require.NoError(t, err)

	var rel []string
	for _, s := range sources {
		rel = append(rel, s.RelPath)
		assert.True(t, filepath.IsAbs(s.AbsPath))
	}
	assert.Equal(t, []string{"b.png", "icons/a.PNG"}, rel)
}

func TestScanPaths_ExplicitFileAnyExtension(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "logo.bin")
	writePNG(t, p, 1, 1, color.NRGBA{A: 255})

	sources, err := ScanPaths([]string{p}, []string{"png"})
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, "bin", sources[0].Ext)

	_, err = ScanPaths([]string{filepath.Join(dir, "missing.png")}, nil)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestRun_OrderAndNaming(t *testing.T) {
	dir := t.TempDir()
	var want [][]byte
	for i, name := range []string{"a.png", "b.png", "c.png", "d.png", "e.png"} {
		want = append(want, writePNG(t, filepath.Join(dir, name), i+1, 2, color.NRGBA{R: uint8(40 * i), A: 255}))
	}

	batch, err := New(Config{
		Paths:   []string{dir},
		Workers: 3,
		Name:    "ICON",
		Style:   literal.GetStyle("go"),
		Wrap:    20,
		Verify:  true,
	}).Run()
	require.NoError(t, err)
	require.Len(t, batch.Entries, 5)
	assert.Empty(t, batch.Errors)

	for i, e := range batch.Entries {
		assert.Equal(t, i, e.Literal.Index)
		assert.Equal(t, i+1, e.Width)
		assert.Equal(t, "png", e.Format)

		name, payload := literal.Parse(e.Rendered)
		assert.Equal(t, e.Literal.Name, name)
		data, err := codec.Decode(payload)
		require.NoError(t, err)
		assert.Equal(t, want[i], data)
	}
	assert.Equal(t, "ICON", batch.Entries[0].Literal.Name)
	assert.Equal(t, "ICON_4", batch.Entries[4].Literal.Name)
}

func TestRun_Duplicates(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "one.png"), 2, 2, color.NRGBA{G: 255, A: 255})
	writePNG(t, filepath.Join(dir, "two.png"), 2, 2, color.NRGBA{G: 255, A: 255})

	batch, err := New(Config{Paths: []string{dir}}).Run()
	require.NoError(t, err)
	require.Len(t, batch.Entries, 2)
	assert.Empty(t, batch.Entries[0].DuplicateOf)
	assert.Equal(t, "B64_IMAGE", batch.Entries[1].DuplicateOf)
	assert.Equal(t, batch.Entries[0].Fingerprint, batch.Entries[1].Fingerprint)
}

func TestRun_PartialFailure(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "good.png"), 1, 1, color.NRGBA{A: 255})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.png"), make([]byte, 32), 0o644))

	batch, err := New(Config{Paths: []string{dir}, Verify: true}).Run()
	require.NoError(t, err)
	require.Len(t, batch.Entries, 1)
	require.Len(t, batch.Errors, 1)
	assert.ErrorIs(t, batch.Errors[0], raster.ErrUnsupportedFormat)
	assert.Equal(t, "good.png", batch.Entries[0].Source.RelPath)
}

func TestRun_AllFail(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty.png"), nil, 0o644))

	_, err := New(Config{Paths: []string{dir}}).Run()
	assert.Error(t, err)

	_, err = New(Config{Paths: []string{t.TempDir()}}).Run()
	assert.Error(t, err, "no inputs")
}
