package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "B64_IMAGE", cfg.Literal.Name)
	assert.Equal(t, "python", cfg.Literal.Style)
	assert.Equal(t, 76, cfg.Literal.Wrap)
	assert.Equal(t, "text", cfg.Report.Format)
	assert.NoError(t, cfg.Validate())
}

func TestParse_YAMLOverridesDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader(`
literal:
  style: go
  wrap: 64
decode:
  disabled_formats: [svg, webp]
  svg_size: 128
  max_pixels: 1000000
`), false)
	require.NoError(t, err)
	assert.Equal(t, "go", cfg.Literal.Style)
	assert.Equal(t, 64, cfg.Literal.Wrap)
	assert.Equal(t, "B64_IMAGE", cfg.Literal.Name, "unset keys keep defaults")
	assert.Equal(t, []string{"svg", "webp"}, cfg.Decode.DisabledFormats)
	assert.Equal(t, 128, cfg.Decode.SVGSize)
	assert.EqualValues(t, 1000000, cfg.Decode.MaxPixels)
}

func TestParse_JSON(t *testing.T) {
	cfg, err := Parse(strings.NewReader(`{"literal": {"name": "ICON"}, "report": {"format": "json"}}`), true)
	require.NoError(t, err)
	assert.Equal(t, "ICON", cfg.Literal.Name)
	assert.Equal(t, "json", cfg.Report.Format)
}

func TestParse_Invalid(t *testing.T) {
	for _, doc := range []string{
		"literal: {wrap: -1}",
		"decode: {svg_size: -5}",
		"decode: {max_pixels: -1}",
		"report: {format: xml}",
	} {
		_, err := Parse(strings.NewReader(doc), false)
		assert.True(t, errors.Is(err, ErrInvalid), "%s: %v", doc, err)
	}

	_, err := Parse(strings.NewReader("literal: [unclosed"), false)
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	yml := filepath.Join(dir, "cfg.yml")
	require.NoError(t, os.WriteFile(yml, []byte("literal: {name: LOGO}\n"), 0o644))
	cfg, err := Load(yml)
	require.NoError(t, err)
	assert.Equal(t, "LOGO", cfg.Literal.Name)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, ErrConfigNotFound)

	toml := filepath.Join(dir, "cfg.toml")
	require.NoError(t, os.WriteFile(toml, []byte(""), 0o644))
	_, err = Load(toml)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load(dir)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoad_ImplicitMissing(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
