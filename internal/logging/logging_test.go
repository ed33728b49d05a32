package logging

import (
	"bytes"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "warn", cfg.Level)
	assert.Equal(t, "console", cfg.Format)
	assert.Equal(t, os.Stderr, cfg.Output)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, parseLevel("debug"), parseLevel("debug"))
	assert.Equal(t, parseLevel("warn"), parseLevel("bogus"))
	assert.NotEqual(t, parseLevel("debug"), parseLevel("error"))
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	Debug().
		Add(Path("logo.png")).
		Add(Format("png")).
		Add(Int("width", 32)).
		Add(Duration(1500 * time.Millisecond)).
		Add(ErrorField(errors.New("boom"))).
		Msg("decoded")

	out := buf.String()
	assert.Contains(t, out, "decoded")
	assert.Contains(t, out, `"path"`)
	assert.Contains(t, out, "logo.png")
	assert.Contains(t, out, "1500")
	assert.Contains(t, out, "boom")
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "error", Format: "json", Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	Info().Add(Str("k", "v")).Msg("hidden")
	assert.Empty(t, buf.String())

	Error().Add(ErrorField(nil)).Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}
