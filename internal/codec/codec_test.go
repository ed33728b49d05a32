package codec

import (
	"bytes"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundtrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	sizes := []int{0, 1, 2, 3, 56, 57, 58, 100, 1024, 3925}
	for _, n := range sizes {
		data := make([]byte, n)
		rng.Read(data)

		for _, width := range []int{0, 4, 76} {
			text := EncodeWrapped(data, width)
			got, err := Decode(text)
			require.NoError(t, err, "size=%d width=%d", n, width)
			assert.True(t, bytes.Equal(data, got), "size=%d width=%d", n, width)
		}
	}
}

func TestEncodeWrapped_LineWidth(t *testing.T) {
	data := bytes.Repeat([]byte{0xAB}, 200)
	text := EncodeWrapped(data, DefaultWrap)

	require.True(t, strings.HasSuffix(text, "\n"))
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, l := range lines[:len(lines)-1] {
		assert.Len(t, l, DefaultWrap, "line %d", i)
	}
	assert.LessOrEqual(t, len(lines[len(lines)-1]), DefaultWrap)
}

func TestEncodeWrapped_Empty(t *testing.T) {
	assert.Equal(t, "", EncodeWrapped(nil, DefaultWrap))
	got, err := Decode("")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDecode_WhitespaceInsensitive(t *testing.T) {
	want := []byte("embedded image payload")
	flat := Encode(want)

	variants := []string{
		flat,
		"\n" + flat + "\n",
		"  " + flat[:5] + "\t" + flat[5:11] + "\r\n" + flat[11:],
		strings.Join(strings.Split(flat, ""), " "),
	}
	for _, v := range variants {
		got, err := Decode(v)
		require.NoError(t, err, "%q", v)
		assert.Equal(t, want, got)
	}
}

func TestDecode_Malformed(t *testing.T) {
	cases := map[string]string{
		"bad char":      "aGVs*G8=",
		"bad padding":   "aGVsbG8",
		"extra padding": "aGVsbG8==",
		"url alphabet":  "-_-_",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedEncoding))

			var me *MalformedEncodingError
			require.True(t, errors.As(err, &me))
			assert.GreaterOrEqual(t, me.Offset, int64(0))
		})
	}
}

func TestEncodeDecodeIdempotent(t *testing.T) {
	in := "aGVs\nbG8g\n d29y bGQ=\n"
	data, err := Decode(in)
	require.NoError(t, err)

	once := Encode(data)
	assert.Equal(t, Normalize(in), once)

	again, err := Decode(once)
	require.NoError(t, err)
	assert.Equal(t, once, Encode(again))
}
