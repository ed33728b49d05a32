package hasher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprint(t *testing.T) {
	a := Fingerprint([]byte("image bytes"))
	assert.Len(t, a, 16)
	assert.Equal(t, a, Fingerprint([]byte("image bytes")))
	assert.NotEqual(t, a, Fingerprint([]byte("image bytez")))

	// xxHash64 of the empty input.
	assert.Equal(t, "ef46db3751d8e999", Fingerprint(nil))
}

func TestShort(t *testing.T) {
	assert.Equal(t, "ef46db37", Short("ef46db3751d8e999"))
	assert.Equal(t, "abc", Short("abc"))
	assert.Len(t, Short(Fingerprint([]byte("x"))), ShortLen)
}
