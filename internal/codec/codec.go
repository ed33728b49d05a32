// Package codec converts between binary image data and its base64 text
// form. Encoded text may be line-wrapped; decoding ignores all ASCII
// whitespace so wrapped and unwrapped literals decode to the same bytes.
package codec

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// DefaultWrap is the conventional MIME line width.
const DefaultWrap = 76

// ErrMalformedEncoding matches any MalformedEncodingError via errors.Is.
var ErrMalformedEncoding = errors.New("codec: malformed base64")

// MalformedEncodingError reports text that is not valid base64 after
// whitespace has been removed. Offset indexes the whitespace-free text.
type MalformedEncodingError struct {
	Offset int64
	Err    error
}

func (e *MalformedEncodingError) Error() string {
	return fmt.Sprintf("codec: malformed base64 at offset %d: %v", e.Offset, e.Err)
}

func (e *MalformedEncodingError) Unwrap() error { return e.Err }

func (e *MalformedEncodingError) Is(target error) bool { return target == ErrMalformedEncoding }

// Encode returns the standard, padded base64 encoding of data on a single line.
func Encode(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// EncodeWrapped encodes data and breaks the output into lines of at most
// width characters, each terminated by '\n'. A width <= 0 yields one line.
// Empty input encodes to the empty string.
func EncodeWrapped(data []byte, width int) string {
	return Wrap(Encode(data), width)
}

// Wrap splits s into '\n'-terminated lines of at most width characters.
func Wrap(s string, width int) string {
	if s == "" {
		return ""
	}
	if width <= 0 || len(s) <= width {
		return s + "\n"
	}

	var b strings.Builder
	b.Grow(len(s) + len(s)/width + 1)
	for len(s) > width {
		b.WriteString(s[:width])
		b.WriteByte('\n')
		s = s[width:]
	}
	if s != "" {
		b.WriteString(s)
		b.WriteByte('\n')
	}
	return b.String()
}

// Decode strips whitespace from text and decodes the remaining standard
// base64. Characters outside the alphabet and bad padding produce a
// *MalformedEncodingError.
func Decode(text string) ([]byte, error) {
	clean := Normalize(text)
	data, err := base64.StdEncoding.Strict().DecodeString(clean)
	if err != nil {
		var corrupt base64.CorruptInputError
		if errors.As(err, &corrupt) {
			return nil, &MalformedEncodingError{Offset: int64(corrupt), Err: err}
		}
		return nil, &MalformedEncodingError{Err: err}
	}
	return data, nil
}

// Normalize removes all ASCII whitespace from text.
func Normalize(text string) string {
	if strings.IndexFunc(text, isSpace) < 0 {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		if c := text[i]; !isSpace(rune(c)) {
			b.WriteByte(c)
		}
	}
	return b.String()
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
