package raster

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat is returned when no enabled back end recognizes
	// the byte signature.
	ErrUnsupportedFormat = errors.New("raster: unsupported format")

	// ErrCorruptImage matches any CorruptImageError via errors.Is.
	ErrCorruptImage = errors.New("raster: corrupt image")

	// ErrImageTooLarge is wrapped in a CorruptImageError when the declared
	// dimensions exceed the registry's pixel cap.
	ErrImageTooLarge = errors.New("raster: image too large")
)

// CorruptImageError reports a buffer whose signature matched Format but
// whose body could not be parsed.
type CorruptImageError struct {
	Format string
	Err    error
}

func (e *CorruptImageError) Error() string {
	return fmt.Sprintf("raster: corrupt %s image: %v", e.Format, e.Err)
}

func (e *CorruptImageError) Unwrap() error { return e.Err }

func (e *CorruptImageError) Is(target error) bool { return target == ErrCorruptImage }
