package backend

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Registry holds the known back ends in sniffing priority order. It is
// immutable once built and safe for concurrent use.
type Registry struct {
	backends []Backend
	disabled  map[string]bool
	formats   []FormatDescriptor
	maxPixels int64
}

type registryConfig struct {
	disabled  []string
	svgSize   int
	maxPixels int64
}

// Option configures a Registry.
type Option func(*registryConfig)

// WithDisabled marks back ends as disabled. Disabled back ends are still
// listed by Formats but never match or decode.
func WithDisabled(names ...string) Option {
	return func(c *registryConfig) {
		c.disabled = append(c.disabled, names...)
	}
}

// WithSVGSize renders SVG documents so their longest side is n pixels.
// Zero keeps the intrinsic size.
func WithSVGSize(n int) Option {
	return func(c *registryConfig) {
		c.svgSize = n
	}
}

// WithMaxPixels caps width*height of images decoded through the
// registry. Zero or less keeps DefaultMaxPixels.
func WithMaxPixels(n int64) Option {
	return func(c *registryConfig) {
		c.maxPixels = n
	}
}

// NewRegistry creates a registry with every built-in back end.
func NewRegistry(opts ...Option) *Registry {
	var cfg registryConfig
	for _, o := range opts {
		o(&cfg)
	}

	r := &Registry{
		disabled:  make(map[string]bool),
		maxPixels: cfg.maxPixels,
	}
	if r.maxPixels <= 0 {
		r.maxPixels = DefaultMaxPixels
	}
	for _, name := range cfg.disabled {
		r.disabled[strings.ToLower(strings.TrimSpace(name))] = true
	}

	// Order matters: the first match wins.
	r.backends = []Backend{
		&PNG{},
		&JPEG{},
		&GIF{},
		&WebP{},
		&BMP{},
		&TIFF{},
		&ICO{},
		&SVG{Size: cfg.svgSize},
	}

	r.formats = make([]FormatDescriptor, 0, len(r.backends))
	for _, b := range r.backends {
		d := b.Descriptor()
		d.Disabled = r.disabled[d.Name]
		_, d.Writable = b.(Encoder)
		r.formats = append(r.formats, d)
	}
	return r
}

// Sniff returns the first enabled back end whose signature matches data.
func (r *Registry) Sniff(data []byte) (Backend, bool) {
	header := data
	if len(header) > HeaderSize {
		header = header[:HeaderSize]
	}
	for _, b := range r.backends {
		if r.disabled[b.Descriptor().Name] {
			continue
		}
		if b.Match(header) {
			return b, true
		}
	}
	return nil, false
}

// MaxPixels is the largest width*height a decoder may allocate.
func (r *Registry) MaxPixels() int64 { return r.maxPixels }

// Lookup returns the enabled back end with the given short name.
func (r *Registry) Lookup(name string) (Backend, bool) {
	name = strings.ToLower(name)
	if r.disabled[name] {
		return nil, false
	}
	for _, b := range r.backends {
		if b.Descriptor().Name == name {
			return b, true
		}
	}
	return nil, false
}

// ForExtension returns the enabled back end claiming a file extension
// (with or without the leading dot).
func (r *Registry) ForExtension(ext string) (Backend, bool) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	for i, d := range r.formats {
		if d.Disabled {
			continue
		}
		if slices.Contains(d.Extensions, ext) {
			return r.backends[i], true
		}
	}
	return nil, false
}

// Formats yields the descriptor of every registered back end, disabled
// ones included. The sequence is computed once and may be ranged over
// any number of times.
func (r *Registry) Formats() iter.Seq[FormatDescriptor] {
	return func(yield func(FormatDescriptor) bool) {
		for _, d := range r.formats {
			d.MimeTypes = slices.Clone(d.MimeTypes)
			d.Extensions = slices.Clone(d.Extensions)
			if !yield(d) {
				return
			}
		}
	}
}

// Extensions returns every file extension an enabled back end can decode.
func (r *Registry) Extensions() []string {
	var out []string
	for _, d := range r.formats {
		if !d.Disabled {
			out = append(out, d.Extensions...)
		}
	}
	return out
}

// Available returns the names of enabled back ends in priority order.
func (r *Registry) Available() []string {
	var out []string
	for _, d := range r.formats {
		if !d.Disabled {
			out = append(out, d.Name)
		}
	}
	return out
}

// String returns a summary of enabled back ends.
func (r *Registry) String() string {
	avail := r.Available()
	if len(avail) == 0 {
		return "no back ends enabled"
	}
	return fmt.Sprintf("back ends: %s", strings.Join(avail, ", "))
}
