// Package literal holds base64 image literals: the variants compiled into
// the binary, the selector rules used to pick one, and the source-code
// styles a literal can be rendered in.
package literal

import (
	_ "embed"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// DefaultName is the identifier given to a literal when none is chosen.
const DefaultName = "B64_IMAGE"

// Literal is one embedded, base64-encoded image.
type Literal struct {
	Index int
	Name  string
	// Text is the base64 payload, possibly line-wrapped.
	Text string
}

//go:embed variants/0.b64
var variant0 string

//go:embed variants/1.b64
var variant1 string

//go:embed variants/2.b64
var variant2 string

// Registry maps small indices to literals. It is immutable after New.
type Registry struct {
	literals map[int]Literal
	def      int
}

// New builds a registry. Each literal's Index is its key; def must be
// one of them.
func New(def int, literals ...Literal) (*Registry, error) {
	r := &Registry{literals: make(map[int]Literal, len(literals)), def: def}
	for _, l := range literals {
		if l.Index < 0 {
			return nil, fmt.Errorf("literal %q: negative index %d", l.Name, l.Index)
		}
		if _, dup := r.literals[l.Index]; dup {
			return nil, fmt.Errorf("literal %q: duplicate index %d", l.Name, l.Index)
		}
		r.literals[l.Index] = l
	}
	if _, ok := r.literals[def]; !ok {
		return nil, fmt.Errorf("default index %d not registered", def)
	}
	return r, nil
}

// Builtin returns the three variants shipped with the tool: a 32x32 PNG
// logo (0), the same logo as SVG (1) and a 50x50 Windows icon (2).
func Builtin() *Registry {
	r, err := New(0,
		Literal{Index: 0, Name: DefaultName, Text: variant0},
		Literal{Index: 1, Name: DefaultName + "_1", Text: variant1},
		Literal{Index: 2, Name: DefaultName + "_2", Text: variant2},
	)
	if err != nil {
		panic(err)
	}
	return r
}

// Default returns the index used for fallback.
func (r *Registry) Default() int { return r.def }

// Indices returns the registered indices in ascending order.
func (r *Registry) Indices() []int {
	out := make([]int, 0, len(r.literals))
	for i := range r.literals {
		out = append(out, i)
	}
	slices.Sort(out)
	return out
}

// Select returns the literal at index i, or the default literal when i
// is not registered.
func (r *Registry) Select(i int) Literal {
	if l, ok := r.literals[i]; ok {
		return l
	}
	return r.literals[r.def]
}

// ParseSelector maps a command-line argument to an index. Anything other
// than a plain non-negative decimal naming a registered literal selects
// the default.
func (r *Registry) ParseSelector(arg string) int {
	arg = strings.TrimSpace(arg)
	if arg == "" || strings.IndexFunc(arg, func(c rune) bool { return c < '0' || c > '9' }) >= 0 {
		return r.def
	}
	i, err := strconv.Atoi(arg)
	if err != nil {
		return r.def
	}
	if _, ok := r.literals[i]; !ok {
		return r.def
	}
	return i
}
