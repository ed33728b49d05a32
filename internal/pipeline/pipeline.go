// Package pipeline turns a set of image files into named base64 literals,
// processing files in parallel while keeping output in input order.
package pipeline

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/AnyUserName/imgembed-cli/internal/hasher"
	"github.com/AnyUserName/imgembed-cli/internal/literal"
	"github.com/AnyUserName/imgembed-cli/internal/logging"
	"github.com/AnyUserName/imgembed-cli/internal/raster"
)

// Config holds all parameters for an embed run.
type Config struct {
	Paths []string
	// Extensions selects files when walking directories.
	Extensions []string
	Workers    int
	// Name is the identifier of the first literal; later ones get _1, _2, ...
	Name  string
	Style literal.Style
	Wrap  int
	// Verify decodes every file and rejects those that are not images.
	Verify  bool
	Decoder *raster.Decoder
}

// Entry is one embedded file.
type Entry struct {
	Source      Source
	Literal     literal.Literal
	Rendered    string
	Fingerprint string
	// DuplicateOf names an earlier literal with identical bytes.
	DuplicateOf string

	// Set only when verifying.
	Format string
	Width  int
	Height int
}

// Batch is the result of a run.
type Batch struct {
	Entries []Entry
	Errors  []error
	Elapsed time.Duration
}

// Pipeline orchestrates literal generation.
type Pipeline struct {
	cfg Config
}

// New creates a configured pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Name == "" {
		cfg.Name = literal.DefaultName
	}
	if cfg.Style.Name == "" {
		cfg.Style = literal.GetStyle(literal.DefaultStyle)
	}
	if cfg.Decoder == nil {
		cfg.Decoder = raster.NewDecoder(nil)
	}
	if cfg.Extensions == nil {
		cfg.Extensions = cfg.Decoder.Registry().Extensions()
	}
	return &Pipeline{cfg: cfg}
}

// Run executes the pipeline. Individual failures are collected in
// Batch.Errors; Run fails only when nothing could be embedded.
func (p *Pipeline) Run() (*Batch, error) {
	start := time.Now()

	sources, err := ScanPaths(p.cfg.Paths, p.cfg.Extensions)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no images found in %v", p.cfg.Paths)
	}
	logging.Debug().Add(logging.Int("sources", len(sources))).Add(logging.Int("workers", p.cfg.Workers)).Msg("scan complete")

	results := make([]processResult, len(sources))
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.cfg.Workers)

	for i, src := range sources {
		wg.Add(1)
		go func(idx int, s Source) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release

			results[idx] = processSource(s, p.cfg)
		}(i, src)
	}
	wg.Wait()

	batch := &Batch{}
	seen := map[string]string{}
	for _, r := range results {
		if r.err != nil {
			logging.Warn().Add(logging.Path(r.entry.Source.RelPath)).Add(logging.ErrorField(r.err)).Msg("skipped")
			batch.Errors = append(batch.Errors, r.err)
			continue
		}

		e := r.entry
		idx := len(batch.Entries)
		e.Literal.Index = idx
		e.Literal.Name = literalName(p.cfg.Name, idx)
		e.Rendered = literal.Format(e.Literal.Name, e.Literal.Text, p.cfg.Style)
		if prev, ok := seen[e.Fingerprint]; ok {
			e.DuplicateOf = prev
		} else {
			seen[e.Fingerprint] = e.Literal.Name
		}

		logging.Debug().
			Add(logging.Path(e.Source.RelPath)).
			Add(logging.Str("name", e.Literal.Name)).
			Add(logging.Str("fingerprint", hasher.Short(e.Fingerprint))).
			Msg("embedded")
		batch.Entries = append(batch.Entries, e)
	}

	batch.Elapsed = time.Since(start)
	if len(batch.Entries) == 0 {
		return batch, fmt.Errorf("all %d inputs failed", len(batch.Errors))
	}
	return batch, nil
}

func literalName(base string, i int) string {
	if i == 0 {
		return base
	}
	return fmt.Sprintf("%s_%d", base, i)
}
