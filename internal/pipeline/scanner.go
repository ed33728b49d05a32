package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Source is one input file.
type Source struct {
	// AbsPath is the absolute path to the file on disk.
	AbsPath string
	// RelPath is the path as given, or relative to the scanned directory.
	RelPath string
	// Ext is the lowercase extension without the dot.
	Ext string
	// Size is the file size in bytes.
	Size int64
}

// ScanPaths expands paths into sources in a stable order. Files named
// directly are always included; directories are walked recursively for
// files whose extension is in exts, skipping hidden directories.
func ScanPaths(paths []string, exts []string) ([]Source, error) {
	var sources []Source
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			abs, err := filepath.Abs(p)
			if err != nil {
				return nil, fmt.Errorf("resolve %s: %w", p, err)
			}
			sources = append(sources, Source{
				AbsPath: abs,
				RelPath: filepath.ToSlash(p),
				Ext:     extOf(p),
				Size:    info.Size(),
			})
			continue
		}

		found, err := scanDir(p, exts)
		if err != nil {
			return nil, err
		}
		sources = append(sources, found...)
	}
	return sources, nil
}

func scanDir(dir string, exts []string) ([]Source, error) {
	var sources []Source

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != dir && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		ext := extOf(path)
		if !slices.Contains(exts, ext) {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		sources = append(sources, Source{
			AbsPath: abs,
			RelPath: filepath.ToSlash(rel),
			Ext:     ext,
			Size:    info.Size(),
		})
		return nil
	})

	return sources, err
}

func extOf(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}
