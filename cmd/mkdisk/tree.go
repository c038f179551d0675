package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/hashicorp/go-multierror"
	"github.com/quietgrove/mkdisk/fat32"
)

// fileSystem is the narrow capability the tree walker drives; fat32.FileSystem
// satisfies it directly.
type fileSystem interface {
	MakeDir(path string) error
	WriteFile(path string, data []byte) error
}

var _ fileSystem = (*fat32.FileSystem)(nil)

// populateTree walks sourceDir and replays it onto volume: every
// subdirectory becomes a MakeDir call and every regular file becomes a
// WriteFile call, with paths relativized to sourceDir.
//
// Unlike the core engine, which returns the first error it hits, this
// walker keeps going after a failure so one bad file doesn't hide every
// other problem in the tree, then reports everything it found at once.
func populateTree(volume fileSystem, sourceDir string) error {
	var entries []string
	var kinds []bool // true = directory

	err := filepath.WalkDir(sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == sourceDir {
			return nil
		}
		rel, err := filepath.Rel(sourceDir, path)
		if err != nil {
			return err
		}
		entries = append(entries, rel)
		kinds = append(kinds, d.IsDir())
		return nil
	})
	if err != nil {
		return fmt.Errorf("walking %s: %w", sourceDir, err)
	}

	var result *multierror.Error
	for i, rel := range entries {
		vpath := "/" + filepath.ToSlash(rel)
		if kinds[i] {
			if err := volume.MakeDir(vpath); err != nil {
				result = multierror.Append(result, fmt.Errorf("%s: %w", vpath, err))
			}
			continue
		}

		data, err := os.ReadFile(filepath.Join(sourceDir, rel))
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", vpath, err))
			continue
		}
		if err := volume.WriteFile(vpath, data); err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", vpath, err))
		}
	}

	return result.ErrorOrNil()
}

// sortedKeys is a small helper used by the list-sizes subcommand.
func sortedKeys(m map[string]uint64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
