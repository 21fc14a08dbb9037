package asset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var ErrNotFound = errors.New("asset: file not found")

// SearchPath is an ordered list of directories consulted when resolving
// bare file names.
type SearchPath struct {
	dirs []string

	// stat is swapped in tests.
	stat func(string) bool
}

// NewSearchPath creates a search path from list-separated strings.
func NewSearchPath(pathLists ...string) *SearchPath {
	sp := &SearchPath{stat: fileExists}
	for _, l := range pathLists {
		sp.Add(l)
	}
	return sp
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Add appends every segment of a list-separated string (":" on unix, ";" on
// windows). Empty segments are ignored.
func (sp *SearchPath) Add(pathList string) {
	for _, dir := range filepath.SplitList(pathList) {
		if dir == "" {
			continue
		}
		sp.dirs = append(sp.dirs, filepath.Clean(dir))
	}
}

// Dirs returns the directories in lookup order.
func (sp *SearchPath) Dirs() []string {
	return append([]string(nil), sp.dirs...)
}

// Resolve returns the full path of name. A name that already points at an
// existing file is returned as is; otherwise the first directory holding it
// wins.
func (sp *SearchPath) Resolve(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty file name", ErrNotFound)
	}
	stat := sp.stat
	if stat == nil {
		stat = fileExists
	}
	if stat(name) {
		return name, nil
	}
	if !filepath.IsAbs(name) {
		for _, dir := range sp.dirs {
			full := filepath.Join(dir, name)
			if stat(full) {
				return full, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %s (searched %v)", ErrNotFound, name, sp.dirs)
}
