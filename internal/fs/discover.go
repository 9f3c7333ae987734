package fs

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// DefaultExtensions are the file name suffixes treated as C sources and headers.
var DefaultExtensions = []string{".c", ".h"}

// HasExtension reports whether the base name of path ends with one of exts.
// The comparison is case sensitive.
func HasExtension(path string, exts []string) bool {
	name := filepath.Base(path)
	for _, ext := range exts {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// Discover walks root recursively and returns the absolute paths of all regular
// files whose names end with one of exts. Results are grouped by extension in
// the order exts lists them, and each group keeps the lexical walk order.
// The .git directory is never entered.
func Discover(root string, exts []string) ([]string, error) {
	absRoot, err := Abs(root)
	if err != nil {
		return nil, err
	}

	groups := make([][]string, len(exts))
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" && path != absRoot {
				return filepath.SkipDir
			}
			return nil
		}
		for i, ext := range exts {
			if strings.HasSuffix(d.Name(), ext) {
				groups[i] = append(groups[i], path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var files []string
	for _, g := range groups {
		files = append(files, g...)
	}
	return files, nil
}
