// Package fsutil provides file system utility functions.
package fsutil

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// FindByExt returns the files under root with the given extension. Root may
// name a single file, which is returned as-is when the extension matches, or
// a directory, which is walked recursively. Results come back sorted so
// loaders that merge multiple files behave deterministically.
func FindByExt(fsys afero.Fs, root, ext string) ([]string, error) {
	if ext == "" {
		panic("extension must not be empty")
	}

	info, err := fsys.Stat(root)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !strings.HasSuffix(info.Name(), ext) {
			return nil, fmt.Errorf("%s is not a %s file", root, ext)
		}
		return []string{root}, nil
	}

	var files []string
	err = afero.Walk(fsys, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.HasSuffix(info.Name(), ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
