// Package mesh provides sources that stream mesh definitions into a working
// directory without holding them in memory.
package mesh

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
)

// FileSource streams an existing mesh file from a filesystem.
type FileSource struct {
	fs   afero.Fs
	path string
}

// NewFileSource returns a source backed by path on fs.
func NewFileSource(fs afero.Fs, path string) *FileSource {
	return &FileSource{fs: fs, path: path}
}

// Path returns the path the source reads from.
func (s *FileSource) Path() string {
	return s.path
}

// WriteMesh copies the file content to w.
func (s *FileSource) WriteMesh(w io.Writer) error {
	f, err := s.fs.Open(s.path)
	if err != nil {
		return fmt.Errorf("opening mesh %s: %w", s.path, err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("copying mesh %s: %w", s.path, err)
	}
	return nil
}

// Static is an in-memory mesh definition, mostly useful for small models and
// tests.
type Static []byte

// WriteMesh writes the content to w.
func (s Static) WriteMesh(w io.Writer) error {
	_, err := w.Write(s)
	return err
}
