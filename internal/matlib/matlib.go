// Package matlib loads reusable material definitions from YAML library
// files. A library is a catalogue: entries are built and checked eagerly so a
// broken library fails at load time, but nothing enters an analysis until a
// job actually references it.
package matlib

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/simforge/ccxkit/internal/ctxlog"
	"github.com/simforge/ccxkit/internal/model"
	"github.com/simforge/ccxkit/internal/registry"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// libraryFile is the schema of one library document.
type libraryFile struct {
	Materials []entry `yaml:"materials"`
}

// entry is one named material definition. Properties stay undecoded until
// the kind is resolved, because only the kind knows its input schema.
type entry struct {
	Name       string    `yaml:"name"`
	Kind       string    `yaml:"kind"`
	Properties yaml.Node `yaml:"properties"`
}

// Library is a set of ready-built materials addressed by name.
type Library struct {
	materials map[string]model.Material
}

// Lookup returns the material registered under name.
func (l *Library) Lookup(name string) (model.Material, bool) {
	m, ok := l.materials[name]
	return m, ok
}

// Names returns the material names in the library, sorted.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.materials))
	for name := range l.materials {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of materials in the library.
func (l *Library) Len() int {
	return len(l.materials)
}

// Load reads the YAML material library at path and builds every entry
// against the registered kinds. All broken entries are reported together,
// not just the first one.
func Load(ctx context.Context, fsys afero.Fs, reg *registry.Registry, path string) (*Library, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading material library.", "path", path)

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading material library %s: %w", path, err)
	}

	var file libraryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing material library %s: %w", path, err)
	}

	lib := &Library{materials: make(map[string]model.Material, len(file.Materials))}
	var result *multierror.Error

	for i, e := range file.Materials {
		m, err := buildEntry(reg, e, i)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		if _, exists := lib.materials[e.Name]; exists {
			result = multierror.Append(result, fmt.Errorf("duplicate library material %q", e.Name))
			continue
		}
		if err := m.Validate(); err != nil {
			result = multierror.Append(result, &model.InvalidMaterialError{Material: e.Name, Err: err})
			continue
		}
		lib.materials[e.Name] = m
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("material library %s: %w", path, err)
	}

	logger.Debug("Material library loaded.", "count", lib.Len())
	return lib, nil
}

// buildEntry resolves the entry's kind and decodes its properties into the
// kind's input schema.
func buildEntry(reg *registry.Registry, e entry, index int) (model.Material, error) {
	if e.Name == "" {
		return nil, fmt.Errorf("library entry %d has no name", index)
	}
	if e.Kind == "" {
		return nil, fmt.Errorf("library material %q has no kind", e.Name)
	}

	kind, ok := reg.MaterialKinds[e.Kind]
	if !ok {
		return nil, fmt.Errorf("library material %q: unknown material kind %q (available: %s)",
			e.Name, e.Kind, strings.Join(reg.MaterialKindNames(), ", "))
	}

	input := kind.NewInput()
	if !e.Properties.IsZero() {
		if err := e.Properties.Decode(input); err != nil {
			return nil, fmt.Errorf("library material %q: decoding properties: %w", e.Name, err)
		}
	}
	return kind.Build(e.Name, input)
}
