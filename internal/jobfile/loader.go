package jobfile

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/simforge/ccxkit/internal/ctxlog"
	"github.com/simforge/ccxkit/internal/fsutil"
	"github.com/simforge/ccxkit/internal/mesh"
	"github.com/simforge/ccxkit/internal/model"
	"github.com/simforge/ccxkit/internal/registry"
	"github.com/spf13/afero"
	"github.com/zclconf/go-cty/cty"
)

// Ext is the file extension job files are discovered by.
const Ext = ".hcl"

// Loader reads HCL job files into an analysis model. Material and step
// blocks are resolved against the kind registry, so a loader can only build
// jobs out of the kinds compiled into the application.
type Loader struct {
	fs  afero.Fs
	reg *registry.Registry
}

// NewLoader creates a job-file loader over the given filesystem and kind
// registry.
func NewLoader(fs afero.Fs, reg *registry.Registry) *Loader {
	return &Loader{fs: fs, reg: reg}
}

// Load reads the job definition at path, which may name a single job file or
// a directory of them, and translates the merged content into an Analysis.
// Files merge in sorted path order; declarations keep their in-file order.
func (l *Loader) Load(ctx context.Context, path string) (*model.Analysis, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Job loader started.", "path", path)

	files, err := fsutil.FindByExt(l.fs, path, Ext)
	if err != nil {
		return nil, fmt.Errorf("discovering job files: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no %s job files found under %s", Ext, path)
	}
	logger.Debug("Discovered job files.", "count", len(files))

	parser := hclparse.NewParser()
	evalCtx := constantsContext()

	roots := make([]*fileRoot, 0, len(files))
	for _, file := range files {
		src, err := afero.ReadFile(l.fs, file)
		if err != nil {
			return nil, fmt.Errorf("reading job file %s: %w", file, err)
		}

		hclFile, diags := parser.ParseHCL(src, file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse job file %s: %w", file, diags)
		}

		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, evalCtx, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode job file %s: %w", file, diags)
		}
		roots = append(roots, &root)
	}

	analysis, err := l.translate(ctx, path, files, roots, evalCtx)
	if err != nil {
		return nil, err
	}

	logger.Debug("Job loading complete.",
		"name", analysis.Name,
		"node_sets", len(analysis.NodeSets),
		"element_sets", len(analysis.ElementSets),
		"materials", len(analysis.Materials),
		"steps", len(analysis.Steps),
	)
	return analysis, nil
}

// constantsContext exposes the physical constants to job-file expressions,
// so values read the way engineers write them, e.g. `20 - absolute_zero`.
func constantsContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"absolute_zero":    cty.NumberFloatVal(model.DefaultAbsoluteZero),
			"stefan_boltzmann": cty.NumberFloatVal(model.DefaultStefanBoltzmann),
		},
	}
}

// jobName derives the analysis label: an explicit settings name wins, then
// the base name of the job path without its extension.
func jobName(path string, s *settingsBlock) string {
	if s != nil && s.Name != "" {
		return s.Name
	}
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// meshSource builds the mesh source for the settings, or nil when the job
// declares no mesh of its own.
func (l *Loader) meshSource(s *settingsBlock) model.MeshSource {
	if s == nil || s.Mesh == "" {
		return nil
	}
	return mesh.NewFileSource(l.fs, s.Mesh)
}
