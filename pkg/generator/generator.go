package generator

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/descriptor"
	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/errors"
	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/generator/checksum"
	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/generator/config"
	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/generator/document"
	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/generator/internal"
	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/generator/params"
	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/generator/result"
	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/generator/templates"
)

// Generator produces deployment artifacts for a descriptor.
type Generator interface {
	Make(ctx context.Context, d *descriptor.ApplicationDescriptor, dir string) (*result.Output, error)
}

// DefaultGenerator renders the artifact set registered for the
// descriptor's deployment target.
type DefaultGenerator struct {
	// Config provides generation settings.
	Config *config.Config

	// Registry provides artifact specs and script variants.
	Registry *templates.Registry
}

// Option configures a DefaultGenerator.
type Option func(*DefaultGenerator)

// WithConfig sets the generation config.
func WithConfig(cfg *config.Config) Option {
	return func(g *DefaultGenerator) {
		if cfg != nil {
			g.Config = cfg
		}
	}
}

// WithRegistry sets the template registry.
func WithRegistry(r *templates.Registry) Option {
	return func(g *DefaultGenerator) {
		if r != nil {
			g.Registry = r
		}
	}
}

// New returns a DefaultGenerator with a validated config.
func New(opts ...Option) (*DefaultGenerator, error) {
	g := &DefaultGenerator{
		Config:   config.NewConfig(),
		Registry: templates.Default(),
	}

	for _, opt := range opts {
		opt(g)
	}

	if err := g.Config.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "invalid generator config", err)
	}

	return g, nil
}

// Make renders every artifact of d and writes them below dir. Nothing is
// written unless all artifacts render and no conflicting file exists.
func (g *DefaultGenerator) Make(ctx context.Context, d *descriptor.ApplicationDescriptor, dir string) (*result.Output, error) {
	start := time.Now()

	out, err := g.make(ctx, d, dir, start)
	if err != nil {
		code := errors.CodeOf(err)
		if code == "" {
			code = errors.ErrCodeInternal
		}
		generationFailures.WithLabelValues(string(code)).Inc()
		slog.Error("generation failed", "error", err, "output_dir", dir)
		return nil, err
	}

	generateDuration.WithLabelValues(out.Target).Observe(out.TotalDuration.Seconds())
	return out, nil
}

func (g *DefaultGenerator) make(ctx context.Context, d *descriptor.ApplicationDescriptor, dir string, start time.Time) (*result.Output, error) {
	if d == nil {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "application descriptor is required")
	}
	if dir == "" {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest,
			"output directory is required", map[string]any{"field": "dir"})
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeTimeout, "generation cancelled", err)
	}

	runID := uuid.NewString()
	slog.Debug("generation started",
		"run_id", runID,
		"application", d.Name,
		"language", d.Language,
		"target", d.DeploymentTarget,
		"output_dir", dir,
	)

	specs, err := g.Registry.Select(d.DeploymentTarget)
	if err != nil {
		return nil, err
	}

	set, err := params.Build(d, g.Config)
	if err != nil {
		return nil, err
	}

	files, err := g.render(ctx, d, set, specs)
	if err != nil {
		return nil, err
	}

	if g.Config.IncludeChecksums() {
		entries := make([]checksum.Entry, 0, len(files))
		for _, f := range files {
			entries = append(entries, checksum.Entry{Path: f.Path, Content: f.Content})
		}
		files = append(files, internal.File{
			Artifact: "checksums",
			Path:     checksum.ChecksumFileName,
			Format:   string(templates.FormatText),
			Content:  checksum.Manifest(entries),
			Mode:     0o644,
		})
	}

	w := internal.NewWriter(dir, g.Config.Overwrite())
	planned, err := w.Plan(ctx, files)
	if err != nil {
		return nil, err
	}

	if !g.Config.DryRun() {
		written, err := w.Apply(ctx, planned)
		if err != nil {
			return nil, err
		}
		slog.Debug("files written", "run_id", runID, "written", written, "total", len(planned))
	}

	out := result.New(runID, dir)
	out.Application = d.Name
	out.Language = string(d.Language)
	out.Target = string(d.DeploymentTarget)
	out.DryRun = g.Config.DryRun()

	for _, p := range planned {
		status := result.StatusWritten
		switch {
		case out.DryRun:
			status = result.StatusPlanned
		case p.Identical:
			status = result.StatusUnchanged
		}
		out.Add(&result.Result{
			Artifact: p.Artifact,
			Path:     p.Path,
			Format:   p.Format,
			Size:     int64(len(p.Content)),
			Checksum: checksum.Sum(p.Content),
			Status:   status,
		})
	}
	out.TotalDuration = time.Since(start)

	slog.Info("generation complete",
		"run_id", runID,
		"application", d.Name,
		"target", d.DeploymentTarget,
		"files", out.TotalFiles,
		"dry_run", out.DryRun,
		"duration", out.TotalDuration.Round(time.Millisecond),
	)

	return out, nil
}

// render assembles every spec concurrently. The returned files keep the
// registry order regardless of completion order.
func (g *DefaultGenerator) render(ctx context.Context, d *descriptor.ApplicationDescriptor,
	set *params.Set, specs []templates.ArtifactSpec) ([]internal.File, error) {

	asm := document.NewAssembler(d, set, g.Config, g.Registry)
	files := make([]internal.File, len(specs))

	eg, egCtx := errgroup.WithContext(ctx)
	for i, spec := range specs {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return errors.Wrap(errors.ErrCodeTimeout, "rendering cancelled", err)
			}

			path, err := spec.ResolvePath(set)
			if err != nil {
				return err
			}

			content, err := asm.Assemble(spec)
			if err != nil {
				return err
			}

			files[i] = internal.File{
				Artifact: spec.ID,
				Path:     path,
				Format:   string(spec.Format),
				Content:  content,
				Mode:     spec.Mode(),
			}
			artifactsGenerated.WithLabelValues(spec.ID).Inc()

			slog.Debug("artifact rendered",
				"artifact", spec.ID,
				"path", path,
				"size_bytes", len(content),
			)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}
