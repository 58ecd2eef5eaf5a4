package templates

import (
	"io/fs"
	"regexp"
	"sync"

	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/descriptor"
	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/errors"
)

// Format is the serialization of an artifact.
type Format string

// Artifact formats.
const (
	FormatYAML  Format = "yaml"
	FormatJSON  Format = "json"
	FormatShell Format = "shell-script"
	FormatText  Format = "raw-text"
)

// Artifact identifiers.
const (
	ArtifactToolchain       = "toolchain"
	ArtifactPipeline        = "pipeline"
	ArtifactDeploySchema    = "deploy-schema"
	ArtifactBuildScript     = "container-build"
	ArtifactDeployScript    = "kube-deploy"
	ArtifactChartMetadata   = "chart-metadata"
	ArtifactChartValues     = "chart-values"
	ArtifactChartDeployment = "chart-deployment"
	ArtifactChartService    = "chart-service"
	ArtifactChartHPA        = "chart-hpa"
)

// ArtifactSpec describes one generated file.
type ArtifactSpec struct {
	// ID identifies the artifact across targets.
	ID string
	// RelativePath is the output path; may contain "<param>" tokens.
	RelativePath string
	// TemplateID selects the document builder.
	TemplateID string
	// Format is the file serialization.
	Format Format
}

// Mode returns the file permissions of the artifact.
func (a ArtifactSpec) Mode() fs.FileMode {
	if a.Format == FormatShell {
		return 0o755
	}
	return 0o644
}

var kubeArtifacts = []ArtifactSpec{
	{ID: ArtifactToolchain, RelativePath: ".bluemix/toolchain.yml", TemplateID: "kube/toolchain", Format: FormatYAML},
	{ID: ArtifactPipeline, RelativePath: ".bluemix/pipeline.yml", TemplateID: "kube/pipeline", Format: FormatYAML},
	{ID: ArtifactDeploySchema, RelativePath: ".bluemix/deploy.json", TemplateID: "kube/deploy-schema", Format: FormatJSON},
	{ID: ArtifactBuildScript, RelativePath: ".bluemix/container_build.sh", TemplateID: "script/container-build", Format: FormatShell},
	{ID: ArtifactDeployScript, RelativePath: ".bluemix/kube_deploy.sh", TemplateID: "script/kube-deploy", Format: FormatShell},
	{ID: ArtifactChartMetadata, RelativePath: "chart/<chart-name>/Chart.yaml", TemplateID: "chart/metadata", Format: FormatYAML},
	{ID: ArtifactChartValues, RelativePath: "chart/<chart-name>/values.yaml", TemplateID: "chart/values", Format: FormatYAML},
	{ID: ArtifactChartDeployment, RelativePath: "chart/<chart-name>/templates/deployment.yaml", TemplateID: "chart/deployment", Format: FormatYAML},
	{ID: ArtifactChartService, RelativePath: "chart/<chart-name>/templates/service.yaml", TemplateID: "chart/service", Format: FormatYAML},
	{ID: ArtifactChartHPA, RelativePath: "chart/<chart-name>/templates/hpa.yaml", TemplateID: "chart/hpa", Format: FormatYAML},
}

// Registry maps deployment targets to artifact specs and artifacts to
// script variants. Safe for concurrent use.
type Registry struct {
	artifacts map[descriptor.Target][]ArtifactSpec
	scripts   map[string]ScriptFunc

	mu sync.RWMutex
}

// NewRegistry returns a registry preloaded with the Kube artifact set.
func NewRegistry() *Registry {
	return &Registry{
		artifacts: map[descriptor.Target][]ArtifactSpec{
			descriptor.TargetKube: kubeArtifacts,
		},
		scripts: map[string]ScriptFunc{
			ArtifactBuildScript:  buildScripts,
			ArtifactDeployScript: deployScripts,
		},
	}
}

// Register replaces the artifact set of a target.
func (r *Registry) Register(target descriptor.Target, specs ...ArtifactSpec) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.artifacts[target] = append([]ArtifactSpec(nil), specs...)
}

// RegisterScript sets the script variants of an artifact.
func (r *Registry) RegisterScript(artifactID string, fn ScriptFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scripts[artifactID] = fn
}

// Select returns the artifacts of target in emission order.
func (r *Registry) Select(target descriptor.Target) ([]ArtifactSpec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	specs, ok := r.artifacts[target]
	if !ok {
		return nil, errors.UnsupportedTarget(string(target))
	}
	return append([]ArtifactSpec(nil), specs...), nil
}

// Script returns the body of artifactID for language.
func (r *Registry) Script(artifactID string, lang descriptor.Language) (string, error) {
	r.mu.RLock()
	fn, ok := r.scripts[artifactID]
	r.mu.RUnlock()

	if !ok {
		return "", errors.UnknownArtifact(artifactID)
	}

	body, ok := fn(lang.Bucket())
	if !ok {
		return "", errors.NewWithContext(errors.ErrCodeUnknownArtifact,
			"no script variant for language",
			map[string]any{"artifact": artifactID, "language": string(lang)})
	}
	return body, nil
}

// Targets returns the registered targets.
func (r *Registry) Targets() []descriptor.Target {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]descriptor.Target, 0, len(r.artifacts))
	for t := range r.artifacts {
		out = append(out, t)
	}
	return out
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry
}

// Select returns the artifacts of target from the default registry.
func Select(target descriptor.Target) ([]ArtifactSpec, error) {
	return defaultRegistry.Select(target)
}

// ScriptVariant returns the script body for an artifact and language from
// the default registry.
func ScriptVariant(artifactID string, lang descriptor.Language) (string, error) {
	return defaultRegistry.Script(artifactID, lang)
}

var pathToken = regexp.MustCompile(`<([a-z0-9-]+)>`)

// Resolver resolves parameter names to text.
type Resolver interface {
	Text(name string) (string, error)
}

// ResolvePath substitutes every "<param>" token in the relative path.
func (a ArtifactSpec) ResolvePath(params Resolver) (string, error) {
	var firstErr error
	out := pathToken.ReplaceAllStringFunc(a.RelativePath, func(tok string) string {
		name := tok[1 : len(tok)-1]
		v, err := params.Text(name)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		return v
	})
	if firstErr != nil {
		return "", firstErr
	}
	return out, nil
}
