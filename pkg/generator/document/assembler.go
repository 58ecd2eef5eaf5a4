package document

import (
	"strconv"

	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/descriptor"
	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/errors"
	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/generator/chart"
	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/generator/config"
	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/generator/params"
	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/generator/templates"
)

// ScriptSource returns script bodies per artifact and language.
type ScriptSource interface {
	Script(artifactID string, lang descriptor.Language) (string, error)
}

// Builder renders the content of one template.
type Builder func(a *Assembler) ([]byte, error)

var builders = map[string]Builder{
	"kube/toolchain":         buildToolchain,
	"kube/pipeline":          buildPipeline,
	"kube/deploy-schema":     buildDeploySchema,
	"script/container-build": buildContainerScript,
	"script/kube-deploy":     buildKubeDeployScript,
	"chart/metadata":         chartBuilder(chart.ChartYAML),
	"chart/values":           chartBuilder(chart.ValuesYAML),
	"chart/deployment":       chartBuilder(chart.DeploymentYAML),
	"chart/service":          chartBuilder(chart.ServiceYAML),
	"chart/hpa":              chartBuilder(chart.HPAYAML),
}

// Assembler renders artifacts for one descriptor. It holds no mutable
// state and is safe for concurrent use.
type Assembler struct {
	desc    *descriptor.ApplicationDescriptor
	params  *params.Set
	cfg     *config.Config
	scripts ScriptSource
}

// NewAssembler returns an Assembler. A nil cfg uses defaults and a nil
// scripts source uses the default template registry.
func NewAssembler(d *descriptor.ApplicationDescriptor, p *params.Set, cfg *config.Config, scripts ScriptSource) *Assembler {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if scripts == nil {
		scripts = templates.Default()
	}
	return &Assembler{desc: d, params: p, cfg: cfg, scripts: scripts}
}

// Assemble renders the content of spec.
func (a *Assembler) Assemble(spec templates.ArtifactSpec) ([]byte, error) {
	build, ok := builders[spec.TemplateID]
	if !ok {
		return nil, errors.NewWithContext(errors.ErrCodeUnknownArtifact,
			"no builder for template",
			map[string]any{"artifact": spec.ID, "template": spec.TemplateID})
	}
	return build(a)
}

func chartBuilder(render func(chart.Values) ([]byte, error)) Builder {
	return func(a *Assembler) ([]byte, error) {
		v, err := a.chartValues()
		if err != nil {
			return nil, err
		}
		return render(v)
	}
}

func (a *Assembler) chartValues() (chart.Values, error) {
	b := &binder{set: a.params}
	v := chart.Values{
		Name:         b.text(params.ChartName),
		AppName:      b.text(params.AppName),
		Namespace:    b.text(params.KubeNamespace),
		Image:        b.text(params.ImageName),
		ChartVersion: a.cfg.ChartVersion(),
		Replicas:     a.cfg.Replicas(),
		MinReplicas:  a.cfg.MinReplicas(),
		MaxReplicas:  a.cfg.MaxReplicas(),
		TargetCPU:    a.cfg.TargetCPUUtilization(),
		Labels:       a.cfg.CustomLabels(),
	}
	port := b.text(params.ContainerPort)
	if b.err != nil {
		return chart.Values{}, b.err
	}

	p, err := strconv.ParseInt(port, 10, 32)
	if err != nil {
		return chart.Values{}, errors.WrapWithContext(errors.ErrCodeInvalidRequest,
			"invalid container port", err, map[string]any{"parameter": params.ContainerPort, "value": port})
	}
	v.Port = int32(p)
	return v, nil
}
