package descriptor

import (
	"log/slog"
	"strings"

	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/errors"
	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/serializer"
)

// ApplicationDescriptor is the immutable input to a generation run.
type ApplicationDescriptor struct {
	// Name is the application name; chart and image names derive from it.
	Name string `json:"name" yaml:"name"`

	// Language selects per-language template variants.
	Language Language `json:"language" yaml:"language"`

	// DeploymentTarget selects the artifact set.
	DeploymentTarget Target `json:"deploymentTarget" yaml:"deploymentTarget"`

	// ServerName, when set, names the container image instead of Name.
	ServerName string `json:"serverName,omitempty" yaml:"serverName,omitempty"`
}

// New validates its inputs and returns a descriptor.
func New(name, lang, target, serverName string) (*ApplicationDescriptor, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest,
			"application name is required", map[string]any{"field": "name"})
	}

	l, err := ParseLanguage(lang)
	if err != nil {
		return nil, err
	}

	t, err := ParseTarget(target)
	if err != nil {
		return nil, err
	}

	return &ApplicationDescriptor{
		Name:             name,
		Language:         l,
		DeploymentTarget: t,
		ServerName:       strings.TrimSpace(serverName),
	}, nil
}

// Bucket returns the template bucket of the descriptor's language.
func (d *ApplicationDescriptor) Bucket() Bucket {
	return d.Language.Bucket()
}

// Options is the options document handed over by the toolchain UI.
type Options struct {
	Name            string         `json:"name" yaml:"name"`
	BackendPlatform string         `json:"backendPlatform,omitempty" yaml:"backendPlatform,omitempty"`
	Language        string         `json:"language,omitempty" yaml:"language,omitempty"`
	Server          *ServerOptions `json:"server,omitempty" yaml:"server,omitempty"`
}

// ServerOptions describes the deployed server.
type ServerOptions struct {
	Name                string `json:"name,omitempty" yaml:"name,omitempty"`
	CloudDeploymentType string `json:"cloudDeploymentType,omitempty" yaml:"cloudDeploymentType,omitempty"`
}

// Descriptor validates the options and converts them to a descriptor.
// backendPlatform wins over language when both are set.
func (o *Options) Descriptor() (*ApplicationDescriptor, error) {
	lang := o.BackendPlatform
	if lang == "" {
		lang = o.Language
	}

	var target, server string
	if o.Server != nil {
		target = o.Server.CloudDeploymentType
		server = o.Server.Name
	}

	return New(o.Name, lang, target, server)
}

// LoadOptions reads an options document (JSON or YAML by extension, "-"
// for stdin).
func LoadOptions(path string) (*Options, error) {
	opts, err := serializer.FromFile[Options](path)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest,
			"failed to load options", err, map[string]any{"path": path})
	}
	return opts, nil
}

// Load reads an options document and returns its descriptor.
func Load(path string) (*ApplicationDescriptor, error) {
	opts, err := LoadOptions(path)
	if err != nil {
		return nil, err
	}

	d, err := opts.Descriptor()
	if err != nil {
		return nil, err
	}

	slog.Debug("loaded application descriptor",
		"name", d.Name,
		"language", d.Language,
		"target", d.DeploymentTarget,
	)
	return d, nil
}
