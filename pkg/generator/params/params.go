package params

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"k8s.io/apimachinery/pkg/util/validation"

	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/descriptor"
	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/errors"
	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/generator/config"
)

// Parameter names.
const (
	AppName             = "app-name"
	ChartName           = "chart-name"
	ImageName           = "image-name"
	Language            = "language"
	ContainerPort       = "container-port"
	KubeClusterName     = "kube-cluster-name"
	KubeNamespace       = "kube-namespace"
	APIKey              = "api-key"
	ImagePullSecretName = "image-pull-secret-name"
	ImageRegistryToken  = "image-registry-token"
	RepoURL             = "repo-url"
)

// RepoURLExpression resolves to the zip URL when the toolchain was created
// from an archive and to the repository otherwise.
const RepoURLExpression = "{{#zip_url}}{{zip_url}}{{/zip_url}}{{^zip_url}}{{repository}}{{/zip_url}}"

// Kind distinguishes substituted values from pass-through references.
type Kind int

const (
	// KindLiteral values are substituted at generation time.
	KindLiteral Kind = iota
	// KindDeferred values are mustache tokens resolved by the toolchain UI.
	KindDeferred
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	if k == KindDeferred {
		return "deferred"
	}
	return "literal"
}

// Value is a single bound parameter.
type Value struct {
	Kind Kind
	Text string
}

// Literal returns a value substituted as-is.
func Literal(s string) Value {
	return Value{Kind: KindLiteral, Text: s}
}

// Deferred returns a pass-through mustache expression.
func Deferred(expr string) Value {
	return Value{Kind: KindDeferred, Text: expr}
}

// Placeholder returns the self-referencing token "{{key}}".
func Placeholder(key string) Value {
	return Deferred("{{" + key + "}}")
}

// IsDeferred reports whether v is a pass-through reference.
func (v Value) IsDeferred() bool {
	return v.Kind == KindDeferred
}

// String returns the text emitted into documents.
func (v Value) String() string {
	return v.Text
}

// EnvRef names the deferred reference from the pipeline environment to a
// deploy parameter, e.g. EnvRef("api-key") binds
// "{{deploy.parameters.api-key}}".
func EnvRef(key string) string {
	return "env:" + key
}

// DeployField describes one input of the toolchain deploy form.
type DeployField struct {
	// Key is the deploy parameter name, e.g. "api-key".
	Key string
	// EnvVar is the pipeline environment variable the value is exported as.
	EnvVar string
	// Title is the form label.
	Title string
	// Description is shown as the schema description.
	Description string
	// Secure renders the field as a password input.
	Secure bool
}

var deployFields = []DeployField{
	{
		Key:         APIKey,
		EnvVar:      "API_KEY",
		Title:       "IBM Cloud API Key",
		Description: "The IBM Cloud API key used to access the cluster and the container registry",
		Secure:      true,
	},
	{
		Key:         KubeClusterName,
		EnvVar:      "KUBE_CLUSTER_NAME",
		Title:       "Kubernetes Cluster Name",
		Description: "The name of the Kubernetes cluster the application is deployed to",
	},
	{
		Key:         ImageRegistryToken,
		EnvVar:      "IMAGE_REGISTRY_TOKEN",
		Title:       "Image Registry Token",
		Description: "A token with read access to the container registry namespace",
		Secure:      true,
	},
	{
		Key:         ImagePullSecretName,
		EnvVar:      "IMAGE_PULL_SECRET_NAME",
		Title:       "Image Pull Secret Name",
		Description: "The name of the secret the cluster uses to pull images",
	},
}

// Set is an immutable name to value mapping.
type Set struct {
	values map[string]Value
	fields []DeployField
}

// NewSet returns a Set over a copy of values.
func NewSet(values map[string]Value, fields []DeployField) *Set {
	s := &Set{
		values: make(map[string]Value, len(values)),
		fields: append([]DeployField(nil), fields...),
	}
	for k, v := range values {
		s.values[k] = v
	}
	return s
}

// Resolve returns the value bound to name.
func (s *Set) Resolve(name string) (Value, error) {
	v, ok := s.values[name]
	if !ok {
		return Value{}, errors.MissingParameter(name)
	}
	return v, nil
}

// Text returns the emitted text of name.
func (s *Set) Text(name string) (string, error) {
	v, err := s.Resolve(name)
	if err != nil {
		return "", err
	}
	return v.Text, nil
}

// Names returns the bound parameter names in sorted order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.values))
	for k := range s.values {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// DeployFields returns the deploy form inputs in form order.
func (s *Set) DeployFields() []DeployField {
	return append([]DeployField(nil), s.fields...)
}

// Build derives the parameter set for d. It fails with
// UNSUPPORTED_LANGUAGE for unknown languages.
func Build(d *descriptor.ApplicationDescriptor, cfg *config.Config) (*Set, error) {
	if d == nil {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "application descriptor is required")
	}
	if !d.Language.Valid() {
		return nil, errors.UnsupportedLanguage(string(d.Language))
	}
	if cfg == nil {
		cfg = config.NewConfig()
	}

	if lower(d.Name) == "" {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest,
			"application name is required", map[string]any{"field": "name"})
	}
	chart, err := ChartNameFor(d.Name)
	if err != nil {
		return nil, err
	}

	imageSource := d.ServerName
	if imageSource == "" {
		imageSource = d.Name
	}
	image := ImageNameFor(imageSource)
	if image == "" {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("cannot derive an image name from %q", imageSource),
			map[string]any{"field": "serverName", "value": imageSource})
	}

	values := map[string]Value{
		AppName:             Literal(d.Name),
		ChartName:           Literal(chart),
		ImageName:           Literal(image),
		Language:            Literal(string(d.Language)),
		ContainerPort:       Literal(fmt.Sprintf("%d", d.Language.Port())),
		KubeClusterName:     Literal(cfg.ClusterName()),
		KubeNamespace:       Literal(cfg.Namespace()),
		APIKey:              Placeholder(APIKey),
		ImagePullSecretName: Placeholder(ImagePullSecretName),
		ImageRegistryToken:  Placeholder(ImageRegistryToken),
		RepoURL:             Deferred(RepoURLExpression),
	}
	for _, f := range deployFields {
		values[EnvRef(f.Key)] = Deferred("{{deploy.parameters." + f.Key + "}}")
	}

	return NewSet(values, deployFields), nil
}

// ChartNameFor derives the chart directory and release name from the
// application name. The result must be a DNS-1123 label since it names
// every chart manifest.
func ChartNameFor(name string) (string, error) {
	chart := ImageNameFor(name)
	if msgs := validation.IsDNS1123Label(chart); len(msgs) > 0 {
		return "", errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("cannot derive a chart name from %q: %s", name, strings.Join(msgs, "; ")),
			map[string]any{"field": "name", "value": name})
	}
	return chart, nil
}

// ImageNameFor lower-cases s and drops every character that is not a
// letter or digit.
func ImageNameFor(s string) string {
	return strings.Map(func(r rune) rune {
		if r <= unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return r
		}
		return -1
	}, lower(s))
}

func lower(s string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(s))
}
