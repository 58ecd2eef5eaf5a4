package config

import (
	"fmt"
	"maps"
	"strings"

	"k8s.io/apimachinery/pkg/util/validation"
	utilversion "k8s.io/apimachinery/pkg/util/version"
)

const (
	// DefaultClusterName is the cluster placeholder written into the toolchain.
	DefaultClusterName = "my_kube_cluster"
	// DefaultNamespace is the namespace placeholder written into manifests.
	DefaultNamespace = "my_kube_namespace"
	// DefaultChartVersion is the version of the generated Helm chart.
	DefaultChartVersion = "1.0.0"
	// DefaultVersion is reported when no build version is injected.
	DefaultVersion = "dev"
)

// Config provides immutable generation settings.
// Use getters to read values; construct with NewConfig.
type Config struct {
	clusterName      string
	namespace        string
	includeChecksums bool
	overwrite        bool
	dryRun           bool
	version          string
	chartVersion     string
	replicas         int32
	minReplicas      int32
	maxReplicas      int32
	targetCPU        int32
	customLabels     map[string]string
}

// ClusterName returns the Kubernetes cluster name literal.
func (c *Config) ClusterName() string {
	return c.clusterName
}

// Namespace returns the Kubernetes namespace literal.
func (c *Config) Namespace() string {
	return c.namespace
}

// IncludeChecksums returns whether checksums.txt is written.
func (c *Config) IncludeChecksums() bool {
	return c.includeChecksums
}

// Overwrite returns whether differing existing files may be replaced.
func (c *Config) Overwrite() bool {
	return c.overwrite
}

// DryRun returns whether rendering skips all writes.
func (c *Config) DryRun() bool {
	return c.dryRun
}

// Version returns the generator version.
func (c *Config) Version() string {
	return c.version
}

// ChartVersion returns the generated chart version.
func (c *Config) ChartVersion() string {
	return c.chartVersion
}

// Replicas returns the initial deployment replica count.
func (c *Config) Replicas() int32 {
	return c.replicas
}

// MinReplicas returns the autoscaler lower bound.
func (c *Config) MinReplicas() int32 {
	return c.minReplicas
}

// MaxReplicas returns the autoscaler upper bound.
func (c *Config) MaxReplicas() int32 {
	return c.maxReplicas
}

// TargetCPUUtilization returns the autoscaler CPU target in percent.
func (c *Config) TargetCPUUtilization() int32 {
	return c.targetCPU
}

// CustomLabels returns a copy of the extra labels applied to manifests.
func (c *Config) CustomLabels() map[string]string {
	return maps.Clone(c.customLabels)
}

// Validate checks if the Config has valid settings.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.clusterName) == "" {
		return fmt.Errorf("cluster name cannot be empty")
	}

	if strings.TrimSpace(c.namespace) == "" {
		return fmt.Errorf("namespace cannot be empty")
	}

	if _, err := utilversion.ParseSemantic(c.chartVersion); err != nil {
		return fmt.Errorf("invalid chart version %q: %w", c.chartVersion, err)
	}

	if c.replicas < 1 {
		return fmt.Errorf("replicas must be at least 1, got %d", c.replicas)
	}

	if c.minReplicas < 1 || c.maxReplicas < c.minReplicas {
		return fmt.Errorf("invalid autoscaling bounds: min=%d max=%d", c.minReplicas, c.maxReplicas)
	}

	if c.targetCPU < 1 || c.targetCPU > 100 {
		return fmt.Errorf("target CPU utilization must be between 1 and 100, got %d", c.targetCPU)
	}

	for k, v := range c.customLabels {
		if errs := validation.IsQualifiedName(k); len(errs) > 0 {
			return fmt.Errorf("invalid label key %q: %s", k, strings.Join(errs, "; "))
		}
		if errs := validation.IsValidLabelValue(v); len(errs) > 0 {
			return fmt.Errorf("invalid label value %q for %q: %s", v, k, strings.Join(errs, "; "))
		}
	}

	return nil
}

// Option configures a Config.
type Option func(*Config)

// WithClusterName sets the cluster name written into the toolchain.
func WithClusterName(name string) Option {
	return func(c *Config) {
		c.clusterName = name
	}
}

// WithNamespace sets the namespace for generated manifests.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.namespace = namespace
	}
}

// WithIncludeChecksums sets whether a checksums file is written.
func WithIncludeChecksums(enabled bool) Option {
	return func(c *Config) {
		c.includeChecksums = enabled
	}
}

// WithOverwrite sets whether existing files with different content are replaced.
func WithOverwrite(enabled bool) Option {
	return func(c *Config) {
		c.overwrite = enabled
	}
}

// WithDryRun sets whether files are rendered without being written.
func WithDryRun(enabled bool) Option {
	return func(c *Config) {
		c.dryRun = enabled
	}
}

// WithVersion sets the generator version.
func WithVersion(version string) Option {
	return func(c *Config) {
		c.version = version
	}
}

// WithChartVersion sets the version of the generated chart.
func WithChartVersion(version string) Option {
	return func(c *Config) {
		c.chartVersion = version
	}
}

// WithReplicas sets the initial replica count.
func WithReplicas(n int32) Option {
	return func(c *Config) {
		c.replicas = n
	}
}

// WithAutoscaling sets the autoscaler bounds and CPU target.
func WithAutoscaling(minReplicas, maxReplicas, targetCPU int32) Option {
	return func(c *Config) {
		c.minReplicas = minReplicas
		c.maxReplicas = maxReplicas
		c.targetCPU = targetCPU
	}
}

// WithCustomLabels adds labels to every generated manifest.
func WithCustomLabels(labels map[string]string) Option {
	return func(c *Config) {
		maps.Copy(c.customLabels, labels)
	}
}

// NewConfig returns a Config with default values.
func NewConfig(options ...Option) *Config {
	c := &Config{
		clusterName:  DefaultClusterName,
		namespace:    DefaultNamespace,
		version:      DefaultVersion,
		chartVersion: DefaultChartVersion,
		replicas:     1,
		minReplicas:  1,
		maxReplicas:  3,
		targetCPU:    80,
		customLabels: make(map[string]string),
	}

	for _, opt := range options {
		opt(c)
	}

	return c
}
