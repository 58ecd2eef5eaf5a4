package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"

	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/defaults"
	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/descriptor"
	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/generator"
	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/generator/config"
	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/generator/result"
	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/oci"
	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/serializer"
)

const defaultOCITag = "latest"

// generateCmdOptions holds parsed options for the generate command.
type generateCmdOptions struct {
	optionsPath string
	name        string
	language    string
	target      string
	serverName  string
	output      *oci.Reference
	clusterName string
	namespace   string
	checksums   bool
	overwrite   bool
	dryRun      bool
	format      serializer.Format
	metricsFile string
	plainHTTP   bool
	insecureTLS bool
	timeout     time.Duration
}

// parseGenerateCmdOptions parses and validates command options.
func parseGenerateCmdOptions(cmd *cli.Command) (*generateCmdOptions, error) {
	opts := &generateCmdOptions{
		optionsPath: cmd.String("options"),
		name:        cmd.String("name"),
		language:    cmd.String("language"),
		target:      cmd.String("target"),
		serverName:  cmd.String("server-name"),
		clusterName: cmd.String("cluster-name"),
		namespace:   cmd.String("namespace"),
		checksums:   cmd.Bool("checksums"),
		overwrite:   cmd.Bool("overwrite"),
		dryRun:      cmd.Bool("dry-run"),
		metricsFile: cmd.String("metrics-file"),
		plainHTTP:   cmd.Bool("plain-http"),
		insecureTLS: cmd.Bool("insecure-tls"),
		timeout:     cmd.Duration("timeout"),
	}

	if opts.timeout <= 0 {
		return nil, fmt.Errorf("--timeout must be positive, got %v", opts.timeout)
	}

	if opts.optionsPath == "" && opts.name == "" {
		return nil, fmt.Errorf("either --options or --name is required")
	}

	if f := cmd.String("format"); f != "" {
		opts.format = serializer.Format(f)
		if opts.format.IsUnknown() {
			return nil, fmt.Errorf("unknown output format: %q", f)
		}
	}

	ref, err := oci.ParseOutputTarget(cmd.String("output"))
	if err != nil {
		return nil, err
	}
	if !ref.IsOCI && ref.LocalPath == "" {
		return nil, fmt.Errorf("--output must not be empty")
	}
	if ref.IsOCI && ref.Tag == "" {
		ref = ref.WithTag(defaultOCITag)
	}
	if ref.IsOCI && opts.dryRun {
		return nil, fmt.Errorf("--dry-run cannot be combined with an %s output", oci.URIScheme)
	}
	opts.output = ref

	return opts, nil
}

// loadDescriptor reads the options document, if any, and applies the
// descriptor flags on top of it.
func loadDescriptor(opts *generateCmdOptions) (*descriptor.ApplicationDescriptor, error) {
	o := &descriptor.Options{}
	if opts.optionsPath != "" {
		loaded, err := descriptor.LoadOptions(opts.optionsPath)
		if err != nil {
			return nil, err
		}
		o = loaded
	}

	if opts.name != "" {
		o.Name = opts.name
	}
	if opts.language != "" {
		o.BackendPlatform = opts.language
	}
	if opts.target != "" || opts.serverName != "" {
		if o.Server == nil {
			o.Server = &descriptor.ServerOptions{}
		}
		if opts.target != "" {
			o.Server.CloudDeploymentType = opts.target
		}
		if opts.serverName != "" {
			o.Server.Name = opts.serverName
		}
	}

	return o.Descriptor()
}

func generateCmd() *cli.Command {
	return &cli.Command{
		Name:                  "generate",
		EnableShellCompletion: true,
		Usage:                 "Generate delivery toolchain and Helm chart artifacts",
		Description: `Generates the artifacts that let an IBM Cloud delivery toolchain build the
application image and deploy it to a Kubernetes cluster:

  - .bluemix/toolchain.yml: Toolchain definition
  - .bluemix/pipeline.yml: Build and deploy stages
  - .bluemix/deploy.json: Deploy form schema
  - .bluemix/container_build.sh: Image build script
  - .bluemix/kube_deploy.sh: Helm deploy script
  - chart/<chart-name>/: Helm chart with deployment, service and autoscaler

Existing files with different content abort the run unless --overwrite is set.

# Examples

Generate from an options document:
  enablement generate --options options.json --output ./acme

Generate from flags only:
  enablement generate --name AcmeProject --language JAVA --output ./acme

Preview without writing:
  enablement generate --options options.json --dry-run --format table

Publish the generated project to a registry:
  enablement generate --options options.json --output oci://us.icr.io/acme/enablement:v1.0.0`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "options",
				Aliases: []string{"i"},
				Usage:   "Path to the options document (JSON or YAML, '-' for stdin)",
				Sources: cli.EnvVars("ENABLEMENT_OPTIONS"),
			},
			&cli.StringFlag{
				Name:  "name",
				Usage: "Application name (overrides the options document)",
			},
			&cli.StringFlag{
				Name:    "language",
				Aliases: []string{"l"},
				Usage:   "Application language (overrides backendPlatform)",
			},
			&cli.StringFlag{
				Name:  "target",
				Usage: "Deployment target (overrides server.cloudDeploymentType)",
			},
			&cli.StringFlag{
				Name:  "server-name",
				Usage: "Server name the image name is derived from (overrides server.name)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   ".",
				Usage:   "Output directory, or oci://registry/repository[:tag] to publish",
				Sources: cli.EnvVars("ENABLEMENT_OUTPUT"),
			},
			&cli.StringFlag{
				Name:    "cluster-name",
				Value:   config.DefaultClusterName,
				Usage:   "Kubernetes cluster name written into the toolchain",
				Sources: cli.EnvVars("ENABLEMENT_CLUSTER_NAME"),
			},
			&cli.StringFlag{
				Name:    "namespace",
				Value:   config.DefaultNamespace,
				Usage:   "Kubernetes namespace of the generated manifests",
				Sources: cli.EnvVars("ENABLEMENT_NAMESPACE"),
			},
			&cli.BoolFlag{
				Name:  "checksums",
				Usage: "Write checksums.txt with the SHA256 of every generated file",
			},
			&cli.BoolFlag{
				Name:  "overwrite",
				Usage: "Replace existing files whose content differs",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Render and report without writing files",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"t"},
				Usage:   "Report format: json, yaml or table (default: styled summary)",
			},
			&cli.StringFlag{
				Name:    "metrics-file",
				Usage:   "Write Prometheus metrics in text format to this file on exit",
				Sources: cli.EnvVars("ENABLEMENT_METRICS_FILE"),
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Deadline for the whole command, including a registry push",
				Value: defaults.CLIGenerateTimeout,
			},
			&cli.BoolFlag{
				Name:  "insecure-tls",
				Usage: "Skip TLS certificate verification for the OCI registry",
			},
			&cli.BoolFlag{
				Name:  "plain-http",
				Usage: "Use HTTP instead of HTTPS for the OCI registry (for local development)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts, err := parseGenerateCmdOptions(cmd)
			if err != nil {
				return err
			}

			if opts.metricsFile != "" {
				defer writeMetrics(opts.metricsFile)
			}

			ctx, cancel := context.WithTimeout(ctx, opts.timeout)
			defer cancel()

			d, err := loadDescriptor(opts)
			if err != nil {
				slog.Error("failed to load application descriptor", "error", err, "path", opts.optionsPath)
				return err
			}

			g, err := generator.New(generator.WithConfig(config.NewConfig(
				config.WithVersion(version),
				config.WithClusterName(opts.clusterName),
				config.WithNamespace(opts.namespace),
				config.WithIncludeChecksums(opts.checksums),
				config.WithOverwrite(opts.overwrite),
				config.WithDryRun(opts.dryRun),
			)))
			if err != nil {
				return err
			}

			if !opts.output.IsOCI {
				out, err := g.Make(ctx, d, opts.output.LocalPath)
				if err != nil {
					return err
				}
				return report(ctx, cmd.Root().Writer, opts.format, out, nil)
			}

			return generateAndPush(ctx, cmd.Root().Writer, g, d, opts)
		},
	}
}

// generateAndPush renders into a temporary directory and publishes it to
// the registry named by opts.output.
func generateAndPush(ctx context.Context, w io.Writer, g *generator.DefaultGenerator,
	d *descriptor.ApplicationDescriptor, opts *generateCmdOptions) error {

	sourceDir, err := os.MkdirTemp("", "enablement-project-*")
	if err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}
	defer os.RemoveAll(sourceDir)

	storeDir, err := os.MkdirTemp("", "enablement-oci-*")
	if err != nil {
		return fmt.Errorf("failed to create OCI layout directory: %w", err)
	}
	defer os.RemoveAll(storeDir)

	out, err := g.Make(ctx, d, sourceDir)
	if err != nil {
		return err
	}

	pushed, err := oci.PackageAndPush(ctx, oci.OutputConfig{
		SourceDir:   sourceDir,
		OutputDir:   storeDir,
		Reference:   opts.output,
		Version:     version,
		Application: d.Name,
		PlainHTTP:   opts.plainHTTP,
		InsecureTLS: opts.insecureTLS,
	})
	if err != nil {
		return err
	}
	out.OutputDir = opts.output.String()

	return report(ctx, w, opts.format, out, pushed)
}

// report prints out as a styled summary, or serialized when format is set.
func report(ctx context.Context, w io.Writer, format serializer.Format, out *result.Output, pushed *oci.PackageAndPushResult) error {
	if format != "" {
		return serializer.NewWriter(format, w).Serialize(ctx, out)
	}

	for _, r := range out.Results {
		fmt.Fprintln(w, formatResultLine(r.Path, r.Status))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, formatKV("Output", out.OutputDir))
	if pushed != nil {
		fmt.Fprintln(w, formatKV("Digest", pushed.Digest))
	}
	fmt.Fprintln(w, formatCheckmark(styleSummary.Render(out.Summary())))
	return nil
}

// writeMetrics dumps the default Prometheus registry to path.
func writeMetrics(path string) {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		slog.Warn("failed to write metrics file", "error", err, "path", path)
		return
	}
	slog.Debug("metrics written", "path", path)
}
