// Package cli implements the command-line interface of the enablement generator.
//
// # Overview
//
// The enablement CLI turns an application options document into the delivery
// artifacts a toolchain needs to build the application image and deploy it
// to a Kubernetes cluster with Helm.
//
// # Commands
//
// generate - Render deployment artifacts:
//
//	enablement generate --options options.json --output ./acme
//
// Reads the options document (JSON or YAML, "-" for stdin) and writes
// .bluemix/{toolchain.yml,pipeline.yml,deploy.json,container_build.sh,kube_deploy.sh}
// and chart/<chart-name>/ below the output directory. Individual fields can be
// set or overridden with --name, --language, --target and --server-name.
// An output of the form oci://registry/repository:tag publishes the rendered
// project as an OCI artifact instead.
//
// languages - List supported languages:
//
//	enablement languages [--format table|json|yaml]
//
// verify - Check generated files against checksums.txt:
//
//	enablement verify ./acme
//
// # Global Flags
//
//	--log-level    Logging verbosity (debug, info, warn, error)
//	--log-format   Log output: json or text
//
// # Environment Variables
//
//	LOG_LEVEL                  Default for --log-level
//	ENABLEMENT_OPTIONS         Default for --options
//	ENABLEMENT_OUTPUT          Default for --output
//	ENABLEMENT_CLUSTER_NAME    Default for --cluster-name
//	ENABLEMENT_NAMESPACE       Default for --namespace
//	ENABLEMENT_METRICS_FILE    Default for --metrics-file
//
// # Exit Codes
//
//	0  Success
//	1  General error (invalid arguments, generation failure)
//	2  Context canceled or timeout
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/cli.version=1.0.0'"
package cli
