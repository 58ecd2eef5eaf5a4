package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/defaults"
	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/errors"
	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/generator/checksum"
	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/generator/result"
	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/serializer"
)

const acmeOptions = "testdata/acme-options.json"

// run executes the root command and returns what it wrote to stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd(&out, io.Discard)
	err := root.Run(context.Background(), append([]string{name, "--log-level", "error"}, args...))
	return out.String(), err
}

// parseGenerate runs only the flag parsing of the generate command.
func parseGenerate(t *testing.T, args ...string) (*generateCmdOptions, error) {
	t.Helper()
	var (
		opts     *generateCmdOptions
		parseErr error
	)
	cmd := generateCmd()
	cmd.Action = func(_ context.Context, c *cli.Command) error {
		opts, parseErr = parseGenerateCmdOptions(c)
		return nil
	}
	require.NoError(t, cmd.Run(context.Background(), append([]string{"generate"}, args...)))
	return opts, parseErr
}

func TestGenerate_FromOptionsFile(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, "generate", "--options", acmeOptions, "--output", dir)
	require.NoError(t, err)
	assert.Contains(t, out, ".bluemix/pipeline.yml")
	assert.Contains(t, out, "Generated 10 files")

	for _, p := range []string{
		".bluemix/toolchain.yml",
		".bluemix/pipeline.yml",
		".bluemix/deploy.json",
		".bluemix/container_build.sh",
		".bluemix/kube_deploy.sh",
		"chart/acmeproject/templates/hpa.yaml",
	} {
		info, err := os.Stat(filepath.Join(dir, p))
		require.NoError(t, err, p)
		assert.Positive(t, info.Size(), p)
	}
}

func TestGenerate_FlagsOverrideOptions(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, "generate", "--options", acmeOptions, "--language", "java",
		"--namespace", "acme-prod", "--output", dir)
	require.NoError(t, err)

	script, err := os.ReadFile(filepath.Join(dir, ".bluemix", "container_build.sh"))
	require.NoError(t, err)
	assert.Contains(t, string(script), "mvn -B -DskipTests package")

	hpa, err := os.ReadFile(filepath.Join(dir, "chart", "acmeproject", "templates", "hpa.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(hpa), "namespace: acme-prod")
}

func TestGenerate_FlagsOnly(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, "generate", "--name", "AcmeProject", "--language", "SWIFT", "--output", dir)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "chart", "acmeproject", "Chart.yaml"))
	assert.NoError(t, err)
}

func TestGenerate_DryRunJSONReport(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, "generate", "--options", acmeOptions, "--output", dir, "--dry-run", "--format", "json")
	require.NoError(t, err)

	var report result.Output
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.True(t, report.DryRun)
	assert.Equal(t, 10, report.TotalFiles)
	assert.Equal(t, "AcmeProject", report.Application)
	assert.Equal(t, 10, report.Count(result.StatusPlanned))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGenerate_UnsupportedLanguage(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, "generate", "--options", acmeOptions, "--language", "COBOL", "--output", dir)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnsupportedLanguage))
	assert.Equal(t, exitError, exitCode(err))

	_, statErr := os.Stat(filepath.Join(dir, ".bluemix"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerate_Conflict(t *testing.T) {
	dir := t.TempDir()
	custom := filepath.Join(dir, ".bluemix", "toolchain.yml")
	require.NoError(t, os.MkdirAll(filepath.Dir(custom), 0o755))
	require.NoError(t, os.WriteFile(custom, []byte("custom\n"), 0o644))

	_, err := run(t, "generate", "--options", acmeOptions, "--output", dir)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeConflict))

	_, err = run(t, "generate", "--options", acmeOptions, "--output", dir, "--overwrite")
	require.NoError(t, err)
}

func TestGenerate_MetricsFile(t *testing.T) {
	dir := t.TempDir()
	metrics := filepath.Join(t.TempDir(), "enablement.prom")

	_, err := run(t, "generate", "--options", acmeOptions, "--output", dir, "--metrics-file", metrics)
	require.NoError(t, err)

	data, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(data), "enablement_artifacts_generated_total")
	assert.Contains(t, string(data), "enablement_generation_duration_seconds")
}

func TestParseGenerateCmdOptions(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
		check   func(t *testing.T, opts *generateCmdOptions)
	}{
		{
			name: "defaults",
			args: []string{"--options", acmeOptions},
			check: func(t *testing.T, opts *generateCmdOptions) {
				assert.False(t, opts.output.IsOCI)
				assert.Equal(t, ".", opts.output.LocalPath)
				assert.Equal(t, serializer.Format(""), opts.format)
				assert.Equal(t, "my_kube_cluster", opts.clusterName)
				assert.Equal(t, "my_kube_namespace", opts.namespace)
				assert.Equal(t, defaults.CLIGenerateTimeout, opts.timeout)
			},
		},
		{
			name: "oci output gets default tag",
			args: []string{"--name", "AcmeProject", "--output", "oci://us.icr.io/acme/enablement"},
			check: func(t *testing.T, opts *generateCmdOptions) {
				assert.True(t, opts.output.IsOCI)
				assert.Equal(t, defaultOCITag, opts.output.Tag)
			},
		},
		{
			name: "table format",
			args: []string{"--name", "AcmeProject", "--format", "table"},
			check: func(t *testing.T, opts *generateCmdOptions) {
				assert.Equal(t, serializer.FormatTable, opts.format)
			},
		},
		{
			name:    "missing options and name",
			args:    []string{"--output", "./acme"},
			wantErr: true,
		},
		{
			name:    "unknown format",
			args:    []string{"--name", "AcmeProject", "--format", "xml"},
			wantErr: true,
		},
		{
			name:    "invalid oci reference",
			args:    []string{"--name", "AcmeProject", "--output", "oci://us.icr.io/ACME/App"},
			wantErr: true,
		},
		{
			name:    "dry run with oci output",
			args:    []string{"--name", "AcmeProject", "--output", "oci://us.icr.io/acme/app:v1", "--dry-run"},
			wantErr: true,
		},
		{
			name:    "non-positive timeout",
			args:    []string{"--name", "AcmeProject", "--timeout", "0s"},
			wantErr: true,
		},
		{
			name:    "empty output",
			args:    []string{"--name", "AcmeProject", "--output", ""},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := parseGenerate(t, tt.args...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, opts)
			}
		})
	}
}

func TestLoadDescriptor_ServerOverrides(t *testing.T) {
	d, err := loadDescriptor(&generateCmdOptions{
		name:       "AcmeProject",
		language:   "SPRING",
		serverName: "acme-server",
		target:     "kube",
	})
	require.NoError(t, err)
	assert.Equal(t, "acme-server", d.ServerName)
	assert.Equal(t, "Kube", string(d.DeploymentTarget))
}

func TestLanguages(t *testing.T) {
	out, err := run(t, "languages", "--format", "json")
	require.NoError(t, err)

	var langs map[string]languageInfo
	require.NoError(t, json.Unmarshal([]byte(out), &langs))

	for _, l := range []string{"NODE", "JAVA", "SPRING", "SWIFT"} {
		assert.Contains(t, langs, l)
	}
	assert.Equal(t, "java", langs["JAVA"].Bucket)
	assert.Equal(t, "default", langs["NODE"].Bucket)
	assert.Equal(t, int32(9080), langs["JAVA"].Port)

	_, err = run(t, "languages", "--format", "xml")
	assert.Error(t, err)
}

func TestVerify(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, "generate", "--options", acmeOptions, "--output", dir, "--checksums")
	require.NoError(t, err)

	out, err := run(t, "verify", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "All files match")

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".bluemix", "deploy.json"), []byte("{}\n"), 0o644))
	require.NoError(t, os.Remove(filepath.Join(dir, ".bluemix", "kube_deploy.sh")))

	out, err = run(t, "verify", dir)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeConflict))
	assert.Contains(t, out, "modified")
	assert.Contains(t, out, "missing")

	_, err = run(t, "verify", t.TempDir())
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))

	escaping := t.TempDir()
	line := checksum.Sum([]byte("x")) + "  ../outside.txt\n"
	require.NoError(t, os.WriteFile(checksum.GetChecksumFilePath(escaping), []byte(line), 0o644))
	_, err = run(t, "verify", escaping)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))
}

func TestLogFormatValidation(t *testing.T) {
	_, err := run(t, "--log-format", "xml", "languages")
	assert.Error(t, err)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitOK, exitCode(nil))
	assert.Equal(t, exitCancelled, exitCode(context.Canceled))
	assert.Equal(t, exitCancelled, exitCode(errors.New(errors.ErrCodeTimeout, "rendering cancelled")))
	assert.Equal(t, exitError, exitCode(errors.New(errors.ErrCodeConflict, "exists")))
}
