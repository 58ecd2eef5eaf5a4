package generator

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/descriptor"
	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/errors"
	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/generator/checksum"
	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/generator/config"
	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/generator/result"
	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/generator/templates"
)

var expectedPaths = []string{
	".bluemix/toolchain.yml",
	".bluemix/pipeline.yml",
	".bluemix/deploy.json",
	".bluemix/container_build.sh",
	".bluemix/kube_deploy.sh",
	"chart/acmeproject/Chart.yaml",
	"chart/acmeproject/values.yaml",
	"chart/acmeproject/templates/deployment.yaml",
	"chart/acmeproject/templates/service.yaml",
	"chart/acmeproject/templates/hpa.yaml",
}

func acme(t *testing.T, lang string) *descriptor.ApplicationDescriptor {
	t.Helper()
	d, err := descriptor.New("AcmeProject", lang, "Kube", "MyApplication")
	require.NoError(t, err)
	return d
}

func newGenerator(t *testing.T, opts ...config.Option) *DefaultGenerator {
	t.Helper()
	g, err := New(WithConfig(config.NewConfig(opts...)))
	require.NoError(t, err)
	return g
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestMake_AllLanguages(t *testing.T) {
	for _, lang := range []string{"NODE", "JAVA", "SPRING", "SWIFT"} {
		t.Run(lang, func(t *testing.T) {
			dir := t.TempDir()
			out, err := newGenerator(t).Make(context.Background(), acme(t, lang), dir)
			require.NoError(t, err)

			assert.Equal(t, expectedPaths, out.Paths())
			assert.Equal(t, len(expectedPaths), out.TotalFiles)
			assert.Equal(t, "AcmeProject", out.Application)
			assert.Equal(t, lang, out.Language)
			assert.NotEmpty(t, out.RunID)

			for _, p := range expectedPaths {
				info, err := os.Stat(filepath.Join(dir, p))
				require.NoError(t, err, p)
				assert.Positive(t, info.Size(), p)
			}

			hpa := readFile(t, filepath.Join(dir, "chart", "acmeproject", "templates", "hpa.yaml"))
			assert.Contains(t, hpa, "namespace: my_kube_namespace")

			_, err = os.Stat(filepath.Join(dir, checksum.ChecksumFileName))
			assert.True(t, os.IsNotExist(err), "checksums are opt-in")
		})
	}
}

func TestMake_ScriptsMatchFixtures(t *testing.T) {
	tests := []struct {
		lang    string
		fixture string
	}{
		{"NODE", "container-build-script.txt"},
		{"JAVA", "container-build-script-java.txt"},
		{"SPRING", "container-build-script-java.txt"},
		{"SWIFT", "container-build-script.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			dir := t.TempDir()
			_, err := newGenerator(t).Make(context.Background(), acme(t, tt.lang), dir)
			require.NoError(t, err)

			want := readFile(t, filepath.Join("document", "testdata", tt.fixture))
			assert.Equal(t, want, readFile(t, filepath.Join(dir, ".bluemix", "container_build.sh")))

			want = readFile(t, filepath.Join("document", "testdata", "kube-deploy-script.txt"))
			assert.Equal(t, want, readFile(t, filepath.Join(dir, ".bluemix", "kube_deploy.sh")))

			info, err := os.Stat(filepath.Join(dir, ".bluemix", "kube_deploy.sh"))
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
		})
	}
}

func TestMake_Deterministic(t *testing.T) {
	g := newGenerator(t)
	first, second := t.TempDir(), t.TempDir()

	_, err := g.Make(context.Background(), acme(t, "JAVA"), first)
	require.NoError(t, err)
	_, err = g.Make(context.Background(), acme(t, "JAVA"), second)
	require.NoError(t, err)

	for _, p := range expectedPaths {
		assert.Equal(t, readFile(t, filepath.Join(first, p)), readFile(t, filepath.Join(second, p)), p)
	}
}

func TestMake_UnsupportedLanguage(t *testing.T) {
	dir := t.TempDir()
	d := &descriptor.ApplicationDescriptor{
		Name:             "AcmeProject",
		Language:         descriptor.Language("COBOL"),
		DeploymentTarget: descriptor.TargetKube,
	}

	before := testutil.ToFloat64(generationFailures.WithLabelValues(string(errors.ErrCodeUnsupportedLanguage)))

	_, err := newGenerator(t).Make(context.Background(), d, dir)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnsupportedLanguage))

	_, statErr := os.Stat(filepath.Join(dir, ".bluemix"))
	assert.True(t, os.IsNotExist(statErr))

	after := testutil.ToFloat64(generationFailures.WithLabelValues(string(errors.ErrCodeUnsupportedLanguage)))
	assert.Equal(t, before+1, after)
}

func TestMake_ChartNameFromUnsafeAppName(t *testing.T) {
	tests := []struct {
		name  string
		app   string
		chart string
	}{
		{"space", "Acme Project", "acmeproject"},
		{"slash", "acme/web", "acmeweb"},
		{"punctuation", "Acme_Project!", "acmeproject"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			d, err := descriptor.New(tt.app, "NODE", "Kube", "")
			require.NoError(t, err)

			out, err := newGenerator(t).Make(context.Background(), d, dir)
			require.NoError(t, err)

			chartDir := filepath.Join(dir, "chart", tt.chart)
			assert.Contains(t, out.Paths(), "chart/"+tt.chart+"/templates/hpa.yaml")

			entries, err := os.ReadDir(filepath.Join(dir, "chart"))
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, tt.chart, entries[0].Name())

			hpa := readFile(t, filepath.Join(chartDir, "templates", "hpa.yaml"))
			assert.Contains(t, hpa, "name: "+tt.chart+"\n")
			assert.NotContains(t, hpa, tt.app)

			deployment := readFile(t, filepath.Join(chartDir, "templates", "deployment.yaml"))
			assert.Contains(t, deployment, "app: "+tt.chart+"\n")
		})
	}
}

func TestMake_UnusableChartName(t *testing.T) {
	dir := t.TempDir()
	d, err := descriptor.New("***", "NODE", "Kube", "web")
	require.NoError(t, err)

	_, err = newGenerator(t).Make(context.Background(), d, dir)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))

	_, statErr := os.Stat(filepath.Join(dir, "chart"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestMake_UnsupportedTarget(t *testing.T) {
	d := acme(t, "NODE")
	d.DeploymentTarget = descriptor.Target("CloudFoundry")

	_, err := newGenerator(t).Make(context.Background(), d, t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnsupportedTarget))
}

func TestMake_InvalidArguments(t *testing.T) {
	g := newGenerator(t)

	_, err := g.Make(context.Background(), nil, t.TempDir())
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))

	_, err = g.Make(context.Background(), acme(t, "NODE"), "")
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))
}

func TestMake_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dir := t.TempDir()
	_, err := newGenerator(t).Make(ctx, acme(t, "NODE"), dir)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeTimeout))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestMake_Conflict(t *testing.T) {
	dir := t.TempDir()
	custom := filepath.Join(dir, ".bluemix", "pipeline.yml")
	require.NoError(t, os.MkdirAll(filepath.Dir(custom), 0o755))
	require.NoError(t, os.WriteFile(custom, []byte("custom\n"), 0o644))

	_, err := newGenerator(t).Make(context.Background(), acme(t, "NODE"), dir)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeConflict))
	assert.Equal(t, "custom\n", readFile(t, custom))

	_, statErr := os.Stat(filepath.Join(dir, ".bluemix", "toolchain.yml"))
	assert.True(t, os.IsNotExist(statErr), "nothing may be written on conflict")

	out, err := newGenerator(t, config.WithOverwrite(true)).Make(context.Background(), acme(t, "NODE"), dir)
	require.NoError(t, err)
	assert.NotEqual(t, "custom\n", readFile(t, custom))
	assert.Equal(t, len(expectedPaths), out.Count(result.StatusWritten))
}

func TestMake_RerunIsUnchanged(t *testing.T) {
	dir := t.TempDir()
	g := newGenerator(t)

	_, err := g.Make(context.Background(), acme(t, "SWIFT"), dir)
	require.NoError(t, err)

	out, err := g.Make(context.Background(), acme(t, "SWIFT"), dir)
	require.NoError(t, err)
	assert.Equal(t, len(expectedPaths), out.Count(result.StatusUnchanged))
}

func TestMake_DryRun(t *testing.T) {
	dir := t.TempDir()
	out, err := newGenerator(t, config.WithDryRun(true)).Make(context.Background(), acme(t, "NODE"), dir)
	require.NoError(t, err)

	assert.True(t, out.DryRun)
	assert.Equal(t, len(expectedPaths), out.Count(result.StatusPlanned))
	assert.Positive(t, out.TotalSize)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestMake_Checksums(t *testing.T) {
	dir := t.TempDir()
	out, err := newGenerator(t, config.WithIncludeChecksums(true)).Make(context.Background(), acme(t, "SPRING"), dir)
	require.NoError(t, err)

	paths := out.Paths()
	require.Len(t, paths, len(expectedPaths)+1)
	assert.Equal(t, checksum.ChecksumFileName, paths[len(paths)-1])

	manifest := readFile(t, checksum.GetChecksumFilePath(dir))
	assert.Len(t, strings.Split(strings.TrimSpace(manifest), "\n"), len(expectedPaths))

	mismatches, err := checksum.Verify(context.Background(), dir)
	require.NoError(t, err)
	assert.Empty(t, mismatches)
}

func TestMake_CustomConfig(t *testing.T) {
	dir := t.TempDir()
	g := newGenerator(t,
		config.WithNamespace("acme-prod"),
		config.WithClusterName("acme-cluster"),
		config.WithAutoscaling(2, 5, 60),
	)

	_, err := g.Make(context.Background(), acme(t, "NODE"), dir)
	require.NoError(t, err)

	hpa := readFile(t, filepath.Join(dir, "chart", "acmeproject", "templates", "hpa.yaml"))
	assert.Contains(t, hpa, "namespace: acme-prod")
	assert.Contains(t, hpa, "maxReplicas: 5")

	toolchain := readFile(t, filepath.Join(dir, ".bluemix", "toolchain.yml"))
	assert.Contains(t, toolchain, "acme-cluster")
}

func TestMake_Metrics(t *testing.T) {
	before := testutil.ToFloat64(artifactsGenerated.WithLabelValues(templates.ArtifactPipeline))

	_, err := newGenerator(t).Make(context.Background(), acme(t, "NODE"), t.TempDir())
	require.NoError(t, err)

	after := testutil.ToFloat64(artifactsGenerated.WithLabelValues(templates.ArtifactPipeline))
	assert.Equal(t, before+1, after)
	assert.Positive(t, testutil.CollectAndCount(generateDuration))
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(WithConfig(config.NewConfig(config.WithNamespace(""))))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))
}

func TestNew_Defaults(t *testing.T) {
	g, err := New(WithConfig(nil), WithRegistry(nil))
	require.NoError(t, err)
	assert.NotNil(t, g.Config)
	assert.NotNil(t, g.Registry)
}
