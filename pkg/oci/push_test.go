package oci

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"
)

var projectFiles = map[string]string{
	".bluemix/pipeline.yml":                       "stages: []\n",
	".bluemix/kube_deploy.sh":                     "#!/bin/bash\n",
	"chart/acmeproject/Chart.yaml":                "apiVersion: v1\nname: acmeproject\n",
	"chart/acmeproject/templates/hpa.yaml":        "kind: HorizontalPodAutoscaler\n",
	"chart/acmeproject/templates/deployment.yaml": "kind: Deployment\n",
}

func writeProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for path, content := range projectFiles {
		full := filepath.Join(dir, path)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("failed to create directory for %s: %v", path, err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}
	return dir
}

func blobPath(store, digest string) string {
	return filepath.Join(store, "blobs", "sha256", strings.TrimPrefix(digest, "sha256:"))
}

func TestStripProtocol(t *testing.T) {
	tests := map[string]string{
		"https://us.icr.io":     "us.icr.io",
		"http://localhost:5000": "localhost:5000",
		"us.icr.io":             "us.icr.io",
		"https://us.icr.io/org": "us.icr.io/org",
	}
	for in, want := range tests {
		if got := stripProtocol(in); got != want {
			t.Errorf("stripProtocol(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidateRegistryReference(t *testing.T) {
	tests := []struct {
		name       string
		registry   string
		repository string
		wantErr    bool
	}{
		{"valid icr", "us.icr.io", "acme/enablement", false},
		{"valid localhost with port", "localhost:5000", "acme/enablement", false},
		{"valid with https prefix", "https://us.icr.io", "acme/enablement", false},
		{"registry with spaces", "invalid registry", "acme/enablement", true},
		{"uppercase repository", "us.icr.io", "ACME/Enablement", true},
		{"digest separator in repository", "us.icr.io", "acme/enablement@latest", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRegistryReference(tt.registry, tt.repository)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRegistryReference() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPushFromStore_Validation(t *testing.T) {
	ctx := context.Background()

	_, err := PushFromStore(ctx, "/nonexistent", PushOptions{
		Registry:   "localhost:5000",
		Repository: "acme/enablement",
	})
	if err == nil || err.Error() != "tag is required to push OCI image" {
		t.Errorf("PushFromStore() expected tag error, got: %v", err)
	}

	_, err = PushFromStore(ctx, "/nonexistent", PushOptions{
		Registry:   "invalid registry with spaces",
		Repository: "acme/enablement",
		Tag:        "v1.0.0",
	})
	if err == nil {
		t.Error("PushFromStore() expected error for invalid registry")
	}
}

func TestPackage_Validation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		opts PackageOptions
		want string
	}{
		{"missing tag", PackageOptions{Registry: "us.icr.io", Repository: "acme/app"}, "tag is required for OCI packaging"},
		{"missing registry", PackageOptions{Repository: "acme/app", Tag: "v1"}, "registry is required for OCI packaging"},
		{"missing repository", PackageOptions{Registry: "us.icr.io", Tag: "v1"}, "repository is required for OCI packaging"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.SourceDir = "."
			tt.opts.OutputDir = t.TempDir()
			_, err := Package(ctx, tt.opts)
			if err == nil || err.Error() != tt.want {
				t.Errorf("Package() error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestPackage_CreatesOCILayout(t *testing.T) {
	ctx := context.Background()
	source := writeProject(t)

	result, err := Package(ctx, PackageOptions{
		SourceDir:   source,
		OutputDir:   t.TempDir(),
		Registry:    "us.icr.io",
		Repository:  "acme/enablement",
		Tag:         "v1.0.0",
		Annotations: map[string]string{ociv1.AnnotationTitle: "AcmeProject", ociv1.AnnotationVersion: ""},
	})
	if err != nil {
		t.Fatalf("Package() error = %v", err)
	}

	if result.Digest == "" {
		t.Error("Package() result has empty digest")
	}
	if result.Reference != "us.icr.io/acme/enablement:v1.0.0" {
		t.Errorf("Package() reference = %q", result.Reference)
	}
	for _, name := range []string{"oci-layout", "index.json"} {
		if _, err := os.Stat(filepath.Join(result.StorePath, name)); err != nil {
			t.Errorf("Package() did not create %s: %v", name, err)
		}
	}

	data, err := os.ReadFile(blobPath(result.StorePath, result.Digest))
	if err != nil {
		t.Fatalf("failed to read manifest: %v", err)
	}
	var manifest ociv1.Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		t.Fatalf("failed to unmarshal manifest: %v", err)
	}

	if manifest.ArtifactType != ArtifactType {
		t.Errorf("ArtifactType = %q, want %q", manifest.ArtifactType, ArtifactType)
	}
	if manifest.Annotations[ociv1.AnnotationTitle] != "AcmeProject" {
		t.Errorf("title annotation = %q", manifest.Annotations[ociv1.AnnotationTitle])
	}
	if _, ok := manifest.Annotations[ociv1.AnnotationVersion]; ok {
		t.Error("empty annotations must be dropped")
	}
	if len(manifest.Layers) != 1 {
		t.Fatalf("manifest has %d layers, want 1", len(manifest.Layers))
	}

	layer, err := os.Open(blobPath(result.StorePath, manifest.Layers[0].Digest.String()))
	if err != nil {
		t.Fatalf("failed to open layer: %v", err)
	}
	defer layer.Close()

	gzr, err := gzip.NewReader(layer)
	if err != nil {
		t.Fatalf("failed to create gzip reader: %v", err)
	}
	defer gzr.Close()

	extracted := make(map[string]string)
	tr := tar.NewReader(gzr)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("failed to read tar entry: %v", err)
		}
		if header.Typeflag == tar.TypeReg {
			content, err := io.ReadAll(tr)
			if err != nil {
				t.Fatalf("failed to read %s: %v", header.Name, err)
			}
			extracted[header.Name] = string(content)
		}
	}

	for path, want := range projectFiles {
		got, ok := extracted[path]
		if !ok {
			t.Errorf("file %q missing from artifact", path)
			continue
		}
		if got != want {
			t.Errorf("file %q = %q, want %q", path, got, want)
		}
	}
	if len(extracted) != len(projectFiles) {
		t.Errorf("artifact has %d files, want %d", len(extracted), len(projectFiles))
	}
}

func TestPackage_Reproducible(t *testing.T) {
	ctx := context.Background()
	source := writeProject(t)

	var digests []string
	for i := 0; i < 2; i++ {
		result, err := Package(ctx, PackageOptions{
			SourceDir:             source,
			OutputDir:             t.TempDir(),
			Registry:              "us.icr.io",
			Repository:            "acme/enablement",
			Tag:                   "repro",
			ReproducibleTimestamp: "2000-01-01T00:00:00Z",
		})
		if err != nil {
			t.Fatalf("iteration %d: Package() error = %v", i, err)
		}
		digests = append(digests, result.Digest)
	}

	if digests[0] != digests[1] {
		t.Errorf("reproducible packaging produced different digests: %s, %s", digests[0], digests[1])
	}
}
