package result

import (
	"strings"
	"testing"
	"time"
)

func TestOutput_Add(t *testing.T) {
	out := New("run-1", "/work/acme")
	out.Add(&Result{Artifact: "toolchain", Path: ".bluemix/toolchain.yml", Size: 100, Status: StatusWritten})
	out.Add(&Result{Artifact: "pipeline", Path: ".bluemix/pipeline.yml", Size: 200, Status: StatusUnchanged})

	if out.TotalFiles != 2 {
		t.Errorf("TotalFiles = %d, want 2", out.TotalFiles)
	}
	if out.TotalSize != 300 {
		t.Errorf("TotalSize = %d, want 300", out.TotalSize)
	}
	if got := out.Paths(); len(got) != 2 || got[1] != ".bluemix/pipeline.yml" {
		t.Errorf("Paths() = %v", got)
	}
	if out.ByArtifact()["toolchain"].Size != 100 {
		t.Error("ByArtifact() lookup failed")
	}
	if out.Count(StatusWritten) != 1 || out.Count(StatusUnchanged) != 1 || out.Count(StatusPlanned) != 0 {
		t.Error("Count() mismatch")
	}
}

func TestOutput_Summary(t *testing.T) {
	tests := []struct {
		name   string
		dryRun bool
		want   []string
	}{
		{"written", false, []string{"Generated 1 files", "2.0 KB", "Written: 1"}},
		{"dry run", true, []string{"Planned 1 files", "Nothing written"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := New("run", "/tmp")
			out.DryRun = tt.dryRun
			out.TotalDuration = 1500 * time.Millisecond
			status := StatusWritten
			if tt.dryRun {
				status = StatusPlanned
			}
			out.Add(&Result{Path: "a", Size: 2048, Status: status})

			s := out.Summary()
			for _, w := range tt.want {
				if !strings.Contains(s, w) {
					t.Errorf("Summary() = %q, missing %q", s, w)
				}
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1048576, "1.0 MB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.in); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
