package result

import (
	"fmt"
	"time"
)

// Status is what happened to a file on disk.
type Status string

const (
	// StatusWritten means the file was created or replaced.
	StatusWritten Status = "written"
	// StatusUnchanged means an identical file already existed.
	StatusUnchanged Status = "unchanged"
	// StatusPlanned means the run was a dry run.
	StatusPlanned Status = "planned"
)

// Result describes one generated file.
type Result struct {
	// Artifact is the artifact identifier, e.g. "pipeline".
	Artifact string `json:"artifact" yaml:"artifact"`

	// Path is relative to the output directory.
	Path string `json:"path" yaml:"path"`

	// Format is the artifact serialization.
	Format string `json:"format" yaml:"format"`

	// Size is the content length in bytes.
	Size int64 `json:"size_bytes" yaml:"size_bytes"`

	// Checksum is the hex SHA256 of the content.
	Checksum string `json:"sha256" yaml:"sha256"`

	// Status is what happened to the file.
	Status Status `json:"status" yaml:"status"`
}

// Output contains the aggregated results of a generation run.
type Output struct {
	// RunID uniquely identifies the run in logs and reports.
	RunID string `json:"run_id" yaml:"run_id"`

	// Application is the descriptor name.
	Application string `json:"application" yaml:"application"`

	// Language is the descriptor language.
	Language string `json:"language" yaml:"language"`

	// Target is the deployment target.
	Target string `json:"target" yaml:"target"`

	// OutputDir is the directory files were generated into.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// DryRun is set when nothing was written.
	DryRun bool `json:"dry_run" yaml:"dry_run"`

	// Results contains one entry per generated file in emission order.
	Results []*Result `json:"results" yaml:"results"`

	// TotalSize is the total size in bytes of all generated files.
	TotalSize int64 `json:"total_size_bytes" yaml:"total_size_bytes"`

	// TotalFiles is the total count of generated files.
	TotalFiles int `json:"total_files" yaml:"total_files"`

	// TotalDuration is the wall time of the run.
	TotalDuration time.Duration `json:"total_duration" yaml:"total_duration"`
}

// New returns an empty Output.
func New(runID, outputDir string) *Output {
	return &Output{
		RunID:     runID,
		OutputDir: outputDir,
		Results:   []*Result{},
	}
}

// Add appends r and updates the totals.
func (o *Output) Add(r *Result) {
	o.Results = append(o.Results, r)
	o.TotalFiles++
	o.TotalSize += r.Size
}

// Paths returns the relative paths of all results in emission order.
func (o *Output) Paths() []string {
	paths := make([]string, 0, len(o.Results))
	for _, r := range o.Results {
		paths = append(paths, r.Path)
	}
	return paths
}

// ByArtifact returns results keyed by artifact identifier.
func (o *Output) ByArtifact() map[string]*Result {
	m := make(map[string]*Result, len(o.Results))
	for _, r := range o.Results {
		m[r.Artifact] = r
	}
	return m
}

// Count returns the number of results with status s.
func (o *Output) Count(s Status) int {
	n := 0
	for _, r := range o.Results {
		if r.Status == s {
			n++
		}
	}
	return n
}

// Summary returns a human-readable summary of the run.
func (o *Output) Summary() string {
	if o.DryRun {
		return fmt.Sprintf("Planned %d files (%s) in %v. Nothing written.",
			o.TotalFiles,
			formatBytes(o.TotalSize),
			o.TotalDuration.Round(time.Millisecond),
		)
	}
	return fmt.Sprintf("Generated %d files (%s) in %v. Written: %d, unchanged: %d.",
		o.TotalFiles,
		formatBytes(o.TotalSize),
		o.TotalDuration.Round(time.Millisecond),
		o.Count(StatusWritten),
		o.Count(StatusUnchanged),
	)
}

// formatBytes formats bytes into human-readable format.
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
