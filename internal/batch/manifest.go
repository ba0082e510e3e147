// Package batch drives comparison runs over many workbook triples, from
// folder discovery or an explicit YAML manifest.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/klytics/xlcompare/internal/scan"
)

// Job describes one comparison in a manifest.
type Job struct {
	Name     string `yaml:"name" json:"name"`
	New      string `yaml:"new" json:"new"`
	Previous string `yaml:"previous" json:"previous"`
	Template string `yaml:"template" json:"template"`
	// Output is optional; when empty the runner derives it from Name
	// and its output directory.
	Output string `yaml:"output,omitempty" json:"output,omitempty"`
}

// Manifest is an explicit list of comparison jobs.
type Manifest struct {
	Jobs []Job `yaml:"jobs"`
}

// LoadManifest reads and validates a YAML manifest.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read manifest %s: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}
	return &m, nil
}

// Validate checks that every job names its three inputs, and fills in
// missing job names from the new workbook's filename.
func (m *Manifest) Validate() error {
	if len(m.Jobs) == 0 {
		return fmt.Errorf("manifest contains no jobs")
	}
	for i := range m.Jobs {
		job := &m.Jobs[i]
		if job.New == "" || job.Previous == "" || job.Template == "" {
			return fmt.Errorf("job %d: new, previous, and template are all required", i+1)
		}
		if job.Name == "" {
			job.Name = filepath.Base(job.New)
		}
	}
	return nil
}

// JobsFromScan converts a folder discovery result into runnable jobs.
func JobsFromScan(res *scan.Result) []Job {
	jobs := make([]Job, 0, len(res.Triples))
	for _, tr := range res.Triples {
		jobs = append(jobs, Job{
			Name:     tr.Name,
			New:      tr.New,
			Previous: tr.Previous,
			Template: tr.Template,
		})
	}
	return jobs
}

// outputPath derives the job's output destination.
func (j Job) outputPath(outputDir string) string {
	if j.Output != "" {
		return j.Output
	}
	base := strings.TrimSuffix(filepath.Base(j.Name), filepath.Ext(j.Name))
	return filepath.Join(outputDir, base+"_COMPARISON.xlsx")
}
