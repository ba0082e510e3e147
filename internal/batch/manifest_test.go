package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klytics/xlcompare/internal/scan"
)

const sampleManifest = `jobs:
  - name: q3
    new: new/report.xlsx
    previous: prev/report.xlsx
    template: template/report.xlsx
    output: out/q3.xlsx
  - new: new/sales.xlsx
    previous: prev/sales.xlsx
    template: template/sales.xlsx
`

func TestLoadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.yaml")
	if err := os.WriteFile(path, []byte(sampleManifest), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Jobs) != 2 {
		t.Fatalf("got %d jobs, want 2", len(m.Jobs))
	}
	if m.Jobs[0].Name != "q3" || m.Jobs[0].Output != "out/q3.xlsx" {
		t.Errorf("job 0 = %+v", m.Jobs[0])
	}
	// Missing name is derived from the new path.
	if m.Jobs[1].Name != "sales.xlsx" {
		t.Errorf("job 1 name = %q, want sales.xlsx", m.Jobs[1].Name)
	}
}

func TestLoadManifestRejectsIncompleteJob(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.yaml")
	if err := os.WriteFile(path, []byte("jobs:\n  - new: a.xlsx\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadManifest(path); err == nil {
		t.Fatal("a job without previous/template must be rejected")
	}
}

func TestLoadManifestRejectsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.yaml")
	if err := os.WriteFile(path, []byte("jobs: []\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadManifest(path); err == nil {
		t.Fatal("an empty manifest must be rejected")
	}
}

func TestJobsFromScan(t *testing.T) {
	res := &scan.Result{
		Triples: []scan.Triple{
			{Name: "a.xlsx", New: "/b/new/a.xlsx", Previous: "/b/prev/a.xlsx", Template: "/b/template/a.xlsx"},
		},
	}
	jobs := JobsFromScan(res)
	if len(jobs) != 1 || jobs[0].New != "/b/new/a.xlsx" || jobs[0].Name != "a.xlsx" {
		t.Errorf("jobs = %+v", jobs)
	}
}

func TestOutputPathDerivation(t *testing.T) {
	j := Job{Name: "report.xlsx"}
	if got := j.outputPath("results"); got != filepath.Join("results", "report_COMPARISON.xlsx") {
		t.Errorf("outputPath = %q", got)
	}
	j.Output = "explicit.xlsx"
	if got := j.outputPath("results"); got != "explicit.xlsx" {
		t.Errorf("explicit output ignored: %q", got)
	}
}
