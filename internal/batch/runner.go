package batch

import (
	"fmt"
	"os"
	"time"

	"github.com/klytics/xlcompare/internal/diff"
	"github.com/klytics/xlcompare/internal/xlsx"
)

// FileSummary is the outcome of one job.
type FileSummary struct {
	Name               string                     `json:"filename"`
	Output             string                     `json:"output,omitempty"`
	Status             string                     `json:"status"` // "completed" or "failed"
	SheetsProcessed    int                        `json:"sheets_processed"`
	CellsCompared      int                        `json:"cells_compared"`
	TotalDifferences   int                        `json:"total_differences"`
	NumericDifferences int                        `json:"numeric_differences"`
	TextDifferences    int                        `json:"text_differences"`
	Sheets             map[string]diff.SheetStats `json:"sheet_details,omitempty"`
	SkippedSheets      []string                   `json:"skipped_sheets,omitempty"`
	Errors             []string                   `json:"errors,omitempty"`
}

// RunSummary aggregates a whole batch run.
type RunSummary struct {
	Timestamp        time.Time     `json:"timestamp"`
	Files            []FileSummary `json:"files_processed"`
	TotalDifferences int           `json:"total_differences"`
	FilesCompleted   int           `json:"files_completed"`
	FilesFailed      int           `json:"files_failed"`
	Errors           []string      `json:"errors"`
}

// Runner executes comparison jobs sequentially. Each job is isolated:
// a pair that fails to open never stops the run.
type Runner struct {
	// OutputDir receives annotated workbooks for jobs without an
	// explicit output path.
	OutputDir string
	// Progress, when set, is called after each job completes.
	Progress func(done, total int, job Job, sum FileSummary)
}

// Run executes every job and returns the aggregate summary. Errors is
// never nil so reports always have an explicit (possibly empty) list.
func (r *Runner) Run(jobs []Job) *RunSummary {
	sum := &RunSummary{Timestamp: time.Now(), Errors: []string{}}

	if r.OutputDir != "" {
		if err := os.MkdirAll(r.OutputDir, 0755); err != nil {
			sum.Errors = append(sum.Errors, fmt.Sprintf("could not create output directory %s: %v", r.OutputDir, err))
			return sum
		}
	}

	for i, job := range jobs {
		fs := r.RunJob(job)
		sum.Files = append(sum.Files, fs)
		sum.TotalDifferences += fs.TotalDifferences
		if fs.Status == "completed" {
			sum.FilesCompleted++
		} else {
			sum.FilesFailed++
		}
		for _, e := range fs.Errors {
			sum.Errors = append(sum.Errors, fmt.Sprintf("%s: %s", fs.Name, e))
		}
		if r.Progress != nil {
			r.Progress(i+1, len(jobs), job, fs)
		}
	}

	return sum
}

// RunJob executes a single comparison job.
func (r *Runner) RunJob(job Job) FileSummary {
	fs := FileSummary{Name: job.Name, Output: job.outputPath(r.OutputDir)}

	res, err := xlsx.CompareFiles(job.New, job.Previous, job.Template, fs.Output)
	if res == nil {
		fs.Status = "failed"
		fs.Output = ""
		fs.Errors = append(fs.Errors, err.Error())
		return fs
	}

	fs.SheetsProcessed = res.Stats.SheetsCompared
	fs.CellsCompared = res.Stats.CellsCompared
	fs.TotalDifferences = res.Stats.Differences
	fs.NumericDifferences = res.Stats.NumericDiffs
	fs.TextDifferences = res.Stats.TextDiffs
	fs.Sheets = res.Sheets
	fs.SkippedSheets = res.SkippedSheets
	fs.Errors = append(fs.Errors, res.Warnings...)

	if err != nil {
		// Save failed; the statistics still describe what would have
		// been written.
		fs.Status = "failed"
		fs.Errors = append(fs.Errors, err.Error())
		return fs
	}

	fs.Status = "completed"
	return fs
}
