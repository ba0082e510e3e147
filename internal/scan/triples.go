// Package scan discovers comparable workbook triples laid out in new/,
// prev/, and template/ folders under a base directory.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Folder names expected under the base directory.
const (
	NewDir      = "new"
	PrevDir     = "prev"
	TemplateDir = "template"
	// OutputDir is the default destination for annotated workbooks.
	OutputDir = "comparison_results"
)

// Triple is one matched set of workbook paths.
type Triple struct {
	Name     string `json:"name"`
	New      string `json:"new"`
	Previous string `json:"previous"`
	Template string `json:"template"`
}

// OutputName returns the default output filename for the triple.
func (t Triple) OutputName() string {
	base := strings.TrimSuffix(t.Name, filepath.Ext(t.Name))
	return base + "_COMPARISON.xlsx"
}

// Result holds a discovery pass over a base directory.
type Result struct {
	BaseDir string   `json:"base_dir"`
	Triples []Triple `json:"triples"`
	// Unmatched lists workbooks missing from at least one folder.
	Unmatched []string `json:"unmatched,omitempty"`
}

// Discover lists the .xlsx files present in all three folders, sorted
// by name. Files present in only one or two folders are reported in
// Unmatched, not returned as triples.
func Discover(baseDir string) (*Result, error) {
	baseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("could not resolve path: %w", err)
	}
	info, err := os.Stat(baseDir)
	if err != nil {
		return nil, fmt.Errorf("could not access %s: %w", baseDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", baseDir)
	}

	inNew, err := listWorkbooks(filepath.Join(baseDir, NewDir))
	if err != nil {
		return nil, err
	}
	inPrev, err := listWorkbooks(filepath.Join(baseDir, PrevDir))
	if err != nil {
		return nil, err
	}
	inTemplate, err := listWorkbooks(filepath.Join(baseDir, TemplateDir))
	if err != nil {
		return nil, err
	}

	res := &Result{BaseDir: baseDir}
	seen := make(map[string]bool)
	for _, name := range append(append(keys(inNew), keys(inPrev)...), keys(inTemplate)...) {
		if seen[name] {
			continue
		}
		seen[name] = true

		var missing []string
		if !inNew[name] {
			missing = append(missing, NewDir)
		}
		if !inPrev[name] {
			missing = append(missing, PrevDir)
		}
		if !inTemplate[name] {
			missing = append(missing, TemplateDir)
		}

		if len(missing) > 0 {
			res.Unmatched = append(res.Unmatched, fmt.Sprintf("%s (missing from: %s)", name, strings.Join(missing, ", ")))
			continue
		}
		res.Triples = append(res.Triples, Triple{
			Name:     name,
			New:      filepath.Join(baseDir, NewDir, name),
			Previous: filepath.Join(baseDir, PrevDir, name),
			Template: filepath.Join(baseDir, TemplateDir, name),
		})
	}

	sort.Slice(res.Triples, func(i, j int) bool { return res.Triples[i].Name < res.Triples[j].Name })
	sort.Strings(res.Unmatched)
	return res, nil
}

// listWorkbooks returns the .xlsx filenames in dir. A missing folder is
// treated as empty, not an error.
func listWorkbooks(dir string) (map[string]bool, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return map[string]bool{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not list %s: %w", dir, err)
	}

	names := make(map[string]bool)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.ToLower(filepath.Ext(name)) != ".xlsx" {
			continue
		}
		// Office lock files.
		if strings.HasPrefix(name, "~$") {
			continue
		}
		names[name] = true
	}
	return names, nil
}

func keys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
