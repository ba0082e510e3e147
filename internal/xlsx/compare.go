package xlsx

import (
	"fmt"

	"github.com/klytics/xlcompare/internal/diff"
)

// CompareFiles runs one three-way comparison and writes the annotated
// output workbook to outPath.
//
// A failure to open any of the three inputs is fatal to the pair and
// returns a nil result. A failure to save the output is returned as the
// error alongside the already-computed result, so statistics survive
// for reporting.
func CompareFiles(newPath, prevPath, templatePath, outPath string) (*diff.Result, error) {
	newWB, err := Open(newPath)
	if err != nil {
		return nil, fmt.Errorf("new workbook: %w", err)
	}
	defer newWB.Close()

	prevWB, err := Open(prevPath)
	if err != nil {
		return nil, fmt.Errorf("previous workbook: %w", err)
	}
	defer prevWB.Close()

	out, err := OpenOutput(templatePath)
	if err != nil {
		return nil, fmt.Errorf("template workbook: %w", err)
	}
	defer out.Close()

	res := diff.CompareWorkbooks(newWB, prevWB, out)

	if err := out.Save(outPath); err != nil {
		return res, err
	}
	return res, nil
}
