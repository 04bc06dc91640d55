package assembly

import (
	"github.com/partsync/partsync/internal/infrastructure/bomfile"
)

// LineStatus classifies the outcome of one BOM line
type LineStatus string

const (
	// LineAdded means the component was linked to the assembly
	LineAdded LineStatus = "added"
	// LineExists means the assembly already carried the component
	LineExists LineStatus = "exists"
	// LineNotFound means no supplier could resolve the part number
	LineNotFound LineStatus = "not_found"
	// LineError means the line failed for any other reason
	LineError LineStatus = "error"
)

// String returns the string representation of LineStatus
func (s LineStatus) String() string {
	return string(s)
}

// LineResult is the outcome of one BOM line
type LineResult struct {
	LineNumber int
	Status     LineStatus
	PartNumber string
	MPN        string
	Message    string
}

// BuildResult aggregates a BOM build run
type BuildResult struct {
	AssemblyPartID  int
	AssemblyCreated bool
	Total           int
	Added           int
	Existing        int
	NotFound        int
	Errors          int
	Skipped         []bomfile.SkippedLine
}

// add counts a line result into the build totals
func (r *BuildResult) add(status LineStatus) {
	r.Total++
	switch status {
	case LineAdded:
		r.Added++
	case LineExists:
		r.Existing++
	case LineNotFound:
		r.NotFound++
	case LineError:
		r.Errors++
	}
}
