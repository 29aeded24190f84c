package wiring

import (
	"github.com/felixgeelhaar/repocat/pkg/storage"
)

// Workspace bundles the output side of a run.
type Workspace struct {
	OutputDir string
	Writer    *storage.ReportWriter
}

// NewWorkspace validates outputDir and prepares the report writer for it.
func NewWorkspace(outputDir string) (*Workspace, error) {
	w, err := storage.NewReportWriter(outputDir)
	if err != nil {
		return nil, err
	}
	return &Workspace{OutputDir: w.Dir(), Writer: w}, nil
}
