package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/felixgeelhaar/repocat/pkg/domain/catalog"
)

const (
	CloudFormationFile = "cloudformation_repos.json"
	TerraformFile      = "terraform_repos.json"
	InProgressFile     = "currently_working_repos.json"
)

// ErrInvalidOutputDir is returned when the output directory is missing or is
// not a directory.
var ErrInvalidOutputDir = errors.New("invalid output directory")

// FileOutcome describes the write of a single report file.
type FileOutcome struct {
	File  string
	Path  string
	Count int
	Err   error
}

// ReportWriter writes classification results as JSON files into a directory.
type ReportWriter struct {
	dir string
}

// NewReportWriter validates dir and returns a writer rooted at it.
func NewReportWriter(dir string) (*ReportWriter, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("%w: no path given", ErrInvalidOutputDir)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidOutputDir, dir, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOutputDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %q is not a directory", ErrInvalidOutputDir, abs)
	}

	return &ReportWriter{dir: abs}, nil
}

// Dir returns the absolute output directory.
func (w *ReportWriter) Dir() string {
	return w.dir
}

// ResolvePath ensures filename stays a direct child of the output directory.
func (w *ReportWriter) ResolvePath(filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("filename cannot be empty")
	}

	cleanPath := filepath.Clean(filepath.Join(w.dir, filename))
	if !strings.HasPrefix(cleanPath, w.dir) || filepath.Dir(cleanPath) != w.dir {
		return "", fmt.Errorf("invalid file path: %s", filename)
	}

	return cleanPath, nil
}

// Write stores the three report files. Every file is attempted even if an
// earlier one fails.
func (w *ReportWriter) Write(res *catalog.Result) []FileOutcome {
	if res == nil {
		res = catalog.NewResult()
	}

	inProgress := res.InProgress
	if inProgress == nil {
		inProgress = []catalog.Summary{}
	}

	cfn := groupsOrEmpty(res.CloudFormation)
	tf := groupsOrEmpty(res.Terraform)

	return []FileOutcome{
		w.writeFile(CloudFormationFile, cfn, cfn.Count()),
		w.writeFile(TerraformFile, tf, tf.Count()),
		w.writeFile(InProgressFile, inProgress, len(inProgress)),
	}
}

func groupsOrEmpty(g *catalog.Groups) *catalog.Groups {
	if g == nil {
		return catalog.NewGroups()
	}
	return g
}

func (w *ReportWriter) writeFile(name string, v any, count int) FileOutcome {
	out := FileOutcome{File: name, Count: count}

	path, err := w.ResolvePath(name)
	if err != nil {
		out.Err = err
		return out
	}
	out.Path = path

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		out.Err = fmt.Errorf("failed to marshal %s: %w", name, err)
		return out
	}

	// #nosec G306 -- reports are published artifacts
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		out.Err = fmt.Errorf("failed to write %s: %w", name, err)
	}
	return out
}

// Failed returns the outcomes that carry an error.
func Failed(outcomes []FileOutcome) []FileOutcome {
	var failed []FileOutcome
	for _, o := range outcomes {
		if o.Err != nil {
			failed = append(failed, o)
		}
	}
	return failed
}
