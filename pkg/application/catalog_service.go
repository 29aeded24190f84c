package application

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/repocat/pkg/domain/catalog"
	"github.com/felixgeelhaar/repocat/pkg/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RepositorySource produces the repositories of an organization. A source
// may return a partial list together with an error.
type RepositorySource interface {
	Fetch(ctx context.Context, org string) ([]catalog.Record, error)
}

// ReportSink persists a classification result.
type ReportSink interface {
	Write(res *catalog.Result) []storage.FileOutcome
}

// Run captures one pass of fetch, classify and write.
type Run struct {
	ID       string
	Org      string
	Records  []catalog.Record
	Result   *catalog.Result
	FetchErr error
	Outputs  []storage.FileOutcome
}

// Partial reports whether the source stopped before the listing ended.
func (r *Run) Partial() bool {
	return r.FetchErr != nil
}

// FailedOutputs returns the report files that could not be written.
func (r *Run) FailedOutputs() []storage.FileOutcome {
	return storage.Failed(r.Outputs)
}

// CatalogService turns the repositories of an organization into reports.
type CatalogService struct {
	source     RepositorySource
	sink       ReportSink
	classifier *catalog.Classifier
	log        logrus.FieldLogger
}

// NewCatalogService creates a CatalogService. A nil classifier uses the
// default policy and a nil logger uses the standard logrus logger.
func NewCatalogService(source RepositorySource, sink ReportSink, classifier *catalog.Classifier, log logrus.FieldLogger) *CatalogService {
	if classifier == nil {
		classifier = catalog.NewClassifier(catalog.DefaultPolicy())
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &CatalogService{source: source, sink: sink, classifier: classifier, log: log}
}

// Build fetches and classifies the repositories of org. Fetch failures are
// logged and the partial listing is classified anyway.
func (s *CatalogService) Build(ctx context.Context, org string) (*Run, error) {
	if s.source == nil {
		return nil, fmt.Errorf("no repository source configured")
	}

	run := &Run{ID: uuid.New().String(), Org: org}
	log := s.log.WithFields(logrus.Fields{"run": run.ID, "org": org})

	records, err := s.source.Fetch(ctx, org)
	if err != nil {
		run.FetchErr = err
		log.WithError(err).WithField("fetched", len(records)).Error("repository listing ended early")
	}
	run.Records = records

	run.Result = s.classifier.Classify(records)

	log.WithFields(logrus.Fields{
		"repositories":   len(records),
		"cloudformation": run.Result.CloudFormation.Count(),
		"terraform":      run.Result.Terraform.Count(),
		"in_progress":    len(run.Result.InProgress),
	}).Info("classified repositories")
	log.WithField("topics", run.Result.Topics).Debug("topics seen")

	return run, nil
}

// Publish builds the result and writes it. Write failures are logged per
// file and recorded on the run; they do not fail the call.
func (s *CatalogService) Publish(ctx context.Context, org string) (*Run, error) {
	if s.sink == nil {
		return nil, fmt.Errorf("no report sink configured")
	}

	run, err := s.Build(ctx, org)
	if err != nil {
		return nil, err
	}

	run.Outputs = s.sink.Write(run.Result)
	for _, o := range run.Outputs {
		log := s.log.WithFields(logrus.Fields{"run": run.ID, "file": o.File})
		if o.Err != nil {
			log.WithError(o.Err).Error("failed to write report")
			continue
		}
		log.WithFields(logrus.Fields{"path": o.Path, "count": o.Count}).Debug("wrote report")
	}

	return run, nil
}

// StaticSource serves a fixed list of records, such as a loaded snapshot.
type StaticSource []catalog.Record

// Fetch returns the records regardless of org.
func (s StaticSource) Fetch(_ context.Context, _ string) ([]catalog.Record, error) {
	return s, nil
}
