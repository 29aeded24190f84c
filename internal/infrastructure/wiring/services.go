package wiring

import (
	"fmt"

	"github.com/felixgeelhaar/repocat/internal/infrastructure/config"
	"github.com/felixgeelhaar/repocat/internal/infrastructure/github"
	"github.com/felixgeelhaar/repocat/pkg/application"
	"github.com/felixgeelhaar/repocat/pkg/domain/catalog"
	"github.com/felixgeelhaar/repocat/pkg/storage"
	"github.com/sirupsen/logrus"
)

// AppServices exposes the services of a report run wired together.
type AppServices struct {
	Workspace  *Workspace
	Classifier *catalog.Classifier
	Catalog    *application.CatalogService
	// Fetcher is nil when records come from a snapshot.
	Fetcher *github.Fetcher
}

// BuildAppServices constructs the catalog service for cfg. The output
// directory is validated first so nothing touches the network when it is
// unusable. A snapshot input replaces the GitHub fetcher.
func BuildAppServices(cfg *config.Config, log logrus.FieldLogger) (*AppServices, error) {
	workspace, err := NewWorkspace(cfg.OutputDir)
	if err != nil {
		return nil, err
	}

	var (
		source  application.RepositorySource
		fetcher *github.Fetcher
	)
	if cfg.Input != "" {
		records, err := storage.LoadSnapshot(cfg.Input)
		if err != nil {
			return nil, err
		}
		source = application.StaticSource(records)
	} else {
		fetcher, err = NewFetcher(cfg, log)
		if err != nil {
			return nil, err
		}
		source = fetcher
	}

	classifier := catalog.NewClassifier(cfg.Classification.Policy())

	return &AppServices{
		Workspace:  workspace,
		Classifier: classifier,
		Catalog:    application.NewCatalogService(source, workspace.Writer, classifier, log),
		Fetcher:    fetcher,
	}, nil
}

// NewFetcher builds a GitHub fetcher from cfg.
func NewFetcher(cfg *config.Config, log logrus.FieldLogger) (*github.Fetcher, error) {
	f, err := github.NewFetcher(
		github.WithToken(cfg.Token),
		github.WithBaseURL(cfg.APIURL),
		github.WithRequestTimeout(cfg.RequestTimeout),
		github.WithPerPage(cfg.PerPage),
		github.WithLogger(log),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build GitHub client: %w", err)
	}
	return f, nil
}
