// Package github lists organization repositories through the GitHub REST API.
package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/felixgeelhaar/fortify/timeout"
	"github.com/felixgeelhaar/repocat/pkg/domain/catalog"
	gh "github.com/google/go-github/v69/github"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

const (
	DefaultBaseURL        = "https://api.github.com/"
	DefaultPerPage        = 100
	DefaultRequestTimeout = 30 * time.Second
	listType              = "all"
)

// FetchError reports why enumeration stopped early. Records gathered before
// the failing page are still returned alongside it.
type FetchError struct {
	Org        string
	Page       int
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to fetch repositories for %s (page %d): status %d: %v", e.Org, e.Page, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("failed to fetch repositories for %s (page %d): %v", e.Org, e.Page, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Fetcher pages through the repositories of an organization.
type Fetcher struct {
	client  *gh.Client
	perPage int
	timeout time.Duration
	log     logrus.FieldLogger
}

type options struct {
	token      string
	baseURL    string
	httpClient *http.Client
	perPage    int
	timeout    time.Duration
	log        logrus.FieldLogger
}

// Option configures a Fetcher.
type Option func(*options)

// WithToken authenticates requests with a bearer token.
func WithToken(token string) Option {
	return func(o *options) { o.token = strings.TrimSpace(token) }
}

// WithBaseURL points the fetcher at another API host, e.g. GitHub Enterprise.
func WithBaseURL(u string) Option {
	return func(o *options) { o.baseURL = u }
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithPerPage overrides the page size.
func WithPerPage(n int) Option {
	return func(o *options) { o.perPage = n }
}

// WithRequestTimeout bounds every page request.
func WithRequestTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) { o.log = l }
}

// NewFetcher builds a Fetcher.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	o := options{
		baseURL: DefaultBaseURL,
		perPage: DefaultPerPage,
		timeout: DefaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logrus.StandardLogger()
	}
	if o.perPage <= 0 {
		o.perPage = DefaultPerPage
	}
	if o.timeout <= 0 {
		o.timeout = DefaultRequestTimeout
	}

	httpClient := o.httpClient
	if o.token != "" {
		ctx := context.Background()
		if httpClient != nil {
			ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
		}
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: o.token}))
	}

	client := gh.NewClient(httpClient)
	if o.baseURL != "" && o.baseURL != DefaultBaseURL {
		base, err := parseBaseURL(o.baseURL)
		if err != nil {
			return nil, err
		}
		client.BaseURL = base
	}

	return &Fetcher{
		client:  client,
		perPage: o.perPage,
		timeout: o.timeout,
		log:     o.log,
	}, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL %q: %w", raw, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid API base URL %q: scheme and host are required", raw)
	}
	return u, nil
}

// BaseURL returns the API root the fetcher talks to.
func (f *Fetcher) BaseURL() string {
	return f.client.BaseURL.String()
}

type page struct {
	repos []*gh.Repository
	resp  *gh.Response
}

// Fetch lists every repository of org, one page at a time, until an empty
// page comes back. The first failing page ends enumeration; the records
// collected so far are returned with a *FetchError.
func (f *Fetcher) Fetch(ctx context.Context, org string) ([]catalog.Record, error) {
	log := f.log.WithField("org", org)
	t := timeout.New[page](timeout.Config{DefaultTimeout: f.timeout})

	var records []catalog.Record
	for n := 1; ; n++ {
		opts := &gh.RepositoryListByOrgOptions{
			Type:        listType,
			ListOptions: gh.ListOptions{Page: n, PerPage: f.perPage},
		}
		log.WithField("page", n).Debug("fetching repositories")

		p, err := t.Execute(ctx, f.timeout, func(ctx context.Context) (page, error) {
			repos, resp, err := f.client.Repositories.ListByOrg(ctx, org, opts)
			return page{repos: repos, resp: resp}, err
		})

		status := 0
		if p.resp != nil && p.resp.Response != nil {
			status = p.resp.StatusCode
		}
		if err == nil && status != http.StatusOK {
			err = fmt.Errorf("unexpected response status %d", status)
		}
		if err != nil {
			return records, &FetchError{Org: org, Page: n, StatusCode: status, Err: err}
		}

		if len(p.repos) == 0 {
			break
		}
		for _, r := range p.repos {
			records = append(records, toRecord(r))
		}
	}

	log.WithField("count", len(records)).Debug("fetched repositories")
	return records, nil
}

func toRecord(r *gh.Repository) catalog.Record {
	return catalog.Record{
		Name:             r.GetName(),
		Description:      r.GetDescription(),
		URL:              r.GetHTMLURL(),
		Topics:           r.Topics,
		CustomProperties: r.CustomProperties,
	}
}
