package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/felixgeelhaar/repocat/pkg/domain/catalog"
	"gopkg.in/yaml.v3"
)

const (
	EnvToken  = "GITHUB_TOKEN"
	EnvAPIURL = "GITHUB_API_URL"

	defaultAPIURL         = "https://api.github.com/"
	defaultRequestTimeout = 30 * time.Second
)

var (
	ErrMissingOrg       = errors.New("organization is required")
	ErrMissingOutputDir = errors.New("output directory is required")
)

// Config holds everything a report run needs. Values come from an optional
// YAML file, then the environment, then command-line flags.
type Config struct {
	Org            string        `yaml:"org"`
	OutputDir      string        `yaml:"output_dir"`
	Token          string        `yaml:"token"`
	APIURL         string        `yaml:"api_url"`
	Input          string        `yaml:"input"`
	Debug          bool          `yaml:"debug"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	PerPage        int           `yaml:"per_page"`

	Classification ClassificationConfig `yaml:"classification"`
}

// ClassificationConfig mirrors catalog.Policy. IndependentTags is a pointer
// so an absent key keeps the default.
type ClassificationConfig struct {
	IndependentTags  *bool  `yaml:"independent_tags"`
	CategoryProperty string `yaml:"category_property"`
	DefaultCategory  string `yaml:"default_category"`
}

// Policy converts the classification section into a catalog policy.
func (c ClassificationConfig) Policy() catalog.Policy {
	p := catalog.DefaultPolicy()
	if c.IndependentTags != nil {
		p.IndependentTags = *c.IndependentTags
	}
	if c.CategoryProperty != "" {
		p.CategoryProperty = c.CategoryProperty
	}
	if c.DefaultCategory != "" {
		p.DefaultCategory = c.DefaultCategory
	}
	return p
}

// Load reads path when it is set. A missing path yields an empty config.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}

	// #nosec G304 -- Path is supplied by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv fills values that are still empty from the environment.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	envDefault(&c.Token, getenv(EnvToken))
	envDefault(&c.APIURL, getenv(EnvAPIURL))
}

func envDefault(dst *string, val string) {
	if *dst == "" {
		*dst = strings.TrimSpace(val)
	}
}

// ApplyDefaults sets defaults for unset values.
func (c *Config) ApplyDefaults() {
	if c.APIURL == "" {
		c.APIURL = defaultAPIURL
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = defaultRequestTimeout
	}
}

// Validate checks the fields a report run cannot do without. An org is not
// needed when classifying a snapshot.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.OutputDir) == "" {
		return ErrMissingOutputDir
	}
	if strings.TrimSpace(c.Org) == "" && c.Input == "" {
		return ErrMissingOrg
	}
	return nil
}
