package catalog

import (
	"fmt"
	"slices"
	"strings"
)

const (
	// DefaultCategoryProperty is the custom property holding the category.
	DefaultCategoryProperty = "ProjectCategory"
	// DefaultCategory is used when a repository has no category property.
	DefaultCategory = "No Category"
)

// Topic tags that drive classification.
const (
	TopicCloudFormation = "cloudformation"
	TopicTerraform      = "terraform"
	TopicInProgress     = "in-progress"
)

// Record is a repository as listed by the GitHub API. Every field is
// optional; the JSON shape matches the API payload so snapshots can be
// decoded directly.
type Record struct {
	Name             string         `json:"name"`
	Description      string         `json:"description"`
	URL              string         `json:"html_url"`
	Topics           []string       `json:"topics"`
	CustomProperties map[string]any `json:"custom_properties,omitempty"`
}

// HasTopic reports whether the record carries the given topic tag.
func (r Record) HasTopic(topic string) bool {
	return slices.Contains(r.Topics, topic)
}

// Category returns the value of the named custom property, or fallback when
// it is missing or empty. Multi-select values are joined with ", ".
func (r Record) Category(property, fallback string) string {
	v, ok := r.CustomProperties[property]
	if !ok || v == nil {
		return fallback
	}

	var category string
	switch val := v.(type) {
	case string:
		category = val
	case []string:
		category = strings.Join(val, ", ")
	case []any:
		parts := make([]string, 0, len(val))
		for _, p := range val {
			if p != nil {
				parts = append(parts, fmt.Sprint(p))
			}
		}
		category = strings.Join(parts, ", ")
	default:
		category = fmt.Sprint(val)
	}

	if strings.TrimSpace(category) == "" {
		return fallback
	}
	return category
}

// Summary is the published view of a repository.
type Summary struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Status      Status `json:"status"`
}

// Summarize derives the summary of a record.
func Summarize(r Record) Summary {
	return Summary{
		Name:        r.Name,
		Description: r.Description,
		URL:         r.URL,
		Status:      DeriveStatus(r.Topics),
	}
}
