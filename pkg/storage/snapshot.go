package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/felixgeelhaar/repocat/pkg/domain/catalog"
	"github.com/xeipuuv/gojsonschema"
)

// ErrInvalidSnapshot is returned when a snapshot file is not a JSON array of
// repository objects.
var ErrInvalidSnapshot = errors.New("invalid repository snapshot")

const snapshotSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "properties": {
      "name": { "type": ["string", "null"] },
      "description": { "type": ["string", "null"] },
      "html_url": { "type": ["string", "null"] },
      "topics": {
        "type": ["array", "null"],
        "items": { "type": "string" }
      },
      "custom_properties": { "type": ["object", "null"] }
    }
  }
}`

var snapshotSchemaLoader = gojsonschema.NewStringLoader(snapshotSchemaJSON)

// LoadSnapshot reads repository records from a JSON file produced by
// SaveSnapshot or dumped straight from the GitHub API.
func LoadSnapshot(path string) ([]catalog.Record, error) {
	// #nosec G304 -- Path is supplied by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	return ParseSnapshot(data)
}

// ParseSnapshot validates and decodes snapshot bytes.
func ParseSnapshot(data []byte) ([]catalog.Record, error) {
	result, err := gojsonschema.Validate(snapshotSchemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if !result.Valid() {
		issues := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			issues = append(issues, desc.String())
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidSnapshot, strings.Join(issues, "; "))
	}

	var records []catalog.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	return records, nil
}

// SaveSnapshot writes records to path in the GitHub API shape.
func SaveSnapshot(path string, records []catalog.Record) error {
	if records == nil {
		records = []catalog.Record{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	return os.WriteFile(path, append(data, '\n'), 0600)
}
