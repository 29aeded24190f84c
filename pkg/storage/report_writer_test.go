package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/felixgeelhaar/repocat/pkg/domain/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReportWriter_Validation(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plain.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0600))

	tests := []struct {
		name string
		dir  string
	}{
		{"empty", ""},
		{"missing", filepath.Join(dir, "nope")},
		{"file", file},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewReportWriter(tt.dir)
			assert.ErrorIs(t, err, ErrInvalidOutputDir)
		})
	}

	w, err := NewReportWriter(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, w.Dir())
}

func TestReportWriter_ResolvePath(t *testing.T) {
	w, err := NewReportWriter(t.TempDir())
	require.NoError(t, err)

	_, err = w.ResolvePath("")
	assert.Error(t, err)
	_, err = w.ResolvePath("../escape.json")
	assert.Error(t, err)
	_, err = w.ResolvePath("nested/file.json")
	assert.Error(t, err)

	p, err := w.ResolvePath(TerraformFile)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(w.Dir(), TerraformFile), p)
}

func TestReportWriter_WriteEmptyResult(t *testing.T) {
	dir := t.TempDir()
	w, err := NewReportWriter(dir)
	require.NoError(t, err)

	outcomes := w.Write(catalog.Classify(nil))
	require.Len(t, outcomes, 3)
	assert.Empty(t, Failed(outcomes))

	want := map[string]string{
		CloudFormationFile: "{}",
		TerraformFile:      "{}",
		InProgressFile:     "[]",
	}
	for name, body := range want {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.JSONEq(t, body, string(data), name)
	}
}

func TestReportWriter_WriteShapes(t *testing.T) {
	dir := t.TempDir()
	w, err := NewReportWriter(dir)
	require.NoError(t, err)

	res := catalog.Classify([]catalog.Record{
		{Name: "b", Topics: []string{"terraform"}, CustomProperties: map[string]any{"ProjectCategory": "infra"}},
		{Name: "a", Topics: []string{"terraform", "completed"}, CustomProperties: map[string]any{"ProjectCategory": "infra"}},
		{Name: "wip", Description: "draft", URL: "https://github.com/acme/wip", Topics: []string{"in-progress"}},
	})

	outcomes := w.Write(res)
	assert.Empty(t, Failed(outcomes))
	assert.Equal(t, 2, outcomes[1].Count)
	assert.Equal(t, 1, outcomes[2].Count)

	var tf map[string][]map[string]string
	data, err := os.ReadFile(filepath.Join(dir, TerraformFile))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &tf))
	require.Len(t, tf["infra"], 2)
	assert.Equal(t, "a", tf["infra"][0]["name"])
	assert.Equal(t, catalog.StatusCompleted.Badge(), tf["infra"][0]["status"])
	assert.Equal(t, "b", tf["infra"][1]["name"])

	var wip []map[string]string
	data, err = os.ReadFile(filepath.Join(dir, InProgressFile))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &wip))
	assert.Equal(t, []map[string]string{{
		"name":        "wip",
		"description": "draft",
		"url":         "https://github.com/acme/wip",
		"status":      catalog.StatusInProgress.Badge(),
	}}, wip)
}

func TestReportWriter_OneFailureDoesNotStopOthers(t *testing.T) {
	dir := t.TempDir()
	w, err := NewReportWriter(dir)
	require.NoError(t, err)

	// A directory in place of the file makes that single write fail.
	require.NoError(t, os.Mkdir(filepath.Join(dir, CloudFormationFile), 0700))

	outcomes := w.Write(catalog.NewResult())
	failed := Failed(outcomes)
	require.Len(t, failed, 1)
	assert.Equal(t, CloudFormationFile, failed[0].File)

	for _, name := range []string{TerraformFile, InProgressFile} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}
