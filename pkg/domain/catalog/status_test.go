package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name   string
		topics []string
		want   Status
	}{
		{"nil topics", nil, StatusNotStarted},
		{"no status tag", []string{"terraform", "aws"}, StatusNotStarted},
		{"completed", []string{"completed"}, StatusCompleted},
		{"not started", []string{"not-started"}, StatusNotStarted},
		{"in progress", []string{"in-progress"}, StatusInProgress},
		{"in progress wins over completed", []string{"completed", "in-progress"}, StatusInProgress},
		{"not started wins over completed", []string{"completed", "not-started"}, StatusNotStarted},
		{"all three", []string{"completed", "not-started", "in-progress"}, StatusInProgress},
		{"case sensitive", []string{"Completed"}, StatusNotStarted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(tt.topics))
		})
	}
}

func TestStatus_Badge(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range AllStatuses() {
		assert.True(t, s.IsValid())
		assert.NotEmpty(t, s.Badge())
		assert.False(t, seen[s.Badge()], "badge for %s is not unique", s)
		seen[s.Badge()] = true
	}

	assert.False(t, Status("blocked").IsValid())
	assert.Equal(t, StatusNotStarted.Badge(), Status("blocked").Badge())
}

func TestStatus_TextRoundTrip(t *testing.T) {
	data, err := json.Marshal(StatusCompleted)
	require.NoError(t, err)
	assert.JSONEq(t, `"`+StatusCompleted.Badge()+`"`, string(data))

	var fromBadge Status
	require.NoError(t, json.Unmarshal(data, &fromBadge))
	assert.Equal(t, StatusCompleted, fromBadge)

	var fromTag Status
	require.NoError(t, json.Unmarshal([]byte(`"in-progress"`), &fromTag))
	assert.Equal(t, StatusInProgress, fromTag)

	var bad Status
	assert.Error(t, json.Unmarshal([]byte(`"paused"`), &bad))
}

func TestSummary_ReadsBackReportEntry(t *testing.T) {
	for _, status := range AllStatuses() {
		t.Run(status.String(), func(t *testing.T) {
			in := Summary{Name: "vpc", Description: "Shared VPC", URL: "https://github.com/acme/vpc", Status: status}

			data, err := json.Marshal(in)
			require.NoError(t, err)
			assert.Contains(t, string(data), `"status":"`+status.Badge()+`"`)

			var out Summary
			require.NoError(t, json.Unmarshal(data, &out))
			assert.Equal(t, in, out)
		})
	}
}
