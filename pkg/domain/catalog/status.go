package catalog

import (
	"fmt"
	"slices"
)

// Status is the completion state of a repository, rendered as a badge.
type Status string

const (
	StatusNotStarted Status = "not-started"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// badges maps every status to its badge image URL.
var badges = map[Status]string{
	StatusNotStarted: "https://img.shields.io/badge/status-not%20started-lightgrey",
	StatusInProgress: "https://img.shields.io/badge/status-in%20progress-yellow",
	StatusCompleted:  "https://img.shields.io/badge/status-completed-brightgreen",
}

// statusPriority is the order in which status tags are looked up.
var statusPriority = []Status{StatusInProgress, StatusNotStarted, StatusCompleted}

// AllStatuses returns all valid statuses in lookup priority order.
func AllStatuses() []Status {
	return slices.Clone(statusPriority)
}

// DeriveStatus returns the status bound to the first priority tag present in
// topics. Repositories without a status tag are not started.
func DeriveStatus(topics []string) Status {
	for _, s := range statusPriority {
		if slices.Contains(topics, string(s)) {
			return s
		}
	}
	return StatusNotStarted
}

// IsValid returns true if the status is one of the known statuses.
func (s Status) IsValid() bool {
	_, ok := badges[s]
	return ok
}

// String returns the tag name of the status.
func (s Status) String() string {
	return string(s)
}

// Badge returns the badge URL for the status. Unknown statuses fall back to
// the not-started badge.
func (s Status) Badge() string {
	if b, ok := badges[s]; ok {
		return b
	}
	return badges[StatusNotStarted]
}

// MarshalText encodes the status as its badge URL.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.Badge()), nil
}

// UnmarshalText accepts either a badge URL or a tag name.
func (s *Status) UnmarshalText(text []byte) error {
	v := string(text)
	for status, badge := range badges {
		if v == badge || v == string(status) {
			*s = status
			return nil
		}
	}
	return fmt.Errorf("invalid status: %q", v)
}
