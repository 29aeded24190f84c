package catalog

import (
	"bytes"
	"encoding/json"
	"slices"
	"strings"
)

// Groups maps categories to repository summaries. Categories keep the order
// in which they were first seen, including when encoded as JSON.
type Groups struct {
	order   []string
	buckets map[string][]Summary
}

// NewGroups returns an empty Groups.
func NewGroups() *Groups {
	return &Groups{buckets: make(map[string][]Summary)}
}

// Add appends a summary to the category bucket, creating it on first use.
func (g *Groups) Add(category string, s Summary) {
	if g.buckets == nil {
		g.buckets = make(map[string][]Summary)
	}
	if _, ok := g.buckets[category]; !ok {
		g.order = append(g.order, category)
	}
	g.buckets[category] = append(g.buckets[category], s)
}

// Categories returns the category keys in first-seen order.
func (g *Groups) Categories() []string {
	return slices.Clone(g.order)
}

// Get returns the summaries of a category.
func (g *Groups) Get(category string) []Summary {
	return g.buckets[category]
}

// Len returns the number of categories.
func (g *Groups) Len() int {
	return len(g.order)
}

// Count returns the number of summaries across all categories.
func (g *Groups) Count() int {
	n := 0
	for _, b := range g.buckets {
		n += len(b)
	}
	return n
}

// SortByName orders every bucket by name, ascending and case-sensitive.
func (g *Groups) SortByName() {
	for _, b := range g.buckets {
		slices.SortStableFunc(b, func(a, b Summary) int {
			return strings.Compare(a.Name, b.Name)
		})
	}
}

// MarshalJSON encodes the groups as an object with keys in first-seen order.
func (g *Groups) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, category := range g.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(category)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		val, err := json.Marshal(g.buckets[category])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
