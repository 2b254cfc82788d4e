// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// TaskID is the opaque identifier the remote resource assigns to a task.
// The remote may send it as a JSON number or a JSON string. IDs whose text
// is a JSON number literal are written back as numbers, so a numeric id
// (including fractions and values beyond int64) round-trips unchanged in
// update and delete bodies. String ids that are not number literals, such
// as "0012" or "abc", stay strings.
type TaskID string

// String returns the ID as text.
func (id TaskID) String() string { return string(id) }

// MarshalJSON implements json.Marshaler.
func (id TaskID) MarshalJSON() ([]byte, error) {
	if isNumberLiteral(string(id)) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// isNumberLiteral reports whether s is exactly one JSON number, with no
// surrounding whitespace.
func isNumberLiteral(s string) bool {
	if s == "" || s != strings.TrimSpace(s) {
		return false
	}
	if c := s[0]; c != '-' && (c < '0' || c > '9') {
		return false
	}
	return json.Valid([]byte(s))
}

// UnmarshalJSON implements json.Unmarshaler.
func (id *TaskID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = TaskID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("task id must be a string or number: %s", data)
	}
	*id = TaskID(n.String())
	return nil
}

// Task represents a single todo item as the remote resource stores it.
type Task struct {
	ID          TaskID `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// NewTask is the body sent when creating a task.
// The remote assigns the ID and starts every task as not completed.
type NewTask struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Filter selects which tasks a list call returns.
type Filter string

const (
	FilterAll        Filter = "all"
	FilterCompleted  Filter = "completed"
	FilterIncomplete Filter = "incomplete"
)

// Filters lists every valid filter in display order.
var Filters = []Filter{FilterAll, FilterIncomplete, FilterCompleted}

// Valid reports whether f is one of the known filters.
func (f Filter) Valid() bool {
	switch f {
	case FilterAll, FilterCompleted, FilterIncomplete:
		return true
	}
	return false
}

// ParseFilter converts user input to a Filter.
// Unknown values are rejected rather than defaulted.
func ParseFilter(s string) (Filter, error) {
	f := Filter(s)
	if !f.Valid() {
		return "", &ValidationError{Field: "filter", Message: fmt.Sprintf("invalid filter: %q (want all, completed or incomplete)", s)}
	}
	return f, nil
}
