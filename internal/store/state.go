// Package store holds the view state shown to the user and the actions
// that keep it in step with the remote task resource.
//
// Every change goes through a named action applied by dispatch. Writes are
// never reflected locally: a confirmed write is followed by a full refresh,
// so the visible list is always either the last list the remote returned
// or explicitly marked as loading.
package store

import "todoapp/internal/service"

// Fixed user-facing messages for remote failures.
const (
	MsgFetchFailed  = "Failed to fetch todos. Make sure backend is running!"
	MsgCreateFailed = "Failed to create todo"
	MsgUpdateFailed = "Failed to update todo"
	MsgDeleteFailed = "Failed to delete todo"

	// ConfirmDeleteMessage is passed to the Confirmer before a delete.
	ConfirmDeleteMessage = "Are you sure you want to delete this todo?"
)

// State is everything a renderer needs to draw the task list.
type State struct {
	Tasks              []service.Task
	Filter             service.Filter
	PendingTitle       string
	PendingDescription string
	IsLoading          bool
	ErrorMessage       string
}

// initialState is the state at application start.
func initialState() State {
	return State{
		Tasks:  []service.Task{},
		Filter: service.FilterAll,
	}
}

// clone returns a copy that shares no memory with s.
func (s State) clone() State {
	c := s
	c.Tasks = make([]service.Task, len(s.Tasks))
	copy(c.Tasks, s.Tasks)
	return c
}

// action is one named state transition.
type action interface {
	apply(s *State)
}

type refreshStarted struct{}

func (refreshStarted) apply(s *State) {
	s.IsLoading = true
	s.ErrorMessage = ""
}

type refreshSucceeded struct {
	tasks []service.Task
}

func (a refreshSucceeded) apply(s *State) {
	s.Tasks = a.tasks
	s.IsLoading = false
}

// refreshFailed keeps the stale list.
type refreshFailed struct{}

func (refreshFailed) apply(s *State) {
	s.IsLoading = false
	s.ErrorMessage = MsgFetchFailed
}

type filterChanged struct {
	filter service.Filter
}

func (a filterChanged) apply(s *State) {
	s.Filter = a.filter
}

type draftChanged struct {
	title, description string
}

func (a draftChanged) apply(s *State) {
	s.PendingTitle = a.title
	s.PendingDescription = a.description
}

type draftCleared struct{}

func (draftCleared) apply(s *State) {
	s.PendingTitle = ""
	s.PendingDescription = ""
}

type writeStarted struct{}

func (writeStarted) apply(s *State) {
	s.ErrorMessage = ""
}

type writeFailed struct {
	message string
}

func (a writeFailed) apply(s *State) {
	s.ErrorMessage = a.message
}
