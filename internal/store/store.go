package store

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"todoapp/internal/service"
)

// Option configures a Store.
type Option func(*Store)

// WithRenderer sets the renderer notified after every change.
func WithRenderer(r Renderer) Option {
	return func(s *Store) {
		s.renderer = r
	}
}

// WithConfirmer sets the capability asked before a delete.
func WithConfirmer(c Confirmer) Option {
	return func(s *Store) {
		s.confirmer = c
	}
}

// Store owns the view state. It is safe for concurrent use; the lock is
// held only while an action is applied, never across a remote call.
type Store struct {
	svc       service.Service
	renderer  Renderer
	confirmer Confirmer

	mu    sync.Mutex
	state State
	// seq is the number of the most recently started refresh.
	seq uint64
}

// New creates a store with an empty list and the "all" filter.
// Without WithConfirmer every delete is declined.
func New(svc service.Service, opts ...Option) *Store {
	s := &Store{
		svc:       svc,
		renderer:  NopRenderer{},
		confirmer: NeverConfirm,
		state:     initialState(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns a snapshot of the current view state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// dispatch applies a and renders the result.
func (s *Store) dispatch(a action) {
	s.dispatchFor(0, a)
}

// dispatchFor applies a only if refresh seq is still the latest one
// started. seq 0 applies unconditionally.
func (s *Store) dispatchFor(seq uint64, a action) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != 0 && seq != s.seq {
		return false
	}
	a.apply(&s.state)
	s.renderer.Render(s.state.clone())
	return true
}

// SetFilter switches the filter and refreshes with it.
// An unknown filter is rejected without touching state or the network.
func (s *Store) SetFilter(ctx context.Context, f service.Filter) error {
	if !f.Valid() {
		return &service.ValidationError{Field: "filter", Message: fmt.Sprintf("invalid filter: %q", f)}
	}
	s.dispatch(filterChanged{filter: f})
	return s.Refresh(ctx)
}

// Refresh replaces the task list with the remote list for the current
// filter. On failure the previous list stays visible and ErrorMessage is
// set. A refresh overtaken by a newer one is discarded when it completes.
func (s *Store) Refresh(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	s.mu.Lock()
	s.seq++
	seq := s.seq
	filter := s.state.Filter
	refreshStarted{}.apply(&s.state)
	s.renderer.Render(s.state.clone())
	s.mu.Unlock()

	tasks, err := s.svc.ListTasks(ctx, filter)
	if err != nil {
		if !s.dispatchFor(seq, refreshFailed{}) {
			logger.Debug().Uint64("seq", seq).Msg("superseded refresh failed; ignored")
			return nil
		}
		logger.Warn().Err(err).Str("filter", string(filter)).Msg("refresh failed")
		return fmt.Errorf("refresh: %w", err)
	}
	if tasks == nil {
		tasks = []service.Task{}
	}

	if !s.dispatchFor(seq, refreshSucceeded{tasks: tasks}) {
		logger.Debug().Uint64("seq", seq).Str("filter", string(filter)).Msg("discarding superseded refresh")
		return nil
	}
	logger.Debug().Int("count", len(tasks)).Str("filter", string(filter)).Msg("refreshed")
	return nil
}

// SetDraft records the creation form input.
func (s *Store) SetDraft(title, description string) {
	s.dispatch(draftChanged{title: title, description: description})
}

// SubmitDraft submits the recorded draft.
func (s *Store) SubmitDraft(ctx context.Context) error {
	st := s.State()
	return s.SubmitNewTask(ctx, st.PendingTitle, st.PendingDescription)
}

// SubmitNewTask creates a task from trimmed input. An empty title is
// rejected locally. The draft is cleared only after the remote confirms the
// create; on failure it is kept so no input is lost.
func (s *Store) SubmitNewTask(ctx context.Context, title, description string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return &service.ValidationError{Field: "title", Message: "title required"}
	}

	s.dispatch(writeStarted{})
	_, err := s.svc.CreateTask(ctx, service.NewTask{
		Title:       title,
		Description: strings.TrimSpace(description),
	})
	if err != nil {
		s.writeFailed(ctx, "create", MsgCreateFailed, err)
		return fmt.Errorf("create task: %w", err)
	}

	s.dispatch(draftCleared{})
	return s.resyncAfterWrite(ctx)
}

// ToggleCompletion sends task back with Completed negated and every other
// field unchanged. The list is not flipped locally.
func (s *Store) ToggleCompletion(ctx context.Context, task service.Task) error {
	updated := task
	updated.Completed = !task.Completed

	s.dispatch(writeStarted{})
	if _, err := s.svc.UpdateTask(ctx, updated); err != nil {
		s.writeFailed(ctx, "update", MsgUpdateFailed, err)
		return fmt.Errorf("update task %s: %w", task.ID, err)
	}
	return s.resyncAfterWrite(ctx)
}

// RemoveTask deletes a task once the Confirmer approves.
// It reports whether a delete was attempted.
func (s *Store) RemoveTask(ctx context.Context, id service.TaskID) (bool, error) {
	if !s.confirmer.Confirm(ConfirmDeleteMessage) {
		zerolog.Ctx(ctx).Debug().Str("id", id.String()).Msg("delete declined")
		return false, nil
	}

	s.dispatch(writeStarted{})
	if err := s.svc.DeleteTask(ctx, id); err != nil {
		s.writeFailed(ctx, "delete", MsgDeleteFailed, err)
		return true, fmt.Errorf("delete task %s: %w", id, err)
	}
	return true, s.resyncAfterWrite(ctx)
}

// resyncAfterWrite is the only path from a confirmed write to the view:
// every successful write triggers exactly one full refresh.
func (s *Store) resyncAfterWrite(ctx context.Context) error {
	return s.Refresh(ctx)
}

func (s *Store) writeFailed(ctx context.Context, op, message string, err error) {
	zerolog.Ctx(ctx).Warn().Err(err).Str("op", op).Msg("write failed")
	s.dispatch(writeFailed{message: message})
}
