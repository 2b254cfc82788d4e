package store_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"todoapp/internal/service"
	"todoapp/internal/store"
	"todoapp/internal/testutil"
)

var errBoom = &service.RemoteError{Op: "test", StatusCode: 500, Err: errors.New("boom")}

// recorder collects every rendered snapshot.
type recorder struct {
	mu     sync.Mutex
	states []store.State
}

func (r *recorder) Render(s store.State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s)
}

func (r *recorder) all() []store.State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]store.State(nil), r.states...)
}

func TestNew_InitialState(t *testing.T) {
	s := store.New(testutil.NewFakeService())
	st := s.State()
	if st.Filter != service.FilterAll {
		t.Errorf("expected filter all, got %q", st.Filter)
	}
	if st.Tasks == nil || len(st.Tasks) != 0 {
		t.Errorf("expected empty task list, got %#v", st.Tasks)
	}
	if st.IsLoading || st.ErrorMessage != "" {
		t.Errorf("unexpected flags: %+v", st)
	}
}

func TestRefresh_ReplacesTasks(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("1", "Write spec", "", false)
	svc.AddTask("2", "Ship", "", true)
	rec := &recorder{}
	s := store.New(svc, store.WithRenderer(rec))

	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	st := s.State()
	if len(st.Tasks) != 2 || st.Tasks[0].Title != "Write spec" {
		t.Errorf("unexpected tasks %+v", st.Tasks)
	}
	if st.IsLoading {
		t.Error("expected loading to be cleared")
	}

	states := rec.all()
	if len(states) != 2 {
		t.Fatalf("expected 2 renders, got %d", len(states))
	}
	if !states[0].IsLoading {
		t.Error("expected first render to show loading")
	}
	if states[1].IsLoading {
		t.Error("expected final render to clear loading")
	}
}

func TestRefresh_FailureKeepsTasks(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("1", "Write spec", "", false)
	s := store.New(svc)
	ctx := context.Background()

	if err := s.Refresh(ctx); err != nil {
		t.Fatal(err)
	}
	before := s.State().Tasks

	svc.ListTasksErr[service.FilterAll] = errBoom
	err := s.Refresh(ctx)
	if !service.IsRemote(err) {
		t.Fatalf("expected remote error, got %v", err)
	}

	st := s.State()
	if len(st.Tasks) != len(before) || st.Tasks[0] != before[0] {
		t.Errorf("expected tasks unchanged, got %+v", st.Tasks)
	}
	if st.ErrorMessage != store.MsgFetchFailed {
		t.Errorf("expected fetch error message, got %q", st.ErrorMessage)
	}
	if st.IsLoading {
		t.Error("expected loading to be cleared after failure")
	}
}

func TestRefresh_ClearsErrorAtStart(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ListTasksErr[service.FilterAll] = errBoom
	rec := &recorder{}
	s := store.New(svc, store.WithRenderer(rec))
	ctx := context.Background()

	s.Refresh(ctx)
	delete(svc.ListTasksErr, service.FilterAll)
	if err := s.Refresh(ctx); err != nil {
		t.Fatal(err)
	}

	states := rec.all()
	// third render is the start of the second refresh
	if states[2].ErrorMessage != "" || !states[2].IsLoading {
		t.Errorf("expected error cleared at refresh start, got %+v", states[2])
	}
	if s.State().ErrorMessage != "" {
		t.Errorf("expected no error, got %q", s.State().ErrorMessage)
	}
}

func TestSetFilter_CompletedFetchesOnce(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("1", "Open", "", false)
	svc.AddTask("2", "Done", "", true)
	s := store.New(svc)

	if err := s.SetFilter(context.Background(), service.FilterCompleted); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	calls := svc.Calls()
	if len(calls) != 1 || calls[0].Method != "ListTasks" || calls[0].Filter != service.FilterCompleted {
		t.Fatalf("expected exactly one completed fetch, got %+v", calls)
	}
	st := s.State()
	if st.Filter != service.FilterCompleted {
		t.Errorf("expected filter completed, got %q", st.Filter)
	}
	if len(st.Tasks) != 1 || st.Tasks[0].ID != "2" {
		t.Errorf("unexpected tasks %+v", st.Tasks)
	}
}

func TestSetFilter_BogusFailsWithoutNetwork(t *testing.T) {
	svc := testutil.NewFakeService()
	s := store.New(svc)

	err := s.SetFilter(context.Background(), service.Filter("bogus"))
	if !service.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(svc.Calls()) != 0 {
		t.Errorf("expected no calls, got %+v", svc.Calls())
	}
	if s.State().Filter != service.FilterAll {
		t.Errorf("expected filter unchanged, got %q", s.State().Filter)
	}
	if s.State().ErrorMessage != "" {
		t.Errorf("validation must not set ErrorMessage, got %q", s.State().ErrorMessage)
	}
}

func TestSubmitNewTask_EmptyTitle(t *testing.T) {
	for _, title := range []string{"", "   ", "\t\n"} {
		svc := testutil.NewFakeService()
		s := store.New(svc)
		s.SetDraft("keep me", "and me")

		err := s.SubmitNewTask(context.Background(), title, "desc")
		if !service.IsValidation(err) {
			t.Fatalf("title %q: expected validation error, got %v", title, err)
		}
		if len(svc.Calls()) != 0 {
			t.Errorf("title %q: expected no network call, got %+v", title, svc.Calls())
		}
		st := s.State()
		if st.PendingTitle != "keep me" || st.PendingDescription != "and me" {
			t.Errorf("title %q: draft changed to %q/%q", title, st.PendingTitle, st.PendingDescription)
		}
		if st.ErrorMessage != "" {
			t.Errorf("title %q: validation must not set ErrorMessage", title)
		}
	}
}

func TestSubmitNewTask_SuccessClearsDraftAndRefreshesOnce(t *testing.T) {
	for _, desc := range []string{"buy milk", ""} {
		svc := testutil.NewFakeService()
		s := store.New(svc)
		s.SetDraft("Groceries", desc)

		if err := s.SubmitDraft(context.Background()); err != nil {
			t.Fatalf("desc %q: expected no error, got %v", desc, err)
		}

		st := s.State()
		if st.PendingTitle != "" || st.PendingDescription != "" {
			t.Errorf("desc %q: expected draft cleared, got %q/%q", desc, st.PendingTitle, st.PendingDescription)
		}
		if n := svc.CallCount("ListTasks"); n != 1 {
			t.Errorf("desc %q: expected exactly one refresh, got %d", desc, n)
		}
		calls := svc.Calls()
		if calls[0].Method != "CreateTask" || calls[0].New.Description != desc {
			t.Errorf("desc %q: unexpected first call %+v", desc, calls[0])
		}
	}
}

func TestSubmitNewTask_TrimsInput(t *testing.T) {
	svc := testutil.NewFakeService()
	s := store.New(svc)

	if err := s.SubmitNewTask(context.Background(), "  Title  ", "  Desc "); err != nil {
		t.Fatal(err)
	}
	got := svc.Calls()[0].New
	if got.Title != "Title" || got.Description != "Desc" {
		t.Errorf("expected trimmed input, got %+v", got)
	}
}

func TestSubmitNewTask_FailureKeepsDraft(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.CreateTaskErr = errBoom
	s := store.New(svc)
	s.SetDraft("Groceries", "buy milk")

	err := s.SubmitDraft(context.Background())
	if !service.IsRemote(err) {
		t.Fatalf("expected remote error, got %v", err)
	}
	st := s.State()
	if st.PendingTitle != "Groceries" || st.PendingDescription != "buy milk" {
		t.Errorf("expected draft kept, got %q/%q", st.PendingTitle, st.PendingDescription)
	}
	if st.ErrorMessage != store.MsgCreateFailed {
		t.Errorf("expected create error message, got %q", st.ErrorMessage)
	}
	if svc.CallCount("ListTasks") != 0 {
		t.Error("expected no refresh after failed create")
	}
}

func TestToggleCompletion_NegatesOnlyCompleted(t *testing.T) {
	for _, completed := range []bool{false, true} {
		svc := testutil.NewFakeService()
		svc.AddTask("5", "Title", "Desc", completed)
		s := store.New(svc)
		task := service.Task{ID: "5", Title: "Title", Description: "Desc", Completed: completed}

		if err := s.ToggleCompletion(context.Background(), task); err != nil {
			t.Fatal(err)
		}

		calls := svc.Calls()
		if calls[0].Method != "UpdateTask" {
			t.Fatalf("expected update first, got %+v", calls)
		}
		want := task
		want.Completed = !completed
		if calls[0].Task != want {
			t.Errorf("expected update %+v, got %+v", want, calls[0].Task)
		}
		if svc.CallCount("ListTasks") != 1 {
			t.Errorf("expected one refresh, got %d", svc.CallCount("ListTasks"))
		}
		if got := s.State().Tasks[0].Completed; got != !completed {
			t.Errorf("expected refreshed task completed=%v, got %v", !completed, got)
		}
	}
}

func TestToggleCompletion_FailureLeavesTasks(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("5", "Title", "", false)
	s := store.New(svc)
	ctx := context.Background()
	if err := s.Refresh(ctx); err != nil {
		t.Fatal(err)
	}
	svc.UpdateTaskErr = errBoom
	svc.ResetCalls()

	err := s.ToggleCompletion(ctx, s.State().Tasks[0])
	if !service.IsRemote(err) {
		t.Fatalf("expected remote error, got %v", err)
	}
	st := s.State()
	if st.Tasks[0].Completed {
		t.Error("task must not be flipped locally")
	}
	if st.ErrorMessage != store.MsgUpdateFailed {
		t.Errorf("expected update error message, got %q", st.ErrorMessage)
	}
	if svc.CallCount("ListTasks") != 0 {
		t.Error("expected no refresh after failed update")
	}
}

func TestRemoveTask_Declined(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("1", "Keep", "", false)
	var asked string
	s := store.New(svc, store.WithConfirmer(store.ConfirmFunc(func(msg string) bool {
		asked = msg
		return false
	})))

	removed, err := s.RemoveTask(context.Background(), "1")
	if err != nil || removed {
		t.Fatalf("expected declined delete, got removed=%v err=%v", removed, err)
	}
	if asked != store.ConfirmDeleteMessage {
		t.Errorf("expected confirmation prompt, got %q", asked)
	}
	if len(svc.Calls()) != 0 {
		t.Errorf("expected no calls, got %+v", svc.Calls())
	}
}

func TestRemoveTask_DefaultDeclines(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("1", "Keep", "", false)
	s := store.New(svc)

	removed, err := s.RemoveTask(context.Background(), "1")
	if err != nil || removed {
		t.Fatalf("expected store without confirmer to decline, got removed=%v err=%v", removed, err)
	}
}

func TestRemoveTask_ConfirmedDeletesAndRefreshes(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("1", "Gone", "", false)
	svc.AddTask("2", "Stays", "", false)
	s := store.New(svc, store.WithConfirmer(store.AlwaysConfirm))

	removed, err := s.RemoveTask(context.Background(), "1")
	if err != nil || !removed {
		t.Fatalf("expected delete, got removed=%v err=%v", removed, err)
	}
	calls := svc.Calls()
	if len(calls) != 2 || calls[0].Method != "DeleteTask" || calls[1].Method != "ListTasks" {
		t.Fatalf("expected delete then refresh, got %+v", calls)
	}
	st := s.State()
	if len(st.Tasks) != 1 || st.Tasks[0].ID != "2" {
		t.Errorf("unexpected tasks %+v", st.Tasks)
	}
}

func TestRemoveTask_Failure(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.DeleteTaskErr = errBoom
	s := store.New(svc, store.WithConfirmer(store.AlwaysConfirm))

	removed, err := s.RemoveTask(context.Background(), "1")
	if !removed || !service.IsRemote(err) {
		t.Fatalf("expected attempted delete with remote error, got removed=%v err=%v", removed, err)
	}
	if s.State().ErrorMessage != store.MsgDeleteFailed {
		t.Errorf("expected delete error message, got %q", s.State().ErrorMessage)
	}
}

func TestWrite_ClearsPreviousError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ListTasksErr[service.FilterAll] = errBoom
	s := store.New(svc)
	ctx := context.Background()
	s.Refresh(ctx)
	if s.State().ErrorMessage == "" {
		t.Fatal("expected error after failed refresh")
	}
	delete(svc.ListTasksErr, service.FilterAll)

	if err := s.SubmitNewTask(ctx, "x", ""); err != nil {
		t.Fatal(err)
	}
	if s.State().ErrorMessage != "" {
		t.Errorf("expected error cleared, got %q", s.State().ErrorMessage)
	}
}

func TestEndToEnd_SubmitThenList(t *testing.T) {
	svc := testutil.NewFakeService()
	s := store.New(svc)
	ctx := context.Background()

	st := s.State()
	if len(st.Tasks) != 0 || st.Filter != service.FilterAll {
		t.Fatalf("unexpected start state %+v", st)
	}

	if err := s.SubmitNewTask(ctx, "Write spec", ""); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	st = s.State()
	want := service.Task{ID: "1", Title: "Write spec", Description: "", Completed: false}
	if len(st.Tasks) != 1 || st.Tasks[0] != want {
		t.Errorf("expected [%+v], got %+v", want, st.Tasks)
	}
	if st.ErrorMessage != "" {
		t.Errorf("expected no error, got %q", st.ErrorMessage)
	}
}

func TestRefresh_SupersededResponseDiscarded(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("1", "Open", "", false)
	svc.AddTask("2", "Done", "", true)

	entered := make(chan struct{})
	release := make(chan struct{})
	svc.BeforeList = func(f service.Filter) {
		if f == service.FilterAll {
			close(entered)
			<-release
		}
	}

	s := store.New(svc)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- s.Refresh(ctx) }()
	<-entered

	if !s.State().IsLoading {
		t.Error("expected loading while the first refresh is in flight")
	}

	svc.BeforeList = nil
	if err := s.SetFilter(ctx, service.FilterCompleted); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("expected superseded refresh to report no error, got %v", err)
	}

	st := s.State()
	if st.Filter != service.FilterCompleted {
		t.Errorf("expected completed filter, got %q", st.Filter)
	}
	if len(st.Tasks) != 1 || st.Tasks[0].ID != "2" {
		t.Errorf("expected completed list to win, got %+v", st.Tasks)
	}
	if st.IsLoading {
		t.Error("expected loading cleared")
	}
}

func TestState_IsSnapshot(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("1", "Original", "", false)
	s := store.New(svc)
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	st := s.State()
	st.Tasks[0].Title = "mutated"
	if s.State().Tasks[0].Title != "Original" {
		t.Error("State must return a copy")
	}
}

func TestChanRenderer_KeepsLatest(t *testing.T) {
	r := store.NewChanRenderer()
	r.Render(store.State{ErrorMessage: "first"})
	r.Render(store.State{ErrorMessage: "second"})

	got := <-r.States()
	if got.ErrorMessage != "second" {
		t.Errorf("expected latest snapshot, got %q", got.ErrorMessage)
	}
	select {
	case extra := <-r.States():
		t.Errorf("expected no more snapshots, got %+v", extra)
	default:
	}
}
