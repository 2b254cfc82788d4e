// Package ui provides the interactive terminal interface.
//
// The model never changes the task list itself: key presses become store
// actions run as commands, and the model redraws from the snapshots the
// store publishes.
package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todoapp/internal/output"
	"todoapp/internal/service"
	"todoapp/internal/store"
)

// Run starts the TUI against svc and blocks until the user quits or ctx is
// cancelled.
func Run(ctx context.Context, svc service.Service) error {
	if !output.IsTerminal(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	renderer := store.NewChanRenderer()
	// Deletes are confirmed by the model's own y/n dialog before the store
	// is asked, so the store may proceed unconditionally.
	s := store.New(svc, store.WithRenderer(renderer), store.WithConfirmer(store.AlwaysConfirm))
	m := newModel(ctx, s, renderer.States())

	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

type mode int

const (
	modeList mode = iota
	modeAdd
	modeConfirmDelete
)

// stateMsg carries a store snapshot.
type stateMsg store.State

// actionDoneMsg reports the outcome of a store action.
type actionDoneMsg struct {
	err error
}

// submitDoneMsg reports the outcome of a create.
type submitDoneMsg struct {
	err error
}

type model struct {
	ctx    context.Context
	store  *store.Store
	states <-chan store.State

	state  store.State
	cursor int
	mode   mode
	notice string

	title       textinput.Model
	description textinput.Model
	spinner     spinner.Model

	pendingDelete service.Task
	// submitting is set while a create is in flight; the form ignores
	// input until it completes.
	submitting bool
}

func newModel(ctx context.Context, s *store.Store, states <-chan store.State) *model {
	title := textinput.New()
	title.Placeholder = "Todo title..."
	title.CharLimit = 200

	description := textinput.New()
	description.Placeholder = "Description (optional)..."
	description.CharLimit = 500

	return &model{
		ctx:         ctx,
		store:       s,
		states:      states,
		state:       s.State(),
		title:       title,
		description: description,
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(
		waitForState(m.states),
		m.run(m.store.Refresh),
		m.spinner.Tick,
	)
}

func waitForState(ch <-chan store.State) tea.Cmd {
	return func() tea.Msg {
		st, ok := <-ch
		if !ok {
			return nil
		}
		return stateMsg(st)
	}
}

// run executes a store action off the update loop.
func (m *model) run(fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return actionDoneMsg{err: fn(m.ctx)}
	}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		m.state = store.State(msg)
		m.clampCursor()
		return m, waitForState(m.states)
	case actionDoneMsg:
		m.noteValidation(msg.err)
		return m, nil
	case submitDoneMsg:
		m.submitting = false
		if msg.err == nil {
			m.closeForm(true)
			return m, nil
		}
		m.noteValidation(msg.err)
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		switch m.mode {
		case modeAdd:
			return m.updateAdd(msg)
		case modeConfirmDelete:
			return m.updateConfirm(msg)
		default:
			return m.updateList(msg)
		}
	}
	return m, nil
}

func (m *model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "j", "down":
		if m.cursor < len(m.state.Tasks)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "r", "f5":
		return m, m.run(m.store.Refresh)
	case "1":
		return m, m.setFilter(service.FilterAll)
	case "2":
		return m, m.setFilter(service.FilterIncomplete)
	case "3":
		return m, m.setFilter(service.FilterCompleted)
	case " ", "x":
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		return m, m.run(func(ctx context.Context) error {
			return m.store.ToggleCompletion(ctx, task)
		})
	case "d":
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.pendingDelete = task
		m.mode = modeConfirmDelete
	case "a":
		m.mode = modeAdd
		m.title.SetValue(m.state.PendingTitle)
		m.description.SetValue(m.state.PendingDescription)
		m.description.Blur()
		return m, m.title.Focus()
	}
	return m, nil
}

func (m *model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = modeList
	switch msg.String() {
	case "y", "Y":
		id := m.pendingDelete.ID
		return m, m.run(func(ctx context.Context) error {
			_, err := m.store.RemoveTask(ctx, id)
			return err
		})
	}
	return m, nil
}

func (m *model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.submitting {
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.closeForm(false)
		return m, nil
	case "tab", "shift+tab":
		if m.title.Focused() {
			m.title.Blur()
			return m, m.description.Focus()
		}
		m.description.Blur()
		return m, m.title.Focus()
	case "enter":
		m.notice = ""
		m.submitting = true
		m.store.SetDraft(m.title.Value(), m.description.Value())
		return m, func() tea.Msg {
			return submitDoneMsg{err: m.store.SubmitDraft(m.ctx)}
		}
	}

	var cmd tea.Cmd
	if m.title.Focused() {
		m.title, cmd = m.title.Update(msg)
	} else {
		m.description, cmd = m.description.Update(msg)
	}
	m.store.SetDraft(m.title.Value(), m.description.Value())
	return m, cmd
}

func (m *model) setFilter(f service.Filter) tea.Cmd {
	m.cursor = 0
	return m.run(func(ctx context.Context) error {
		return m.store.SetFilter(ctx, f)
	})
}

// closeForm leaves add mode. After a successful create the inputs are
// emptied; otherwise they keep the draft.
func (m *model) closeForm(submitted bool) {
	m.mode = modeList
	m.title.Blur()
	m.description.Blur()
	if submitted {
		m.title.Reset()
		m.description.Reset()
	}
}

// noteValidation shows locally rejected input. Remote failures arrive
// through the store's ErrorMessage instead.
func (m *model) noteValidation(err error) {
	if service.IsValidation(err) {
		m.notice = err.Error()
	}
}

func (m *model) selected() (service.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.state.Tasks) {
		return service.Task{}, false
	}
	return m.state.Tasks[m.cursor], true
}

func (m *model) clampCursor() {
	if m.cursor >= len(m.state.Tasks) {
		m.cursor = len(m.state.Tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("My Todo App") + "\n\n")

	if m.state.ErrorMessage != "" {
		b.WriteString(errorStyle.Render(m.state.ErrorMessage) + "\n\n")
	}
	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice) + "\n\n")
	}

	writeTabs(&b, m.state.Filter)

	switch {
	case m.state.IsLoading:
		b.WriteString(m.spinner.View() + " Loading...\n")
	case len(m.state.Tasks) == 0:
		b.WriteString("No todos yet. Press a to add one.\n")
	default:
		for i, task := range m.state.Tasks {
			b.WriteString(formatTask(task, i == m.cursor))
		}
	}
	b.WriteString("\n")

	switch m.mode {
	case modeAdd:
		b.WriteString("New todo\n")
		b.WriteString("  " + m.title.View() + "\n")
		b.WriteString("  " + m.description.View() + "\n\n")
		if m.submitting {
			b.WriteString(m.spinner.View() + " Saving...\n")
		} else {
			b.WriteString(footerStyle.Render("enter add | tab switch field | esc cancel") + "\n")
		}
	case modeConfirmDelete:
		b.WriteString(fmt.Sprintf("%s (%s) [y/N]\n", store.ConfirmDeleteMessage, m.pendingDelete.Title))
	default:
		b.WriteString(footerStyle.Render("a add | space toggle | d delete | 1 all | 2 active | 3 completed | r refresh | q quit") + "\n")
	}
	return b.String()
}

func writeTabs(b *strings.Builder, active service.Filter) {
	tabs := make([]string, 0, len(service.Filters))
	for i, f := range service.Filters {
		label := fmt.Sprintf("%d %s", i+1, output.FilterTitle(f))
		if f == active {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	b.WriteString(strings.Join(tabs, "   ") + "\n\n")
}

func formatTask(task service.Task, selected bool) string {
	box := "[ ]"
	title := task.Title
	if task.Completed {
		box = "[x]"
		title = doneStyle.Render(title)
	}
	line := fmt.Sprintf("%s %s", box, title)
	if selected {
		line = cursorStyle.Render(line)
	}
	line = "  " + line + "\n"
	if task.Description != "" {
		line += "      " + descStyle.Render(task.Description) + "\n"
	}
	return line
}
