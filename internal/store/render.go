package store

// Renderer receives a snapshot after every state change.
// Render is called with the store locked: it must not block and must not
// call back into the store.
type Renderer interface {
	Render(State)
}

// NopRenderer discards every snapshot.
type NopRenderer struct{}

// Render implements Renderer.
func (NopRenderer) Render(State) {}

// ChanRenderer publishes snapshots on a channel that holds only the most
// recent one. A slow reader skips intermediate states but never sees them
// out of order.
type ChanRenderer struct {
	ch chan State
}

// NewChanRenderer creates a ChanRenderer.
func NewChanRenderer() *ChanRenderer {
	return &ChanRenderer{ch: make(chan State, 1)}
}

// Render implements Renderer.
func (r *ChanRenderer) Render(s State) {
	for {
		select {
		case r.ch <- s:
			return
		default:
		}
		select {
		case <-r.ch:
		default:
		}
	}
}

// States returns the channel snapshots are published on.
func (r *ChanRenderer) States() <-chan State {
	return r.ch
}

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(message string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(message string) bool

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(message string) bool { return f(message) }

// AlwaysConfirm approves every prompt. Used when the user has already
// answered, e.g. with --yes or in a TUI dialog.
var AlwaysConfirm Confirmer = ConfirmFunc(func(string) bool { return true })

// NeverConfirm declines every prompt.
var NeverConfirm Confirmer = ConfirmFunc(func(string) bool { return false })
