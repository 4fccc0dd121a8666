package hosttest

import "github.com/dshills/keymacs/internal/host"

// Host is a fake host.Context whose focus can be scripted.
type Host struct {
	editor  *Editor
	focused bool
}

var _ host.Context = (*Host)(nil)

// NewHost creates a focused host around ed.
func NewHost(ed *Editor) *Host {
	return &Host{editor: ed, focused: true}
}

// ActiveEditor implements host.Context.
func (h *Host) ActiveEditor() (host.Editor, bool) {
	if !h.focused || h.editor == nil {
		return nil, false
	}
	return h.editor, true
}

// SetFocused scripts a focus change.
func (h *Host) SetFocused(focused bool) {
	h.focused = focused
}

// SetEditor swaps the active editor, simulating an active-editor change.
func (h *Host) SetEditor(ed *Editor) {
	h.editor = ed
}

// Registry is a fake host.Registrar that records registrations.
type Registry struct {
	Commands []host.Command
}

var _ host.Registrar = (*Registry)(nil)

// Register implements host.Registrar.
func (r *Registry) Register(cmd host.Command) {
	r.Commands = append(r.Commands, cmd)
}

// Find returns the registered command with the given id.
func (r *Registry) Find(id string) (host.Command, bool) {
	for _, cmd := range r.Commands {
		if cmd.ID == id {
			return cmd, true
		}
	}
	return host.Command{}, false
}
