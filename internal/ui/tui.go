// ABOUTME: TUI initialization and control
// ABOUTME: Wraps bubbletea program and the note event channels
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// NoteEvent is a note request triggered from the keyboard.
type NoteEvent struct {
	Instrument string
	Pitch      int
}

// QuitMsg signals the TUI is shutting down.
type QuitMsg struct{}

// NoteControl holds channels for note event communication.
type NoteControl struct {
	Events chan NoteEvent
	Quit   chan QuitMsg
}

// NewNoteControl creates a new note control handler.
func NewNoteControl() *NoteControl {
	return &NoteControl{
		Events: make(chan NoteEvent, 32),
		Quit:   make(chan QuitMsg, 1),
	}
}

// NewModel creates a new TUI model.
func NewModel(noteCtrl *NoteControl) Model {
	return Model{
		octave:   4,
		noteCtrl: noteCtrl,
	}
}

// Run starts the TUI.
func Run(noteCtrl *NoteControl) (*tea.Program, error) {
	p := tea.NewProgram(NewModel(noteCtrl), tea.WithAltScreen())
	return p, nil
}
