// ABOUTME: Tests for TUI model and state management
// ABOUTME: Tests status updates, key handling, and note event emission
package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestNewModel(t *testing.T) {
	model := NewModel(nil) // NoteControl is optional for testing

	if model.ready {
		t.Error("expected ready to be false initially")
	}

	if model.octave != 4 {
		t.Errorf("expected default octave 4, got %d", model.octave)
	}

	if model.notesPlayed != 0 {
		t.Errorf("expected notesPlayed 0, got %d", model.notesPlayed)
	}
}

func TestStatusMsgReady(t *testing.T) {
	model := NewModel(nil)

	ready := true
	model.applyStatus(StatusMsg{
		Ready:       &ready,
		Instruments: []string{"guitar", "piano"},
	})

	if !model.ready {
		t.Error("expected ready to be true after status update")
	}

	if len(model.instruments) != 2 {
		t.Errorf("expected 2 instruments, got %d", len(model.instruments))
	}
}

func TestStatusMsgActiveVoices(t *testing.T) {
	model := NewModel(nil)

	model.applyStatus(StatusMsg{ActiveVoices: []string{"n1", "n2"}})

	if len(model.activeVoices) != 2 {
		t.Errorf("expected 2 active voices, got %d", len(model.activeVoices))
	}
}

func TestStatusMsgPartialUpdate(t *testing.T) {
	model := NewModel(nil)

	ready := true
	model.applyStatus(StatusMsg{Ready: &ready, Instruments: []string{"guitar"}})
	model.applyStatus(StatusMsg{ActiveVoices: []string{"n1"}})

	// Previous values should be retained
	if !model.ready {
		t.Error("ready state was lost on partial update")
	}

	if len(model.instruments) != 1 {
		t.Error("instruments were lost on partial update")
	}
}

func TestInstrumentSelectionClamped(t *testing.T) {
	model := NewModel(nil)

	model.applyStatus(StatusMsg{Instruments: []string{"guitar", "piano"}})
	model.instrument = 1

	// Shrinking the instrument list resets a stale selection.
	model.applyStatus(StatusMsg{Instruments: []string{"guitar"}})

	if model.instrument != 0 {
		t.Errorf("expected selection reset to 0, got %d", model.instrument)
	}
}

func TestOctaveKeys(t *testing.T) {
	model := NewModel(nil)

	updated, _ := model.Update(keyMsg("x"))
	model = updated.(Model)
	if model.octave != 5 {
		t.Errorf("expected octave 5 after x, got %d", model.octave)
	}

	updated, _ = model.Update(keyMsg("z"))
	model = updated.(Model)
	if model.octave != 4 {
		t.Errorf("expected octave 4 after z, got %d", model.octave)
	}
}

func TestOctaveBounds(t *testing.T) {
	model := NewModel(nil)
	model.octave = 0

	updated, _ := model.Update(keyMsg("z"))
	model = updated.(Model)
	if model.octave != 0 {
		t.Errorf("octave should not go below 0, got %d", model.octave)
	}

	model.octave = 8
	updated, _ = model.Update(keyMsg("x"))
	model = updated.(Model)
	if model.octave != 8 {
		t.Errorf("octave should not exceed 8, got %d", model.octave)
	}
}

func TestTabCyclesInstruments(t *testing.T) {
	model := NewModel(nil)
	model.applyStatus(StatusMsg{Instruments: []string{"guitar", "piano"}})

	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyTab})
	model = updated.(Model)
	if model.instrument != 1 {
		t.Errorf("expected instrument 1 after tab, got %d", model.instrument)
	}

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyTab})
	model = updated.(Model)
	if model.instrument != 0 {
		t.Errorf("expected wrap to instrument 0, got %d", model.instrument)
	}
}

func TestNoteKeyEmitsEvent(t *testing.T) {
	ctrl := NewNoteControl()
	model := NewModel(ctrl)

	ready := true
	model.applyStatus(StatusMsg{Ready: &ready, Instruments: []string{"guitar"}})

	updated, _ := model.Update(keyMsg("a"))
	model = updated.(Model)

	select {
	case ev := <-ctrl.Events:
		if ev.Instrument != "guitar" {
			t.Errorf("event instrument = %q, want guitar", ev.Instrument)
		}
		// Octave 4, semitone 0: middle C
		if ev.Pitch != 60 {
			t.Errorf("event pitch = %d, want 60", ev.Pitch)
		}
	default:
		t.Fatal("expected a note event")
	}

	if model.notesPlayed != 1 {
		t.Errorf("notesPlayed = %d, want 1", model.notesPlayed)
	}
}

func TestNoteKeyIgnoredWhenNotReady(t *testing.T) {
	ctrl := NewNoteControl()
	model := NewModel(ctrl)

	updated, _ := model.Update(keyMsg("a"))
	model = updated.(Model)

	select {
	case <-ctrl.Events:
		t.Fatal("no event expected before the sprite is ready")
	default:
	}

	if model.notesPlayed != 0 {
		t.Errorf("notesPlayed = %d, want 0", model.notesPlayed)
	}
}

func TestQuitSignalsControl(t *testing.T) {
	ctrl := NewNoteControl()
	model := NewModel(ctrl)

	_, cmd := model.Update(keyMsg("q"))
	if cmd == nil {
		t.Error("expected quit command")
	}

	select {
	case <-ctrl.Quit:
	default:
		t.Error("expected quit signal on control channel")
	}
}

func TestTruncateFunction(t *testing.T) {
	tests := []struct {
		input    string
		maxLen   int
		expected string
	}{
		{"short", 10, "short"},
		{"this is longer than allowed", 10, "this is..."},
		{"", 10, ""},
		{"abcd", 4, "abcd"},
		{"abcde", 4, "a..."},
	}

	for _, tt := range tests {
		result := truncate(tt.input, tt.maxLen)
		if result != tt.expected {
			t.Errorf("truncate(%q, %d) = %q, expected %q",
				tt.input, tt.maxLen, result, tt.expected)
		}
	}
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
