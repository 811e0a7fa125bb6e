// ABOUTME: Bubbletea model for the sampler TUI
// ABOUTME: Renders engine status and turns key presses into note events
package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// keyboardMap lays a chromatic octave over the home row, C at "a".
var keyboardMap = map[string]int{
	"a": 0, "w": 1, "s": 2, "e": 3, "d": 4, "f": 5,
	"t": 6, "g": 7, "y": 8, "h": 9, "u": 10, "j": 11, "k": 12,
}

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Model represents the TUI state.
type Model struct {
	// Sprite
	ready       bool
	instruments []string

	// Selection
	instrument int
	octave     int

	// Playback
	activeVoices []string
	notesPlayed  int64
	lastNote     string

	noteCtrl *NoteControl

	// Dimensions
	width  int
	height int
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case StatusMsg:
		m.applyStatus(msg)
	}

	return m, nil
}

// View renders the TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	s := ""
	s += m.renderHeader()
	s += m.renderSelection()
	s += m.renderVoices()
	s += m.renderHelp()

	return s
}

func (m Model) renderHeader() string {
	status := "Loading sprite..."
	if m.ready {
		status = fmt.Sprintf("Ready (%d instruments)", len(m.instruments))
	}

	return fmt.Sprintf(`┌─ Notesprite ─────────────────────────────────────────┐
│ Status: %-45s │
├──────────────────────────────────────────────────────┤
`, status)
}

func (m Model) renderSelection() string {
	instrument := "(none)"
	if len(m.instruments) > 0 {
		instrument = m.instruments[m.instrument]
	}

	return fmt.Sprintf("│ Instrument: %-40s │\n│ Octave:     C%-39d │\n",
		truncate(instrument, 40), m.octave)
}

func (m Model) renderVoices() string {
	held := "(none)"
	if len(m.activeVoices) > 0 {
		held = strings.Join(m.activeVoices, ", ")
	}

	return fmt.Sprintf("│ Held:       %-40s │\n│ Played:     %-40d │\n│ Last:       %-40s │\n",
		truncate(held, 40), m.notesPlayed, m.lastNote)
}

func (m Model) renderHelp() string {
	return `├──────────────────────────────────────────────────────┤
│ a..k:Play  z/x:Octave  tab:Instrument  q:Quit        │
└──────────────────────────────────────────────────────┘
`
}

// handleKey handles keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "q", "ctrl+c":
		if m.noteCtrl != nil {
			select {
			case m.noteCtrl.Quit <- QuitMsg{}:
			default:
			}
		}
		return m, tea.Quit

	case "z":
		if m.octave > 0 {
			m.octave--
		}
		return m, nil

	case "x":
		if m.octave < 8 {
			m.octave++
		}
		return m, nil

	case "tab":
		if len(m.instruments) > 0 {
			m.instrument = (m.instrument + 1) % len(m.instruments)
		}
		return m, nil
	}

	if semitone, ok := keyboardMap[key]; ok && m.ready && len(m.instruments) > 0 {
		pitch := 12*(m.octave+1) + semitone
		if pitch > 127 {
			pitch = 127
		}

		m.notesPlayed++
		m.lastNote = fmt.Sprintf("%s%d", noteNames[semitone%12], m.octave+semitone/12)

		if m.noteCtrl != nil {
			select {
			case m.noteCtrl.Events <- NoteEvent{Instrument: m.instruments[m.instrument], Pitch: pitch}:
			default:
			}
		}
	}

	return m, nil
}

// applyStatus updates model from a status message.
func (m *Model) applyStatus(msg StatusMsg) {
	if msg.Ready != nil {
		m.ready = *msg.Ready
	}
	if msg.Instruments != nil {
		m.instruments = msg.Instruments
		if m.instrument >= len(m.instruments) {
			m.instrument = 0
		}
	}
	if msg.ActiveVoices != nil {
		m.activeVoices = msg.ActiveVoices
	}
}

// StatusMsg updates TUI state.
type StatusMsg struct {
	Ready        *bool
	Instruments  []string
	ActiveVoices []string
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length-3] + "..."
}
