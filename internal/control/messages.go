// ABOUTME: Control protocol message type definitions
// ABOUTME: JSON envelope and payloads for remote note-on/note-off requests
package control

// Message is the top-level wrapper for all control messages.
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// ClientHello is sent by clients to initiate the handshake.
type ClientHello struct {
	Name string `json:"name"`
}

// ServerHello is the server's response to client/hello.
type ServerHello struct {
	ServerID    string   `json:"server_id"`
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Ready       bool     `json:"ready"`
	Instruments []string `json:"instruments,omitempty"`
}

// NoteOnRequest asks the engine to start a note.
type NoteOnRequest struct {
	Instrument string  `json:"instrument"`
	Pitch      int     `json:"pitch"`
	ID         string  `json:"id,omitempty"`
	Duration   float64 `json:"duration,omitempty"`
	Hold       bool    `json:"hold,omitempty"`
	Volume     float64 `json:"volume,omitempty"`
	Delay      float64 `json:"delay,omitempty"`
}

// NoteOffRequest asks the engine to stop a held note.
type NoteOffRequest struct {
	ID string `json:"id"`
}

// SpriteReady is broadcast once the sprite asset and catalog are installed.
type SpriteReady struct {
	Instruments []string `json:"instruments"`
}

// ErrorReply reports a failed request back to the requesting client.
type ErrorReply struct {
	Request string `json:"request"`
	Message string `json:"message"`
}
