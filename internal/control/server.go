// ABOUTME: WebSocket endpoint for remote note-on/note-off requests
// ABOUTME: Routes control messages to the playback engine
package control

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/notesprite/notesprite-go/internal/engine"
	"github.com/notesprite/notesprite-go/internal/version"
)

// Noter is the slice of the engine the control server drives.
type Noter interface {
	NoteOn(instrument string, pitch int, params engine.NoteParams) error
	NoteOff(id string) bool
	Ready() bool
}

// Config holds control server configuration.
type Config struct {
	// Port to listen on (default: 8937).
	Port int

	// Name of the server for identification.
	Name string

	// Instruments advertised in the handshake and readiness broadcast.
	Instruments []string
}

// Server accepts WebSocket connections and forwards note events to the
// engine. One engine, many clients; requests from all clients are serialized
// through the engine's own synchronization.
type Server struct {
	config   Config
	serverID string
	noter    Noter

	upgrader   websocket.Upgrader
	httpServer *http.Server
	mux        *http.ServeMux

	clients   map[string]*client
	clientsMu sync.RWMutex

	stopChan chan struct{}
	stopOnce sync.Once
}

// client represents one connected controller.
type client struct {
	ID   string
	Name string
	Conn *websocket.Conn

	writeMu sync.Mutex
}

func (c *client) send(msg Message) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.Conn.WriteJSON(msg)
}

// NewServer creates a control server for the given engine.
func NewServer(config Config, noter Noter) *Server {
	if config.Port == 0 {
		config.Port = 8937
	}
	if config.Name == "" {
		config.Name = "notesprite"
	}

	mux := http.NewServeMux()

	s := &Server{
		config:   config,
		serverID: uuid.New().String(),
		noter:    noter,
		mux:      mux,
		upgrader: websocket.Upgrader{
			// Local-network instrument control, accept all origins.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients:  make(map[string]*client),
		stopChan: make(chan struct{}),
	}

	mux.HandleFunc("/notesprite", s.handleWebSocket)

	return s
}

// Start runs the HTTP server until Stop is called.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)
	log.Printf("Control server %s listening on %s", s.serverID, addr)

	s.httpServer = &http.Server{Addr: addr, Handler: s.mux}

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case <-s.stopChan:
	case err := <-errChan:
		return fmt.Errorf("control server error: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Printf("Control server shutdown error: %v", err)
	}

	log.Printf("Control server stopped")
	return nil
}

// Stop shuts the server down.
func (s *Server) Stop() {
	s.stopOnce.Do(func() { close(s.stopChan) })
}

// Handler exposes the server's HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// BroadcastReady tells every connected client the sprite finished loading.
func (s *Server) BroadcastReady() {
	msg := Message{
		Type:    "sprite/ready",
		Payload: SpriteReady{Instruments: s.config.Instruments},
	}

	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()

	for _, c := range s.clients {
		if err := c.send(msg); err != nil {
			log.Printf("Failed to send sprite/ready to %s: %v", c.ID, err)
		}
	}
}

// handleWebSocket upgrades a connection and processes its messages.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	c := &client{
		ID:   uuid.New().String(),
		Conn: conn,
	}

	s.clientsMu.Lock()
	s.clients[c.ID] = c
	s.clientsMu.Unlock()

	log.Printf("Client connected: %s", c.ID)

	defer func() {
		s.clientsMu.Lock()
		delete(s.clients, c.ID)
		s.clientsMu.Unlock()
		conn.Close()
		log.Printf("Client disconnected: %s", c.ID)
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		s.handleMessage(c, data)
	}
}

// handleMessage routes one JSON control message.
func (s *Server) handleMessage(c *client, data []byte) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Printf("Failed to parse message from %s: %v", c.ID, err)
		s.sendError(c, "", "malformed message")
		return
	}

	payloadBytes, _ := json.Marshal(msg.Payload)

	switch msg.Type {
	case "client/hello":
		var hello ClientHello
		json.Unmarshal(payloadBytes, &hello)
		c.Name = hello.Name

		reply := Message{
			Type: "server/hello",
			Payload: ServerHello{
				ServerID:    s.serverID,
				Name:        s.config.Name,
				Version:     version.Version,
				Ready:       s.noter.Ready(),
				Instruments: s.config.Instruments,
			},
		}
		if err := c.send(reply); err != nil {
			log.Printf("Failed to send server/hello to %s: %v", c.ID, err)
		}

	case "note/on":
		var req NoteOnRequest
		if err := json.Unmarshal(payloadBytes, &req); err != nil {
			s.sendError(c, "note/on", "malformed payload")
			return
		}

		err := s.noter.NoteOn(req.Instrument, req.Pitch, engine.NoteParams{
			ID:       req.ID,
			Duration: req.Duration,
			Hold:     req.Hold,
			Volume:   req.Volume,
			Delay:    req.Delay,
		})
		if err != nil {
			s.sendError(c, "note/on", err.Error())
		}

	case "note/off":
		var req NoteOffRequest
		if err := json.Unmarshal(payloadBytes, &req); err != nil {
			s.sendError(c, "note/off", "malformed payload")
			return
		}
		// A stale id is an expected soft miss; the engine logs it.
		s.noter.NoteOff(req.ID)

	default:
		log.Printf("Unknown message type from %s: %s", c.ID, msg.Type)
	}
}

func (s *Server) sendError(c *client, request, message string) {
	msg := Message{
		Type:    "server/error",
		Payload: ErrorReply{Request: request, Message: message},
	}
	if err := c.send(msg); err != nil {
		log.Printf("Failed to send error to %s: %v", c.ID, err)
	}
}
