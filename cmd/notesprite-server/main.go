// ABOUTME: Entry point for the notesprite sampler server
// ABOUTME: Loads a sprite, starts the control endpoint, and runs the TUI
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/notesprite/notesprite-go/internal/control"
	"github.com/notesprite/notesprite-go/internal/discovery"
	"github.com/notesprite/notesprite-go/internal/engine"
	"github.com/notesprite/notesprite-go/internal/ui"
	"github.com/notesprite/notesprite-go/internal/version"
	"github.com/notesprite/notesprite-go/pkg/notesprite"
)

var (
	spritePath  = flag.String("sprite", "", "Path to the sprite audio file (wav, mp3, flac, ogg)")
	catalogPath = flag.String("catalog", "", "Path to the instrument catalog JSON")
	port        = flag.Int("port", 8937, "Port for the control endpoint")
	name        = flag.String("name", "", "Sampler friendly name (default: hostname-notesprite)")
	noMDNS      = flag.Bool("no-mdns", false, "Disable mDNS advertisement")
	logFile     = flag.String("log-file", "notesprite-server.log", "Log file path")
	noTUI       = flag.Bool("no-tui", false, "Disable TUI, use streaming logs instead")
)

func main() {
	flag.Parse()

	if *spritePath == "" || *catalogPath == "" {
		fmt.Fprintln(os.Stderr, "usage: notesprite-server -sprite <audio file> -catalog <catalog.json>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	useTUI := !*noTUI

	// Set up logging
	f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer func() { _ = f.Close() }()

	if useTUI {
		// TUI mode: log only to file
		log.SetOutput(f)
	} else {
		multiWriter := io.MultiWriter(os.Stdout, f)
		log.SetOutput(multiWriter)
	}

	// Determine sampler name
	samplerName := *name
	if samplerName == "" {
		hostname, err := os.Hostname()
		if err != nil {
			hostname = "unknown"
		}
		samplerName = fmt.Sprintf("%s-notesprite", hostname)
	}

	log.Printf("Starting %s %s: %s", version.Product, version.Version, samplerName)

	// TUI setup
	var tuiProg *tea.Program
	var noteCtrl *ui.NoteControl

	if useTUI {
		noteCtrl = ui.NewNoteControl()
		tuiProg, err = ui.Run(noteCtrl)
		if err != nil {
			log.Fatalf("Failed to start TUI: %v", err)
		}
		go tuiProg.Run()
	}

	updateTUI := func(msg ui.StatusMsg) {
		if tuiProg != nil {
			tuiProg.Send(msg)
		}
	}

	// Create the sampler and load the sprite
	sampler := notesprite.New(notesprite.Config{
		Name: samplerName,
		OnReady: func(instruments []string) {
			ready := true
			updateTUI(ui.StatusMsg{Ready: &ready, Instruments: instruments})
		},
		OnError: func(err error) {
			log.Printf("Sampler error: %v", err)
		},
	})

	if err := sampler.Load(*spritePath, *catalogPath); err != nil {
		log.Fatalf("Failed to load sprite: %v", err)
	}

	// Control endpoint for remote note requests
	ctrlServer := control.NewServer(control.Config{
		Port:        *port,
		Name:        samplerName,
		Instruments: sampler.Instruments(),
	}, samplerEngine{sampler})

	go func() {
		if err := ctrlServer.Start(); err != nil {
			log.Fatalf("Control server failed: %v", err)
		}
	}()
	ctrlServer.BroadcastReady()

	// Advertise the control endpoint on the local network
	var disc *discovery.Manager
	if !*noMDNS {
		disc = discovery.NewManager(discovery.Config{
			ServiceName: samplerName,
			Port:        *port,
		})
		if err := disc.Advertise(); err != nil {
			log.Printf("mDNS advertisement failed: %v", err)
		}
	}

	// Play notes triggered from the TUI keyboard
	if noteCtrl != nil {
		go func() {
			for ev := range noteCtrl.Events {
				if err := sampler.Play(ev.Instrument, ev.Pitch, notesprite.Note{}); err != nil {
					log.Printf("TUI note failed: %v", err)
				}
			}
		}()
	}

	// Keep the TUI's held-note list current
	if tuiProg != nil {
		go func() {
			ticker := time.NewTicker(250 * time.Millisecond)
			defer ticker.Stop()
			for range ticker.C {
				updateTUI(ui.StatusMsg{ActiveVoices: sampler.ActiveNotes()})
			}
		}()
	}

	// Handle shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	if noteCtrl != nil {
		select {
		case <-noteCtrl.Quit:
			log.Printf("Received quit signal from TUI")
		case <-sigChan:
			log.Printf("Shutdown signal received")
		}
	} else {
		<-sigChan
		log.Printf("Shutdown signal received")
	}

	if disc != nil {
		disc.Stop()
	}
	ctrlServer.Stop()

	if err := sampler.Close(); err != nil {
		log.Printf("Error closing sampler: %v", err)
	}

	log.Printf("Sampler stopped")
}

// samplerEngine adapts the public Sampler to the control server's interface.
type samplerEngine struct {
	s *notesprite.Sampler
}

func (a samplerEngine) NoteOn(instrument string, pitch int, params engine.NoteParams) error {
	return a.s.Play(instrument, pitch, notesprite.Note{
		ID:       params.ID,
		Duration: params.Duration,
		Hold:     params.Hold,
		Volume:   params.Volume,
		Delay:    params.Delay,
	})
}

func (a samplerEngine) NoteOff(id string) bool { return a.s.Stop(id) }

func (a samplerEngine) Ready() bool { return a.s.Ready() }
