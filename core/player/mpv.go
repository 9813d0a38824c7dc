package player

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync"

	"tunebox/logger"
)

// MPVEngine drives an already-running mpv instance over its JSON IPC
// socket. One handle maps to one loaded file; mpv itself only ever plays
// one file at a time, which matches the single-handle session model.
type MPVEngine struct {
	socketPath string
}

// NewMPVEngine returns an engine talking to the mpv socket at path.
func NewMPVEngine(socketPath string) *MPVEngine {
	return &MPVEngine{socketPath: socketPath}
}

// Acquire connects to mpv, loads the source and optionally starts playback.
func (e *MPVEngine) Acquire(ctx context.Context, source string, autoplay bool) (Handle, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", e.socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mpv socket %s: %w", e.socketPath, err)
	}

	h := &mpvHandle{conn: conn, enc: json.NewEncoder(conn)}
	go h.readEvents()

	if err := h.command("loadfile", source, "replace"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to load %s into mpv: %w", source, err)
	}
	if err := h.setProperty("pause", !autoplay); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to set mpv pause state: %w", err)
	}

	return h, nil
}

type mpvHandle struct {
	conn net.Conn

	mu           sync.Mutex
	enc          *json.Encoder
	onCompletion func()
	released     bool
}

type mpvRequest struct {
	Command []interface{} `json:"command"`
}

type mpvEvent struct {
	Event  string `json:"event"`
	Reason string `json:"reason"`
}

// command sends a fire-and-forget mpv command. Responses are drained by
// readEvents; mpv-side command errors surface only in the logs.
func (h *mpvHandle) command(args ...interface{}) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.released {
		return fmt.Errorf("mpv handle already released")
	}
	if err := h.enc.Encode(mpvRequest{Command: args}); err != nil {
		return fmt.Errorf("failed to send mpv command: %w", err)
	}
	return nil
}

func (h *mpvHandle) setProperty(name string, value interface{}) error {
	return h.command("set_property", name, value)
}

func (h *mpvHandle) Pause() error {
	return h.setProperty("pause", true)
}

func (h *mpvHandle) Resume() error {
	return h.setProperty("pause", false)
}

func (h *mpvHandle) Stop() error {
	return h.command("stop")
}

func (h *mpvHandle) Release() error {
	h.mu.Lock()
	if h.released {
		h.mu.Unlock()
		return nil
	}
	h.released = true
	// Best effort: stop playback, then drop the connection. The reader
	// goroutine exits on the closed connection.
	if err := h.enc.Encode(mpvRequest{Command: []interface{}{"stop"}}); err != nil {
		logger.Debug("mpv stop on release failed", logger.ErrorField(err))
	}
	h.mu.Unlock()

	return h.conn.Close()
}

func (h *mpvHandle) OnCompletion(fn func()) {
	h.mu.Lock()
	h.onCompletion = fn
	h.mu.Unlock()
}

// readEvents consumes everything mpv writes on the socket and watches for
// the natural end-of-file event.
func (h *mpvHandle) readEvents() {
	scanner := bufio.NewScanner(h.conn)
	for scanner.Scan() {
		var ev mpvEvent
		if err := json.Unmarshal(scanner.Bytes(), &ev); err != nil {
			continue
		}
		if ev.Event == "end-file" && ev.Reason == "eof" {
			h.mu.Lock()
			fn := h.onCompletion
			h.mu.Unlock()
			if fn != nil {
				fn()
			}
		}
	}
}
