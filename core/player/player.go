// Package player wraps a single concurrently-playing audio handle in a
// small state machine: Idle -> Playing -> Paused/Idle, with at most one live
// handle at any time.
package player

import (
	"context"
	"path/filepath"
	"strings"
	"sync"

	"tunebox/logger"
	"tunebox/model"
)

// fallbackSource replaces URIs that are not local or content locators, which
// happens on the sample-song fallback path.
const fallbackSource = "https://www.soundjay.com/misc/sounds/bell-ringing-05.mp3"

// Handle is one loaded audio resource.
type Handle interface {
	Pause() error
	Resume() error
	Stop() error
	Release() error
	// OnCompletion registers a callback fired when playback finishes
	// naturally.
	OnCompletion(fn func())
}

// Engine acquires audio handles for playable sources.
type Engine interface {
	Acquire(ctx context.Context, source string, autoplay bool) (Handle, error)
}

// Player is the playback session. All control failures are logged and leave
// the session state unchanged; there is no retry.
type Player struct {
	engine Engine

	mu      sync.Mutex
	handle  Handle
	current *model.Song
	playing bool
	subs    []func(model.PlayerState)
}

// NewPlayer creates an idle playback session.
func NewPlayer(engine Engine) *Player {
	return &Player{engine: engine}
}

// isLocalSource reports whether the uri looks like something the engine can
// open directly.
func isLocalSource(uri string) bool {
	return strings.HasPrefix(uri, "file://") ||
		strings.HasPrefix(uri, "content://") ||
		filepath.IsAbs(uri)
}

// Play loads and starts the given song, releasing any previously loaded
// handle first. An acquire failure is logged; the session is left idle.
func (p *Player) Play(ctx context.Context, song model.Song) {
	p.mu.Lock()

	// The old handle must be gone before a new one exists.
	if p.handle != nil {
		if err := p.handle.Release(); err != nil {
			logger.Warn("failed to release previous audio handle", logger.ErrorField(err))
		}
		p.handle = nil
	}

	source := song.URI
	if !isLocalSource(source) {
		source = fallbackSource
	}

	handle, err := p.engine.Acquire(ctx, source, true)
	if err != nil {
		p.mu.Unlock()
		logger.Error("failed to acquire audio handle",
			logger.String("song", song.ID), logger.ErrorField(err))
		return
	}

	p.handle = handle
	s := song
	p.current = &s
	p.playing = true
	p.mu.Unlock()

	var once sync.Once
	handle.OnCompletion(func() {
		once.Do(func() {
			p.mu.Lock()
			// A later Play may have replaced the handle already.
			if p.handle == handle {
				p.playing = false
			}
			p.mu.Unlock()
			p.notify()
		})
	})

	p.notify()
}

// Pause pauses playback. No-op when nothing is loaded.
func (p *Player) Pause() {
	p.mu.Lock()
	if p.handle == nil {
		p.mu.Unlock()
		return
	}
	if err := p.handle.Pause(); err != nil {
		p.mu.Unlock()
		logger.Warn("failed to pause playback", logger.ErrorField(err))
		return
	}
	p.playing = false
	p.mu.Unlock()
	p.notify()
}

// Resume resumes paused playback. No-op when nothing is loaded.
func (p *Player) Resume() {
	p.mu.Lock()
	if p.handle == nil {
		p.mu.Unlock()
		return
	}
	if err := p.handle.Resume(); err != nil {
		p.mu.Unlock()
		logger.Warn("failed to resume playback", logger.ErrorField(err))
		return
	}
	p.playing = true
	p.mu.Unlock()
	p.notify()
}

// Stop stops playback but keeps the handle loaded until the next Play or
// Close. No-op when nothing is loaded.
func (p *Player) Stop() {
	p.mu.Lock()
	if p.handle == nil {
		p.mu.Unlock()
		return
	}
	if err := p.handle.Stop(); err != nil {
		p.mu.Unlock()
		logger.Warn("failed to stop playback", logger.ErrorField(err))
		return
	}
	p.playing = false
	p.mu.Unlock()
	p.notify()
}

// Close releases the loaded handle, if any. Session teardown.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.handle == nil {
		return
	}
	if err := p.handle.Release(); err != nil {
		logger.Warn("failed to release audio handle on teardown", logger.ErrorField(err))
	}
	p.handle = nil
	p.current = nil
	p.playing = false
}

// State returns the observable session snapshot.
func (p *Player) State() model.PlayerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return model.PlayerState{CurrentSong: p.current, IsPlaying: p.playing}
}

// Subscribe registers a callback invoked after every state change.
func (p *Player) Subscribe(fn func(model.PlayerState)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subs = append(p.subs, fn)
}

// notify must be called without the lock held.
func (p *Player) notify() {
	p.mu.Lock()
	state := model.PlayerState{CurrentSong: p.current, IsPlaying: p.playing}
	subs := make([]func(model.PlayerState), len(p.subs))
	copy(subs, p.subs)
	p.mu.Unlock()

	for _, fn := range subs {
		fn(state)
	}
}
