package player

import (
	"context"

	"tunebox/logger"
)

// NoopEngine is used when no playback backend is configured. State
// transitions still happen; no audio comes out.
type NoopEngine struct{}

func (NoopEngine) Acquire(_ context.Context, source string, _ bool) (Handle, error) {
	logger.Debug("noop engine acquired source", logger.String("source", source))
	return noopHandle{}, nil
}

type noopHandle struct{}

func (noopHandle) Pause() error          { return nil }
func (noopHandle) Resume() error         { return nil }
func (noopHandle) Stop() error           { return nil }
func (noopHandle) Release() error        { return nil }
func (noopHandle) OnCompletion(_ func()) {}
