package media

import (
	"context"
	"os"
	"path/filepath"

	"tunebox/core/library"
	"tunebox/logger"
)

// PathPicker is a file picker fed an explicit path list, as supplied on the
// command line or in an API payload. An empty selection is the cancel
// signal.
type PathPicker struct {
	Paths []string
}

// PickAudioFiles resolves the configured paths into name/locator pairs.
// Missing files are logged and dropped, mirroring a user deselecting an
// entry.
func (p PathPicker) PickAudioFiles(context.Context) ([]library.PickedFile, error) {
	files := make([]library.PickedFile, 0, len(p.Paths))
	for _, path := range p.Paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			logger.Warn("skipping unresolvable path", logger.String("path", path), logger.ErrorField(err))
			continue
		}
		if _, err := os.Stat(abs); err != nil {
			logger.Warn("skipping missing file", logger.String("path", abs), logger.ErrorField(err))
			continue
		}
		files = append(files, library.PickedFile{
			Name: filepath.Base(abs),
			URI:  "file://" + abs,
		})
	}
	return files, nil
}

// StaticPicker returns a fixed selection, used by the HTTP upload endpoint
// where the UI has already picked the files.
type StaticPicker struct {
	Files []library.PickedFile
}

func (p StaticPicker) PickAudioFiles(context.Context) ([]library.PickedFile, error) {
	return p.Files, nil
}
