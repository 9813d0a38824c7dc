// Package media implements the platform collaborators the library pipelines
// depend on: the device media index, the permission authority and the file
// picker.
package media

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"tunebox/core/library"
	"tunebox/logger"
)

var audioExtensions = map[string]bool{
	".mp3":  true,
	".flac": true,
	".ogg":  true,
	".wav":  true,
	".m4a":  true,
	".aac":  true,
	".opus": true,
	".wma":  true,
}

// estimateBytesPerSecond converts file size to a rough duration at a nominal
// 128 kbps. Real decoding is out of scope, so durations are approximate.
const estimateBytesPerSecond = 16000

// FSIndex implements the device media index over a music directory. The
// asset list is cached after the first walk; an fsnotify watcher marks it
// dirty when the directory changes.
type FSIndex struct {
	root string

	mu      sync.Mutex
	assets  []library.MediaAsset
	scanned bool
	dirty   bool
	watcher *fsnotify.Watcher
}

// NewFSIndex creates an index rooted at dir. Call Start to enable change
// tracking, Close to stop it.
func NewFSIndex(dir string) *FSIndex {
	return &FSIndex{root: dir}
}

// Start begins watching the music directory for changes. Optional; without
// it every ListAudioAssets serves the first walk's cache.
func (x *FSIndex) Start() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(x.root); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", x.root, err)
	}

	x.mu.Lock()
	x.watcher = watcher
	x.mu.Unlock()

	go x.watch(watcher)
	return nil
}

func (x *FSIndex) watch(watcher *fsnotify.Watcher) {
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			x.mu.Lock()
			x.dirty = true
			x.mu.Unlock()
			logger.Debug("music directory changed", logger.String("event", event.String()))
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("music directory watcher error", logger.ErrorField(err))
		}
	}
}

// Close stops the watcher.
func (x *FSIndex) Close() error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.watcher == nil {
		return nil
	}
	err := x.watcher.Close()
	x.watcher = nil
	return err
}

// ListAudioAssets walks the music directory (or serves the cache) and
// returns up to limit audio assets.
func (x *FSIndex) ListAudioAssets(_ context.Context, limit int) ([]library.MediaAsset, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if !x.scanned || x.dirty {
		assets, err := x.walk()
		if err != nil {
			return nil, err
		}
		x.assets = assets
		x.scanned = true
		x.dirty = false
	}

	if limit > 0 && len(x.assets) > limit {
		return x.assets[:limit], nil
	}
	return x.assets, nil
}

func (x *FSIndex) walk() ([]library.MediaAsset, error) {
	var assets []library.MediaAsset

	err := filepath.WalkDir(x.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !audioExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			logger.Debug("skipping unreadable file", logger.String("path", path))
			return nil
		}

		rel, err := filepath.Rel(x.root, path)
		if err != nil {
			rel = path
		}

		assets = append(assets, library.MediaAsset{
			ID:           rel,
			Filename:     d.Name(),
			AlbumID:      albumIDFor(rel),
			Duration:     float64(info.Size()) / estimateBytesPerSecond,
			URI:          path,
			CreationTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk music directory %s: %w", x.root, err)
	}

	logger.Info("music directory scanned",
		logger.String("dir", x.root), logger.Int("assets", len(assets)))
	return assets, nil
}

// albumIDFor treats the containing directory as the album grouping.
func albumIDFor(rel string) string {
	dir := filepath.Dir(rel)
	if dir == "." {
		return ""
	}
	return filepath.Base(dir)
}
