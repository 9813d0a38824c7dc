package library

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"tunebox/core/meta"
	"tunebox/logger"
	"tunebox/model"
	"tunebox/repository"
)

// defaultUploadDuration is the placeholder length for imported files. No
// audio inspection happens, so every upload reports three minutes.
const defaultUploadDuration = 180000

// Uploader runs the upload pipeline: permission check, file selection,
// per-file metadata inference, and append to the persisted song store.
// One batch at a time; callers are expected to hold off while IsUploading
// reports true.
type Uploader struct {
	perm   PermissionAuthority
	picker FilePicker
	store  repository.SongStore

	// OnProgress, when set, receives monotonically increasing percentages
	// for the current batch.
	OnProgress func(pct float64)

	now func() time.Time

	mu        sync.Mutex
	uploading bool
	progress  float64
}

// NewUploader wires the upload pipeline collaborators together.
func NewUploader(perm PermissionAuthority, picker FilePicker, store repository.SongStore) *Uploader {
	return &Uploader{
		perm:   perm,
		picker: picker,
		store:  store,
		now:    time.Now,
	}
}

// IsUploading reports whether a batch is in flight.
func (u *Uploader) IsUploading() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.uploading
}

// Progress returns the current batch progress percentage.
func (u *Uploader) Progress() float64 {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.progress
}

func (u *Uploader) setUploading(v bool) {
	u.mu.Lock()
	u.uploading = v
	u.progress = 0
	u.mu.Unlock()
}

func (u *Uploader) setProgress(pct float64) {
	u.mu.Lock()
	u.progress = pct
	cb := u.OnProgress
	u.mu.Unlock()
	if cb != nil {
		cb(pct)
	}
}

// UploadFiles runs one upload batch and returns the successfully processed
// songs. A canceled picker yields an empty batch. Permission denial and
// store append failures propagate; a bad individual file is logged and
// skipped without aborting the batch.
func (u *Uploader) UploadFiles(ctx context.Context) ([]model.Song, error) {
	u.setUploading(true)
	defer u.setUploading(false)

	granted, err := u.perm.Request(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to request media permission: %w", err)
	}
	if !granted {
		return nil, model.ErrPermissionDenied
	}

	files, err := u.picker.PickAudioFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to pick audio files: %w", err)
	}
	if len(files) == 0 {
		// User canceled selection.
		return []model.Song{}, nil
	}

	songs := make([]model.Song, 0, len(files))
	for i, file := range files {
		// Cooperative cancellation between files; a file is never
		// abandoned halfway.
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		u.setProgress(float64(i) / float64(len(files)) * 100)

		song, err := u.buildSong(file)
		if err != nil {
			logger.Warn("skipping file in upload batch",
				logger.String("file", file.Name), logger.ErrorField(err))
			continue
		}
		songs = append(songs, song)
	}

	if err := u.store.AppendUploadedSongs(ctx, songs); err != nil {
		return nil, err
	}

	u.setProgress(100)
	logger.Info("upload batch complete",
		logger.Int("picked", len(files)), logger.Int("imported", len(songs)))
	return songs, nil
}

// buildSong constructs a Song record from one picked file.
func (u *Uploader) buildSong(file PickedFile) (model.Song, error) {
	if file.Name == "" {
		return model.Song{}, fmt.Errorf("picked file has no name")
	}
	if file.URI == "" {
		return model.Song{}, fmt.Errorf("picked file %s has no locator", file.Name)
	}

	title, artist := meta.InferTitleArtist(file.Name)
	genre := meta.InferGenre(file.Name, artist)

	now := u.now()
	id := fmt.Sprintf("uploaded-%d-%s", now.UnixMilli(), uuid.NewString()[:8])

	return model.Song{
		ID:          id,
		Title:       title,
		Artist:      artist,
		Album:       "Uploaded Music",
		Genre:       genre,
		Duration:    defaultUploadDuration,
		URI:         file.URI,
		Year:        now.Year(),
		TrackNumber: 1,
	}, nil
}
