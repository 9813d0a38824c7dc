// Package library implements the music-library pipelines: importing user
// files, scanning device media, and aggregating both into the canonical song
// collection.
package library

import (
	"context"
	"time"

	"tunebox/model"
)

// PickedFile is one entry returned by a file picker.
type PickedFile struct {
	Name string
	URI  string
}

// FilePicker selects audio files on the user's behalf. A nil, nil return
// means the user canceled, which is a normal outcome.
type FilePicker interface {
	PickAudioFiles(ctx context.Context) ([]PickedFile, error)
}

// PermissionAuthority asks the platform for media-library access.
type PermissionAuthority interface {
	Request(ctx context.Context) (bool, error)
}

// MediaAsset is one audio asset reported by the device media index.
type MediaAsset struct {
	ID           string
	Filename     string
	AlbumID      string
	Duration     float64 // seconds
	URI          string
	CreationTime time.Time
}

// MediaIndex enumerates the device's audio assets.
type MediaIndex interface {
	ListAudioAssets(ctx context.Context, limit int) ([]MediaAsset, error)
}

// DeviceScanner is the scan pipeline as seen by the aggregator.
type DeviceScanner interface {
	ScanDeviceMusic(ctx context.Context) ([]model.Song, error)
}
