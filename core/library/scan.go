package library

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"tunebox/logger"
	"tunebox/model"
)

// defaultScanLimit caps how many assets one scan requests from the index.
const defaultScanLimit = 1000

// Scanner runs the device scan pipeline. It is best-effort: apart from
// permission denial, every failure degrades to an empty result.
type Scanner struct {
	perm  PermissionAuthority
	media MediaIndex
	limit int
}

// NewScanner wires the scan pipeline. limit <= 0 selects the default cap.
func NewScanner(perm PermissionAuthority, media MediaIndex, limit int) *Scanner {
	if limit <= 0 {
		limit = defaultScanLimit
	}
	return &Scanner{perm: perm, media: media, limit: limit}
}

// ScanDeviceMusic enumerates device audio assets and maps them into song
// records. Device assets are not filename-inferred: artist and genre stay
// Unknown.
func (s *Scanner) ScanDeviceMusic(ctx context.Context) ([]model.Song, error) {
	granted, err := s.perm.Request(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to request media permission: %w", err)
	}
	if !granted {
		return nil, model.ErrPermissionDenied
	}

	assets, err := s.media.ListAudioAssets(ctx, s.limit)
	if err != nil {
		logger.Warn("device media enumeration failed, returning empty scan",
			logger.ErrorField(err))
		return []model.Song{}, nil
	}

	songs := make([]model.Song, 0, len(assets))
	for _, asset := range assets {
		album := asset.AlbumID
		if album == "" {
			album = "Unknown Album"
		}

		songs = append(songs, model.Song{
			ID:          asset.ID,
			Title:       strings.TrimSuffix(asset.Filename, filepath.Ext(asset.Filename)),
			Artist:      "Unknown Artist",
			Album:       album,
			Genre:       "Unknown",
			Duration:    int64(asset.Duration * 1000),
			URI:         asset.URI,
			Year:        asset.CreationTime.Year(),
			TrackNumber: 1,
		})
	}

	logger.Info("device scan complete", logger.Int("songs", len(songs)))
	return songs, nil
}
