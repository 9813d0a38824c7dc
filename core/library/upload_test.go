package library

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tunebox/model"
	"tunebox/repository"
	"tunebox/store"
)

type staticAuthority struct {
	granted bool
	err     error
}

func (a staticAuthority) Request(context.Context) (bool, error) {
	return a.granted, a.err
}

type fakePicker struct {
	files []PickedFile
	err   error
}

func (p fakePicker) PickAudioFiles(context.Context) ([]PickedFile, error) {
	return p.files, p.err
}

func newTestUploader(picker FilePicker, songStore repository.SongStore) *Uploader {
	u := NewUploader(staticAuthority{granted: true}, picker, songStore)
	u.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	return u
}

func TestUploadFilesBuildsSongsFromFilenames(t *testing.T) {
	ctx := context.Background()
	songStore := repository.NewSongStore(store.NewMemoryStore())
	u := newTestUploader(fakePicker{files: []PickedFile{
		{Name: "Pink Floyd - Money.mp3", URI: "file:///music/money.mp3"},
		{Name: "jazz improv.mp3", URI: "file:///music/improv.mp3"},
	}}, songStore)

	songs, err := u.UploadFiles(ctx)
	require.NoError(t, err)
	require.Len(t, songs, 2)

	assert.Equal(t, "Money", songs[0].Title)
	assert.Equal(t, "Pink Floyd", songs[0].Artist)
	assert.Equal(t, "Uploaded Music", songs[0].Album)
	assert.Equal(t, int64(180000), songs[0].Duration)
	assert.Equal(t, "file:///music/money.mp3", songs[0].URI)
	assert.True(t, strings.HasPrefix(songs[0].ID, "uploaded-"))
	assert.Equal(t, 2024, songs[0].Year)

	assert.Equal(t, "jazz improv", songs[1].Title)
	assert.Equal(t, "Unknown Artist", songs[1].Artist)
	assert.Equal(t, "Jazz", songs[1].Genre)

	// Batch is appended to the persisted store.
	assert.Equal(t, songs, songStore.UploadedSongs(ctx))
}

func TestUploadFilesAppendsAfterExisting(t *testing.T) {
	ctx := context.Background()
	songStore := repository.NewSongStore(store.NewMemoryStore())
	prior := model.Song{ID: "uploaded-0-prior", Title: "Prior"}
	require.NoError(t, songStore.AppendUploadedSongs(ctx, []model.Song{prior}))

	u := newTestUploader(fakePicker{files: []PickedFile{
		{Name: "New.mp3", URI: "file:///music/new.mp3"},
	}}, songStore)

	_, err := u.UploadFiles(ctx)
	require.NoError(t, err)

	all := songStore.UploadedSongs(ctx)
	require.Len(t, all, 2)
	assert.Equal(t, "uploaded-0-prior", all[0].ID)
}

func TestUploadFilesPermissionDenied(t *testing.T) {
	u := NewUploader(staticAuthority{granted: false}, fakePicker{}, repository.NewSongStore(store.NewMemoryStore()))

	_, err := u.UploadFiles(context.Background())
	assert.ErrorIs(t, err, model.ErrPermissionDenied)
}

func TestUploadFilesCancelIsNotAnError(t *testing.T) {
	songStore := repository.NewSongStore(store.NewMemoryStore())
	u := newTestUploader(fakePicker{files: nil}, songStore)

	songs, err := u.UploadFiles(context.Background())
	require.NoError(t, err)
	assert.Empty(t, songs)
	assert.Empty(t, songStore.UploadedSongs(context.Background()))
}

func TestUploadFilesSkipsBadFileAndKeepsOrder(t *testing.T) {
	ctx := context.Background()
	u := newTestUploader(fakePicker{files: []PickedFile{
		{Name: "One.mp3", URI: "file:///music/1.mp3"},
		{Name: "Two.mp3", URI: ""}, // no locator, must be skipped
		{Name: "Three.mp3", URI: "file:///music/3.mp3"},
	}}, repository.NewSongStore(store.NewMemoryStore()))

	songs, err := u.UploadFiles(ctx)
	require.NoError(t, err)
	require.Len(t, songs, 2)
	assert.Equal(t, "One", songs[0].Title)
	assert.Equal(t, "Three", songs[1].Title)
}

func TestUploadFilesProgressIsMonotonicAndPinnedTo100(t *testing.T) {
	u := newTestUploader(fakePicker{files: []PickedFile{
		{Name: "a.mp3", URI: "file:///a"},
		{Name: "b.mp3", URI: "file:///b"},
		{Name: "c.mp3", URI: "file:///c"},
		{Name: "d.mp3", URI: "file:///d"},
	}}, repository.NewSongStore(store.NewMemoryStore()))

	var seen []float64
	u.OnProgress = func(pct float64) { seen = append(seen, pct) }

	_, err := u.UploadFiles(context.Background())
	require.NoError(t, err)

	require.Equal(t, []float64{0, 25, 50, 75, 100}, seen)
	for i := 1; i < len(seen); i++ {
		assert.GreaterOrEqual(t, seen[i], seen[i-1])
	}
}

func TestUploadFilesPropagatesAppendFailure(t *testing.T) {
	kv := store.NewMemoryStore()
	kv.FailWrites = errors.New("disk full")
	u := newTestUploader(fakePicker{files: []PickedFile{
		{Name: "a.mp3", URI: "file:///a"},
	}}, repository.NewSongStore(kv))

	_, err := u.UploadFiles(context.Background())
	assert.Error(t, err)
}

func TestUploadFilesCancellationBetweenFiles(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	u := newTestUploader(fakePicker{files: []PickedFile{
		{Name: "a.mp3", URI: "file:///a"},
	}}, repository.NewSongStore(store.NewMemoryStore()))

	_, err := u.UploadFiles(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUploadFilesUniqueIDs(t *testing.T) {
	u := newTestUploader(fakePicker{files: []PickedFile{
		{Name: "a.mp3", URI: "file:///a"},
		{Name: "b.mp3", URI: "file:///b"},
	}}, repository.NewSongStore(store.NewMemoryStore()))

	songs, err := u.UploadFiles(context.Background())
	require.NoError(t, err)
	require.Len(t, songs, 2)
	assert.NotEqual(t, songs[0].ID, songs[1].ID)
}
