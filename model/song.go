package model

// Song represents a single track in the music library. Songs are value
// objects: once constructed they are never mutated, a change is expressed by
// building a new record. The JSON field names are part of the persisted
// layout and must not change.
type Song struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	Album       string `json:"album"`
	Genre       string `json:"genre"`
	Duration    int64  `json:"duration"` // Duration in milliseconds
	URI         string `json:"uri"`      // Locator resolved by the playback engine
	AlbumArt    string `json:"albumArt,omitempty"`
	Year        int    `json:"year,omitempty"`
	TrackNumber int    `json:"trackNumber,omitempty"`
}

// Genre is a derived rollup of the song collection, never persisted.
type Genre struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	Color string `json:"color"`
}

// PlayerState is the observable snapshot of the playback session.
type PlayerState struct {
	CurrentSong *Song `json:"currentSong"`
	IsPlaying   bool  `json:"isPlaying"`
}
