package model

import "time"

// Snippet represents an uploaded audio clip with its metadata.
//
// ArtistID references a users row with is_artist set; the foreign key
// cascades on delete. Genre and SpotifyURL are optional — pointers so the
// database NULL and the JSON null line up without a sentinel value.
//
// AudioPath is the location of the stored file on local disk. It is an
// internal detail and never serialized; responses carry a derived public
// URL instead (see SnippetOut).
type Snippet struct {
	ID         int64     `json:"id"`
	ArtistID   int64     `json:"artist_id"`
	Title      string    `json:"title"`
	Genre      *string   `json:"genre"`
	SpotifyURL *string   `json:"spotify_url"`
	AudioPath  string    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

// SnippetOut is the public representation of a snippet. It mirrors Snippet
// but swaps the filesystem path for a URL clients can actually fetch.
type SnippetOut struct {
	ID         int64     `json:"id"`
	ArtistID   int64     `json:"artist_id"`
	Title      string    `json:"title"`
	Genre      *string   `json:"genre"`
	SpotifyURL *string   `json:"spotify_url"`
	AudioURL   string    `json:"audio_url"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewSnippetOut builds the public shape for a stored snippet.
func NewSnippetOut(s *Snippet, audioURL string) SnippetOut {
	return SnippetOut{
		ID:         s.ID,
		ArtistID:   s.ArtistID,
		Title:      s.Title,
		Genre:      s.Genre,
		SpotifyURL: s.SpotifyURL,
		AudioURL:   audioURL,
		CreatedAt:  s.CreatedAt,
	}
}
