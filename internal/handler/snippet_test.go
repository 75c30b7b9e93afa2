package handler_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nabil/snipdrop/internal/handler"
)

func TestHandleUpload(t *testing.T) {
	env := newTestEnv(t)
	artistID := registerUser(t, env, "artist@x.com", "artist", true)
	listenerID := registerUser(t, env, "listener@x.com", "listener", false)

	t.Run("valid upload", func(t *testing.T) {
		content := []byte("RIFF fake wav content")
		rr := postMultipart(t, env.snippets.HandleUpload, "/snippets/", map[string]string{
			"artist_id":   strconv.FormatInt(artistID, 10),
			"title":       "first demo",
			"genre":       "lo-fi",
			"spotify_url": "https://open.spotify.com/track/x",
		}, "demo.wav", content)

		assert.Equal(t, http.StatusCreated, rr.Code)

		var resp struct {
			ID         int64   `json:"id"`
			ArtistID   int64   `json:"artist_id"`
			Title      string  `json:"title"`
			Genre      *string `json:"genre"`
			SpotifyURL *string `json:"spotify_url"`
			AudioURL   string  `json:"audio_url"`
		}
		decodeBody(t, rr, &resp)
		assert.NotZero(t, resp.ID)
		assert.Equal(t, artistID, resp.ArtistID)
		assert.Equal(t, "first demo", resp.Title)
		if assert.NotNil(t, resp.Genre) {
			assert.Equal(t, "lo-fi", *resp.Genre)
		}
		assert.True(t, strings.HasPrefix(resp.AudioURL, "/uploads/"))

		// The audio_url must resolve to a file byte-identical to the upload.
		stored, err := os.ReadFile(filepath.Join(env.uploadDir, filepath.Base(resp.AudioURL)))
		assert.NoError(t, err)
		assert.Equal(t, content, stored)

		// The internal storage path never leaks.
		assert.NotContains(t, rr.Body.String(), "audio_path")
	})

	t.Run("repeated upload creates a new file", func(t *testing.T) {
		first := uploadSnippet(t, env, artistID, "repeat")
		second := uploadSnippet(t, env, artistID, "repeat")
		assert.NotEqual(t, first, second)
	})

	t.Run("non-artist uploader", func(t *testing.T) {
		rr := postMultipart(t, env.snippets.HandleUpload, "/snippets/", map[string]string{
			"artist_id": strconv.FormatInt(listenerID, 10),
			"title":     "nope",
		}, "demo.mp3", []byte("x"))

		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var resp handler.ErrorResponse
		decodeBody(t, rr, &resp)
		assert.Equal(t, "artist not found or not an artist", resp.Detail)
	})

	t.Run("missing file part", func(t *testing.T) {
		rr := postMultipart(t, env.snippets.HandleUpload, "/snippets/", map[string]string{
			"artist_id": strconv.FormatInt(artistID, 10),
			"title":     "no file",
		}, "", nil)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("non-integer artist_id", func(t *testing.T) {
		rr := postMultipart(t, env.snippets.HandleUpload, "/snippets/", map[string]string{
			"artist_id": "abc",
			"title":     "bad id",
		}, "demo.mp3", []byte("x"))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestHandleFeed(t *testing.T) {
	env := newTestEnv(t)
	artistID := registerUser(t, env, "artist@x.com", "artist", true)

	t.Run("empty feed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/feed/", nil)
		rr := httptest.NewRecorder()
		env.snippets.HandleFeed(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "[]\n", rr.Body.String())
	})

	t.Run("newest first with public URLs", func(t *testing.T) {
		for _, title := range []string{"one", "two", "three"} {
			uploadSnippet(t, env, artistID, title)
		}

		req := httptest.NewRequest(http.MethodGet, "/feed/", nil)
		rr := httptest.NewRecorder()
		env.snippets.HandleFeed(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var feed []struct {
			Title    string `json:"title"`
			AudioURL string `json:"audio_url"`
		}
		decodeBody(t, rr, &feed)
		assert.Len(t, feed, 3)
		assert.Equal(t, "three", feed[0].Title)
		assert.Equal(t, "one", feed[2].Title)
		for _, s := range feed {
			assert.True(t, strings.HasPrefix(s.AudioURL, "/uploads/"))
		}
	})

	t.Run("limit caps the result", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/feed/?limit=2", nil)
		rr := httptest.NewRecorder()
		env.snippets.HandleFeed(rr, req)

		var feed []struct{}
		decodeBody(t, rr, &feed)
		assert.Len(t, feed, 2)
	})

	t.Run("non-integer limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/feed/?limit=abc", nil)
		rr := httptest.NewRecorder()
		env.snippets.HandleFeed(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
