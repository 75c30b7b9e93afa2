package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/nabil/snipdrop/internal/apperror"
	"github.com/nabil/snipdrop/internal/service"
)

// maxUploadMemory caps how much of a multipart body is buffered in memory
// before spilling to temp files. The audio itself streams from the part
// reader either way; this is not a size limit on uploads.
const maxUploadMemory = 32 << 20 // 32 MB

// SnippetHandler serves uploads and the feed.
type SnippetHandler struct {
	snippets *service.SnippetService
	logger   *slog.Logger
}

// NewSnippetHandler creates a SnippetHandler.
func NewSnippetHandler(snippets *service.SnippetService, logger *slog.Logger) *SnippetHandler {
	return &SnippetHandler{snippets: snippets, logger: logger}
}

// HandleUpload stores a new snippet.
//
// HTTP: POST /snippets/
// Body: multipart form with fields artist_id, title, genre?, spotify_url?
// and a "file" part carrying the audio.
//
// 201 with the public snippet shape (audio_url, not the storage path) on
// success; 400 when artist_id is missing, malformed, or not an artist.
func (h *SnippetHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		h.logger.Warn("invalid multipart form", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:  "validation_error",
			Detail: "invalid multipart form",
		})
		return
	}

	artistID, err := strconv.ParseInt(r.FormValue("artist_id"), 10, 64)
	if err != nil {
		writeError(w, apperror.ValidationFailed("artist_id", "artist_id must be an integer"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, apperror.ValidationFailed("file", "audio file is required"))
		return
	}
	defer file.Close()

	out, err := h.snippets.Upload(r.Context(), artistID,
		r.FormValue("title"),
		r.FormValue("genre"),
		r.FormValue("spotify_url"),
		file, header.Filename,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, out)
}

// HandleFeed lists the most recent snippets, newest first.
//
// HTTP: GET /feed/?limit=N
//
// limit defaults to 20 and is clamped by the service; a non-integer limit
// is a 400.
func (h *SnippetHandler) HandleFeed(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, apperror.ValidationFailed("limit", "limit must be an integer"))
			return
		}
		limit = parsed
	}

	feed, err := h.snippets.Feed(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, feed)
}
