package handler_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/nabil/snipdrop/internal/auth"
	"github.com/nabil/snipdrop/internal/handler"
	"github.com/nabil/snipdrop/internal/media"
	"github.com/nabil/snipdrop/internal/repository/sqlite"
	"github.com/nabil/snipdrop/internal/service"
)

// testEnv wires real dependencies — in-memory sqlite, a temp-dir media
// store, bcrypt at minimum cost — behind the handlers, so these tests
// cover the full request path below the router.
type testEnv struct {
	users        *handler.UserHandler
	snippets     *handler.SnippetHandler
	interactions *handler.InteractionHandler
	uploadDir    string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("sqlite.New() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	uploadDir := filepath.Join(t.TempDir(), "uploads")
	store, err := media.New(uploadDir)
	if err != nil {
		t.Fatalf("media.New() error = %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	passwords := auth.NewPasswordServiceWithCost(4)

	userSvc := service.NewUserService(db.Users(), passwords, logger)
	snippetSvc := service.NewSnippetService(db.Snippets(), db.Users(), store, logger)
	interactionSvc := service.NewInteractionService(db.Interactions(), db.Users(), db.Snippets(), logger)

	return &testEnv{
		users:        handler.NewUserHandler(userSvc, logger),
		snippets:     handler.NewSnippetHandler(snippetSvc, logger),
		interactions: handler.NewInteractionHandler(interactionSvc, logger),
		uploadDir:    uploadDir,
	}
}

// postJSON runs a handler against a JSON POST and returns the recorder.
func postJSON(t *testing.T, h http.HandlerFunc, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshaling request body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

// postForm runs a handler against a urlencoded POST.
func postForm(t *testing.T, h http.HandlerFunc, target string, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

// postMultipart builds a multipart upload with the given fields and one
// "file" part, and runs the handler against it.
func postMultipart(t *testing.T, h http.HandlerFunc, target string, fields map[string]string, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("writing field %s: %v", k, err)
		}
	}
	if filename != "" {
		part, err := mw.CreateFormFile("file", filename)
		if err != nil {
			t.Fatalf("creating file part: %v", err)
		}
		if _, err := part.Write(content); err != nil {
			t.Fatalf("writing file part: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("closing multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

// decodeBody decodes a recorder's JSON body into dst.
func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(dst); err != nil {
		t.Fatalf("decoding response body %q: %v", rr.Body.String(), err)
	}
}

// registerUser registers an account through the handler and returns its id.
func registerUser(t *testing.T, env *testEnv, email, username string, isArtist bool) int64 {
	t.Helper()
	rr := postJSON(t, env.users.HandleRegister, "/users/", map[string]interface{}{
		"email":     email,
		"username":  username,
		"password":  "pw123",
		"is_artist": isArtist,
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("registering %s: status %d, body %s", username, rr.Code, rr.Body.String())
	}
	var resp struct {
		ID int64 `json:"id"`
	}
	decodeBody(t, rr, &resp)
	return resp.ID
}

// uploadSnippet uploads a snippet through the handler and returns its id.
func uploadSnippet(t *testing.T, env *testEnv, artistID int64, title string) int64 {
	t.Helper()
	rr := postMultipart(t, env.snippets.HandleUpload, "/snippets/", map[string]string{
		"artist_id": strconv.FormatInt(artistID, 10),
		"title":     title,
	}, title+".mp3", []byte("audio bytes for "+title))
	if rr.Code != http.StatusCreated {
		t.Fatalf("uploading %s: status %d, body %s", title, rr.Code, rr.Body.String())
	}
	var resp struct {
		ID int64 `json:"id"`
	}
	decodeBody(t, rr, &resp)
	return resp.ID
}
