// Package handler contains the HTTP layer: one handler struct per
// resource, each parsing the request, delegating to a service, and shaping
// the response. No business rules live here.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/nabil/snipdrop/internal/service"
)

// UserHandler serves registration and login.
type UserHandler struct {
	users  *service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(users *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// registerRequest is the POST /users/ body.
type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	IsArtist bool   `json:"is_artist"`
}

// loginResponse is the POST /login body on success — a bare acknowledgment,
// not a session. The caller keeps the identifier; nothing is issued that
// could expire or be revoked.
type loginResponse struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

// HandleRegister creates a new account.
//
// HTTP: POST /users/
// Body: {"email": ..., "username": ..., "password": ..., "is_artist": false}
//
// 201 with the public user fields on success; 400 with a per-field detail
// when the email or username is already registered. The password hash never
// appears in the response (model.User strips it at the JSON layer).
func (h *UserHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid register JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:  "validation_error",
			Detail: "invalid JSON body",
		})
		return
	}

	user, err := h.users.Register(r.Context(), req.Email, req.Username, req.Password, req.IsArtist)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// HandleLogin verifies credentials.
//
// HTTP: POST /login
// Body: form fields email, password
//
// 200 with {"user_id", "username"} on success; 400 invalid_credentials on
// any failure, with no distinction between unknown email and wrong
// password.
func (h *UserHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:  "validation_error",
			Detail: "invalid form body",
		})
		return
	}

	user, err := h.users.Login(r.Context(), r.PostFormValue("email"), r.PostFormValue("password"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		UserID:   user.ID,
		Username: user.Username,
	})
}
