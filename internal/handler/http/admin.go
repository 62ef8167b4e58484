package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-mapping-keeper/internal/logger"
	"github.com/MKhiriev/go-mapping-keeper/internal/utils"
	"github.com/go-chi/chi/v5"
)

// LoginRequest is the body of POST /api/admin/login.
type LoginRequest struct {
	Admin    string `json:"admin"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token for the operator routes.
type LoginResponse struct {
	Token string `json:"token"`
}

func (h *Handler) getStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.admin.Status(r.Context())
	if err != nil {
		h.fail(w, r, err, "status failed")
		return
	}
	_, _ = utils.WriteJSON(w, status, http.StatusOK)
}

// login trades the server password for an admin token. Servers without a
// password or without a sign key issue no tokens.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if h.auth.SignKey == "" || h.verifier.Open() {
		h.fail(w, r, ErrAdminAPIDisabled, "admin login refused")
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	req.Admin = strings.TrimSpace(req.Admin)
	if req.Admin == "" || !h.verifier.Verify(req.Password) {
		h.fail(w, r, ErrInvalidCredentials, "admin login refused")
		return
	}

	token, err := utils.GenerateJWTToken(h.auth.Issuer, req.Admin, h.auth.Duration, h.auth.SignKey)
	if err != nil {
		h.fail(w, r, err, "token not issued")
		return
	}

	logger.FromRequest(r).Info().Str("admin", req.Admin).Msg("admin logged in")
	_, _ = utils.WriteJSON(w, LoginResponse{Token: token.SignedString}, http.StatusOK)
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request) {
	if err := h.admin.Save(r.Context()); err != nil {
		h.fail(w, r, err, "save failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) kick(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if err := h.admin.KickUser(r.Context(), username); err != nil {
		h.fail(w, r, err, "kick failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, msg string) {
	status := statusFromError(err)
	event := logger.FromRequest(r).Warn()
	if status == http.StatusInternalServerError {
		event = logger.FromRequest(r).Error()
	}
	event.Err(err).Msg(msg)

	if errors.Is(err, ErrAdminAPIDisabled) {
		utils.WriteError(w, http.StatusText(http.StatusNotFound), status)
		return
	}
	utils.WriteError(w, err.Error(), status)
}
