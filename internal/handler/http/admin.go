package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	users, err := h.services.AdminService.ListUsers(r.Context())
	if err != nil {
		writeError(w, log, err, "error listing users")
		return
	}

	utils.WriteJSON(w, models.UsersResponse{Users: users, Length: len(users)}, http.StatusOK)
}

func (h *Handler) setUserPassword(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	username := chi.URLParam(r, "username")

	var req models.SetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn().Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.AdminService.SetUserPassword(r.Context(), username, req.Password); err != nil {
		writeError(w, log, err, "error resetting user password")
		return
	}

	log.Info().Str("target", username).Msg("user password reset by admin")
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	username := chi.URLParam(r, "username")

	if err := h.services.AdminService.DeleteUser(r.Context(), username); err != nil {
		writeError(w, log, err, "error deleting user")
		return
	}

	log.Info().Str("target", username).Msg("user deleted by admin")
	w.WriteHeader(http.StatusNoContent)
}
