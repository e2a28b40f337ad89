package server

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"
)

// AdminUsersListHandler lists accounts for the admin UI (GET /admin/users).
func (s *Server) AdminUsersListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		list, err := s.repos.Users.List(r.Context(), offset, limit)
		if err != nil {
			zlog.Err(err).Msg("Failed to list users")
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

// AdminDeleteUserHandler removes an account and cascades its sessions
// (DELETE /admin/users/{id}).
func (s *Server) AdminDeleteUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid user id")
			return
		}

		// Sessions go first so a concurrent request cannot validate against
		// a user that is about to disappear.
		if err := s.manager.InvalidateAll(r.Context(), id); err != nil {
			zlog.Err(err).Str("user_id", id.String()).Msg("Failed to invalidate user sessions")
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		if err := s.repos.Users.Delete(r.Context(), id); err != nil {
			zlog.Err(err).Str("user_id", id.String()).Msg("Failed to delete user")
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}
