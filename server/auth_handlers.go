package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/quillbase/go-blog-server/cookies"
	apperrors "github.com/quillbase/go-blog-server/internal/errors"
	"github.com/quillbase/go-blog-server/roles"
	"github.com/quillbase/go-blog-server/users"
	zlog "github.com/rs/zerolog/log"
)

// DefaultRoleName is assigned to every newly registered user.
const DefaultRoleName = "user"

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type meResponse struct {
	User  *users.User `json:"user"`
	Roles []string    `json:"roles"`
}

// RegisterHandler creates a new account (POST /auth/register). The default
// role is created on demand and assigned to the new user.
func (s *Server) RegisterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Email == "" || req.Name == "" {
			writeError(w, http.StatusBadRequest, "name and email are required")
			return
		}
		if err := users.ValidatePasswordStrength(req.Password); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		if _, err := s.repos.Users.GetByEmail(r.Context(), req.Email); err == nil {
			writeError(w, http.StatusConflict, apperrors.ErrEmailTaken.Error())
			return
		}

		hashed, err := users.HashPassword(req.Password)
		if err != nil {
			zlog.Err(err).Msg("Failed to hash password")
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		user := &users.User{
			ID:             uuid.New(),
			Name:           req.Name,
			Email:          req.Email,
			HashedPassword: hashed,
			CreatedAt:      time.Now(),
		}
		if err := s.repos.Users.Upsert(r.Context(), user); err != nil {
			zlog.Err(err).Msg("Failed to create user")
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		// Create the role if it does not exist, then assign it.
		if err := s.repos.Roles.EnsureRole(r.Context(), roles.Role{Name: DefaultRoleName}); err != nil {
			zlog.Err(err).Msg("Failed to ensure default role")
		}
		if err := s.repos.Roles.Assign(r.Context(), user.ID, DefaultRoleName); err != nil {
			zlog.Err(err).Str("user_id", user.ID.String()).Msg("Failed to assign default role")
		}

		writeJSON(w, http.StatusCreated, map[string]string{"id": user.ID.String()})
	}
}

// LoginHandler verifies credentials and issues a session cookie
// (POST /auth/login).
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		user, err := s.repos.Users.GetByEmail(r.Context(), req.Email)
		if err != nil {
			writeError(w, http.StatusUnauthorized, apperrors.ErrInvalidCredentials.Error())
			return
		}
		if !users.CheckPasswordHash(req.Password, user.HashedPassword) {
			writeError(w, http.StatusUnauthorized, apperrors.ErrInvalidCredentials.Error())
			return
		}

		s.issueSession(w, r, user.ID)
	}
}

// LogoutHandler invalidates the current session and expires the cookie
// (POST /auth/logout). Logging out without a session still succeeds.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authCtx := AuthContext(r)
		if authCtx.Session != nil {
			if err := s.manager.Invalidate(r.Context(), authCtx.Session.ID); err != nil {
				zlog.Err(err).Msg("Failed to invalidate session")
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}
		}

		w.Header().Add("Set-Cookie", cookies.DeleteSessionCookie(s.secureCookies(r)))
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

// MeHandler returns the caller's user and role set, or nulls for anonymous
// requests (GET /auth/me).
func (s *Server) MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authCtx := AuthContext(r)
		writeJSON(w, http.StatusOK, meResponse{
			User:  authCtx.User,
			Roles: authCtx.Roles.Names(),
		})
	}
}

// issueSession creates a session for the user and sets the session cookie.
func (s *Server) issueSession(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	session, err := s.manager.Create(r.Context(), userID)
	if err != nil {
		zlog.Err(err).Msg("Failed to create session")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.Header().Add("Set-Cookie", cookies.BuildSessionCookie(session.ID, session.ExpiresAt, s.secureCookies(r)))
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) secureCookies(r *http.Request) bool {
	return s.config.SecureCookies() || getScheme(r) == "https"
}
