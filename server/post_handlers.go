package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/quillbase/go-blog-server/internal/errors"
	"github.com/quillbase/go-blog-server/posts"
	zlog "github.com/rs/zerolog/log"
)

type postRequest struct {
	Title     string `json:"title"`
	Body      string `json:"body"`
	IsPrivate bool   `json:"is_private"`
}

// PublicPostsHandler lists public posts (GET /posts). No authentication
// needed.
func (s *Server) PublicPostsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.repos.Posts.ListPublic(r.Context())
		if err != nil {
			zlog.Err(err).Msg("Failed to list public posts")
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

// PostsHandler lists public posts plus the caller's private ones
// (GET /api/posts).
func (s *Server) PostsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authCtx := AuthContext(r)
		list, err := s.repos.Posts.ListVisibleTo(r.Context(), authCtx.User.ID)
		if err != nil {
			zlog.Err(err).Msg("Failed to list posts")
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

// CreatePostHandler creates a post owned by the caller (POST /api/posts).
func (s *Server) CreatePostHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req postRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Title == "" {
			writeError(w, http.StatusBadRequest, "title is required")
			return
		}

		post := &posts.Post{
			ID:        uuid.New(),
			OwnerID:   AuthContext(r).User.ID,
			Title:     req.Title,
			Body:      req.Body,
			IsPrivate: req.IsPrivate,
			CreatedAt: time.Now(),
		}
		if err := s.repos.Posts.Create(r.Context(), post); err != nil {
			zlog.Err(err).Msg("Failed to create post")
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusCreated, post)
	}
}

// UpdatePostHandler updates a post the caller owns (PUT /api/posts/{id}).
func (s *Server) UpdatePostHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid post id")
			return
		}

		var req postRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		post := &posts.Post{
			ID:        id,
			Title:     req.Title,
			Body:      req.Body,
			IsPrivate: req.IsPrivate,
		}
		if err := s.repos.Posts.Update(r.Context(), post, AuthContext(r).User.ID); err != nil {
			if apperrors.Is(err, apperrors.ErrPostNotFound) {
				writeError(w, http.StatusNotFound, "post not found")
				return
			}
			zlog.Err(err).Msg("Failed to update post")
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

// DeletePostHandler removes a post the caller owns (DELETE /api/posts/{id}).
func (s *Server) DeletePostHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid post id")
			return
		}

		if err := s.repos.Posts.Delete(r.Context(), id, AuthContext(r).User.ID); err != nil {
			if apperrors.Is(err, apperrors.ErrPostNotFound) {
				writeError(w, http.StatusNotFound, "post not found")
				return
			}
			zlog.Err(err).Msg("Failed to delete post")
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}
