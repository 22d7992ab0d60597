package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/notifyd/notifyd/internal/service"
	"github.com/notifyd/notifyd/internal/storage"
)

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.userSvc.List(r.Context()))
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := userIDParam(w, r)
	if !ok {
		return
	}

	user, err := s.userSvc.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, err, "failed to get user")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req service.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errInvalidJSONBody)
		return
	}

	user, err := s.userSvc.Create(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, err, "failed to create user")
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := userIDParam(w, r)
	if !ok {
		return
	}

	var user storage.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		writeError(w, http.StatusBadRequest, errInvalidJSONBody)
		return
	}

	updated, err := s.userSvc.Update(r.Context(), id, user)
	if err != nil {
		s.writeServiceError(w, err, "failed to update user")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleUpdateUserByEmail(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateByEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errInvalidJSONBody)
		return
	}

	updated, err := s.userSvc.UpdateByEmail(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, err, "failed to update user")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := userIDParam(w, r)
	if !ok {
		return
	}

	if err := s.userSvc.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, err, "failed to delete user")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "user " + strconv.Itoa(id) + " preferences deleted successfully",
	})
}

// userIDParam parses the {id} route parameter, writing a 400 on failure.
func userIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "user id must be an integer")
		return 0, false
	}
	return id, true
}

// writeServiceError maps typed service errors to their HTTP status; anything
// unrecognized becomes a 500 with the given generic message.
func (s *Server) writeServiceError(w http.ResponseWriter, err error, generic string) {
	var (
		nfe *service.NotFoundError
		ce  *service.ConflictError
		ve  *service.ValidationError
	)
	switch {
	case errors.As(err, &nfe):
		writeError(w, http.StatusNotFound, nfe.Error())
	case errors.As(err, &ce):
		writeError(w, http.StatusConflict, ce.Error())
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Error())
	default:
		s.logger.Error(generic, "error", err)
		writeError(w, http.StatusInternalServerError, generic)
	}
}
