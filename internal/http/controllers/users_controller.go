package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/odic/internal/directory"
	"github.com/dropDatabas3/odic/internal/domain/repository"
	"github.com/dropDatabas3/odic/internal/http/dto"
	httperrors "github.com/dropDatabas3/odic/internal/http/errors"
	"github.com/dropDatabas3/odic/internal/http/helpers"
	"github.com/dropDatabas3/odic/internal/observability/logger"
)

// UsersController maneja /v1/users.
type UsersController struct {
	dir *directory.Directory
}

// NewUsersController crea el controller de usuarios.
func NewUsersController(dir *directory.Directory) *UsersController {
	return &UsersController{dir: dir}
}

// Register maneja POST /v1/users
func (c *UsersController) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterUserRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	created, err := c.dir.RegisterUser(r.Context(), directory.RegisterUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	// MapUser recorta el digest: jamás sale por la API.
	helpers.WriteJSON(w, http.StatusCreated, dto.MapUser(created))
}

// Login maneja POST /v1/users/login
func (c *UsersController) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	u, err := c.dir.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		// "no existe" y "password incorrecto" colapsan en el mismo 401:
		// no filtramos qué emails están registrados.
		if repository.IsNotFound(err) || repository.IsInvalidInput(err) {
			httperrors.WriteError(w, httperrors.ErrInvalidCredentials)
			return
		}
		logger.From(r.Context()).Error("login failed", logger.Layer("controller"), logger.Err(err))
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.MapUser(u))
}

// ListUsers maneja GET /v1/users
func (c *UsersController) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := c.dir.Users(r.Context())
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.MapUsers(users))
}

// GetUser maneja GET /v1/users/{userID}
func (c *UsersController) GetUser(w http.ResponseWriter, r *http.Request) {
	u, err := c.dir.UserByID(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.MapUser(u))
}

// DeleteUser maneja DELETE /v1/users/{userID}
func (c *UsersController) DeleteUser(w http.ResponseWriter, r *http.Request) {
	deleted, err := c.dir.DeleteUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	if !deleted {
		httperrors.WriteError(w, httperrors.ErrNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
