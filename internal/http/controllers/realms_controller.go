// Package controllers contiene los handlers HTTP del directorio. Cada
// controller delega en el facade y mapea sus sentinels a AppError; acá
// no vive ninguna regla de negocio.
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

// RealmsController maneja /v1/realms y la membresía bajo cada realm.
type RealmsController struct {
	dir *directory.Directory
}

// NewRealmsController crea el controller de realms.
func NewRealmsController(dir *directory.Directory) *RealmsController {
	return &RealmsController{dir: dir}
}

// ListRealms maneja GET /v1/realms
func (c *RealmsController) ListRealms(w http.ResponseWriter, r *http.Request) {
	realms, err := c.dir.Realms(r.Context())
	if err != nil {
		logger.From(r.Context()).Error("list realms failed", logger.Layer("controller"), logger.Err(err))
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.MapRealms(realms))
}

// CreateRealm maneja POST /v1/realms
func (c *RealmsController) CreateRealm(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateRealmRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	created, err := c.dir.CreateRealm(r.Context(), directory.CreateRealmInput{
		RealmID:     req.RealmID,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, dto.MapRealm(created))
}

// GetRealm maneja GET /v1/realms/{realmID}
func (c *RealmsController) GetRealm(w http.ResponseWriter, r *http.Request) {
	realm, err := c.dir.Realm(r.Context(), chi.URLParam(r, "realmID"))
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.MapRealm(realm))
}

// UpdateRealm maneja PATCH /v1/realms/{realmID}
func (c *RealmsController) UpdateRealm(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateRealmRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	updated, err := c.dir.UpdateRealm(r.Context(), chi.URLParam(r, "realmID"),
		repository.UpdateRealmInput{DisplayName: req.DisplayName})
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.MapRealm(updated))
}

// DeleteRealm maneja DELETE /v1/realms/{realmID}
func (c *RealmsController) DeleteRealm(w http.ResponseWriter, r *http.Request) {
	deleted, err := c.dir.DeleteRealm(r.Context(), chi.URLParam(r, "realmID"))
	if err != nil {
		logger.From(r.Context()).Error("delete realm failed", logger.Layer("controller"), logger.Err(err))
		httperrors.WriteError(w, err)
		return
	}
	if !deleted {
		httperrors.WriteError(w, httperrors.ErrNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListMembers maneja GET /v1/realms/{realmID}/users
func (c *RealmsController) ListMembers(w http.ResponseWriter, r *http.Request) {
	users, err := c.dir.RealmUsers(r.Context(), chi.URLParam(r, "realmID"))
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.MapUsers(users))
}

// AddMember maneja POST /v1/realms/{realmID}/users
func (c *RealmsController) AddMember(w http.ResponseWriter, r *http.Request) {
	var req dto.AddMemberRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	realmID := chi.URLParam(r, "realmID")

	added, err := c.dir.AddToRealm(r.Context(), realmID, req.UserID)
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	status := http.StatusCreated
	if !added {
		// Ya era miembro: no-op, no error.
		status = http.StatusOK
	}
	helpers.WriteJSON(w, status, dto.MembershipResponse{
		RealmID: realmID,
		UserID:  req.UserID,
		Changed: added,
	})
}

// RemoveMember maneja DELETE /v1/realms/{realmID}/users/{userID}
func (c *RealmsController) RemoveMember(w http.ResponseWriter, r *http.Request) {
	realmID := chi.URLParam(r, "realmID")
	userID := chi.URLParam(r, "userID")

	removed, err := c.dir.RemoveFromRealm(r.Context(), realmID, userID)
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.MembershipResponse{
		RealmID: realmID,
		UserID:  userID,
		Changed: removed,
	})
}
