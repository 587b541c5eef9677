package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/odic/internal/directory"
	"github.com/dropDatabas3/odic/internal/domain/repository"
	"github.com/dropDatabas3/odic/internal/http/dto"
	httperrors "github.com/dropDatabas3/odic/internal/http/errors"
	"github.com/dropDatabas3/odic/internal/http/helpers"
)

// ClientsController maneja /v1/realms/{realmID}/clients. Todas las rutas
// llevan el realm en el path: no hay forma de tocar un client sin decir
// desde qué realm.
type ClientsController struct {
	dir *directory.Directory
}

// NewClientsController crea el controller de clients.
func NewClientsController(dir *directory.Directory) *ClientsController {
	return &ClientsController{dir: dir}
}

// ListClients maneja GET /v1/realms/{realmID}/clients
func (c *ClientsController) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := c.dir.Clients(r.Context(), chi.URLParam(r, "realmID"))
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.MapClients(clients))
}

// CreateClient maneja POST /v1/realms/{realmID}/clients
func (c *ClientsController) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateClientRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	created, err := c.dir.CreateClient(r.Context(), directory.CreateClientInput{
		RealmID:     chi.URLParam(r, "realmID"),
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, dto.MapClient(created))
}

// GetClient maneja GET /v1/realms/{realmID}/clients/{clientID}
func (c *ClientsController) GetClient(w http.ResponseWriter, r *http.Request) {
	client, err := c.dir.Client(r.Context(), chi.URLParam(r, "realmID"), chi.URLParam(r, "clientID"))
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.MapClient(client))
}

// UpdateClient maneja PATCH /v1/realms/{realmID}/clients/{clientID}
func (c *ClientsController) UpdateClient(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateClientRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	updated, err := c.dir.UpdateClient(r.Context(),
		chi.URLParam(r, "realmID"), chi.URLParam(r, "clientID"),
		repository.UpdateClientInput{Name: req.Name, Description: req.Description})
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.MapClient(updated))
}

// DeleteClient maneja DELETE /v1/realms/{realmID}/clients/{clientID}
func (c *ClientsController) DeleteClient(w http.ResponseWriter, r *http.Request) {
	err := c.dir.DeleteClient(r.Context(), chi.URLParam(r, "realmID"), chi.URLParam(r, "clientID"))
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
