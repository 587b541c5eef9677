package dto

import (
	"time"

	"github.com/dropDatabas3/odic/internal/domain/repository"
)

type CreateClientRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type UpdateClientRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

type ClientResponse struct {
	ID          string    `json:"id"`
	RealmID     string    `json:"realm_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func MapClient(c *repository.Client) ClientResponse {
	return ClientResponse{
		ID:          c.ID,
		RealmID:     c.RealmID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func MapClients(clients []repository.Client) []ClientResponse {
	out := make([]ClientResponse, len(clients))
	for i := range clients {
		out[i] = MapClient(&clients[i])
	}
	return out
}
