package repository

import (
	"context"
	"time"
)

// Client representa una aplicación registrada bajo un realm.
//
// Name es único a nivel de store (unique index), no por realm. Todas las
// operaciones filtran por RealmID: un client no es visible ni mutable
// desde otro realm.
type Client struct {
	ID          string
	RealmID     string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// UpdateClientInput contiene los campos parchables de un client.
// Los punteros nil se dejan como están.
type UpdateClientInput struct {
	Name        *string
	Description *string
}

// ClientRepository define operaciones sobre clients, siempre scoped al
// realm que llega del caller.
type ClientRepository interface {
	// Create inserta un client nuevo, asigna ID y timestamps.
	// Retorna ErrConflict si ya existe un client con el mismo nombre.
	Create(ctx context.Context, c *Client) (*Client, error)

	// List retorna los clients del realm, sin orden garantizado.
	List(ctx context.Context, realmID string) ([]Client, error)

	// Get busca por ID dentro del realm. Retorna ErrNotFound si no existe
	// o pertenece a otro realm.
	Get(ctx context.Context, realmID, clientID string) (*Client, error)

	// Update aplica un patch parcial, refresca updated_at y retorna el
	// registro post-update. Retorna ErrNotFound si nada coincidió.
	Update(ctx context.Context, realmID, clientID string, input UpdateClientInput) (*Client, error)

	// Delete elimina por ID dentro del realm.
	// Retorna ErrNotFound si nada coincidió.
	Delete(ctx context.Context, realmID, clientID string) error

	// DeleteByRealm elimina todos los clients del realm (paso del cascade
	// de DeleteRealm). Retorna cuántos borró; cero no es error.
	DeleteByRealm(ctx context.Context, realmID string) (int64, error)
}
