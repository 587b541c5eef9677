package repository

import (
	"context"
	"time"
)

// Realm representa un tenant/namespace del directorio.
//
// RealmID es la clave autoritativa (provista por el caller, única en el
// store). ID es el identificador interno de almacenamiento; no se usa como
// clave externa.
type Realm struct {
	ID          string
	RealmID     string
	DisplayName string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// UpdateRealmInput contiene los campos actualizables de un realm.
type UpdateRealmInput struct {
	DisplayName *string
}

// RealmRepository define operaciones sobre realms.
type RealmRepository interface {
	// Create inserta un realm nuevo. Asigna ID interno.
	// Retorna ErrConflict si realm_id ya existe (unique index).
	Create(ctx context.Context, r *Realm) error

	// List retorna todos los realms, sin orden garantizado.
	List(ctx context.Context) ([]Realm, error)

	// GetByRealmID busca por la clave realm_id.
	// Retorna ErrNotFound si no existe.
	GetByRealmID(ctx context.Context, realmID string) (*Realm, error)

	// Update actualiza campos del realm y refresca updated_at.
	// Retorna ErrNotFound si no existe.
	Update(ctx context.Context, realmID string, input UpdateRealmInput) (*Realm, error)

	// Delete elimina el realm. Retorna (true, nil) si borró exactamente un
	// registro y (false, nil) si nada coincidió: el acknowledgement del
	// store no distingue ambos casos, el deleted count sí.
	Delete(ctx context.Context, realmID string) (bool, error)
}
