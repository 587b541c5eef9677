package directory

import (
	"context"
	"fmt"
	"time"

	"github.com/dropDatabas3/odic/internal/domain/repository"
	"github.com/dropDatabas3/odic/internal/validation"
)

// CreateClientInput contiene los datos de registro de un client bajo un
// realm.
type CreateClientInput struct {
	RealmID     string
	Name        string
	Description string
}

// CreateClient registra un client nuevo bajo el realm.
// El nombre es único a nivel store; ErrConflict si ya existe.
// ErrNotFound si el realm no existe: un client no puede colgar de un
// realm inexistente.
func (d *Directory) CreateClient(ctx context.Context, input CreateClientInput) (out *repository.Client, err error) {
	defer func(start time.Time) { observe("create_client", start, err) }(time.Now())

	if !validation.ValidRealmID(input.RealmID) {
		return nil, fmt.Errorf("%w: malformed realm id", repository.ErrInvalidInput)
	}
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", repository.ErrInvalidInput)
	}
	if _, err = d.realms.GetByRealmID(ctx, input.RealmID); err != nil {
		return nil, err
	}

	return d.clients.Create(ctx, &repository.Client{
		RealmID:     input.RealmID,
		Name:        input.Name,
		Description: input.Description,
	})
}

// Clients retorna los clients del realm, sin orden garantizado.
func (d *Directory) Clients(ctx context.Context, realmID string) (out []repository.Client, err error) {
	defer func(start time.Time) { observe("list_clients", start, err) }(time.Now())

	if !validation.ValidRealmID(realmID) {
		return nil, fmt.Errorf("%w: malformed realm id", repository.ErrInvalidInput)
	}
	return d.clients.List(ctx, realmID)
}

// Client busca por id dentro del realm. Un client de otro realm es
// ErrNotFound: el scoping se aplica en toda operación, no sólo en create.
func (d *Directory) Client(ctx context.Context, realmID, clientID string) (out *repository.Client, err error) {
	defer func(start time.Time) { observe("get_client", start, err) }(time.Now())

	if err = validateClientIDs(realmID, clientID); err != nil {
		return nil, err
	}
	return d.clients.Get(ctx, realmID, clientID)
}

// UpdateClient aplica un patch parcial (nombre y/o descripción),
// refresca updated_at y retorna el registro post-update.
func (d *Directory) UpdateClient(ctx context.Context, realmID, clientID string, input repository.UpdateClientInput) (out *repository.Client, err error) {
	defer func(start time.Time) { observe("update_client", start, err) }(time.Now())

	if err = validateClientIDs(realmID, clientID); err != nil {
		return nil, err
	}
	if input.Name != nil && *input.Name == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", repository.ErrInvalidInput)
	}
	return d.clients.Update(ctx, realmID, clientID, input)
}

// DeleteClient elimina por id dentro del realm. ErrNotFound si nada
// coincidió.
func (d *Directory) DeleteClient(ctx context.Context, realmID, clientID string) (err error) {
	defer func(start time.Time) { observe("delete_client", start, err) }(time.Now())

	if err = validateClientIDs(realmID, clientID); err != nil {
		return err
	}
	return d.clients.Delete(ctx, realmID, clientID)
}

func validateClientIDs(realmID, clientID string) error {
	if !validation.ValidRealmID(realmID) {
		return fmt.Errorf("%w: malformed realm id", repository.ErrInvalidInput)
	}
	if !validation.ValidObjectID(clientID) {
		return fmt.Errorf("%w: malformed client id", repository.ErrInvalidInput)
	}
	return nil
}
