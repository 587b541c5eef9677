package directory

import (
	"context"
	"fmt"
	"time"

	"github.com/dropDatabas3/odic/internal/domain/repository"
	"github.com/dropDatabas3/odic/internal/metrics"
	"github.com/dropDatabas3/odic/internal/observability/logger"
	"github.com/dropDatabas3/odic/internal/validation"
)

// CreateRealmInput contiene los datos de registro de un realm.
type CreateRealmInput struct {
	RealmID     string
	DisplayName string
}

// CreateRealm valida y registra un realm nuevo.
// Retorna ErrInvalidInput si realm_id está vacío o malformado y
// ErrConflict si ya existe (lo corta el unique index, no un pre-check).
func (d *Directory) CreateRealm(ctx context.Context, input CreateRealmInput) (out *repository.Realm, err error) {
	defer func(start time.Time) { observe("create_realm", start, err) }(time.Now())

	if !validation.ValidRealmID(input.RealmID) {
		return nil, fmt.Errorf("%w: realm_id is required (lowercase alphanumeric/dash)", repository.ErrInvalidInput)
	}

	r := repository.Realm{RealmID: input.RealmID, DisplayName: input.DisplayName}
	if err = d.realms.Create(ctx, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Realms retorna todos los realms, sin orden garantizado.
func (d *Directory) Realms(ctx context.Context) (out []repository.Realm, err error) {
	defer func(start time.Time) { observe("list_realms", start, err) }(time.Now())
	return d.realms.List(ctx)
}

// Realm busca por la clave realm_id. ErrNotFound si no existe.
func (d *Directory) Realm(ctx context.Context, realmID string) (out *repository.Realm, err error) {
	defer func(start time.Time) { observe("get_realm", start, err) }(time.Now())

	if !validation.ValidRealmID(realmID) {
		return nil, fmt.Errorf("%w: malformed realm id", repository.ErrInvalidInput)
	}
	return d.realms.GetByRealmID(ctx, realmID)
}

// UpdateRealm aplica un patch parcial y retorna el registro post-update.
func (d *Directory) UpdateRealm(ctx context.Context, realmID string, input repository.UpdateRealmInput) (out *repository.Realm, err error) {
	defer func(start time.Time) { observe("update_realm", start, err) }(time.Now())

	if !validation.ValidRealmID(realmID) {
		return nil, fmt.Errorf("%w: malformed realm id", repository.ErrInvalidInput)
	}
	return d.realms.Update(ctx, realmID, input)
}

// DeleteRealm elimina el realm y sus dependencias: primero el documento
// de membresía, después los clients del realm, al final el registro.
//
// La secuencia NO es transaccional: un crash entre pasos deja un realm
// parcialmente borrado (gap de consistencia aceptado, sin saga ni
// compensación). Cada paso es idempotente, así que reintentar el borrado
// completo es seguro; un paso fallido se loguea para reconciliación
// manual. Retorna (true, nil) si el registro del realm existía.
func (d *Directory) DeleteRealm(ctx context.Context, realmID string) (deleted bool, err error) {
	defer func(start time.Time) { observe("delete_realm", start, err) }(time.Now())

	if !validation.ValidRealmID(realmID) {
		return false, fmt.Errorf("%w: malformed realm id", repository.ErrInvalidInput)
	}

	log := logger.From(ctx).With(logger.Layer("facade"), logger.Op("DeleteRealm"), logger.RealmID(realmID))

	if err = d.members.RemoveAll(ctx, realmID); err != nil {
		metrics.CascadeSteps.WithLabelValues("memberships", "error").Inc()
		log.Error("cascade step failed: memberships", logger.Err(err))
		return false, fmt.Errorf("delete realm %s: remove memberships: %w", realmID, err)
	}
	metrics.CascadeSteps.WithLabelValues("memberships", "ok").Inc()

	n, err := d.clients.DeleteByRealm(ctx, realmID)
	if err != nil {
		metrics.CascadeSteps.WithLabelValues("clients", "error").Inc()
		log.Error("cascade step failed: clients", logger.Err(err))
		return false, fmt.Errorf("delete realm %s: remove clients: %w", realmID, err)
	}
	metrics.CascadeSteps.WithLabelValues("clients", "ok").Inc()

	deleted, err = d.realms.Delete(ctx, realmID)
	if err != nil {
		metrics.CascadeSteps.WithLabelValues("realm", "error").Inc()
		log.Error("cascade step failed: realm record", logger.Err(err))
		return false, fmt.Errorf("delete realm %s: %w", realmID, err)
	}
	metrics.CascadeSteps.WithLabelValues("realm", "ok").Inc()

	log.Info("realm deleted", logger.Count(int(n)))
	return deleted, nil
}
