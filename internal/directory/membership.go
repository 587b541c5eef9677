package directory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dropDatabas3/odic/internal/domain/repository"
	"github.com/dropDatabas3/odic/internal/observability/logger"
	"github.com/dropDatabas3/odic/internal/validation"
)

// hydrateWorkers acota los lookups concurrentes al resolver membresías.
const hydrateWorkers = 8

func validateMembershipIDs(realmID, userID string) error {
	if !validation.ValidRealmID(realmID) {
		return fmt.Errorf("%w: malformed realm id", repository.ErrInvalidInput)
	}
	if !validation.ValidObjectID(userID) {
		return fmt.Errorf("%w: malformed user id", repository.ErrInvalidInput)
	}
	return nil
}

// AddToRealm agrega el usuario al set del realm (upsert, set-insert).
// Idempotente: (true, nil) la primera vez, (false, nil) si ya era
// miembro — un no-op que el caller no debe tratar como error.
func (d *Directory) AddToRealm(ctx context.Context, realmID, userID string) (added bool, err error) {
	defer func(start time.Time) { observe("add_to_realm", start, err) }(time.Now())

	if err = validateMembershipIDs(realmID, userID); err != nil {
		return false, err
	}
	added, err = d.members.Add(ctx, realmID, userID)
	if err != nil {
		return false, err
	}
	if !added {
		logger.From(ctx).Warn("user already registered to realm",
			logger.Layer("facade"), logger.Op("AddToRealm"),
			logger.RealmID(realmID), logger.UserID(userID))
	}
	return added, nil
}

// RemoveFromRealm saca el usuario del set del realm.
// (false, nil) si no era miembro; el set queda intacto.
func (d *Directory) RemoveFromRealm(ctx context.Context, realmID, userID string) (removed bool, err error) {
	defer func(start time.Time) { observe("remove_from_realm", start, err) }(time.Now())

	if err = validateMembershipIDs(realmID, userID); err != nil {
		return false, err
	}
	return d.members.Remove(ctx, realmID, userID)
}

// RealmUsers resuelve la membresía del realm a registros de usuario
// completos, con lookups concurrentes acotados. Secuencia vacía si el
// realm no tiene membresía. Un id colgante (usuario borrado por fuera)
// se saltea: jamás un crash, jamás una entrada nil.
func (d *Directory) RealmUsers(ctx context.Context, realmID string) (out []repository.User, err error) {
	defer func(start time.Time) { observe("realm_users", start, err) }(time.Now())

	if !validation.ValidRealmID(realmID) {
		return nil, fmt.Errorf("%w: malformed realm id", repository.ErrInvalidInput)
	}

	ids, err := d.members.Members(ctx, realmID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []repository.User{}, nil
	}

	var mu sync.Mutex
	users := make([]repository.User, 0, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(hydrateWorkers)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			u, lookupErr := d.users.GetByID(gctx, id)
			if repository.IsNotFound(lookupErr) || repository.IsInvalidInput(lookupErr) {
				// Referencia colgante: el usuario fue borrado de forma
				// independiente. Se filtra, no se propaga.
				logger.From(gctx).Warn("dangling membership reference",
					logger.Layer("facade"), logger.Op("RealmUsers"),
					logger.RealmID(realmID), logger.UserID(id))
				return nil
			}
			if lookupErr != nil {
				return lookupErr
			}
			mu.Lock()
			users = append(users, *u)
			mu.Unlock()
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}
	return users, nil
}

// AssignRole está declarado en el contrato pero sin implementar: la
// autorización por roles quedó fuera de este core. Error explícito,
// nunca un no-op silencioso que parezca éxito.
func (d *Directory) AssignRole(ctx context.Context, realmID, userID, role string) error {
	return fmt.Errorf("assign role: %w", repository.ErrNotImplemented)
}

// UserRoles está declarado en el contrato pero sin implementar.
func (d *Directory) UserRoles(ctx context.Context, realmID, userID string) ([]string, error) {
	return nil, fmt.Errorf("user roles: %w", repository.ErrNotImplemented)
}
