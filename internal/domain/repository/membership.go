package repository

import "context"

// Membership es el documento por-realm que materializa la relación
// realm↔usuarios: realm_id más el set de user ids. Un user id aparece a
// lo sumo una vez por construcción ($addToSet).
type Membership struct {
	RealmID string
	UserIDs []string
}

// MembershipRepository define operaciones sobre la membresía de realms.
//
// Add y Remove son single-document atomics del store: no hay secuencia
// check-then-act que requiera locking en proceso.
type MembershipRepository interface {
	// Add agrega userID al set del realm (upsert: crea el documento si no
	// existe). Retorna (true, nil) sólo si el store reporta documento nuevo
	// o set modificado; (false, nil) significa "ya era miembro", que NO es
	// un error.
	Add(ctx context.Context, realmID, userID string) (bool, error)

	// Remove saca userID del set. Retorna (true, nil) sólo si el set
	// cambió; (false, nil) si no era miembro.
	Remove(ctx context.Context, realmID, userID string) (bool, error)

	// Members retorna los user ids del realm. Slice vacío si el realm no
	// tiene documento de membresía.
	Members(ctx context.Context, realmID string) ([]string, error)

	// RemoveAll elimina el documento de membresía del realm completo
	// (paso del cascade de DeleteRealm). Idempotente.
	RemoveAll(ctx context.Context, realmID string) error

	// RemoveUserEverywhere saca al usuario del set de todos los realms.
	// Usado al borrar un usuario para no dejar referencias colgantes.
	// Retorna cuántos documentos modificó.
	RemoveUserEverywhere(ctx context.Context, userID string) (int64, error)
}
