// Package directory es el facade del directorio: compone los repositorios
// de realms, usuarios, clients y membresías con el hasher de credenciales,
// y es dueño de los flujos multi-entidad (registro, cascade de borrado,
// hidratación de membresías).
//
// Cada operación del store es atómica sólo a nivel de colección; las
// secuencias multi-paso de este paquete (el cascade de DeleteRealm en
// particular) no son transaccionales y están documentadas como tal.
package directory

import (
	"time"

	"github.com/dropDatabas3/odic/internal/domain/repository"
	"github.com/dropDatabas3/odic/internal/metrics"
	"github.com/dropDatabas3/odic/internal/security/password"
	"github.com/dropDatabas3/odic/internal/store"
)

// Directory expone las operaciones del directorio a la capa HTTP.
// Stateless: todo read va fresco al store, no hay copias cacheadas.
type Directory struct {
	realms  repository.RealmRepository
	users   repository.UserRepository
	clients repository.ClientRepository
	members repository.MembershipRepository
	hasher  password.Hasher
}

// New crea el facade sobre un backend ya abierto.
func New(repos store.Repositories, hasher password.Hasher) *Directory {
	return &Directory{
		realms:  repos.Realms(),
		users:   repos.Users(),
		clients: repos.Clients(),
		members: repos.Memberships(),
		hasher:  hasher,
	}
}

// observe registra métricas de la operación: counter por outcome y
// latencia de la llamada.
func observe(op string, start time.Time, err error) {
	metrics.DirectoryOps.WithLabelValues(op, outcome(err)).Inc()
	metrics.StoreLatency.WithLabelValues(op).Observe(float64(time.Since(start).Milliseconds()))
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case repository.IsConflict(err):
		return "conflict"
	case repository.IsNotFound(err):
		return "not_found"
	case repository.IsInvalidInput(err):
		return "invalid"
	default:
		return "error"
	}
}
