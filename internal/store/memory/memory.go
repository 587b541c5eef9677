// Package memory implementa los repositorios del directorio en memoria.
//
// Mismo contrato observable que el adapter mongo (sentinels, counts,
// semántica de set en membresías) pero sobre maps con RWMutex. Pensado
// para desarrollo y tests; no persiste nada.
package memory

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dropDatabas3/odic/internal/domain/repository"
)

// Store guarda las cuatro colecciones bajo un único lock. Suficiente para
// el caso de uso (tests, dev): la atomicidad por operación queda igual de
// fuerte que la del store real.
type Store struct {
	mu          sync.RWMutex
	realms      map[string]repository.Realm   // realm_id -> realm
	users       map[string]repository.User    // id -> user
	clients     map[string]repository.Client  // id -> client
	memberships map[string]map[string]struct{} // realm_id -> set of user ids
}

// New crea un Store vacío.
func New() *Store {
	return &Store{
		realms:      map[string]repository.Realm{},
		users:       map[string]repository.User{},
		clients:     map[string]repository.Client{},
		memberships: map[string]map[string]struct{}{},
	}
}

// Ping siempre responde ok.
func (s *Store) Ping(ctx context.Context) error { return nil }

// Close es no-op.
func (s *Store) Close(ctx context.Context) error { return nil }

// Realms retorna el repositorio de realms.
func (s *Store) Realms() repository.RealmRepository { return &realmRepo{s: s} }

// Users retorna el repositorio de usuarios.
func (s *Store) Users() repository.UserRepository { return &userRepo{s: s} }

// Clients retorna el repositorio de clients.
func (s *Store) Clients() repository.ClientRepository { return &clientRepo{s: s} }

// Memberships retorna el repositorio de membresías.
func (s *Store) Memberships() repository.MembershipRepository { return &membershipRepo{s: s} }

func newID() string { return primitive.NewObjectID().Hex() }

// ---- realms ----

type realmRepo struct{ s *Store }

func (r *realmRepo) Create(ctx context.Context, realm *repository.Realm) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.realms[realm.RealmID]; ok {
		return repository.ErrConflict
	}
	now := time.Now().UTC()
	realm.ID = newID()
	realm.CreatedAt = now
	realm.UpdatedAt = now
	r.s.realms[realm.RealmID] = *realm
	return nil
}

func (r *realmRepo) List(ctx context.Context) ([]repository.Realm, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]repository.Realm, 0, len(r.s.realms))
	for _, v := range r.s.realms {
		out = append(out, v)
	}
	return out, nil
}

func (r *realmRepo) GetByRealmID(ctx context.Context, realmID string) (*repository.Realm, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	v, ok := r.s.realms[realmID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := v
	return &out, nil
}

func (r *realmRepo) Update(ctx context.Context, realmID string, input repository.UpdateRealmInput) (*repository.Realm, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.realms[realmID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if input.DisplayName != nil {
		v.DisplayName = *input.DisplayName
	}
	v.UpdatedAt = time.Now().UTC()
	r.s.realms[realmID] = v
	out := v
	return &out, nil
}

func (r *realmRepo) Delete(ctx context.Context, realmID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.realms[realmID]; !ok {
		return false, nil
	}
	delete(r.s.realms, realmID)
	return true, nil
}

// ---- users ----

type userRepo struct{ s *Store }

func (r *userRepo) Create(ctx context.Context, input repository.CreateUserInput) (*repository.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == input.Email {
			return nil, repository.ErrConflict
		}
	}
	now := time.Now().UTC()
	u := repository.User{
		ID:           newID(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.s.users[u.ID] = u
	out := u
	return &out, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*repository.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepo) GetByID(ctx context.Context, userID string) (*repository.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := u
	return &out, nil
}

func (r *userRepo) List(ctx context.Context) ([]repository.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]repository.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *userRepo) Delete(ctx context.Context, userID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[userID]; !ok {
		return false, nil
	}
	delete(r.s.users, userID)
	return true, nil
}

// ---- clients ----

type clientRepo struct{ s *Store }

func (r *clientRepo) Create(ctx context.Context, c *repository.Client) (*repository.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	// Unicidad de nombre a nivel store, igual que el unique index real.
	for _, existing := range r.s.clients {
		if existing.Name == c.Name {
			return nil, repository.ErrConflict
		}
	}
	now := time.Now().UTC()
	created := repository.Client{
		ID:          newID(),
		RealmID:     c.RealmID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.s.clients[created.ID] = created
	out := created
	return &out, nil
}

func (r *clientRepo) List(ctx context.Context, realmID string) ([]repository.Client, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []repository.Client{}
	for _, c := range r.s.clients {
		if c.RealmID == realmID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *clientRepo) Get(ctx context.Context, realmID, clientID string) (*repository.Client, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.clients[clientID]
	if !ok || c.RealmID != realmID {
		return nil, repository.ErrNotFound
	}
	out := c
	return &out, nil
}

func (r *clientRepo) Update(ctx context.Context, realmID, clientID string, input repository.UpdateClientInput) (*repository.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.clients[clientID]
	if !ok || c.RealmID != realmID {
		return nil, repository.ErrNotFound
	}
	if input.Name != nil {
		for id, other := range r.s.clients {
			if id != clientID && other.Name == *input.Name {
				return nil, repository.ErrConflict
			}
		}
		c.Name = *input.Name
	}
	if input.Description != nil {
		c.Description = *input.Description
	}
	c.UpdatedAt = time.Now().UTC()
	r.s.clients[clientID] = c
	out := c
	return &out, nil
}

func (r *clientRepo) Delete(ctx context.Context, realmID, clientID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.clients[clientID]
	if !ok || c.RealmID != realmID {
		return repository.ErrNotFound
	}
	delete(r.s.clients, clientID)
	return nil
}

func (r *clientRepo) DeleteByRealm(ctx context.Context, realmID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, c := range r.s.clients {
		if c.RealmID == realmID {
			delete(r.s.clients, id)
			n++
		}
	}
	return n, nil
}

// ---- memberships ----

type membershipRepo struct{ s *Store }

func (r *membershipRepo) Add(ctx context.Context, realmID, userID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	set, ok := r.s.memberships[realmID]
	if !ok {
		set = map[string]struct{}{}
		r.s.memberships[realmID] = set
	}
	if _, member := set[userID]; member {
		return false, nil
	}
	set[userID] = struct{}{}
	return true, nil
}

func (r *membershipRepo) Remove(ctx context.Context, realmID, userID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	set, ok := r.s.memberships[realmID]
	if !ok {
		return false, nil
	}
	if _, member := set[userID]; !member {
		return false, nil
	}
	delete(set, userID)
	return true, nil
}

func (r *membershipRepo) Members(ctx context.Context, realmID string) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	set, ok := r.s.memberships[realmID]
	if !ok {
		return []string{}, nil
	}
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out, nil
}

func (r *membershipRepo) RemoveAll(ctx context.Context, realmID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.memberships, realmID)
	return nil
}

func (r *membershipRepo) RemoveUserEverywhere(ctx context.Context, userID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, set := range r.s.memberships {
		if _, member := set[userID]; member {
			delete(set, userID)
			n++
		}
	}
	return n, nil
}
