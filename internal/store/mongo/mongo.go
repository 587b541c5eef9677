// Package mongo implementa los repositorios del directorio sobre MongoDB.
//
// Las invariantes de unicidad (realm_id, email, nombre de client) se
// apoyan exclusivamente en unique indexes: las secuencias check-then-act
// de capas superiores no son atómicas y el índice es quien corta la
// carrera. EnsureIndexes debe correr en el arranque.
package mongo

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dropDatabas3/odic/internal/domain/repository"
	"github.com/dropDatabas3/odic/internal/observability/logger"
)

const (
	collRealms      = "realms"
	collUsers       = "users"
	collClients     = "clients"
	collMemberships = "realmAuthInfo"
)

// Store es el connection provider: un único handle compartido, Connect
// idempotente y Database() que falla con ErrNotConnected si se pide antes
// de conectar.
type Store struct {
	uri       string
	dbName    string
	opTimeout time.Duration

	mu     sync.Mutex
	client *mongo.Client
	db     *mongo.Database
}

// New crea el Store sin conectar. opTimeout acota cada operación contra
// el store; <=0 usa 5s.
func New(uri, database string, opTimeout time.Duration) *Store {
	if opTimeout <= 0 {
		opTimeout = 5 * time.Second
	}
	return &Store{uri: uri, dbName: database, opTimeout: opTimeout}
}

// Connect establece la conexión si todavía no existe; llamadas
// posteriores son no-op. Si el intento falla no queda estado a medias:
// el próximo Connect reintenta desde cero.
func (s *Store) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		return nil
	}

	cctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	client, err := mongo.Connect(cctx, options.Client().ApplyURI(s.uri))
	if err != nil {
		logger.L().Error("mongo connect failed", logger.Err(err))
		return mapErr("connect", err)
	}
	if err := client.Ping(cctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		logger.L().Error("mongo ping failed", logger.Err(err))
		return mapErr("connect", err)
	}

	s.client = client
	s.db = client.Database(s.dbName)
	logger.L().Info("connected to mongo", logger.Component("store"), zapDB(s.dbName))
	return nil
}

// Database retorna el handle activo o ErrNotConnected.
func (s *Store) Database() (*mongo.Database, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil, repository.ErrNotConnected
	}
	return s.db, nil
}

// Ping verifica la conexión.
func (s *Store) Ping(ctx context.Context) error {
	s.mu.Lock()
	client := s.client
	s.mu.Unlock()
	if client == nil {
		return repository.ErrNotConnected
	}
	cctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()
	return mapErr("ping", client.Ping(cctx, nil))
}

// Close cierra la conexión (idempotente).
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client == nil {
		return nil
	}
	err := s.client.Disconnect(ctx)
	s.client = nil
	s.db = nil
	return err
}

// EnsureIndexes crea los unique indexes de los que depende todo lo demás.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	db, err := s.Database()
	if err != nil {
		return err
	}
	cctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	unique := options.Index().SetUnique(true)
	specs := []struct {
		coll string
		keys bson.D
	}{
		{collRealms, bson.D{{Key: "realm_id", Value: 1}}},
		{collUsers, bson.D{{Key: "user_email", Value: 1}}},
		{collClients, bson.D{{Key: "name", Value: 1}}},
		{collMemberships, bson.D{{Key: "realm_id", Value: 1}}},
	}
	for _, sp := range specs {
		_, err := db.Collection(sp.coll).Indexes().CreateOne(cctx, mongo.IndexModel{
			Keys:    sp.keys,
			Options: unique,
		})
		if err != nil {
			return mapErr("ensure indexes "+sp.coll, err)
		}
	}
	return nil
}

// opCtx aplica el deadline por operación configurado.
func (s *Store) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.opTimeout)
}

func (s *Store) collection(name string) (*mongo.Collection, error) {
	db, err := s.Database()
	if err != nil {
		return nil, err
	}
	return db.Collection(name), nil
}

// Realms retorna el repositorio de realms sobre este store.
func (s *Store) Realms() repository.RealmRepository { return &realmRepo{s: s} }

// Users retorna el repositorio de usuarios sobre este store.
func (s *Store) Users() repository.UserRepository { return &userRepo{s: s} }

// Clients retorna el repositorio de clients sobre este store.
func (s *Store) Clients() repository.ClientRepository { return &clientRepo{s: s} }

// Memberships retorna el repositorio de membresías sobre este store.
func (s *Store) Memberships() repository.MembershipRepository { return &membershipRepo{s: s} }
