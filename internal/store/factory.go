package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dropDatabas3/odic/internal/domain/repository"
	"github.com/dropDatabas3/odic/internal/store/memory"
	"github.com/dropDatabas3/odic/internal/store/mongo"
)

// Repositories agrupa los cuatro repositorios del directorio más el
// ciclo de vida del backend que los respalda.
type Repositories interface {
	Realms() repository.RealmRepository
	Users() repository.UserRepository
	Clients() repository.ClientRepository
	Memberships() repository.MembershipRepository

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Config selecciona e inicializa el backend.
type Config struct {
	Driver string
	Mongo  struct {
		URI       string
		Database  string
		OpTimeout time.Duration
	}
}

// Open conecta el backend elegido y deja los índices listos.
// El dueño del proceso es quien maneja el ciclo de vida: Open al
// arranque, Close al apagar.
func Open(ctx context.Context, cfg Config) (Repositories, error) {
	switch strings.ToLower(cfg.Driver) {
	case "mongo", "mongodb":
		s := mongo.New(cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.OpTimeout)
		if err := s.Connect(ctx); err != nil {
			return nil, err
		}
		if err := s.EnsureIndexes(ctx); err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
		return s, nil
	case "memory":
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unsupported driver: %s", cfg.Driver)
	}
}
