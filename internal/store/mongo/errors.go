package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/dropDatabas3/odic/internal/domain/repository"
)

// mapErr es la frontera de conversión de errores del driver: todo error
// que sale de este paquete es uno de los sentinels de repository.
func mapErr(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotConnected):
		return err
	case errors.Is(err, mongo.ErrNoDocuments):
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%s: %w", op, repository.ErrConflict)
	case errors.Is(err, context.DeadlineExceeded) || mongo.IsTimeout(err):
		return fmt.Errorf("%s: %w", op, repository.ErrTimeout)
	default:
		return fmt.Errorf("%s: %w: %v", op, repository.ErrUnavailable, err)
	}
}

func zapDB(name string) zap.Field { return zap.String("database", name) }
