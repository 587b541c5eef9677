package directory

import (
	"context"
	"fmt"
	"time"

	"github.com/dropDatabas3/odic/internal/domain/repository"
	"github.com/dropDatabas3/odic/internal/observability/logger"
	"github.com/dropDatabas3/odic/internal/validation"
)

// RegisterUserInput contiene los datos de registro. Password viaja en
// claro sólo hasta el hasher; nunca se persiste ni se loguea.
type RegisterUserInput struct {
	Name     string
	Email    string
	Password string
}

// RegisterUser registra un usuario nuevo.
// Retorna ErrConflict si el email ya está en uso. El pre-check de email
// no es atómico con el insert: dos registros concurrentes con el mismo
// email pueden pasar ambos el check, y es el unique index quien rechaza
// al segundo (también mapeado a ErrConflict).
//
// El registro retornado incluye el digest; la capa HTTP es responsable
// de no exponerlo (los DTO lo omiten).
func (d *Directory) RegisterUser(ctx context.Context, input RegisterUserInput) (out *repository.User, err error) {
	defer func(start time.Time) { observe("register_user", start, err) }(time.Now())

	if !validation.ValidEmail(input.Email) {
		return nil, fmt.Errorf("%w: malformed email", repository.ErrInvalidInput)
	}
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", repository.ErrInvalidInput)
	}
	if input.Password == "" {
		return nil, fmt.Errorf("%w: password is required", repository.ErrInvalidInput)
	}

	if _, lookupErr := d.users.GetByEmail(ctx, input.Email); lookupErr == nil {
		return nil, fmt.Errorf("%w: email already registered", repository.ErrConflict)
	} else if !repository.IsNotFound(lookupErr) {
		return nil, lookupErr
	}

	digest, err := d.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: hash password", repository.ErrInvalidInput)
	}

	out, err = d.users.Create(ctx, repository.CreateUserInput{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: digest,
	})
	if err != nil {
		return nil, err
	}

	logger.From(ctx).Info("user registered",
		logger.Layer("facade"), logger.Op("RegisterUser"), logger.UserID(out.ID))
	return out, nil
}

// Authenticate verifica email+password contra el digest almacenado, con
// el mismo colaborador de hashing que el registro. Tanto "no existe"
// como "password incorrecto" salen como ErrNotFound: la capa HTTP los
// colapsa en credenciales inválidas.
func (d *Directory) Authenticate(ctx context.Context, email, plain string) (out *repository.User, err error) {
	defer func(start time.Time) { observe("authenticate", start, err) }(time.Now())

	if !validation.ValidEmail(email) {
		return nil, fmt.Errorf("%w: malformed email", repository.ErrInvalidInput)
	}
	u, err := d.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !d.hasher.Verify(plain, u.PasswordHash) {
		return nil, fmt.Errorf("%w: bad credentials", repository.ErrNotFound)
	}
	return u, nil
}

// UserByEmail busca por email. ErrNotFound si no existe.
func (d *Directory) UserByEmail(ctx context.Context, email string) (out *repository.User, err error) {
	defer func(start time.Time) { observe("get_user_by_email", start, err) }(time.Now())

	if !validation.ValidEmail(email) {
		return nil, fmt.Errorf("%w: malformed email", repository.ErrInvalidInput)
	}
	return d.users.GetByEmail(ctx, email)
}

// UserByID busca por id. ErrInvalidInput si el id está malformado,
// ErrNotFound si no existe.
func (d *Directory) UserByID(ctx context.Context, userID string) (out *repository.User, err error) {
	defer func(start time.Time) { observe("get_user_by_id", start, err) }(time.Now())

	if !validation.ValidObjectID(userID) {
		return nil, fmt.Errorf("%w: malformed user id", repository.ErrInvalidInput)
	}
	return d.users.GetByID(ctx, userID)
}

// Users retorna todos los usuarios, sin orden garantizado.
func (d *Directory) Users(ctx context.Context) (out []repository.User, err error) {
	defer func(start time.Time) { observe("list_users", start, err) }(time.Now())
	return d.users.List(ctx)
}

// DeleteUser elimina el usuario y lo saca del set de todos los realms
// para no dejar referencias colgantes. Retorna (true, nil) sólo si el
// registro existía. La limpieza de membresías es best-effort posterior
// al delete (misma salvedad de no-atomicidad que el cascade de realms).
func (d *Directory) DeleteUser(ctx context.Context, userID string) (deleted bool, err error) {
	defer func(start time.Time) { observe("delete_user", start, err) }(time.Now())

	if !validation.ValidObjectID(userID) {
		return false, fmt.Errorf("%w: malformed user id", repository.ErrInvalidInput)
	}

	deleted, err = d.users.Delete(ctx, userID)
	if err != nil || !deleted {
		return deleted, err
	}

	if n, cleanupErr := d.members.RemoveUserEverywhere(ctx, userID); cleanupErr != nil {
		logger.From(ctx).Error("membership cleanup failed after user delete",
			logger.Layer("facade"), logger.Op("DeleteUser"), logger.UserID(userID), logger.Err(cleanupErr))
	} else if n > 0 {
		logger.From(ctx).Info("user removed from realms",
			logger.Layer("facade"), logger.Op("DeleteUser"), logger.UserID(userID), logger.Count(int(n)))
	}
	return true, nil
}
