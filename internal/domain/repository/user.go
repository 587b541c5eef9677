package repository

import (
	"context"
	"time"
)

// User representa una cuenta con credenciales.
//
// PasswordHash es el digest one-way; el password en claro nunca se
// persiste ni se loguea. La capa HTTP es responsable de no exponer el
// digest hacia afuera (los DTO lo omiten).
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateUserInput contiene los datos para crear un usuario.
// PasswordHash ya viene calculado por el facade (nunca el password crudo).
type CreateUserInput struct {
	Name         string
	Email        string
	PasswordHash string
}

// UserRepository define operaciones sobre usuarios.
type UserRepository interface {
	// Create inserta un usuario nuevo, asigna ID y timestamps.
	// Retorna ErrConflict si el email ya existe (unique index).
	Create(ctx context.Context, input CreateUserInput) (*User, error)

	// GetByEmail busca por email. Retorna ErrNotFound si no existe.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByID busca por ID. Retorna ErrNotFound si no existe.
	GetByID(ctx context.Context, userID string) (*User, error)

	// List retorna todos los usuarios, sin orden garantizado.
	List(ctx context.Context) ([]User, error)

	// Delete elimina por ID. Retorna (true, nil) sólo si borró exactamente
	// un registro.
	Delete(ctx context.Context, userID string) (bool, error)
}
