package repository

import "errors"

var (
	// ErrNotFound indica que el recurso solicitado no existe.
	ErrNotFound = errors.New("not found")

	// ErrConflict indica un conflicto (ej: duplicado, unique index violation).
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indica que los datos de entrada son inválidos.
	// Se rechaza antes de tocar el store.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indica que la operación no está implementada.
	ErrNotImplemented = errors.New("not implemented")

	// ErrNotConnected indica que se pidió el handle antes de Connect().
	ErrNotConnected = errors.New("store not connected")

	// ErrTimeout indica que una operación contra el store excedió su deadline.
	ErrTimeout = errors.New("store operation timed out")

	// ErrUnavailable indica un fallo inesperado del store (conectividad,
	// error de driver). Retryable por el caller.
	ErrUnavailable = errors.New("store unavailable")
)

// IsNotFound verifica si el error es ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict verifica si el error es ErrConflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsInvalidInput verifica si el error es ErrInvalidInput.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsTimeout verifica si el error es ErrTimeout.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}
