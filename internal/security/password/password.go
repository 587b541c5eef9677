package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost es el costo bcrypt usado para nuevos digests.
const DefaultCost = 10

// Hasher es el colaborador one-way de credenciales: hash(password) y
// verify(password, digest). El directorio nunca ve el password más allá
// de estas dos llamadas.
type Hasher struct {
	Cost int
}

// Default retorna un Hasher con el costo por defecto.
func Default() Hasher { return Hasher{Cost: DefaultCost} }

// Hash devuelve el digest bcrypt del password.
func (h Hasher) Hash(plain string) (string, error) {
	if plain == "" {
		return "", fmt.Errorf("empty password")
	}
	cost := h.Cost
	if cost == 0 {
		cost = DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify compara password contra un digest existente.
func (h Hasher) Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
