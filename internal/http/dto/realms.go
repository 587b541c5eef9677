// Package dto define los request/response de la API. Los responses
// nunca incluyen el digest de password: el recorte pasa acá, no en el
// dominio.
package dto

import (
	"time"

	"github.com/dropDatabas3/odic/internal/domain/repository"
)

type CreateRealmRequest struct {
	RealmID     string `json:"realm_id"`
	DisplayName string `json:"display_name,omitempty"`
}

type UpdateRealmRequest struct {
	DisplayName *string `json:"display_name,omitempty"`
}

type RealmResponse struct {
	RealmID     string    `json:"realm_id"`
	DisplayName string    `json:"display_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func MapRealm(r *repository.Realm) RealmResponse {
	return RealmResponse{
		RealmID:     r.RealmID,
		DisplayName: r.DisplayName,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func MapRealms(realms []repository.Realm) []RealmResponse {
	out := make([]RealmResponse, len(realms))
	for i := range realms {
		out[i] = MapRealm(&realms[i])
	}
	return out
}

type AddMemberRequest struct {
	UserID string `json:"user_id"`
}

// MembershipResponse reporta el resultado de add/remove: changed=false
// significa no-op (ya era / no era miembro), no un error.
type MembershipResponse struct {
	RealmID string `json:"realm_id"`
	UserID  string `json:"user_id"`
	Changed bool   `json:"changed"`
}
