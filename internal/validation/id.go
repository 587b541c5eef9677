package validation

import "regexp"

// Realm id rules:
// - Lowercase alphanumeric plus "-".
// - Start and end with [a-z0-9].
// - Length 1..64.
//
// Examples valid: acme, acme-corp, r1
// Examples invalid: "", -lead, trail-, Acme, has space, 65+ chars.
var realmIDRe = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]{0,62}[a-z0-9])?$`)

// Object ids (users, clients) are 24 hex chars, the storage id format.
var objectIDRe = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// Email check is deliberately loose: one "@", something on both sides,
// no spaces. The unique index is the real gatekeeper.
var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidRealmID returns true if the provided realm id matches the allowed pattern.
func ValidRealmID(id string) bool {
	return realmIDRe.MatchString(id)
}

// ValidObjectID returns true if the provided id is a well-formed storage id.
func ValidObjectID(id string) bool {
	return objectIDRe.MatchString(id)
}

// ValidEmail returns true if the provided address looks like an email.
func ValidEmail(email string) bool {
	return len(email) <= 254 && emailRe.MatchString(email)
}
