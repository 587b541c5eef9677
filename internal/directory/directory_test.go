package directory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/odic/internal/domain/repository"
	"github.com/dropDatabas3/odic/internal/security/password"
	"github.com/dropDatabas3/odic/internal/store/memory"
)

func newTestDirectory(t *testing.T) (*Directory, *memory.Store) {
	t.Helper()
	s := memory.New()
	return New(s, password.Hasher{Cost: 4}), s
}

func TestCreateRealm_RoundTrip(t *testing.T) {
	d, _ := newTestDirectory(t)
	ctx := context.Background()

	created, err := d.CreateRealm(ctx, CreateRealmInput{RealmID: "acme", DisplayName: "Acme Corp"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := d.Realm(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, "acme", got.RealmID)
	assert.Equal(t, "Acme Corp", got.DisplayName)
}

func TestCreateRealm_Validation(t *testing.T) {
	d, _ := newTestDirectory(t)
	ctx := context.Background()

	for _, id := range []string{"", "Bad Realm", "-lead"} {
		_, err := d.CreateRealm(ctx, CreateRealmInput{RealmID: id})
		assert.True(t, repository.IsInvalidInput(err), "realm id %q should be invalid", id)
	}
}

func TestCreateRealm_Duplicate(t *testing.T) {
	d, _ := newTestDirectory(t)
	ctx := context.Background()

	_, err := d.CreateRealm(ctx, CreateRealmInput{RealmID: "acme"})
	require.NoError(t, err)

	_, err = d.CreateRealm(ctx, CreateRealmInput{RealmID: "acme"})
	assert.True(t, repository.IsConflict(err))
}

func TestRealm_NotFoundVsInvalid(t *testing.T) {
	d, _ := newTestDirectory(t)
	ctx := context.Background()

	_, err := d.Realm(ctx, "missing")
	assert.True(t, repository.IsNotFound(err), "well-formed but absent id is not found")

	_, err = d.Realm(ctx, "NOT OK")
	assert.True(t, repository.IsInvalidInput(err), "malformed id is a validation failure, not a miss")
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	d, _ := newTestDirectory(t)
	ctx := context.Background()

	first, err := d.RegisterUser(ctx, RegisterUserInput{Name: "A", Email: "a@x.com", Password: "pw"})
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)
	assert.NotEqual(t, "pw", first.PasswordHash, "raw password must never be stored")
	assert.NotEmpty(t, first.PasswordHash)

	_, err = d.RegisterUser(ctx, RegisterUserInput{Name: "B", Email: "a@x.com", Password: "other"})
	assert.True(t, repository.IsConflict(err))

	users, err := d.Users(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1, "store must contain exactly one record with that email")
	assert.Equal(t, "a@x.com", users[0].Email)
}

func TestRegisterUser_Validation(t *testing.T) {
	d, _ := newTestDirectory(t)
	ctx := context.Background()

	cases := []RegisterUserInput{
		{Name: "A", Email: "not-an-email", Password: "pw"},
		{Name: "", Email: "a@x.com", Password: "pw"},
		{Name: "A", Email: "a@x.com", Password: ""},
	}
	for _, in := range cases {
		_, err := d.RegisterUser(ctx, in)
		assert.True(t, repository.IsInvalidInput(err), "input %+v should be invalid", in)
	}
}

func TestAuthenticate(t *testing.T) {
	d, _ := newTestDirectory(t)
	ctx := context.Background()

	u, err := d.RegisterUser(ctx, RegisterUserInput{Name: "A", Email: "a@x.com", Password: "pw"})
	require.NoError(t, err)

	got, err := d.Authenticate(ctx, "a@x.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = d.Authenticate(ctx, "a@x.com", "wrong")
	assert.True(t, repository.IsNotFound(err))

	_, err = d.Authenticate(ctx, "nobody@x.com", "pw")
	assert.True(t, repository.IsNotFound(err))
}

func TestAddToRealm_Idempotent(t *testing.T) {
	d, _ := newTestDirectory(t)
	ctx := context.Background()

	_, err := d.CreateRealm(ctx, CreateRealmInput{RealmID: "acme"})
	require.NoError(t, err)
	u, err := d.RegisterUser(ctx, RegisterUserInput{Name: "A", Email: "a@x.com", Password: "pw"})
	require.NoError(t, err)

	added, err := d.AddToRealm(ctx, "acme", u.ID)
	require.NoError(t, err)
	assert.True(t, added, "first add reports a change")

	added, err = d.AddToRealm(ctx, "acme", u.ID)
	require.NoError(t, err)
	assert.False(t, added, "re-add is a no-op, not an error")

	users, err := d.RealmUsers(ctx, "acme")
	require.NoError(t, err)
	require.Len(t, users, 1, "membership is a set: one entry per user")
	assert.Equal(t, u.ID, users[0].ID)
}

func TestRemoveFromRealm_NonMember(t *testing.T) {
	d, _ := newTestDirectory(t)
	ctx := context.Background()

	u1, err := d.RegisterUser(ctx, RegisterUserInput{Name: "A", Email: "a@x.com", Password: "pw"})
	require.NoError(t, err)
	u2, err := d.RegisterUser(ctx, RegisterUserInput{Name: "B", Email: "b@x.com", Password: "pw"})
	require.NoError(t, err)

	_, err = d.AddToRealm(ctx, "acme", u1.ID)
	require.NoError(t, err)

	removed, err := d.RemoveFromRealm(ctx, "acme", u2.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	users, err := d.RealmUsers(ctx, "acme")
	require.NoError(t, err)
	assert.Len(t, users, 1, "set must be unchanged after removing a non-member")
}

func TestMembership_MalformedIDs(t *testing.T) {
	d, _ := newTestDirectory(t)
	ctx := context.Background()

	_, err := d.AddToRealm(ctx, "BAD REALM", "65f2a1b3c4d5e6f7a8b9c0d1")
	assert.True(t, repository.IsInvalidInput(err))

	_, err = d.AddToRealm(ctx, "acme", "short")
	assert.True(t, repository.IsInvalidInput(err))

	_, err = d.RemoveFromRealm(ctx, "acme", "short")
	assert.True(t, repository.IsInvalidInput(err))
}

func TestRealmUsers_DanglingReference(t *testing.T) {
	d, s := newTestDirectory(t)
	ctx := context.Background()

	u1, err := d.RegisterUser(ctx, RegisterUserInput{Name: "A", Email: "a@x.com", Password: "pw"})
	require.NoError(t, err)
	u2, err := d.RegisterUser(ctx, RegisterUserInput{Name: "B", Email: "b@x.com", Password: "pw"})
	require.NoError(t, err)

	_, err = d.AddToRealm(ctx, "acme", u1.ID)
	require.NoError(t, err)
	_, err = d.AddToRealm(ctx, "acme", u2.ID)
	require.NoError(t, err)

	// Borrado directo en el repo, sin pasar por el facade: queda una
	// referencia colgante en la membresía.
	deleted, err := s.Users().Delete(ctx, u2.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	users, err := d.RealmUsers(ctx, "acme")
	require.NoError(t, err, "a dangling reference must not crash resolution")
	require.Len(t, users, 1)
	assert.Equal(t, u1.ID, users[0].ID)
}

func TestDeleteUser_CleansMemberships(t *testing.T) {
	d, _ := newTestDirectory(t)
	ctx := context.Background()

	u, err := d.RegisterUser(ctx, RegisterUserInput{Name: "A", Email: "a@x.com", Password: "pw"})
	require.NoError(t, err)
	_, err = d.AddToRealm(ctx, "acme", u.ID)
	require.NoError(t, err)
	_, err = d.AddToRealm(ctx, "globex", u.ID)
	require.NoError(t, err)

	deleted, err := d.DeleteUser(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	for _, realm := range []string{"acme", "globex"} {
		users, err := d.RealmUsers(ctx, realm)
		require.NoError(t, err)
		assert.Empty(t, users)
	}

	deleted, err = d.DeleteUser(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, deleted, "second delete matches nothing")
}

func TestDeleteRealm_Cascade(t *testing.T) {
	d, _ := newTestDirectory(t)
	ctx := context.Background()

	_, err := d.CreateRealm(ctx, CreateRealmInput{RealmID: "acme"})
	require.NoError(t, err)
	u, err := d.RegisterUser(ctx, RegisterUserInput{Name: "A", Email: "a@x.com", Password: "pw"})
	require.NoError(t, err)
	_, err = d.AddToRealm(ctx, "acme", u.ID)
	require.NoError(t, err)
	c, err := d.CreateClient(ctx, CreateClientInput{RealmID: "acme", Name: "app1", Description: "d"})
	require.NoError(t, err)

	deleted, err := d.DeleteRealm(ctx, "acme")
	require.NoError(t, err)
	assert.True(t, deleted)

	users, err := d.RealmUsers(ctx, "acme")
	require.NoError(t, err)
	assert.Empty(t, users, "membership set must be emptied by the cascade")

	_, err = d.Realm(ctx, "acme")
	assert.True(t, repository.IsNotFound(err))

	_, err = d.Client(ctx, "acme", c.ID)
	assert.True(t, repository.IsNotFound(err), "realm clients go with the realm")

	// El usuario sobrevive al borrado del realm.
	_, err = d.UserByID(ctx, u.ID)
	require.NoError(t, err)

	deleted, err = d.DeleteRealm(ctx, "acme")
	require.NoError(t, err)
	assert.False(t, deleted, "second delete matches nothing")
}

// Escenario completo: realm acme, registro, membresía, borrado.
func TestScenario_AcmeLifecycle(t *testing.T) {
	d, _ := newTestDirectory(t)
	ctx := context.Background()

	_, err := d.CreateRealm(ctx, CreateRealmInput{RealmID: "acme"})
	require.NoError(t, err)

	u, err := d.RegisterUser(ctx, RegisterUserInput{Name: "A", Email: "a@x.com", Password: "pw"})
	require.NoError(t, err)

	added, err := d.AddToRealm(ctx, "acme", u.ID)
	require.NoError(t, err)
	require.True(t, added)

	users, err := d.RealmUsers(ctx, "acme")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, u.Email, users[0].Email)

	deleted, err := d.DeleteRealm(ctx, "acme")
	require.NoError(t, err)
	require.True(t, deleted)

	users, err = d.RealmUsers(ctx, "acme")
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestCreateClient_DuplicateName(t *testing.T) {
	d, _ := newTestDirectory(t)
	ctx := context.Background()

	_, err := d.CreateRealm(ctx, CreateRealmInput{RealmID: "acme"})
	require.NoError(t, err)
	_, err = d.CreateRealm(ctx, CreateRealmInput{RealmID: "globex"})
	require.NoError(t, err)

	_, err = d.CreateClient(ctx, CreateClientInput{RealmID: "acme", Name: "app1", Description: "d"})
	require.NoError(t, err)

	_, err = d.CreateClient(ctx, CreateClientInput{RealmID: "acme", Name: "app1", Description: "d2"})
	assert.True(t, repository.IsConflict(err))

	// Unicidad a nivel store: también choca desde otro realm.
	_, err = d.CreateClient(ctx, CreateClientInput{RealmID: "globex", Name: "app1", Description: "d3"})
	assert.True(t, repository.IsConflict(err))

	clients, err := d.Clients(ctx, "acme")
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "app1", clients[0].Name)
}

func TestClient_RealmScopingEnforced(t *testing.T) {
	d, _ := newTestDirectory(t)
	ctx := context.Background()

	_, err := d.CreateRealm(ctx, CreateRealmInput{RealmID: "acme"})
	require.NoError(t, err)
	_, err = d.CreateRealm(ctx, CreateRealmInput{RealmID: "globex"})
	require.NoError(t, err)

	c, err := d.CreateClient(ctx, CreateClientInput{RealmID: "acme", Name: "app1"})
	require.NoError(t, err)

	// Desde otro realm el client no existe: ni lectura, ni patch, ni delete.
	_, err = d.Client(ctx, "globex", c.ID)
	assert.True(t, repository.IsNotFound(err))

	desc := "hijack"
	_, err = d.UpdateClient(ctx, "globex", c.ID, repository.UpdateClientInput{Description: &desc})
	assert.True(t, repository.IsNotFound(err))

	err = d.DeleteClient(ctx, "globex", c.ID)
	assert.True(t, repository.IsNotFound(err))

	got, err := d.Client(ctx, "acme", c.ID)
	require.NoError(t, err)
	assert.Equal(t, "app1", got.Name)
}

func TestUpdateClient_Patch(t *testing.T) {
	d, _ := newTestDirectory(t)
	ctx := context.Background()

	_, err := d.CreateRealm(ctx, CreateRealmInput{RealmID: "acme"})
	require.NoError(t, err)
	c, err := d.CreateClient(ctx, CreateClientInput{RealmID: "acme", Name: "app1", Description: "old"})
	require.NoError(t, err)

	desc := "new"
	updated, err := d.UpdateClient(ctx, "acme", c.ID, repository.UpdateClientInput{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Description)
	assert.Equal(t, "app1", updated.Name, "unpatched fields stay")
	assert.False(t, updated.UpdatedAt.Before(c.UpdatedAt))
}

func TestCreateClient_RequiresRealm(t *testing.T) {
	d, _ := newTestDirectory(t)
	ctx := context.Background()

	_, err := d.CreateClient(ctx, CreateClientInput{RealmID: "missing", Name: "app1"})
	assert.True(t, repository.IsNotFound(err))
}

func TestRoles_NotImplemented(t *testing.T) {
	d, _ := newTestDirectory(t)
	ctx := context.Background()

	err := d.AssignRole(ctx, "acme", "65f2a1b3c4d5e6f7a8b9c0d1", "admin")
	assert.ErrorIs(t, err, repository.ErrNotImplemented)

	_, err = d.UserRoles(ctx, "acme", "65f2a1b3c4d5e6f7a8b9c0d1")
	assert.ErrorIs(t, err, repository.ErrNotImplemented)
}
