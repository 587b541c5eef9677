package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/odic/internal/domain/repository"
)

func TestMembershipSetSemantics(t *testing.T) {
	ctx := context.Background()
	s := New()
	members := s.Memberships()

	added, err := members.Add(ctx, "acme", "u1")
	require.NoError(t, err)
	assert.True(t, added)

	// segundo add del mismo par es no-op, no error
	added, err = members.Add(ctx, "acme", "u1")
	require.NoError(t, err)
	assert.False(t, added)

	ids, err := members.Members(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, ids)

	removed, err := members.Remove(ctx, "acme", "u1")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = members.Remove(ctx, "acme", "u1")
	require.NoError(t, err)
	assert.False(t, removed)

	// realm sin ledger: lista vacía, nunca error
	ids, err = members.Members(ctx, "nadie")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestRemoveUserEverywhere(t *testing.T) {
	ctx := context.Background()
	s := New()
	members := s.Memberships()

	for _, realm := range []string{"acme", "globex", "initech"} {
		_, err := members.Add(ctx, realm, "u1")
		require.NoError(t, err)
	}
	_, err := members.Add(ctx, "acme", "u2")
	require.NoError(t, err)

	n, err := members.RemoveUserEverywhere(ctx, "u1")
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	for _, realm := range []string{"acme", "globex", "initech"} {
		ids, err := members.Members(ctx, realm)
		require.NoError(t, err)
		assert.NotContains(t, ids, "u1", "realm %s", realm)
	}

	ids, err := members.Members(ctx, "acme")
	require.NoError(t, err)
	assert.Contains(t, ids, "u2")
}

func TestClientRealmScoping(t *testing.T) {
	ctx := context.Background()
	s := New()
	clients := s.Clients()

	created, err := clients.Create(ctx, &repository.Client{RealmID: "acme", Name: "portal"})
	require.NoError(t, err)

	// mismo nombre en otro realm también choca: la unicidad es global
	_, err = clients.Create(ctx, &repository.Client{RealmID: "globex", Name: "portal"})
	assert.True(t, repository.IsConflict(err))

	// lookup desde otro realm no lo ve
	_, err = clients.Get(ctx, "globex", created.ID)
	assert.True(t, repository.IsNotFound(err))

	// delete desde otro realm tampoco
	err = clients.Delete(ctx, "globex", created.ID)
	assert.True(t, repository.IsNotFound(err))

	_, err = clients.Get(ctx, "acme", created.ID)
	require.NoError(t, err)
}

func TestClientUpdateNameConflict(t *testing.T) {
	ctx := context.Background()
	s := New()
	clients := s.Clients()

	_, err := clients.Create(ctx, &repository.Client{RealmID: "acme", Name: "portal"})
	require.NoError(t, err)
	other, err := clients.Create(ctx, &repository.Client{RealmID: "acme", Name: "backoffice"})
	require.NoError(t, err)

	name := "portal"
	_, err = clients.Update(ctx, "acme", other.ID, repository.UpdateClientInput{Name: &name})
	assert.True(t, repository.IsConflict(err))

	// renombrar a algo libre funciona y refresca updated_at
	name = "backoffice-v2"
	updated, err := clients.Update(ctx, "acme", other.ID, repository.UpdateClientInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "backoffice-v2", updated.Name)
	assert.True(t, updated.UpdatedAt.After(other.UpdatedAt) || updated.UpdatedAt.Equal(other.UpdatedAt))
}

func TestDeleteByRealmCountsDocs(t *testing.T) {
	ctx := context.Background()
	s := New()
	clients := s.Clients()

	for _, name := range []string{"a", "b", "c"} {
		_, err := clients.Create(ctx, &repository.Client{RealmID: "acme", Name: name})
		require.NoError(t, err)
	}
	_, err := clients.Create(ctx, &repository.Client{RealmID: "globex", Name: "d"})
	require.NoError(t, err)

	n, err := clients.DeleteByRealm(ctx, "acme")
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	rest, err := clients.List(ctx, "globex")
	require.NoError(t, err)
	assert.Len(t, rest, 1)
}

func TestUserEmailUniqueness(t *testing.T) {
	ctx := context.Background()
	s := New()
	users := s.Users()

	_, err := users.Create(ctx, repository.CreateUserInput{Name: "Ada", Email: "ada@x.test", PasswordHash: "h"})
	require.NoError(t, err)

	_, err = users.Create(ctx, repository.CreateUserInput{Name: "Otra", Email: "ada@x.test", PasswordHash: "h2"})
	assert.True(t, repository.IsConflict(err))

	// delete reporta si borró algo
	u, err := users.GetByEmail(ctx, "ada@x.test")
	require.NoError(t, err)
	deleted, err := users.Delete(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = users.Delete(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
