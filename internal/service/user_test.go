package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/nk_store/internal/models"
	"github.com/Skotchmaster/nk_store/internal/transport"
)

func TestUserService_ResolveAndRoles(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	e := newEnv(t)

	u, role, err := e.users.Resolve(ctx, "u1", " Asha@NK.in ", "Asha")
	require.NoError(t, err)
	assert.Equal(t, "asha@nk.in", u.Email)
	assert.Equal(t, models.RoleUser, role)

	_, role, err = e.users.Resolve(ctx, "boss", "BOSS@nk.in", "")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, role)
	assert.ErrorIs(t, e.users.SetRole(ctx, "boss", models.RoleUser), ErrForbidden)

	require.NoError(t, e.users.SetRole(ctx, "u1", models.RoleStaff))
	_, role, err = e.users.Resolve(ctx, "u1", "asha@nk.in", "")
	require.NoError(t, err)
	assert.Equal(t, models.RoleStaff, role)

	assert.ErrorIs(t, e.users.SetRole(ctx, "u1", "owner"), ErrValidation)
	assert.ErrorIs(t, e.users.SetRole(ctx, "ghost", models.RoleStaff), ErrNotFound)

	_, _, err = e.users.Resolve(ctx, "", "x@nk.in", "")
	assert.ErrorIs(t, err, ErrValidation)

	users, err := e.users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestUserService_ProfileAndAddresses(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	e := newEnv(t)
	_, _, err := e.users.Resolve(ctx, "u1", "asha@nk.in", "Asha")
	require.NoError(t, err)

	u, err := e.users.UpdateProfile(ctx, "u1", transport.ProfileRequest{Phone: ptr("98400"), City: ptr("Chennai")})
	require.NoError(t, err)
	assert.Equal(t, "Asha", u.DisplayName)
	assert.Equal(t, "98400", u.Phone)
	assert.Equal(t, "Chennai", u.City)

	require.NoError(t, e.users.SetOrderUpdates(ctx, "u1", true))
	u, err = e.users.Get(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, u.OrderUpdates)

	u, err = e.users.AddAddress(ctx, "u1", homeAddress())
	require.NoError(t, err)
	require.Len(t, u.Addresses, 1)
	addrID := u.Addresses[0].ID
	assert.NotEmpty(t, addrID)

	_, err = e.users.AddAddress(ctx, "u1", models.Address{FullName: "No City"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = e.users.RemoveAddress(ctx, "u1", "nope")
	assert.ErrorIs(t, err, ErrNotFound)
	u, err = e.users.RemoveAddress(ctx, "u1", addrID)
	require.NoError(t, err)
	assert.Empty(t, u.Addresses)

	assert.ErrorIs(t, e.users.SetOrderUpdates(ctx, "ghost", true), ErrNotFound)
	_, err = e.users.Get(ctx, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}
