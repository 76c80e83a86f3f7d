package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserServiceImpl_CreateUser(t *testing.T) {
	t.Run("should fill defaults", func(t *testing.T) {
		service := NewUserService(NewStubUserRepository())

		created, err := service.CreateUser(context.Background(), User{Username: "jdoe", DisplayName: "J Doe"})

		require.NoError(t, err)
		assert.NotZero(t, created.Id)
		assert.NotEmpty(t, created.Uid)
		assert.Equal(t, RoleMember, created.Role)
		assert.Equal(t, "Europe/Warsaw", created.Settings.Timezone)
	})

	t.Run("should reject missing username", func(t *testing.T) {
		service := NewUserService(NewStubUserRepository())

		_, err := service.CreateUser(context.Background(), User{DisplayName: "J Doe"})

		assert.ErrorIs(t, err, ErrUserDataInvalid)
	})

	t.Run("should reject unknown role", func(t *testing.T) {
		service := NewUserService(NewStubUserRepository())

		_, err := service.CreateUser(context.Background(), User{Username: "x", DisplayName: "X", Role: "owner"})

		assert.ErrorIs(t, err, ErrUserDataInvalid)
	})
}

func TestUserServiceImpl_UpdateUser(t *testing.T) {
	repo := NewStubUserRepository()
	service := NewUserService(repo)
	created, err := service.CreateUser(context.Background(), User{Username: "jdoe", DisplayName: "J Doe"})
	require.NoError(t, err)
	ctx := WithUser(context.Background(), created)

	updated, err := service.UpdateUser(ctx, User{DisplayName: "Jane Doe", Settings: Settings{Timezone: "UTC", ActivityTrackerId: "aw-17"}})

	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", updated.DisplayName)
	assert.Equal(t, "aw-17", updated.Settings.ActivityTrackerId)
	assert.Equal(t, "jdoe", updated.Username)
}

func TestUserServiceImpl_GetCurrentUser_NoUserInContext(t *testing.T) {
	service := NewUserService(NewStubUserRepository())

	_, err := service.GetCurrentUser(context.Background())

	assert.ErrorIs(t, err, ErrNoUser)
}
