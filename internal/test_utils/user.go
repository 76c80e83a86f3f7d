package test_utils

import (
	"context"

	"github.com/timeplan/timeplan/pkg/user"
)

func TestUser() user.User {
	return user.User{
		Id:          123,
		Uid:         "7c1b1c8e-64b8-4a73-9a44-6c3d6bcf2f01",
		Username:    "test_user",
		DisplayName: "Test User",
		Role:        user.RoleMember,
		Settings: user.Settings{
			Timezone: "Europe/Warsaw",
		},
	}
}

// ContextWithUser returns a context carrying u as the current user.
func ContextWithUser(u user.User) context.Context {
	return user.WithUser(context.Background(), u)
}
