package user

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
)

type contextKey string

const UserKey contextKey = "user"

var ErrNoUser = errors.New("user not found in context")

// CurrentUser returns the user resolved from the X-User-Id header, including its role
// and activity tracker id. Returns ErrNoUser when the request carried no known user.
func CurrentUser(ctx context.Context) (User, error) {
	u, ok := ctx.Value(UserKey).(User)
	if !ok {
		log.Trace("no user in request context")
		return User{}, ErrNoUser
	}
	return u, nil
}

// CurrentId scopes repository queries to the requesting user.
func CurrentId(ctx context.Context) (int, error) {
	u, err := CurrentUser(ctx)
	if err != nil {
		return 0, err
	}
	return u.Id, nil
}

// CurrentTrackerId returns the user's id in the activity monitoring product, empty when not linked.
func CurrentTrackerId(ctx context.Context) (string, error) {
	u, err := CurrentUser(ctx)
	if err != nil {
		return "", err
	}
	return u.Settings.ActivityTrackerId, nil
}

func WithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, UserKey, u)
}
