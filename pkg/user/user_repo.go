package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrUserNotFound = errors.New("user not found")

type Repo interface {
	CreateUser(ctx context.Context, user User) (int, error)
	GetUser(ctx context.Context, id int) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	UpdateUser(ctx context.Context, userId int, user User) (User, error)
	GetAllUsers(ctx context.Context) ([]User, error)
}

type UserRepoImpl struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) *UserRepoImpl {
	return &UserRepoImpl{db: db}
}

const selectUser = `SELECT id, uid, username, display_name, role, timezone, activity_tracker_id FROM users`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (User, error) {
	var user User
	var trackerId sql.NullString
	err := row.Scan(
		&user.Id,
		&user.Uid,
		&user.Username,
		&user.DisplayName,
		&user.Role,
		&user.Settings.Timezone,
		&trackerId,
	)
	if err != nil {
		return User{}, err
	}
	if trackerId.Valid {
		user.Settings.ActivityTrackerId = trackerId.String
	}
	return user, nil
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (u *UserRepoImpl) CreateUser(ctx context.Context, user User) (int, error) {
	role := user.Role
	if role == "" {
		role = RoleMember
	}
	query := `INSERT INTO users (uid, username, display_name, role, timezone, activity_tracker_id) 
				VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	var id int
	err := u.db.QueryRow(ctx, query,
		user.Uid,
		user.Username,
		user.DisplayName,
		role,
		user.Settings.Timezone,
		nullableString(user.Settings.ActivityTrackerId),
	).Scan(&id)
	if err != nil {
		log.Errorf("failed to create user: %v", err)
		return 0, err
	}
	return id, nil
}

func (u *UserRepoImpl) GetUser(ctx context.Context, id int) (User, error) {
	user, err := scanUser(u.db.QueryRow(ctx, selectUser+` WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		log.Debugf("user with id %d not found", id)
		return User{}, ErrUserNotFound
	} else if err != nil {
		log.Errorf("failed to get user: %v", err)
		return User{}, err
	}
	return user, nil
}

func (u *UserRepoImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	user, err := scanUser(u.db.QueryRow(ctx, selectUser+` WHERE uid = $1`, uid))
	if errors.Is(err, pgx.ErrNoRows) {
		log.Infof("user with uid %s not found", uid)
		return User{}, ErrUserNotFound
	} else if err != nil {
		log.Errorf("failed to get user: %v", err)
		return User{}, err
	}
	return user, nil
}

func (u *UserRepoImpl) UpdateUser(ctx context.Context, userId int, user User) (User, error) {
	query := `UPDATE users SET display_name = $1, timezone = $2, activity_tracker_id = $3 WHERE id = $4`
	result, err := u.db.Exec(ctx, query,
		user.DisplayName,
		user.Settings.Timezone,
		nullableString(user.Settings.ActivityTrackerId),
		userId,
	)
	if err != nil {
		return User{}, fmt.Errorf("could not update user: %w", err)
	}
	if result.RowsAffected() == 0 {
		log.Info("no rows affected of updating user")
		return User{}, ErrUserNotFound
	}
	return u.GetUser(ctx, userId)
}

func (u *UserRepoImpl) GetAllUsers(ctx context.Context) ([]User, error) {
	rows, err := u.db.Query(ctx, selectUser+` ORDER BY username`)
	if err != nil {
		log.Errorf("failed to get users: %v", err)
		return nil, err
	}
	defer rows.Close()
	users := make([]User, 0, 10)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			log.Errorf("failed to scan user: %v", err)
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		log.Errorf("error iterating over rows: %v", err)
		return nil, err
	}
	return users, nil
}
