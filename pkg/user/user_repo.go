package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repo interface {
	CreateUser(ctx context.Context, user User) (int, error)
	GetUser(ctx context.Context, id int) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	UpdateUser(ctx context.Context, userId int, user User) (User, error)
}

type UserRepoImpl struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) *UserRepoImpl {
	return &UserRepoImpl{db: db}
}

const selectUser = `SELECT id, uid, username, display_name, timezone, service_privilege, activities FROM users`

func (u *UserRepoImpl) CreateUser(ctx context.Context, user User) (int, error) {
	query := `INSERT INTO users (uid, username, display_name, timezone, service_privilege, activities)
				VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	var id int
	err := u.db.QueryRow(ctx, query,
		user.Uid,
		user.Username,
		user.DisplayName,
		user.Settings.Timezone,
		string(user.Settings.ServicePrivilege),
		nonNilActivities(user.Settings.Activities),
	).Scan(&id)
	if err != nil {
		log.Errorf("failed to create user: %v", err)
		return 0, err
	}
	return id, nil
}

func (u *UserRepoImpl) GetUser(ctx context.Context, id int) (User, error) {
	return u.getOne(ctx, selectUser+` WHERE id = $1`, id)
}

func (u *UserRepoImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	return u.getOne(ctx, selectUser+` WHERE uid = $1`, uid)
}

func (u *UserRepoImpl) getOne(ctx context.Context, query string, arg any) (User, error) {
	var user User
	var privilege string
	err := u.db.QueryRow(ctx, query, arg).Scan(
		&user.Id,
		&user.Uid,
		&user.Username,
		&user.DisplayName,
		&user.Settings.Timezone,
		&privilege,
		&user.Settings.Activities,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		log.Infof("user %v not found", arg)
		return User{}, ErrUserNotFound
	} else if err != nil {
		log.Errorf("failed to get user: %v", err)
		return User{}, err
	}
	user.Settings.ServicePrivilege = ServicePrivilege(privilege)
	return user, nil
}

func (u *UserRepoImpl) UpdateUser(ctx context.Context, userId int, user User) (User, error) {
	query := `UPDATE users SET display_name = $1, timezone = $2, service_privilege = $3, activities = $4 WHERE id = $5`
	result, err := u.db.Exec(ctx, query,
		user.DisplayName,
		user.Settings.Timezone,
		string(user.Settings.ServicePrivilege),
		nonNilActivities(user.Settings.Activities),
		userId,
	)
	if err != nil {
		return User{}, fmt.Errorf("could not update user: %w", err)
	}
	if result.RowsAffected() == 0 {
		log.Infof("no rows affected when updating user %d", userId)
		return User{}, ErrUserNotFound
	}
	return u.GetUser(ctx, userId)
}

func nonNilActivities(activities []string) []string {
	if activities == nil {
		return []string{}
	}
	return activities
}
