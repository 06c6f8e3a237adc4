package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service interface {
	GetCurrentUser(ctx context.Context) (User, error)
	CreateUser(ctx context.Context, user User) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	UpdateUser(ctx context.Context, user User) (User, error)
}

type UserServiceImpl struct {
	repo Repo
}

func NewUserService(repo Repo) *UserServiceImpl {
	return &UserServiceImpl{repo: repo}
}

func (u *UserServiceImpl) GetCurrentUser(ctx context.Context) (User, error) {
	userId, err := CurrentId(ctx)
	if err != nil {
		return User{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return u.repo.GetUser(ctx, userId)
}

func (u *UserServiceImpl) CreateUser(ctx context.Context, user User) (User, error) {
	user, err := normalize(user)
	if err != nil {
		return User{}, err
	}
	if user.Uid == "" {
		user.Uid = uuid.NewString()
	}
	userId, err := u.repo.CreateUser(ctx, user)
	if err != nil {
		return User{}, err
	}
	user.Id = userId
	return user, nil
}

func (u *UserServiceImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	return u.repo.GetUserByUid(ctx, uid)
}

func (u *UserServiceImpl) UpdateUser(ctx context.Context, user User) (User, error) {
	userId, err := CurrentId(ctx)
	if err != nil {
		return User{}, fmt.Errorf("failed to get current user: %w", err)
	}
	user, err = normalize(user)
	if err != nil {
		return User{}, err
	}
	return u.repo.UpdateUser(ctx, userId, user)
}

func normalize(user User) (User, error) {
	if user.Settings.Timezone == "" {
		user.Settings.Timezone = "UTC"
	}
	if _, err := time.LoadLocation(user.Settings.Timezone); err != nil {
		return User{}, fmt.Errorf("%w: timezone %q", ErrUserDataInvalid, user.Settings.Timezone)
	}
	if user.Settings.ServicePrivilege == "" {
		user.Settings.ServicePrivilege = BaptizedPublisher
	}
	if !user.Settings.ServicePrivilege.Valid() {
		return User{}, fmt.Errorf("%w: service privilege %q", ErrUserDataInvalid, user.Settings.ServicePrivilege)
	}

	activities := make([]string, 0, len(user.Settings.Activities))
	seen := make(map[string]bool, len(user.Settings.Activities))
	for _, a := range user.Settings.Activities {
		a = strings.TrimSpace(a)
		if a == "" || seen[a] {
			continue
		}
		seen[a] = true
		activities = append(activities, a)
	}
	user.Settings.Activities = activities
	return user, nil
}
