package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"bugdesk.app/api-server/common/id"
	"bugdesk.app/api-server/internal/model"
	"bugdesk.app/api-server/internal/store"
	"bugdesk.app/api-server/internal/workflow"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type UserService interface {
	CreateUser(ctx context.Context, actorID int64, username, password string, role model.Role) (*model.User, error)
	Login(ctx context.Context, username, password string) (*model.User, error)
	GetUserByID(ctx context.Context, userID int64) (*model.User, error)
	// ListDevelopers returns the assignable developers.
	ListDevelopers(ctx context.Context) ([]model.User, error)
}

type userService struct {
	userStore store.UserStore
	policy    workflow.RolePolicy
	devCache  *expirable.LRU[string, []model.User]
}

const devCacheKey = "devs"

func NewUserService(userStore store.UserStore, policy workflow.RolePolicy) UserService {
	return &userService{
		userStore: userStore,
		policy:    policy,
		devCache:  expirable.NewLRU[string, []model.User](1, nil, time.Minute),
	}
}

func (s *userService) CreateUser(ctx context.Context, actorID int64, username, password string, role model.Role) (*model.User, error) {
	actor, err := loadActor(ctx, s.userStore, actorID)
	if err != nil {
		return nil, err
	}
	allowed, err := s.policy.CanCreateUser(actor.Role)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, fmt.Errorf("%w: only admins can create users", workflow.ErrUnauthorized)
	}

	if _, err := s.userStore.GetByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("checking username availability: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &model.User{
		ID:           id.New(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.userStore.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.devCache.Purge()

	slog.InfoContext(ctx, "user created",
		"user_id", user.ID,
		"username", user.Username,
		"role", user.Role,
	)
	return user, nil
}

func (s *userService) Login(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID int64) (*model.User, error) {
	return s.userStore.GetByID(ctx, userID)
}

func (s *userService) ListDevelopers(ctx context.Context) ([]model.User, error) {
	if devs, ok := s.devCache.Get(devCacheKey); ok {
		return devs, nil
	}

	users, err := s.userStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	devs := make([]model.User, 0, len(users))
	for _, u := range users {
		isDev, err := s.policy.IsDeveloper(u.Role)
		if err != nil {
			return nil, err
		}
		if isDev {
			devs = append(devs, u)
		}
	}

	s.devCache.Add(devCacheKey, devs)
	return devs, nil
}

