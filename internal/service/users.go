package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopline/order-system/internal/cache"
	"github.com/shopline/order-system/internal/model"
)

// Время жизни кэшированных записей справочника: отдельные профили живут
// дольше агрегированного снимка всех пользователей.
const (
	DefaultUserTTL     = 10 * time.Minute
	DefaultAllUsersTTL = 5 * time.Minute
)

// UserRepository описывает контракт доступа к хранилищу пользователей.
type UserRepository interface {
	Close() error
	CreateUser(ctx context.Context, u *model.User) (*model.User, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetAllUsers(ctx context.Context) ([]model.User, error)
	SearchUsersByName(ctx context.Context, name string) ([]model.User, error)
	UpdateUser(ctx context.Context, id int64, u *model.User) (*model.User, error)
	UpdateUserStatus(ctx context.Context, id int64, status model.UserStatus) (*model.User, error)
	DeleteUser(ctx context.Context, id int64) error
	DeleteUserByEmail(ctx context.Context, email string) error
}

// UserService содержит бизнес-логику сервиса справочника пользователей.
// Чтения идут через кэш, любая запись сбрасывает кэш целиком.
type UserService struct {
	repo    UserRepository
	cache   cache.Cache
	userTTL time.Duration
	allTTL  time.Duration
}

// NewUserService создаёт сервис справочника с указанным репозиторием и кэшем.
func NewUserService(repo UserRepository, c cache.Cache, userTTL, allTTL time.Duration) *UserService {
	if userTTL <= 0 {
		userTTL = DefaultUserTTL
	}
	if allTTL <= 0 {
		allTTL = DefaultAllUsersTTL
	}

	return &UserService{
		repo:    repo,
		cache:   c,
		userTTL: userTTL,
		allTTL:  allTTL,
	}
}

// Close закрывает ресурсы сервиса.
func (s *UserService) Close() error {
	if s.repo != nil {
		return s.repo.Close()
	}
	return nil
}

// CreateUser создаёт нового пользователя и сбрасывает кэш справочника.
func (s *UserService) CreateUser(ctx context.Context, draft *model.User) (*model.User, error) {
	if draft.Status == "" {
		draft.Status = model.UserStatusActive
	}

	created, err := s.repo.CreateUser(ctx, draft)
	if err != nil {
		return nil, err
	}

	s.cache.Flush(ctx)
	return created, nil
}

func (s *UserService) cachedUser(ctx context.Context, key string, load func() (*model.User, error)) (*model.User, error) {
	if data, ok := s.cache.Get(ctx, key); ok {
		var u model.User
		if err := json.Unmarshal(data, &u); err == nil {
			return &u, nil
		}
	}

	u, err := load()
	if err != nil {
		return nil, err
	}

	// Отсутствие записи не кэшируется, чтобы не отдавать устаревший "не найден".
	if data, err := json.Marshal(u); err == nil {
		s.cache.Set(ctx, key, data, s.userTTL)
	}

	return u, nil
}

// FindByID возвращает пользователя по идентификатору, используя кэш.
func (s *UserService) FindByID(ctx context.Context, id int64) (*model.User, error) {
	return s.cachedUser(ctx, cache.UserIDKey(id), func() (*model.User, error) {
		return s.repo.GetUserByID(ctx, id)
	})
}

// FindByEmail возвращает пользователя по email, используя кэш.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.cachedUser(ctx, cache.UserEmailKey(email), func() (*model.User, error) {
		return s.repo.GetUserByEmail(ctx, email)
	})
}

// FindAll возвращает снимок всех пользователей, используя кэш.
func (s *UserService) FindAll(ctx context.Context) ([]model.User, error) {
	key := cache.AllUsersKey()

	if data, ok := s.cache.Get(ctx, key); ok {
		var users []model.User
		if err := json.Unmarshal(data, &users); err == nil {
			return users, nil
		}
	}

	users, err := s.repo.GetAllUsers(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(users); err == nil {
		s.cache.Set(ctx, key, data, s.allTTL)
	}

	return users, nil
}

// SearchByName возвращает пользователей по подстроке имени. Результаты поиска не кэшируются.
func (s *UserService) SearchByName(ctx context.Context, name string) ([]model.User, error) {
	return s.repo.SearchUsersByName(ctx, name)
}

// UpdateUser обновляет поля пользователя и сбрасывает кэш справочника.
func (s *UserService) UpdateUser(ctx context.Context, id int64, draft *model.User) (*model.User, error) {
	if draft.Status == "" {
		draft.Status = model.UserStatusActive
	}

	updated, err := s.repo.UpdateUser(ctx, id, draft)
	if err != nil {
		return nil, err
	}

	s.cache.Flush(ctx)
	return updated, nil
}

// SetUserStatus переводит пользователя в указанный статус и сбрасывает кэш справочника.
func (s *UserService) SetUserStatus(ctx context.Context, id int64, status model.UserStatus) (*model.User, error) {
	updated, err := s.repo.UpdateUserStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.cache.Flush(ctx)
	return updated, nil
}

// DeleteUser удаляет пользователя по идентификатору и сбрасывает кэш справочника.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return err
	}

	s.cache.Flush(ctx)
	return nil
}

// DeleteUserByEmail удаляет пользователя по email и сбрасывает кэш справочника.
func (s *UserService) DeleteUserByEmail(ctx context.Context, email string) error {
	if err := s.repo.DeleteUserByEmail(ctx, email); err != nil {
		return err
	}

	s.cache.Flush(ctx)
	return nil
}
