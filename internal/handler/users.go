package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/shopline/order-system/internal/model"
	"github.com/shopline/order-system/internal/repository"
	"github.com/shopline/order-system/internal/validation"
)

// UserService определяет контракт бизнес-логики, используемой обработчиками справочника.
type UserService interface {
	CreateUser(ctx context.Context, draft *model.User) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindAll(ctx context.Context) ([]model.User, error)
	SearchByName(ctx context.Context, name string) ([]model.User, error)
	UpdateUser(ctx context.Context, id int64, draft *model.User) (*model.User, error)
	SetUserStatus(ctx context.Context, id int64, status model.UserStatus) (*model.User, error)
	DeleteUser(ctx context.Context, id int64) error
	DeleteUserByEmail(ctx context.Context, email string) error
}

// UserHandler реализует HTTP-обработчики API справочника пользователей.
type UserHandler struct {
	service UserService
	logger  *zap.Logger
}

// NewUserHandler создаёт новый экземпляр обработчика запросов справочника.
func NewUserHandler(s UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		service: s,
		logger:  logger,
	}
}

// CreateUser обрабатывает создание нового пользователя.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var draft model.User
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if err := validation.ValidateUserDraft(&draft); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.CreateUser(r.Context(), &draft)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			http.Error(w, http.StatusText(http.StatusConflict), http.StatusConflict)
			return
		}
		h.logger.Error("create user error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// GetUserByID возвращает пользователя по идентификатору.
func (h *UserHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	user, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		h.logger.Error("get user error", zap.Error(err), zap.Int64("userID", id))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// GetUserByEmail возвращает пользователя по адресу электронной почты.
func (h *UserHandler) GetUserByEmail(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if email == "" {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	user, err := h.service.FindByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		h.logger.Error("get user by email error", zap.Error(err), zap.String("email", email))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func usersOrEmpty(users []model.User) []model.User {
	if users == nil {
		return []model.User{}
	}
	return users
}

// GetAllUsers возвращает всех пользователей справочника.
func (h *UserHandler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.FindAll(r.Context())
	if err != nil {
		h.logger.Error("get users error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, usersOrEmpty(users))
}

// SearchUsersByName возвращает пользователей по подстроке имени.
func (h *UserHandler) SearchUsersByName(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	users, err := h.service.SearchByName(r.Context(), name)
	if err != nil {
		h.logger.Error("search users error", zap.Error(err), zap.String("name", name))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, usersOrEmpty(users))
}

// UpdateUser обновляет поля пользователя.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	var draft model.User
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if err := validation.ValidateUserDraft(&draft); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.service.UpdateUser(r.Context(), id, &draft)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		case errors.Is(err, repository.ErrEmailExists):
			http.Error(w, http.StatusText(http.StatusConflict), http.StatusConflict)
		default:
			h.logger.Error("update user error", zap.Error(err), zap.Int64("userID", id))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *UserHandler) setStatus(w http.ResponseWriter, r *http.Request, status model.UserStatus) {
	id, ok := parseID(r, "id")
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	updated, err := h.service.SetUserStatus(r.Context(), id, status)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		h.logger.Error("set user status error", zap.Error(err),
			zap.Int64("userID", id), zap.String("status", string(status)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// ActivateUser переводит пользователя в статус ACTIVE.
func (h *UserHandler) ActivateUser(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, model.UserStatusActive)
}

// DeactivateUser переводит пользователя в статус INACTIVE.
func (h *UserHandler) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, model.UserStatusInactive)
}

// SuspendUser переводит пользователя в статус SUSPENDED.
func (h *UserHandler) SuspendUser(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, model.UserStatusSuspended)
}

// DeleteUser удаляет пользователя по идентификатору.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteUser(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		h.logger.Error("delete user error", zap.Error(err), zap.Int64("userID", id))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteUserByEmail удаляет пользователя по адресу электронной почты.
func (h *UserHandler) DeleteUserByEmail(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if email == "" {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteUserByEmail(r.Context(), email); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		h.logger.Error("delete user by email error", zap.Error(err), zap.String("email", email))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
