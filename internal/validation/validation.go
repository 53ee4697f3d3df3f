// Package validation содержит функции валидации входных данных.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopline/order-system/internal/model"
)

const (
	maxProductLen     = 100
	maxDescriptionLen = 200
	maxNameLen        = 100
)

// ErrValidation является базовой ошибкой нарушения ограничений входных данных.
var ErrValidation = errors.New("validation failed")

func fieldError(field, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrValidation, field, reason)
}

// ValidateOrderDraft проверяет поля черновика заказа перед созданием или обновлением.
func ValidateOrderDraft(o *model.Order) error {
	if o.UserID <= 0 {
		return fieldError("userId", "is required")
	}
	if strings.TrimSpace(o.Product) == "" {
		return fieldError("product", "is required")
	}
	if len(o.Product) > maxProductLen {
		return fieldError("product", fmt.Sprintf("must not exceed %d characters", maxProductLen))
	}
	if o.Price <= 0 {
		return fieldError("price", "must be greater than 0")
	}
	if o.Quantity < 1 {
		return fieldError("quantity", "must be at least 1")
	}
	if len(o.Description) > maxDescriptionLen {
		return fieldError("description", fmt.Sprintf("must not exceed %d characters", maxDescriptionLen))
	}
	if o.Status != "" && !o.Status.Valid() {
		return fieldError("status", "is not a valid order status")
	}
	return nil
}

// ValidateUserDraft проверяет поля черновика пользователя перед созданием или обновлением.
func ValidateUserDraft(u *model.User) error {
	if strings.TrimSpace(u.Name) == "" {
		return fieldError("name", "is required")
	}
	if len(u.Name) > maxNameLen {
		return fieldError("name", fmt.Sprintf("must not exceed %d characters", maxNameLen))
	}
	if !IsValidEmail(u.Email) {
		return fieldError("email", "is not a valid email address")
	}
	if u.Age < 0 {
		return fieldError("age", "must not be negative")
	}
	switch u.Status {
	case "", model.UserStatusActive, model.UserStatusInactive, model.UserStatusSuspended:
	default:
		return fieldError("status", "is not a valid user status")
	}
	return nil
}

// IsValidEmail проверяет минимальную корректность адреса электронной почты.
func IsValidEmail(email string) bool {
	if email == "" || len(email) > 254 {
		return false
	}
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return false
	}
	local, domain := email[:at], email[at+1:]
	if strings.ContainsAny(local+domain, " \t") {
		return false
	}
	dot := strings.IndexByte(domain, '.')
	if dot <= 0 || dot == len(domain)-1 {
		return false
	}
	return !strings.Contains(email[at+1:], "@")
}
