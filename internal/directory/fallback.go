package directory

import "github.com/shopline/order-system/internal/model"

// Значения профиля-заглушки, возвращаемого при недоступности справочника.
const (
	UnknownUserName  = "Unknown User"
	UnknownUserEmail = "unknown@example.com"
)

// FallbackUserByID возвращает детерминированный профиль-заглушку для запроса по идентификатору.
// Заглушка не содержит реальных данных и строится только из входного ключа.
func FallbackUserByID(id int64) *model.User {
	return &model.User{
		ID:    id,
		Name:  UnknownUserName,
		Email: UnknownUserEmail,
	}
}

// FallbackUserByEmail возвращает детерминированный профиль-заглушку для запроса по email.
func FallbackUserByEmail(email string) *model.User {
	return &model.User{
		ID:    0,
		Name:  UnknownUserName,
		Email: email,
	}
}
