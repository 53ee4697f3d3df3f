// Package cache содержит кэш чтения справочника пользователей с ограниченным временем жизни.
//
// Любая запись в хранилище пользователей сбрасывает кэш целиком: это грубая,
// но корректная стратегия инвалидации, исключающая ошибки вывода ключей для
// разных форм чтения (по id, по email, полный список).
package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache описывает контракт кэша справочника. Значения хранятся как JSON-байты.
type Cache interface {
	// Get возвращает непросроченное значение по ключу.
	Get(ctx context.Context, key string) ([]byte, bool)
	// Set сохраняет значение с указанным временем жизни.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	// Flush удаляет все записи кэша.
	Flush(ctx context.Context)
}

// Пространства ключей для трёх форм чтения справочника.
const (
	keyPrefixID    = "user:id:"
	keyPrefixEmail = "user:email:"
	keyAll         = "user:all"
)

// UserIDKey строит ключ кэша для чтения пользователя по идентификатору.
func UserIDKey(id int64) string {
	return fmt.Sprintf("%s%d", keyPrefixID, id)
}

// UserEmailKey строит ключ кэша для чтения пользователя по email.
func UserEmailKey(email string) string {
	return keyPrefixEmail + email
}

// AllUsersKey возвращает ключ агрегированного снимка всех пользователей.
func AllUsersKey() string {
	return keyAll
}
