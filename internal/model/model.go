// Package model содержит доменные сущности сервисов заказов и справочника пользователей.
package model

import "time"

// OrderStatus описывает статус обработки заказа.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// Valid сообщает, является ли значение одним из допустимых статусов заказа.
// Граф переходов между статусами намеренно не ограничивается.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order описывает заказ пользователя.
type Order struct {
	ID          int64       `json:"id"`
	UserID      int64       `json:"userId"`
	Product     string      `json:"product"`
	Price       float64     `json:"price"`
	Quantity    int         `json:"quantity"`
	Status      OrderStatus `json:"status"`
	Description string      `json:"description,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// UserStatus описывает статус учётной записи пользователя.
type UserStatus string

const (
	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusInactive  UserStatus = "INACTIVE"
	UserStatusSuspended UserStatus = "SUSPENDED"
)

// User описывает запись справочника пользователей.
type User struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	PhoneNumber string     `json:"phoneNumber,omitempty"`
	Address     string     `json:"address,omitempty"`
	Age         int        `json:"age,omitempty"`
	Status      UserStatus `json:"status"`
}

// EnrichedOrder объединяет заказ с данными его владельца из справочника.
// Профиль может быть заглушкой, если справочник недоступен. Не сохраняется.
type EnrichedOrder struct {
	Order
	User *User `json:"user"`
}

// OrderPlacedEvent публикуется в очередь уведомлений после записи заказа.
type OrderPlacedEvent struct {
	OrderID   int64     `json:"orderId"`
	UserID    int64     `json:"userId"`
	Product   string    `json:"product"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
	Timestamp time.Time `json:"timestamp"`
}
