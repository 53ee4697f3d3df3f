// Package events отвечает за публикацию событий о размещённых заказах.
package events

import (
	"context"

	"github.com/shopline/order-system/internal/model"
)

// OrderPlacedQueue — имя очереди, в которую публикуются события о заказах.
// Сервис уведомлений подписывается на неё как внешний потребитель.
const OrderPlacedQueue = "order.placed"

// Publisher описывает контракт публикации события о размещённом заказе.
// Публикация выполняется по принципу "выстрелил и забыл": результат не влияет
// на исход операции создания заказа, гарантия доставки — не более одного раза.
type Publisher interface {
	PublishOrderPlaced(ctx context.Context, event model.OrderPlacedEvent) error
}
