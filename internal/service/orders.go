// Package service реализует бизнес-логику сервисов заказов и справочника пользователей.
package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/shopline/order-system/internal/directory"
	"github.com/shopline/order-system/internal/events"
	"github.com/shopline/order-system/internal/model"
)

// publishTimeout ограничивает отсоединённую публикацию события о заказе.
const publishTimeout = 5 * time.Second

// OrderRepository описывает контракт доступа к хранилищу заказов.
type OrderRepository interface {
	Close() error
	CreateOrder(ctx context.Context, o *model.Order) (*model.Order, error)
	GetOrderByID(ctx context.Context, id int64) (*model.Order, error)
	GetAllOrders(ctx context.Context) ([]model.Order, error)
	GetOrdersByUser(ctx context.Context, userID int64) ([]model.Order, error)
	GetOrdersByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error)
	GetOrdersByUserAndStatus(ctx context.Context, userID int64, status model.OrderStatus) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error)
	UpdateOrder(ctx context.Context, id int64, o *model.Order) (*model.Order, error)
	DeleteOrder(ctx context.Context, id int64) error
}

// DirectoryClient описывает удалённый справочник, используемый для обогащения заказов.
type DirectoryClient interface {
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
}

// OrderService содержит бизнес-логику сервиса заказов.
type OrderService struct {
	repo      OrderRepository
	directory DirectoryClient
	publisher events.Publisher
	logger    *zap.Logger
}

// NewOrderService создаёт сервис заказов. Клиент справочника и издатель событий
// могут быть nil: обогащение деградирует до заглушек, публикация пропускается.
func NewOrderService(repo OrderRepository, dir DirectoryClient, pub events.Publisher, logger *zap.Logger) *OrderService {
	return &OrderService{
		repo:      repo,
		directory: dir,
		publisher: pub,
		logger:    logger,
	}
}

// Close закрывает ресурсы сервиса.
func (s *OrderService) Close() error {
	if s.repo != nil {
		return s.repo.Close()
	}
	return nil
}

// CreateOrder сохраняет новый заказ и отсоединённо публикует событие о его размещении.
// Неудача публикации записывается в журнал и не влияет на результат операции.
func (s *OrderService) CreateOrder(ctx context.Context, draft *model.Order) (*model.Order, error) {
	if draft.Quantity == 0 {
		draft.Quantity = 1
	}
	if draft.Status == "" {
		draft.Status = model.OrderStatusPending
	}

	created, err := s.repo.CreateOrder(ctx, draft)
	if err != nil {
		return nil, err
	}

	s.publishOrderPlaced(created)

	return created, nil
}

func (s *OrderService) publishOrderPlaced(o *model.Order) {
	if s.publisher == nil {
		return
	}

	event := model.OrderPlacedEvent{
		OrderID:   o.ID,
		UserID:    o.UserID,
		Product:   o.Product,
		Price:     o.Price,
		Quantity:  o.Quantity,
		Timestamp: o.CreatedAt,
	}

	// Запись заказа уже зафиксирована; ответ клиенту не ждёт публикации.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		if err := s.publisher.PublishOrderPlaced(ctx, event); err != nil {
			s.logger.Error("publish order placed event",
				zap.Error(err), zap.Int64("orderID", event.OrderID))
		}
	}()
}

// enrich строит представление заказа с профилем владельца. При любой ошибке
// справочника подставляется детерминированная заглушка: недоступность
// справочника не должна превращаться в ошибку чтения заказа.
func (s *OrderService) enrich(ctx context.Context, o *model.Order) *model.EnrichedOrder {
	if s.directory == nil {
		return &model.EnrichedOrder{Order: *o, User: directory.FallbackUserByID(o.UserID)}
	}

	user, err := s.directory.GetUserByID(ctx, o.UserID)
	if err != nil {
		s.logger.Warn("directory lookup failed, using fallback profile",
			zap.Error(err), zap.Int64("userID", o.UserID))
		user = directory.FallbackUserByID(o.UserID)
	}

	return &model.EnrichedOrder{Order: *o, User: user}
}

// GetOrderByID возвращает заказ, обогащённый данными владельца.
func (s *OrderService) GetOrderByID(ctx context.Context, id int64) (*model.EnrichedOrder, error) {
	o, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.enrich(ctx, o), nil
}

// GetAllOrders возвращает все заказы без обогащения.
func (s *OrderService) GetAllOrders(ctx context.Context) ([]model.Order, error) {
	return s.repo.GetAllOrders(ctx)
}

// GetOrdersByUser возвращает заказы пользователя без обогащения.
func (s *OrderService) GetOrdersByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return s.repo.GetOrdersByUser(ctx, userID)
}

// GetOrdersByStatus возвращает заказы в указанном статусе.
func (s *OrderService) GetOrdersByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	return s.repo.GetOrdersByStatus(ctx, status)
}

// GetOrdersByUserAndStatus возвращает заказы пользователя в указанном статусе.
func (s *OrderService) GetOrdersByUserAndStatus(ctx context.Context, userID int64, status model.OrderStatus) ([]model.Order, error) {
	return s.repo.GetOrdersByUserAndStatus(ctx, userID, status)
}

// GetOrdersWithUsers возвращает все заказы с профилями владельцев.
// Пакетного запроса к справочнику нет: на каждый заказ выполняется отдельный вызов.
func (s *OrderService) GetOrdersWithUsers(ctx context.Context) ([]model.EnrichedOrder, error) {
	orders, err := s.repo.GetAllOrders(ctx)
	if err != nil {
		return nil, err
	}

	enriched := make([]model.EnrichedOrder, 0, len(orders))
	for i := range orders {
		enriched = append(enriched, *s.enrich(ctx, &orders[i]))
	}

	return enriched, nil
}

// UpdateOrderStatus переводит заказ в указанный статус.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error) {
	return s.repo.UpdateOrderStatus(ctx, id, status)
}

// UpdateOrder обновляет изменяемые поля заказа.
func (s *OrderService) UpdateOrder(ctx context.Context, id int64, draft *model.Order) (*model.Order, error) {
	if draft.Quantity == 0 {
		draft.Quantity = 1
	}
	if draft.Status == "" {
		draft.Status = model.OrderStatusPending
	}
	return s.repo.UpdateOrder(ctx, id, draft)
}

// DeleteOrder удаляет заказ по идентификатору.
func (s *OrderService) DeleteOrder(ctx context.Context, id int64) error {
	return s.repo.DeleteOrder(ctx, id)
}
