// Package handler содержит HTTP-обработчики API сервисов заказов и справочника пользователей.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/shopline/order-system/internal/model"
	"github.com/shopline/order-system/internal/repository"
	"github.com/shopline/order-system/internal/validation"
)

// OrderService определяет контракт бизнес-логики, используемой обработчиками заказов.
type OrderService interface {
	CreateOrder(ctx context.Context, draft *model.Order) (*model.Order, error)
	GetOrderByID(ctx context.Context, id int64) (*model.EnrichedOrder, error)
	GetAllOrders(ctx context.Context) ([]model.Order, error)
	GetOrdersByUser(ctx context.Context, userID int64) ([]model.Order, error)
	GetOrdersByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error)
	GetOrdersByUserAndStatus(ctx context.Context, userID int64, status model.OrderStatus) ([]model.Order, error)
	GetOrdersWithUsers(ctx context.Context) ([]model.EnrichedOrder, error)
	UpdateOrderStatus(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error)
	UpdateOrder(ctx context.Context, id int64, draft *model.Order) (*model.Order, error)
	DeleteOrder(ctx context.Context, id int64) error
}

// OrderHandler реализует HTTP-обработчики API сервиса заказов.
type OrderHandler struct {
	service OrderService
	logger  *zap.Logger
}

// NewOrderHandler создаёт новый экземпляр обработчика запросов сервиса заказов.
func NewOrderHandler(s OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		service: s,
		logger:  logger,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func parseID(r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	return id, err == nil && id > 0
}

// CreateOrder обрабатывает создание нового заказа.
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var draft model.Order
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if draft.Quantity == 0 {
		draft.Quantity = 1
	}
	if err := validation.ValidateOrderDraft(&draft); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.CreateOrder(r.Context(), &draft)
	if err != nil {
		h.logger.Error("create order error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// GetOrderByID возвращает заказ, обогащённый данными владельца.
func (h *OrderHandler) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	enriched, err := h.service.GetOrderByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		h.logger.Error("get order error", zap.Error(err), zap.Int64("orderID", id))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, enriched)
}

// GetAllOrders возвращает все заказы без обогащения.
func (h *OrderHandler) GetAllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.GetAllOrders(r.Context())
	if err != nil {
		h.logger.Error("get orders error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, ordersOrEmpty(orders))
}

// Пустой список отдаётся как [], а не null.
func ordersOrEmpty(orders []model.Order) []model.Order {
	if orders == nil {
		return []model.Order{}
	}
	return orders
}

// GetOrdersByUser возвращает заказы указанного пользователя.
func (h *OrderHandler) GetOrdersByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseID(r, "userId")
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	orders, err := h.service.GetOrdersByUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("get orders by user error", zap.Error(err), zap.Int64("userID", userID))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, ordersOrEmpty(orders))
}

func parseOrderStatus(r *http.Request) (model.OrderStatus, bool) {
	status := model.OrderStatus(chi.URLParam(r, "status"))
	return status, status.Valid()
}

// GetOrdersByStatus возвращает заказы в указанном статусе.
func (h *OrderHandler) GetOrdersByStatus(w http.ResponseWriter, r *http.Request) {
	status, ok := parseOrderStatus(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	orders, err := h.service.GetOrdersByStatus(r.Context(), status)
	if err != nil {
		h.logger.Error("get orders by status error", zap.Error(err), zap.String("status", string(status)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, ordersOrEmpty(orders))
}

// GetOrdersByUserAndStatus возвращает заказы пользователя в указанном статусе.
func (h *OrderHandler) GetOrdersByUserAndStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseID(r, "userId")
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	status, ok := parseOrderStatus(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	orders, err := h.service.GetOrdersByUserAndStatus(r.Context(), userID, status)
	if err != nil {
		h.logger.Error("get orders by user and status error", zap.Error(err),
			zap.Int64("userID", userID), zap.String("status", string(status)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, ordersOrEmpty(orders))
}

// GetOrdersWithUsers возвращает все заказы с профилями владельцев.
func (h *OrderHandler) GetOrdersWithUsers(w http.ResponseWriter, r *http.Request) {
	enriched, err := h.service.GetOrdersWithUsers(r.Context())
	if err != nil {
		h.logger.Error("get orders with users error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if enriched == nil {
		enriched = []model.EnrichedOrder{}
	}
	writeJSON(w, http.StatusOK, enriched)
}

// UpdateOrderStatus переводит заказ в статус, указанный параметром запроса.
func (h *OrderHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	status := model.OrderStatus(r.URL.Query().Get("status"))
	if !status.Valid() {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	updated, err := h.service.UpdateOrderStatus(r.Context(), id, status)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		h.logger.Error("update order status error", zap.Error(err), zap.Int64("orderID", id))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// UpdateOrder обновляет изменяемые поля заказа.
func (h *OrderHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	var draft model.Order
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if draft.Quantity == 0 {
		draft.Quantity = 1
	}
	if err := validation.ValidateOrderDraft(&draft); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.service.UpdateOrder(r.Context(), id, &draft)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		h.logger.Error("update order error", zap.Error(err), zap.Int64("orderID", id))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteOrder удаляет заказ по идентификатору.
func (h *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteOrder(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		h.logger.Error("delete order error", zap.Error(err), zap.Int64("orderID", id))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
