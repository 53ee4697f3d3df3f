package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/shopline/order-system/internal/directory"
	"github.com/shopline/order-system/internal/model"
	"github.com/shopline/order-system/internal/repository"
)

type stubOrderService struct {
	created   *model.Order
	createErr error

	enriched *model.EnrichedOrder
	getErr   error

	orders    []model.Order
	ordersErr error

	enrichedList []model.EnrichedOrder

	updated   *model.Order
	updateErr error

	deleteErr error
}

func (s *stubOrderService) CreateOrder(ctx context.Context, draft *model.Order) (*model.Order, error) {
	return s.created, s.createErr
}

func (s *stubOrderService) GetOrderByID(ctx context.Context, id int64) (*model.EnrichedOrder, error) {
	return s.enriched, s.getErr
}

func (s *stubOrderService) GetAllOrders(ctx context.Context) ([]model.Order, error) {
	return s.orders, s.ordersErr
}

func (s *stubOrderService) GetOrdersByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return s.orders, s.ordersErr
}

func (s *stubOrderService) GetOrdersByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	return s.orders, s.ordersErr
}

func (s *stubOrderService) GetOrdersByUserAndStatus(ctx context.Context, userID int64, status model.OrderStatus) ([]model.Order, error) {
	return s.orders, s.ordersErr
}

func (s *stubOrderService) GetOrdersWithUsers(ctx context.Context) ([]model.EnrichedOrder, error) {
	return s.enrichedList, s.ordersErr
}

func (s *stubOrderService) UpdateOrderStatus(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error) {
	return s.updated, s.updateErr
}

func (s *stubOrderService) UpdateOrder(ctx context.Context, id int64, draft *model.Order) (*model.Order, error) {
	return s.updated, s.updateErr
}

func (s *stubOrderService) DeleteOrder(ctx context.Context, id int64) error {
	return s.deleteErr
}

func newOrderTestHandler(t *testing.T, svc OrderService) *OrderHandler {
	t.Helper()

	logger, err := zap.NewDevelopment()
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	return NewOrderHandler(svc, logger)
}

func serveOrder(t *testing.T, svc OrderService, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	h := newOrderTestHandler(t, svc)
	rec := httptest.NewRecorder()
	h.SetupRouter().ServeHTTP(rec, req)
	return rec
}

func TestCreateOrder_Created(t *testing.T) {
	now := time.Now().UTC()
	svc := &stubOrderService{
		created: &model.Order{
			ID:        1,
			UserID:    100,
			Product:   "Laptop",
			Price:     1200.0,
			Quantity:  1,
			Status:    model.OrderStatusPending,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	body, _ := json.Marshal(model.Order{UserID: 100, Product: "Laptop", Price: 1200.0})
	req := httptest.NewRequest(http.MethodPost, "/api/orders/", bytes.NewReader(body))

	rec := serveOrder(t, svc, req)

	res := rec.Result()
	defer res.Body.Close()
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusCreated)
	}

	var created model.Order
	if err := json.NewDecoder(res.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.Status != model.OrderStatusPending || created.Price != 1200.0 {
		t.Fatalf("unexpected response: %+v", created)
	}
}

func TestCreateOrder_ValidationFailure(t *testing.T) {
	svc := &stubOrderService{}

	body, _ := json.Marshal(model.Order{UserID: 100, Product: "Laptop", Price: -1})
	req := httptest.NewRequest(http.MethodPost, "/api/orders/", bytes.NewReader(body))

	rec := serveOrder(t, svc, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestGetOrderByID_EnrichedResponse(t *testing.T) {
	svc := &stubOrderService{
		enriched: &model.EnrichedOrder{
			Order: model.Order{ID: 1, UserID: 100, Product: "Laptop", Price: 1200.0, Status: model.OrderStatusPending},
			User:  directory.FallbackUserByID(100),
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/orders/1", nil)
	rec := serveOrder(t, svc, req)

	res := rec.Result()
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusOK)
	}

	var enriched model.EnrichedOrder
	if err := json.NewDecoder(res.Body).Decode(&enriched); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if enriched.User == nil || enriched.User.Name != directory.UnknownUserName {
		t.Fatalf("unexpected profile: %+v", enriched.User)
	}
}

func TestGetOrderByID_NotFound(t *testing.T) {
	svc := &stubOrderService{getErr: repository.ErrOrderNotFound}

	req := httptest.NewRequest(http.MethodGet, "/api/orders/99", nil)
	rec := serveOrder(t, svc, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestGetOrderByID_BadID(t *testing.T) {
	svc := &stubOrderService{}

	req := httptest.NewRequest(http.MethodGet, "/api/orders/abc", nil)
	rec := serveOrder(t, svc, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestGetAllOrders_EmptyList(t *testing.T) {
	svc := &stubOrderService{}

	req := httptest.NewRequest(http.MethodGet, "/api/orders/", nil)
	rec := serveOrder(t, svc, req)

	res := rec.Result()
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusOK)
	}

	var orders []model.Order
	if err := json.NewDecoder(res.Body).Decode(&orders); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if orders == nil || len(orders) != 0 {
		t.Fatalf("expected empty list, got %v", orders)
	}
}

func TestUpdateOrderStatus_OK(t *testing.T) {
	svc := &stubOrderService{
		updated: &model.Order{ID: 1, Status: model.OrderStatusShipped},
	}

	req := httptest.NewRequest(http.MethodPatch, "/api/orders/1/status?status=SHIPPED", nil)
	rec := serveOrder(t, svc, req)

	res := rec.Result()
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusOK)
	}

	var updated model.Order
	if err := json.NewDecoder(res.Body).Decode(&updated); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if updated.Status != model.OrderStatusShipped {
		t.Fatalf("status = %s, want SHIPPED", updated.Status)
	}
}

func TestUpdateOrderStatus_UnknownStatus(t *testing.T) {
	svc := &stubOrderService{}

	req := httptest.NewRequest(http.MethodPatch, "/api/orders/1/status?status=ARCHIVED", nil)
	rec := serveOrder(t, svc, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestUpdateOrderStatus_NotFound(t *testing.T) {
	svc := &stubOrderService{updateErr: repository.ErrOrderNotFound}

	req := httptest.NewRequest(http.MethodPatch, "/api/orders/99/status?status=SHIPPED", nil)
	rec := serveOrder(t, svc, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestDeleteOrder_NoContent(t *testing.T) {
	svc := &stubOrderService{}

	req := httptest.NewRequest(http.MethodDelete, "/api/orders/1", nil)
	rec := serveOrder(t, svc, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
}

func TestDeleteOrder_NotFound(t *testing.T) {
	svc := &stubOrderService{deleteErr: repository.ErrOrderNotFound}

	req := httptest.NewRequest(http.MethodDelete, "/api/orders/99", nil)
	rec := serveOrder(t, svc, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
