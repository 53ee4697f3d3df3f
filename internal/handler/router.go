package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	custommiddleware "github.com/shopline/order-system/internal/middleware"
)

// SetupRouter настраивает HTTP-маршруты и middleware сервиса заказов.
func (h *OrderHandler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(custommiddleware.GzipMiddleware)
	r.Use(custommiddleware.Logger(h.logger))

	r.Route("/api/orders", func(r chi.Router) {
		r.Post("/", h.CreateOrder)
		r.Get("/", h.GetAllOrders)
		r.Get("/with-users", h.GetOrdersWithUsers)

		r.Get("/user/{userId}", h.GetOrdersByUser)
		r.Get("/user/{userId}/status/{status}", h.GetOrdersByUserAndStatus)
		r.Get("/status/{status}", h.GetOrdersByStatus)

		r.Get("/{id}", h.GetOrderByID)
		r.Patch("/{id}/status", h.UpdateOrderStatus)
		r.Put("/{id}", h.UpdateOrder)
		r.Delete("/{id}", h.DeleteOrder)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	return r
}

// SetupRouter настраивает HTTP-маршруты и middleware сервиса справочника пользователей.
func (h *UserHandler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(custommiddleware.GzipMiddleware)
	r.Use(custommiddleware.Logger(h.logger))

	r.Route("/api/users", func(r chi.Router) {
		r.Post("/", h.CreateUser)
		r.Get("/", h.GetAllUsers)
		r.Get("/search/name", h.SearchUsersByName)

		r.Get("/email/{email}", h.GetUserByEmail)
		r.Delete("/email/{email}", h.DeleteUserByEmail)

		r.Get("/{id}", h.GetUserByID)
		r.Put("/{id}", h.UpdateUser)
		r.Delete("/{id}", h.DeleteUser)

		r.Patch("/{id}/activate", h.ActivateUser)
		r.Patch("/{id}/deactivate", h.DeactivateUser)
		r.Patch("/{id}/suspend", h.SuspendUser)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	return r
}
