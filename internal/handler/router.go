package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	custommiddleware "github.com/mmeshcher/mercado-system/internal/middleware"
)

// SetupRouter настраивает HTTP-маршруты и middleware торгового сервиса.
func (h *Handler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(custommiddleware.GzipMiddleware)
	r.Use(custommiddleware.Logger(h.logger))

	r.Route("/bienes", func(r chi.Router) {
		r.Post("/", h.CreateGood)
		r.Get("/", h.ListGoods)
		r.Patch("/", h.UpdateGoodByName)
		r.Delete("/", h.DeleteGoodByName)

		r.Get("/{id}", h.GetGood)
		r.Patch("/{id}", h.UpdateGood)
		r.Delete("/{id}", h.DeleteGood)
	})

	r.Route("/clientes", func(r chi.Router) {
		r.Post("/", h.CreateClient)
		r.Get("/", h.ListClients)

		r.Get("/tipo/{tipo}", h.ListClientsByType)
		r.Get("/dinero/{dinero}", h.ListClientsByMoney)

		r.Get("/{id}", h.GetClient)
		r.Get("/{id}/dinero", h.GetClientMoney)
		r.Patch("/{id}", h.UpdateClient)
		r.Delete("/{id}", h.DeleteClient)
	})

	r.Route("/mercaderes", func(r chi.Router) {
		r.Post("/", h.CreateMerchant)
		r.Get("/", h.ListMerchants)

		r.Get("/ubicacion/{ubicacion}", h.ListMerchantsByLocation)
		r.Get("/especialidad/{especialidad}", h.ListMerchantsBySpecialty)
		r.Patch("/nombre/{nombre}", h.UpdateMerchantByName)

		r.Get("/{id}", h.GetMerchant)
		r.Get("/{id}/dinero", h.GetMerchantMoney)
		r.Patch("/{id}", h.UpdateMerchant)
		r.Delete("/{id}", h.DeleteMerchant)
	})

	r.Route("/transacciones", func(r chi.Router) {
		r.Post("/", h.CreateTransaction)
		r.Get("/", h.ListTransactions)

		r.Get("/{id}", h.GetTransaction)
		r.Get("/{id}/total", h.GetTransactionTotal)
		r.Patch("/{id}", h.UpdateTransaction)
		r.Delete("/{id}", h.DeleteTransaction)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	return r
}
