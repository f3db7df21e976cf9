package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mmeshcher/mercado-system/internal/model"
	"github.com/mmeshcher/mercado-system/internal/repository"
)

// CreateTransaction обрабатывает запрос на совершение сделки: проверка,
// перевод денег и товаров, запись о сделке.
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req model.TradeRequest
	if !h.decodeStrict(w, r, &req) {
		return
	}

	t, err := h.service.Settle(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, err, "Transacción no encontrada.",
			zap.String("clienteId", req.ClienteID),
			zap.String("mercaderId", req.MercaderID),
		)
		return
	}

	h.writeJSON(w, http.StatusCreated, t)
}

// ListTransactions возвращает сделки по необязательным фильтрам:
// участникам и диапазону дат.
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	f := repository.TransactionFilter{
		ClienteID:  q.Get("clienteId"),
		MercaderID: q.Get("mercaderId"),
	}

	if v := q.Get("fechaInicio"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			h.writeMensaje(w, http.StatusBadRequest, "fechaInicio no válida.")
			return
		}
		f.FechaInicio = &ts
	}
	if v := q.Get("fechaFin"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			h.writeMensaje(w, http.StatusBadRequest, "fechaFin no válida.")
			return
		}
		f.FechaFin = &ts
	}

	transactions, err := h.service.ListTransactions(r.Context(), f)
	if err != nil {
		h.writeServiceError(w, err, "Transacción no encontrada.")
		return
	}

	if transactions == nil {
		transactions = []model.Transaction{}
	}

	h.writeJSON(w, http.StatusOK, transactions)
}

// GetTransaction возвращает запись о сделке по идентификатору.
func (h *Handler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	t, err := h.service.GetTransactionByID(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err, "Transacción no encontrada.")
		return
	}

	h.writeJSON(w, http.StatusOK, t)
}

type transactionTotalResponse struct {
	Mensaje     string  `json:"mensaje"`
	Total       float64 `json:"total"`
	TotalActual float64 `json:"totalActual"`
}

// GetTransactionTotal возвращает обе суммы сделки: зафиксированную при
// совершении и пересчитанную по текущим ценам товаров.
func (h *Handler) GetTransactionTotal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	totals, err := h.service.GetTransactionTotals(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err, "Transacción no encontrada.")
		return
	}

	h.writeJSON(w, http.StatusOK, transactionTotalResponse{
		Mensaje:     "Total de la transacción obtenido correctamente.",
		Total:       totals.Total,
		TotalActual: totals.TotalActual,
	})
}

type transactionUpdatedResponse struct {
	Mensaje     string             `json:"mensaje"`
	Transaccion *model.Transaction `json:"transaccion"`
}

// UpdateTransaction применяет административную правку записи о сделке.
// Повторная проверка условий сделки не выполняется.
func (h *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var upd model.TransactionUpdate
	if !h.decodeStrict(w, r, &upd) {
		return
	}

	t, err := h.service.UpdateTransaction(r.Context(), id, upd)
	if err != nil {
		h.writeServiceError(w, err, "Transacción no encontrada.")
		return
	}

	h.writeJSON(w, http.StatusOK, transactionUpdatedResponse{
		Mensaje:     "Transacción actualizada correctamente.",
		Transaccion: t,
	})
}

// DeleteTransaction удаляет запись о сделке по идентификатору.
func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	_, err := h.service.DeleteTransaction(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err, "Transacción no encontrada.")
		return
	}

	h.writeMensaje(w, http.StatusOK, "Transacción eliminada correctamente.")
}
