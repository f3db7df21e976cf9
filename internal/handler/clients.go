package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mmeshcher/mercado-system/internal/model"
)

// CreateClient обрабатывает создание нового клиента.
func (h *Handler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var c model.Client
	if !h.decodeStrict(w, r, &c) {
		return
	}

	created, err := h.service.CreateClient(r.Context(), c)
	if err != nil {
		h.writeServiceError(w, err, "Cliente no encontrado.")
		return
	}

	h.writeJSON(w, http.StatusCreated, created)
}

// ListClients возвращает клиентов, опционально отфильтрованных по имени.
func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	nombre := r.URL.Query().Get("nombre")

	clients, err := h.service.ListClients(r.Context(), nombre)
	if err != nil {
		h.writeServiceError(w, err, "Cliente no encontrado.")
		return
	}

	if len(clients) == 0 {
		h.writeMensaje(w, http.StatusNotFound, "No se encontraron clientes.")
		return
	}

	h.writeJSON(w, http.StatusOK, clients)
}

// GetClient возвращает клиента по идентификатору.
func (h *Handler) GetClient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	c, err := h.service.GetClientByID(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err, "Cliente no encontrado.")
		return
	}

	h.writeJSON(w, http.StatusOK, c)
}

type clientMoneyResponse struct {
	Dinero float64 `json:"dinero"`
}

// GetClientMoney возвращает денежный баланс клиента.
func (h *Handler) GetClientMoney(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	c, err := h.service.GetClientByID(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err, "Cliente no encontrado.")
		return
	}

	h.writeJSON(w, http.StatusOK, clientMoneyResponse{Dinero: c.Dinero})
}

// ListClientsByType возвращает клиентов указанного типа.
func (h *Handler) ListClientsByType(w http.ResponseWriter, r *http.Request) {
	tipo := chi.URLParam(r, "tipo")

	clients, err := h.service.ListClientsByType(r.Context(), tipo)
	if err != nil {
		h.writeServiceError(w, err, "Cliente no encontrado.")
		return
	}

	if len(clients) == 0 {
		h.writeMensaje(w, http.StatusNotFound, "No se encontraron clientes del tipo '"+tipo+"'.")
		return
	}

	h.writeJSON(w, http.StatusOK, clients)
}

// ListClientsByMoney возвращает клиентов с точным значением баланса.
func (h *Handler) ListClientsByMoney(w http.ResponseWriter, r *http.Request) {
	dinero, err := strconv.ParseFloat(chi.URLParam(r, "dinero"), 64)
	if err != nil {
		h.writeMensaje(w, http.StatusBadRequest, "El dinero debe ser un número.")
		return
	}

	clients, err := h.service.ListClientsByMoney(r.Context(), dinero)
	if err != nil {
		h.writeServiceError(w, err, "Cliente no encontrado.")
		return
	}

	if len(clients) == 0 {
		h.writeMensaje(w, http.StatusNotFound, "No se encontraron clientes con esa cantidad exacta de dinero.")
		return
	}

	h.writeJSON(w, http.StatusOK, clients)
}

// UpdateClient применяет частичное обновление клиента по идентификатору.
func (h *Handler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var upd model.ClientUpdate
	if !h.decodeStrict(w, r, &upd) {
		return
	}

	c, err := h.service.UpdateClient(r.Context(), id, upd)
	if err != nil {
		h.writeServiceError(w, err, "Cliente no encontrado.")
		return
	}

	h.writeJSON(w, http.StatusOK, c)
}

// DeleteClient удаляет клиента по идентификатору.
func (h *Handler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	_, err := h.service.DeleteClient(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err, "Cliente no encontrado.")
		return
	}

	h.writeMensaje(w, http.StatusOK, "Cliente eliminado correctamente.")
}
