package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mmeshcher/mercado-system/internal/model"
)

// CreateMerchant обрабатывает создание нового мерчанта.
func (h *Handler) CreateMerchant(w http.ResponseWriter, r *http.Request) {
	var m model.Merchant
	if !h.decodeStrict(w, r, &m) {
		return
	}

	created, err := h.service.CreateMerchant(r.Context(), m)
	if err != nil {
		h.writeServiceError(w, err, "Mercader no encontrado.")
		return
	}

	h.writeJSON(w, http.StatusCreated, created)
}

// ListMerchants возвращает мерчантов, опционально отфильтрованных по имени.
func (h *Handler) ListMerchants(w http.ResponseWriter, r *http.Request) {
	nombre := r.URL.Query().Get("nombre")

	merchants, err := h.service.ListMerchants(r.Context(), nombre)
	if err != nil {
		h.writeServiceError(w, err, "Mercader no encontrado.")
		return
	}

	if len(merchants) == 0 {
		h.writeMensaje(w, http.StatusNotFound, "No se encontraron mercaderes.")
		return
	}

	h.writeJSON(w, http.StatusOK, merchants)
}

// GetMerchant возвращает мерчанта по идентификатору.
func (h *Handler) GetMerchant(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	m, err := h.service.GetMerchantByID(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err, "Mercader no encontrado.")
		return
	}

	h.writeJSON(w, http.StatusOK, m)
}

type merchantMoneyResponse struct {
	Mensaje string  `json:"mensaje"`
	Dinero  float64 `json:"dinero"`
}

// GetMerchantMoney возвращает денежный баланс мерчанта.
func (h *Handler) GetMerchantMoney(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	m, err := h.service.GetMerchantByID(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err, "Mercader no encontrado.")
		return
	}

	h.writeJSON(w, http.StatusOK, merchantMoneyResponse{
		Mensaje: "Dinero del mercader obtenido correctamente.",
		Dinero:  m.Dinero,
	})
}

// ListMerchantsByLocation возвращает мерчантов в указанной локации.
func (h *Handler) ListMerchantsByLocation(w http.ResponseWriter, r *http.Request) {
	ubicacion := chi.URLParam(r, "ubicacion")

	merchants, err := h.service.ListMerchantsByLocation(r.Context(), ubicacion)
	if err != nil {
		h.writeServiceError(w, err, "Mercader no encontrado.")
		return
	}

	if len(merchants) == 0 {
		h.writeMensaje(w, http.StatusNotFound, "No se encontraron mercaderes en '"+ubicacion+"'.")
		return
	}

	h.writeJSON(w, http.StatusOK, merchants)
}

// ListMerchantsBySpecialty возвращает мерчантов с указанной специализацией.
func (h *Handler) ListMerchantsBySpecialty(w http.ResponseWriter, r *http.Request) {
	especialidad := chi.URLParam(r, "especialidad")

	merchants, err := h.service.ListMerchantsBySpecialty(r.Context(), especialidad)
	if err != nil {
		h.writeServiceError(w, err, "Mercader no encontrado.")
		return
	}

	if len(merchants) == 0 {
		h.writeMensaje(w, http.StatusNotFound, "No se encontraron mercaderes especializados en '"+especialidad+"'.")
		return
	}

	h.writeJSON(w, http.StatusOK, merchants)
}

// UpdateMerchant применяет частичное обновление мерчанта по идентификатору.
func (h *Handler) UpdateMerchant(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var upd model.MerchantUpdate
	if !h.decodeStrict(w, r, &upd) {
		return
	}

	m, err := h.service.UpdateMerchant(r.Context(), id, upd)
	if err != nil {
		h.writeServiceError(w, err, "Mercader no encontrado.")
		return
	}

	h.writeJSON(w, http.StatusOK, m)
}

// UpdateMerchantByName применяет частичное обновление мерчанта по имени.
func (h *Handler) UpdateMerchantByName(w http.ResponseWriter, r *http.Request) {
	nombre := chi.URLParam(r, "nombre")

	var upd model.MerchantUpdate
	if !h.decodeStrict(w, r, &upd) {
		return
	}

	m, err := h.service.UpdateMerchantByName(r.Context(), nombre, upd)
	if err != nil {
		h.writeServiceError(w, err, "Mercader no encontrado.")
		return
	}

	h.writeJSON(w, http.StatusOK, m)
}

type merchantDeletedResponse struct {
	Mensaje  string          `json:"mensaje"`
	Mercader *model.Merchant `json:"mercader"`
}

// DeleteMerchant удаляет мерчанта по идентификатору и возвращает удалённый документ.
func (h *Handler) DeleteMerchant(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	m, err := h.service.DeleteMerchant(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err, "Mercader no encontrado.")
		return
	}

	h.writeJSON(w, http.StatusOK, merchantDeletedResponse{
		Mensaje:  "Mercader eliminado correctamente.",
		Mercader: m,
	})
}
