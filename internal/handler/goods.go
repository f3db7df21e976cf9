package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mmeshcher/mercado-system/internal/model"
)

// CreateGood обрабатывает создание нового товара.
func (h *Handler) CreateGood(w http.ResponseWriter, r *http.Request) {
	var g model.Good
	if !h.decodeStrict(w, r, &g) {
		return
	}

	created, err := h.service.CreateGood(r.Context(), g)
	if err != nil {
		h.writeServiceError(w, err, "Bien no encontrado.")
		return
	}

	h.writeJSON(w, http.StatusCreated, created)
}

// ListGoods возвращает товары, опционально отфильтрованные по имени и описанию.
func (h *Handler) ListGoods(w http.ResponseWriter, r *http.Request) {
	nombre := r.URL.Query().Get("nombre")
	descripcion := r.URL.Query().Get("descripcion")

	goods, err := h.service.ListGoods(r.Context(), nombre, descripcion)
	if err != nil {
		h.writeServiceError(w, err, "Bien no encontrado.")
		return
	}

	if len(goods) == 0 {
		h.writeMensaje(w, http.StatusNotFound, "No se encontraron bienes.")
		return
	}

	h.writeJSON(w, http.StatusOK, goods)
}

// GetGood возвращает товар по идентификатору.
func (h *Handler) GetGood(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	g, err := h.service.GetGoodByID(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err, "Bien no encontrado.")
		return
	}

	h.writeJSON(w, http.StatusOK, g)
}

// UpdateGood применяет частичное обновление товара по идентификатору.
func (h *Handler) UpdateGood(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var upd model.GoodUpdate
	if !h.decodeStrict(w, r, &upd) {
		return
	}

	g, err := h.service.UpdateGoodByID(r.Context(), id, upd)
	if err != nil {
		h.writeServiceError(w, err, "Bien no encontrado.")
		return
	}

	h.writeJSON(w, http.StatusOK, g)
}

// UpdateGoodByName применяет частичное обновление товара по имени из query-строки.
func (h *Handler) UpdateGoodByName(w http.ResponseWriter, r *http.Request) {
	nombre := r.URL.Query().Get("nombre")
	if nombre == "" {
		h.writeMensaje(w, http.StatusBadRequest, "Debe indicarse un nombre en la query.")
		return
	}

	var upd model.GoodUpdate
	if !h.decodeStrict(w, r, &upd) {
		return
	}

	g, err := h.service.UpdateGoodByName(r.Context(), nombre, upd)
	if err != nil {
		h.writeServiceError(w, err, "Bien no encontrado.")
		return
	}

	h.writeJSON(w, http.StatusOK, g)
}

// DeleteGood удаляет товар по идентификатору и возвращает удалённый документ.
func (h *Handler) DeleteGood(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	g, err := h.service.DeleteGoodByID(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err, "Bien no encontrado.")
		return
	}

	h.writeJSON(w, http.StatusOK, g)
}

// DeleteGoodByName удаляет товар по имени из query-строки.
func (h *Handler) DeleteGoodByName(w http.ResponseWriter, r *http.Request) {
	nombre := r.URL.Query().Get("nombre")
	if nombre == "" {
		h.writeMensaje(w, http.StatusBadRequest, "Debe indicarse un nombre en la query.")
		return
	}

	g, err := h.service.DeleteGoodByName(r.Context(), nombre)
	if err != nil {
		h.writeServiceError(w, err, "Bien no encontrado.")
		return
	}

	h.writeJSON(w, http.StatusOK, g)
}
