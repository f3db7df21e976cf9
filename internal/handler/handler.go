// Package handler содержит HTTP-обработчики API торгового сервиса.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/mmeshcher/mercado-system/internal/model"
	"github.com/mmeshcher/mercado-system/internal/repository"
	"github.com/mmeshcher/mercado-system/internal/service"
	"github.com/mmeshcher/mercado-system/internal/trade"
)

// Service определяет контракт бизнес-логики, используемой HTTP-обработчиками.
type Service interface {
	CreateGood(ctx context.Context, g model.Good) (*model.Good, error)
	GetGoodByID(ctx context.Context, id string) (*model.Good, error)
	ListGoods(ctx context.Context, nombre, descripcion string) ([]model.Good, error)
	UpdateGoodByID(ctx context.Context, id string, upd model.GoodUpdate) (*model.Good, error)
	UpdateGoodByName(ctx context.Context, nombre string, upd model.GoodUpdate) (*model.Good, error)
	DeleteGoodByID(ctx context.Context, id string) (*model.Good, error)
	DeleteGoodByName(ctx context.Context, nombre string) (*model.Good, error)

	CreateClient(ctx context.Context, c model.Client) (*model.Client, error)
	GetClientByID(ctx context.Context, id string) (*model.Client, error)
	ListClients(ctx context.Context, nombre string) ([]model.Client, error)
	ListClientsByType(ctx context.Context, tipo string) ([]model.Client, error)
	ListClientsByMoney(ctx context.Context, dinero float64) ([]model.Client, error)
	UpdateClient(ctx context.Context, id string, upd model.ClientUpdate) (*model.Client, error)
	DeleteClient(ctx context.Context, id string) (*model.Client, error)

	CreateMerchant(ctx context.Context, m model.Merchant) (*model.Merchant, error)
	GetMerchantByID(ctx context.Context, id string) (*model.Merchant, error)
	ListMerchants(ctx context.Context, nombre string) ([]model.Merchant, error)
	ListMerchantsByLocation(ctx context.Context, ubicacion string) ([]model.Merchant, error)
	ListMerchantsBySpecialty(ctx context.Context, especialidad string) ([]model.Merchant, error)
	UpdateMerchant(ctx context.Context, id string, upd model.MerchantUpdate) (*model.Merchant, error)
	UpdateMerchantByName(ctx context.Context, nombre string, upd model.MerchantUpdate) (*model.Merchant, error)
	DeleteMerchant(ctx context.Context, id string) (*model.Merchant, error)

	Settle(ctx context.Context, req model.TradeRequest) (*model.Transaction, error)
	GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error)
	GetTransactionTotals(ctx context.Context, id string) (*service.TransactionTotals, error)
	ListTransactions(ctx context.Context, f repository.TransactionFilter) ([]model.Transaction, error)
	UpdateTransaction(ctx context.Context, id string, upd model.TransactionUpdate) (*model.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) (*model.Transaction, error)
}

// Handler реализует HTTP-обработчики API торгового сервиса.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler создаёт новый экземпляр обработчика HTTP-запросов.
func NewHandler(s Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: s,
		logger:  logger,
	}
}

type mensajeResponse struct {
	Mensaje string `json:"mensaje"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response", zap.Error(err))
	}
}

func (h *Handler) writeMensaje(w http.ResponseWriter, status int, mensaje string) {
	h.writeJSON(w, status, mensajeResponse{Mensaje: mensaje})
}

// decodeStrict разбирает тело запроса, отклоняя неизвестные поля.
// Попытка передать "_id" превращается в понятное клиенту сообщение.
func (h *Handler) decodeStrict(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		if strings.Contains(err.Error(), `"_id"`) {
			h.writeMensaje(w, http.StatusBadRequest, "No se puede modificar el ID.")
		} else {
			h.writeMensaje(w, http.StatusBadRequest, "Cuerpo de la petición no válido.")
		}
		return false
	}
	return true
}

// writeServiceError отображает ошибку бизнес-логики в HTTP-статус:
// отсутствие сущности — 404, нарушение условий — 400, остальное — 500.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error, notFoundMensaje string, fields ...zap.Field) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		h.writeMensaje(w, http.StatusNotFound, notFoundMensaje)
	case trade.IsNotFound(err):
		h.writeMensaje(w, http.StatusNotFound, err.Error())
	case trade.IsValidation(err),
		errors.Is(err, service.ErrValidation),
		errors.Is(err, repository.ErrDuplicateName):
		h.writeMensaje(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("internal error", append(fields, zap.Error(err))...)
		h.writeMensaje(w, http.StatusInternalServerError, "Error interno del servidor")
	}
}
