// Package service реализует бизнес-логику торгового сервиса.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mmeshcher/mercado-system/internal/model"
	"github.com/mmeshcher/mercado-system/internal/repository"
	"github.com/mmeshcher/mercado-system/internal/trade"
	"github.com/mmeshcher/mercado-system/internal/validation"
)

// ErrValidation возвращается при нарушении правил заполнения полей сущности.
// Конкретная причина добавляется обёрткой поверх этой ошибки.
var ErrValidation = errors.New("validación fallida")

// Repository описывает контракт доступа к данным, используемый сервисом.
type Repository interface {
	Close() error

	CreateGood(ctx context.Context, g model.Good) (*model.Good, error)
	GetGoodByID(ctx context.Context, id string) (*model.Good, error)
	GetGoodsByIDs(ctx context.Context, ids []string) (map[string]model.Good, error)
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
	GetMerchantByName(ctx context.Context, nombre string) (*model.Merchant, error)
	ListMerchants(ctx context.Context, nombre string) ([]model.Merchant, error)
	ListMerchantsByLocation(ctx context.Context, ubicacion string) ([]model.Merchant, error)
	ListMerchantsBySpecialty(ctx context.Context, especialidad string) ([]model.Merchant, error)
	UpdateMerchant(ctx context.Context, id string, upd model.MerchantUpdate) (*model.Merchant, error)
	DeleteMerchant(ctx context.Context, id string) (*model.Merchant, error)

	SettleTransaction(ctx context.Context, t model.Transaction) (*model.Transaction, error)
	GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error)
	ListTransactions(ctx context.Context, f repository.TransactionFilter) ([]model.Transaction, error)
	UpdateTransaction(ctx context.Context, id string, upd model.TransactionUpdate) (*model.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) (*model.Transaction, error)
}

// Service содержит бизнес-логику торгового сервиса.
type Service struct {
	repo Repository
}

// NewService создаёт новый сервис поверх указанного репозитория.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Close закрывает ресурсы сервиса.
func (s *Service) Close() error {
	if s.repo != nil {
		return s.repo.Close()
	}
	return nil
}

func newID() string {
	return primitive.NewObjectID().Hex()
}

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// validateHoldings проверяет форму списка владения: положительные
// количества и отсутствие дублей по товару.
func validateHoldings(list []model.Holding) error {
	seen := make(map[string]struct{}, len(list))
	for _, h := range list {
		if h.BienID == "" {
			return validationError("cada posición debe indicar bienId")
		}
		if h.Cantidad <= 0 {
			return validationError("la cantidad del bien %s debe ser positiva", h.BienID)
		}
		if _, ok := seen[h.BienID]; ok {
			return validationError("el bien %s aparece más de una vez", h.BienID)
		}
		seen[h.BienID] = struct{}{}
	}
	return nil
}

// CreateGood проверяет поля и сохраняет новый товар.
func (s *Service) CreateGood(ctx context.Context, g model.Good) (*model.Good, error) {
	if g.Nombre == "" || g.Descripcion == "" {
		return nil, validationError("nombre y descripcion son obligatorios")
	}
	if g.Valor < 0 {
		return nil, validationError("el valor no puede ser negativo")
	}
	if !validation.IsValidGoodType(g.Tipo) {
		return nil, validationError("tipo de bien no válido: %s", g.Tipo)
	}

	g.ID = newID()
	return s.repo.CreateGood(ctx, g)
}

// GetGoodByID возвращает товар по идентификатору.
func (s *Service) GetGoodByID(ctx context.Context, id string) (*model.Good, error) {
	return s.repo.GetGoodByID(ctx, id)
}

// ListGoods возвращает товары по необязательным фильтрам.
func (s *Service) ListGoods(ctx context.Context, nombre, descripcion string) ([]model.Good, error) {
	return s.repo.ListGoods(ctx, nombre, descripcion)
}

func validateGoodUpdate(upd model.GoodUpdate) error {
	if upd.IsEmpty() {
		return validationError("no hay campos para actualizar")
	}
	if upd.Nombre != nil && *upd.Nombre == "" {
		return validationError("el nombre no puede estar vacío")
	}
	if upd.Valor != nil && *upd.Valor < 0 {
		return validationError("el valor no puede ser negativo")
	}
	if upd.Tipo != nil && !validation.IsValidGoodType(*upd.Tipo) {
		return validationError("tipo de bien no válido: %s", *upd.Tipo)
	}
	return nil
}

// UpdateGoodByID применяет частичное обновление товара по идентификатору.
func (s *Service) UpdateGoodByID(ctx context.Context, id string, upd model.GoodUpdate) (*model.Good, error) {
	if err := validateGoodUpdate(upd); err != nil {
		return nil, err
	}
	return s.repo.UpdateGoodByID(ctx, id, upd)
}

// UpdateGoodByName применяет частичное обновление товара по имени.
func (s *Service) UpdateGoodByName(ctx context.Context, nombre string, upd model.GoodUpdate) (*model.Good, error) {
	if err := validateGoodUpdate(upd); err != nil {
		return nil, err
	}
	return s.repo.UpdateGoodByName(ctx, nombre, upd)
}

// DeleteGoodByID удаляет товар по идентификатору.
func (s *Service) DeleteGoodByID(ctx context.Context, id string) (*model.Good, error) {
	return s.repo.DeleteGoodByID(ctx, id)
}

// DeleteGoodByName удаляет товар по имени.
func (s *Service) DeleteGoodByName(ctx context.Context, nombre string) (*model.Good, error) {
	return s.repo.DeleteGoodByName(ctx, nombre)
}

// CreateClient проверяет поля и сохраняет нового клиента.
func (s *Service) CreateClient(ctx context.Context, c model.Client) (*model.Client, error) {
	if !validation.IsValidName(c.Nombre) {
		return nil, validationError("el nombre debe empezar con mayúscula")
	}
	if !validation.IsValidClientType(c.Tipo) {
		return nil, validationError("tipo de cliente no válido: %s", c.Tipo)
	}
	if c.Dinero < 0 {
		return nil, validationError("el dinero no puede ser negativo")
	}
	if err := validateHoldings(c.Bienes); err != nil {
		return nil, err
	}

	c.ID = newID()
	return s.repo.CreateClient(ctx, c)
}

// GetClientByID возвращает клиента по идентификатору.
func (s *Service) GetClientByID(ctx context.Context, id string) (*model.Client, error) {
	return s.repo.GetClientByID(ctx, id)
}

// ListClients возвращает клиентов по необязательному фильтру имени.
func (s *Service) ListClients(ctx context.Context, nombre string) ([]model.Client, error) {
	return s.repo.ListClients(ctx, nombre)
}

// ListClientsByType возвращает клиентов указанного типа.
func (s *Service) ListClientsByType(ctx context.Context, tipo string) ([]model.Client, error) {
	return s.repo.ListClientsByType(ctx, tipo)
}

// ListClientsByMoney возвращает клиентов с точным значением баланса.
func (s *Service) ListClientsByMoney(ctx context.Context, dinero float64) ([]model.Client, error) {
	return s.repo.ListClientsByMoney(ctx, dinero)
}

// UpdateClient применяет частичное обновление клиента по идентификатору.
func (s *Service) UpdateClient(ctx context.Context, id string, upd model.ClientUpdate) (*model.Client, error) {
	if upd.IsEmpty() {
		return nil, validationError("no hay campos para actualizar")
	}
	if upd.Nombre != nil && !validation.IsValidName(*upd.Nombre) {
		return nil, validationError("el nombre debe empezar con mayúscula")
	}
	if upd.Tipo != nil && !validation.IsValidClientType(*upd.Tipo) {
		return nil, validationError("tipo de cliente no válido: %s", *upd.Tipo)
	}
	if upd.Dinero != nil && *upd.Dinero < 0 {
		return nil, validationError("el dinero no puede ser negativo")
	}
	if upd.Bienes != nil {
		if err := validateHoldings(upd.Bienes); err != nil {
			return nil, err
		}
	}
	return s.repo.UpdateClient(ctx, id, upd)
}

// DeleteClient удаляет клиента по идентификатору.
func (s *Service) DeleteClient(ctx context.Context, id string) (*model.Client, error) {
	return s.repo.DeleteClient(ctx, id)
}

// CreateMerchant проверяет поля и сохраняет нового мерчанта.
func (s *Service) CreateMerchant(ctx context.Context, m model.Merchant) (*model.Merchant, error) {
	if !validation.IsValidName(m.Nombre) {
		return nil, validationError("el nombre debe empezar con mayúscula")
	}
	if m.Tienda == "" {
		return nil, validationError("tienda es obligatoria")
	}
	if !validation.IsValidLocation(m.Ubicacion) {
		return nil, validationError("ubicación no válida: %s", m.Ubicacion)
	}
	if !validation.IsValidSpecialty(m.Especialidad) {
		return nil, validationError("especialidad no válida: %s", m.Especialidad)
	}
	if !validation.IsValidReputation(m.Reputacion) {
		return nil, validationError("la reputación debe estar entre 1 y 5")
	}
	if m.Dinero < 0 {
		return nil, validationError("el dinero no puede ser negativo")
	}
	if err := validateHoldings(m.Inventario); err != nil {
		return nil, err
	}

	m.ID = newID()
	return s.repo.CreateMerchant(ctx, m)
}

// GetMerchantByID возвращает мерчанта по идентификатору.
func (s *Service) GetMerchantByID(ctx context.Context, id string) (*model.Merchant, error) {
	return s.repo.GetMerchantByID(ctx, id)
}

// ListMerchants возвращает мерчантов по необязательному фильтру имени.
func (s *Service) ListMerchants(ctx context.Context, nombre string) ([]model.Merchant, error) {
	return s.repo.ListMerchants(ctx, nombre)
}

// ListMerchantsByLocation возвращает мерчантов в указанной локации.
func (s *Service) ListMerchantsByLocation(ctx context.Context, ubicacion string) ([]model.Merchant, error) {
	return s.repo.ListMerchantsByLocation(ctx, ubicacion)
}

// ListMerchantsBySpecialty возвращает мерчантов с указанной специализацией.
func (s *Service) ListMerchantsBySpecialty(ctx context.Context, especialidad string) ([]model.Merchant, error) {
	return s.repo.ListMerchantsBySpecialty(ctx, especialidad)
}

func validateMerchantUpdate(upd model.MerchantUpdate) error {
	if upd.IsEmpty() {
		return validationError("no hay campos para actualizar")
	}
	if upd.Nombre != nil && !validation.IsValidName(*upd.Nombre) {
		return validationError("el nombre debe empezar con mayúscula")
	}
	if upd.Tienda != nil && *upd.Tienda == "" {
		return validationError("tienda no puede estar vacía")
	}
	if upd.Ubicacion != nil && !validation.IsValidLocation(*upd.Ubicacion) {
		return validationError("ubicación no válida: %s", *upd.Ubicacion)
	}
	if upd.Especialidad != nil && !validation.IsValidSpecialty(*upd.Especialidad) {
		return validationError("especialidad no válida: %s", *upd.Especialidad)
	}
	if upd.Reputacion != nil && !validation.IsValidReputation(*upd.Reputacion) {
		return validationError("la reputación debe estar entre 1 y 5")
	}
	if upd.Dinero != nil && *upd.Dinero < 0 {
		return validationError("el dinero no puede ser negativo")
	}
	if upd.Inventario != nil {
		return validateHoldings(upd.Inventario)
	}
	return nil
}

// UpdateMerchant применяет частичное обновление мерчанта по идентификатору.
func (s *Service) UpdateMerchant(ctx context.Context, id string, upd model.MerchantUpdate) (*model.Merchant, error) {
	if err := validateMerchantUpdate(upd); err != nil {
		return nil, err
	}
	return s.repo.UpdateMerchant(ctx, id, upd)
}

// UpdateMerchantByName применяет частичное обновление мерчанта по имени.
// Само имя на этом маршруте неизменяемо.
func (s *Service) UpdateMerchantByName(ctx context.Context, nombre string, upd model.MerchantUpdate) (*model.Merchant, error) {
	if upd.Nombre != nil {
		return nil, validationError("no se puede modificar el nombre del mercader")
	}
	if err := validateMerchantUpdate(upd); err != nil {
		return nil, err
	}

	m, err := s.repo.GetMerchantByName(ctx, nombre)
	if err != nil {
		return nil, err
	}

	return s.repo.UpdateMerchant(ctx, m.ID, upd)
}

// DeleteMerchant удаляет мерчанта по идентификатору.
func (s *Service) DeleteMerchant(ctx context.Context, id string) (*model.Merchant, error) {
	return s.repo.DeleteMerchant(ctx, id)
}

// Settle проверяет и исполняет сделку: переводит деньги и товары между
// клиентом и мерчантом и фиксирует неизменяемую запись о сделке.
func (s *Service) Settle(ctx context.Context, req model.TradeRequest) (*model.Transaction, error) {
	if req.ClienteID == "" || req.MercaderID == "" {
		return nil, validationError("clienteId y mercaderId son obligatorios")
	}
	if len(req.Bienes) == 0 {
		return nil, trade.ErrEmptyTrade
	}
	if err := validateHoldings(req.Bienes); err != nil {
		return nil, err
	}

	t := model.Transaction{
		ID:         newID(),
		Fecha:      time.Now().UTC(),
		ClienteID:  req.ClienteID,
		MercaderID: req.MercaderID,
		Bienes:     req.Bienes,
	}

	return s.repo.SettleTransaction(ctx, t)
}

// GetTransactionByID возвращает запись о сделке по идентификатору.
func (s *Service) GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error) {
	return s.repo.GetTransactionByID(ctx, id)
}

// ListTransactions возвращает сделки по фильтрам.
func (s *Service) ListTransactions(ctx context.Context, f repository.TransactionFilter) ([]model.Transaction, error) {
	return s.repo.ListTransactions(ctx, f)
}

// TransactionTotals содержит зафиксированную при совершении сделки сумму
// и сумму, пересчитанную по текущим ценам товаров.
type TransactionTotals struct {
	Total       float64
	TotalActual float64
}

// GetTransactionTotals возвращает обе суммы сделки: сохранённую и
// пересчитанную по текущим ценам. Если один из товаров сделки с тех пор
// удалён, пересчёт невозможен и возвращается ошибка.
func (s *Service) GetTransactionTotals(ctx context.Context, id string) (*TransactionTotals, error) {
	t, err := s.repo.GetTransactionByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(t.Bienes))
	for _, h := range t.Bienes {
		ids = append(ids, h.BienID)
	}

	goods, err := s.repo.GetGoodsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	actual, err := trade.Reprice(goods, t.Bienes)
	if err != nil {
		return nil, err
	}

	return &TransactionTotals{
		Total:       t.Total,
		TotalActual: actual,
	}, nil
}

// UpdateTransaction применяет административную правку записи о сделке.
func (s *Service) UpdateTransaction(ctx context.Context, id string, upd model.TransactionUpdate) (*model.Transaction, error) {
	if upd.IsEmpty() {
		return nil, validationError("no hay campos para actualizar")
	}
	if upd.Bienes != nil {
		if err := validateHoldings(upd.Bienes); err != nil {
			return nil, err
		}
	}
	return s.repo.UpdateTransaction(ctx, id, upd)
}

// DeleteTransaction удаляет запись о сделке по идентификатору.
func (s *Service) DeleteTransaction(ctx context.Context, id string) (*model.Transaction, error) {
	return s.repo.DeleteTransaction(ctx, id)
}
