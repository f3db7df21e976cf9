package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/mmeshcher/mercado-system/internal/model"
	"github.com/mmeshcher/mercado-system/internal/repository"
	"github.com/mmeshcher/mercado-system/internal/service"
	"github.com/mmeshcher/mercado-system/internal/trade"
)

type stubService struct {
	good    *model.Good
	goodErr error

	goods    []model.Good
	goodsErr error

	client    *model.Client
	clientErr error

	clients    []model.Client
	clientsErr error

	merchant    *model.Merchant
	merchantErr error

	merchants    []model.Merchant
	merchantsErr error

	settled    *model.Transaction
	settledErr error

	transaction    *model.Transaction
	transactionErr error

	transactions    []model.Transaction
	transactionsErr error

	totals    *service.TransactionTotals
	totalsErr error
}

func (s *stubService) CreateGood(ctx context.Context, g model.Good) (*model.Good, error) {
	return s.good, s.goodErr
}

func (s *stubService) GetGoodByID(ctx context.Context, id string) (*model.Good, error) {
	return s.good, s.goodErr
}

func (s *stubService) ListGoods(ctx context.Context, nombre, descripcion string) ([]model.Good, error) {
	return s.goods, s.goodsErr
}

func (s *stubService) UpdateGoodByID(ctx context.Context, id string, upd model.GoodUpdate) (*model.Good, error) {
	return s.good, s.goodErr
}

func (s *stubService) UpdateGoodByName(ctx context.Context, nombre string, upd model.GoodUpdate) (*model.Good, error) {
	return s.good, s.goodErr
}

func (s *stubService) DeleteGoodByID(ctx context.Context, id string) (*model.Good, error) {
	return s.good, s.goodErr
}

func (s *stubService) DeleteGoodByName(ctx context.Context, nombre string) (*model.Good, error) {
	return s.good, s.goodErr
}

func (s *stubService) CreateClient(ctx context.Context, c model.Client) (*model.Client, error) {
	return s.client, s.clientErr
}

func (s *stubService) GetClientByID(ctx context.Context, id string) (*model.Client, error) {
	return s.client, s.clientErr
}

func (s *stubService) ListClients(ctx context.Context, nombre string) ([]model.Client, error) {
	return s.clients, s.clientsErr
}

func (s *stubService) ListClientsByType(ctx context.Context, tipo string) ([]model.Client, error) {
	return s.clients, s.clientsErr
}

func (s *stubService) ListClientsByMoney(ctx context.Context, dinero float64) ([]model.Client, error) {
	return s.clients, s.clientsErr
}

func (s *stubService) UpdateClient(ctx context.Context, id string, upd model.ClientUpdate) (*model.Client, error) {
	return s.client, s.clientErr
}

func (s *stubService) DeleteClient(ctx context.Context, id string) (*model.Client, error) {
	return s.client, s.clientErr
}

func (s *stubService) CreateMerchant(ctx context.Context, m model.Merchant) (*model.Merchant, error) {
	return s.merchant, s.merchantErr
}

func (s *stubService) GetMerchantByID(ctx context.Context, id string) (*model.Merchant, error) {
	return s.merchant, s.merchantErr
}

func (s *stubService) ListMerchants(ctx context.Context, nombre string) ([]model.Merchant, error) {
	return s.merchants, s.merchantsErr
}

func (s *stubService) ListMerchantsByLocation(ctx context.Context, ubicacion string) ([]model.Merchant, error) {
	return s.merchants, s.merchantsErr
}

func (s *stubService) ListMerchantsBySpecialty(ctx context.Context, especialidad string) ([]model.Merchant, error) {
	return s.merchants, s.merchantsErr
}

func (s *stubService) UpdateMerchant(ctx context.Context, id string, upd model.MerchantUpdate) (*model.Merchant, error) {
	return s.merchant, s.merchantErr
}

func (s *stubService) UpdateMerchantByName(ctx context.Context, nombre string, upd model.MerchantUpdate) (*model.Merchant, error) {
	return s.merchant, s.merchantErr
}

func (s *stubService) DeleteMerchant(ctx context.Context, id string) (*model.Merchant, error) {
	return s.merchant, s.merchantErr
}

func (s *stubService) Settle(ctx context.Context, req model.TradeRequest) (*model.Transaction, error) {
	return s.settled, s.settledErr
}

func (s *stubService) GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error) {
	return s.transaction, s.transactionErr
}

func (s *stubService) GetTransactionTotals(ctx context.Context, id string) (*service.TransactionTotals, error) {
	return s.totals, s.totalsErr
}

func (s *stubService) ListTransactions(ctx context.Context, f repository.TransactionFilter) ([]model.Transaction, error) {
	return s.transactions, s.transactionsErr
}

func (s *stubService) UpdateTransaction(ctx context.Context, id string, upd model.TransactionUpdate) (*model.Transaction, error) {
	return s.transaction, s.transactionErr
}

func (s *stubService) DeleteTransaction(ctx context.Context, id string) (*model.Transaction, error) {
	return s.transaction, s.transactionErr
}

func newTestHandler(t *testing.T, svc Service) *Handler {
	t.Helper()

	logger, err := zap.NewDevelopment()
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	return NewHandler(svc, logger)
}

func doRequest(t *testing.T, h *Handler, method, target string, body []byte) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()

	h.SetupRouter().ServeHTTP(rec, req)

	return rec.Result()
}

func decodeMensaje(t *testing.T, res *http.Response) string {
	t.Helper()

	var m mensajeResponse
	if err := json.NewDecoder(res.Body).Decode(&m); err != nil {
		t.Fatalf("decode mensaje: %v", err)
	}
	return m.Mensaje
}

func TestCreateGood_Created(t *testing.T) {
	svc := &stubService{
		good: &model.Good{ID: "abc", Nombre: "Espada", Descripcion: "x", Valor: 100, Tipo: model.GoodTypeWeapon},
	}
	h := newTestHandler(t, svc)

	body := []byte(`{"nombre":"Espada","descripcion":"x","valor":100,"tipo":"arma"}`)
	res := doRequest(t, h, http.MethodPost, "/bienes", body)

	if res.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusCreated)
	}
	if ct := res.Header.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content-type = %q, want application/json", ct)
	}
}

func TestUpdateGood_RejectsID(t *testing.T) {
	h := newTestHandler(t, &stubService{})

	body := []byte(`{"_id":"ffffffffffffffffffffffff","valor":50}`)
	res := doRequest(t, h, http.MethodPatch, "/bienes/652f1a2b3c4d5e6f70818293", body)

	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusBadRequest)
	}
	if got := decodeMensaje(t, res); got != "No se puede modificar el ID." {
		t.Fatalf("mensaje = %q", got)
	}
}

func TestCreateGood_UnknownField(t *testing.T) {
	h := newTestHandler(t, &stubService{})

	body := []byte(`{"nombre":"Espada","brillo":true}`)
	res := doRequest(t, h, http.MethodPost, "/bienes", body)

	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusBadRequest)
	}
	if got := decodeMensaje(t, res); got != "Cuerpo de la petición no válido." {
		t.Fatalf("mensaje = %q", got)
	}
}

func TestListGoods_EmptyIsNotFound(t *testing.T) {
	h := newTestHandler(t, &stubService{goods: []model.Good{}})

	res := doRequest(t, h, http.MethodGet, "/bienes", nil)

	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusNotFound)
	}
	if got := decodeMensaje(t, res); got != "No se encontraron bienes." {
		t.Fatalf("mensaje = %q", got)
	}
}

func TestGetGood_NotFound(t *testing.T) {
	h := newTestHandler(t, &stubService{goodErr: repository.ErrNotFound})

	res := doRequest(t, h, http.MethodGet, "/bienes/652f1a2b3c4d5e6f70818293", nil)

	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusNotFound)
	}
	if got := decodeMensaje(t, res); got != "Bien no encontrado." {
		t.Fatalf("mensaje = %q", got)
	}
}

func TestUpdateGoodByName_RequiresNombre(t *testing.T) {
	h := newTestHandler(t, &stubService{})

	res := doRequest(t, h, http.MethodPatch, "/bienes", []byte(`{"valor":50}`))

	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusBadRequest)
	}
}

func TestGetClientMoney(t *testing.T) {
	svc := &stubService{
		client: &model.Client{ID: "c1", Nombre: "Geralt", Tipo: model.ClientTypeWitcher, Dinero: 321.5},
	}
	h := newTestHandler(t, svc)

	res := doRequest(t, h, http.MethodGet, "/clientes/c1/dinero", nil)

	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusOK)
	}

	var body struct {
		Dinero float64 `json:"dinero"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Dinero != 321.5 {
		t.Fatalf("dinero = %v, want 321.5", body.Dinero)
	}
}

func TestListClientsByType_RoutedBeforeID(t *testing.T) {
	svc := &stubService{
		clients: []model.Client{{ID: "c1", Nombre: "Geralt", Tipo: model.ClientTypeWitcher}},
	}
	h := newTestHandler(t, svc)

	res := doRequest(t, h, http.MethodGet, "/clientes/tipo/Brujo", nil)

	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusOK)
	}

	var clients []model.Client
	if err := json.NewDecoder(res.Body).Decode(&clients); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(clients) != 1 || clients[0].Nombre != "Geralt" {
		t.Fatalf("unexpected clients: %+v", clients)
	}
}

func TestGetMerchantMoney(t *testing.T) {
	svc := &stubService{
		merchant: &model.Merchant{ID: "m1", Nombre: "Hattori", Dinero: 900},
	}
	h := newTestHandler(t, svc)

	res := doRequest(t, h, http.MethodGet, "/mercaderes/m1/dinero", nil)

	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusOK)
	}

	var body merchantMoneyResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Dinero != 900 || body.Mensaje == "" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestDeleteMerchant_ReturnsDocument(t *testing.T) {
	svc := &stubService{
		merchant: &model.Merchant{ID: "m1", Nombre: "Hattori"},
	}
	h := newTestHandler(t, svc)

	res := doRequest(t, h, http.MethodDelete, "/mercaderes/m1", nil)

	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusOK)
	}

	var body merchantDeletedResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Mercader == nil || body.Mercader.ID != "m1" {
		t.Fatalf("deleted merchant missing from body: %+v", body)
	}
}

func TestCreateTransaction_Created(t *testing.T) {
	svc := &stubService{
		settled: &model.Transaction{ID: "t1", ClienteID: "c1", MercaderID: "m1", Total: 200},
	}
	h := newTestHandler(t, svc)

	body := []byte(`{"clienteId":"c1","mercaderId":"m1","bienes":[{"bienId":"g1","cantidad":2}]}`)
	res := doRequest(t, h, http.MethodPost, "/transacciones", body)

	if res.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusCreated)
	}

	var tr model.Transaction
	if err := json.NewDecoder(res.Body).Decode(&tr); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if tr.Total != 200 {
		t.Fatalf("total = %v, want 200", tr.Total)
	}
}

func TestCreateTransaction_MerchantNotFound(t *testing.T) {
	h := newTestHandler(t, &stubService{settledErr: trade.ErrMerchantNotFound})

	body := []byte(`{"clienteId":"c1","mercaderId":"m1","bienes":[{"bienId":"g1","cantidad":2}]}`)
	res := doRequest(t, h, http.MethodPost, "/transacciones", body)

	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusNotFound)
	}
	if got := decodeMensaje(t, res); !strings.Contains(got, "mercader") {
		t.Fatalf("mensaje = %q, want merchant not found text", got)
	}
}

func TestCreateTransaction_InsufficientFunds(t *testing.T) {
	h := newTestHandler(t, &stubService{settledErr: trade.ErrInsufficientFunds})

	body := []byte(`{"clienteId":"c1","mercaderId":"m1","bienes":[{"bienId":"g1","cantidad":2}]}`)
	res := doRequest(t, h, http.MethodPost, "/transacciones", body)

	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusBadRequest)
	}
	if got := decodeMensaje(t, res); !strings.Contains(got, "dinero") {
		t.Fatalf("mensaje = %q, want insufficient funds text", got)
	}
}

func TestListTransactions_EmptyIsOK(t *testing.T) {
	h := newTestHandler(t, &stubService{transactions: nil})

	res := doRequest(t, h, http.MethodGet, "/transacciones", nil)

	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusOK)
	}

	var list []model.Transaction
	if err := json.NewDecoder(res.Body).Decode(&list); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Fatalf("expected empty array, got %v", list)
	}
}

func TestListTransactions_BadDate(t *testing.T) {
	h := newTestHandler(t, &stubService{})

	res := doRequest(t, h, http.MethodGet, "/transacciones?fechaInicio=ayer", nil)

	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusBadRequest)
	}
}

func TestGetTransactionTotal(t *testing.T) {
	svc := &stubService{
		totals: &service.TransactionTotals{Total: 200, TotalActual: 300},
	}
	h := newTestHandler(t, svc)

	res := doRequest(t, h, http.MethodGet, "/transacciones/t1/total", nil)

	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusOK)
	}

	var body transactionTotalResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Total != 200 || body.TotalActual != 300 {
		t.Fatalf("totals = %v/%v, want 200/300", body.Total, body.TotalActual)
	}
}

func TestUpdateTransaction_RejectsTotal(t *testing.T) {
	h := newTestHandler(t, &stubService{})

	res := doRequest(t, h, http.MethodPatch, "/transacciones/t1", []byte(`{"total":999}`))

	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusBadRequest)
	}
}

func TestValidationErrorIsBadRequest(t *testing.T) {
	h := newTestHandler(t, &stubService{goodErr: service.ErrValidation})

	body := []byte(`{"nombre":"","descripcion":"x","valor":1,"tipo":"arma"}`)
	res := doRequest(t, h, http.MethodPost, "/bienes", body)

	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusBadRequest)
	}
}

func TestInternalErrorIsMasked(t *testing.T) {
	h := newTestHandler(t, &stubService{goodErr: context.DeadlineExceeded})

	res := doRequest(t, h, http.MethodGet, "/bienes/abc", nil)

	if res.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusInternalServerError)
	}
	if got := decodeMensaje(t, res); got != "Error interno del servidor" {
		t.Fatalf("mensaje = %q", got)
	}
}
