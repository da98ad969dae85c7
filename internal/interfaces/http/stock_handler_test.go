package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invorya/stock-ledger/internal/application/auth"
	"github.com/invorya/stock-ledger/internal/application/catalog"
	"github.com/invorya/stock-ledger/internal/application/ledger"
	"github.com/invorya/stock-ledger/internal/domain/entity"
	"github.com/invorya/stock-ledger/internal/infrastructure/memory"
	apphttp "github.com/invorya/stock-ledger/internal/interfaces/http"
)

// apiFixture aplicación completa sobre el backend en memoria.
type apiFixture struct {
	app   *fiber.App
	store *memory.Store
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	store := memory.NewStore()
	ledgerUC := ledger.NewLedgerUseCase(
		memory.NewTxRunner(store),
		memory.NewProductRepository(store),
		memory.NewStockMovementRepository(store),
		memory.NewStockBalanceRepository(store),
		memory.NewStockAlertRepository(store),
		nil,
	)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		CompanyUC: catalog.NewCompanyUseCase(memory.NewCompanyRepository(store)),
		ProductUC: catalog.NewProductUseCase(memory.NewProductRepository(store)),
		LedgerUC:  ledgerUC,
		AuthUC: auth.NewAuthUseCase(memory.NewUserRepository(store), memory.NewCompanyRepository(store), auth.JWTConfig{
			Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
		}),
		JWTSecret: testJWTSecret,
	})
	return &apiFixture{app: app, store: store}
}

// seedProduct inserta un producto que maneja stock en la empresa del token.
func (f *apiFixture) seedProduct(t *testing.T, minStock, maxStock int64) *entity.Product {
	t.Helper()
	now := time.Now()
	p := &entity.Product{
		ID: uuid.New().String(), CompanyID: testCompanyID,
		SKU: "SKU-" + uuid.New().String()[:8], Name: "Producto HTTP",
		TracksStock: true, MinStock: minStock, MaxStock: maxStock,
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, memory.NewProductRepository(f.store).Create(p))
	return p
}

// do lanza una petición JSON autenticada con el rol dado.
func (f *apiFixture) do(t *testing.T, method, path, role string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, role))
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /api/stock/movements
// ──────────────────────────────────────────────────────────────────────────────

func TestStockHandler_RegistrarMovimiento_Retorna201(t *testing.T) {
	f := newAPIFixture(t)
	p := f.seedProduct(t, 5, 100)

	resp := f.do(t, http.MethodPost, "/api/stock/movements", "bodeguero", map[string]any{
		"product_id": p.ID,
		"type":       "RECEIPT",
		"reason":     "PURCHASE",
		"quantity":   40,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, p.ID, body["product_id"])
	assert.Equal(t, float64(40), body["balance"], "la respuesta incluye el balance resultante")
	assert.NotEmpty(t, body["movement_id"])
}

func TestStockHandler_SalidaSinStock_Retorna409ConDetalle(t *testing.T) {
	f := newAPIFixture(t)
	p := f.seedProduct(t, 0, 100)

	resp := f.do(t, http.MethodPost, "/api/stock/movements", "vendedor", map[string]any{
		"product_id": p.ID, "type": "RECEIPT", "quantity": 5,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodPost, "/api/stock/movements", "vendedor", map[string]any{
		"product_id": p.ID, "type": "ISSUE", "reason": "SALE", "quantity": 9,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])
	assert.Equal(t, float64(5), body["available"], "el error debe informar la cantidad disponible")
	assert.Equal(t, float64(9), body["requested"], "el error debe informar la cantidad pedida")
}

func TestStockHandler_ProductoNoTrackeado_Retorna422(t *testing.T) {
	f := newAPIFixture(t)
	now := time.Now()
	p := &entity.Product{
		ID: uuid.New().String(), CompanyID: testCompanyID,
		SKU: "SRV-HTTP", Name: "Servicio", TracksStock: false,
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, memory.NewProductRepository(f.store).Create(p))

	resp := f.do(t, http.MethodPost, "/api/stock/movements", "bodeguero", map[string]any{
		"product_id": p.ID, "type": "RECEIPT", "quantity": 1,
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// DELETE /api/stock/movements/:id (solo admin)
// ──────────────────────────────────────────────────────────────────────────────

func TestStockHandler_CorregirMovimiento_SoloAdmin(t *testing.T) {
	f := newAPIFixture(t)
	p := f.seedProduct(t, 0, 100)

	resp := f.do(t, http.MethodPost, "/api/stock/movements", "admin", map[string]any{
		"product_id": p.ID, "type": "RECEIPT", "quantity": 7,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	movementID, _ := decodeBody(t, resp)["movement_id"].(string)
	require.NotEmpty(t, movementID)

	// bodeguero no puede corregir
	resp = f.do(t, http.MethodDelete, "/api/stock/movements/"+movementID, "bodeguero", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// admin sí
	resp = f.do(t, http.MethodDelete, "/api/stock/movements/"+movementID, "admin", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// el balance vuelve a cero
	resp = f.do(t, http.MethodGet, "/api/stock/products/"+p.ID, "admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, float64(0), body["quantity"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Alertas vía HTTP
// ──────────────────────────────────────────────────────────────────────────────

func TestStockHandler_AlertasActivas_YResolucion(t *testing.T) {
	f := newAPIFixture(t)
	p := f.seedProduct(t, 10, 100)

	resp := f.do(t, http.MethodPost, "/api/stock/movements", "bodeguero", map[string]any{
		"product_id": p.ID, "type": "RECEIPT", "quantity": 8,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	transition, ok := body["alert_transition"].(map[string]any)
	require.True(t, ok, "la respuesta debe incluir la transición de alerta")
	assert.Equal(t, "LOW_STOCK", transition["to"])

	resp = f.do(t, http.MethodGet, "/api/stock/alerts?active=true", "vendedor", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decodeBody(t, resp)
	items, _ := list["items"].([]any)
	require.Len(t, items, 1)
	alert := items[0].(map[string]any)
	alertID, _ := alert["id"].(string)
	require.NotEmpty(t, alertID)

	// vendedor no puede resolver
	resp = f.do(t, http.MethodPost, "/api/stock/alerts/"+alertID+"/resolve", "vendedor", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// bodeguero sí; la segunda vez es conflicto
	resp = f.do(t, http.MethodPost, "/api/stock/alerts/"+alertID+"/resolve", "bodeguero", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodPost, "/api/stock/alerts/"+alertID+"/resolve", "bodeguero", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo protegido por rol
// ──────────────────────────────────────────────────────────────────────────────

func TestProductHandler_CrearProducto_VendedorBloqueado(t *testing.T) {
	f := newAPIFixture(t)

	payload := map[string]any{
		"sku": "NEW-1", "name": "Nuevo", "tracks_stock": true,
		"min_stock": 1, "max_stock": 10,
	}
	resp := f.do(t, http.MethodPost, "/api/products", "vendedor", payload)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodPost, "/api/products", "admin", payload)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// umbrales inválidos
	resp = f.do(t, http.MethodPost, "/api/products", "admin", map[string]any{
		"sku": "NEW-2", "name": "Mal", "tracks_stock": true,
		"min_stock": 10, "max_stock": 5,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
