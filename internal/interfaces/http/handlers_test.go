package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tekeliveli/stoktakip/internal/application/dto"
	"github.com/tekeliveli/stoktakip/internal/application/inventory"
	"github.com/tekeliveli/stoktakip/internal/application/usecase"
	"github.com/tekeliveli/stoktakip/internal/infrastructure/sqlite"
	apphttp "github.com/tekeliveli/stoktakip/internal/interfaces/http"
	"github.com/tekeliveli/stoktakip/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fakePDF struct{}

func (fakePDF) GenerateStockReportPDF(context.Context, time.Time, time.Time, []dto.ReportLineResponse, []dto.StockLevelResponse) ([]byte, error) {
	return []byte("%PDF-1.3 fake"), nil
}

// buildTestApp arma la app completa sobre un SQLite en memoria.
func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()
	return buildTestAppWithLogger(t, logger.Nop())
}

func buildTestAppWithLogger(t *testing.T, log *logger.Logger) *fiber.App {
	t.Helper()
	store, err := sqlite.Open(context.Background(), sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	txRunner := sqlite.NewTxRunner(store)
	materialRepo := sqlite.NewMaterialRepository(store.DB())
	movRepo := sqlite.NewStockMovementRepository(store.DB())
	withdrawalRepo := sqlite.NewWithdrawalRepository(store.DB())
	queryRepo := sqlite.NewStockQueryRepository(store.DB())

	ledger := inventory.NewLedgerUseCase(txRunner, materialRepo, movRepo, queryRepo, nil)
	query := inventory.NewStockQueryUseCase(materialRepo, queryRepo, nil)

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(log)})
	app.Use(apphttp.RequestLogger(log))
	apphttp.Router(app, apphttp.RouterDeps{
		MaterialUC:  usecase.NewMaterialUseCase(materialRepo, txRunner, nil),
		Ledger:      ledger,
		Withdrawal:  inventory.NewWithdrawalUseCase(txRunner, materialRepo, withdrawalRepo, nil),
		StockQuery:  query,
		ReportPDF:   inventory.NewReportPDFUseCase(ledger, query, fakePDF{}),
		Log:         log,
		ServiceName: "stoktakip-test",
		HealthCheck: store.Ping,
	})
	return app
}

func do(t *testing.T, app *fiber.App, method, path string, body any) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			r = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			r = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func createBolt(t *testing.T, app *fiber.App) dto.MaterialResponse {
	t.Helper()
	status, raw := do(t, app, http.MethodPost, "/materials", map[string]any{
		"name": "Bolt", "description": "M8 galvanizado", "initial_stock": 100, "unit": "pcs",
	})
	require.Equal(t, http.StatusCreated, status, string(raw))
	return decode[dto.MaterialResponse](t, raw)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	app := buildTestApp(t)
	status, raw := do(t, app, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok","service":"stoktakip-test"}`, string(raw))
}

func TestOpenAPIDocument(t *testing.T) {
	app := buildTestApp(t)
	status, raw := do(t, app, http.MethodGet, "/openapi.json", nil)
	require.Equal(t, http.StatusOK, status)
	doc := decode[map[string]any](t, raw)
	assert.Equal(t, "2.0", doc["swagger"])
	assert.Contains(t, doc["paths"], "/stock/withdraw")
}

// Escenario completo: 100 + 50 − 20 = 130; salida de 200 rechazada; salida de 30 → 100.
func TestBoltScenario(t *testing.T) {
	app := buildTestApp(t)
	bolt := createBolt(t, app)

	status, raw := do(t, app, http.MethodPost, "/stock", map[string]any{
		"material_id": bolt.ID, "date": "2024-01-05", "produced": 50, "sold": 20,
	})
	require.Equal(t, http.StatusCreated, status, string(raw))
	mov := decode[dto.StockMovementResponse](t, raw)
	assert.Equal(t, "2024-01-05", mov.Date)

	status, raw = do(t, app, http.MethodGet, fmt.Sprintf("/stock/%d", bolt.ID), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(130), decode[dto.MaterialStockResponse](t, raw).CurrentStock)

	status, raw = do(t, app, http.MethodPost, "/stock/withdraw", map[string]any{"material_id": bolt.ID, "quantity": 200})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", decode[dto.ErrorResponse](t, raw).Code)

	status, raw = do(t, app, http.MethodGet, fmt.Sprintf("/stock/%d", bolt.ID), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(130), decode[dto.MaterialStockResponse](t, raw).CurrentStock)

	status, raw = do(t, app, http.MethodPost, "/stock/withdraw", map[string]any{"material_id": bolt.ID, "quantity": 30})
	require.Equal(t, http.StatusOK, status, string(raw))
	res := decode[dto.WithdrawResultResponse](t, raw)
	assert.Equal(t, int64(100), res.CurrentStock)
	assert.Equal(t, int64(30), res.Quantity)
	assert.NotEmpty(t, res.Message)

	status, raw = do(t, app, http.MethodGet, "/stock/all", nil)
	require.Equal(t, http.StatusOK, status)
	all := decode[[]dto.StockLevelResponse](t, raw)
	require.Len(t, all, 1)
	assert.Equal(t, "Bolt", all[0].Name)
	assert.Equal(t, int64(100), all[0].CurrentStock)
	assert.Equal(t, "pcs", all[0].Unit)

	status, raw = do(t, app, http.MethodGet, fmt.Sprintf("/stock/%d/withdrawals", bolt.ID), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]dto.WithdrawalResponse](t, raw), 1)

	status, raw = do(t, app, http.MethodGet, fmt.Sprintf("/stock/%d/movements", bolt.ID), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]dto.StockMovementResponse](t, raw), 1)
}

func TestMaterials_ValidacionYConsulta(t *testing.T) {
	app := buildTestApp(t)

	status, raw := do(t, app, http.MethodPost, "/materials", map[string]any{"name": "Nut", "unit": "pcs"})
	assert.Equal(t, http.StatusBadRequest, status, "initial_stock es obligatorio")
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, raw).Code)

	status, raw = do(t, app, http.MethodPost, "/materials", map[string]any{"name": "Nut", "unit": "pcs", "initial_stock": -1})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, raw).Code)

	status, raw = do(t, app, http.MethodPost, "/materials", `{"name": `)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_BODY", decode[dto.ErrorResponse](t, raw).Code)

	bolt := createBolt(t, app)
	status, raw = do(t, app, http.MethodGet, fmt.Sprintf("/materials/%d", bolt.ID), nil)
	require.Equal(t, http.StatusOK, status)
	got := decode[dto.MaterialResponse](t, raw)
	assert.Equal(t, bolt.Name, got.Name)
	assert.Equal(t, bolt.Description, got.Description)
	assert.Equal(t, bolt.InitialStock, got.InitialStock)
	assert.Equal(t, bolt.Unit, got.Unit)

	status, raw = do(t, app, http.MethodGet, "/materials", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]dto.MaterialResponse](t, raw), 1)

	status, raw = do(t, app, http.MethodGet, "/materials/999", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, raw).Code)

	status, raw = do(t, app, http.MethodPut, fmt.Sprintf("/materials/%d", bolt.ID), map[string]any{"unit": "box"})
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.Equal(t, "box", decode[dto.MaterialResponse](t, raw).Unit)
}

func TestStock_Errores(t *testing.T) {
	app := buildTestApp(t)
	bolt := createBolt(t, app)

	status, _ := do(t, app, http.MethodGet, "/stock/999", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = do(t, app, http.MethodPost, "/stock", map[string]any{
		"material_id": 999, "date": "2024-01-05", "produced": 1, "sold": 0,
	})
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = do(t, app, http.MethodPost, "/stock", map[string]any{
		"material_id": bolt.ID, "date": "05/01/2024", "produced": 1, "sold": 0,
	})
	assert.Equal(t, http.StatusBadRequest, status, "fecha fuera de formato")

	status, _ = do(t, app, http.MethodPost, "/stock", map[string]any{
		"material_id": bolt.ID, "date": "2024-01-05", "produced": 0, "sold": 101,
	})
	assert.Equal(t, http.StatusBadRequest, status, "la venta dejaría el stock en negativo")

	status, _ = do(t, app, http.MethodPost, "/stock/withdraw", map[string]any{"material_id": bolt.ID, "quantity": 0})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = do(t, app, http.MethodPost, "/stock/withdraw", map[string]any{"material_id": 999, "quantity": 1})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestReport(t *testing.T) {
	app := buildTestApp(t)
	bolt := createBolt(t, app)
	for _, m := range []map[string]any{
		{"material_id": bolt.ID, "date": "2024-01-01", "produced": 10, "sold": 2},
		{"material_id": bolt.ID, "date": "2024-01-31", "produced": 5, "sold": 1},
		{"material_id": bolt.ID, "date": "2024-02-01", "produced": 99, "sold": 0},
	} {
		status, raw := do(t, app, http.MethodPost, "/stock", m)
		require.Equal(t, http.StatusCreated, status, string(raw))
	}

	status, raw := do(t, app, http.MethodGet, "/report?start_date=2024-01-01&end_date=2024-01-31", nil)
	require.Equal(t, http.StatusOK, status, string(raw))
	lines := decode[[]dto.ReportLineResponse](t, raw)
	require.Len(t, lines, 1)
	assert.Equal(t, int64(15), lines[0].TotalProduced)
	assert.Equal(t, int64(3), lines[0].TotalSold)
	assert.Equal(t, "pcs", lines[0].Unit)

	status, raw = do(t, app, http.MethodGet, "/report?start_date=2023-01-01&end_date=2023-12-31", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(raw))

	status, _ = do(t, app, http.MethodGet, "/report?start_date=2024-02-01&end_date=2024-01-01", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = do(t, app, http.MethodGet, "/report?start_date=2024-01-01", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestReportPDF(t *testing.T) {
	app := buildTestApp(t)
	createBolt(t, app)

	req := httptest.NewRequest(http.MethodGet, "/report/pdf?start_date=2024-01-01&end_date=2024-01-31", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "reporte_stock_2024-01-01_2024-01-31.pdf")
	body, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestRequestID(t *testing.T) {
	app := buildTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(apphttp.HeaderRequestID, "abc-123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", resp.Header.Get(apphttp.HeaderRequestID))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Len(t, resp.Header.Get(apphttp.HeaderRequestID), 36, "uuid generado")
}

func TestRutaInexistente(t *testing.T) {
	app := buildTestApp(t)
	status, raw := do(t, app, http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, raw).Code)
}

// Un error de la cadena se renderiza una sola vez y el access log registra el status final.
func TestRequestLogger_RegistraStatusDeError(t *testing.T) {
	var buf bytes.Buffer
	app := buildTestAppWithLogger(t, logger.New(logger.Config{Env: "production", Level: "info", Out: &buf}))

	req := httptest.NewRequest(http.MethodGet, "/stock/999", nil)
	req.Header.Set(apphttp.HeaderRequestID, "rid-404")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, raw).Code)

	var access map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(line, &entry))
		if entry["message"] == "http" {
			access = entry
		}
	}
	require.NotNil(t, access, "falta la línea del access log")
	assert.Equal(t, float64(http.StatusNotFound), access["status"])
	assert.Equal(t, "rid-404", access["request_id"])
	assert.Equal(t, "warn", access["level"])
	assert.Equal(t, "/stock/999", access["path"])
}
