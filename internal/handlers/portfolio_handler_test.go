package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "stockfolio/internal/errors"
	"stockfolio/internal/models"
	"stockfolio/internal/services"
	"stockfolio/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

// --- mock services ---

type mockPortfolioService struct {
	listPositionsFn func(ctx context.Context) ([]models.Position, error)
	refreshFn       func(ctx context.Context) (*services.RefreshReport, error)
	snapshotFn      func(ctx context.Context) ([]models.Position, error)
}

var _ services.PortfolioServicer = (*mockPortfolioService)(nil)

func (m *mockPortfolioService) ListPositions(ctx context.Context) ([]models.Position, error) {
	if m.listPositionsFn != nil {
		return m.listPositionsFn(ctx)
	}
	return []models.Position{}, nil
}

func (m *mockPortfolioService) Refresh(ctx context.Context) (*services.RefreshReport, error) {
	if m.refreshFn != nil {
		return m.refreshFn(ctx)
	}
	return &services.RefreshReport{}, nil
}

func (m *mockPortfolioService) Snapshot(ctx context.Context) ([]models.Position, error) {
	if m.snapshotFn != nil {
		return m.snapshotFn(ctx)
	}
	return []models.Position{}, nil
}

type mockLifecycleService struct {
	applyFn func(ctx context.Context, cmd services.Command) (*services.LifecycleResult, error)
	got     services.Command
}

var _ services.LifecycleServicer = (*mockLifecycleService)(nil)

func (m *mockLifecycleService) Apply(ctx context.Context, cmd services.Command) (*services.LifecycleResult, error) {
	m.got = cmd
	if m.applyFn != nil {
		return m.applyFn(ctx, cmd)
	}
	return &services.LifecycleResult{Operation: cmd.Operation(), Symbol: cmd.Target(), Message: "ok"}, nil
}

// --- helpers ---

func setupPortfolioRouter(handler *PortfolioHandler) *gin.Engine {
	r := gin.New()
	r.GET("/api/home", handler.GetHome)
	r.GET("/api/positions", handler.GetPositions)
	r.POST("/api/positions", handler.PostPosition)
	return r
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	if result["status"] != "error" {
		t.Errorf("expected status error, got %v", result["status"])
	}
	if result["code"] != code {
		t.Errorf("expected error code %q, got %q", code, result["code"])
	}
}

// --- tests ---

func TestPortfolioHandler_GetHome(t *testing.T) {
	t.Run("returns_200_with_positions", func(t *testing.T) {
		svc := &mockPortfolioService{
			snapshotFn: func(_ context.Context) ([]models.Position, error) {
				return []models.Position{
					{Symbol: "AAPL", Quantity: decimal.NewFromInt(10), Value: decimal.RequireFromString("1500.00")},
					{Symbol: "CASH", Quantity: decimal.NewFromInt(500), Value: decimal.NewFromInt(500)},
				}, nil
			},
		}
		r := setupPortfolioRouter(NewPortfolioHandler(svc, &mockLifecycleService{}))

		rec := doRequest(r, "GET", "/api/home", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["status"] != "success" {
			t.Errorf("expected status success, got %v", result["status"])
		}
		data := result["data"].([]interface{})
		if len(data) != 2 {
			t.Fatalf("expected 2 positions, got %d", len(data))
		}
		first := data[0].(map[string]interface{})
		if first["value"].(float64) != 1500 {
			t.Errorf("expected value as JSON number 1500, got %v", first["value"])
		}
		if first["current_price"] != nil {
			t.Errorf("expected null current_price, got %v", first["current_price"])
		}
	})

	t.Run("returns_500_on_store_error", func(t *testing.T) {
		svc := &mockPortfolioService{
			snapshotFn: func(_ context.Context) ([]models.Position, error) {
				return nil, apperrors.Wrap(apperrors.ErrInternalServer, errors.New("connection refused"))
			},
		}
		r := setupPortfolioRouter(NewPortfolioHandler(svc, &mockLifecycleService{}))

		rec := doRequest(r, "GET", "/api/home", "")

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		assertErrorCode(t, result, "INTERNAL_ERROR")
		if strings.Contains(rec.Body.String(), "connection refused") {
			t.Error("internal error detail leaked to the response")
		}
	})

	t.Run("returns_500_on_plain_error", func(t *testing.T) {
		svc := &mockPortfolioService{
			snapshotFn: func(_ context.Context) ([]models.Position, error) {
				return nil, errors.New("boom")
			},
		}
		r := setupPortfolioRouter(NewPortfolioHandler(svc, &mockLifecycleService{}))

		rec := doRequest(r, "GET", "/api/home", "")

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INTERNAL_ERROR")
	})
}

func TestPortfolioHandler_GetPositions(t *testing.T) {
	called := false
	svc := &mockPortfolioService{
		listPositionsFn: func(_ context.Context) ([]models.Position, error) {
			called = true
			return []models.Position{{Symbol: "MSFT"}}, nil
		},
		snapshotFn: func(_ context.Context) ([]models.Position, error) {
			t.Error("GetPositions must not refresh")
			return nil, nil
		},
	}
	r := setupPortfolioRouter(NewPortfolioHandler(svc, &mockLifecycleService{}))

	rec := doRequest(r, "GET", "/api/positions", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !called {
		t.Error("expected ListPositions to be called")
	}
}

func TestPortfolioHandler_PostPosition(t *testing.T) {
	t.Run("dispatches_each_operation", func(t *testing.T) {
		tests := []struct {
			name string
			body string
			want services.Command
		}{
			{
				"entry",
				`{"selectedOption":"Entry","symbol":"aapl","price":150.25,"quantity":"10"}`,
				services.EntryCommand{Symbol: "AAPL", Price: decimal.RequireFromString("150.25"), Quantity: decimal.NewFromInt(10)},
			},
			{
				"exit",
				`{"selectedOption":"Exit","symbol":"TSLA","price":"250"}`,
				services.ExitCommand{Symbol: "TSLA", Price: decimal.NewFromInt(250)},
			},
			{
				"add",
				`{"selectedOption":"Add","symbol":"AAPL","price":150,"quantity":10}`,
				services.AddCommand{Symbol: "AAPL", Price: decimal.NewFromInt(150), Quantity: decimal.NewFromInt(10)},
			},
			{
				"trim",
				`{"selectedOption":"Trim","symbol":"AAPL","price":0,"quantity":5}`,
				services.TrimCommand{Symbol: "AAPL", Price: decimal.Zero, Quantity: decimal.NewFromInt(5)},
			},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				lifecycle := &mockLifecycleService{}
				r := setupPortfolioRouter(NewPortfolioHandler(&mockPortfolioService{}, lifecycle))

				rec := doRequest(r, "POST", "/api/positions", tt.body)

				if rec.Code != http.StatusOK {
					t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
				}
				if parseJSON(t, rec)["status"] != "success" {
					t.Errorf("expected status success, body %s", rec.Body.String())
				}
				assertSameCommand(t, tt.want, lifecycle.got)
			})
		}
	})

	t.Run("skipped_trim_is_success", func(t *testing.T) {
		lifecycle := &mockLifecycleService{
			applyFn: func(_ context.Context, cmd services.Command) (*services.LifecycleResult, error) {
				return &services.LifecycleResult{Operation: cmd.Operation(), Symbol: cmd.Target(), Skipped: true, Message: "exceeds"}, nil
			},
		}
		r := setupPortfolioRouter(NewPortfolioHandler(&mockPortfolioService{}, lifecycle))

		rec := doRequest(r, "POST", "/api/positions", `{"selectedOption":"Trim","symbol":"AAPL","price":1,"quantity":25}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["skipped"] != true {
			t.Errorf("expected skipped=true, got %v", result["skipped"])
		}
	})

	t.Run("returns_400_for_bad_payloads", func(t *testing.T) {
		bodies := map[string]string{
			"unknown_operation": `{"selectedOption":"Buy","symbol":"AAPL","price":1,"quantity":1}`,
			"missing_symbol":    `{"selectedOption":"Entry","price":1,"quantity":1}`,
			"bad_symbol":        `{"selectedOption":"Entry","symbol":"AA PL","price":1,"quantity":1}`,
			"padded_symbol":     `{"selectedOption":"Entry","symbol":" AAPL","price":1,"quantity":1}`,
			"entry_no_quantity": `{"selectedOption":"Entry","symbol":"AAPL","price":1}`,
			"exit_no_price":     `{"selectedOption":"Exit","symbol":"AAPL"}`,
			"add_zero_price":    `{"selectedOption":"Add","symbol":"AAPL","price":0,"quantity":1}`,
			"trim_negative_qty": `{"selectedOption":"Trim","symbol":"AAPL","price":1,"quantity":-1}`,
			"malformed_json":    `{"selectedOption":`,
			"non_numeric_price": `{"selectedOption":"Exit","symbol":"AAPL","price":"abc"}`,
		}
		for name, body := range bodies {
			t.Run(name, func(t *testing.T) {
				lifecycle := &mockLifecycleService{}
				r := setupPortfolioRouter(NewPortfolioHandler(&mockPortfolioService{}, lifecycle))

				rec := doRequest(r, "POST", "/api/positions", body)

				if rec.Code != http.StatusBadRequest {
					t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
				}
				assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
				if lifecycle.got != nil {
					t.Error("expected no dispatch for invalid payload")
				}
			})
		}
	})

	t.Run("attaches_error_to_context", func(t *testing.T) {
		lifecycle := &mockLifecycleService{
			applyFn: func(ctx context.Context, cmd services.Command) (*services.LifecycleResult, error) {
				return nil, apperrors.WithMessage(apperrors.ErrSymbolNotFound, "Symbol NFLX not found in the portfolio")
			},
		}
		var attached []string
		r := gin.New()
		r.Use(func(c *gin.Context) {
			c.Next()
			for _, e := range c.Errors {
				attached = append(attached, e.Error())
			}
		})
		r.POST("/api/positions", NewPortfolioHandler(&mockPortfolioService{}, lifecycle).PostPosition)

		rec := doRequest(r, "POST", "/api/positions", `{"selectedOption":"Exit","symbol":"NFLX","price":1}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if len(attached) != 1 || attached[0] != "Symbol NFLX not found in the portfolio" {
			t.Errorf("expected the error on the context, got %v", attached)
		}
	})

	t.Run("returns_400_for_domain_errors", func(t *testing.T) {
		cases := map[string]*apperrors.AppError{
			"DUPLICATE_SYMBOL": apperrors.ErrDuplicateSymbol,
			"SYMBOL_NOT_FOUND": apperrors.ErrSymbolNotFound,
		}
		for code, sentinel := range cases {
			t.Run(code, func(t *testing.T) {
				lifecycle := &mockLifecycleService{
					applyFn: func(_ context.Context, _ services.Command) (*services.LifecycleResult, error) {
						return nil, apperrors.WithMessage(sentinel, "Symbol AAPL problem")
					},
				}
				r := setupPortfolioRouter(NewPortfolioHandler(&mockPortfolioService{}, lifecycle))

				rec := doRequest(r, "POST", "/api/positions", `{"selectedOption":"Add","symbol":"AAPL","price":1,"quantity":1}`)

				if rec.Code != http.StatusBadRequest {
					t.Fatalf("expected 400, got %d", rec.Code)
				}
				result := parseJSON(t, rec)
				assertErrorCode(t, result, code)
				if result["message"] != "Symbol AAPL problem" {
					t.Errorf("expected message to be passed through, got %v", result["message"])
				}
			})
		}
	})

	t.Run("returns_500_for_store_error", func(t *testing.T) {
		lifecycle := &mockLifecycleService{
			applyFn: func(_ context.Context, _ services.Command) (*services.LifecycleResult, error) {
				return nil, apperrors.Wrap(apperrors.ErrInternalServer, errors.New("disk full"))
			},
		}
		r := setupPortfolioRouter(NewPortfolioHandler(&mockPortfolioService{}, lifecycle))

		rec := doRequest(r, "POST", "/api/positions", `{"selectedOption":"Exit","symbol":"AAPL","price":1}`)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INTERNAL_ERROR")
	})
}

// assertSameCommand compares commands field by field, treating decimals numerically.
func assertSameCommand(t *testing.T, want, got services.Command) {
	t.Helper()
	if got == nil {
		t.Fatal("expected a dispatched command")
	}
	if want.Operation() != got.Operation() || want.Target() != got.Target() {
		t.Fatalf("expected %s %s, got %s %s", want.Operation(), want.Target(), got.Operation(), got.Target())
	}
	eq := func(field string, a, b decimal.Decimal) {
		if !a.Equal(b) {
			t.Errorf("expected %s %s, got %s", field, a, b)
		}
	}
	switch w := want.(type) {
	case services.EntryCommand:
		g := got.(services.EntryCommand)
		eq("price", w.Price, g.Price)
		eq("quantity", w.Quantity, g.Quantity)
	case services.ExitCommand:
		eq("price", w.Price, got.(services.ExitCommand).Price)
	case services.AddCommand:
		g := got.(services.AddCommand)
		eq("price", w.Price, g.Price)
		eq("quantity", w.Quantity, g.Quantity)
	case services.TrimCommand:
		g := got.(services.TrimCommand)
		eq("price", w.Price, g.Price)
		eq("quantity", w.Quantity, g.Quantity)
	}
}
