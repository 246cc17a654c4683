package bootstrap_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sangkips/optica-api/internal/bootstrap"
	"github.com/sangkips/optica-api/internal/config"
	"github.com/sangkips/optica-api/internal/infrastructure/database"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type apiEnv struct {
	t      *testing.T
	router http.Handler
}

func newAPI(t *testing.T) *apiEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:api_"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(database.Models()...))

	cfg := &config.Config{
		App:       config.AppConfig{Name: "optica-test", Env: "test", Timezone: "UTC"},
		Database:  config.DatabaseConfig{Driver: "sqlite"},
		JWT:       config.JWTConfig{Secret: "test-secret", ExpiryHours: time.Hour, RefreshExpiryHours: 24 * time.Hour},
		RateLimit: config.RateLimitConfig{Requests: 1000, Duration: 1},
		POS:       config.POSConfig{ConfirmWindow: 3 * time.Second, SearchLimit: 5, IdempotencyTTL: time.Hour},
		Debt: config.DebtConfig{
			TermDays:     30,
			PenaltyRate:  decimal.RequireFromString("0.02"),
			MonthlyRate:  decimal.RequireFromString("0.01"),
			Installments: 3,
		},
		Advisor: config.AdvisorConfig{Provider: "mock"},
		Printer: config.PrinterConfig{Type: "none", PaperMM: 80},
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	app := bootstrap.New(ctx, cfg, db)
	t.Cleanup(func() { _ = app.Close() })

	return &apiEnv{t: t, router: app.Router(ctx.Done())}
}

type apiResult struct {
	Code    int
	Header  http.Header
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

func (e *apiEnv) do(method, path, token string, body any, headers ...string) *apiResult {
	e.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(e.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	res := &apiResult{Code: rec.Code, Header: rec.Header()}
	if rec.Body.Len() > 0 {
		require.NoError(e.t, json.Unmarshal(rec.Body.Bytes(), res), rec.Body.String())
	}
	return res
}

func (r *apiResult) into(t *testing.T, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Data, v), string(r.Data))
}

type session struct {
	Token   string
	StoreID uuid.UUID
}

func (e *apiEnv) register(store, userEmail string) session {
	e.t.Helper()
	res := e.do(http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"store_name":       store,
		"name":             "Dona Regina",
		"email":            userEmail,
		"password":         "segredo123",
		"password_confirm": "segredo123",
	})
	require.Equal(e.t, http.StatusCreated, res.Code, res.Message)

	var out struct {
		AccessToken string `json:"access_token"`
		Store       struct {
			ID uuid.UUID `json:"id"`
		} `json:"store"`
	}
	res.into(e.t, &out)
	require.NotEmpty(e.t, out.AccessToken)
	return session{Token: out.AccessToken, StoreID: out.Store.ID}
}

func (e *apiEnv) create(path, token string, body any) uuid.UUID {
	e.t.Helper()
	res := e.do(http.MethodPost, path, token, body)
	require.Equal(e.t, http.StatusCreated, res.Code, res.Message)
	var out struct {
		ID uuid.UUID `json:"id"`
	}
	res.into(e.t, &out)
	return out.ID
}

func TestRegisterAndMe(t *testing.T) {
	api := newAPI(t)

	res := api.do(http.MethodGet, "/api/v1/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.Code)

	s := api.register("Ótica Bela Vista", "regina@belavista.test")

	res = api.do(http.MethodGet, "/api/v1/auth/me", s.Token, nil)
	require.Equal(t, http.StatusOK, res.Code, res.Message)
	var me struct {
		User struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	res.into(t, &me)
	assert.Equal(t, "regina@belavista.test", me.User.Email)
	assert.Equal(t, "owner", me.User.Role)

	res = api.do(http.MethodGet, "/api/v1/auth/google", "", nil)
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestRegisterValidationUsesFieldNames(t *testing.T) {
	api := newAPI(t)

	res := api.do(http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"email":            "not-an-email",
		"password":         "segredo123",
		"password_confirm": "outra-senha",
	})
	require.Equal(t, http.StatusUnprocessableEntity, res.Code)
	assert.False(t, res.Success)

	fields := map[string]bool{}
	for _, fe := range res.Errors {
		fields[fe.Field] = true
	}
	assert.True(t, fields["store_name"])
	assert.True(t, fields["email"])
	assert.True(t, fields["password_confirm"])
}

func TestPOSCheckoutOverHTTP(t *testing.T) {
	api := newAPI(t)
	s := api.register("Ótica Central", "dona@central.test")

	frame := api.create("/api/v1/products", s.Token, map[string]any{
		"name": "Armação Aviador", "category": "frame", "sale_price": 100, "stock_level": 5,
	})
	lens := api.create("/api/v1/products", s.Token, map[string]any{
		"name": "Lente Antirreflexo", "category": "lens", "sale_price": "50.00", "stock_level": 3,
	})
	customer := api.create("/api/v1/customers", s.Token, map[string]any{"name": "Maria Souza"})
	cart := api.create("/api/v1/pos/carts", s.Token, nil)

	cartPath := "/api/v1/pos/carts/" + cart.String()
	for _, id := range []uuid.UUID{frame, frame, lens} {
		res := api.do(http.MethodPost, cartPath+"/lines", s.Token, map[string]any{"product_id": id})
		require.Equal(t, http.StatusOK, res.Code, res.Message)
	}
	res := api.do(http.MethodPut, cartPath+"/customer", s.Token, map[string]any{"customer_id": customer})
	require.Equal(t, http.StatusOK, res.Code, res.Message)

	var view struct {
		Lines []struct {
			Quantity int `json:"quantity"`
		} `json:"lines"`
		Total float64 `json:"total"`
	}
	res.into(t, &view)
	require.Len(t, view.Lines, 2)
	assert.Equal(t, 2, view.Lines[0].Quantity)
	assert.InDelta(t, 250.0, view.Total, 0.001)

	key := uuid.NewString()
	first := api.do(http.MethodPost, cartPath+"/checkout", s.Token,
		map[string]any{"payment_method": "pix"}, "Idempotency-Key", key)
	require.Equal(t, http.StatusCreated, first.Code, first.Message)

	var sale struct {
		Order struct {
			ID            uuid.UUID `json:"id"`
			Status        string    `json:"status"`
			Source        string    `json:"source"`
			TotalAmount   float64   `json:"total_amount"`
			PaymentStatus string    `json:"payment_status"`
			Items         []struct {
				Quantity int `json:"quantity"`
			} `json:"items"`
		} `json:"order"`
		Print struct {
			Printed bool `json:"printed"`
		} `json:"print"`
	}
	first.into(t, &sale)
	assert.Equal(t, "pending", sale.Order.Status)
	assert.Equal(t, "pos", sale.Order.Source)
	assert.Equal(t, "paid", sale.Order.PaymentStatus)
	assert.InDelta(t, 250.0, sale.Order.TotalAmount, 0.001)
	assert.Len(t, sale.Order.Items, 2)
	assert.False(t, sale.Print.Printed)

	replay := api.do(http.MethodPost, cartPath+"/checkout", s.Token,
		map[string]any{"payment_method": "pix"}, "Idempotency-Key", key)
	require.Equal(t, http.StatusCreated, replay.Code)
	assert.Equal(t, "true", replay.Header.Get("X-Idempotency-Replayed"))
	var again struct {
		Order struct {
			ID uuid.UUID `json:"id"`
		} `json:"order"`
	}
	replay.into(t, &again)
	assert.Equal(t, sale.Order.ID, again.Order.ID)

	mismatch := api.do(http.MethodPost, cartPath+"/checkout", s.Token,
		map[string]any{"payment_method": "cash"}, "Idempotency-Key", key)
	assert.Equal(t, http.StatusUnprocessableEntity, mismatch.Code)

	res = api.do(http.MethodGet, "/api/v1/products/"+frame.String(), s.Token, nil)
	require.Equal(t, http.StatusOK, res.Code)
	var product struct {
		StockLevel int `json:"stock_level"`
		SoldCount  int `json:"sold_count"`
	}
	res.into(t, &product)
	assert.Equal(t, 3, product.StockLevel)
	assert.Equal(t, 2, product.SoldCount)

	res = api.do(http.MethodGet, cartPath, s.Token, nil)
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestStoresCannotSeeEachOther(t *testing.T) {
	api := newAPI(t)
	a := api.register("Ótica A", "dona@a.test")
	b := api.register("Ótica B", "dona@b.test")

	customer := api.create("/api/v1/customers", a.Token, map[string]any{"name": "Cliente da A"})

	res := api.do(http.MethodGet, "/api/v1/customers/"+customer.String(), a.Token, nil)
	assert.Equal(t, http.StatusOK, res.Code)

	res = api.do(http.MethodGet, "/api/v1/customers/"+customer.String(), b.Token, nil)
	assert.Equal(t, http.StatusNotFound, res.Code)

	res = api.do(http.MethodGet, "/api/v1/customers", b.Token, nil)
	require.Equal(t, http.StatusOK, res.Code)
	var page struct {
		Items []json.RawMessage `json:"items"`
	}
	res.into(t, &page)
	assert.Empty(t, page.Items)
}

func TestSupplierDeleteNeedsThreePresses(t *testing.T) {
	api := newAPI(t)
	s := api.register("Ótica Central", "dona@central.test")

	supplier := api.create("/api/v1/suppliers", s.Token, map[string]any{"name": "Lentes Brasil"})
	path := "/api/v1/suppliers/" + supplier.String() + "/delete"

	type outcome struct {
		Stage   string `json:"stage"`
		Deleted bool   `json:"deleted"`
	}
	press := func() outcome {
		res := api.do(http.MethodPost, path, s.Token, nil)
		require.Equal(t, http.StatusOK, res.Code, res.Message)
		var o outcome
		res.into(t, &o)
		return o
	}

	assert.Equal(t, outcome{Stage: "armed"}, press())
	assert.Equal(t, outcome{Stage: "confirming"}, press())

	res := api.do(http.MethodGet, path, s.Token, nil)
	require.Equal(t, http.StatusOK, res.Code)
	var stage struct {
		Stage string `json:"stage"`
	}
	res.into(t, &stage)
	assert.Equal(t, "confirming", stage.Stage)

	assert.Equal(t, outcome{Stage: "confirmed", Deleted: true}, press())

	res = api.do(http.MethodGet, "/api/v1/suppliers/"+supplier.String(), s.Token, nil)
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestSellerCannotManageCatalog(t *testing.T) {
	api := newAPI(t)
	owner := api.register("Ótica Central", "dona@central.test")

	api.create("/api/v1/users", owner.Token, map[string]any{
		"name": "Vendedor", "email": "vendedor@central.test", "password": "segredo123", "role": "seller",
	})

	res := api.do(http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email": "vendedor@central.test", "password": "segredo123",
	})
	require.Equal(t, http.StatusOK, res.Code, res.Message)
	var login struct {
		AccessToken string `json:"access_token"`
	}
	res.into(t, &login)

	res = api.do(http.MethodPost, "/api/v1/products", login.AccessToken, map[string]any{
		"name": "Armação", "category": "frame", "sale_price": 10,
	})
	assert.Equal(t, http.StatusForbidden, res.Code)

	res = api.do(http.MethodGet, "/api/v1/products", login.AccessToken, nil)
	assert.Equal(t, http.StatusOK, res.Code)
}
