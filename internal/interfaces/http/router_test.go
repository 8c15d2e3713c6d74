package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	appanalytics "github.com/jhoicas/ordersync-api/internal/application/analytics"
	"github.com/jhoicas/ordersync-api/internal/application/auth"
	"github.com/jhoicas/ordersync-api/internal/application/dto"
	"github.com/jhoicas/ordersync-api/internal/application/ports"
	"github.com/jhoicas/ordersync-api/internal/application/usecase"
	"github.com/jhoicas/ordersync-api/internal/domain/entity"
	"github.com/jhoicas/ordersync-api/internal/infrastructure/memory"
	"github.com/jhoicas/ordersync-api/internal/infrastructure/sqlite"
	apphttp "github.com/jhoicas/ordersync-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/ordersync-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret       = "test-secret-key-for-unit-tests"
	testIssuer          = "ordersync-test"
	testRegistrationKey = "clave-registro"
	testPassword        = "secret"
)

// fakePDF generador de reporte que no depende de maroto.
type fakePDF struct{}

func (fakePDF) GenerateOrdersPDF(_ context.Context, r ports.OrderReport) ([]byte, error) {
	return []byte("%PDF-fake " + r.Company.Name), nil
}

type testEnv struct {
	app   *fiber.App
	users *sqlite.UserRepo
}

// buildTestApp arma la API completa sobre SQLite en memoria y sesiones en memoria.
// Empresa c1 con un ADMIN (tel 100) y un EMPLOYEE (tel 200); empresa c2 vacía.
func buildTestApp(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	now := time.Now()
	companies := sqlite.NewCompanyRepository(db)
	users := sqlite.NewUserRepository(db)
	orders := sqlite.NewOrderRepository(db)
	require.NoError(t, companies.Create(ctx, &entity.Company{ID: "c1", Name: "Roseworld", CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, companies.Create(ctx, &entity.Company{ID: "c2", Name: "Resevalley", CreatedAt: now, UpdatedAt: now}))
	for _, u := range []*entity.User{
		{ID: "u-admin", CompanyID: "c1", Name: "Rose Admin", Phone: "100", Role: entity.RoleAdmin, PasswordHash: string(hash), CreatedAt: now, UpdatedAt: now},
		{ID: "u-emp", CompanyID: "c1", Name: "Mike Johnson", Phone: "200", Role: entity.RoleEmployee, PasswordHash: string(hash), CreatedAt: now, UpdatedAt: now},
	} {
		require.NoError(t, users.Create(ctx, u))
	}

	sessions := memory.NewSessionRepository()
	authUC := auth.NewAuthUseCase(users, companies, sessions, auth.JWTConfig{
		Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer,
	}, nil)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		CompanyUC:   usecase.NewCompanyUseCase(companies, sqlite.NewTxRunner(db), testRegistrationKey, nil),
		OrderUC:     usecase.NewOrderUseCase(orders, nil, nil, usecase.OrderOptions{}, nil),
		ProductUC:   usecase.NewProductUseCase(sqlite.NewProductRepository(db)),
		UserUC:      usecase.NewUserUseCase(users, sessions, nil),
		DashboardUC: appanalytics.NewDashboardUseCase(orders, users, time.UTC),
		ReportUC:    appanalytics.NewReportUseCase(companies, orders, fakePDF{}, time.UTC),
		AuthUC:      authUC,
		JWTSecret:   testJWTSecret,
	})
	return &testEnv{app: app, users: users}
}

// do ejecuta la petición y devuelve status y cuerpo.
func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func (e *testEnv) login(t *testing.T, phone string) string {
	t.Helper()
	status, body := e.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{CompanyID: "c1", Phone: phone, Password: testPassword})
	require.Equal(t, http.StatusOK, status, string(body))
	var out dto.LoginResponse
	require.NoError(t, json.Unmarshal(body, &out))
	return out.Token
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &e), string(body))
	return e.Code
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinHeader_401(t *testing.T) {
	env := buildTestApp(t)
	status, body := env.do(t, http.MethodGet, "/api/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_TOKEN", errorCode(t, body))
}

func TestAuthMiddleware_TokenInvalido_401(t *testing.T) {
	env := buildTestApp(t)
	status, body := env.do(t, http.MethodGet, "/api/orders", "no-es-un-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, body))
}

func TestAuthMiddleware_TokenSinSesion_401(t *testing.T) {
	env := buildTestApp(t)
	tok, err := pkgjwt.Generate(testJWTSecret, "s-inexistente", "u-admin", "c1", "ADMIN", testIssuer, 60)
	require.NoError(t, err)

	status, body := env.do(t, http.MethodGet, "/api/orders", tok, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "SESSION_EXPIRED", errorCode(t, body))
}

func TestAuthMiddleware_UsuarioEliminado_SesionObsoleta(t *testing.T) {
	env := buildTestApp(t)
	tok := env.login(t, "200")
	require.NoError(t, env.users.Delete(context.Background(), "c1", "u-emp"))

	status, body := env.do(t, http.MethodGet, "/api/auth/session", tok, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "STALE_SESSION", errorCode(t, body))
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth / Companies
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesIncorrectas_401(t *testing.T) {
	env := buildTestApp(t)
	status, body := env.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{CompanyID: "c1", Phone: "100", Password: "otra"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, body))
}

func TestSessionYLogout(t *testing.T) {
	env := buildTestApp(t)
	tok := env.login(t, "200")

	status, body := env.do(t, http.MethodGet, "/api/auth/session", tok, nil)
	require.Equal(t, http.StatusOK, status)
	var s dto.SessionResponse
	require.NoError(t, json.Unmarshal(body, &s))
	assert.Equal(t, "EMPLOYEE", s.Role)
	assert.Equal(t, []string{"products", "orders", "profile"}, s.VisibleTabs)

	status, _ = env.do(t, http.MethodPost, "/api/auth/logout", tok, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = env.do(t, http.MethodGet, "/api/auth/session", tok, nil)
	assert.Equal(t, http.StatusUnauthorized, status, "tras logout el token ya no tiene sesión")
}

func TestCompanies_PublicoYRegistroConClave(t *testing.T) {
	env := buildTestApp(t)

	status, body := env.do(t, http.MethodGet, "/api/companies", "", nil)
	require.Equal(t, http.StatusOK, status)
	var list dto.CompanyListResponse
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Len(t, list.Items, 2)

	in := dto.RegisterCompanyRequest{Name: "Nueva", AdminName: "Ana", AdminPhone: "1", AdminPassword: "1234"}
	status, _ = env.do(t, http.MethodPost, "/api/companies", "", in)
	assert.Equal(t, http.StatusForbidden, status, "sin clave de registro")

	b, _ := json.Marshal(in)
	req := httptest.NewRequest(http.MethodPost, "/api/companies", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apphttp.RegistrationKeyHeader, testRegistrationKey)
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	status, body = env.do(t, http.MethodGet, "/api/companies/no-existe", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errorCode(t, body))
}

// ──────────────────────────────────────────────────────────────────────────────
// Orders
// ──────────────────────────────────────────────────────────────────────────────

func createOrder(t *testing.T, env *testEnv, tok, text string) dto.OrderResponse {
	t.Helper()
	status, body := env.do(t, http.MethodPost, "/api/orders", tok, dto.CreateOrderRequest{Text: text})
	require.Equal(t, http.StatusCreated, status, string(body))
	var out dto.CreateOrderResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.False(t, out.Structured, "sin extractor el texto se guarda tal cual")
	return out.Order
}

func TestOrders_CicloCompleto(t *testing.T) {
	env := buildTestApp(t)
	emp := env.login(t, "200")
	admin := env.login(t, "100")

	o := createOrder(t, env, emp, "Juan, 3001234567, Calle 1")
	assert.Equal(t, "DRAFT", o.Status)
	assert.Equal(t, "Mike Johnson", o.CreatorName)

	status, body := env.do(t, http.MethodPost, "/api/orders/"+o.ID+"/advance", emp, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, body))

	status, body = env.do(t, http.MethodPost, "/api/orders/"+o.ID+"/advance", admin, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	var got dto.OrderResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "PROCESSING", got.Status)

	status, body = env.do(t, http.MethodPatch, "/api/orders/"+o.ID+"/status", admin, dto.UpdateOrderStatusRequest{Status: "draft"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INVALID_TRANSITION", errorCode(t, body))

	status, _ = env.do(t, http.MethodPatch, "/api/orders/"+o.ID+"/status", admin, dto.UpdateOrderStatusRequest{Status: "nada"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = env.do(t, http.MethodDelete, "/api/orders/"+o.ID, emp, nil)
	assert.Equal(t, http.StatusForbidden, status, "el empleado solo borra DRAFT")

	status, _ = env.do(t, http.MethodDelete, "/api/orders/"+o.ID, admin, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = env.do(t, http.MethodDelete, "/api/orders/"+o.ID, admin, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestOrders_ListFiltros(t *testing.T) {
	env := buildTestApp(t)
	emp := env.login(t, "200")
	admin := env.login(t, "100")

	createOrder(t, env, emp, "Rosas rojas para Laura")
	createOrder(t, env, admin, "Tulipanes para Pedro")

	status, body := env.do(t, http.MethodGet, "/api/orders?mine=true", emp, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	var list dto.OrderListResponse
	require.NoError(t, json.Unmarshal(body, &list))
	require.Equal(t, 1, list.Total)
	assert.Contains(t, list.Items[0].Content, "Laura")

	status, body = env.do(t, http.MethodGet, "/api/orders?q=tulipan&range=today", emp, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Equal(t, 1, list.Total)

	status, body = env.do(t, http.MethodGet, "/api/orders?range=siglo", emp, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", errorCode(t, body))
}

func TestOrders_TextoVacio_400(t *testing.T) {
	env := buildTestApp(t)
	status, body := env.do(t, http.MethodPost, "/api/orders", env.login(t, "200"), dto.CreateOrderRequest{Text: "  "})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", errorCode(t, body))
}

func TestOrders_ReportePDF(t *testing.T) {
	env := buildTestApp(t)
	admin := env.login(t, "100")
	createOrder(t, env, admin, "pedido")

	req := httptest.NewRequest(http.MethodGet, "/api/orders/report.pdf?range=month", nil)
	req.Header.Set("Authorization", "Bearer "+admin)
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	b, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(b), "Roseworld")

	status, _ := env.do(t, http.MethodGet, "/api/orders/report.pdf", env.login(t, "200"), nil)
	assert.Equal(t, http.StatusForbidden, status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Pestañas por rol
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireTab_EmpleadoSinDashboardNiEmpleados(t *testing.T) {
	env := buildTestApp(t)
	emp := env.login(t, "200")

	for _, path := range []string{"/api/dashboard/summary", "/api/employees"} {
		status, body := env.do(t, http.MethodGet, path, emp, nil)
		assert.Equal(t, http.StatusForbidden, status, path)
		assert.Equal(t, "FORBIDDEN", errorCode(t, body), path)
	}

	status, _ := env.do(t, http.MethodGet, "/api/products", emp, nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = env.do(t, http.MethodGet, "/api/profile", emp, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestDashboard_AdminYRangoInvalido(t *testing.T) {
	env := buildTestApp(t)
	admin := env.login(t, "100")
	createOrder(t, env, env.login(t, "200"), "pedido")

	status, body := env.do(t, http.MethodGet, "/api/dashboard/summary?range=all", admin, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	var sum dto.DashboardSummaryDTO
	require.NoError(t, json.Unmarshal(body, &sum))
	assert.Equal(t, 1, sum.TotalOrders)
	assert.Equal(t, 1, sum.DraftOrders)
	assert.Equal(t, 1, sum.ActiveEmployees)

	status, _ = env.do(t, http.MethodGet, "/api/dashboard/summary?range=decade", admin, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Employees / Profile
// ──────────────────────────────────────────────────────────────────────────────

func TestEmployees_AltaYAutoEliminacion(t *testing.T) {
	env := buildTestApp(t)
	admin := env.login(t, "100")

	status, body := env.do(t, http.MethodPost, "/api/employees", admin, dto.CreateUserRequest{Name: "Laura", Phone: "300", Password: "1234"})
	require.Equal(t, http.StatusCreated, status, string(body))
	var u dto.UserResponse
	require.NoError(t, json.Unmarshal(body, &u))
	assert.Equal(t, "EMPLOYEE", u.Role)

	status, body = env.do(t, http.MethodPost, "/api/employees", admin, dto.CreateUserRequest{Name: "Otra", Phone: "300", Password: "1234"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "DUPLICATE", errorCode(t, body))

	status, body = env.do(t, http.MethodDelete, "/api/employees/u-admin", admin, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "SELF_DELETION", errorCode(t, body))

	status, _ = env.do(t, http.MethodDelete, "/api/employees/"+u.ID, admin, nil)
	assert.Equal(t, http.StatusNoContent, status)
}

func TestProfile_ActualizarNombre(t *testing.T) {
	env := buildTestApp(t)
	emp := env.login(t, "200")
	name := "Mike J."

	status, body := env.do(t, http.MethodPut, "/api/profile", emp, dto.UpdateProfileRequest{Name: &name})
	require.Equal(t, http.StatusOK, status, string(body))

	status, body = env.do(t, http.MethodGet, "/api/auth/session", emp, nil)
	require.Equal(t, http.StatusOK, status)
	var s dto.SessionResponse
	require.NoError(t, json.Unmarshal(body, &s))
	assert.Equal(t, name, s.UserName)
}
