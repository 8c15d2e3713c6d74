package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ordersync-api/internal/application/dto"
	"github.com/jhoicas/ordersync-api/internal/application/ports"
	"github.com/jhoicas/ordersync-api/internal/domain"
	"github.com/jhoicas/ordersync-api/internal/domain/entity"
	"github.com/jhoicas/ordersync-api/internal/domain/repository"
	"github.com/jhoicas/ordersync-api/internal/domain/timerange"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeOrderRepo struct {
	repository.OrderRepository
	orders []*entity.Order
	err    error
}

func (f *fakeOrderRepo) ListByCompany(_ context.Context, companyID string) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range f.orders {
		if o.CompanyID == companyID {
			out = append(out, o)
		}
	}
	return out, f.err
}

type fakeUserRepo struct {
	repository.UserRepository
	users []*entity.User
}

func (f *fakeUserRepo) ListByCompany(_ context.Context, companyID string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range f.users {
		if u.CompanyID == companyID {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeCompanyRepo struct {
	repository.CompanyRepository
	company *entity.Company
}

func (f *fakeCompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	if f.company != nil && f.company.ID == id {
		return f.company, nil
	}
	return nil, nil
}

type fakeGenerator struct{ got ports.OrderReport }

func (f *fakeGenerator) GenerateOrdersPDF(_ context.Context, r ports.OrderReport) ([]byte, error) {
	f.got = r
	return []byte("%PDF-fake"), nil
}

var (
	now      = time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)
	admin    = &entity.Session{ID: "s1", CompanyID: "c1", UserID: "u1", UserName: "Rose Admin", Role: entity.RoleAdmin}
	employee = &entity.Session{ID: "s2", CompanyID: "c1", UserID: "u2", UserName: "Mike", Role: entity.RoleEmployee}
)

func order(id, createdBy string, st entity.OrderStatus, age time.Duration) *entity.Order {
	return &entity.Order{ID: id, CompanyID: "c1", Status: st, CreatedBy: createdBy, CreatorName: "snapshot-" + createdBy, CreatedAt: now.Add(-age)}
}

func sampleOrders() []*entity.Order {
	day := 24 * time.Hour
	return []*entity.Order{
		order("o1", "u2", entity.OrderStatusDraft, time.Hour),
		order("o2", "u2", entity.OrderStatusProcessing, 2*day),
		order("o3", "u3", entity.OrderStatusCompleted, 3*day),
		order("o4", "u4", entity.OrderStatusCompleted, 5*day),
		order("o5", "u5", entity.OrderStatusCancelled, 6*day),
		order("o6", "u6", entity.OrderStatusDraft, 6*day),
		order("o7", "u7", entity.OrderStatusDraft, 6*day),
		order("o8", "u3", entity.OrderStatusCompleted, 40*day),
		{ID: "x", CompanyID: "c2", Status: entity.OrderStatusDraft, CreatedBy: "u9", CreatedAt: now},
	}
}

func sampleUsers() []*entity.User {
	return []*entity.User{
		{ID: "u1", CompanyID: "c1", Name: "Rose Admin", Role: entity.RoleAdmin},
		{ID: "u2", CompanyID: "c1", Name: "Mike", Role: entity.RoleEmployee},
		{ID: "u3", CompanyID: "c1", Name: "Sarah", Role: entity.RoleEmployee},
		{ID: "u4", CompanyID: "c1", Name: "Ana", Role: entity.RoleEmployee},
		{ID: "u5", CompanyID: "c1", Name: "Luis", Role: entity.RoleEmployee},
		{ID: "u6", CompanyID: "c1", Name: "Pedro", Role: entity.RoleEmployee},
		{ID: "u7", CompanyID: "c1", Name: "Zoe", Role: entity.RoleEmployee},
		{ID: "u9", CompanyID: "c2", Name: "Ajeno", Role: entity.RoleEmployee},
	}
}

func newDashboardWith(orders []*entity.Order, users []*entity.User) *DashboardUseCase {
	uc := NewDashboardUseCase(&fakeOrderRepo{orders: orders}, &fakeUserRepo{users: users}, time.UTC)
	uc.now = func() time.Time { return now }
	return uc
}

func newDashboard() *DashboardUseCase {
	return newDashboardWith(sampleOrders(), sampleUsers())
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestGetSummary_Semana(t *testing.T) {
	out, err := newDashboard().GetSummary(context.Background(), admin, timerange.Filter{Range: timerange.RangeWeek})
	require.NoError(t, err)

	assert.Equal(t, 7, out.TotalOrders, "excluye el pedido de hace 40 días y el de otra empresa")
	assert.Equal(t, 3, out.DraftOrders)
	assert.Equal(t, 1, out.ProcessingOrders)
	assert.Equal(t, 2, out.CompletedOrders)
	assert.Equal(t, 1, out.CancelledOrders)
	assert.Equal(t, 6, out.ActiveEmployees, "solo EMPLOYEE de la empresa")
	assert.Equal(t, "Últimos 7 días", out.DateLabel)

	require.NotEmpty(t, out.OrdersByEmployee)
	assert.Equal(t, "Mike", out.OrdersByEmployee[0].Name)
	assert.Equal(t, 2, out.OrdersByEmployee[0].Orders)
	assert.Len(t, out.OrdersByEmployee, 6)
	require.Len(t, out.Leaderboard, leaderboardSize)
	assert.Equal(t, "Ana", out.Leaderboard[1].Name, "empates ordenados por nombre")
}

func TestGetSummary_PedidosPorEmpleadoDesdeUsuarios(t *testing.T) {
	orders := []*entity.Order{
		order("o1", "u1", entity.OrderStatusDraft, time.Hour), // admin
		order("o2", "u2", entity.OrderStatusDraft, time.Hour),
		order("o3", "u3", entity.OrderStatusDraft, time.Hour),
		order("o4", "u-borrado", entity.OrderStatusDraft, time.Hour),
	}
	users := []*entity.User{
		{ID: "u1", CompanyID: "c1", Name: "Rose Admin", Role: entity.RoleAdmin},
		{ID: "u2", CompanyID: "c1", Name: "Ana", Role: entity.RoleEmployee},
		{ID: "u3", CompanyID: "c1", Name: "Ana", Role: entity.RoleEmployee},
		{ID: "u4", CompanyID: "c1", Name: "Luis", Role: entity.RoleEmployee},
	}

	out, err := newDashboardWith(orders, users).GetSummary(context.Background(), admin, timerange.Filter{Range: timerange.RangeAll})
	require.NoError(t, err)

	assert.Equal(t, 4, out.TotalOrders, "el total sí incluye pedidos de admin y de usuarios eliminados")
	assert.Equal(t, 3, out.ActiveEmployees)
	assert.Equal(t, []dto.EmployeeStatDTO{
		{UserID: "u2", Name: "Ana", Orders: 1},
		{UserID: "u3", Name: "Ana", Orders: 1},
		{UserID: "u4", Name: "Luis", Orders: 0},
	}, out.OrdersByEmployee, "homónimos separados, empleado sin pedidos incluido, sin fila de admin")
	assert.Equal(t, out.OrdersByEmployee, out.Leaderboard)
}

func TestGetSummary_TodoIncluyeViejos(t *testing.T) {
	out, err := newDashboard().GetSummary(context.Background(), admin, timerange.Filter{Range: timerange.RangeAll})
	require.NoError(t, err)
	assert.Equal(t, 8, out.TotalOrders)
	assert.Equal(t, "Todo · Marzo 2025", out.DateLabel)
}

func TestGetSummary_EmpleadoRechazado(t *testing.T) {
	_, err := newDashboard().GetSummary(context.Background(), employee, timerange.Filter{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestGetSummary_ErrorDeRepositorio(t *testing.T) {
	uc := NewDashboardUseCase(&fakeOrderRepo{err: errors.New("db caída")}, &fakeUserRepo{}, nil)
	_, err := uc.GetSummary(context.Background(), admin, timerange.Filter{})
	assert.Error(t, err)
}

func TestRangeLabel_Custom(t *testing.T) {
	f := timerange.Filter{Range: timerange.RangeCustom, Start: "2025-03-01", End: "2025-03-10"}
	assert.Equal(t, "01/03/2025 al 10/03/2025", RangeLabel(f, now))
}

// ──────────────────────────────────────────────────────────────────────────────
// Reporte
// ──────────────────────────────────────────────────────────────────────────────

func TestGenerateOrdersPDF_FiltraYDelega(t *testing.T) {
	gen := &fakeGenerator{}
	uc := NewReportUseCase(&fakeCompanyRepo{company: &entity.Company{ID: "c1", Name: "Roseworld"}},
		&fakeOrderRepo{orders: sampleOrders()}, gen, time.UTC)
	uc.now = func() time.Time { return now }

	out, err := uc.GenerateOrdersPDF(context.Background(), admin, timerange.Filter{Range: timerange.RangeMonth})
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(out))
	assert.Equal(t, "Roseworld", gen.got.Company.Name)
	assert.Len(t, gen.got.Orders, 7)
	assert.Equal(t, "Rose Admin", gen.got.GeneratedBy)
	assert.Equal(t, "Últimos 30 días", gen.got.RangeLabel)

	_, err = uc.GenerateOrdersPDF(context.Background(), employee, timerange.Filter{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
