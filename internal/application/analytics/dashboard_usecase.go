// Package analytics contiene los casos de uso del dashboard de administración
// y del reporte PDF de pedidos.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/ordersync-api/internal/application/dto"
	"github.com/jhoicas/ordersync-api/internal/domain/entity"
	"github.com/jhoicas/ordersync-api/internal/domain/policy"
	"github.com/jhoicas/ordersync-api/internal/domain/repository"
	"github.com/jhoicas/ordersync-api/internal/domain/timerange"
)

const leaderboardSize = 5 // número de empleados en el ranking del dashboard

// DashboardUseCase genera el resumen de pedidos y empleados para el rango seleccionado.
type DashboardUseCase struct {
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
	loc       *time.Location
	now       func() time.Time
}

// NewDashboardUseCase construye el caso de uso. loc nil = time.Local.
func NewDashboardUseCase(orderRepo repository.OrderRepository, userRepo repository.UserRepository, loc *time.Location) *DashboardUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &DashboardUseCase{orderRepo: orderRepo, userRepo: userRepo, loc: loc, now: time.Now}
}

// GetSummary construye el DashboardSummaryDTO de la empresa de la sesión (solo ADMIN).
//
// Dos llamadas en paralelo:
//  1. ListByCompany(pedidos) → conteos por estado
//  2. ListByCompany(usuarios) → empleados activos y pedidos por empleado (por CreatedBy)
func (uc *DashboardUseCase) GetSummary(ctx context.Context, s *entity.Session, filter timerange.Filter) (*dto.DashboardSummaryDTO, error) {
	if err := policy.Authorize(s, policy.ActionViewTab, policy.Target{Tab: policy.TabDashboard}); err != nil {
		return nil, err
	}
	now := uc.now().In(uc.loc)

	type ordersResult struct {
		orders []*entity.Order
		err    error
	}
	type usersResult struct {
		users []*entity.User
		err   error
	}
	ordersCh := make(chan ordersResult, 1)
	usersCh := make(chan usersResult, 1)

	go func() {
		orders, err := uc.orderRepo.ListByCompany(ctx, s.CompanyID)
		ordersCh <- ordersResult{orders, err}
	}()
	go func() {
		users, err := uc.userRepo.ListByCompany(ctx, s.CompanyID)
		usersCh <- usersResult{users, err}
	}()

	o := <-ordersCh
	u := <-usersCh
	if o.err != nil {
		return nil, fmt.Errorf("dashboard: pedidos: %w", o.err)
	}
	if u.err != nil {
		return nil, fmt.Errorf("dashboard: usuarios: %w", u.err)
	}

	orders := timerange.Apply(o.orders, filter, now)
	out := &dto.DashboardSummaryDTO{
		TotalOrders: len(orders),
		Range:       string(filter.Range),
		DateLabel:   RangeLabel(filter, now),
	}
	for _, order := range orders {
		switch order.Status {
		case entity.OrderStatusDraft:
			out.DraftOrders++
		case entity.OrderStatusProcessing:
			out.ProcessingOrders++
		case entity.OrderStatusCompleted:
			out.CompletedOrders++
		case entity.OrderStatusCancelled:
			out.CancelledOrders++
		}
	}
	out.OrdersByEmployee = employeeStats(u.users, orders)
	out.ActiveEmployees = len(out.OrdersByEmployee)
	out.Leaderboard = out.OrdersByEmployee
	if len(out.Leaderboard) > leaderboardSize {
		out.Leaderboard = out.Leaderboard[:leaderboardSize]
	}
	return out, nil
}

// employeeStats una fila por usuario EMPLOYEE (incluso sin pedidos), contando los pedidos que creó.
// Los pedidos de administradores o de usuarios ya eliminados no aparecen.
// Orden: más pedidos primero; empate por nombre y luego por ID.
func employeeStats(users []*entity.User, orders []*entity.Order) []dto.EmployeeStatDTO {
	counts := make(map[string]int, len(orders))
	for _, o := range orders {
		counts[o.CreatedBy]++
	}
	stats := make([]dto.EmployeeStatDTO, 0, len(users))
	for _, u := range users {
		if u.Role != entity.RoleEmployee {
			continue
		}
		stats = append(stats, dto.EmployeeStatDTO{UserID: u.ID, Name: u.Name, Orders: counts[u.ID]})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Orders != stats[j].Orders {
			return stats[i].Orders > stats[j].Orders
		}
		if stats[i].Name != stats[j].Name {
			return stats[i].Name < stats[j].Name
		}
		return stats[i].UserID < stats[j].UserID
	})
	return stats
}

// RangeLabel etiqueta legible del rango, ej: "Últimos 30 días" o "01/03/2025 al 10/03/2025".
func RangeLabel(f timerange.Filter, now time.Time) string {
	switch f.Range {
	case timerange.RangeToday:
		return "Hoy"
	case timerange.RangeWeek:
		return "Últimos 7 días"
	case timerange.RangeMonth:
		return "Últimos 30 días"
	case timerange.RangeYear:
		return "Último año"
	case timerange.RangeCustom:
		from, to, ok := timerange.Bounds(f, now)
		if ok {
			return from.Format("02/01/2006") + " al " + to.Format("02/01/2006")
		}
	}
	return "Todo · " + monthLabel(now)
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
