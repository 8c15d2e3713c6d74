package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/ordersync-api/internal/application/ports"
	"github.com/jhoicas/ordersync-api/internal/domain"
	"github.com/jhoicas/ordersync-api/internal/domain/entity"
	"github.com/jhoicas/ordersync-api/internal/domain/policy"
	"github.com/jhoicas/ordersync-api/internal/domain/repository"
	"github.com/jhoicas/ordersync-api/internal/domain/timerange"
)

// ReportUseCase genera el PDF de pedidos del rango seleccionado (solo ADMIN).
type ReportUseCase struct {
	companyRepo repository.CompanyRepository
	orderRepo   repository.OrderRepository
	generator   ports.OrderReportGenerator
	loc         *time.Location
	now         func() time.Time
}

// NewReportUseCase construye el caso de uso. loc nil = time.Local.
func NewReportUseCase(
	companyRepo repository.CompanyRepository,
	orderRepo repository.OrderRepository,
	generator ports.OrderReportGenerator,
	loc *time.Location,
) *ReportUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &ReportUseCase{companyRepo: companyRepo, orderRepo: orderRepo, generator: generator, loc: loc, now: time.Now}
}

// GenerateOrdersPDF devuelve los bytes del reporte.
func (uc *ReportUseCase) GenerateOrdersPDF(ctx context.Context, s *entity.Session, filter timerange.Filter) ([]byte, error) {
	if err := policy.Authorize(s, policy.ActionViewTab, policy.Target{Tab: policy.TabDashboard}); err != nil {
		return nil, err
	}
	company, err := uc.companyRepo.GetByID(ctx, s.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	orders, err := uc.orderRepo.ListByCompany(ctx, s.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("reporte: pedidos: %w", err)
	}
	now := uc.now().In(uc.loc)
	return uc.generator.GenerateOrdersPDF(ctx, ports.OrderReport{
		Company:     company,
		Orders:      timerange.Apply(orders, filter, now),
		RangeLabel:  RangeLabel(filter, now),
		GeneratedBy: s.UserName,
		GeneratedAt: now,
	})
}
