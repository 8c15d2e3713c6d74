package ports

import (
	"context"
	"time"

	"github.com/jhoicas/ordersync-api/internal/domain/entity"
)

// OrderReport datos del reporte de pedidos ya filtrados.
type OrderReport struct {
	Company     *entity.Company
	Orders      []*entity.Order
	RangeLabel  string
	GeneratedBy string
	GeneratedAt time.Time
}

// OrderReportGenerator genera el PDF del reporte de pedidos.
type OrderReportGenerator interface {
	GenerateOrdersPDF(ctx context.Context, report OrderReport) ([]byte, error)
}
