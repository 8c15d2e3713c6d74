package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de la empresa.
type Product struct {
	ID            string
	CompanyID     string
	Name          string
	Category      string
	SalePrice     decimal.Decimal
	PurchasePrice decimal.Decimal
	Image         string // URL o data URL
	Description   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Margin devuelve la diferencia entre precio de venta y de compra.
func (p *Product) Margin() decimal.Decimal {
	return p.SalePrice.Sub(p.PurchasePrice)
}
