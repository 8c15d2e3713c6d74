package entity

import "time"

// OrderStatus estado del ciclo de vida de un pedido.
type OrderStatus string

// Estados de pedido. DRAFT es el inicial; COMPLETED y CANCELLED son terminales.
const (
	OrderStatusDraft      OrderStatus = "DRAFT"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// Valid indica si el estado es uno de los conocidos.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusDraft, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Order pedido capturado como texto libre (o estructurado por el extractor).
// CreatorName es una copia del nombre del creador al momento de crear el pedido.
type Order struct {
	ID          string
	CompanyID   string
	Content     string
	Status      OrderStatus
	CreatedBy   string
	CreatorName string
	CreatedAt   time.Time
}
