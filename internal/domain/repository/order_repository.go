package repository

import (
	"context"

	"github.com/jhoicas/ordersync-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order (DIP).
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Order, error)
	// ListByCompany devuelve los pedidos de la empresa, más recientes primero.
	ListByCompany(ctx context.Context, companyID string) ([]*entity.Order, error)
	// UpdateStatus cambia el estado solo si el actual sigue siendo from (compare-and-set).
	// Devuelve domain.ErrNotFound si el pedido no existe y domain.ErrInvalidTransition
	// si el estado ya no es from.
	UpdateStatus(ctx context.Context, companyID, id string, from, to entity.OrderStatus) error
	// Delete elimina el pedido solo si su estado sigue siendo expected.
	// Devuelve domain.ErrNotFound si no existe y domain.ErrStatusChanged si el estado cambió.
	Delete(ctx context.Context, companyID, id string, expected entity.OrderStatus) error
}
