package repository

import (
	"context"

	"github.com/jhoicas/ordersync-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Toda consulta va acotada a la empresa; GetByID devuelve (nil, nil) si no existe en ella.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, companyID, id string) (*entity.User, error)
	GetByPhone(ctx context.Context, companyID, phone string) (*entity.User, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	// Delete devuelve domain.ErrNotFound si el usuario no existe en la empresa.
	Delete(ctx context.Context, companyID, id string) error
}
