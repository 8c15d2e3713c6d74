package repository

import (
	"context"

	"github.com/jhoicas/ordersync-api/internal/domain/entity"
)

// SessionRepository persiste las sesiones activas. Load devuelve (nil, nil) si no existe.
type SessionRepository interface {
	Save(ctx context.Context, session *entity.Session) error
	Load(ctx context.Context, id string) (*entity.Session, error)
	Delete(ctx context.Context, id string) error
}
