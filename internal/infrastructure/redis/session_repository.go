// Package redis guarda las sesiones activas en Redis con TTL hasta su vencimiento.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/ordersync-api/internal/domain/entity"
	"github.com/jhoicas/ordersync-api/internal/domain/repository"
	"github.com/jhoicas/ordersync-api/pkg/config"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

const sessionKeyPrefix = "ordersync:session:"

// NewClient crea el cliente Redis y verifica la conexión.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// SessionRepo implementación de SessionRepository sobre Redis (una clave JSON por sesión).
type SessionRepo struct {
	client goredis.UniversalClient
	now    func() time.Time
}

// NewSessionRepository construye el almacén de sesiones.
func NewSessionRepository(client goredis.UniversalClient) *SessionRepo {
	return &SessionRepo{client: client, now: time.Now}
}

// Save guarda la sesión con TTL hasta ExpiresAt (sin TTL si ExpiresAt es cero).
func (r *SessionRepo) Save(ctx context.Context, s *entity.Session) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("serializar sesión: %w", err)
	}
	var ttl time.Duration
	if !s.ExpiresAt.IsZero() {
		ttl = s.ExpiresAt.Sub(r.now())
		if ttl <= 0 {
			return r.Delete(ctx, s.ID)
		}
	}
	if err := r.client.Set(ctx, sessionKeyPrefix+s.ID, payload, ttl).Err(); err != nil {
		return fmt.Errorf("guardar sesión: %w", err)
	}
	return nil
}

// Load devuelve la sesión o (nil, nil) si no existe o venció.
func (r *SessionRepo) Load(ctx context.Context, id string) (*entity.Session, error) {
	raw, err := r.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("leer sesión: %w", err)
	}
	var s entity.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("deserializar sesión: %w", err)
	}
	return &s, nil
}

// Delete elimina la sesión. Borrar una sesión inexistente no es error.
func (r *SessionRepo) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, sessionKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("eliminar sesión: %w", err)
	}
	return nil
}
