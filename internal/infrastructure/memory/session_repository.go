// Package memory guarda las sesiones en el proceso. Se usa cuando no hay REDIS_ADDR y en tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/ordersync-api/internal/domain/entity"
	"github.com/jhoicas/ordersync-api/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo almacén de sesiones en memoria, seguro para uso concurrente.
type SessionRepo struct {
	mu       sync.RWMutex
	sessions map[string]entity.Session
	now      func() time.Time
}

// NewSessionRepository construye el almacén vacío.
func NewSessionRepository() *SessionRepo {
	return &SessionRepo{sessions: make(map[string]entity.Session), now: time.Now}
}

// Save guarda una copia de la sesión.
func (r *SessionRepo) Save(_ context.Context, s *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = *s
	return nil
}

// Load devuelve una copia de la sesión o (nil, nil) si no existe o venció.
func (r *SessionRepo) Load(_ context.Context, id string) (*entity.Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if s.Expired(r.now()) {
		r.mu.Lock()
		delete(r.sessions, id)
		r.mu.Unlock()
		return nil, nil
	}
	return &s, nil
}

// Delete elimina la sesión.
func (r *SessionRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

// Len cantidad de sesiones guardadas.
func (r *SessionRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
