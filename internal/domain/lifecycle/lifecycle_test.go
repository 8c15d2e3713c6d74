package lifecycle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ordersync-api/internal/domain"
	"github.com/jhoicas/ordersync-api/internal/domain/entity"
	"github.com/jhoicas/ordersync-api/internal/domain/lifecycle"
)

var (
	admin    = &entity.Session{ID: "s1", CompanyID: "c1", UserID: "u1", Role: entity.RoleAdmin}
	employee = &entity.Session{ID: "s2", CompanyID: "c1", UserID: "u2", Role: entity.RoleEmployee}

	statuses = []entity.OrderStatus{
		entity.OrderStatusDraft,
		entity.OrderStatusProcessing,
		entity.OrderStatusCompleted,
		entity.OrderStatusCancelled,
	}
)

func TestTransition_AdminAvanza(t *testing.T) {
	next, err := lifecycle.Transition(admin, entity.OrderStatusDraft, entity.OrderStatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusProcessing, next)

	next, err = lifecycle.Transition(admin, entity.OrderStatusProcessing, entity.OrderStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCompleted, next)
}

func TestTransition_EmpleadoNuncaTransiciona(t *testing.T) {
	for _, from := range statuses {
		for _, to := range statuses {
			_, err := lifecycle.Transition(employee, from, to)
			assert.ErrorIs(t, err, domain.ErrUnauthorized, "%s -> %s", from, to)
		}
	}
}

func TestTransition_SoloDosParesValidos(t *testing.T) {
	valid := map[[2]entity.OrderStatus]bool{
		{entity.OrderStatusDraft, entity.OrderStatusProcessing}:     true,
		{entity.OrderStatusProcessing, entity.OrderStatusCompleted}: true,
	}
	for _, from := range statuses {
		for _, to := range statuses {
			_, err := lifecycle.Transition(admin, from, to)
			if valid[[2]entity.OrderStatus{from, to}] {
				assert.NoError(t, err, "%s -> %s", from, to)
				continue
			}
			assert.ErrorIs(t, err, domain.ErrInvalidTransition, "%s -> %s", from, to)
		}
	}
}

func TestTransition_EstadoDesconocido(t *testing.T) {
	_, err := lifecycle.Transition(admin, entity.OrderStatus("ARCHIVED"), entity.OrderStatusProcessing)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestTransition_SesionNula(t *testing.T) {
	_, err := lifecycle.Transition(nil, entity.OrderStatusDraft, entity.OrderStatusProcessing)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestNextYTerminales(t *testing.T) {
	next, ok := lifecycle.Next(entity.OrderStatusDraft)
	assert.True(t, ok)
	assert.Equal(t, entity.OrderStatusProcessing, next)

	_, ok = lifecycle.Next(entity.OrderStatusCompleted)
	assert.False(t, ok)
	_, ok = lifecycle.Next(entity.OrderStatusCancelled)
	assert.False(t, ok)

	assert.True(t, lifecycle.IsTerminal(entity.OrderStatusCompleted))
	assert.True(t, lifecycle.IsTerminal(entity.OrderStatusCancelled))
	assert.False(t, lifecycle.IsTerminal(entity.OrderStatusDraft))
}
