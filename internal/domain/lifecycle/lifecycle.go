// Package lifecycle define la máquina de estados de los pedidos:
// DRAFT -> PROCESSING -> COMPLETED. CANCELLED es terminal y ninguna operación lo produce.
package lifecycle

import (
	"github.com/jhoicas/ordersync-api/internal/domain"
	"github.com/jhoicas/ordersync-api/internal/domain/entity"
)

// forward paso único permitido desde cada estado no terminal.
var forward = map[entity.OrderStatus]entity.OrderStatus{
	entity.OrderStatusDraft:      entity.OrderStatusProcessing,
	entity.OrderStatusProcessing: entity.OrderStatusCompleted,
}

// Transition valida el cambio current -> requested para la sesión.
// Solo ADMIN puede transicionar (domain.ErrUnauthorized); cualquier salto, retroceso,
// origen terminal o valor desconocido devuelve domain.ErrInvalidTransition.
func Transition(s *entity.Session, current, requested entity.OrderStatus) (entity.OrderStatus, error) {
	if !s.IsAdmin() {
		return current, domain.ErrUnauthorized
	}
	next, ok := forward[current]
	if !ok || next != requested {
		return current, domain.ErrInvalidTransition
	}
	return next, nil
}

// Next devuelve el siguiente estado hacia adelante, o false si current es terminal o desconocido.
func Next(current entity.OrderStatus) (entity.OrderStatus, bool) {
	next, ok := forward[current]
	return next, ok
}

// IsTerminal indica si desde el estado no hay transiciones.
func IsTerminal(st entity.OrderStatus) bool {
	return st == entity.OrderStatusCompleted || st == entity.OrderStatusCancelled
}
