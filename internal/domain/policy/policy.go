// Package policy decide qué puede hacer cada rol sobre pedidos, usuarios, productos y pestañas.
// Son funciones puras: la sesión se recibe explícitamente y no hay estado global.
package policy

import (
	"github.com/jhoicas/ordersync-api/internal/domain"
	"github.com/jhoicas/ordersync-api/internal/domain/entity"
)

// Tab pestaña (vista) de la aplicación.
type Tab string

const (
	TabDashboard Tab = "dashboard"
	TabProducts  Tab = "products"
	TabOrders    Tab = "orders"
	TabEmployees Tab = "employees"
	TabProfile   Tab = "profile"
)

var (
	adminTabs    = []Tab{TabDashboard, TabProducts, TabOrders, TabEmployees, TabProfile}
	employeeTabs = []Tab{TabProducts, TabOrders, TabProfile}
)

// Action operación sujeta a autorización.
type Action string

const (
	ActionViewTab         Action = "view_tab"
	ActionCreateOrder     Action = "create_order"
	ActionTransitionOrder Action = "transition_order"
	ActionDeleteOrder     Action = "delete_order"
	ActionViewProducts    Action = "view_products"
	ActionCreateProduct   Action = "create_product"
	ActionUpdateProduct   Action = "update_product"
	ActionDeleteProduct   Action = "delete_product"
	ActionListUsers       Action = "list_users"
	ActionCreateUser      Action = "create_user"
	ActionDeleteUser      Action = "delete_user"
	ActionViewProfile     Action = "view_profile"
	ActionUpdateProfile   Action = "update_profile"
)

// Target objeto sobre el que se evalúa la acción. Solo se usan los campos que la acción necesita.
type Target struct {
	CompanyID string        // empresa del recurso; vacío = sin referencia de empresa
	Tab       Tab           // para ActionViewTab
	Order     *entity.Order // para acciones sobre pedidos
	UserID    string        // usuario objetivo (delete_user, perfil)
}

// Authorize devuelve nil si la sesión puede ejecutar la acción, domain.ErrSelfDeletion si
// intenta eliminar su propio usuario y domain.ErrUnauthorized en cualquier otro rechazo.
// Borrar un pedido sin pedido cargado devuelve domain.ErrNotFound.
func Authorize(s *entity.Session, action Action, target Target) error {
	if s == nil || s.CompanyID == "" || s.UserID == "" {
		return domain.ErrUnauthorized
	}
	if !sameTenant(s, target) {
		return domain.ErrUnauthorized
	}

	switch action {
	case ActionViewTab:
		if CanViewTab(s, target.Tab) {
			return nil
		}
		return domain.ErrUnauthorized

	case ActionCreateOrder, ActionViewProducts:
		return nil

	case ActionTransitionOrder:
		return adminOnly(s)

	case ActionDeleteOrder:
		if target.Order == nil {
			return domain.ErrNotFound
		}
		if s.IsAdmin() || target.Order.Status == entity.OrderStatusDraft {
			return nil
		}
		return domain.ErrUnauthorized

	case ActionDeleteUser:
		// La auto-eliminación se distingue antes que el rol.
		if target.UserID == s.UserID {
			return domain.ErrSelfDeletion
		}
		return adminOnly(s)

	case ActionListUsers, ActionCreateUser, ActionCreateProduct, ActionUpdateProduct, ActionDeleteProduct:
		return adminOnly(s)

	case ActionViewProfile, ActionUpdateProfile:
		if target.UserID == "" || target.UserID == s.UserID {
			return nil
		}
		return domain.ErrUnauthorized
	}
	return domain.ErrUnauthorized
}

// CanPerform versión booleana de Authorize.
func CanPerform(s *entity.Session, action Action, target Target) bool {
	return Authorize(s, action, target) == nil
}

// VisibleTabs devuelve las pestañas visibles para el rol, en orden de navegación.
func VisibleTabs(role entity.Role) []Tab {
	var tabs []Tab
	switch role {
	case entity.RoleAdmin:
		tabs = adminTabs
	case entity.RoleEmployee:
		tabs = employeeTabs
	}
	out := make([]Tab, len(tabs))
	copy(out, tabs)
	return out
}

// CanViewTab indica si la sesión puede abrir la pestaña.
func CanViewTab(s *entity.Session, tab Tab) bool {
	if s == nil {
		return false
	}
	for _, t := range VisibleTabs(s.Role) {
		if t == tab {
			return true
		}
	}
	return false
}

func adminOnly(s *entity.Session) error {
	if s.IsAdmin() {
		return nil
	}
	return domain.ErrUnauthorized
}

func sameTenant(s *entity.Session, target Target) bool {
	if target.CompanyID != "" && target.CompanyID != s.CompanyID {
		return false
	}
	if target.Order != nil && target.Order.CompanyID != s.CompanyID {
		return false
	}
	return true
}
