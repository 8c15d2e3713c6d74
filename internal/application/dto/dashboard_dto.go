package dto

// DashboardSummaryDTO respuesta de GET /api/dashboard para el rango seleccionado.
type DashboardSummaryDTO struct {
	TotalOrders      int `json:"total_orders"`
	DraftOrders      int `json:"draft_orders"`
	ProcessingOrders int `json:"processing_orders"`
	CompletedOrders  int `json:"completed_orders"`
	CancelledOrders  int `json:"cancelled_orders"`
	ActiveEmployees  int `json:"active_employees"` // usuarios con rol EMPLOYEE

	// Pedidos por empleado (nombre del creador), de mayor a menor.
	OrdersByEmployee []EmployeeStatDTO `json:"orders_by_employee"`
	// Top 5 del ranking anterior.
	Leaderboard []EmployeeStatDTO `json:"leaderboard"`

	Range     string `json:"range"`
	DateLabel string `json:"date_label"` // ej: "Marzo 2025"
}

// EmployeeStatDTO conteo de pedidos de un empleado (UserID distingue homónimos).
type EmployeeStatDTO struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Orders int    `json:"orders"`
}
