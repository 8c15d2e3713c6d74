package dto

// CreateOrderRequest texto libre del pedido. Salvo SkipAI, se intenta estructurarlo con el extractor.
type CreateOrderRequest struct {
	Text   string `json:"text" validate:"required"`
	SkipAI bool   `json:"skip_ai"`
}

// UpdateOrderStatusRequest estado solicitado para el pedido.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// OrderFilter parámetros de listado: rango de tiempo, búsqueda y "mis pedidos".
type OrderFilter struct {
	Range string `query:"range"`
	Start string `query:"start"`
	End   string `query:"end"`
	Query string `query:"q"`
	Mine  bool   `query:"mine"`
}

// OrderResponse salida de un pedido. CreatedAt en milisegundos epoch.
type OrderResponse struct {
	ID          string `json:"id"`
	CompanyID   string `json:"company_id"`
	Content     string `json:"content"`
	Status      string `json:"status"`
	CreatedBy   string `json:"created_by"`
	CreatorName string `json:"creator_name"`
	CreatedAt   int64  `json:"created_at"`
	CanDelete   bool   `json:"can_delete"`
	CanAdvance  bool   `json:"can_advance"`
}

// OrderListResponse pedidos filtrados, más recientes primero.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Total int             `json:"total"`
}

// CreateOrderResponse pedido creado e indicación de si el extractor estructuró el texto.
type CreateOrderResponse struct {
	Order      OrderResponse `json:"order"`
	Structured bool          `json:"structured"`
}

// ExtractedOrder campos que el extractor obtiene de un texto libre.
type ExtractedOrder struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Note    string `json:"note"`
}
