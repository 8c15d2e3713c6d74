package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/ordersync-api/internal/application/analytics"
	"github.com/jhoicas/ordersync-api/internal/application/dto"
	"github.com/jhoicas/ordersync-api/internal/application/usecase"
	"github.com/jhoicas/ordersync-api/internal/domain/entity"
)

// OrderHandler maneja pedidos: listado filtrado, alta, transiciones, borrado y reporte PDF.
type OrderHandler struct {
	uc     *usecase.OrderUseCase
	report *appanalytics.ReportUseCase
}

// NewOrderHandler construye el handler. report puede ser nil si no hay generador de PDF.
func NewOrderHandler(uc *usecase.OrderUseCase, report *appanalytics.ReportUseCase) *OrderHandler {
	return &OrderHandler{uc: uc, report: report}
}

// List godoc
// @Summary      Listar pedidos de la empresa
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        range  query  string  false  "today|week|month|year|all|custom"
// @Param        start  query  string  false  "YYYY-MM-DD (custom)"
// @Param        end    query  string  false  "YYYY-MM-DD (custom)"
// @Param        q      query  string  false  "Búsqueda en contenido y creador"
// @Param        mine   query  bool    false  "Solo mis pedidos"
// @Success      200  {object}  dto.OrderListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var f dto.OrderFilter
	if err := c.QueryParser(&f); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.List(c.UserContext(), GetSession(c), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear pedido desde texto libre
// @Description  Intenta estructurar el texto (nombre, teléfono, dirección, nota); si falla guarda el texto tal cual.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Texto del pedido"
// @Success      201   {object}  dto.CreateOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetSession(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de un pedido (solo ADMIN)
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del pedido"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "Estado destino"
// @Success      200   {object}  dto.OrderResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	status := entity.OrderStatus(strings.ToUpper(strings.TrimSpace(in.Status)))
	if !status.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status inválido"})
	}
	out, err := h.uc.Transition(c.UserContext(), GetSession(c), c.Params("id"), status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Advance godoc
// @Summary      Avanzar pedido al siguiente estado (solo ADMIN)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/advance [post]
func (h *OrderHandler) Advance(c *fiber.Ctx) error {
	out, err := h.uc.Advance(c.UserContext(), GetSession(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar pedido
// @Description  ADMIN en cualquier estado; EMPLOYEE solo en DRAFT.
// @Tags         orders
// @Security     Bearer
// @Param        id   path  string  true  "ID del pedido"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [delete]
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetSession(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Report godoc
// @Summary      Reporte PDF de pedidos del rango
// @Tags         orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        range  query  string  false  "today|week|month|year|all|custom"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/orders/report.pdf [get]
func (h *OrderHandler) Report(c *fiber.Ctx) error {
	if h.report == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(dto.ErrorResponse{Code: "NOT_AVAILABLE", Message: "reporte no disponible"})
	}
	var f dto.OrderFilter
	if err := c.QueryParser(&f); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	filter, err := usecase.ToRangeFilter(f)
	if err != nil {
		return respondError(c, err)
	}
	pdf, err := h.report.GenerateOrdersPDF(c.UserContext(), GetSession(c), filter)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="pedidos.pdf"`)
	return c.Send(pdf)
}
