package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ordersync-api/internal/application/dto"
	"github.com/jhoicas/ordersync-api/internal/application/ports"
	"github.com/jhoicas/ordersync-api/internal/domain"
	"github.com/jhoicas/ordersync-api/internal/domain/entity"
	"github.com/jhoicas/ordersync-api/internal/domain/lifecycle"
	"github.com/jhoicas/ordersync-api/internal/domain/policy"
	"github.com/jhoicas/ordersync-api/internal/domain/repository"
	"github.com/jhoicas/ordersync-api/internal/domain/timerange"
	"github.com/jhoicas/ordersync-api/pkg/logger"
	"github.com/jhoicas/ordersync-api/pkg/textsearch"
)

const (
	// maxOrderText límite del texto libre de un pedido.
	maxOrderText = 4000
	// maxDeleteAttempts reintentos de Delete cuando el estado cambia entre la lectura y el borrado.
	maxDeleteAttempts = 3
)

// OrderOptions parámetros de entorno del caso de uso de pedidos.
type OrderOptions struct {
	ExtractTimeout time.Duration  // límite de la llamada al extractor; 0 = 10 s
	Location       *time.Location // zona horaria de los filtros de fecha; nil = time.Local
}

// OrderUseCase casos de uso de pedidos: crear (con extracción best-effort), listar filtrado,
// transicionar y eliminar. Toda operación recibe la sesión explícitamente.
type OrderUseCase struct {
	repo      repository.OrderRepository
	extractor ports.OrderTextExtractor
	events    ports.OrderEvents
	timeout   time.Duration
	loc       *time.Location
	log       *logger.Logger
	now       func() time.Time
}

// NewOrderUseCase construye el caso de uso. extractor y events pueden ser nil.
func NewOrderUseCase(
	repo repository.OrderRepository,
	extractor ports.OrderTextExtractor,
	events ports.OrderEvents,
	opts OrderOptions,
	log *logger.Logger,
) *OrderUseCase {
	if events == nil {
		events = ports.NopOrderEvents{}
	}
	if opts.ExtractTimeout <= 0 {
		opts.ExtractTimeout = 10 * time.Second
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if log == nil {
		log = logger.Nop()
	}
	return &OrderUseCase{
		repo:      repo,
		extractor: extractor,
		events:    events,
		timeout:   opts.ExtractTimeout,
		loc:       opts.Location,
		log:       log.Component("orders"),
		now:       time.Now,
	}
}

// Create registra un pedido DRAFT a nombre de la sesión. Si la extracción falla, expira o no
// encuentra un nombre, el contenido es el texto original sin cambios; nunca falla por el extractor.
func (uc *OrderUseCase) Create(ctx context.Context, s *entity.Session, in dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	if err := policy.Authorize(s, policy.ActionCreateOrder, policy.Target{}); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Text) == "" {
		return nil, fmt.Errorf("%w: el texto del pedido es obligatorio", domain.ErrInvalidInput)
	}
	if len(in.Text) > maxOrderText {
		return nil, fmt.Errorf("%w: el texto del pedido supera %d caracteres", domain.ErrInvalidInput, maxOrderText)
	}

	content, structured := in.Text, false
	if !in.SkipAI && uc.extractor != nil {
		extracted, err := uc.extract(ctx, in.Text)
		if err == nil {
			content, structured = FormatStructured(extracted), true
		} else {
			uc.log.Warn().Err(err).Str("company_id", s.CompanyID).Msg("extracción fallida, se guarda el texto original")
		}
	}

	order := &entity.Order{
		ID:          uuid.New().String(),
		CompanyID:   s.CompanyID,
		Content:     content,
		Status:      entity.OrderStatusDraft,
		CreatedBy:   s.UserID,
		CreatorName: s.UserName,
		CreatedAt:   uc.now().Truncate(time.Millisecond),
	}
	if err := uc.repo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("crear pedido: %w", err)
	}
	uc.events.OrderCreated(s.CompanyID, structured)
	return &dto.CreateOrderResponse{Order: toOrderResponse(s, order), Structured: structured}, nil
}

// extract llama al extractor con timeout. Cualquier fallo se devuelve envuelto en domain.ErrExtractionFailed.
func (uc *OrderUseCase) extract(ctx context.Context, raw string) (*dto.ExtractedOrder, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	out, err := uc.extractor.ExtractOrder(ctx, raw)
	switch {
	case err != nil && errors.Is(err, context.DeadlineExceeded):
		uc.events.ExtractionFallback("timeout")
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	case err != nil:
		uc.events.ExtractionFallback("error")
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	case out == nil || strings.TrimSpace(out.Name) == "":
		uc.events.ExtractionFallback("empty")
		return nil, fmt.Errorf("%w: resultado sin nombre", domain.ErrExtractionFailed)
	}
	return out, nil
}

// FormatStructured arma el contenido de texto plano de un pedido estructurado.
func FormatStructured(e *dto.ExtractedOrder) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\nPhone: %s\nAddress: %s", e.Name, e.Phone, e.Address)
	if e.Note != "" {
		fmt.Fprintf(&b, "\nNote: %s", e.Note)
	}
	return b.String()
}

// List devuelve los pedidos de la empresa de la sesión, más recientes primero, aplicando
// rango de tiempo, "mis pedidos" y búsqueda en ese orden. El rango se evalúa con el now actual.
func (uc *OrderUseCase) List(ctx context.Context, s *entity.Session, f dto.OrderFilter) (*dto.OrderListResponse, error) {
	if err := policy.Authorize(s, policy.ActionViewTab, policy.Target{Tab: policy.TabOrders}); err != nil {
		return nil, err
	}
	filter, err := ToRangeFilter(f)
	if err != nil {
		return nil, err
	}
	orders, err := uc.repo.ListByCompany(ctx, s.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("listar pedidos: %w", err)
	}

	orders = timerange.Apply(orders, filter, uc.now().In(uc.loc))
	items := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		if f.Mine && o.CreatedBy != s.UserID {
			continue
		}
		if !textsearch.Matches(f.Query, o.Content, o.CreatorName) {
			continue
		}
		items = append(items, toOrderResponse(s, o))
	}
	return &dto.OrderListResponse{Items: items, Total: len(items)}, nil
}

// Transition cambia el estado del pedido al solicitado.
// Empleado: domain.ErrUnauthorized. Cambio no permitido: domain.ErrInvalidTransition.
func (uc *OrderUseCase) Transition(ctx context.Context, s *entity.Session, id string, requested entity.OrderStatus) (*dto.OrderResponse, error) {
	order, err := uc.load(ctx, s, id)
	if err != nil {
		return nil, err
	}
	return uc.transition(ctx, s, order, requested)
}

// Advance mueve el pedido un paso hacia adelante (DRAFT→PROCESSING→COMPLETED).
func (uc *OrderUseCase) Advance(ctx context.Context, s *entity.Session, id string) (*dto.OrderResponse, error) {
	order, err := uc.load(ctx, s, id)
	if err != nil {
		return nil, err
	}
	// Desde un estado terminal no hay siguiente: lifecycle rechaza el destino vacío.
	next, _ := lifecycle.Next(order.Status)
	return uc.transition(ctx, s, order, next)
}

// transition autoriza, valida y persiste el cambio sobre un pedido ya cargado.
func (uc *OrderUseCase) transition(ctx context.Context, s *entity.Session, order *entity.Order, requested entity.OrderStatus) (*dto.OrderResponse, error) {
	if err := policy.Authorize(s, policy.ActionTransitionOrder, policy.Target{Order: order}); err != nil {
		return nil, err
	}
	next, err := lifecycle.Transition(s, order.Status, requested)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateStatus(ctx, s.CompanyID, order.ID, order.Status, next); err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", order.ID).Str("from", string(order.Status)).Str("to", string(next)).Msg("pedido transicionado")
	uc.events.OrderTransitioned(s.CompanyID, string(next))
	order.Status = next
	resp := toOrderResponse(s, order)
	return &resp, nil
}

// Delete elimina el pedido. ADMIN cualquier estado; EMPLOYEE solo DRAFT.
// El borrado exige que el estado siga siendo el autorizado; si cambió entretanto se recarga
// y se vuelve a evaluar la política.
func (uc *OrderUseCase) Delete(ctx context.Context, s *entity.Session, id string) error {
	for attempt := 0; attempt < maxDeleteAttempts; attempt++ {
		order, err := uc.load(ctx, s, id)
		if err != nil {
			return err
		}
		if err := policy.Authorize(s, policy.ActionDeleteOrder, policy.Target{Order: order}); err != nil {
			return err
		}
		err = uc.repo.Delete(ctx, s.CompanyID, order.ID, order.Status)
		if errors.Is(err, domain.ErrStatusChanged) {
			continue
		}
		if err != nil {
			return err
		}
		uc.events.OrderDeleted(s.CompanyID)
		return nil
	}
	return domain.ErrStatusChanged
}

// load obtiene el pedido dentro de la empresa de la sesión.
func (uc *OrderUseCase) load(ctx context.Context, s *entity.Session, id string) (*entity.Order, error) {
	if s == nil || s.CompanyID == "" {
		return nil, domain.ErrUnauthorized
	}
	order, err := uc.repo.GetByID(ctx, s.CompanyID, id)
	if err != nil {
		return nil, fmt.Errorf("obtener pedido: %w", err)
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

// ToRangeFilter valida el rango de la query y lo convierte al filtro de dominio.
func ToRangeFilter(f dto.OrderFilter) (timerange.Filter, error) {
	r, err := timerange.ParseRange(f.Range)
	if err != nil {
		return timerange.Filter{}, err
	}
	return timerange.Filter{Range: r, Start: f.Start, End: f.End}, nil
}

func toOrderResponse(s *entity.Session, o *entity.Order) dto.OrderResponse {
	_, hasNext := lifecycle.Next(o.Status)
	return dto.OrderResponse{
		ID:          o.ID,
		CompanyID:   o.CompanyID,
		Content:     o.Content,
		Status:      string(o.Status),
		CreatedBy:   o.CreatedBy,
		CreatorName: o.CreatorName,
		CreatedAt:   o.CreatedAt.UnixMilli(),
		CanDelete:   policy.CanPerform(s, policy.ActionDeleteOrder, policy.Target{Order: o}),
		CanAdvance:  hasNext && policy.CanPerform(s, policy.ActionTransitionOrder, policy.Target{Order: o}),
	}
}
