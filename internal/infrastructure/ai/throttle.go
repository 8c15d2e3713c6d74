package ai

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/jhoicas/ordersync-api/internal/application/dto"
	"github.com/jhoicas/ordersync-api/internal/application/ports"
)

var _ ports.OrderTextExtractor = (*ThrottledExtractor)(nil)

// ThrottledExtractor limita la tasa de llamadas al proveedor de IA.
// Si el contexto vence esperando turno, devuelve error y el pedido cae al texto original.
type ThrottledExtractor struct {
	next    ports.OrderTextExtractor
	limiter *rate.Limiter
}

// NewThrottledExtractor permite perMinute llamadas por minuto (ráfaga de 1). perMinute <= 0 no limita.
func NewThrottledExtractor(next ports.OrderTextExtractor, perMinute int) *ThrottledExtractor {
	limit := rate.Inf
	if perMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(perMinute))
	}
	return &ThrottledExtractor{next: next, limiter: rate.NewLimiter(limit, 1)}
}

// ExtractOrder espera turno y delega en el extractor envuelto.
func (t *ThrottledExtractor) ExtractOrder(ctx context.Context, raw string) (*dto.ExtractedOrder, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("AI: límite de tasa: %w", err)
	}
	return t.next.ExtractOrder(ctx, raw)
}
