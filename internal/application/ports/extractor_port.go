package ports

import (
	"context"

	"github.com/jhoicas/ordersync-api/internal/application/dto"
)

// OrderTextExtractor puerto de salida hacia el servicio de IA que estructura pedidos.
// Cualquier adaptador (Gemini, Anthropic, mock) debe implementarlo.
// El contexto lleva el timeout; un error o un resultado sin nombre se trata como fallo
// de extracción y el pedido se guarda con el texto original.
type OrderTextExtractor interface {
	ExtractOrder(ctx context.Context, raw string) (*dto.ExtractedOrder, error)
}
