// Package metrics expone contadores Prometheus de los eventos de pedidos.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jhoicas/ordersync-api/internal/application/ports"
)

var _ ports.OrderEvents = (*OrderMetrics)(nil)

// OrderMetrics contadores de negocio. Implementa ports.OrderEvents.
type OrderMetrics struct {
	OrdersCreated       *prometheus.CounterVec
	OrdersTransitioned  *prometheus.CounterVec
	OrdersDeleted       *prometheus.CounterVec
	ExtractionFallbacks *prometheus.CounterVec
}

// NewOrderMetrics registra las métricas en reg. Con reg nil se usa el registro por defecto.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &OrderMetrics{
		OrdersCreated: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ordersync",
			Subsystem: "orders",
			Name:      "created_total",
			Help:      "Pedidos creados por empresa, según si el texto se estructuró.",
		}, []string{"company_id", "structured"}),
		OrdersTransitioned: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ordersync",
			Subsystem: "orders",
			Name:      "transitions_total",
			Help:      "Cambios de estado de pedidos por estado destino.",
		}, []string{"company_id", "to"}),
		OrdersDeleted: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ordersync",
			Subsystem: "orders",
			Name:      "deleted_total",
			Help:      "Pedidos eliminados por empresa.",
		}, []string{"company_id"}),
		ExtractionFallbacks: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ordersync",
			Subsystem: "extractor",
			Name:      "fallback_total",
			Help:      "Extracciones fallidas que guardaron el texto original.",
		}, []string{"reason"}), // reason: error, timeout, empty
	}
}

func (m *OrderMetrics) OrderCreated(companyID string, structured bool) {
	s := "false"
	if structured {
		s = "true"
	}
	m.OrdersCreated.WithLabelValues(companyID, s).Inc()
}

func (m *OrderMetrics) OrderTransitioned(companyID, to string) {
	m.OrdersTransitioned.WithLabelValues(companyID, to).Inc()
}

func (m *OrderMetrics) OrderDeleted(companyID string) {
	m.OrdersDeleted.WithLabelValues(companyID).Inc()
}

func (m *OrderMetrics) ExtractionFallback(reason string) {
	m.ExtractionFallbacks.WithLabelValues(reason).Inc()
}
