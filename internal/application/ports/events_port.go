package ports

// OrderEvents recibe los eventos de negocio que se exponen como métricas.
type OrderEvents interface {
	OrderCreated(companyID string, structured bool)
	OrderTransitioned(companyID, to string)
	OrderDeleted(companyID string)
	ExtractionFallback(reason string)
}

// NopOrderEvents implementación vacía.
type NopOrderEvents struct{}

func (NopOrderEvents) OrderCreated(string, bool)        {}
func (NopOrderEvents) OrderTransitioned(string, string) {}
func (NopOrderEvents) OrderDeleted(string)              {}
func (NopOrderEvents) ExtractionFallback(string)        {}
