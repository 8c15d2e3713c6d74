package entity

import "time"

// Company representa una organización/tenant del sistema (tienda). Todo dato de negocio
// pertenece exactamente a una Company.
type Company struct {
	ID          string
	Name        string
	Description string
	LogoURL     string // URL o data URL del logo que se muestra en la selección de empresa
	Color       string // color de marca, ej. "#e11d48"
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
