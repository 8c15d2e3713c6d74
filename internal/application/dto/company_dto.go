package dto

import "time"

// RegisterCompanyRequest entrada del registro super-admin: empresa más su primer ADMIN.
type RegisterCompanyRequest struct {
	Name          string `json:"name" validate:"required,min=1,max=200"`
	Description   string `json:"description"`
	LogoURL       string `json:"logo_url"`
	Color         string `json:"color"`
	AdminName     string `json:"admin_name" validate:"required"`
	AdminPhone    string `json:"admin_phone" validate:"required"`
	AdminPassword string `json:"admin_password" validate:"required,min=4"`
}

// RegisterCompanyResponse empresa creada y su administrador inicial.
type RegisterCompanyResponse struct {
	Company CompanyResponse `json:"company"`
	Admin   UserResponse    `json:"admin"`
}

// CompanyResponse salida de una empresa (lo que se muestra en la selección de tenant).
type CompanyResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	LogoURL     string    `json:"logo_url"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"created_at"`
}

// CompanyListResponse lista de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
}
