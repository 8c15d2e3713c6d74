package dto

import "time"

// LoginRequest entrada para login: empresa elegida + teléfono + contraseña.
type LoginRequest struct {
	CompanyID string `json:"company_id" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
	Password  string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT, sesión y usuario.
type LoginResponse struct {
	Token   string          `json:"token"`
	Session SessionResponse `json:"session"`
	User    UserResponse    `json:"user"`
}

// SessionResponse vista pública de la sesión activa.
type SessionResponse struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	UserID      string    `json:"user_id"`
	UserName    string    `json:"user_name"`
	Role        string    `json:"role"`
	VisibleTabs []string  `json:"visible_tabs"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// CreateUserRequest entrada para invitar un usuario (password en texto, se hashea en use case).
type CreateUserRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=200"`
	Phone     string `json:"phone" validate:"required"`
	Password  string `json:"password" validate:"required,min=4"`
	Role      string `json:"role" validate:"omitempty,oneof=ADMIN EMPLOYEE"`
	AvatarURL string `json:"avatar_url"`
}

// UpdateProfileRequest cambios permitidos sobre el propio perfil.
type UpdateProfileRequest struct {
	Name      *string `json:"name"`
	AvatarURL *string `json:"avatar_url"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	AvatarURL string    `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
}

// UserListResponse roster de la empresa.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
}
