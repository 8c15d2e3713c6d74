package entity

import "time"

// Role rol de un usuario dentro de su empresa.
type Role string

// Roles válidos para User.
const (
	RoleAdmin    Role = "ADMIN"
	RoleEmployee Role = "EMPLOYEE"
)

// Valid indica si el rol es uno de los conocidos.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// User representa un usuario del sistema (pertenece a una Company).
// Phone es el identificador de login, único por empresa.
type User struct {
	ID           string
	CompanyID    string
	Name         string
	Phone        string
	Role         Role
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	AvatarURL    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin indica si el usuario tiene rol ADMIN.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
