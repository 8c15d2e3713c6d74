package entity

import "time"

// Session contexto explícito de una petición autenticada: exactamente una empresa
// y una identidad. Se crea en el login y se elimina en el logout.
type Session struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsAdmin indica si la identidad de la sesión es ADMIN.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

// Expired indica si la sesión ya venció respecto a now.
func (s *Session) Expired(now time.Time) bool {
	return s == nil || (!s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt))
}
