package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrInvalidTransition  = errors.New("transición de estado inválida")
	ErrSelfDeletion       = errors.New("no puede eliminar su propio usuario")
	ErrExtractionFailed   = errors.New("no se pudo extraer el pedido del texto")
	ErrSessionExpired     = errors.New("sesión expirada o inexistente")
	ErrStaleSession       = errors.New("la sesión referencia una empresa o usuario que ya no existe")
	ErrStatusChanged      = errors.New("el estado del recurso cambió durante la operación")
)
