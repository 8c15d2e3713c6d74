package ports

import (
	"context"

	"github.com/jhoicas/ordersync-api/internal/domain/repository"
)

// RegistrationTxRunner ejecuta el alta de empresa + primer ADMIN en una sola transacción.
type RegistrationTxRunner interface {
	RunRegistration(ctx context.Context, fn func(
		companyRepo repository.CompanyRepository,
		userRepo repository.UserRepository,
	) error) error
}
