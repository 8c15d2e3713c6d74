package usecase

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/ordersync-api/internal/application/auth"
	"github.com/jhoicas/ordersync-api/internal/application/dto"
	"github.com/jhoicas/ordersync-api/internal/application/ports"
	"github.com/jhoicas/ordersync-api/internal/domain"
	"github.com/jhoicas/ordersync-api/internal/domain/entity"
	"github.com/jhoicas/ordersync-api/internal/domain/repository"
	"github.com/jhoicas/ordersync-api/pkg/logger"
)

// CompanyUseCase aplica reglas de negocio para empresas (selección de tenant y registro).
type CompanyUseCase struct {
	repo            repository.CompanyRepository
	txRunner        ports.RegistrationTxRunner
	registrationKey string
	log             *logger.Logger
}

// NewCompanyUseCase construye el caso de uso. Con registrationKey vacío el registro queda deshabilitado.
func NewCompanyUseCase(
	repo repository.CompanyRepository,
	txRunner ports.RegistrationTxRunner,
	registrationKey string,
	log *logger.Logger,
) *CompanyUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &CompanyUseCase{repo: repo, txRunner: txRunner, registrationKey: registrationKey, log: log.Component("companies")}
}

// List lista las empresas disponibles para iniciar sesión.
func (uc *CompanyUseCase) List(ctx context.Context) (*dto.CompanyListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar empresas: %w", err)
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *entityToCompanyResponse(c))
	}
	return &dto.CompanyListResponse{Items: items}, nil
}

// GetByID obtiene una empresa por ID. Devuelve domain.ErrNotFound si no existe.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return entityToCompanyResponse(company), nil
}

// Register crea la empresa y su primer ADMIN en una sola transacción.
// Clave ausente o incorrecta: domain.ErrUnauthorized. Teléfono repetido: domain.ErrDuplicate.
func (uc *CompanyUseCase) Register(ctx context.Context, key string, in dto.RegisterCompanyRequest) (*dto.RegisterCompanyResponse, error) {
	if uc.registrationKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(uc.registrationKey)) != 1 {
		return nil, domain.ErrUnauthorized
	}
	in.Name = strings.TrimSpace(in.Name)
	in.AdminName = strings.TrimSpace(in.AdminName)
	in.AdminPhone = strings.TrimSpace(in.AdminPhone)
	if in.Name == "" || in.AdminName == "" || in.AdminPhone == "" || len(in.AdminPassword) < minPasswordLen {
		return nil, fmt.Errorf("%w: nombre, administrador, teléfono y contraseña (mín. %d) son obligatorios",
			domain.ErrInvalidInput, minPasswordLen)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	company := &entity.Company{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		LogoURL:     in.LogoURL,
		Color:       in.Color,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	admin := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    company.ID,
		Name:         in.AdminName,
		Phone:        in.AdminPhone,
		Role:         entity.RoleAdmin,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = uc.txRunner.RunRegistration(ctx, func(companies repository.CompanyRepository, users repository.UserRepository) error {
		if err := companies.Create(ctx, company); err != nil {
			return err
		}
		return users.Create(ctx, admin)
	})
	if err != nil {
		return nil, fmt.Errorf("registrar empresa: %w", err)
	}
	uc.log.Info().Str("company_id", company.ID).Str("name", company.Name).Msg("empresa registrada")
	return &dto.RegisterCompanyResponse{
		Company: *entityToCompanyResponse(company),
		Admin:   *auth.UserToResponse(admin),
	}, nil
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		LogoURL:     c.LogoURL,
		Color:       c.Color,
		CreatedAt:   c.CreatedAt,
	}
}
