package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/ordersync-api/internal/application/auth"
	"github.com/jhoicas/ordersync-api/internal/application/dto"
	"github.com/jhoicas/ordersync-api/internal/domain"
	"github.com/jhoicas/ordersync-api/internal/domain/entity"
	"github.com/jhoicas/ordersync-api/internal/domain/policy"
	"github.com/jhoicas/ordersync-api/internal/domain/repository"
	"github.com/jhoicas/ordersync-api/pkg/logger"
)

const (
	minPasswordLen = 4
	// maxImageLen límite de imágenes y avatares (URL o data URL).
	maxImageLen = 2 << 20
)

// UserUseCase gestión del roster de empleados y del propio perfil.
type UserUseCase struct {
	repo     repository.UserRepository
	sessions repository.SessionRepository
	log      *logger.Logger
}

// NewUserUseCase construye el caso de uso. sessions se usa para re-sincronizar el perfil en la sesión.
func NewUserUseCase(repo repository.UserRepository, sessions repository.SessionRepository, log *logger.Logger) *UserUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UserUseCase{repo: repo, sessions: sessions, log: log.Component("users")}
}

// List devuelve los usuarios de la empresa de la sesión (solo ADMIN).
func (uc *UserUseCase) List(ctx context.Context, s *entity.Session) (*dto.UserListResponse, error) {
	if err := policy.Authorize(s, policy.ActionListUsers, policy.Target{}); err != nil {
		return nil, err
	}
	users, err := uc.repo.ListByCompany(ctx, s.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("listar usuarios: %w", err)
	}
	items := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, *auth.UserToResponse(u))
	}
	return &dto.UserListResponse{Items: items}, nil
}

// Create invita un usuario a la empresa de la sesión. El rol por defecto es EMPLOYEE.
func (uc *UserUseCase) Create(ctx context.Context, s *entity.Session, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := policy.Authorize(s, policy.ActionCreateUser, policy.Target{}); err != nil {
		return nil, err
	}
	role := entity.Role(strings.ToUpper(strings.TrimSpace(in.Role)))
	if role == "" {
		role = entity.RoleEmployee
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	switch {
	case !role.Valid():
		return nil, fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, in.Role)
	case in.Name == "" || in.Phone == "":
		return nil, fmt.Errorf("%w: nombre y teléfono son obligatorios", domain.ErrInvalidInput)
	case len(in.Password) < minPasswordLen:
		return nil, fmt.Errorf("%w: la contraseña debe tener al menos %d caracteres", domain.ErrInvalidInput, minPasswordLen)
	case len(in.AvatarURL) > maxImageLen:
		return nil, fmt.Errorf("%w: avatar demasiado grande", domain.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    s.CompanyID,
		Name:         in.Name,
		Phone:        in.Phone,
		Role:         role,
		PasswordHash: string(hash),
		AvatarURL:    in.AvatarURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("company_id", s.CompanyID).Str("user_id", user.ID).Str("role", string(role)).Msg("usuario creado")
	return auth.UserToResponse(user), nil
}

// Delete elimina un usuario de la empresa. El propio usuario nunca: domain.ErrSelfDeletion.
// Los pedidos conservan el nombre del creador.
func (uc *UserUseCase) Delete(ctx context.Context, s *entity.Session, id string) error {
	if err := policy.Authorize(s, policy.ActionDeleteUser, policy.Target{UserID: id}); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, s.CompanyID, id); err != nil {
		return err
	}
	uc.log.Info().Str("company_id", s.CompanyID).Str("user_id", id).Msg("usuario eliminado")
	return nil
}

// GetProfile devuelve el usuario de la sesión.
func (uc *UserUseCase) GetProfile(ctx context.Context, s *entity.Session) (*dto.UserResponse, error) {
	if err := policy.Authorize(s, policy.ActionViewProfile, policy.Target{}); err != nil {
		return nil, err
	}
	user, err := uc.self(ctx, s)
	if err != nil {
		return nil, err
	}
	return auth.UserToResponse(user), nil
}

// UpdateProfile cambia nombre y/o avatar del propio usuario y re-sincroniza la sesión.
func (uc *UserUseCase) UpdateProfile(ctx context.Context, s *entity.Session, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	if err := policy.Authorize(s, policy.ActionUpdateProfile, policy.Target{}); err != nil {
		return nil, err
	}
	user, err := uc.self(ctx, s)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: el nombre no puede estar vacío", domain.ErrInvalidInput)
		}
		user.Name = name
	}
	if in.AvatarURL != nil {
		if len(*in.AvatarURL) > maxImageLen {
			return nil, fmt.Errorf("%w: avatar demasiado grande", domain.ErrInvalidInput)
		}
		user.AvatarURL = *in.AvatarURL
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	if s.UserName != user.Name && uc.sessions != nil {
		s.UserName = user.Name
		if err := uc.sessions.Save(ctx, s); err != nil {
			return nil, fmt.Errorf("sincronizar sesión: %w", err)
		}
	}
	return auth.UserToResponse(user), nil
}

func (uc *UserUseCase) self(ctx context.Context, s *entity.Session) (*entity.User, error) {
	user, err := uc.repo.GetByID(ctx, s.CompanyID, s.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return user, nil
}
