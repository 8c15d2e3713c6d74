package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/ordersync-api/internal/application/dto"
	"github.com/jhoicas/ordersync-api/internal/domain"
	"github.com/jhoicas/ordersync-api/internal/domain/entity"
	"github.com/jhoicas/ordersync-api/internal/domain/policy"
	"github.com/jhoicas/ordersync-api/internal/domain/repository"
	"github.com/jhoicas/ordersync-api/pkg/jwt"
	"github.com/jhoicas/ordersync-api/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de sesión: login, restauración y logout.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	sessions    repository.SessionRepository
	jwtCfg      JWTConfig
	log         *logger.Logger
	now         func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	sessions repository.SessionRepository,
	jwtCfg JWTConfig,
	log *logger.Logger,
) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		sessions:    sessions,
		jwtCfg:      jwtCfg,
		log:         log.Component("auth"),
		now:         time.Now,
	}
}

// Login verifica teléfono/password dentro de la empresa elegida, abre la sesión y emite el JWT.
// Empresa inexistente: domain.ErrNotFound. Usuario o password incorrectos: domain.ErrInvalidCredentials.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	company, err := uc.companyRepo.GetByID(ctx, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	user, err := uc.userRepo.GetByPhone(ctx, company.ID, in.Phone)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	now := uc.now()
	session := &entity.Session{
		ID:        uuid.New().String(),
		CompanyID: company.ID,
		UserID:    user.ID,
		UserName:  user.Name,
		Role:      user.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(time.Duration(uc.jwtCfg.ExpMinutes) * time.Minute),
	}
	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("guardar sesión: %w", err)
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, session.ID, user.ID, company.ID, string(user.Role), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		_ = uc.sessions.Delete(ctx, session.ID)
		return nil, err
	}
	uc.log.Info().Str("company_id", company.ID).Str("user_id", user.ID).Msg("sesión iniciada")
	return &dto.LoginResponse{
		Token:   token,
		Session: SessionToResponse(session),
		User:    *UserToResponse(user),
	}, nil
}

// Restore reconstruye la sesión a partir de los claims del token.
// La empresa y el usuario referenciados deben seguir existiendo; si no, la sesión se
// elimina y se devuelve domain.ErrStaleSession. El nombre y el rol se re-sincronizan.
func (uc *AuthUseCase) Restore(ctx context.Context, claims *jwt.Claims) (*entity.Session, error) {
	if claims == nil || claims.SessionID == "" {
		return nil, domain.ErrSessionExpired
	}
	s, err := uc.sessions.Load(ctx, claims.SessionID)
	if err != nil {
		return nil, err
	}
	if s == nil || s.CompanyID != claims.CompanyID || s.UserID != claims.UserID {
		return nil, domain.ErrSessionExpired
	}
	if s.Expired(uc.now()) {
		_ = uc.sessions.Delete(ctx, s.ID)
		return nil, domain.ErrSessionExpired
	}

	company, err := uc.companyRepo.GetByID(ctx, s.CompanyID)
	if err != nil {
		return nil, err
	}
	var user *entity.User
	if company != nil {
		if user, err = uc.userRepo.GetByID(ctx, s.CompanyID, s.UserID); err != nil {
			return nil, err
		}
	}
	if company == nil || user == nil {
		uc.log.Warn().Str("session_id", s.ID).Str("company_id", s.CompanyID).Str("user_id", s.UserID).
			Msg("sesión obsoleta descartada")
		_ = uc.sessions.Delete(ctx, s.ID)
		return nil, domain.ErrStaleSession
	}

	if user.Name != s.UserName || user.Role != s.Role {
		s.UserName = user.Name
		s.Role = user.Role
		if err := uc.sessions.Save(ctx, s); err != nil {
			return nil, fmt.Errorf("sincronizar sesión: %w", err)
		}
	}
	return s, nil
}

// Logout elimina la sesión (identidad y empresa).
func (uc *AuthUseCase) Logout(ctx context.Context, s *entity.Session) error {
	if s == nil {
		return nil
	}
	if err := uc.sessions.Delete(ctx, s.ID); err != nil {
		return fmt.Errorf("cerrar sesión: %w", err)
	}
	uc.log.Info().Str("company_id", s.CompanyID).Str("user_id", s.UserID).Msg("sesión cerrada")
	return nil
}

// SessionToResponse vista pública de la sesión con las pestañas visibles para su rol.
func SessionToResponse(s *entity.Session) dto.SessionResponse {
	tabs := policy.VisibleTabs(s.Role)
	names := make([]string, 0, len(tabs))
	for _, t := range tabs {
		names = append(names, string(t))
	}
	return dto.SessionResponse{
		ID:          s.ID,
		CompanyID:   s.CompanyID,
		UserID:      s.UserID,
		UserName:    s.UserName,
		Role:        string(s.Role),
		VisibleTabs: names,
		ExpiresAt:   s.ExpiresAt,
	}
}

// UserToResponse convierte la entidad a su DTO (sin password).
func UserToResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		Name:      u.Name,
		Phone:     u.Phone,
		Role:      string(u.Role),
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
	}
}
