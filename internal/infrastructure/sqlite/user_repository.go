package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/ordersync-api/internal/domain"
	"github.com/jhoicas/ordersync-api/internal/domain/entity"
	"github.com/jhoicas/ordersync-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

type userRow struct {
	ID           string `db:"id"`
	CompanyID    string `db:"company_id"`
	Name         string `db:"name"`
	Phone        string `db:"phone"`
	Role         string `db:"role"`
	PasswordHash string `db:"password_hash"`
	AvatarURL    string `db:"avatar_url"`
	CreatedAt    int64  `db:"created_at"`
	UpdatedAt    int64  `db:"updated_at"`
}

func (r userRow) toEntity() *entity.User {
	return &entity.User{
		ID:           r.ID,
		CompanyID:    r.CompanyID,
		Name:         r.Name,
		Phone:        r.Phone,
		Role:         entity.Role(r.Role),
		PasswordHash: r.PasswordHash,
		AvatarURL:    r.AvatarURL,
		CreatedAt:    fromMillis(r.CreatedAt),
		UpdatedAt:    fromMillis(r.UpdatedAt),
	}
}

const userColumns = `id, company_id, name, phone, role, password_hash, avatar_url, created_at, updated_at`

// UserRepo implementación de UserRepository sobre SQLite.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario. Teléfono repetido en la empresa: domain.ErrDuplicate.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.CompanyID, u.Name, u.Phone, string(u.Role), u.PasswordHash, u.AvatarURL,
		toMillis(u.CreatedAt), toMillis(u.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario de la empresa por ID.
func (r *UserRepo) GetByID(ctx context.Context, companyID, id string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE company_id = ? AND id = ?`, companyID, id)
}

// GetByPhone obtiene un usuario de la empresa por teléfono.
func (r *UserRepo) GetByPhone(ctx context.Context, companyID, phone string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE company_id = ? AND phone = ?`, companyID, phone)
}

func (r *UserRepo) getOne(ctx context.Context, query string, args ...interface{}) (*entity.User, error) {
	var row userRow
	if err := r.q.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return row.toEntity(), nil
}

// ListByCompany lista los usuarios de la empresa por nombre.
func (r *UserRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.User, error) {
	var rows []userRow
	err := r.q.SelectContext(ctx, &rows,
		`SELECT `+userColumns+` FROM users WHERE company_id = ? ORDER BY name, id`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	list := make([]*entity.User, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.toEntity())
	}
	return list, nil
}

// Update actualiza nombre, teléfono, rol, password y avatar.
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE users SET name = ?, phone = ?, role = ?, password_hash = ?, avatar_url = ?, updated_at = ?
		WHERE company_id = ? AND id = ?`,
		u.Name, u.Phone, string(u.Role), u.PasswordHash, u.AvatarURL, toMillis(u.UpdatedAt), u.CompanyID, u.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update user: %w", err)
	}
	return requireAffected(res)
}

// Delete elimina un usuario de la empresa.
func (r *UserRepo) Delete(ctx context.Context, companyID, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM users WHERE company_id = ? AND id = ?`, companyID, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return requireAffected(res)
}
