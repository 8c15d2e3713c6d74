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

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

type companyRow struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	LogoURL     string `db:"logo_url"`
	Color       string `db:"color"`
	CreatedAt   int64  `db:"created_at"`
	UpdatedAt   int64  `db:"updated_at"`
}

func (r companyRow) toEntity() *entity.Company {
	return &entity.Company{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		LogoURL:     r.LogoURL,
		Color:       r.Color,
		CreatedAt:   fromMillis(r.CreatedAt),
		UpdatedAt:   fromMillis(r.UpdatedAt),
	}
}

const companyColumns = `id, name, description, logo_url, color, created_at, updated_at`

// CompanyRepo implementación de CompanyRepository sobre SQLite (usable con db o tx).
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de empresas.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Create persiste una nueva empresa.
func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO companies (`+companyColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Description, c.LogoURL, c.Color, toMillis(c.CreatedAt), toMillis(c.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID. (nil, nil) si no existe.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	var row companyRow
	err := r.q.GetContext(ctx, &row, `SELECT `+companyColumns+` FROM companies WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return row.toEntity(), nil
}

// List devuelve todas las empresas ordenadas por nombre.
func (r *CompanyRepo) List(ctx context.Context) ([]*entity.Company, error) {
	var rows []companyRow
	if err := r.q.SelectContext(ctx, &rows, `SELECT `+companyColumns+` FROM companies ORDER BY name, id`); err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	list := make([]*entity.Company, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.toEntity())
	}
	return list, nil
}

// Update actualiza los datos visibles de la empresa.
func (r *CompanyRepo) Update(ctx context.Context, c *entity.Company) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE companies SET name = ?, description = ?, logo_url = ?, color = ?, updated_at = ?
		WHERE id = ?`,
		c.Name, c.Description, c.LogoURL, c.Color, toMillis(c.UpdatedAt), c.ID,
	)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	return requireAffected(res)
}

// requireAffected devuelve domain.ErrNotFound si la sentencia no tocó ninguna fila.
func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
