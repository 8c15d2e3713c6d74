package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ordersync-api/internal/domain/entity"
	"github.com/jhoicas/ordersync-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// productRow los precios se guardan como TEXT; decimal.Decimal implementa Scanner y Valuer.
type productRow struct {
	ID            string          `db:"id"`
	CompanyID     string          `db:"company_id"`
	Name          string          `db:"name"`
	Category      string          `db:"category"`
	SalePrice     decimal.Decimal `db:"sale_price"`
	PurchasePrice decimal.Decimal `db:"purchase_price"`
	Image         string          `db:"image"`
	Description   string          `db:"description"`
	CreatedAt     int64           `db:"created_at"`
	UpdatedAt     int64           `db:"updated_at"`
}

func (r productRow) toEntity() *entity.Product {
	return &entity.Product{
		ID:            r.ID,
		CompanyID:     r.CompanyID,
		Name:          r.Name,
		Category:      r.Category,
		SalePrice:     r.SalePrice,
		PurchasePrice: r.PurchasePrice,
		Image:         r.Image,
		Description:   r.Description,
		CreatedAt:     fromMillis(r.CreatedAt),
		UpdatedAt:     fromMillis(r.UpdatedAt),
	}
}

const productColumns = `id, company_id, name, category, sale_price, purchase_price, image, description, created_at, updated_at`

// ProductRepo implementación de ProductRepository sobre SQLite.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de productos.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.CompanyID, p.Name, p.Category, p.SalePrice.String(), p.PurchasePrice.String(),
		p.Image, p.Description, toMillis(p.CreatedAt), toMillis(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto de la empresa.
func (r *ProductRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Product, error) {
	var row productRow
	err := r.q.GetContext(ctx, &row, `SELECT `+productColumns+` FROM products WHERE company_id = ? AND id = ?`, companyID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return row.toEntity(), nil
}

// ListByCompany lista los productos de la empresa por nombre.
func (r *ProductRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.Product, error) {
	var rows []productRow
	err := r.q.SelectContext(ctx, &rows,
		`SELECT `+productColumns+` FROM products WHERE company_id = ? ORDER BY name, id`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	list := make([]*entity.Product, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.toEntity())
	}
	return list, nil
}

// Update actualiza un producto de la empresa.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE products SET name = ?, category = ?, sale_price = ?, purchase_price = ?,
			image = ?, description = ?, updated_at = ?
		WHERE company_id = ? AND id = ?`,
		p.Name, p.Category, p.SalePrice.String(), p.PurchasePrice.String(),
		p.Image, p.Description, toMillis(p.UpdatedAt), p.CompanyID, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return requireAffected(res)
}

// Delete elimina un producto de la empresa.
func (r *ProductRepo) Delete(ctx context.Context, companyID, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM products WHERE company_id = ? AND id = ?`, companyID, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return requireAffected(res)
}
