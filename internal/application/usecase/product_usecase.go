package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ordersync-api/internal/application/dto"
	"github.com/jhoicas/ordersync-api/internal/domain"
	"github.com/jhoicas/ordersync-api/internal/domain/entity"
	"github.com/jhoicas/ordersync-api/internal/domain/policy"
	"github.com/jhoicas/ordersync-api/internal/domain/repository"
	"github.com/jhoicas/ordersync-api/pkg/textsearch"
)

// ProductUseCase casos de uso CRUD del catálogo. Ver: todos los roles; modificar: solo ADMIN.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// List lista los productos de la empresa; q busca en nombre y categoría.
func (uc *ProductUseCase) List(ctx context.Context, s *entity.Session, q string) (*dto.ProductListResponse, error) {
	if err := policy.Authorize(s, policy.ActionViewProducts, policy.Target{}); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByCompany(ctx, s.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		if textsearch.Matches(q, p.Name, p.Category) {
			items = append(items, *toProductResponse(p))
		}
	}
	return &dto.ProductListResponse{Items: items}, nil
}

// GetByID obtiene un producto de la empresa.
func (uc *ProductUseCase) GetByID(ctx context.Context, s *entity.Session, id string) (*dto.ProductResponse, error) {
	if err := policy.Authorize(s, policy.ActionViewProducts, policy.Target{}); err != nil {
		return nil, err
	}
	product, err := uc.load(ctx, s, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Create crea un producto. Precios negativos: domain.ErrInvalidInput.
func (uc *ProductUseCase) Create(ctx context.Context, s *entity.Session, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := policy.Authorize(s, policy.ActionCreateProduct, policy.Target{}); err != nil {
		return nil, err
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		CompanyID:     s.CompanyID,
		Name:          strings.TrimSpace(in.Name),
		Category:      strings.TrimSpace(in.Category),
		SalePrice:     in.SalePrice,
		PurchasePrice: in.PurchasePrice,
		Image:         in.Image,
		Description:   in.Description,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update aplica los campos presentes en la entrada.
func (uc *ProductUseCase) Update(ctx context.Context, s *entity.Session, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := policy.Authorize(s, policy.ActionUpdateProduct, policy.Target{}); err != nil {
		return nil, err
	}
	product, err := uc.load(ctx, s, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Category != nil {
		product.Category = strings.TrimSpace(*in.Category)
	}
	if in.SalePrice != nil {
		product.SalePrice = *in.SalePrice
	}
	if in.PurchasePrice != nil {
		product.PurchasePrice = *in.PurchasePrice
	}
	if in.Image != nil {
		product.Image = *in.Image
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto de la empresa.
func (uc *ProductUseCase) Delete(ctx context.Context, s *entity.Session, id string) error {
	if err := policy.Authorize(s, policy.ActionDeleteProduct, policy.Target{}); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, s.CompanyID, id)
}

func (uc *ProductUseCase) load(ctx context.Context, s *entity.Session, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, s.CompanyID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

func validateProduct(p *entity.Product) error {
	switch {
	case p.Name == "":
		return fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	case p.SalePrice.LessThan(decimal.Zero) || p.PurchasePrice.LessThan(decimal.Zero):
		return fmt.Errorf("%w: los precios no pueden ser negativos", domain.ErrInvalidInput)
	case len(p.Image) > maxImageLen:
		return fmt.Errorf("%w: imagen demasiado grande", domain.ErrInvalidInput)
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID,
		CompanyID:     p.CompanyID,
		Name:          p.Name,
		Category:      p.Category,
		SalePrice:     p.SalePrice,
		PurchasePrice: p.PurchasePrice,
		Image:         p.Image,
		Description:   p.Description,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
