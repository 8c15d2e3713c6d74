package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ordersync-api/internal/domain"
	"github.com/jhoicas/ordersync-api/internal/domain/entity"
	"github.com/jhoicas/ordersync-api/internal/domain/repository"
	"github.com/jhoicas/ordersync-api/internal/infrastructure/sqlite"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func openDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlite.Open(context.Background(), ":memory:")
	require.NoError(t, err, "debe abrirse la base en memoria")
	t.Cleanup(func() { _ = db.Close() })
	return db
}

var base = time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

func seedCompany(t *testing.T, db *sqlx.DB, id, name string) *entity.Company {
	t.Helper()
	c := &entity.Company{ID: id, Name: name, Color: "#e11d48", CreatedAt: base, UpdatedAt: base}
	require.NoError(t, sqlite.NewCompanyRepository(db).Create(context.Background(), c))
	return c
}

// ──────────────────────────────────────────────────────────────────────────────
// Migraciones
// ──────────────────────────────────────────────────────────────────────────────

func TestMigrate_Idempotente(t *testing.T) {
	db := openDB(t)
	require.NoError(t, sqlite.Migrate(context.Background(), db), "reaplicar migraciones no debe fallar")

	var n int
	require.NoError(t, db.Get(&n, `SELECT COUNT(1) FROM schema_migrations`))
	assert.Equal(t, 1, n)
}

// ──────────────────────────────────────────────────────────────────────────────
// Companies / Users
// ──────────────────────────────────────────────────────────────────────────────

func TestCompanyRepo_CRUD(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	repo := sqlite.NewCompanyRepository(db)

	seedCompany(t, db, "c-rose", "Roseworld")
	seedCompany(t, db, "c-res", "Resevalley")

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Resevalley", list[0].Name, "ordenadas por nombre")

	got, err := repo.GetByID(ctx, "c-rose")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "#e11d48", got.Color)
	assert.True(t, got.CreatedAt.Equal(base))

	missing, err := repo.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing, "inexistente devuelve (nil, nil)")

	got.Description = "Flores"
	require.NoError(t, repo.Update(ctx, got))
	assert.ErrorIs(t, repo.Update(ctx, &entity.Company{ID: "nope"}), domain.ErrNotFound)
}

func TestUserRepo_AcotadoPorEmpresa(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	seedCompany(t, db, "c1", "Uno")
	seedCompany(t, db, "c2", "Dos")
	repo := sqlite.NewUserRepository(db)

	u := &entity.User{ID: "u1", CompanyID: "c1", Name: "Ana", Phone: "300", Role: entity.RoleAdmin, PasswordHash: "h", CreatedAt: base, UpdatedAt: base}
	require.NoError(t, repo.Create(ctx, u))

	dup := *u
	dup.ID = "u2"
	assert.ErrorIs(t, repo.Create(ctx, &dup), domain.ErrDuplicate, "mismo teléfono en la misma empresa")

	other := *u
	other.ID = "u3"
	other.CompanyID = "c2"
	require.NoError(t, repo.Create(ctx, &other), "mismo teléfono en otra empresa es válido")

	got, err := repo.GetByPhone(ctx, "c1", "300")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "u1", got.ID)
	assert.Equal(t, entity.RoleAdmin, got.Role)

	cross, err := repo.GetByID(ctx, "c2", "u1")
	require.NoError(t, err)
	assert.Nil(t, cross, "un usuario no es visible desde otra empresa")

	assert.ErrorIs(t, repo.Delete(ctx, "c2", "u1"), domain.ErrNotFound)
	require.NoError(t, repo.Delete(ctx, "c1", "u1"))

	list, err := repo.ListByCompany(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

// ──────────────────────────────────────────────────────────────────────────────
// Orders
// ──────────────────────────────────────────────────────────────────────────────

func TestOrderRepo_ListaRecientesPrimeroYAcotada(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	seedCompany(t, db, "c1", "Uno")
	seedCompany(t, db, "c2", "Dos")
	repo := sqlite.NewOrderRepository(db)

	for i, id := range []string{"o-viejo", "o-medio", "o-nuevo"} {
		require.NoError(t, repo.Create(ctx, &entity.Order{
			ID: id, CompanyID: "c1", Content: id, Status: entity.OrderStatusDraft,
			CreatedBy: "u1", CreatorName: "Ana", CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}
	require.NoError(t, repo.Create(ctx, &entity.Order{
		ID: "o-ajeno", CompanyID: "c2", Content: "x", Status: entity.OrderStatusDraft, CreatedAt: base,
	}))

	list, err := repo.ListByCompany(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "o-nuevo", list[0].ID)
	assert.Equal(t, "o-viejo", list[2].ID)
	assert.Equal(t, "Ana", list[0].CreatorName)
	assert.Equal(t, base.Add(2*time.Hour).UnixMilli(), list[0].CreatedAt.UnixMilli())
}

func TestOrderRepo_UpdateStatusCompareAndSet(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	seedCompany(t, db, "c1", "Uno")
	repo := sqlite.NewOrderRepository(db)
	require.NoError(t, repo.Create(ctx, &entity.Order{ID: "o1", CompanyID: "c1", Content: "x", Status: entity.OrderStatusDraft, CreatedAt: base}))

	require.NoError(t, repo.UpdateStatus(ctx, "c1", "o1", entity.OrderStatusDraft, entity.OrderStatusProcessing))

	err := repo.UpdateStatus(ctx, "c1", "o1", entity.OrderStatusDraft, entity.OrderStatusProcessing)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "el estado ya no es el esperado")

	err = repo.UpdateStatus(ctx, "c1", "no-existe", entity.OrderStatusDraft, entity.OrderStatusProcessing)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = repo.UpdateStatus(ctx, "otra", "o1", entity.OrderStatusProcessing, entity.OrderStatusCompleted)
	assert.ErrorIs(t, err, domain.ErrNotFound, "otra empresa no ve el pedido")

	got, err := repo.GetByID(ctx, "c1", "o1")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusProcessing, got.Status)

	assert.ErrorIs(t, repo.Delete(ctx, "c1", "o1", entity.OrderStatusDraft), domain.ErrStatusChanged,
		"ya no está en DRAFT")
	got, err = repo.GetByID(ctx, "c1", "o1")
	require.NoError(t, err)
	require.NotNil(t, got, "el borrado condicionado no toca el pedido")

	assert.ErrorIs(t, repo.Delete(ctx, "otra", "o1", entity.OrderStatusProcessing), domain.ErrNotFound)
	require.NoError(t, repo.Delete(ctx, "c1", "o1", entity.OrderStatusProcessing))
	assert.ErrorIs(t, repo.Delete(ctx, "c1", "o1", entity.OrderStatusProcessing), domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Products
// ──────────────────────────────────────────────────────────────────────────────

func TestProductRepo_PreciosDecimales(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	seedCompany(t, db, "c1", "Uno")
	repo := sqlite.NewProductRepository(db)

	p := &entity.Product{
		ID: "p1", CompanyID: "c1", Name: "Rosa roja", Category: "Flores",
		SalePrice: decimal.RequireFromString("12500.50"), PurchasePrice: decimal.RequireFromString("8000"),
		CreatedAt: base, UpdatedAt: base,
	}
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.GetByID(ctx, "c1", "p1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.SalePrice.Equal(decimal.RequireFromString("12500.5")), "got %s", got.SalePrice)
	assert.True(t, got.Margin().Equal(decimal.RequireFromString("4500.5")))

	got.SalePrice = decimal.NewFromInt(13000)
	require.NoError(t, repo.Update(ctx, got))
	list, err := repo.ListByCompany(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].SalePrice.Equal(decimal.NewFromInt(13000)))

	assert.ErrorIs(t, repo.Delete(ctx, "c2", "p1"), domain.ErrNotFound)
	require.NoError(t, repo.Delete(ctx, "c1", "p1"))
}

// ──────────────────────────────────────────────────────────────────────────────
// TxRunner
// ──────────────────────────────────────────────────────────────────────────────

func TestTxRunner_RollbackAlFallar(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	runner := sqlite.NewTxRunner(db)
	boom := errors.New("boom")

	err := runner.RunRegistration(ctx, func(companies repository.CompanyRepository, users repository.UserRepository) error {
		require.NoError(t, companies.Create(ctx, &entity.Company{ID: "c1", Name: "Uno", CreatedAt: base, UpdatedAt: base}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := sqlite.NewCompanyRepository(db).GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Nil(t, got, "la empresa no debe persistir tras el rollback")
}

func TestTxRunner_Commit(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	runner := sqlite.NewTxRunner(db)

	err := runner.RunRegistration(ctx, func(companies repository.CompanyRepository, users repository.UserRepository) error {
		if err := companies.Create(ctx, &entity.Company{ID: "c1", Name: "Uno", CreatedAt: base, UpdatedAt: base}); err != nil {
			return err
		}
		return users.Create(ctx, &entity.User{ID: "u1", CompanyID: "c1", Name: "Ana", Phone: "1", Role: entity.RoleAdmin, PasswordHash: "h", CreatedAt: base, UpdatedAt: base})
	})
	require.NoError(t, err)

	u, err := sqlite.NewUserRepository(db).GetByID(ctx, "c1", "u1")
	require.NoError(t, err)
	assert.NotNil(t, u)
}
