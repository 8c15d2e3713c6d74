// Package storage arma los repositorios según el driver configurado (PostgreSQL o SQLite).
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/ordersync-api/internal/application/ports"
	"github.com/jhoicas/ordersync-api/internal/domain/repository"
	"github.com/jhoicas/ordersync-api/internal/infrastructure/postgres"
	"github.com/jhoicas/ordersync-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/ordersync-api/pkg/config"
)

// Stores repositorios de la aplicación sobre un mismo backend.
type Stores struct {
	Companies repository.CompanyRepository
	Users     repository.UserRepository
	Orders    repository.OrderRepository
	Products  repository.ProductRepository
	TxRunner  ports.RegistrationTxRunner

	close func()
}

// Close libera la conexión subyacente.
func (s *Stores) Close() {
	if s.close != nil {
		s.close()
	}
}

// Open conecta al backend de cfg.Storage.Driver y aplica las migraciones pendientes.
func Open(ctx context.Context, cfg *config.Config) (*Stores, error) {
	switch cfg.Storage.Driver {
	case config.StorageSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		return &Stores{
			Companies: sqlite.NewCompanyRepository(db),
			Users:     sqlite.NewUserRepository(db),
			Orders:    sqlite.NewOrderRepository(db),
			Products:  sqlite.NewProductRepository(db),
			TxRunner:  sqlite.NewTxRunner(db),
			close:     func() { _ = db.Close() },
		}, nil

	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &Stores{
			Companies: postgres.NewCompanyRepository(pool),
			Users:     postgres.NewUserRepository(pool),
			Orders:    postgres.NewOrderRepository(pool),
			Products:  postgres.NewProductRepository(pool),
			TxRunner:  postgres.NewTxRunner(pool),
			close:     pool.Close,
		}, nil
	}
	return nil, fmt.Errorf("storage: driver desconocido %q", cfg.Storage.Driver)
}
