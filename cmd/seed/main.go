// seed crea las empresas de demostración (Resevalley y Roseworld) con un ADMIN y un EMPLOYEE cada una.
// Es idempotente: una empresa que ya existe se omite.
//
// Uso: go run ./cmd/seed <password>
// Usa el mismo STORAGE_DRIVER / DATABASE_URL / SQLITE_PATH que la API.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/ordersync-api/internal/domain/entity"
	"github.com/jhoicas/ordersync-api/internal/domain/repository"
	"github.com/jhoicas/ordersync-api/internal/infrastructure/storage"
	"github.com/jhoicas/ordersync-api/pkg/config"
	"github.com/jhoicas/ordersync-api/pkg/logger"
)

type seedUser struct {
	name  string
	phone string
	role  entity.Role
}

type seedCompany struct {
	name  string
	color string
	users []seedUser
}

var companies = []seedCompany{
	{name: "Resevalley", color: "#2563eb", users: []seedUser{
		{name: "Admin Root", phone: "3000000001", role: entity.RoleAdmin},
		{name: "Sarah Miller", phone: "3000000002", role: entity.RoleEmployee},
	}},
	{name: "Roseworld", color: "#e11d48", users: []seedUser{
		{name: "Rose Admin", phone: "3000000001", role: entity.RoleAdmin},
		{name: "Mike Johnson", phone: "3000000003", role: entity.RoleEmployee},
	}},
}

func main() {
	if len(os.Args) < 2 || len(os.Args[1]) < 4 {
		fmt.Fprintln(os.Stderr, "uso: seed <password> (mínimo 4 caracteres)")
		os.Exit(2)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	stores, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión al almacenamiento")
	}
	defer stores.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(os.Args[1]), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hash password")
	}

	for _, sc := range companies {
		// IDs deterministas: re-ejecutar el seed no duplica empresas.
		id := uuid.NewSHA1(uuid.NameSpaceOID, []byte("ordersync:"+sc.name)).String()
		existing, err := stores.Companies.GetByID(ctx, id)
		if err != nil {
			log.Fatal().Err(err).Str("company", sc.name).Msg("consultar empresa")
		}
		if existing != nil {
			log.Info().Str("company", sc.name).Msg("ya existe, se omite")
			continue
		}
		if err := seed(ctx, stores, id, sc, string(hash)); err != nil {
			log.Fatal().Err(err).Str("company", sc.name).Msg("seed")
		}
		log.Info().Str("company", sc.name).Str("id", id).Int("users", len(sc.users)).Msg("empresa creada")
	}
}

func seed(ctx context.Context, stores *storage.Stores, id string, sc seedCompany, hash string) error {
	now := time.Now()
	return stores.TxRunner.RunRegistration(ctx, func(companies repository.CompanyRepository, users repository.UserRepository) error {
		if err := companies.Create(ctx, &entity.Company{
			ID: id, Name: sc.name, Color: sc.color, CreatedAt: now, UpdatedAt: now,
		}); err != nil {
			return err
		}
		for _, su := range sc.users {
			if err := users.Create(ctx, &entity.User{
				ID:           uuid.New().String(),
				CompanyID:    id,
				Name:         su.name,
				Phone:        su.phone,
				Role:         su.role,
				PasswordHash: hash,
				CreatedAt:    now,
				UpdatedAt:    now,
			}); err != nil {
				return fmt.Errorf("usuario %s: %w", su.name, err)
			}
		}
		return nil
	})
}
