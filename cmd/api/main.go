package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appanalytics "github.com/jhoicas/ordersync-api/internal/application/analytics"
	"github.com/jhoicas/ordersync-api/internal/application/auth"
	"github.com/jhoicas/ordersync-api/internal/application/ports"
	"github.com/jhoicas/ordersync-api/internal/application/usecase"
	"github.com/jhoicas/ordersync-api/internal/domain/repository"
	infraai "github.com/jhoicas/ordersync-api/internal/infrastructure/ai"
	"github.com/jhoicas/ordersync-api/internal/infrastructure/memory"
	"github.com/jhoicas/ordersync-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/ordersync-api/internal/infrastructure/pdf"
	infraredis "github.com/jhoicas/ordersync-api/internal/infrastructure/redis"
	"github.com/jhoicas/ordersync-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/ordersync-api/internal/interfaces/http"
	"github.com/jhoicas/ordersync-api/pkg/config"
	"github.com/jhoicas/ordersync-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	stores, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión al almacenamiento")
	}
	defer stores.Close()

	// Sesiones: Redis si está configurado, si no en memoria (se pierden al reiniciar).
	var sessions repository.SessionRepository
	if cfg.Redis.Addr != "" {
		client, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		sessions = infraredis.NewSessionRepository(client)
	} else {
		log.Warn().Msg("REDIS_ADDR vacío: sesiones en memoria")
		sessions = memory.NewSessionRepository()
	}

	orderMetrics := metrics.NewOrderMetrics(nil)
	extractor := newExtractor(cfg.AI, log)
	loc := cfg.App.Location()

	authUC := auth.NewAuthUseCase(stores.Users, stores.Companies, sessions, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)
	companyUC := usecase.NewCompanyUseCase(stores.Companies, stores.TxRunner, cfg.App.RegistrationKey, log)
	orderUC := usecase.NewOrderUseCase(stores.Orders, extractor, orderMetrics, usecase.OrderOptions{
		ExtractTimeout: cfg.AI.Timeout(),
		Location:       loc,
	}, log)
	productUC := usecase.NewProductUseCase(stores.Products)
	userUC := usecase.NewUserUseCase(stores.Users, sessions, log)
	dashboardUC := appanalytics.NewDashboardUseCase(stores.Orders, stores.Users, loc)
	reportUC := appanalytics.NewReportUseCase(stores.Companies, stores.Orders, infrapdf.NewMarotoReportGenerator(), loc)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    4 * 1024 * 1024, // avatares e imágenes de producto en data URL
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "OrderSync API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:   companyUC,
		OrderUC:     orderUC,
		ProductUC:   productUC,
		UserUC:      userUC,
		DashboardUC: dashboardUC,
		ReportUC:    reportUC,
		AuthUC:      authUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// newExtractor elige el proveedor de IA. Sin API key devuelve nil y los pedidos se guardan tal cual.
func newExtractor(cfg config.AIConfig, log *logger.Logger) ports.OrderTextExtractor {
	var next ports.OrderTextExtractor
	switch cfg.Provider {
	case config.AIProviderAnthropic:
		if cfg.AnthropicAPIKey != "" {
			next = infraai.NewAnthropicService(cfg.AnthropicAPIKey, cfg.AnthropicModel)
		}
	default:
		if cfg.GeminiAPIKey != "" {
			next = infraai.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel)
		}
	}
	if next == nil {
		log.Warn().Str("provider", cfg.Provider).Msg("sin API key de IA: los pedidos se guardan sin estructurar")
		return nil
	}
	log.Info().Str("provider", cfg.Provider).Int("rate_per_minute", cfg.RatePerMinute).Msg("extracción de pedidos habilitada")
	return infraai.NewThrottledExtractor(next, cfg.RatePerMinute)
}
