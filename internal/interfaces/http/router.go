package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/ordersync-api/internal/application/analytics"
	"github.com/jhoicas/ordersync-api/internal/application/auth"
	"github.com/jhoicas/ordersync-api/internal/application/usecase"
	"github.com/jhoicas/ordersync-api/internal/domain/policy"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC   *usecase.CompanyUseCase
	OrderUC     *usecase.OrderUseCase
	ProductUC   *usecase.ProductUseCase
	UserUC      *usecase.UserUseCase
	DashboardUC *appanalytics.DashboardUseCase
	ReportUC    *appanalytics.ReportUseCase // opcional
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	authMW := AuthMiddleware(deps.JWTSecret, deps.AuthUC)

	// Companies (público: selector de empresa y registro con clave)
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Register)
	companies.Get("/:id", companyHandler.GetByID)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authMW, authHandler.Logout)
	authGroup.Get("/session", authMW, authHandler.Session)

	// Orders
	orderHandler := NewOrderHandler(deps.OrderUC, deps.ReportUC)
	orders := api.Group("/orders", authMW)
	orders.Get("/report.pdf", RequireTab(policy.TabDashboard), orderHandler.Report)
	orders.Use(RequireTab(policy.TabOrders))
	orders.Get("/", orderHandler.List)
	orders.Post("/", orderHandler.Create)
	orders.Patch("/:id/status", orderHandler.UpdateStatus)
	orders.Post("/:id/advance", orderHandler.Advance)
	orders.Delete("/:id", orderHandler.Delete)

	// Products
	products := api.Group("/products", authMW, RequireTab(policy.TabProducts))
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Employees (solo ADMIN) y perfil
	userHandler := NewUserHandler(deps.UserUC)
	employees := api.Group("/employees", authMW, RequireTab(policy.TabEmployees))
	employees.Get("/", userHandler.ListEmployees)
	employees.Post("/", userHandler.CreateEmployee)
	employees.Delete("/:id", userHandler.DeleteEmployee)

	profile := api.Group("/profile", authMW, RequireTab(policy.TabProfile))
	profile.Get("/", userHandler.GetProfile)
	profile.Put("/", userHandler.UpdateProfile)

	// Dashboard (solo ADMIN)
	dashboard := api.Group("/dashboard", authMW, RequireTab(policy.TabDashboard))
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.GetSummary)
}
