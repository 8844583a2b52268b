package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Despacho-api/internal/application/analytics"
	"github.com/jhoicas/Despacho-api/internal/application/auth"
	appdelivery "github.com/jhoicas/Despacho-api/internal/application/delivery"
	"github.com/jhoicas/Despacho-api/internal/application/export"
	"github.com/jhoicas/Despacho-api/internal/application/rates"
	"github.com/jhoicas/Despacho-api/internal/application/usecase"
	"github.com/jhoicas/Despacho-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	BranchUC    *usecase.BranchUseCase
	ArticleUC   *usecase.ArticleUseCase
	CustomerUC  *usecase.CustomerUseCase
	RateQueryUC *usecase.RateQueryUseCase
	BulkRateUC  *rates.BulkRateUseCase
	BookingUC   *appdelivery.BookingUseCase
	CaptureUC   *appdelivery.CaptureUseCase
	NoteUC      *appdelivery.NoteUseCase
	DashboardUC *appanalytics.DashboardUseCase
	ExportUC    *export.UseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público, salvo /me)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Branches (público; el alta de sucursales precede a la de usuarios)
	branches := api.Group("/branches")
	branchHandler := NewBranchHandler(deps.BranchUC)
	branches.Get("/", branchHandler.List)
	branches.Post("/", branchHandler.Create)
	branches.Get("/:id", branchHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Articles (protegido; /draft va antes de /:id para que no colisionen)
	articles := protected.Group("/articles")
	articleHandler := NewArticleHandler(deps.ArticleUC, deps.RateQueryUC)
	articles.Get("/draft", articleHandler.GetDraft)
	articles.Put("/draft", articleHandler.SaveDraft)
	articles.Delete("/draft", articleHandler.ClearDraft)
	articles.Post("/", articleHandler.Create)
	articles.Get("/", articleHandler.List)
	articles.Get("/:id", articleHandler.GetByID)
	articles.Put("/:id", articleHandler.Update)
	articles.Delete("/:id", RequireRole(entity.RoleAdmin), articleHandler.Delete)
	articles.Get("/:id/rates", articleHandler.ListRates)

	// Customers (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.RateQueryUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", RequireRole(entity.RoleAdmin), customerHandler.Delete)
	customers.Get("/:id/rates/:articleID", customerHandler.GetRate)

	// Bulk rates (protegido; aplicar requiere rol admin o tarifas)
	bulk := protected.Group("/rates/bulk", RequireRole(entity.RoleAdmin, entity.RoleTarifas))
	ratesHandler := NewRatesHandler(deps.BulkRateUC)
	bulk.Post("/", ratesHandler.StartSession)
	bulk.Get("/:sid", ratesHandler.GetSession)
	bulk.Delete("/:sid", ratesHandler.CancelSession)
	bulk.Post("/:sid/articles/toggle", ratesHandler.ToggleArticle)
	bulk.Post("/:sid/articles/select-all", ratesHandler.SelectAllArticles)
	bulk.Delete("/:sid/articles", ratesHandler.ClearArticles)
	bulk.Post("/:sid/customers/toggle", ratesHandler.ToggleCustomer)
	bulk.Post("/:sid/customers/select-all", ratesHandler.SelectAllCustomers)
	bulk.Delete("/:sid/customers", ratesHandler.ClearCustomers)
	bulk.Put("/:sid/filters", ratesHandler.SetFilters)
	bulk.Put("/:sid/config", ratesHandler.Configure)
	bulk.Post("/:sid/preview", ratesHandler.Preview)
	bulk.Post("/:sid/apply", ratesHandler.Apply)

	// Bookings y POD (protegido)
	bookings := protected.Group("/bookings")
	bookingHandler := NewBookingHandler(deps.BookingUC, deps.CaptureUC)
	bookings.Post("/", bookingHandler.Create)
	bookings.Get("/", bookingHandler.List)
	bookings.Get("/:id", bookingHandler.GetByID)
	bookings.Post("/:id/transit", bookingHandler.MarkInTransit)
	bookings.Post("/:id/pod", bookingHandler.CapturePOD)
	bookings.Get("/:id/pod", bookingHandler.GetPOD)

	// Deliveries (protegido)
	deliveries := protected.Group("/deliveries")
	deliveryHandler := NewDeliveryHandler(deps.CaptureUC, deps.NoteUC)
	deliveries.Get("/", deliveryHandler.List)
	deliveries.Get("/:id/note.pdf", deliveryHandler.DeliveryNote)

	// Dashboard (protegido)
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.GetSummary)

	// Export (protegido)
	exportGroup := protected.Group("/export")
	exportHandler := NewExportHandler(deps.ExportUC)
	exportGroup.Get("/ratesheet.xml", exportHandler.RateSheetXML)
	exportGroup.Get("/ratesheet.csv", exportHandler.RateSheetCSV)
}
