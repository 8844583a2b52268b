package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/Despacho-api/internal/application/analytics"
	"github.com/jhoicas/Despacho-api/internal/application/auth"
	appdelivery "github.com/jhoicas/Despacho-api/internal/application/delivery"
	"github.com/jhoicas/Despacho-api/internal/application/export"
	"github.com/jhoicas/Despacho-api/internal/application/rates"
	"github.com/jhoicas/Despacho-api/internal/application/usecase"
	inframanifest "github.com/jhoicas/Despacho-api/internal/infrastructure/manifest"
	infrapdf "github.com/jhoicas/Despacho-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Despacho-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Despacho-api/internal/infrastructure/xmlexport"
	httpRouter "github.com/jhoicas/Despacho-api/internal/interfaces/http"
	"github.com/jhoicas/Despacho-api/pkg/config"
	"github.com/jhoicas/Despacho-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	branchRepo := postgres.NewBranchRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	articleRepo := postgres.NewArticleRepository(pool)
	draftRepo := postgres.NewArticleDraftRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	rateRepo := postgres.NewCustomerRateRepository(pool)
	bookingRepo := postgres.NewBookingRepository(pool)
	deliveryRepo := postgres.NewDeliveryRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewUseCase(userRepo, branchRepo, cfg.JWT)
	branchUC := usecase.NewBranchUseCase(branchRepo)
	articleUC := usecase.NewArticleUseCase(articleRepo, draftRepo, bookingRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	rateQueryUC := usecase.NewRateQueryUseCase(articleRepo, rateRepo)
	bulkRateUC := rates.NewBulkRateUseCase(articleRepo, customerRepo, rateRepo)
	bookingUC := appdelivery.NewBookingUseCase(bookingRepo, articleRepo, customerRepo, rateRepo)

	// POD: manifiesto canónico C14N sellado con SHA-256 y nota de entrega PDF
	sealer := inframanifest.NewSealer()
	captureUC := appdelivery.NewCaptureUseCase(
		bookingRepo, deliveryRepo, articleRepo, customerRepo, branchRepo,
		txRunner, sealer,
	)
	noteGenerator := infrapdf.NewMarotoNoteGenerator()
	noteUC := appdelivery.NewNoteUseCase(
		deliveryRepo, bookingRepo, articleRepo, customerRepo, branchRepo,
		noteGenerator,
	)

	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo, rateRepo)
	exportUC := export.NewUseCase(branchRepo, articleRepo, customerRepo, rateRepo, xmlexport.NewEncoder())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Despacho API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		BranchUC:    branchUC,
		ArticleUC:   articleUC,
		CustomerUC:  customerUC,
		RateQueryUC: rateQueryUC,
		BulkRateUC:  bulkRateUC,
		BookingUC:   bookingUC,
		CaptureUC:   captureUC,
		NoteUC:      noteUC,
		DashboardUC: dashboardUC,
		ExportUC:    exportUC,
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
