package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jhoicas/cuentadante-api/docs"
	appanalytics "github.com/jhoicas/cuentadante-api/internal/application/analytics"
	"github.com/jhoicas/cuentadante-api/internal/application/auth"
	"github.com/jhoicas/cuentadante-api/internal/application/receipt"
	"github.com/jhoicas/cuentadante-api/internal/application/usecase"
	"github.com/jhoicas/cuentadante-api/internal/application/workflow"
	infracache "github.com/jhoicas/cuentadante-api/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/cuentadante-api/internal/infrastructure/pdf"
	"github.com/jhoicas/cuentadante-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/cuentadante-api/internal/interfaces/http"
	"github.com/jhoicas/cuentadante-api/internal/observability"
	"github.com/jhoicas/cuentadante-api/pkg/config"
	"github.com/jhoicas/cuentadante-api/pkg/logger"
)

// @title                       Cuentadante API
// @version                     1.0
// @description                 Préstamo y custodia de bienes del SENA.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("version", cfg.App.Version).
		Msg("iniciando aplicación")

	ctx := context.Background()

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfig{
		ServiceName:    cfg.App.Name,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Env,
		Enabled:        cfg.Tracing.Enabled,
		Exporter:       cfg.Tracing.Exporter,
		OTLPEndpoint:   cfg.Tracing.OTLPEndpoint,
		SamplerRatio:   cfg.Tracing.SampleRatio,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar trazas")
	}

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, cfg.DB, "up"); err != nil {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	assetRepo := postgres.NewAssetRepository(pool)
	requestRepo := postgres.NewRequestRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Tablero: caché en memoria invalidada por cada escritura del flujo
	statsCache := infracache.NewStatsCache(cfg.Dashboard.CacheTTL)
	dashboardUC := appanalytics.NewDashboardUseCase(dashboardRepo, statsCache, appanalytics.DashboardConfig{
		LookaheadDays: cfg.Dashboard.LookaheadDays,
		DueSoonDays:   cfg.Dashboard.DueSoonDays,
	})

	workflowLog := log.Component("workflow")
	intakeUC := workflow.NewIntakeUseCase(txRunner, requestRepo, dashboardUC, cfg.Workflow.DefaultLoanDays, workflowLog)
	approvalUC := workflow.NewApprovalUseCase(txRunner, dashboardUC, cfg.Workflow.DefaultLoanDays, workflowLog)
	custodyUC := workflow.NewCustodyUseCase(txRunner, dashboardUC, workflowLog)

	assetUC := usecase.NewAssetUseCase(assetRepo, dashboardUC)
	movementUC := usecase.NewMovementUseCase(movementRepo)
	userUC := usecase.NewUserUseCase(userRepo)

	// PDF: actas de entrega y devolución
	receiptUC := receipt.NewUseCase(movementRepo, infrapdf.NewMarotoPDFGenerator(), "SENA - Servicio Nacional de Aprendizaje")

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := httpRouter.NewApp(httpRouter.AppOptions{
		Name:           cfg.App.Name,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		Metrics:        true,
		SwaggerFile:    "./docs/swagger.json",
	}, log.Component("http"))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		AssetUC:     assetUC,
		UserUC:      userUC,
		MovementUC:  movementUC,
		ReceiptUC:   receiptUC,
		IntakeUC:    intakeUC,
		ApprovalUC:  approvalUC,
		CustodyUC:   custodyUC,
		DashboardUC: dashboardUC,
		LoginLimit:  httpRouter.NewLoginLimiter(cfg.RateLimit.LoginPerMinute, cfg.RateLimit.LoginBurst),
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
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado de trazas")
	}

	log.Info().Msg("aplicación detenida")
}
