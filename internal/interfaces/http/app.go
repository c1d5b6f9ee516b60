package http

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/jhoicas/cuentadante-api/internal/application/dto"
	"github.com/jhoicas/cuentadante-api/pkg/logger"
)

// AppOptions configuración de la aplicación Fiber.
type AppOptions struct {
	Name           string
	AllowedOrigins string // lista separada por comas; vacío = "*"
	Metrics        bool   // expone /metrics y mide cada petición
	SwaggerFile    string // ruta a swagger.json; si no existe no se monta /docs
}

var (
	promOnce sync.Once
	prom     *fiberprometheus.FiberPrometheus
)

// NewApp crea la aplicación con el stack de middlewares común y /health.
func NewApp(opts AppOptions, log *logger.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      opts.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: err.Error()})
		},
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))

	if opts.Metrics {
		promOnce.Do(func() { prom = fiberprometheus.New(opts.Name) })
		prom.RegisterAt(app, "/metrics")
		app.Use(prom.Middleware)
	}

	app.Use(RequestLogger(log))

	origins := strings.TrimSpace(opts.AllowedOrigins)
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,OPTIONS",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	if opts.SwaggerFile != "" {
		if _, err := os.Stat(opts.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: opts.SwaggerFile,
				Path:     "docs",
				Title:    "Cuentadante API",
			}))
		} else {
			log.Warn().Str("file", opts.SwaggerFile).Msg("swagger.json no encontrado, /docs deshabilitado")
		}
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": opts.Name})
	})
	return app
}
