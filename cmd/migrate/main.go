// migrate aplica las migraciones goose embebidas sobre la base configurada.
//
// Uso: go run ./cmd/migrate [up|down|status|version|reset]
// Por defecto ejecuta "up". Lee la conexión de DATABASE_URL o DB_* (ver pkg/config).
package main

import (
	"context"
	"os"
	"time"

	"github.com/jhoicas/cuentadante-api/internal/infrastructure/postgres"
	"github.com/jhoicas/cuentadante-api/pkg/config"
	"github.com/jhoicas/cuentadante-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "migrate"})

	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := postgres.Migrate(ctx, cfg.DB, command); err != nil {
		log.Fatal().Err(err).Str("command", command).Msg("migración fallida")
	}
	log.Info().Str("command", command).Msg("migración completada")
}
