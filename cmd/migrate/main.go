// migrate aplica el esquema de PostgreSQL y siembra los roles por defecto.
//
// Uso: go run ./cmd/migrate
// Lee la misma configuración que la API (DATABASE_URL o DB_*). Se puede ejecutar varias veces;
// en cada ejecución borra también los códigos de recuperación vencidos.
package main

import (
	"context"
	"time"

	"github.com/jhoicas/scoreking-api/internal/application/auth"
	"github.com/jhoicas/scoreking-api/internal/infrastructure/postgres"
	"github.com/jhoicas/scoreking-api/pkg/config"
	"github.com/jhoicas/scoreking-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.Connect(ctx, cfg.DB, 10, 3*time.Second)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("aplicar esquema")
	}
	if err := auth.EnsureRoles(ctx, postgres.NewRoleRepository(pool), log); err != nil {
		log.Fatal().Err(err).Msg("sembrar roles")
	}
	purged, err := postgres.NewPasswordResetTokenRepository(pool).DeleteExpired(ctx, time.Now())
	if err != nil {
		log.Fatal().Err(err).Msg("purgar códigos vencidos")
	}
	log.Info().Int64("codigos_purgados", purged).Msg("migración completada")
}
