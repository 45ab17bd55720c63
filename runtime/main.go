package main

import (
	"os"

	"github.com/alphabatem/common/context"
	"github.com/joho/godotenv"
	"github.com/lac-hong-legacy/lecture_api/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// @title						Lecture API
// @version					1.0
// @description				Lecture catalog, learner progress and unlock tracking.
// @BasePath					/
// @securityDefinitions.apikey	Bearer
// @in							header
// @name						Authorization
// @description				Type "Bearer" followed by a space and the JWT token.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("No .env file loaded, using the environment")
	}

	if level, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil && level != zerolog.NoLevel {
		zerolog.SetGlobalLevel(level)
	}

	var database context.Service = &services.PostgresService{}
	if os.Getenv("DB_DRIVER") == "sqlite" {
		database = &services.SqliteService{}
	}

	svcs := []context.Service{
		database,
	}

	// cache and object storage are optional
	if os.Getenv("REDIS_ADDR") != "" {
		svcs = append(svcs, &services.RedisService{})
	}
	if os.Getenv("MINIO_ENDPOINT") != "" {
		svcs = append(svcs, &services.MinIOService{})
	}

	svcs = append(svcs,
		&services.MonitoringService{},
		&services.JWTService{},
		&services.AuthMiddleware{},
		&services.RateLimitService{},

		&services.CatalogService{},
		&services.ProgressService{},
		&services.ProfileService{},

		&services.HttpService{},
	)

	ctx, err := context.NewCtx(svcs...)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build service context")
		return
	}

	err = ctx.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("Service context stopped")
		return
	}
}
