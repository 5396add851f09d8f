package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	restful "github.com/emicklei/go-restful/v3"
	"github.com/go-openapi/spec"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vntexthub/vietrag/internal/cache"
	"github.com/vntexthub/vietrag/internal/config"
	"github.com/vntexthub/vietrag/internal/database"
	"github.com/vntexthub/vietrag/internal/embedding"
	"github.com/vntexthub/vietrag/internal/middleware"
	"github.com/vntexthub/vietrag/internal/search"
)

func enrichSwaggerObject(swo *spec.Swagger) {
	swo.Info = &spec.Info{
		InfoProps: spec.InfoProps{
			Title:       "VietRAG Search API",
			Description: "Semantic, keyword and hybrid retrieval over Vietnamese text",
			Version:     "1.0.0",
		},
	}
	swo.Tags = []spec.Tag{
		{TagProps: spec.TagProps{Name: "search", Description: "Search operations"}},
	}
}

func main() {
	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	log.Info().Msg("Starting search API server")

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx := context.Background()

	db, err := database.NewWithBackoff(ctx, database.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Database: cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	}, 5)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	log.Info().Msg("Database connected")

	provider, err := embedding.ParseProvider(cfg.EmbeddingProvider)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid embedding provider")
	}

	embedder, err := embedding.New(ctx, provider, embedding.Options{
		ModelID:   cfg.EmbeddingModelID,
		Dimension: cfg.EmbeddingDim,
		Region:    cfg.AWSRegion,
		BaseURL:   cfg.OpenAIBaseURL,
		APIKey:    cfg.OpenAIAPIKey,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Unable to create embedder")
	}

	log.Info().
		Str("provider", string(provider)).
		Str("model", cfg.EmbeddingModelID).
		Int("dimension", cfg.EmbeddingDim).
		Msg("Embedder initialized")

	// Optional search cache; leave REDIS_ADDR unset to run without it.
	var searchCache search.ResultCache
	if cfg.RedisAddr != "" {
		redisClient, err := cache.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, 5)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		searchCache = cache.NewRedisSearchCache(redisClient, "search_cache:", cfg.CacheTTL)
	}

	service := search.NewService(db, embedder, searchCache, search.Config{
		K:              cfg.RRFK,
		PoolMultiplier: cfg.RRFPoolMultiplier,
	})
	handler := search.NewHandler(service, cfg.SearchDefaultLimit)

	container := restful.NewContainer()
	container.Filter(middleware.Logger)
	container.Filter(middleware.RecoverPanic)

	search.RegisterRoutes(container, handler)

	openAPIConfig := restfulspec.Config{
		WebServices:                   container.RegisteredWebServices(),
		APIPath:                       "/api/v1/openapi.json",
		PostBuildSwaggerObjectHandler: enrichSwaggerObject,
	}
	container.Add(restfulspec.NewOpenAPIService(openAPIConfig))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	addr := fmt.Sprintf(":%s", cfg.SearchAPIPort)
	log.Info().Str("address", addr).Msg("Starting server")

	server := http.Server{
		Addr:         addr,
		Handler:      corsHandler.Handler(container),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if err := server.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("Server failed to start")
	}
}
