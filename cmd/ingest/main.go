package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vntexthub/vietrag/internal/config"
	"github.com/vntexthub/vietrag/internal/database"
	"github.com/vntexthub/vietrag/internal/embedding"
	"github.com/vntexthub/vietrag/internal/ingestion"
)

func main() {
	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	insertDocCommand := flag.Bool("insert-doc", false, "Ingest a document")
	filePath := flag.String("file", "", "Path to a cleaned .txt document")
	language := flag.String("lang", "vi", "Language tag recorded on the document")

	deleteDocCommand := flag.Bool("delete-doc", false, "Delete an existing document")
	documentID := flag.String("doc-id", "", "Document id to delete")

	getAllDocsCommand := flag.Bool("get-docs", false, "List all documents")

	flag.Parse()

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
	}, 3)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	log.Info().Msg("Database connected")

	switch {
	case *deleteDocCommand:
		if *documentID == "" {
			log.Fatal().Msg("-doc-id is required with -delete-doc")
		}
		if err := db.DeleteDocument(ctx, *documentID); err != nil {
			log.Fatal().Err(err).Msg("Failed to delete document")
		}

	case *getAllDocsCommand:
		documents, err := db.GetAllDocs(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Unable to fetch documents")
		}
		for _, doc := range documents {
			log.Info().Msg(doc.Print())
		}

	case *insertDocCommand:
		if *filePath == "" {
			log.Fatal().Msg("-file is required with -insert-doc")
		}

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

		parser := ingestion.NewParser(*language)
		chunker := ingestion.NewChunker(cfg.ChunkMinWords, cfg.ChunkMaxWords)
		pipeline := ingestion.NewPipeline(parser, chunker, embedder, db, cfg.IngestBatchSize)

		if err := pipeline.IngestFile(ctx, *filePath); err != nil {
			if errors.Is(err, database.ErrDocumentExists) {
				log.Info().Str("file", *filePath).Msg("Document already ingested, nothing to do")
				return
			}
			log.Fatal().Err(err).Msg("Ingestion failed")
		}
		log.Info().Msg("Ingestion successful")

	default:
		log.Fatal().Msg("Expected one of -insert-doc, -delete-doc or -get-docs")
	}
}
