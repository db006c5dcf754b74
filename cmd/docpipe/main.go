package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/atriumdata/docpipe/ai"
	"github.com/atriumdata/docpipe/ai/openai"
	"github.com/atriumdata/docpipe/config"
	"github.com/atriumdata/docpipe/ingest"
	"github.com/atriumdata/docpipe/parse"
	"github.com/atriumdata/docpipe/search"
	"github.com/atriumdata/docpipe/server"
	"github.com/atriumdata/docpipe/storage/supabase"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "docpipe",
		Usage: "Underwriting document ingestion and retrieval pipeline",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the ingestion and retrieval API server",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "addr",
						Aliases: []string{"a"},
						Usage:   "Listen address for the API server",
						Value:   ":8080",
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Maximum concurrent document ingestions",
						Value: 8,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serveCommand(c *cli.Context) error {
	// A local .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	store := supabase.NewClient(supabase.Config{
		URL:    cfg.SupabaseURL,
		APIKey: cfg.SupabaseKey,
		Bucket: cfg.SupabaseBucket,
	})

	parser := parse.NewClient(parse.Config{
		Endpoint: cfg.ParseEndpoint,
		APIKey:   cfg.ParseAPIKey,
	})

	embedder, err := openai.NewEmbedder(ai.NewConfig(
		ai.WithHost(cfg.OpenAIHost),
		ai.WithAPIKey(cfg.OpenAIKey),
		ai.WithModel(cfg.EmbeddingModel),
	))
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}
	generator := ai.NewGenerator(embedder)

	orchestrator, err := ingest.NewOrchestrator(store, store, store, store, parser, generator)
	if err != nil {
		return fmt.Errorf("failed to create ingestion orchestrator: %w", err)
	}

	searcher, err := search.NewSearcher(store, store, generator)
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}

	srv, err := server.NewServer(orchestrator, searcher, store, parser,
		server.WithPoolSize(c.Int("pool-size")))
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	defer srv.Close()

	return srv.Run(c.String("addr"))
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
