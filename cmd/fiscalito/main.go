package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/desoft-apps/fiscalito/config"
	"github.com/desoft-apps/fiscalito/internal/conversation"
	"github.com/desoft-apps/fiscalito/internal/corpus"
	"github.com/desoft-apps/fiscalito/internal/db"
	"github.com/desoft-apps/fiscalito/internal/docstore"
	"github.com/desoft-apps/fiscalito/internal/embeddings"
	"github.com/desoft-apps/fiscalito/internal/engine"
	"github.com/desoft-apps/fiscalito/internal/index"
	"github.com/desoft-apps/fiscalito/internal/llm"
	"github.com/desoft-apps/fiscalito/internal/server"
	"github.com/desoft-apps/fiscalito/internal/tui"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to config file (default ~/.fiscalito/config.yaml)")
		chatFlag   = flag.Bool("chat", false, "Run the interactive terminal chat instead of the HTTP server")
		userFlag   = flag.String("user", "Usuario", "Display name for the terminal chat")
		addrFlag   = flag.String("addr", "", "Listen address override for the HTTP server")
	)
	flag.Parse()

	// Credentials commonly live in a .env file during development.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *addrFlag != "" {
		cfg.Server.Addr = *addrFlag
	}

	if err := run(cfg, *chatFlag, *userFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, chat bool, userName string) error {
	ctx := context.Background()
	logger := log.New(os.Stderr, "[FISCALITO] ", log.LstdFlags)

	embedder, err := buildEmbedder(cfg)
	if err != nil {
		return err
	}
	completer, err := buildCompleter(cfg)
	if err != nil {
		return err
	}

	var database *db.DB
	if cfg.Index.Backend == "pgvector" || cfg.Checkpoint.Backend == "postgres" {
		database, err = db.New(ctx, cfg.Database.ConnectionString)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()
		if err := database.EnsureSchema(ctx); err != nil {
			return err
		}
	}

	var idx index.Index
	switch cfg.Index.Backend {
	case "pgvector":
		idx = index.NewPgVector(database, cfg.Index.Collection)
	case "memory":
		idx = index.NewMemory()
	default:
		return fmt.Errorf("unknown index backend %q", cfg.Index.Backend)
	}

	splitter, err := corpus.NewSplitter(cfg.Processing.ChunkSize, cfg.Processing.ChunkOverlap)
	if err != nil {
		return err
	}

	store := docstore.New(embedder, idx, splitter, cfg.Retrieval.ScoreThreshold, log.New(os.Stderr, "[DOCSTORE] ", log.LstdFlags))

	docs := corpus.Seed()
	extra, err := corpus.LoadDir(cfg.Paths.DocumentsDir)
	if err != nil {
		return err
	}
	docs = append(docs, extra...)

	if err := store.Bootstrap(ctx, docs); err != nil {
		return fmt.Errorf("corpus bootstrap failed: %w", err)
	}

	var checkpoints conversation.Store
	switch cfg.Checkpoint.Backend {
	case "postgres":
		checkpoints = conversation.NewPostgresStore(database)
	case "redis":
		checkpoints = conversation.NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	case "memory":
		checkpoints = conversation.NewMemoryStore()
	default:
		return fmt.Errorf("unknown checkpoint backend %q", cfg.Checkpoint.Backend)
	}

	engLogger := log.New(os.Stderr, "[ENGINE] ", log.LstdFlags)
	proc := engine.NewTurnProcessor(store, completer, engine.Options{
		TopK:            cfg.Retrieval.TopK,
		MaxContextChars: cfg.Retrieval.MaxContextChars,
	}, engLogger)
	eng := engine.New(checkpoints, proc, engLogger)

	if chat {
		program := tea.NewProgram(tui.New(eng, userName, userName), tea.WithAltScreen())
		_, err := program.Run()
		return err
	}

	logger.Printf("listening on %s", cfg.Server.Addr)
	httpLogger := log.New(os.Stderr, "[HTTP] ", log.LstdFlags)
	return server.New(eng, store, cfg.Server.AllowOrigins, httpLogger).Run(cfg.Server.Addr)
}

func buildEmbedder(cfg *config.Config) (embeddings.Embedder, error) {
	switch cfg.Providers.Embeddings {
	case "cloudflare":
		cf := cfg.Providers.Cloudflare
		if cf.AccountID == "" || cf.APIToken == "" {
			return nil, fmt.Errorf("cloudflare credentials not configured (CLOUDFLARE_ACCOUNT_ID / CLOUDFLARE_API_KEY)")
		}
		return embeddings.NewCloudflareEmbedder(cf.AccountID, cf.APIToken, cf.EmbeddingModel, time.Duration(cf.TimeoutSecs)*time.Second), nil
	case "ollama":
		ol := cfg.Providers.Ollama
		return embeddings.NewOllamaEmbedder(ol.BaseURL, ol.EmbeddingModel, time.Duration(ol.TimeoutSecs)*time.Second), nil
	default:
		return nil, fmt.Errorf("unknown embeddings provider %q", cfg.Providers.Embeddings)
	}
}

func buildCompleter(cfg *config.Config) (llm.Completer, error) {
	switch cfg.Providers.Completions {
	case "cloudflare":
		cf := cfg.Providers.Cloudflare
		if cf.AccountID == "" || cf.APIToken == "" {
			return nil, fmt.Errorf("cloudflare credentials not configured (CLOUDFLARE_ACCOUNT_ID / CLOUDFLARE_API_KEY)")
		}
		return llm.NewCloudflareClient(cf.AccountID, cf.APIToken, cf.CompletionModel, time.Duration(cf.TimeoutSecs)*time.Second), nil
	case "ollama":
		ol := cfg.Providers.Ollama
		return llm.NewOllamaClient(ol.BaseURL, ol.CompletionModel, time.Duration(ol.TimeoutSecs)*time.Second), nil
	default:
		return nil, fmt.Errorf("unknown completions provider %q", cfg.Providers.Completions)
	}
}
