package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration
type Config struct {
	Server struct {
		Addr         string   `yaml:"addr"`
		AllowOrigins []string `yaml:"allow_origins"`
	} `yaml:"server"`
	Database struct {
		ConnectionString string `yaml:"connection_string"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Providers struct {
		Embeddings  string `yaml:"embeddings"`  // "cloudflare" or "ollama"
		Completions string `yaml:"completions"` // "cloudflare" or "ollama"
		Cloudflare  struct {
			AccountID       string `yaml:"account_id"`
			APIToken        string `yaml:"api_token"`
			EmbeddingModel  string `yaml:"embedding_model"`
			CompletionModel string `yaml:"completion_model"`
			TimeoutSecs     int    `yaml:"timeout_secs"`
		} `yaml:"cloudflare"`
		Ollama struct {
			BaseURL         string `yaml:"base_url"`
			EmbeddingModel  string `yaml:"embedding_model"`
			CompletionModel string `yaml:"completion_model"`
			TimeoutSecs     int    `yaml:"timeout_secs"`
		} `yaml:"ollama"`
	} `yaml:"providers"`
	Index struct {
		Backend    string `yaml:"backend"` // "pgvector" or "memory"
		Collection string `yaml:"collection"`
	} `yaml:"index"`
	Checkpoint struct {
		Backend string `yaml:"backend"` // "postgres", "redis" or "memory"
	} `yaml:"checkpoint"`
	Processing struct {
		ChunkSize    int `yaml:"chunk_size"`
		ChunkOverlap int `yaml:"chunk_overlap"`
	} `yaml:"processing"`
	Retrieval struct {
		TopK            int     `yaml:"top_k"`
		ScoreThreshold  float64 `yaml:"score_threshold"`
		MaxContextChars int     `yaml:"max_context_chars"`
	} `yaml:"retrieval"`
	Paths struct {
		DocumentsDir string `yaml:"documents_dir"`
	} `yaml:"paths"`
}

// Load loads configuration from file or returns defaults. Credentials and
// connection strings may be overridden from the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".fiscalito", "config.yaml")
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		applyEnv(cfg)
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	applyEnv(cfg)
	return cfg, nil
}

// Save saves configuration to file
func (c *Config) Save(path string) error {
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".fiscalito", "config.yaml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// Default returns default configuration
func Default() *Config {
	cfg := &Config{}

	cfg.Server.Addr = "127.0.0.1:8000"
	cfg.Server.AllowOrigins = []string{"*"}
	cfg.Database.ConnectionString = "postgres://postgres@localhost/postgres?sslmode=disable"
	cfg.Redis.Addr = "localhost:6379"
	cfg.Providers.Embeddings = "cloudflare"
	cfg.Providers.Completions = "cloudflare"
	cfg.Providers.Cloudflare.EmbeddingModel = "@cf/baai/bge-large-en-v1.5"
	cfg.Providers.Cloudflare.CompletionModel = "@cf/mistralai/mistral-small-3.1-24b-instruct"
	cfg.Providers.Cloudflare.TimeoutSecs = 60
	cfg.Providers.Ollama.BaseURL = "http://localhost:11434"
	cfg.Providers.Ollama.EmbeddingModel = "nomic-embed-text"
	cfg.Providers.Ollama.CompletionModel = "gemma3:1b"
	cfg.Providers.Ollama.TimeoutSecs = 300
	cfg.Index.Backend = "pgvector"
	cfg.Index.Collection = "onat_docs"
	cfg.Checkpoint.Backend = "postgres"
	cfg.Processing.ChunkSize = 1000
	cfg.Processing.ChunkOverlap = 200
	cfg.Retrieval.TopK = 3
	cfg.Retrieval.ScoreThreshold = 0.5
	cfg.Retrieval.MaxContextChars = 8000

	return cfg
}

// applyEnv overrides secrets and addresses from the environment, so that
// credentials never need to live in the config file.
func applyEnv(cfg *Config) {
	if v := os.Getenv("CLOUDFLARE_ACCOUNT_ID"); v != "" {
		cfg.Providers.Cloudflare.AccountID = v
	}
	if v := os.Getenv("CLOUDFLARE_API_KEY"); v != "" {
		cfg.Providers.Cloudflare.APIToken = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.ConnectionString = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("OLLAMA_BASE_URL"); v != "" {
		cfg.Providers.Ollama.BaseURL = v
	}
}
