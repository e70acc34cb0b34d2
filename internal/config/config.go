package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Store     StoreConfig     `mapstructure:"store"`
	Session   SessionConfig   `mapstructure:"session"`
	Ingest    IngestConfig    `mapstructure:"ingest"`
	Retrieval RetrievalConfig `mapstructure:"retrieval"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Embedding EmbeddingConfig `mapstructure:"embedding"`
	Client    ClientConfig    `mapstructure:"client"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxUploadMB     int64         `mapstructure:"max_upload_mb"`
}

func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type StoreConfig struct {
	Path string `mapstructure:"path"`
}

type SessionConfig struct {
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

type IngestConfig struct {
	ChunkSize    int `mapstructure:"chunk_size"`
	ChunkOverlap int `mapstructure:"chunk_overlap"`
}

type RetrievalConfig struct {
	TopK          int     `mapstructure:"top_k"`
	MinSimilarity float32 `mapstructure:"min_similarity"`
}

type LLMConfig struct {
	GroqAPIKey   string        `mapstructure:"groq_api_key"`
	GroqBaseURL  string        `mapstructure:"groq_base_url"`
	DefaultModel string        `mapstructure:"default_model"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

type EmbeddingConfig struct {
	GoogleAPIKey string `mapstructure:"google_api_key"`
	Model        string `mapstructure:"model"`
}

type ClientConfig struct {
	ServerURL   string        `mapstructure:"server_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	DownloadDir string        `mapstructure:"download_dir"`
	LogFile     string        `mapstructure:"log_file"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set config file path
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./configs/config.yaml"
	}

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Set defaults
	setDefaults(v)

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, use defaults and env vars
	}

	// Override with environment variables
	v.AutomaticEnv()
	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Server
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", "60s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.max_upload_mb", 100)

	// Store
	v.SetDefault("store.path", "./sessions/chunks.db")

	// Session
	v.SetDefault("session.ttl", "24h")
	v.SetDefault("session.cleanup_interval", "1h")

	// Ingest
	v.SetDefault("ingest.chunk_size", 1000)
	v.SetDefault("ingest.chunk_overlap", 200)

	// Retrieval
	v.SetDefault("retrieval.top_k", 4)
	v.SetDefault("retrieval.min_similarity", 0.0)

	// LLM
	v.SetDefault("llm.groq_base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("llm.default_model", "llama3-70b-8192")
	v.SetDefault("llm.timeout", "120s")

	// Embedding
	v.SetDefault("embedding.model", "embedding-001")

	// Client
	v.SetDefault("client.server_url", "http://localhost:8000")
	v.SetDefault("client.timeout", "120s")
	v.SetDefault("client.download_dir", ".")
	v.SetDefault("client.log_file", "chatpdf.log")

	// Logging
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

func bindEnvVars(v *viper.Viper) {
	// API keys
	v.BindEnv("llm.groq_api_key", "GROQ_API_KEY")
	v.BindEnv("embedding.google_api_key", "GOOGLE_API_KEY")

	// Server
	v.BindEnv("server.port", "SERVER_PORT")
	v.BindEnv("store.path", "CHUNK_STORE_PATH")

	// Client
	v.BindEnv("client.server_url", "CHATPDF_SERVER_URL")
	v.BindEnv("client.download_dir", "CHATPDF_DOWNLOAD_DIR")
}
