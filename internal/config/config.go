package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	AppName    = "Nightfall"
	AppVersion = "1.0.0"
)

// EnvProduction hides error details from API responses.
const EnvProduction = "production"

// Config is the server configuration, read from the environment.
type Config struct {
	Port      string `env:"PORT"       envDefault:"3000"`
	AppEnv    string `env:"APP_ENV"    envDefault:"development"`
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	DataDir   string `env:"DATA_DIR"   envDefault:"./data"`
	DBPath    string `env:"DB_PATH"`
	StaticDir string `env:"STATIC_DIR"`

	ProxyURL        string        `env:"PROXY_URL"`
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"2m"`
	SnowflakeNode   int64         `env:"SNOWFLAKE_NODE"   envDefault:"1"`
	SeedFeedURL     string        `env:"SEED_FEED_URL"`

	Text  TextConfig
	Image ImageConfig
	Story StoryConfig

	Keys APIKeys
}

// TextConfig selects and tunes the text generation provider.
type TextConfig struct {
	Provider    string  `env:"TEXT_PROVIDER"    envDefault:"openai"`
	Model       string  `env:"TEXT_MODEL"       envDefault:"gpt-3.5-turbo"`
	BaseURL     string  `env:"TEXT_BASE_URL"`
	MaxTokens   int     `env:"TEXT_MAX_TOKENS"  envDefault:"150"`
	Temperature float64 `env:"TEXT_TEMPERATURE" envDefault:"0.8"`
}

// ImageConfig holds the image generation defaults.
type ImageConfig struct {
	Model   string `env:"IMAGE_MODEL"    envDefault:"dall-e-3"`
	BaseURL string `env:"IMAGE_BASE_URL"`
	Count   int    `env:"IMAGE_COUNT"    envDefault:"1"`
	Size    string `env:"IMAGE_SIZE"     envDefault:"1024x1024"`
	Style   string `env:"IMAGE_STYLE"    envDefault:"vivid"`
}

// StoryConfig holds the story generation defaults. Both can be overridden
// at runtime through the settings API.
type StoryConfig struct {
	Variant string `env:"STORY_VARIANT" envDefault:"single"`
	Strict  bool   `env:"STORY_STRICT"  envDefault:"false"`
}

// APIKeys holds provider credentials.
type APIKeys struct {
	OpenAI     string `env:"OPENAI_API_KEY"`
	Anthropic  string `env:"ANTHROPIC_API_KEY"`
	Gemini     string `env:"GEMINI_API_KEY"`
	Cohere     string `env:"COHERE_API_KEY"`
	Compatible string `env:"COMPATIBLE_API_KEY"`
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return ":" + c.Port
}

// IsProduction reports whether error details must be hidden.
func (c Config) IsProduction() bool {
	return c.AppEnv == EnvProduction
}

// TextAPIKey returns the credential for the configured text provider.
func (c Config) TextAPIKey() string {
	switch c.Text.Provider {
	case "anthropic":
		return c.Keys.Anthropic
	case "gemini":
		return c.Keys.Gemini
	case "cohere":
		return c.Keys.Cohere
	case "compatible":
		if c.Keys.Compatible != "" {
			return c.Keys.Compatible
		}
		return c.Keys.OpenAI
	default:
		return c.Keys.OpenAI
	}
}

// Load reads an optional .env file and parses the environment.
func Load() (Config, error) {
	loadDotEnv()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.DataDir, "nightfall.db")
	}
	if cfg.StaticDir == "" {
		cfg.StaticDir = detectStaticDir()
	}
	cfg.DataDir = filepath.Clean(cfg.DataDir)
	cfg.DBPath = filepath.Clean(cfg.DBPath)
	cfg.StaticDir = filepath.Clean(cfg.StaticDir)

	return cfg, nil
}

// ClientConfig is the terminal client configuration.
type ClientConfig struct {
	ServerURL   string        `env:"STORY_SERVER_URL"    envDefault:"http://localhost:3000"`
	StateFile   string        `env:"STORY_STATE_FILE"`
	LogFile     string        `env:"STORY_CLIENT_LOG"`
	LogLevel    string        `env:"LOG_LEVEL"           envDefault:"info"`
	HTTPTimeout time.Duration `env:"STORY_CLIENT_TIMEOUT" envDefault:"3m"`
}

// LoadClient reads the terminal client configuration.
func LoadClient() (ClientConfig, error) {
	loadDotEnv()

	cfg, err := env.ParseAs[ClientConfig]()
	if err != nil {
		return ClientConfig{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.StateFile == "" || cfg.LogFile == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			dir = "."
		}
		dir = filepath.Join(dir, "nightfall")
		if cfg.StateFile == "" {
			cfg.StateFile = filepath.Join(dir, "state.json")
		}
		if cfg.LogFile == "" {
			cfg.LogFile = filepath.Join(dir, "client.log")
		}
	}
	return cfg, nil
}

func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
	}
}

func detectStaticDir() string {
	candidates := []string{
		"./web",
		"../web",
	}
	for _, candidate := range candidates {
		indexPath := filepath.Join(candidate, "index.html")
		if info, err := os.Stat(indexPath); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return "./web"
}
