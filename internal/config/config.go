package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // hours
	} `yaml:"jwt"`

	CORS struct {
		// Exact origins, e.g. https://find-a-hand.netlify.app
		Origins []string `yaml:"origins"`
		// Suffix wildcards for known hosting domains, e.g. .netlify.app
		WildcardSuffixes []string `yaml:"wildcard_suffixes"`
	} `yaml:"cors"`

	Storage struct {
		Type       string `yaml:"type"`        // local, s3
		BasePath   string `yaml:"base_path"`   // for local storage
		BaseURL    string `yaml:"base_url"`    // public URL base
		Bucket     string `yaml:"bucket"`      // for S3
		Region     string `yaml:"region"`      // for S3
		AccessKey  string `yaml:"access_key"`  // for S3
		SecretKey  string `yaml:"secret_key"`  // for S3
		Endpoint   string `yaml:"endpoint"`    // for S3-compatible stores
		PublicRead bool   `yaml:"public_read"` // make files public
	} `yaml:"storage"`

	Upload struct {
		MaxSize      int64    `yaml:"max_size"`      // max file size in bytes
		AllowedTypes []string `yaml:"allowed_types"` // allowed MIME types
		ImageQuality int      `yaml:"image_quality"` // JPEG quality (1-100)
	} `yaml:"upload"`
}

// Load reads configuration from config.yaml, or entirely from environment
// variables when DATABASE_URL is set (test and container deployments).
// A .env file is loaded first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config

	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		cfg.Database.DSN = dbURL
		cfg.Server.Env = os.Getenv("SERVER_ENV")
		cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
		cfg.JWT.Secret = os.Getenv("JWT_SECRET")
		cfg.JWT.TTL = 168 // 7 days

		if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
			for _, o := range strings.Split(origins, ",") {
				cfg.CORS.Origins = append(cfg.CORS.Origins, strings.TrimSpace(o))
			}
		}
		cfg.CORS.WildcardSuffixes = []string{".netlify.app", ".vercel.app"}

		cfg.Storage.Type = "local"
		cfg.Storage.BasePath = "./uploads"
		cfg.Storage.BaseURL = "/uploads"

		cfg.Upload.MaxSize = 5 * 1024 * 1024 // 5MB
		cfg.Upload.AllowedTypes = []string{"image/jpeg", "image/png"}
		cfg.Upload.ImageQuality = 85

		applyDefaults(&cfg)
		return &cfg, nil
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	f, err := os.Open(configPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 4000
	}
	if cfg.JWT.TTL == 0 {
		cfg.JWT.TTL = 168
	}
	if cfg.Upload.MaxSize == 0 {
		cfg.Upload.MaxSize = 5 * 1024 * 1024
	}
	if len(cfg.Upload.AllowedTypes) == 0 {
		cfg.Upload.AllowedTypes = []string{"image/jpeg", "image/png"}
	}
	if cfg.Upload.ImageQuality == 0 {
		cfg.Upload.ImageQuality = 85
	}
	if len(cfg.CORS.WildcardSuffixes) == 0 {
		cfg.CORS.WildcardSuffixes = []string{".netlify.app", ".vercel.app"}
	}
}
