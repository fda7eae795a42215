package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"

	"github.com/dishahq/disha/internal/recommend"
)

type Config struct {
	Port        int              `json:"port"`
	JWTSecret   string           `json:"jwt_secret"`
	JWTTTLHours int              `json:"jwt_ttl_hours"`
	CORSOrigins []string         `json:"cors_origins"`
	LogConfig   logger.LogConfig `json:"log_config"`

	DB        DatabaseConfig   `json:"db"`
	Admin     AdminConfig      `json:"admin"`
	AI        AIConfig         `json:"ai"`
	Dataset   DatasetConfig    `json:"dataset"`
	Recommend recommend.Params `json:"recommend"`
	Schedule  ScheduleConfig   `json:"schedule"`
}

type DatabaseConfig struct {
	DSN      string `json:"dsn"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"dbname"`
	SSLMode  string `json:"sslmode"`
}

type AdminConfig struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
}

type AIConfig struct {
	Provider      string      `json:"provider"`
	EmbedModel    string      `json:"embed_model"`
	Data          interface{} `json:"data"`
	TimeoutSec    int         `json:"timeout_sec"`
	LRUSize       int         `json:"lru_size"`
	LRUTTLMinutes int         `json:"lru_ttl_minutes"`
	CacheKeepDays int         `json:"cache_keep_days"`
}

type DatasetConfig struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type ScheduleConfig struct {
	EmbeddingSync  string `json:"embedding_sync"`
	CacheCleanup   string `json:"cache_cleanup"`
	CatalogRefresh string `json:"catalog_refresh"`
	SyncBatchSize  int    `json:"sync_batch_size"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("port is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt_secret is required")
	}
	if cfg.JWTTTLHours == 0 {
		cfg.JWTTTLHours = 24
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.DB.DSN == "" && (cfg.DB.Host == "" || cfg.DB.DBName == "") {
		return nil, fmt.Errorf("db.dsn or db.host/db.dbname is required")
	}
	if cfg.Admin.Username == "" || cfg.Admin.PasswordHash == "" {
		return nil, fmt.Errorf("admin.username and admin.password_hash are required")
	}
	if cfg.AI.Provider == "" {
		return nil, fmt.Errorf("ai.provider is required")
	}
	if cfg.AI.EmbedModel == "" {
		return nil, fmt.Errorf("ai.embed_model is required")
	}
	if cfg.AI.TimeoutSec == 0 {
		cfg.AI.TimeoutSec = 30
	}
	if cfg.AI.LRUSize == 0 {
		cfg.AI.LRUSize = 10000
	}
	if cfg.AI.LRUTTLMinutes == 0 {
		cfg.AI.LRUTTLMinutes = 120
	}
	if cfg.AI.CacheKeepDays == 0 {
		cfg.AI.CacheKeepDays = 30
	}
	if cfg.Schedule.EmbeddingSync == "" {
		cfg.Schedule.EmbeddingSync = "*/10 * * * *"
	}
	if cfg.Schedule.CacheCleanup == "" {
		cfg.Schedule.CacheCleanup = "0 4 * * *"
	}
	if cfg.Schedule.CatalogRefresh == "" {
		cfg.Schedule.CatalogRefresh = "0 */6 * * *"
	}
	if cfg.Schedule.SyncBatchSize == 0 {
		cfg.Schedule.SyncBatchSize = 50
	}

	// Scoring parameters are config, not runtime state: a weight set
	// that does not sum to 1.0 must fail here, before any request runs.
	cfg.Recommend.ApplyDefaults()
	if err := cfg.Recommend.Validate(); err != nil {
		return nil, fmt.Errorf("recommend config: %w", err)
	}
	return &cfg, nil
}
