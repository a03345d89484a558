package config

import (
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port         string
	DBDSN        string
	LogFile      string
	CatalogSize  int
	CatalogSeed  int64
	CatalogReuse bool
	LatencyMin   time.Duration
	LatencyMax   time.Duration
	RedisAddr    string // empty disables the result cache
	CacheTTL     time.Duration
	Collation    string
}

func defaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_DSN", "shopfront.db") // sqlite file in project root
	v.SetDefault("LOG_FILE", "./shopfront.log")
	v.SetDefault("CATALOG_SIZE", 1000)
	v.SetDefault("CATALOG_SEED", 42)
	v.SetDefault("CATALOG_REUSE", true)
	v.SetDefault("LATENCY_MIN_MS", 50)
	v.SetDefault("LATENCY_MAX_MS", 200)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("CACHE_TTL", "5m")
	v.SetDefault("COLLATION", "en")
}

// Load resolves settings from defaults, an optional file named by CONFIG_FILE
// and the environment, in increasing precedence.
func Load() Config {
	v := viper.New()
	defaults(v)
	v.AutomaticEnv()

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		v.SetConfigType(strings.TrimPrefix(filepath.Ext(file), "."))
		if err := v.ReadInConfig(); err != nil {
			log.Printf("[config] ignoring CONFIG_FILE=%s: %v", file, err)
		}
	}

	cfg := Config{
		Port:         v.GetString("PORT"),
		DBDSN:        v.GetString("DB_DSN"),
		LogFile:      v.GetString("LOG_FILE"),
		CatalogSize:  v.GetInt("CATALOG_SIZE"),
		CatalogSeed:  v.GetInt64("CATALOG_SEED"),
		CatalogReuse: v.GetBool("CATALOG_REUSE"),
		LatencyMin:   time.Duration(v.GetInt("LATENCY_MIN_MS")) * time.Millisecond,
		LatencyMax:   time.Duration(v.GetInt("LATENCY_MAX_MS")) * time.Millisecond,
		RedisAddr:    v.GetString("REDIS_ADDR"),
		CacheTTL:     v.GetDuration("CACHE_TTL"),
		Collation:    v.GetString("COLLATION"),
	}
	if cfg.CatalogSize < 0 {
		cfg.CatalogSize = 0
	}
	if cfg.LatencyMax < cfg.LatencyMin {
		cfg.LatencyMax = cfg.LatencyMin
	}

	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s CATALOG_SIZE=%d CATALOG_SEED=%d CATALOG_REUSE=%t LATENCY=%s..%s REDIS_ADDR=%q CACHE_TTL=%s COLLATION=%s",
		cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.CatalogSize, cfg.CatalogSeed, cfg.CatalogReuse,
		cfg.LatencyMin, cfg.LatencyMax, cfg.RedisAddr, cfg.CacheTTL, cfg.Collation)
	return cfg
}
