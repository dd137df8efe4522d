package config

import (
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Feeds    FeedsConfig
	Engine   EngineConfig
	Notify   NotifyConfig
	Archive  ArchiveConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Enabled  bool
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type CacheConfig struct {
	Enabled       bool
	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	TTLSeconds    int
}

// FeedsConfig points at the CSV files backing the default data feeds.
type FeedsConfig struct {
	SalesCSV     string
	InventoryCSV string
	CatalogCSV   string
}

// EngineConfig holds the tunables of the replenishment engine.
type EngineConfig struct {
	CycleInterval          time.Duration
	HistoryDays            int
	ForecastHorizonDays    int
	AnnualDemandFactor     float64
	RecommendationTTLHours int
	AutoOrderEnabled       bool
	AutoApproveConfidence  float64
	AutoApproveMaxValue    float64
}

type NotifyConfig struct {
	RabbitURL      string
	RabbitExchange string
}

type ArchiveConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		// Set default values
		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 15)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 15)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("DB_ENABLED", false)
		viper.SetDefault("DATABASE_URL", "")
		viper.SetDefault("DB_HOST", "localhost")
		viper.SetDefault("DB_PORT", "5432")
		viper.SetDefault("DB_USER", "postgres")
		viper.SetDefault("DB_PASSWORD", "postgres")
		viper.SetDefault("DB_NAME", "restock")
		viper.SetDefault("DB_SSLMODE", "disable")
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_TTL_SECONDS", 60)
		viper.SetDefault("FEEDS_SALES_CSV", "")
		viper.SetDefault("FEEDS_INVENTORY_CSV", "")
		viper.SetDefault("FEEDS_CATALOG_CSV", "")
		viper.SetDefault("ENGINE_CYCLE_INTERVAL_MINUTES", 60)
		viper.SetDefault("ENGINE_HISTORY_DAYS", 365)
		viper.SetDefault("ENGINE_FORECAST_HORIZON_DAYS", 90)
		viper.SetDefault("ENGINE_ANNUAL_DEMAND_FACTOR", 4.0)
		viper.SetDefault("ENGINE_RECOMMENDATION_TTL_HOURS", 72)
		viper.SetDefault("ENGINE_AUTO_ORDER_ENABLED", false)
		viper.SetDefault("ENGINE_AUTO_APPROVE_CONFIDENCE", 0.85)
		viper.SetDefault("ENGINE_AUTO_APPROVE_MAX_VALUE", 10000.0)
		viper.SetDefault("RABBITMQ_URL", "")
		viper.SetDefault("RABBITMQ_EXCHANGE", "replenishment_exchange")
		viper.SetDefault("ARCHIVE_ENABLED", false)
		viper.SetDefault("ARCHIVE_ENDPOINT", "")
		viper.SetDefault("ARCHIVE_ACCESS_KEY", "")
		viper.SetDefault("ARCHIVE_SECRET_KEY", "")
		viper.SetDefault("ARCHIVE_BUCKET", "restock-orders")
		viper.SetDefault("ARCHIVE_USE_SSL", true)

		// Read from environment variables
		viper.AutomaticEnv()

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Database: DatabaseConfig{
				Enabled:  viper.GetBool("DB_ENABLED"),
				URL:      viper.GetString("DATABASE_URL"),
				Host:     viper.GetString("DB_HOST"),
				Port:     viper.GetString("DB_PORT"),
				User:     viper.GetString("DB_USER"),
				Password: viper.GetString("DB_PASSWORD"),
				DBName:   viper.GetString("DB_NAME"),
				SSLMode:  viper.GetString("DB_SSLMODE"),
			},
			Cache: CacheConfig{
				Enabled:       viper.GetBool("CACHE_ENABLED"),
				RedisURL:      viper.GetString("REDIS_URL"),
				RedisHost:     viper.GetString("REDIS_HOST"),
				RedisPort:     viper.GetString("REDIS_PORT"),
				RedisPassword: viper.GetString("REDIS_PASSWORD"),
				RedisDB:       viper.GetInt("REDIS_DB"),
				TTLSeconds:    viper.GetInt("CACHE_TTL_SECONDS"),
			},
			Feeds: FeedsConfig{
				SalesCSV:     viper.GetString("FEEDS_SALES_CSV"),
				InventoryCSV: viper.GetString("FEEDS_INVENTORY_CSV"),
				CatalogCSV:   viper.GetString("FEEDS_CATALOG_CSV"),
			},
			Engine: EngineConfig{
				CycleInterval:          time.Duration(viper.GetInt("ENGINE_CYCLE_INTERVAL_MINUTES")) * time.Minute,
				HistoryDays:            viper.GetInt("ENGINE_HISTORY_DAYS"),
				ForecastHorizonDays:    viper.GetInt("ENGINE_FORECAST_HORIZON_DAYS"),
				AnnualDemandFactor:     viper.GetFloat64("ENGINE_ANNUAL_DEMAND_FACTOR"),
				RecommendationTTLHours: viper.GetInt("ENGINE_RECOMMENDATION_TTL_HOURS"),
				AutoOrderEnabled:       viper.GetBool("ENGINE_AUTO_ORDER_ENABLED"),
				AutoApproveConfidence:  viper.GetFloat64("ENGINE_AUTO_APPROVE_CONFIDENCE"),
				AutoApproveMaxValue:    viper.GetFloat64("ENGINE_AUTO_APPROVE_MAX_VALUE"),
			},
			Notify: NotifyConfig{
				RabbitURL:      viper.GetString("RABBITMQ_URL"),
				RabbitExchange: viper.GetString("RABBITMQ_EXCHANGE"),
			},
			Archive: ArchiveConfig{
				Enabled:   viper.GetBool("ARCHIVE_ENABLED"),
				Endpoint:  viper.GetString("ARCHIVE_ENDPOINT"),
				AccessKey: viper.GetString("ARCHIVE_ACCESS_KEY"),
				SecretKey: viper.GetString("ARCHIVE_SECRET_KEY"),
				Bucket:    viper.GetString("ARCHIVE_BUCKET"),
				UseSSL:    viper.GetBool("ARCHIVE_USE_SSL"),
			},
		}
	})

	return instance
}
