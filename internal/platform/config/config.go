package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrInvalidConfig = errors.New("invalid config")

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port      string `mapstructure:"PORT"`
	Env       string `mapstructure:"ENV"`
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
	AppName   string `mapstructure:"APP_NAME"`

	StoreDriver string `mapstructure:"STORE_DRIVER"`
	DBDSN       string `mapstructure:"DB_DSN"`
	SQLitePath  string `mapstructure:"SQLITE_PATH"`

	ParamsFile        string `mapstructure:"PARAMS_FILE"`
	DatasetRecords    int    `mapstructure:"DATASET_RECORDS"`
	DatasetSupplement int    `mapstructure:"DATASET_UNHEALTHY_SUPPLEMENT"`
	DatasetOutput     string `mapstructure:"DATASET_OUTPUT"`
	Seed              uint64 `mapstructure:"SEED"`

	PredictorURL     string        `mapstructure:"PREDICTOR_URL"`
	PredictorAPIKey  string        `mapstructure:"PREDICTOR_API_KEY"`
	PredictorTimeout time.Duration `mapstructure:"PREDICTOR_TIMEOUT"`

	ExportS3Bucket    string `mapstructure:"EXPORT_S3_BUCKET"`
	ExportS3Region    string `mapstructure:"EXPORT_S3_REGION"`
	ExportS3Endpoint  string `mapstructure:"EXPORT_S3_ENDPOINT"`
	ExportS3PathStyle bool   `mapstructure:"EXPORT_S3_PATH_STYLE"`
	ExportS3Prefix    string `mapstructure:"EXPORT_S3_PREFIX"`
}

var keys = []string{
	"PORT", "ENV", "LOG_LEVEL", "LOG_FORMAT", "APP_NAME",
	"STORE_DRIVER", "DB_DSN", "SQLITE_PATH",
	"PARAMS_FILE", "DATASET_RECORDS", "DATASET_UNHEALTHY_SUPPLEMENT", "DATASET_OUTPUT", "SEED",
	"PREDICTOR_URL", "PREDICTOR_API_KEY", "PREDICTOR_TIMEOUT",
	"EXPORT_S3_BUCKET", "EXPORT_S3_REGION", "EXPORT_S3_ENDPOINT", "EXPORT_S3_PATH_STYLE", "EXPORT_S3_PREFIX",
}

// New devuelve un viper con defaults y variables de entorno enlazadas.
// Los comandos pueden enlazar flags encima con BindPFlag.
func New() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("APP_NAME", "cat-health-synth")
	v.SetDefault("STORE_DRIVER", DriverMemory)
	v.SetDefault("SQLITE_PATH", "catgen.db")
	v.SetDefault("DATASET_RECORDS", 1000)
	v.SetDefault("DATASET_UNHEALTHY_SUPPLEMENT", 50)
	v.SetDefault("DATASET_OUTPUT", "cat_health_dataset_supplemented.csv")
	v.SetDefault("SEED", 0)
	v.SetDefault("PREDICTOR_TIMEOUT", "5s")
	v.SetDefault("EXPORT_S3_REGION", "us-east-1")
	v.SetDefault("EXPORT_S3_PREFIX", "datasets/")

	for _, k := range keys {
		_ = v.BindEnv(k)
	}
	return v
}

// LoadDotEnv carga .env si existe; variables ya definidas no se pisan.
func LoadDotEnv(files ...string) {
	_ = godotenv.Load(files...)
}

func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverMemory, DriverSQLite:
	case DriverPostgres:
		if strings.TrimSpace(c.DBDSN) == "" {
			return fmt.Errorf("%w: DB_DSN is required for STORE_DRIVER=postgres", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown STORE_DRIVER %q", ErrInvalidConfig, c.StoreDriver)
	}
	if c.DatasetRecords < 0 || c.DatasetSupplement < 0 {
		return fmt.Errorf("%w: dataset counts must be >= 0", ErrInvalidConfig)
	}
	if c.PredictorTimeout < 0 {
		return fmt.Errorf("%w: PREDICTOR_TIMEOUT must be >= 0", ErrInvalidConfig)
	}
	return nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// EffectiveLogFormat: LOG_FORMAT si está definido; si no, text en desarrollo y json fuera.
func (c *Config) EffectiveLogFormat() string {
	if f := strings.TrimSpace(c.LogFormat); f != "" {
		return f
	}
	if c.IsDev() {
		return "text"
	}
	return "json"
}
