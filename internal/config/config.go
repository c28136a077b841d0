package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	errorsUtils "github.com/Egor213/CallTrack/pkg/errors"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type (
	Config struct {
		App        `yaml:"app"`
		Log        `yaml:"log"`
		PG         `yaml:"postgres"`
		HTTP       `yaml:"http"`
		GRPC       `yaml:"grpc"`
		Prometheus `yaml:"prometheus"`
		Broker     `yaml:"broker"`
	}

	App struct {
		Name     string `yaml:"name" env-required:"true"`
		Version  string `yaml:"version" env-required:"true"`
		Timezone string `yaml:"timezone" env:"APP_TIMEZONE" env-default:"Local"`
	}

	Log struct {
		Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	}

	PG struct {
		MaxPoolSize    int           `env-required:"true" env:"MAX_POOL_SIZE" yaml:"max_pool_size"`
		URL            string        `env-required:"true" env:"PG_URL"`
		MigrationsPath string        `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"migrations"`
		ConnAttempts   int           `yaml:"conn_attempts" env:"PG_CONN_ATTEMPTS" env-default:"10"`
		ConnRetryDelay time.Duration `yaml:"conn_retry_delay" env:"PG_CONN_RETRY_DELAY" env-default:"1s"`
	}

	HTTP struct {
		Port            string        `env-required:"true" yaml:"port" env:"HTTP_PORT"`
		ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"5s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"5s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"3s"`
	}

	Prometheus struct {
		Port string `env-required:"true" yaml:"port" env:"PROMETHEUS_PORT"`
	}

	GRPC struct {
		Port string `env-required:"true" yaml:"port" env:"GRPC_PORT"`
	}

	// Broker is optional: an empty driver disables publication.
	Broker struct {
		Driver  string   `yaml:"driver" env:"BROKER_DRIVER"`
		Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS" env-separator:","`
		Topic   string   `yaml:"topic" env:"KAFKA_TOPIC" env-default:"api-logs"`
		NatsURL string   `yaml:"nats_url" env:"NATS_URL" env-default:"nats://127.0.0.1:4222"`
		Subject string   `yaml:"subject" env:"NATS_SUBJECT" env-default:"calltrack.logs"`
	}
)

const (
	ENV_PATH            = "infra/.env.dev"
	DEFAULT_CONFIG_PATH = "infra/config.yaml"
)

func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.WithField("path", path).Debug(".env file not found, using process environment")
		return nil
	}
	return err
}

func New() (*Config, error) {
	if err := loadDotEnv(ENV_PATH); err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	pathToConfig, ok := os.LookupEnv("APP_CONFIG_PATH")
	if !ok || pathToConfig == "" {
		log.WithField("env_var", "APP_CONFIG_PATH").
			Info("Config path is not set, using default")
		pathToConfig = DEFAULT_CONFIG_PATH
	}

	return Load(pathToConfig)
}

// Load reads the YAML file at path and applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	if err := cleanenv.UpdateEnv(cfg); err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	return cfg, nil
}

// Location resolves the timezone used for hourly stats labels.
func (a App) Location() (*time.Location, error) {
	if a.Timezone == "" || a.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(a.Timezone)
}
