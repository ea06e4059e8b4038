package config

import (
	"log"
	"os"
	"strconv"
	"time"

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
		TTL    int    `yaml:"ttl"` // минуты
	} `yaml:"jwt"`

	// Настройки клиентской части (поллер уведомлений)
	Client struct {
		PollIntervalSec int    `yaml:"poll_interval_sec"` // интервал опроса, по умолчанию 30
		AlertTTLSec     int    `yaml:"alert_ttl_sec"`     // время жизни эфемерного алерта, по умолчанию 5
		StateDir        string `yaml:"state_dir"`         // каталог для локального состояния (скрытые уведомления)
	} `yaml:"client"`
}

var AppConfig *Config

// PollInterval возвращает интервал опроса как time.Duration
func (c *Config) PollInterval() time.Duration {
	if c.Client.PollIntervalSec <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.Client.PollIntervalSec) * time.Second
}

// AlertTTL возвращает время жизни алерта как time.Duration
func (c *Config) AlertTTL() time.Duration {
	if c.Client.AlertTTLSec <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.Client.AlertTTLSec) * time.Second
}

func LoadConfig() {
	var cfg Config

	// .env подхватывается если есть (локальная разработка)
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	serverEnv := os.Getenv("SERVER_ENV")
	portStr := os.Getenv("SERVER_PORT")
	jwtSecret := os.Getenv("JWT_SECRET")

	if dbURL == "" {
		log.Println("Загрузка из config.yaml (режим НЕ-тест)")

		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyClientDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	log.Println("Загрузка конфигурации из переменных окружения (режим теста)")

	cfg.Database.DSN = dbURL
	cfg.Server.Env = serverEnv
	cfg.Server.Port, _ = strconv.Atoi(portStr)
	cfg.JWT.Secret = jwtSecret
	cfg.JWT.TTL = 60

	applyClientDefaults(&cfg)
	AppConfig = &cfg
}

func applyClientDefaults(cfg *Config) {
	if cfg.Client.PollIntervalSec == 0 {
		cfg.Client.PollIntervalSec = 30
	}
	if cfg.Client.AlertTTLSec == 0 {
		cfg.Client.AlertTTLSec = 5
	}
	if cfg.Client.StateDir == "" {
		cfg.Client.StateDir = "./state"
	}
	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = "careconnect-dev-secret"
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
