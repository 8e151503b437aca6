// config предоставляет структуру конфигурации сервиса и функции
// загрузки из файла/переменных окружения с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config — корневая конфигурация сервиса.
// Источники значений (по убыванию приоритета):
//  1. явный путь через флаг --config;
//  2. путь в переменной окружения CONFIG_PATH;
//  3. файл local.yaml из рабочей директории;
//  4. переменные окружения (cleanenv).
type Config struct {
	Env       string          `yaml:"env" env:"ENV" env-default:"local"`
	HTTP      HTTPConfig      `yaml:"http"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	DB        DBConfig        `yaml:"db"`
	Redis     RedisConfig     `yaml:"redis"`
	Auth      AuthConfig      `yaml:"auth"`
	Lightning LightningConfig `yaml:"lightning"`
	Wallet    WalletConfig    `yaml:"wallet"`
	Timeouts  TimeoutConfig   `yaml:"timeouts"`
}

// HTTPConfig — публичный REST-сервер гейтвея.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"50070"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string { return net.JoinHostPort(h.Host, h.Port) }

// MetricsConfig — отдельный HTTP для Prometheus и health-проб.
type MetricsConfig struct {
	Host string `yaml:"host" env:"METRICS_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"METRICS_PORT" env-default:"50075"`
}

// Addr возвращает адрес в формате host:port.
func (m MetricsConfig) Addr() string { return net.JoinHostPort(m.Host, m.Port) }

// DBConfig — настройки подключения к базе данных.
type DBConfig struct {
	DatabaseURL string `yaml:"db_url" env:"DATABASE_URL" env-required:"true"`
}

// RedisConfig — настройки Redis-хранилища токенов.
// Пустой URL означает in-memory хранилище (single-instance развёртывание).
type RedisConfig struct {
	RedisURL string `yaml:"redis_url" env:"REDIS_URL" env-default:""`
}

// AuthConfig содержит параметры выпуска токенов.
type AuthConfig struct {
	// TokenTTL — время жизни пары access+refresh токенов.
	TokenTTL time.Duration `yaml:"token_ttl" env:"TOKEN_TTL" env-default:"24h"`
	// SweepPeriod — период фоновой уборки просроченных токенов.
	SweepPeriod time.Duration `yaml:"sweep_period" env:"TOKEN_SWEEP_PERIOD" env-default:"30m"`
}

// LightningConfig — подключение к платёжной ноде.
type LightningConfig struct {
	// RESTURL — адрес REST-прокси ноды LND.
	RESTURL string `yaml:"rest_url" env:"LND_REST_URL" env-required:"true"`
	// Macaroon — hex-строка macaroon для аутентификации.
	Macaroon string `yaml:"macaroon" env:"LND_MACAROON" env-default:""`
	// Timeout — таймаут HTTP-запросов к ноде.
	Timeout time.Duration `yaml:"timeout" env:"LND_TIMEOUT" env-default:"30s"`
}

// WalletConfig — параметры учёта кошелька.
type WalletConfig struct {
	// FeeLimit — резерв на комиссию при проверке баланса перед платежом (сатоши).
	FeeLimit int64 `yaml:"fee_limit" env:"WALLET_FEE_LIMIT" env-default:"10"`
	// InvoiceExpiry — срок действия выпускаемых инвойсов.
	InvoiceExpiry time.Duration `yaml:"invoice_expiry" env:"WALLET_INVOICE_EXPIRY" env-default:"24h"`
	// PayTimeout — дедлайн на исполнение платежа нодой; по его истечении
	// платёж остаётся pending до реконсиляции.
	PayTimeout time.Duration `yaml:"pay_timeout" env:"WALLET_PAY_TIMEOUT" env-default:"60s"`
	// ReconcilePeriod — период фоновой реконсиляции pending-транзакций.
	ReconcilePeriod time.Duration `yaml:"reconcile_period" env:"WALLET_RECONCILE_PERIOD" env-default:"1m"`
	// Partners — список разрешённых partner_id; пустой список снимает ограничение.
	Partners []string `yaml:"partners" env:"WALLET_PARTNERS" env-default:""`
}

// TimeoutConfig — таймауты сервиса.
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"SERVICE" env-default:"15s"`
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}

	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
// ВАЖНО: после чтения файла накладываем ENV-переменные поверх значений из YAML.
func Load(path string) (*Config, error) {
	var cfg Config

	// чтение файла + overlay ENV.
	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}

		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return &cfg, nil
	}

	// 1) Явный путь.
	if path != "" {
		return tryRead(path)
	}

	// 2) CONFIG_PATH.
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		return tryRead(envPath)
	}

	// 3) ./local.yaml.
	if _, err := os.Stat("local.yaml"); err == nil {
		if err := cleanenv.ReadConfig("local.yaml", &cfg); err != nil {
			return nil, fmt.Errorf("failed to read local.yaml: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return &cfg, nil
	}

	// 4) Только ENV.
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}

	return &cfg, nil
}
