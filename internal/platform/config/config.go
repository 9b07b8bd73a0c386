// Package config lee la configuración del servicio: defaults < archivo YAML < variables FARM_*.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"farm-livestock-records/internal/domain/lifecycle"
	"farm-livestock-records/internal/platform/logger"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

const EnvPrefix = "FARM"

type Config struct {
	HTTPAddr   string `mapstructure:"http_addr"`
	DBDSN      string `mapstructure:"db_dsn"`
	LogLevel   string `mapstructure:"log_level"`
	LogFormat  string `mapstructure:"log_format"`
	AppName    string `mapstructure:"app_name"`
	PolicyFile string `mapstructure:"policy_file"`

	Reminders RemindersConfig `mapstructure:"reminders"`
}

type RemindersConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}

func Defaults() Config {
	return Config{
		HTTPAddr:  ":8080",
		LogLevel:  "info",
		LogFormat: "text",
		AppName:   "farm-livestock-records",
		Reminders: RemindersConfig{
			Enabled:  true,
			Schedule: "0 6 * * *",
		},
	}
}

// Load arma la configuración. Si path está vacío se usa FARM_CONFIG; sin archivo valen defaults + env.
// PORT y DB_DSN se siguen respetando cuando no hay equivalente FARM_*.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults antes de leer: así AutomaticEnv conoce todas las claves.
	d := Defaults()
	v.SetDefault("http_addr", d.HTTPAddr)
	v.SetDefault("db_dsn", d.DBDSN)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("app_name", d.AppName)
	v.SetDefault("policy_file", d.PolicyFile)
	v.SetDefault("reminders.enabled", d.Reminders.Enabled)
	v.SetDefault("reminders.schedule", d.Reminders.Schedule)

	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	// fallbacks heredados: solo si ni el archivo ni FARM_* definen el valor
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" && !explicit(v, "http_addr") {
		cfg.HTTPAddr = ":" + port
	}
	if dsn := strings.TrimSpace(os.Getenv("DB_DSN")); dsn != "" && !explicit(v, "db_dsn") {
		cfg.DBDSN = dsn
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func explicit(v *viper.Viper, key string) bool {
	_, inEnv := os.LookupEnv(EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_")))
	return inEnv || v.InConfig(key)
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.HTTPAddr) == "" {
		return errors.New("http_addr required")
	}
	if c.Reminders.Enabled {
		if _, err := cron.ParseStandard(c.Reminders.Schedule); err != nil {
			return fmt.Errorf("reminders.schedule %q: %w", c.Reminders.Schedule, err)
		}
	}
	return nil
}

// Logger construye el logger con el nivel y formato configurados.
func (c Config) Logger() logger.Logger {
	return logger.New(logger.Options{
		Level:  logger.ParseLevel(c.LogLevel),
		Format: logger.ParseFormat(c.LogFormat),
		App:    c.AppName,
	})
}

// Policy carga la política desde PolicyFile o devuelve la de fábrica.
func (c Config) Policy() (lifecycle.Policy, error) {
	if strings.TrimSpace(c.PolicyFile) == "" {
		return lifecycle.DefaultPolicy(), nil
	}
	f, err := os.Open(c.PolicyFile)
	if err != nil {
		return lifecycle.Policy{}, fmt.Errorf("open policy: %w", err)
	}
	defer f.Close()
	return lifecycle.LoadPolicy(f)
}
