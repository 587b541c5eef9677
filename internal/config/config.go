package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Bloque app (opcional en YAML). Si no está, queda vacío.
	App struct {
		// dev | staging | prod
		Env string `yaml:"app_env"`
	} `yaml:"app"`

	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`

	Storage struct {
		// mongo | memory
		Driver string `yaml:"driver"`
		Mongo  struct {
			URI      string `yaml:"uri"`
			Database string `yaml:"database"`
			// Deadline por operación contra el store. Default: 5s.
			OpTimeout string `yaml:"op_timeout"`
		} `yaml:"mongo"`
	} `yaml:"storage"`

	Rate struct {
		Enabled bool `yaml:"enabled"`
		// memory | redis
		Kind  string `yaml:"kind"`
		Redis struct {
			Addr   string `yaml:"addr"`
			DB     int    `yaml:"db"`
			Prefix string `yaml:"prefix"`
		} `yaml:"redis"`
		Register struct {
			Limit  int    `yaml:"limit"`
			Window string `yaml:"window"`
		} `yaml:"register"`
	} `yaml:"rate"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	c.applyDefaults()
	c.applyEnvOverrides()

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Default retorna una configuración utilizable sin YAML (solo env + defaults).
func Default() *Config {
	var c Config
	c.applyDefaults()
	c.applyEnvOverrides()
	return &c
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "mongo"
	}
	if c.Storage.Mongo.Database == "" {
		c.Storage.Mongo.Database = "odic"
	}
	if c.Storage.Mongo.OpTimeout == "" {
		c.Storage.Mongo.OpTimeout = "5s"
	}
	if c.Rate.Kind == "" {
		c.Rate.Kind = "memory"
	}
	if c.Rate.Register.Limit == 0 {
		c.Rate.Register.Limit = 10
	}
	if c.Rate.Register.Window == "" {
		c.Rate.Register.Window = "1m"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// applyEnvOverrides pisa valores del YAML con variables de entorno.
// DB_CONN_STRING se respeta por compatibilidad con despliegues existentes.
func (c *Config) applyEnvOverrides() {
	if v, ok := getEnvStr("APP_ENV"); ok {
		c.App.Env = v
	}
	if v, ok := getEnvStr("SERVER_ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := getEnvStr("STORAGE_DRIVER"); ok {
		c.Storage.Driver = v
	}
	if v, ok := getEnvStr("DB_CONN_STRING"); ok {
		c.Storage.Mongo.URI = v
	}
	if v, ok := getEnvStr("MONGO_URI"); ok {
		c.Storage.Mongo.URI = v
	}
	if v, ok := getEnvStr("MONGO_DATABASE"); ok {
		c.Storage.Mongo.Database = v
	}
	if v, ok := getEnvStr("REDIS_ADDR"); ok {
		c.Rate.Redis.Addr = v
		c.Rate.Kind = "redis"
	}
	if v, ok := getEnvInt("REDIS_DB"); ok {
		c.Rate.Redis.DB = v
	}
	if v, ok := getEnvStr("LOG_LEVEL"); ok {
		c.Log.Level = v
	}
}

// Validate chequea coherencia básica; los string durations se validan acá
// para fallar en el arranque y no en medio de un request.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Storage.Driver) {
	case "mongo", "mongodb":
		if strings.TrimSpace(c.Storage.Mongo.URI) == "" {
			return fmt.Errorf("storage.mongo.uri is required (or DB_CONN_STRING)")
		}
	case "memory":
	default:
		return fmt.Errorf("unsupported storage driver: %s", c.Storage.Driver)
	}
	if _, err := time.ParseDuration(c.Storage.Mongo.OpTimeout); err != nil {
		return fmt.Errorf("storage.mongo.op_timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.Rate.Register.Window); err != nil {
		return fmt.Errorf("rate.register.window: %w", err)
	}
	return nil
}

// OpTimeout retorna el deadline por operación ya parseado.
func (c *Config) OpTimeout() time.Duration {
	d, err := time.ParseDuration(c.Storage.Mongo.OpTimeout)
	if err != nil || d <= 0 {
		return 5 * time.Second
	}
	return d
}

// ---- Helpers env ----

func getEnvStr(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}

func getEnvInt(key string) (int, bool) {
	if s, ok := getEnvStr(key); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return i, true
		}
	}
	return 0, false
}
