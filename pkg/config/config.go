package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App       AppConfig
	HTTP      HTTPConfig
	Upstream  UpstreamConfig
	Retry     RetryConfig
	RateLimit RateLimitConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string // trace, debug, info, warn, error
	TopN     int    // cantidad por defecto del ranking de salarios
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// UpstreamConfig servicio de empleados al que se delegan las operaciones.
type UpstreamConfig struct {
	BaseURL string
	Timeout time.Duration // timeout por llamada HTTP
}

// RetryConfig backoff ante respuestas 429 del upstream.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Multiplier  float64
}

// RateLimitConfig limitador del endpoint de ranking (lado cliente).
type RateLimitConfig struct {
	RPS        float64
	Burst      int
	RetryAfter time.Duration
	PerClient  bool // true: un bucket por IP; false: bucket global

	// Estadísticas en Redis (opcional). StatsRedisAddr vacío las desactiva.
	StatsRedisAddr     string
	StatsRedisPassword string
	StatsRedisDB       int
	StatsPrefix        string
	StatsTTL           time.Duration
}

// StatsEnabled indica si hay que registrar estadísticas en Redis.
func (c RateLimitConfig) StatsEnabled() bool {
	return strings.TrimSpace(c.StatsRedisAddr) != ""
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, UPSTREAM_BASE_URL, RETRY_MAX_ATTEMPTS, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return FromViper(v)
}

// FromViper construye la configuración a partir de una instancia de Viper ya cargada.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "employee-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
			TopN:     getInt(v, "TOP_N_DEFAULT", 10),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8111),
		},
		Upstream: UpstreamConfig{
			BaseURL: strings.TrimRight(getString(v, "UPSTREAM_BASE_URL", "http://localhost:8112/api/v1/employee"), "/"),
			Timeout: getDuration(v, "UPSTREAM_TIMEOUT", 5*time.Second),
		},
		Retry: RetryConfig{
			MaxAttempts: getInt(v, "RETRY_MAX_ATTEMPTS", 3),
			BaseDelay:   getDuration(v, "RETRY_BASE_DELAY", time.Second),
			Multiplier:  getFloat(v, "RETRY_MULTIPLIER", 2),
		},
		RateLimit: RateLimitConfig{
			RPS:                getFloat(v, "RATE_LIMIT_RPS", 5),
			Burst:              getInt(v, "RATE_LIMIT_BURST", 10),
			RetryAfter:         getDuration(v, "RATE_LIMIT_RETRY_AFTER", time.Second),
			PerClient:          getBool(v, "RATE_LIMIT_PER_CLIENT", false),
			StatsRedisAddr:     getString(v, "RATE_LIMIT_STATS_REDIS_ADDR", ""),
			StatsRedisPassword: getString(v, "RATE_LIMIT_STATS_REDIS_PASSWORD", ""),
			StatsRedisDB:       getInt(v, "RATE_LIMIT_STATS_REDIS_DB", 0),
			StatsPrefix:        getString(v, "RATE_LIMIT_STATS_PREFIX", "employee-api:ratelimit"),
			StatsTTL:           getDuration(v, "RATE_LIMIT_STATS_TTL", 24*time.Hour),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rechaza valores que dejarían al servicio en un estado inútil.
func (c *Config) Validate() error {
	switch {
	case c.Upstream.BaseURL == "":
		return fmt.Errorf("config: UPSTREAM_BASE_URL es requerido")
	case c.Upstream.Timeout <= 0:
		return fmt.Errorf("config: UPSTREAM_TIMEOUT debe ser positivo")
	case c.Retry.MaxAttempts <= 0:
		return fmt.Errorf("config: RETRY_MAX_ATTEMPTS debe ser positivo")
	case c.Retry.BaseDelay <= 0:
		return fmt.Errorf("config: RETRY_BASE_DELAY debe ser positivo")
	case c.Retry.Multiplier < 1:
		return fmt.Errorf("config: RETRY_MULTIPLIER debe ser >= 1")
	case c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0:
		return fmt.Errorf("config: RATE_LIMIT_RPS y RATE_LIMIT_BURST deben ser positivos")
	case c.App.TopN <= 0:
		return fmt.Errorf("config: TOP_N_DEFAULT debe ser positivo")
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getFloat(v *viper.Viper, key string, def float64) float64 {
	if v.IsSet(key) {
		return v.GetFloat64(key)
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}

// getDuration acepta "1500ms", "2s" o un entero en milisegundos.
func getDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if !v.IsSet(key) {
		return def
	}
	raw := strings.TrimSpace(v.GetString(key))
	if ms, err := strconv.Atoi(raw); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return def
}
