package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/employee-api/internal/infrastructure/ratelimit"
)

var _ ratelimit.StatsRecorder = (*RateLimitStats)(nil)

// Config conexión a Redis para estadísticas del limitador.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// Connect crea el cliente y verifica la conexión.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return rdb, nil
}

// RateLimitStats acumula decisiones del limitador en hashes de Redis:
//
//	<prefix>:total               allowed/denied acumulados (sin expiración)
//	<prefix>:minute:<yyyymmddhhmm> contadores por minuto (expiran con ttl)
//	<prefix>:route               <ruta>:allowed / <ruta>:denied
type RateLimitStats struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRateLimitStats construye el registrador.
func NewRateLimitStats(rdb *redis.Client, prefix string, ttl time.Duration) *RateLimitStats {
	prefix = strings.Trim(prefix, ":")
	if prefix == "" {
		prefix = "employee-api:ratelimit"
	}
	return &RateLimitStats{rdb: rdb, prefix: prefix, ttl: ttl}
}

// Record registra la decisión en un pipeline. Un nil receiver o cliente no registra nada.
func (s *RateLimitStats) Record(ctx context.Context, ev ratelimit.StatsEvent) error {
	if s == nil || s.rdb == nil {
		return nil
	}
	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}

	pipe := s.rdb.Pipeline()
	for _, kv := range s.increments(ev, at) {
		pipe.HIncrBy(ctx, kv.key, kv.field, 1)
		if kv.expire && s.ttl > 0 {
			pipe.Expire(ctx, kv.key, s.ttl)
		}
	}
	_, err := pipe.Exec(ctx)
	return err
}

type increment struct {
	key    string
	field  string
	expire bool
}

// increments calcula los contadores que toca una decisión.
func (s *RateLimitStats) increments(ev ratelimit.StatsEvent, at time.Time) []increment {
	field := "denied"
	if ev.Allowed {
		field = "allowed"
	}
	out := []increment{
		{key: s.prefix + ":total", field: field},
		{key: fmt.Sprintf("%s:minute:%s", s.prefix, at.UTC().Format("200601021504")), field: field, expire: true},
	}
	if route := strings.TrimSpace(ev.Route); route != "" {
		out = append(out, increment{key: s.prefix + ":route", field: route + ":" + field})
	}
	return out
}
