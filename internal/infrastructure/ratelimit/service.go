package ratelimit

import (
	"context"
	"time"
)

// Decision resultado de evaluar una petición.
type Decision struct {
	Allowed bool
	// RetryAfter valor sugerido para el header Retry-After cuando se rechaza.
	RetryAfter time.Duration
}

// StatsEvent una decisión del limitador, para estadísticas.
type StatsEvent struct {
	Key     string
	Route   string
	Allowed bool
	At      time.Time
}

// StatsRecorder registra decisiones (Redis, memoria...). Un fallo no debe bloquear la petición.
type StatsRecorder interface {
	Record(ctx context.Context, ev StatsEvent) error
}

// Service aplica la regla del limitador sin saber nada de HTTP.
type Service struct {
	Store      *Store
	RetryAfter time.Duration
}

// Decide consume un token de key o rechaza de inmediato.
func (s Service) Decide(key string) Decision {
	if s.Store == nil {
		return Decision{Allowed: true}
	}
	retryAfter := s.RetryAfter
	if retryAfter <= 0 {
		retryAfter = time.Second
	}
	if s.Store.Allow(key) {
		return Decision{Allowed: true}
	}
	return Decision{Allowed: false, RetryAfter: retryAfter}
}
