// Package retry implementa reintentos con backoff exponencial acotado.
//
// La espera entre intentos usa un timer y respeta la cancelación del contexto,
// así una petición abandonada no deja trabajo pendiente.
package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrExhausted se devuelve cuando se agotan los intentos. No envuelve el último error.
var ErrExhausted = errors.New("reintentos agotados, intente más tarde")

// Valores por defecto: 3 intentos, 1000 ms, multiplicador 2.
const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = time.Second
	DefaultMultiplier  = 2.0
)

// Policy configura los reintentos.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Multiplier  float64

	// Retryable decide si un error se reintenta. Si es nil no se reintenta ninguno.
	Retryable func(error) bool

	// Wait espera d o hasta que se cancele ctx. Nil usa un timer.
	Wait func(ctx context.Context, d time.Duration) error

	// OnRetry se invoca antes de cada espera (attempt empieza en 1).
	OnRetry func(attempt int, delay time.Duration, err error)
}

// DefaultPolicy devuelve la política por defecto con el predicado indicado.
func DefaultPolicy(retryable func(error) bool) Policy {
	return Policy{
		MaxAttempts: DefaultMaxAttempts,
		BaseDelay:   DefaultBaseDelay,
		Multiplier:  DefaultMultiplier,
		Retryable:   retryable,
	}
}

// Delay devuelve la espera tras el intento attempt: BaseDelay * Multiplier^(attempt-1).
func (p Policy) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	mult := p.Multiplier
	if mult <= 0 {
		mult = DefaultMultiplier
	}
	return time.Duration(float64(p.BaseDelay) * math.Pow(mult, float64(attempt-1)))
}

// Do ejecuta op aplicando la política. Los errores no reintentables se propagan sin cambios;
// al agotar los intentos devuelve un error que cumple errors.Is(err, ErrExhausted).
func Do[T any](ctx context.Context, p Policy, op func(context.Context) (T, error)) (T, error) {
	var zero T
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}
	wait := p.Wait
	if wait == nil {
		wait = Sleep
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		out, err := op(ctx)
		if err == nil {
			return out, nil
		}
		if p.Retryable == nil || !p.Retryable(err) {
			return zero, err
		}
		lastErr = err
		if attempt == attempts {
			break
		}

		delay := p.Delay(attempt)
		if p.OnRetry != nil {
			p.OnRetry(attempt, delay, err)
		}
		if werr := wait(ctx, delay); werr != nil {
			return zero, werr
		}
	}
	return zero, fmt.Errorf("%w (%d intentos; último error: %v)", ErrExhausted, attempts, lastErr)
}

// Sleep espera d o hasta que ctx termine; en ese caso devuelve ctx.Err().
func Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
