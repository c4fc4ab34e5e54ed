package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/employee-api/pkg/retry"
)

var errThrottled = errors.New("429 too many requests")

// recordingPolicy registra las esperas en lugar de dormir.
func recordingPolicy(delays *[]time.Duration) retry.Policy {
	p := retry.DefaultPolicy(func(err error) bool { return errors.Is(err, errThrottled) })
	p.Wait = func(ctx context.Context, d time.Duration) error {
		*delays = append(*delays, d)
		return ctx.Err()
	}
	return p
}

func TestDo_DosLimitacionesLuegoExito(t *testing.T) {
	var delays []time.Duration
	calls := 0

	out, err := retry.Do(context.Background(), recordingPolicy(&delays), func(context.Context) (string, error) {
		calls++
		if calls <= 2 {
			return "", errThrottled
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, delays)
}

func TestDo_SiempreLimitado_DevuelveExhausted(t *testing.T) {
	var delays []time.Duration
	calls := 0

	_, err := retry.Do(context.Background(), recordingPolicy(&delays), func(context.Context) (int, error) {
		calls++
		return 0, errThrottled
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.ErrorIs(t, err, retry.ErrExhausted)
	assert.NotErrorIs(t, err, errThrottled, "el error terminal no debe confundirse con la limitación original")
	assert.Len(t, delays, 2)
}

func TestDo_ErrorNoReintentableSePropagaSinCambios(t *testing.T) {
	var delays []time.Duration
	boom := errors.New("boom")
	calls := 0

	_, err := retry.Do(context.Background(), recordingPolicy(&delays), func(context.Context) (int, error) {
		calls++
		return 0, boom
	})

	assert.Same(t, boom, err)
	assert.Equal(t, 1, calls)
	assert.Empty(t, delays)
}

func TestDo_CancelacionAbortaLaEspera(t *testing.T) {
	p := retry.DefaultPolicy(func(err error) bool { return errors.Is(err, errThrottled) })
	p.BaseDelay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	done := make(chan error, 1)
	go func() {
		_, err := retry.Do(ctx, p, func(context.Context) (int, error) {
			calls++
			return 0, errThrottled
		})
		done <- err
	}()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	case <-time.After(2 * time.Second):
		t.Fatal("la espera no se abortó al cancelar el contexto")
	}
}

func TestDo_OnRetryRecibeIntentoYEspera(t *testing.T) {
	var delays []time.Duration
	p := recordingPolicy(&delays)
	var attempts []int
	p.OnRetry = func(attempt int, delay time.Duration, err error) {
		attempts = append(attempts, attempt)
		assert.ErrorIs(t, err, errThrottled)
	}

	_, _ = retry.Do(context.Background(), p, func(context.Context) (int, error) { return 0, errThrottled })
	assert.Equal(t, []int{1, 2}, attempts)
}

func TestPolicy_Delay(t *testing.T) {
	p := retry.Policy{BaseDelay: 100 * time.Millisecond, Multiplier: 3}
	assert.Equal(t, 100*time.Millisecond, p.Delay(1))
	assert.Equal(t, 300*time.Millisecond, p.Delay(2))
	assert.Equal(t, 900*time.Millisecond, p.Delay(3))
}

func TestSleep_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, retry.Sleep(ctx, time.Minute), context.Canceled)
}
