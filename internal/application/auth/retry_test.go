package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-equipos/internal/application/auth"
	"github.com/jhoicas/Inventario-equipos/internal/domain"
)

func noSleep(delays *[]time.Duration) func(context.Context, time.Duration) error {
	return func(_ context.Context, d time.Duration) error {
		*delays = append(*delays, d)
		return nil
	}
}

func TestRetry_ExitoAlSegundoIntento(t *testing.T) {
	var delays []time.Duration
	p := auth.EmailNotConfirmedPolicy()
	p.Sleep = noSleep(&delays)

	calls := 0
	got, err := auth.Retry(context.Background(), p, func(context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("Email not confirmed")
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 2, calls)
	assert.Equal(t, []time.Duration{2 * time.Second}, delays)
}

func TestRetry_AgotaIntentosYDevuelveErrorOriginal(t *testing.T) {
	var delays []time.Duration
	p := auth.EmailNotConfirmedPolicy()
	p.Sleep = noSleep(&delays)

	original := errors.New("Email not confirmed")
	calls := 0
	_, err := auth.Retry(context.Background(), p, func(context.Context) (int, error) {
		calls++
		if calls == 1 {
			return 0, original
		}
		return 0, errors.New("Email not confirmed (retry)")
	})

	assert.Same(t, original, err)
	assert.Equal(t, 3, calls)
	assert.Len(t, delays, 2)
}

func TestRetry_OtroErrorEnReintentoSigueHastaAgotarYDevuelveOriginal(t *testing.T) {
	var delays []time.Duration
	p := auth.EmailNotConfirmedPolicy()
	p.Sleep = noSleep(&delays)

	original := domain.ErrEmailNotConfirmed
	calls := 0
	_, err := auth.Retry(context.Background(), p, func(context.Context) (int, error) {
		calls++
		if calls == 1 {
			return 0, original
		}
		return 0, errors.New("Invalid login credentials")
	})

	assert.ErrorIs(t, err, domain.ErrEmailNotConfirmed)
	assert.Equal(t, 3, calls)
	assert.Len(t, delays, 2)
}

func TestRetry_OtroErrorYLuegoExito(t *testing.T) {
	var delays []time.Duration
	p := auth.EmailNotConfirmedPolicy()
	p.Sleep = noSleep(&delays)

	calls := 0
	got, err := auth.Retry(context.Background(), p, func(context.Context) (string, error) {
		calls++
		switch calls {
		case 1:
			return "", domain.ErrEmailNotConfirmed
		case 2:
			return "", errors.New("connection reset by peer")
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 3, calls)
}

func TestRetry_ErrorNoReintentableNoReintenta(t *testing.T) {
	var delays []time.Duration
	p := auth.EmailNotConfirmedPolicy()
	p.Sleep = noSleep(&delays)

	calls := 0
	_, err := auth.Retry(context.Background(), p, func(context.Context) (int, error) {
		calls++
		return 0, errors.New("Invalid login credentials")
	})

	assert.EqualError(t, err, "Invalid login credentials")
	assert.Equal(t, 1, calls)
	assert.Empty(t, delays)
}

func TestRetry_ContextoCanceladoDuranteEspera(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := auth.RetryPolicy{MaxAttempts: 3, Delay: time.Hour, Retryable: auth.IsEmailNotConfirmed}

	calls := 0
	_, err := auth.Retry(ctx, p, func(context.Context) (int, error) {
		calls++
		return 0, domain.ErrEmailNotConfirmed
	})

	assert.ErrorIs(t, err, domain.ErrEmailNotConfirmed)
	assert.Equal(t, 1, calls)
}

func TestIsEmailNotConfirmed(t *testing.T) {
	assert.True(t, auth.IsEmailNotConfirmed(errors.New("Email not confirmed")))
	assert.True(t, auth.IsEmailNotConfirmed(errors.New("code: email_not_confirmed")))
	assert.True(t, auth.IsEmailNotConfirmed(domain.ErrEmailNotConfirmed))
	assert.False(t, auth.IsEmailNotConfirmed(errors.New("Invalid login credentials")))
	assert.False(t, auth.IsEmailNotConfirmed(nil))
}
