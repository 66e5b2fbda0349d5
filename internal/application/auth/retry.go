package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jhoicas/Inventario-equipos/internal/domain"
)

// RetryPolicy reintento acotado con espera fija para una única condición transitoria.
type RetryPolicy struct {
	MaxAttempts int // total de intentos, incluido el primero
	Delay       time.Duration
	Retryable   func(error) bool
	// Sleep espera d o hasta que ctx termine; nil usa un timer.
	Sleep func(ctx context.Context, d time.Duration) error
}

// EmailNotConfirmedPolicy política del login: el backend a veces responde "Email not confirmed"
// justo después de una confirmación administrativa.
func EmailNotConfirmedPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, Delay: 2 * time.Second, Retryable: IsEmailNotConfirmed}
}

// IsEmailNotConfirmed reconoce el error del backend por código o por mensaje.
func IsEmailNotConfirmed(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, domain.ErrEmailNotConfirmed) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "email not confirmed") || strings.Contains(msg, "email_not_confirmed")
}

// Retry ejecuta fn según la política. Solo el primer error decide si se reintenta; si no es
// reintentable se devuelve tal cual. Una vez iniciados, se agotan los intentos sea cual sea el
// error de cada reintento, y al final se devuelve el error original.
func Retry[T any](ctx context.Context, p RetryPolicy, fn func(ctx context.Context) (T, error)) (T, error) {
	res, err := fn(ctx)
	if err == nil || p.Retryable == nil || !p.Retryable(err) {
		return res, err
	}
	original := err
	sleep := p.Sleep
	if sleep == nil {
		sleep = sleepCtx
	}
	var zero T
	for attempt := 2; attempt <= p.MaxAttempts; attempt++ {
		if serr := sleep(ctx, p.Delay); serr != nil {
			return zero, original
		}
		if res, err = fn(ctx); err == nil {
			return res, nil
		}
	}
	return zero, original
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
