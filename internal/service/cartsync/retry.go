package cartsync

import (
	"errors"
	"net/http"
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/api"
)

// RetryConfig конфигурация для retry логики.
type RetryConfig struct {
	MaxAttempts   int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

// DefaultRetryConfig возвращает конфигурацию по умолчанию.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:   3,
		InitialDelay:  200 * time.Millisecond,
		MaxDelay:      5 * time.Second,
		BackoffFactor: 2.0,
	}
}

// Delay возвращает паузу перед попыткой attempt+1 (attempt считается с 1).
func (c RetryConfig) Delay(attempt int) time.Duration {
	if c.InitialDelay <= 0 {
		return 0
	}
	factor := c.BackoffFactor
	if factor < 1 {
		factor = 1
	}

	delay := c.InitialDelay
	for i := 1; i < attempt; i++ {
		delay = time.Duration(float64(delay) * factor)
		if c.MaxDelay > 0 && delay >= c.MaxDelay {
			return c.MaxDelay
		}
	}
	if c.MaxDelay > 0 && delay > c.MaxDelay {
		return c.MaxDelay
	}
	return delay
}

// shouldRetry: сетевые ошибки, 5xx и 429 повторяем; потерянную сессию и
// остальные 4xx — нет, повтор их не исправит.
func shouldRetry(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, api.ErrSessionExpired) {
		return false
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= http.StatusInternalServerError || apiErr.StatusCode == http.StatusTooManyRequests
	}
	return true
}
