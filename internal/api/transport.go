package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/vladislavdragonenkov/storefront/internal/metrics"
)

// Doer выполняет HTTP-запрос. *http.Client удовлетворяет интерфейсу.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// DoerFunc позволяет использовать функцию как Doer.
type DoerFunc func(req *http.Request) (*http.Response, error)

func (f DoerFunc) Do(req *http.Request) (*http.Response, error) { return f(req) }

// Navigator переводит пользователя на экран входа после потери сессии.
type Navigator interface {
	RedirectToLogin()
}

// NavigatorFunc позволяет использовать функцию как Navigator.
type NavigatorFunc func()

func (f NavigatorFunc) RedirectToLogin() { f() }

// Refresher обменивает refresh token на новый access token.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

// ErrSessionExpired — сессию не удалось продлить, нужен повторный вход.
var ErrSessionExpired = errors.New("session expired, login required")

// RefreshError возвращается исходному вызывающему, если обновление токена не удалось.
// errors.Is(err, ErrSessionExpired) для неё истинно.
type RefreshError struct {
	Err error
}

func (e *RefreshError) Error() string {
	return fmt.Sprintf("refresh access token: %v", e.Err)
}

func (e *RefreshError) Unwrap() []error {
	return []error{ErrSessionExpired, e.Err}
}

// WithBearer добавляет Authorization: Bearer <access> к каждому запросу, если токен сохранён.
func WithBearer(next Doer, tokens TokenStore) Doer {
	return DoerFunc(func(req *http.Request) (*http.Response, error) {
		if token := tokens.AccessToken(); token != "" {
			req = req.Clone(req.Context())
			req.Header.Set("Authorization", "Bearer "+token)
		}
		return next.Do(req)
	})
}

type retriedKey struct{}

func markRetried(ctx context.Context) context.Context {
	return context.WithValue(ctx, retriedKey{}, true)
}

func retried(req *http.Request) bool {
	v, _ := req.Context().Value(retriedKey{}).(bool)
	return v
}

// RefreshOption настраивает WithAuthRefresh.
type RefreshOption func(*authRefresh)

// WithRefreshMetrics включает счётчик storefront_auth_refresh_total.
func WithRefreshMetrics(m *metrics.ClientMetrics) RefreshOption {
	return func(a *authRefresh) {
		a.metrics = m
	}
}

// WithRefreshLogger задаёт logger.
func WithRefreshLogger(logger *log.Entry) RefreshOption {
	return func(a *authRefresh) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// DefaultRefreshTimeout ограничивает общий вызов обновления токена.
const DefaultRefreshTimeout = 10 * time.Second

// WithRefreshTimeout задаёт таймаут обновления; d <= 0 означает DefaultRefreshTimeout.
func WithRefreshTimeout(d time.Duration) RefreshOption {
	return func(a *authRefresh) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// WithoutRefreshFor исключает из протокола запросы, путь которых оканчивается на
// один из suffixes: 401 от них означает неверные учётные данные, а не истёкшую сессию.
func WithoutRefreshFor(suffixes ...string) RefreshOption {
	return func(a *authRefresh) {
		a.exempt = append(a.exempt, suffixes...)
	}
}

type authRefresh struct {
	next      Doer
	tokens    TokenStore
	refresher Refresher
	nav       Navigator
	group     singleflight.Group
	metrics   *metrics.ClientMetrics
	logger    *log.Entry
	exempt    []string
	timeout   time.Duration
}

func (a *authRefresh) exempted(req *http.Request) bool {
	for _, suffix := range a.exempt {
		if strings.HasSuffix(req.URL.Path, suffix) {
			return true
		}
	}
	return false
}

// WithAuthRefresh оборачивает next протоколом однократного обновления токена:
// на 401 запрос помечается как повторённый, токен обновляется, и исходный запрос
// отправляется ещё ровно один раз. Если обновить токен не удалось, токены удаляются,
// nav.RedirectToLogin() вызывается, а вызывающий получает *RefreshError.
// Одновременные 401 разделяют один вызов обновления.
//
// next должен сам добавлять bearer-токен (см. WithBearer), чтобы повтор ушёл с новым.
func WithAuthRefresh(next Doer, tokens TokenStore, refresher Refresher, nav Navigator, opts ...RefreshOption) Doer {
	a := &authRefresh{
		next:      next,
		tokens:    tokens,
		refresher: refresher,
		nav:       nav,
		logger:    log.WithField("component", "auth-refresh"),
		timeout:   DefaultRefreshTimeout,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *authRefresh) Do(req *http.Request) (*http.Response, error) {
	resp, err := a.next.Do(req)
	if err != nil || resp.StatusCode != http.StatusUnauthorized || retried(req) || a.exempted(req) {
		return resp, err
	}
	if req.Body != nil && req.Body != http.NoBody && req.GetBody == nil {
		a.logger.WithField("url", req.URL.String()).Warn("request body cannot be replayed, skipping token refresh")
		return resp, nil
	}

	drain(resp)

	if _, err := a.refresh(req.Context()); err != nil {
		// Отмена вызывающим — не потеря сессии: токены остаются.
		if ctxErr := req.Context().Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return nil, ctxErr
		}
		return nil, &RefreshError{Err: err}
	}

	retry := req.Clone(markRetried(req.Context()))
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, fmt.Errorf("replay request body: %w", err)
		}
		retry.Body = body
	}
	return a.next.Do(retry)
}

// refresh обновляет токен одним общим вызовом. Вызов не зависит от отмены ctx
// отдельного запроса, только от своего таймаута; отменённый вызывающий просто
// перестаёт ждать, остальные получают результат.
func (a *authRefresh) refresh(ctx context.Context) (string, error) {
	ch := a.group.DoChan("refresh", func() (interface{}, error) {
		refreshCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.timeout)
		defer cancel()

		access, err := a.refresher.Refresh(refreshCtx, a.tokens.RefreshToken())
		if err != nil {
			a.metrics.RecordRefresh("failure")
			a.logger.WithError(err).Warn("token refresh failed, clearing credentials")
			if clearErr := a.tokens.Clear(); clearErr != nil {
				a.logger.WithError(clearErr).Error("failed to clear credentials")
			}
			if a.nav != nil {
				a.nav.RedirectToLogin()
			}
			return "", err
		}

		if err := a.tokens.SetAccessToken(access); err != nil {
			a.logger.WithError(err).Warn("new access token not persisted")
		}
		a.metrics.RecordRefresh("success")
		a.logger.Debug("access token refreshed")
		return access, nil
	})

	select {
	case <-ctx.Done():
		a.logger.Debug("request cancelled while waiting for token refresh")
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		if res.Shared {
			a.logger.Debug("joined in-flight token refresh")
		}
		return res.Val.(string), nil
	}
}

func drain(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	_ = resp.Body.Close()
}

var _ Doer = (*authRefresh)(nil)

// Пути, выдающие токены: 401 от них не запускает обновление.
const (
	LoginPath    = "/auth/login/"
	RegisterPath = "/auth/register/"
)

// NewAuthTransport собирает стандартную цепочку: bearer → однократное обновление на 401.
// Обновление идёт напрямую через base; вход и регистрация из протокола исключены.
func NewAuthTransport(base Doer, baseURL string, tokens TokenStore, nav Navigator, opts ...RefreshOption) Doer {
	opts = append([]RefreshOption{WithoutRefreshFor(LoginPath, RegisterPath)}, opts...)
	return WithAuthRefresh(WithBearer(base, tokens), tokens, NewTokenRefresher(baseURL, base), nav, opts...)
}
