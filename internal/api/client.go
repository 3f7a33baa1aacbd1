// Package api — клиент REST API магазина: транспорт с bearer-токеном и
// однократным обновлением, разбор ошибок DRF и типизированные сервисы.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/metrics"
	"github.com/vladislavdragonenkov/storefront/internal/version"
)

// Client выполняет JSON-запросы к API. Аутентификация — забота переданного Doer.
type Client struct {
	baseURL string
	doer    Doer
	metrics *metrics.ClientMetrics
	logger  *log.Entry

	Auth       *AuthService
	Products   *ProductService
	Categories *CategoryService
	Orders     *OrderService
	Cart       *ServerCartService
}

// ClientOption настраивает Client.
type ClientOption func(*Client)

// WithClientMetrics включает метрики HTTP-вызовов.
func WithClientMetrics(m *metrics.ClientMetrics) ClientOption {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithClientLogger задаёт logger.
func WithClientLogger(logger *log.Entry) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient создаёт клиента. tokens нужен сервису Auth для сохранения токенов
// при входе и удаления при выходе.
func NewClient(baseURL string, doer Doer, tokens TokenStore, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		doer:    doer,
		logger:  log.WithField("component", "api-client"),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Auth = &AuthService{client: c, tokens: tokens}
	c.Products = &ProductService{client: c}
	c.Categories = &CategoryService{client: c}
	c.Orders = &OrderService{client: c}
	c.Cart = &ServerCartService{client: c}
	return c
}

// Do отправляет запрос с JSON-телом in и декодирует ответ в out (если out != nil).
// Коды не из 2xx возвращаются как *Error.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, in, out interface{}) error {
	raw, err := c.roundTrip(ctx, method, path, query, in)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, in interface{}) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s request: %w", method, path, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	logger := c.logger.WithFields(log.Fields{
		"method":     method,
		"path":       path,
		"request_id": requestID,
	})

	start := time.Now()
	resp, err := c.doer.Do(req)
	if err != nil {
		c.metrics.ObserveAPIRequest(method, 0, time.Since(start))
		logger.WithError(err).Warn("api request failed")
		return nil, err
	}
	defer resp.Body.Close()
	c.metrics.ObserveAPIRequest(method, resp.StatusCode, time.Since(start))

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s %s response: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := parseError(resp.StatusCode, raw)
		logger.WithField("status", resp.StatusCode).Debug(apiErr.Error())
		return nil, apiErr
	}

	logger.WithFields(log.Fields{
		"status":      resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("api request")
	return raw, nil
}

// getList читает список, который API отдаёт либо массивом, либо страницей {"results": [...]}.
func getList[T any](ctx context.Context, c *Client, path string, query url.Values) ([]T, error) {
	raw, err := c.roundTrip(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("decode %s list: %w", path, err)
		}
		return items, nil
	}

	var page struct {
		Results []T `json:"results"`
	}
	if err := json.Unmarshal(trimmed, &page); err != nil {
		return nil, fmt.Errorf("decode %s page: %w", path, err)
	}
	return page.Results, nil
}
