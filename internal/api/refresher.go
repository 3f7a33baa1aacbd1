package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/vladislavdragonenkov/storefront/internal/version"
)

// ErrNoRefreshToken — refresh token не сохранён, обновлять нечем.
var ErrNoRefreshToken = errors.New("no refresh token stored")

// TokenRefresher обновляет access token через POST /auth/refresh.
// doer должен быть «голым» транспортом, без WithAuthRefresh, иначе 401 на
// самом обновлении запустит ещё одно обновление.
type TokenRefresher struct {
	baseURL string
	doer    Doer
}

// NewTokenRefresher создаёт refresher для API по адресу baseURL.
func NewTokenRefresher(baseURL string, doer Doer) *TokenRefresher {
	if doer == nil {
		doer = http.DefaultClient
	}
	return &TokenRefresher{baseURL: strings.TrimRight(baseURL, "/"), doer: doer}
}

func (r *TokenRefresher) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", ErrNoRefreshToken
	}

	body, err := json.Marshal(map[string]string{"refresh": refreshToken})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/auth/refresh", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := r.doer.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read refresh response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", parseError(resp.StatusCode, raw)
	}

	var out struct {
		Access string `json:"access"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("decode refresh response: %w", err)
	}
	if out.Access == "" {
		return "", errors.New("refresh response has no access token")
	}
	return out.Access, nil
}

var _ Refresher = (*TokenRefresher)(nil)
