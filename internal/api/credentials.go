package api

import (
	"errors"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// TokenStore — хранилище пары токенов, которым пользуются транспорты.
type TokenStore interface {
	AccessToken() string
	RefreshToken() string
	SetAccessToken(token string) error
	Save(creds domain.Credentials) error
	Clear() error
}

// CredentialStore хранит токены в domain.KeyValueStore под ключами
// access_token и refresh_token.
type CredentialStore struct {
	kv     domain.KeyValueStore
	logger *log.Entry
}

// NewCredentialStore создаёт хранилище токенов поверх kv.
func NewCredentialStore(kv domain.KeyValueStore, logger *log.Entry) *CredentialStore {
	if logger == nil {
		logger = log.WithField("component", "credentials")
	}
	return &CredentialStore{kv: kv, logger: logger}
}

func (s *CredentialStore) AccessToken() string {
	return s.get(domain.KeyAccessToken)
}

func (s *CredentialStore) RefreshToken() string {
	return s.get(domain.KeyRefreshToken)
}

// LoggedIn сообщает, есть ли сохранённый access token.
func (s *CredentialStore) LoggedIn() bool {
	return s.AccessToken() != ""
}

func (s *CredentialStore) SetAccessToken(token string) error {
	return s.kv.Set(domain.KeyAccessToken, token)
}

// Save сохраняет оба токена после входа.
func (s *CredentialStore) Save(creds domain.Credentials) error {
	if err := s.kv.Set(domain.KeyAccessToken, creds.AccessToken); err != nil {
		return err
	}
	return s.kv.Set(domain.KeyRefreshToken, creds.RefreshToken)
}

// Clear удаляет оба токена.
func (s *CredentialStore) Clear() error {
	return s.kv.Delete(domain.KeyAccessToken, domain.KeyRefreshToken)
}

func (s *CredentialStore) get(key string) string {
	value, err := s.kv.Get(key)
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			s.logger.WithError(err).WithField("key", key).Warn("failed to read credential")
		}
		return ""
	}
	return value
}

var _ TokenStore = (*CredentialStore)(nil)
