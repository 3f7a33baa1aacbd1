package domain

// KeyValueStore — абстрактное локальное хранилище (аналог localStorage браузера).
// Реализации: memory, sqlite, postgres.
type KeyValueStore interface {
	// Get возвращает значение ключа или ErrKeyNotFound.
	Get(key string) (string, error)
	// Set сохраняет значение, перезаписывая предыдущее.
	Set(key, value string) error
	// Delete удаляет ключи; отсутствующие ключи не считаются ошибкой.
	Delete(keys ...string) error
}

// EventPublisher публикует события клиента во внешний брокер.
type EventPublisher interface {
	PublishEvent(topic string, key string, event interface{}) error
}

// Ключи локального хранилища.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyCart         = "cart"
	KeyClientID     = "client_id"
)
