package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/admin"
	"github.com/vladislavdragonenkov/storefront/internal/api"
	"github.com/vladislavdragonenkov/storefront/internal/cart"
	"github.com/vladislavdragonenkov/storefront/internal/checkout"
	"github.com/vladislavdragonenkov/storefront/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/storefront/internal/health"
	"github.com/vladislavdragonenkov/storefront/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
	"github.com/vladislavdragonenkov/storefront/internal/service/cartsync"
	"github.com/vladislavdragonenkov/storefront/internal/version"
)

// Dependencies содержит все зависимости клиента: хранилище, API, корзину и publisher событий.
type Dependencies struct {
	Config      Config
	Logger      *log.Entry
	Metrics     *metrics.ClientMetrics
	KV          domain.KeyValueStore
	Credentials *api.CredentialStore
	Client      *api.Client
	Cart        *cart.Store
	Publisher   domain.EventPublisher
	ClientID    string

	httpClient     *http.Client
	storageChecker healthcheck.Checker
	producer       *kafka.Producer
	closeStorage   func() error
}

// NewDependencies создаёт и инициализирует все зависимости. nav вызывается, когда
// сессию не удалось продлить и пользователю нужно войти заново.
func NewDependencies(ctx context.Context, cfg Config, nav api.Navigator, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := metrics.NewClientMetrics()

	storage, err := initStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	producer, err := initKafkaProducer(cfg.KafkaBrokers, logger)
	if err != nil {
		producer = nil
	}
	publisher := eventPublisher(producer, m)

	clientID, err := loadClientID(storage.kv)
	if err != nil {
		logger.WithError(err).Warn("client id is not persisted, events will use a temporary one")
	}

	credentials := api.NewCredentialStore(storage.kv, logger.WithField("component", "credentials"))
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	transport := api.NewAuthTransport(httpClient, cfg.APIURL, credentials, nav,
		api.WithRefreshMetrics(m),
		api.WithRefreshLogger(logger.WithField("component", "auth-refresh")),
	)
	client := api.NewClient(cfg.APIURL, transport, credentials,
		api.WithClientMetrics(m),
		api.WithClientLogger(logger.WithField("component", "api-client")),
	)

	cartLogger := logger.WithField("component", "cart")
	store := cart.Open(storage.kv,
		cart.WithMetrics(m),
		cart.WithLogger(cartLogger),
		cart.WithObserver(cart.NewEventObserver(publisher, clientID, cartLogger)),
	)

	return &Dependencies{
		Config:         cfg,
		Logger:         logger,
		Metrics:        m,
		KV:             storage.kv,
		Credentials:    credentials,
		Client:         client,
		Cart:           store,
		Publisher:      publisher,
		ClientID:       clientID,
		httpClient:     httpClient,
		storageChecker: storage.storageChecker,
		producer:       producer,
		closeStorage:   storage.closeFn,
	}, nil
}

// loadClientID возвращает постоянный идентификатор установки; создаёт его при первом запуске.
func loadClientID(kv domain.KeyValueStore) (string, error) {
	id, err := kv.Get(domain.KeyClientID)
	if err == nil && id != "" {
		return id, nil
	}
	id = uuid.NewString()
	if err != nil && !errors.Is(err, domain.ErrKeyNotFound) {
		return id, err
	}
	return id, kv.Set(domain.KeyClientID, id)
}

// NewCheckoutFlow создаёт мастер оформления поверх корзины с оформлением заказа через API.
func (d *Dependencies) NewCheckoutFlow() *checkout.Flow {
	logger := d.Logger.WithField("component", "checkout")
	return checkout.NewFlow(d.Cart,
		checkout.WithPaymentDelay(d.Config.PaymentDelay),
		checkout.WithOrderPlacer(checkout.NewAPIOrderPlacer(d.Client.Cart, d.Client.Orders, logger)),
		checkout.WithEventPublisher(d.Publisher),
		checkout.WithMetrics(d.Metrics),
		checkout.WithLogger(logger),
	)
}

// DashboardLoader создаёт загрузчик панели администратора.
func (d *Dependencies) DashboardLoader() *admin.Loader {
	return admin.NewLoader(d.Client.Orders, d.Client.Products, d.Client.Orders)
}

// NewSyncWorker создаёт воркер синхронизации корзины с сервером. Корзина читается
// из хранилища на каждом прогоне: агент видит изменения, сделанные командами CLI.
func (d *Dependencies) NewSyncWorker() *cartsync.Worker {
	return cartsync.NewWorker(cart.NewStoredCart(d.KV), d.Client.Cart, d.Credentials,
		cartsync.WithPollInterval(d.Config.SyncInterval),
		cartsync.WithMetrics(d.Metrics),
		cartsync.WithLogger(d.Logger.WithField("component", "cart-sync")),
	)
}

// HealthHandler собирает проверки агента: хранилище обязательно, API — нет.
func (d *Dependencies) HealthHandler() *healthcheck.Handler {
	h := healthcheck.NewHandler(version.GetVersion())
	if d.storageChecker != nil {
		h.RegisterChecker("storage", d.storageChecker)
	}
	h.RegisterChecker("api", healthcheck.NewPingChecker("api", d.pingAPI, 0).Optional())
	return h
}

// pingAPI считает API доступным при любом HTTP-ответе.
func (d *Dependencies) pingAPI(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, d.Config.APIURL, nil)
	if err != nil {
		return err
	}
	resp, err := d.httpClient.Do(req)
	if err != nil {
		return err
	}
	_ = resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("api responded %d", resp.StatusCode)
	}
	return nil
}

// Close освобождает producer и хранилище.
func (d *Dependencies) Close() error {
	if d == nil {
		return nil
	}
	closeKafka(d.producer, d.Logger)
	if d.closeStorage != nil {
		return d.closeStorage()
	}
	return nil
}
