package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	httpadapter "ordercore/internal/adapters/in/http"
	"ordercore/internal/adapters/out/notify"
	"ordercore/internal/adapters/out/postgres"
	"ordercore/internal/core/application/notifications"
	"ordercore/internal/core/application/usecases/commands"
	"ordercore/internal/core/application/usecases/queries"
	"ordercore/internal/core/domain/model/order"
	"ordercore/internal/core/ports"
	"ordercore/internal/jobs"
	"ordercore/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

type closableSink interface {
	ports.NotificationSink
	Close() error
}

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	clock      func() time.Time
	registry   *prometheus.Registry
	metrics    *metrics.Metrics
	sink       closableSink
	logger     *slog.Logger
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	sink, err := newNotificationSink(cfg, logger)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		clock:      func() time.Time { return time.Now().UTC() },
		registry:   registry,
		metrics:    metrics.New(registry),
		sink:       sink,
		logger:     logger,
	}, nil
}

func newNotificationSink(cfg Config, logger *slog.Logger) (closableSink, error) {
	switch cfg.Notifier {
	case NotifierKafka:
		return notify.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaNotifyTopic), nil
	case NotifierNats:
		sink, err := notify.NewNatsSink(cfg.NatsURL, cfg.NatsSubjectPrefix)
		if err != nil {
			return nil, fmt.Errorf("connect to nats: %w", err)
		}
		return sink, nil
	case NotifierLog:
		return notify.NewLogSink(logger), nil
	default:
		return nil, errors.New("unknown notifier: " + cfg.Notifier)
	}
}

func (c *CompositionRoot) Registry() *prometheus.Registry {
	return c.registry
}

// Close releases the notification sink.
func (c *CompositionRoot) Close() error {
	return c.sink.Close()
}

func (c *CompositionRoot) cartUoWFactory() commands.CartUoWFactory {
	return FuncCartUoWFactory(func() commands.CartUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateGetOrCreateCartCommandHandler() commands.GetOrCreateCartCommandHandler {
	return commands.NewGetOrCreateCartCommandHandler(c.cartUoWFactory())
}

func (c *CompositionRoot) CreateAddCartItemCommandHandler() commands.AddCartItemCommandHandler {
	return commands.NewAddCartItemCommandHandler(c.cartUoWFactory())
}

func (c *CompositionRoot) CreateSetCartItemQuantityCommandHandler() commands.SetCartItemQuantityCommandHandler {
	return commands.NewSetCartItemQuantityCommandHandler(c.cartUoWFactory())
}

func (c *CompositionRoot) CreateAdjustCartItemQuantityCommandHandler() commands.AdjustCartItemQuantityCommandHandler {
	return commands.NewAdjustCartItemQuantityCommandHandler(c.cartUoWFactory())
}

func (c *CompositionRoot) CreateClearCartCommandHandler() commands.ClearCartCommandHandler {
	return commands.NewClearCartCommandHandler(c.cartUoWFactory())
}

func (c *CompositionRoot) CreateSyncCartPricesCommandHandler() commands.SyncCartPricesCommandHandler {
	return commands.NewSyncCartPricesCommandHandler(c.cartUoWFactory())
}

func (c *CompositionRoot) CreateCheckoutCommandHandler() commands.CheckoutCommandHandler {
	var f commands.CheckoutUoWFactory = FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCheckoutCommandHandler(f, order.GenerateNumber, c.clock, c.cfg.OrderNumberAttempts)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateRelayOutboxCommandHandler() (commands.RelayOutboxCommandHandler, error) {
	unit, err := c.cfg.CurrencyUnit()
	if err != nil {
		return commands.RelayOutboxCommandHandler{}, err
	}
	locale, err := c.cfg.LocaleTag()
	if err != nil {
		return commands.RelayOutboxCommandHandler{}, err
	}

	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRelayOutboxCommandHandler(f, notifications.NewComposer(unit, locale), c.sink, c.clock), nil
}

func (c *CompositionRoot) CreateGetCartQueryHandler() queries.GetCartQueryHandler {
	return queries.NewGetCartQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUserOrdersQueryHandler() queries.GetUserOrdersQueryHandler {
	return queries.NewGetUserOrdersQueryHandler(c.gormDB)
}

// CreateValidateCartForCheckoutQueryHandler reads outside any transaction; the unit of
// work is never begun and only supplies the repositories.
func (c *CompositionRoot) CreateValidateCartForCheckoutQueryHandler() queries.ValidateCartForCheckoutQueryHandler {
	uow := c.uowFactory.Create()
	return queries.NewValidateCartForCheckoutQueryHandler(uow.CartRepository(), uow.ProductCatalog())
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Handlers{
		GetOrCreateCart:         c.CreateGetOrCreateCartCommandHandler(),
		AddCartItem:             c.CreateAddCartItemCommandHandler(),
		SetCartItemQuantity:     c.CreateSetCartItemQuantityCommandHandler(),
		AdjustCartItemQuantity:  c.CreateAdjustCartItemQuantityCommandHandler(),
		ClearCart:               c.CreateClearCartCommandHandler(),
		SyncCartPrices:          c.CreateSyncCartPricesCommandHandler(),
		Checkout:                c.CreateCheckoutCommandHandler(),
		ChangeOrderStatus:       c.CreateChangeOrderStatusCommandHandler(),
		GetCart:                 c.CreateGetCartQueryHandler(),
		GetOrder:                c.CreateGetOrderQueryHandler(),
		GetUserOrders:           c.CreateGetUserOrdersQueryHandler(),
		ValidateCartForCheckout: c.CreateValidateCartForCheckoutQueryHandler(),
	}, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	relayHandler, err := c.CreateRelayOutboxCommandHandler()
	if err != nil {
		return nil, err
	}
	relayCommand, err := commands.NewRelayOutboxCommand(c.cfg.OutboxBatchSize)
	if err != nil {
		return nil, err
	}
	return jobs.NewJobManager(relayHandler, relayCommand, c.cfg.OutboxRelaySchedule, c.metrics, c.logger), nil
}

type FuncCartUoWFactory func() commands.CartUoW

func (f FuncCartUoWFactory) Create() commands.CartUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
