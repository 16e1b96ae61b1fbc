//go:build wireinject
// +build wireinject

package wire

import (
	"log/slog"
	"os"
	"time"

	"dcops-server/cmd/config"
	"dcops-server/internal/infra/cache"
	"dcops-server/internal/infra/pubsub"
	"dcops-server/internal/infra/sql"
	"dcops-server/internal/infra/ticket"
	"dcops-server/internal/workorder/domain"
	"dcops-server/internal/workorder/httpapi"
	"dcops-server/internal/workorder/persistence"
	"dcops-server/internal/workorder/usecases"

	"github.com/google/wire"
)

func InitializeWorkOrderController() (*httpapi.WorkOrderController, error) {
	wire.Build(
		provideAppConfig,
		WorkOrderServiceSet,
		wire.Bind(new(usecases.WorkOrderService), new(*usecases.SimpleWorkOrderService)),
		httpapi.NewWorkOrderController,
	)
	return nil, nil
}

func InitializeRoomController() (*httpapi.RoomController, error) {
	wire.Build(
		provideAppConfig,
		provideDatabase,
		provideCache,
		persistence.NewAssetRepository,
		wire.Bind(new(usecases.AssetRepository), new(*persistence.SimpleAssetRepository)),
		persistence.NewCabinetRepository,
		wire.Bind(new(usecases.CabinetRepository), new(*persistence.SimpleCabinetRepository)),
		persistence.NewWorkOrderRepository,
		wire.Bind(new(usecases.WorkOrderRepository), new(*persistence.SimpleWorkOrderRepository)),
		usecases.NewCabinetAggregator,
		wire.Bind(new(usecases.RoomSummaryService), new(*usecases.CabinetAggregator)),
		httpapi.NewRoomController,
	)
	return nil, nil
}

func InitializeOverdueWorker() (*usecases.OverdueWorker, error) {
	wire.Build(
		provideAppConfig,
		provideTicker,
		provideDatabase,
		provideSLACalculator,
		persistence.NewWorkOrderRepository,
		wire.Bind(new(usecases.WorkOrderRepository), new(*persistence.SimpleWorkOrderRepository)),
		usecases.NewOverdueWorker,
	)
	return nil, nil
}

var WorkOrderServiceSet = wire.NewSet(
	provideDatabase,
	providePubSubFactory,
	providePublisherFactory,
	provideTicketClient,
	provideSLACalculator,
	persistence.NewWorkOrderRepository,
	wire.Bind(new(usecases.WorkOrderRepository), new(*persistence.SimpleWorkOrderRepository)),
	persistence.NewAssetRepository,
	wire.Bind(new(usecases.AssetRepository), new(*persistence.SimpleAssetRepository)),
	persistence.NewRoomRepository,
	wire.Bind(new(usecases.RoomRepository), new(*persistence.SimpleRoomRepository)),
	persistence.NewUnitOfWork,
	wire.Bind(new(usecases.UnitOfWork), new(*persistence.SimpleUnitOfWork)),
	usecases.NewOperationRegistry,
	usecases.NewBatchIDGenerator,
	usecases.NewWorkOrderService,
)

func provideAppConfig() config.AppConfig {
	return config.LoadConfig()
}

func providePubSubFactory(config config.AppConfig) *pubsub.Factory {
	env, ok := os.LookupEnv("ENV")
	if !ok {
		env = "production"
	}

	group := config.Kafka.Group
	if group == "" {
		group = "dcops-server"
	}

	return pubsub.NewFactory(pubsub.FactoryOptions{
		Environment:   env,
		KafkaBrokers:  config.Kafka.Brokers,
		ConsumerGroup: group,
	})
}

func providePublisherFactory(factory *pubsub.Factory) pubsub.PublisherFactory {
	return factory.GetPublisherFactory()
}

func provideDatabase(config config.AppConfig) sql.ORM {
	env, ok := os.LookupEnv("ENV")
	if !ok {
		env = "production"
	}

	if env == "local" {
		orm, err := sql.NewMemoryORM()
		if err != nil {
			panic(err)
		}

		return orm
	}

	db := sql.NewPosgreDatabase(config.Postgresql.URL)
	if err := db.Open(); err != nil {
		panic(err)
	}

	orm, err := sql.NewPosgreORM(config.Postgresql.DSN)
	if err != nil {
		panic(err)
	}

	return orm
}

func provideTicketClient(config config.AppConfig) ticket.Client {
	return ticket.NewHTTPClient(ticket.Config{
		BaseURL:    config.Ticket.BaseURL,
		AppID:      config.Ticket.AppID,
		Username:   config.Ticket.Username,
		Timeout:    config.Ticket.Timeout,
		ProcessIDs: config.Ticket.ProcessIDs,
	})
}

func provideSLACalculator(config config.AppConfig) *usecases.SLACalculator {
	durations := make(map[domain.OperationType]time.Duration, len(config.WorkOrder.SLA))
	for operationType, raw := range config.WorkOrder.SLA {
		duration, err := time.ParseDuration(raw)
		if err != nil {
			slog.Warn("ignoring invalid sla duration",
				slog.String("operation_type", operationType),
				slog.String("value", raw),
			)
			continue
		}
		durations[domain.OperationType(operationType)] = duration
	}

	return usecases.NewSLACalculator(durations)
}

func provideCache() (cache.Cache, error) {
	return cache.New(cache.DefaultConfig())
}

func provideTicker(config config.AppConfig) *time.Ticker {
	interval := config.WorkOrder.OverdueSweepInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return time.NewTicker(interval)
}
