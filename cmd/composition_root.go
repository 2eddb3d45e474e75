package cmd

import (
	"log/slog"
	"time"

	"bookstore/internal/adapters/in/http"
	"bookstore/internal/adapters/out/kafka"
	"bookstore/internal/adapters/out/postgres"
	"bookstore/internal/core/application/usecases/commands"
	"bookstore/internal/core/application/usecases/queries"
	"bookstore/internal/core/ports"
	"bookstore/internal/jobs"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	defaultReminderSchedule = "*/10 * * * *"
	defaultReviewMaxAge     = time.Hour
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	var publisher ports.OrderEventPublisher
	if config.KafkaHost != "" && config.KafkaOrderChangedTopic != "" {
		publisher = kafka.NewOrderEventPublisher([]string{config.KafkaHost}, config.KafkaOrderChangedTopic)
	}

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  publisher,
		logger:     logger,
	}
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	return commands.NewPlaceOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	return commands.NewUpdateOrderCommandHandler(c.orderUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetReviewQueueQueryHandler() queries.GetReviewQueueQueryHandler {
	return queries.NewGetReviewQueueQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *http.Server {
	return http.NewServer(
		c.CreatePlaceOrderCommandHandler(),
		c.CreateUpdateOrderCommandHandler(),
		c.CreateGetOrdersQueryHandler(),
		c.CreateGetOrderHistoryQueryHandler(),
	)
}

// CreateRoleThrottle builds the per-role rate limiter, or nil when no Redis
// address is configured.
func (c *CompositionRoot) CreateRoleThrottle() *http.RoleThrottle {
	if c.config.RedisAddr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{Addr: c.config.RedisAddr})
	return http.NewRoleThrottle(client, http.DefaultThrottleRates(), time.Minute)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	schedule := c.config.ReviewReminderSchedule
	if schedule == "" {
		schedule = defaultReminderSchedule
	}

	maxAge := defaultReviewMaxAge
	if c.config.ReviewMaxAge != "" {
		if parsed, err := time.ParseDuration(c.config.ReviewMaxAge); err == nil {
			maxAge = parsed
		} else {
			c.logger.Warn("Invalid REVIEW_MAX_AGE, using default", "value", c.config.ReviewMaxAge)
		}
	}

	return jobs.NewJobManager(c.CreateGetReviewQueueQueryHandler(), schedule, maxAge, c.logger)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
