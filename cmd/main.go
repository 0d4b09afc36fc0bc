package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/agustrio1/sveltekit-ecommerce-sub000/docs"
	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/app"
	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/auth"
	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/broker"
	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/cart"
	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/config"
	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/entities"
	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/handler"
	mw "github.com/agustrio1/sveltekit-ecommerce-sub000/internal/middleware"
	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/payment"
	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/postgres"
	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/repo"
	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/service"
	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/shipping"
	"github.com/agustrio1/sveltekit-ecommerce-sub000/pkg/cache"
	"github.com/agustrio1/sveltekit-ecommerce-sub000/pkg/trm"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/joho/godotenv"
)

// @title           Storefront Order API
// @version         1.0
// @description     Cart, shipping quotes, checkout and order history for the storefront.
// @BasePath        /
func main() {
	conf, err := config.New()
	panicIfErr("failed to parse config", err)
	logger := newLogger(conf.Env)
	panicIfErr("invalid config", conf.Validate())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	db, err := postgres.New(conf.Postgres)
	panicIfErr("failed to connect to db", err)
	defer db.Close()
	logger.Info("postgres connected")
	panicIfErr("failed to migrate db", postgres.Migrate(ctx, db))

	store := repo.NewPostgresRepo(db)
	txManager := trm.NewManager(db)

	var starters []app.Starter
	var cacheStore cache.Store
	switch conf.Cache.Driver {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     conf.Cache.RedisAddr,
			Password: conf.Cache.RedisPassword,
			DB:       conf.Cache.RedisDB,
		})
		redisStore := cache.NewRedisStore(logger, client, conf.Cache.RedisPrefix)
		defer redisStore.Close()
		cacheStore = redisStore
	default:
		lru := cache.NewLRUCache(conf.Cache.Capacity)
		starters = append(starters, lru)
		cacheStore = lru
	}

	carrier := shipping.NewClient(logger, shipping.ClientConfig{
		BaseURL:         conf.Shipping.BaseURL,
		APIKey:          conf.Shipping.APIKey,
		Timeout:         conf.Shipping.Timeout,
		BreakerFailures: conf.Shipping.BreakerFailures,
		BreakerCooldown: conf.Shipping.BreakerCooldown,
	})
	resolver := shipping.NewResolver(logger, carrier, cacheStore, shipping.ResolverConfig{
		Couriers: conf.Shipping.Couriers,
		AreaTTL:  conf.Shipping.AreaTTL,
		RateTTL:  conf.Shipping.RateTTL,
		Timeout:  conf.Shipping.Timeout,
	})

	minTotal := decimal.NewFromInt(conf.Order.MinTotal)
	maxTotal := decimal.NewFromInt(conf.Order.MaxTotal)

	provider, err := newPaymentProvider(logger, conf.Payment)
	panicIfErr("failed to create payment provider", err)
	gateway := payment.NewGateway(logger, provider, payment.GatewayConfig{
		Currency:  conf.Payment.Currency,
		ReturnURL: conf.Payment.ReturnURL,
		MinTotal:  minTotal,
		MaxTotal:  maxTotal,
	})

	publisher := broker.NewPublisher(logger, conf.Kafka)
	defer publisher.Close()

	pricing := service.NewPricingService(store, resolver, service.PricingConfig{
		OriginPostalCode: conf.Store.PostalCode,
		MinTotal:         minTotal,
		MaxTotal:         maxTotal,
	})
	orderService := service.NewOrderService(logger, txManager, store, store, pricing, gateway, publisher, service.OrderConfig{
		Currency: conf.Payment.Currency,
		Shipper: entities.Address{
			Name:       conf.Store.Name,
			Phone:      conf.Store.Phone,
			Email:      conf.Store.Email,
			Address:    conf.Store.Address,
			City:       conf.Store.City,
			Province:   conf.Store.Province,
			PostalCode: conf.Store.PostalCode,
		},
	})
	lifecycle := service.NewLifecycleService(logger, txManager, store, store, carrier, publisher)
	transactions := service.NewTransactionService(logger, store)
	poller := service.NewTrackingPoller(logger, store, carrier, lifecycle, conf.Tracking.PollInterval, conf.Tracking.BatchSize)
	starters = append(starters, poller)

	tokens := auth.NewTokens(conf.Security.SessionSecret, conf.Security.SessionTTL)
	carts := cart.NewCookieStore(cart.NewSigner(conf.Security.CartSecret), conf.Security.CookieSecure)

	session := mw.Session(logger, tokens)
	shippingLimit := mw.NewRateLimiter("shipping", conf.RateLimit.ShippingPerMinute, time.Minute, time.Now)
	orderLimit := mw.NewRateLimiter("orders", conf.RateLimit.OrdersPerHour, time.Hour, time.Now)

	storeInfo := handler.StoreInfo{
		Name:       conf.Store.Name,
		City:       conf.Store.City,
		Province:   conf.Store.Province,
		PostalCode: conf.Store.PostalCode,
	}

	handler.RegisterMetrics()
	kafkaHandler := handler.NewKafkaHandler(logger, conf.Kafka, lifecycle)
	cartHandler := handler.NewCartHandler(logger, carts, store)
	shippingHandler := handler.NewShippingHandler(logger, pricing, resolver, carts, storeInfo, handler.Guards{
		RateLimit: mw.RateLimit(shippingLimit),
	})
	orderHandler := handler.NewOrderHandler(logger, orderService, lifecycle, carts, handler.Guards{
		Session:   session,
		CSRF:      mw.CSRF,
		Admin:     mw.RequireAdmin,
		RateLimit: mw.RateLimit(orderLimit),
	})
	transactionHandler := handler.NewTransactionHandler(logger, transactions, lifecycle, handler.Guards{
		Session: session,
		CSRF:    mw.CSRF,
	})
	paymentHandler := handler.NewPaymentHandler(logger, gateway, lifecycle)

	app := app.New(logger, conf)

	app.SetHTTPHandlers(cartHandler, shippingHandler, orderHandler, transactionHandler, paymentHandler)
	app.SetConsumers(kafkaHandler)
	app.SetStarters(starters...)

	panicIfErr("failed to start app", app.Start(ctx))
	<-ctx.Done()
	panicIfErr("failed to stop app", app.Stop())
}

func init() {
	godotenv.Load()
}

func newLogger(env string) *slog.Logger {
	switch env {
	case "production":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

func newPaymentProvider(logger *slog.Logger, cfg config.Payment) (payment.Provider, error) {
	switch cfg.Provider {
	case "stripe":
		return payment.NewStripeProvider(logger, payment.StripeConfig{
			SecretKey:     cfg.StripeSecretKey,
			WebhookSecret: cfg.StripeWebhookSecret,
		})
	default:
		return payment.NewSnapProvider(logger, payment.SnapConfig{
			BaseURL:   cfg.SnapBaseURL,
			ServerKey: cfg.SnapServerKey,
			Timeout:   30 * time.Second,
		})
	}
}

func panicIfErr(prefix string, err error) {
	if err != nil {
		panic(prefix + ": " + err.Error())
	}
}
