package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env  string `env:"ENV" envDefault:"development" validate:"required,oneof=development stage production"`
	Http Http   `envPrefix:"HTTP_"`

	Cors CORS `validate:"required"`

	Security  Security  `envPrefix:"SECURITY_" validate:"required"`
	RateLimit RateLimit `envPrefix:"RATE_LIMIT_"`

	Kafka Kafka `envPrefix:"KAFKA_" validate:"required"`

	Postgres Postgres `envPrefix:"POSTGRES_" validate:"required"`

	Cache Cache `envPrefix:"CACHE_"`

	Shipping Shipping `envPrefix:"SHIPPING_" validate:"required"`
	Store    Store    `envPrefix:"STORE_" validate:"required"`
	Payment  Payment  `envPrefix:"PAYMENT_" validate:"required"`
	Order    Order    `envPrefix:"ORDER_"`
	Tracking Tracking `envPrefix:"TRACKING_"`
}

type Http struct {
	Host         string        `env:"HOST" envDefault:"localhost" validate:"required,hostname|ip"`
	Port         string        `env:"PORT" envDefault:"8080" validate:"required,numeric"`
	MaxBodyBytes int64         `env:"MAX_BODY_BYTES" envDefault:"65536" validate:"gt=0"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT" envDefault:"15s" validate:"gt=0"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"45s" validate:"gt=0"`
}

type CORS struct {
	AllowedOrigins []string `env:"ALLOWED_CORS_ORIGINS" envDefault:"http://localhost:5173" envSeparator:"," validate:"required,min=1,dive,url"`
}

type Security struct {
	SessionSecret string        `env:"SESSION_SECRET" validate:"required,min=32"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"24h" validate:"gt=0"`
	CartSecret    string        `env:"CART_SECRET" validate:"required,min=32"`
	CookieSecure  bool          `env:"COOKIE_SECURE" envDefault:"true"`
}

type RateLimit struct {
	GeneralPerMinute  int `env:"GENERAL_PER_MINUTE" envDefault:"120" validate:"gte=1"`
	ShippingPerMinute int `env:"SHIPPING_PER_MINUTE" envDefault:"30" validate:"gte=1"`
	OrdersPerHour     int `env:"ORDERS_PER_HOUR" envDefault:"10" validate:"gte=1"`
}

type Kafka struct {
	GroupID       string   `env:"GROUP_ID" envDefault:"storefront-orders" validate:"required"`
	Brokers       []string `env:"BROKERS" envDefault:"localhost:9092" envSeparator:"," validate:"required,min=1,dive,hostname_port"`
	TrackingTopic string   `env:"TRACKING_TOPIC" envDefault:"shipment-tracking" validate:"required"`
	EventsTopic   string   `env:"EVENTS_TOPIC" envDefault:"order-events" validate:"required"`

	ReaderMaxWait time.Duration `env:"READER_MAX_WAIT" envDefault:"10ms" validate:"gte=0"`
	BatchTimeout  time.Duration `env:"BATCH_TIMEOUT" envDefault:"10ms" validate:"gte=0"`
}

type Postgres struct {
	Host     string `env:"HOST" envDefault:"localhost" validate:"required,hostname|ip"`
	Port     int    `env:"PORT" envDefault:"5432" validate:"required,gt=0,lte=65535"`
	DBName   string `env:"DB" envDefault:"storefront" validate:"required"`
	User     string `env:"USER" validate:"required"`
	Password string `env:"PASSWORD" validate:"required"`

	SSLMode string `env:"SSL_MODE" envDefault:"disable" validate:"required,oneof=disable require verify-ca verify-full"`

	MaxOpenConns    int           `env:"MAX_OPEN_CONNS" envDefault:"25" validate:"gte=1"`
	MaxIdleConns    int           `env:"MAX_IDLE_CONNS" envDefault:"25" validate:"gte=0"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME" envDefault:"5m" validate:"gte=0"`
}

func (p Postgres) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DBName, p.SSLMode,
	)
}

type Cache struct {
	Driver   string `env:"DRIVER" envDefault:"memory" validate:"oneof=memory redis"`
	Capacity int    `env:"CAPACITY" envDefault:"10000" validate:"gte=1"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379" validate:"required_if=Driver redis"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0" validate:"gte=0"`
	RedisPrefix   string `env:"REDIS_PREFIX" envDefault:"storefront:"`
}

type Shipping struct {
	BaseURL  string        `env:"BASE_URL" envDefault:"https://api.biteship.com" validate:"required,url"`
	APIKey   string        `env:"API_KEY" validate:"required"`
	Couriers []string      `env:"COURIERS" envDefault:"jne,jnt,sicepat,anteraja,pos" envSeparator:"," validate:"required,min=1"`
	Timeout  time.Duration `env:"TIMEOUT" envDefault:"30s" validate:"gt=0"`

	AreaTTL time.Duration `env:"AREA_TTL" envDefault:"24h" validate:"gt=0"`
	RateTTL time.Duration `env:"RATE_TTL" envDefault:"5m" validate:"gte=1s"`

	BreakerFailures uint32        `env:"BREAKER_FAILURES" envDefault:"5" validate:"gte=1"`
	BreakerCooldown time.Duration `env:"BREAKER_COOLDOWN" envDefault:"30s" validate:"gt=0"`
}

// Store is the shipper identity used as the origin of every parcel.
type Store struct {
	Name       string `env:"NAME" envDefault:"Toko" validate:"required"`
	Phone      string `env:"PHONE" validate:"required"`
	Email      string `env:"EMAIL" validate:"omitempty,email"`
	Address    string `env:"ADDRESS" validate:"required"`
	City       string `env:"CITY"`
	Province   string `env:"PROVINCE"`
	PostalCode string `env:"POSTAL_CODE" validate:"required,numeric,len=5"`
}

type Payment struct {
	Provider string `env:"PROVIDER" envDefault:"snap" validate:"oneof=snap stripe"`
	Currency string `env:"CURRENCY" envDefault:"IDR" validate:"required,len=3"`

	SnapBaseURL   string `env:"SNAP_BASE_URL" envDefault:"https://app.sandbox.midtrans.com" validate:"omitempty,url"`
	SnapServerKey string `env:"SNAP_SERVER_KEY" validate:"required_if=Provider snap"`

	StripeSecretKey     string `env:"STRIPE_SECRET_KEY" validate:"required_if=Provider stripe"`
	StripeWebhookSecret string `env:"STRIPE_WEBHOOK_SECRET" validate:"required_if=Provider stripe"`

	// ReturnURL receives the customer after checkout; the order id is appended.
	ReturnURL string `env:"RETURN_URL" envDefault:"http://localhost:5173/orders" validate:"required,url"`
}

type Order struct {
	MinTotal int64 `env:"MIN_TOTAL" envDefault:"1000" validate:"gte=0"`
	MaxTotal int64 `env:"MAX_TOTAL" envDefault:"100000000" validate:"gtfield=MinTotal"`
}

type Tracking struct {
	PollInterval time.Duration `env:"POLL_INTERVAL" envDefault:"10m" validate:"gt=0"`
	BatchSize    int           `env:"BATCH_SIZE" envDefault:"50" validate:"gte=1"`
}

func New() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}
