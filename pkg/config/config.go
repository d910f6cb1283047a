package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	CartStoreMemory   = "memory"
	CartStoreFile     = "file"
	CartStorePostgres = "postgres"

	TransportMailto   = "mailto"
	TransportRabbitMQ = "rabbitmq"
)

type Config struct {
	AppEnv   string `envconfig:"APP_ENV" default:"dev"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`
	GRPCPort int `envconfig:"GRPC_PORT" default:"8081"`

	CartSlotKey string `envconfig:"CART_SLOT_KEY" default:"storefront_cart_v1"`
	CartStore   string `envconfig:"CART_STORE" default:"memory"`
	CartDir     string `envconfig:"CART_DIR" default:"./data"`

	DatabaseURL string `envconfig:"DATABASE_URL"`
	// CatalogFile, when set, replaces the built-in collection with a YAML seed.
	CatalogFile string `envconfig:"CATALOG_FILE"`
	// CatalogFromDB loads products from the storefront_products table instead.
	CatalogFromDB bool `envconfig:"CATALOG_FROM_DB" default:"false"`

	ShopName  string `envconfig:"SHOP_NAME" default:"Zaya"`
	ShopEmail string `envconfig:"SHOP_EMAIL" default:"hello@zaya.example"`

	CheckoutTransport string `envconfig:"CHECKOUT_TRANSPORT" default:"mailto"`
	AMQPURL           string `envconfig:"AMQP_URL"`
	AMQPQueue         string `envconfig:"AMQP_QUEUE" default:"storefront.orders"`
}

// Load reads the optional dotenv files (".env" when none are given) and then
// the process environment. Variables already present in the environment win
// over dotenv values.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load dotenv: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("process env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.CartStore {
	case CartStoreMemory, CartStoreFile:
	case CartStorePostgres:
		if c.DatabaseURL == "" {
			return errors.New("config: CART_STORE=postgres requires DATABASE_URL")
		}
	default:
		return fmt.Errorf("config: unknown CART_STORE %q", c.CartStore)
	}

	if c.CatalogFromDB && c.DatabaseURL == "" {
		return errors.New("config: CATALOG_FROM_DB requires DATABASE_URL")
	}

	switch c.CheckoutTransport {
	case TransportMailto:
		if c.ShopEmail == "" {
			return errors.New("config: SHOP_EMAIL is required for mailto checkout")
		}
	case TransportRabbitMQ:
		if c.AMQPURL == "" {
			return errors.New("config: CHECKOUT_TRANSPORT=rabbitmq requires AMQP_URL")
		}
	default:
		return fmt.Errorf("config: unknown CHECKOUT_TRANSPORT %q", c.CheckoutTransport)
	}
	return nil
}

// NeedsDatabase reports whether a database is configured. The order journal
// uses it whenever DATABASE_URL is set, whatever the cart and catalog use.
func (c Config) NeedsDatabase() bool {
	return c.DatabaseURL != ""
}
