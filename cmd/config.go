package cmd

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

// Notification drivers.
const (
	NotifierLog   = "log"
	NotifierKafka = "kafka"
	NotifierNats  = "nats"
)

type Config struct {
	HTTPPort   string `envconfig:"HTTP_PORT" default:"8080"`
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" default:"ordercore"`
	DBSslMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	LogEnv   string `envconfig:"LOG_ENV" default:"dev"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	Notifier          string `envconfig:"NOTIFIER" default:"log"`
	KafkaBrokers      string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	KafkaNotifyTopic  string `envconfig:"KAFKA_NOTIFY_TOPIC" default:"order-notifications"`
	NatsURL           string `envconfig:"NATS_URL" default:"nats://localhost:4222"`
	NatsSubjectPrefix string `envconfig:"NATS_SUBJECT_PREFIX" default:"notifications"`

	Currency string `envconfig:"STORE_CURRENCY" default:"USD"`
	Locale   string `envconfig:"STORE_LOCALE" default:"en-US"`

	OrderNumberAttempts int    `envconfig:"ORDER_NUMBER_ATTEMPTS" default:"5"`
	OutboxBatchSize     int    `envconfig:"OUTBOX_BATCH_SIZE" default:"100"`
	OutboxRelaySchedule string `envconfig:"OUTBOX_RELAY_SCHEDULE" default:"*/5 * * * * *"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Notifier {
	case NotifierLog, NotifierKafka, NotifierNats:
	default:
		return fmt.Errorf("unknown notifier %q, want one of log, kafka, nats", c.Notifier)
	}

	if _, err := c.CurrencyUnit(); err != nil {
		return err
	}
	if _, err := c.LocaleTag(); err != nil {
		return err
	}
	return nil
}

// DSN returns the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// CurrencyUnit parses the ISO 4217 store currency.
func (c Config) CurrencyUnit() (currency.Unit, error) {
	unit, err := currency.ParseISO(c.Currency)
	if err != nil {
		return currency.Unit{}, fmt.Errorf("invalid STORE_CURRENCY %q: %w", c.Currency, err)
	}
	return unit, nil
}

// LocaleTag parses the BCP 47 locale used for notification texts.
func (c Config) LocaleTag() (language.Tag, error) {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.Und, fmt.Errorf("invalid STORE_LOCALE %q: %w", c.Locale, err)
	}
	return tag, nil
}
