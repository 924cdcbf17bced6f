package cmd_test

import (
	"testing"

	"ordercore/cmd"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := cmd.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, cmd.NotifierLog, cfg.Notifier)
	assert.Equal(t, 5, cfg.OrderNumberAttempts)
	assert.Equal(t, 100, cfg.OutboxBatchSize)
	assert.Equal(t, "*/5 * * * * *", cfg.OutboxRelaySchedule)

	unit, err := cfg.CurrencyUnit()
	require.NoError(t, err)
	assert.Equal(t, currency.USD, unit)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("NOTIFIER", "kafka")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("STORE_CURRENCY", "EUR")
	t.Setenv("STORE_LOCALE", "de-DE")
	t.Setenv("OUTBOX_BATCH_SIZE", "25")

	cfg, err := cmd.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, cmd.NotifierKafka, cfg.Notifier)
	assert.Equal(t, "k1:9092,k2:9092", cfg.KafkaBrokers)
	assert.Equal(t, 25, cfg.OutboxBatchSize)
	assert.Equal(t, "host=db port=5432 user=postgres password=secret dbname=ordercore sslmode=disable", cfg.DSN())

	unit, err := cfg.CurrencyUnit()
	require.NoError(t, err)
	assert.Equal(t, currency.EUR, unit)

	tag, err := cfg.LocaleTag()
	require.NoError(t, err)
	assert.Equal(t, language.MustParse("de-DE"), tag)
}

func TestLoadConfig_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown notifier", "NOTIFIER", "smtp"},
		{"unknown currency", "STORE_CURRENCY", "XYZ1"},
		{"malformed locale", "STORE_LOCALE", "not a locale!"},
		{"non numeric batch size", "OUTBOX_BATCH_SIZE", "many"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := cmd.LoadConfig()
			require.Error(t, err)
		})
	}
}
