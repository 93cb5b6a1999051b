package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := loadFrom(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.Equal(t, BrokerNone, cfg.EventBroker)
	assert.Equal(t, time.Hour, cfg.JWTExpiryDuration)
	assert.Equal(t, time.Second, cfg.GatewayLatency)
	assert.Equal(t, 5*time.Second, cfg.GatewayTimeout)
	assert.True(t, decimal.RequireFromString("3.14").Equal(cfg.GatewayFailureAmount))
	assert.True(t, decimal.RequireFromString("2.71").Equal(cfg.GatewayPendingAmount))
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "POSTGRES")
	t.Setenv("PGSQL_URL", "postgres://localhost/litally")
	t.Setenv("GATEWAY_TIMEOUT", "250ms")
	t.Setenv("EVENT_BROKER", "kafka")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := loadFrom(viper.New())
	require.NoError(t, err)

	assert.Equal(t, StoragePostgres, cfg.StorageDriver)
	assert.Equal(t, 250*time.Millisecond, cfg.GatewayTimeout)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "postgres without url", env: map[string]string{"STORAGE_DRIVER": "postgres"}},
		{name: "unknown storage", env: map[string]string{"STORAGE_DRIVER": "mongo"}},
		{name: "unknown broker", env: map[string]string{"EVENT_BROKER": "nats"}},
		{name: "bad duration", env: map[string]string{"GATEWAY_LATENCY": "soon"}},
		{name: "bad amount", env: map[string]string{"GATEWAY_FAILURE_AMOUNT": "pi"}},
		{name: "default secret in production", env: map[string]string{"IS_PRODUCTION": "true"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := loadFrom(viper.New())
			assert.Error(t, err)
		})
	}
}
