package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	cfg := Load(v)

	assert.Equal(t, "moonshop", cfg.ServiceName)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 4, cfg.RelevelWorkers)
	assert.Nil(t, cfg.KafkaBrokers)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_URL", "sqlite://:memory:")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("KAFKA_BROKERS", "kafka:9092, kafka2:9092 ,")
	t.Setenv("JWT_TTL", "90m")

	cfg := Load(viper.New())

	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "sqlite://:memory:", cfg.DatabaseURL)
	assert.Equal(t, []byte("s3cret"), cfg.JWTSecret)
	assert.Equal(t, []string{"kafka:9092", "kafka2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 90*time.Minute, cfg.JWTTTL)
	require.NoError(t, cfg.Validate())
}

func TestLoad_ExplicitOverride(t *testing.T) {
	v := viper.New()
	v.Set("SERVER_PORT", 7000)

	assert.Equal(t, 7000, Load(v).ServerPort)
}

func TestValidate_MissingValues(t *testing.T) {
	t.Parallel()

	err := Config{JWTSecret: []byte("x")}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")

	err = Config{DatabaseURL: "postgres://x"}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestCSV(t *testing.T) {
	t.Parallel()

	assert.Nil(t, CSV(""))
	assert.Equal(t, []string{"a", "b"}, CSV("a, ,b"))
}
