package config

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Une variable définie mais vide l'emporte sur le défaut.
func TestLoadEmptyValues(t *testing.T) {
	t.Setenv("APP_ENV", "local")
	t.Setenv("DB_URL", "memory")
	t.Setenv("NATS_URL", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("GRAPHQL_MAX_DEPTH", "not-a-number")
	t.Setenv("DB_MAX_CONNS", "4")
	unsetEnv(t, "LOG_LEVEL")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "local", cfg.Env)
	assert.True(t, cfg.UseMemoryStore())
	assert.Empty(t, cfg.NatsUrl)
	assert.Empty(t, cfg.CORSAllowedOrigins)
	assert.Equal(t, DefaultGraphQLMaxDepth, cfg.GraphQLMaxDepth)
	assert.EqualValues(t, 4, cfg.DBMaxConns)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("PORT", " 9090 ")
	t.Setenv("DB_URL", "postgres://movie@db:5432/movies")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,,")
	t.Setenv("GRAPHQL_MAX_DEPTH", "20")
	t.Setenv("DB_MAX_CONNS", "20")
	t.Setenv("LOG_LEVEL", "error")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.False(t, cfg.UseMemoryStore())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 20, cfg.GraphQLMaxDepth)
	assert.EqualValues(t, 20, cfg.DBMaxConns)
	assert.Equal(t, slog.LevelError, cfg.LogLevel)
}

func TestLoadRejectsMemoryInProd(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("DB_URL", "memory")
	t.Setenv("DB_MAX_CONNS", "10")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsBadPoolSize(t *testing.T) {
	t.Setenv("APP_ENV", "local")
	t.Setenv("DB_URL", "memory")
	t.Setenv("DB_MAX_CONNS", "0")

	_, err := Load()
	require.Error(t, err)
}

// unsetEnv retire la variable pour la durée du test (t.Setenv restaure la valeur d'origine).
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoadUnsetDefaults(t *testing.T) {
	for _, key := range []string{"NATS_URL", "GRAPHQL_MAX_DEPTH", "LOG_LEVEL", "DB_MAX_CONNS"} {
		unsetEnv(t, key)
	}
	t.Setenv("APP_ENV", "local")
	t.Setenv("DB_URL", "memory")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.NatsUrl, "events must stay off unless NATS_URL is set")
	assert.Equal(t, DefaultGraphQLMaxDepth, cfg.GraphQLMaxDepth)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.EqualValues(t, 10, cfg.DBMaxConns)
}

func TestLoadGraphQLMaxDepth(t *testing.T) {
	t.Setenv("APP_ENV", "local")
	t.Setenv("DB_URL", "memory")
	t.Setenv("DB_MAX_CONNS", "10")
	unsetEnv(t, "LOG_LEVEL")

	cases := []struct {
		raw     string
		wantErr bool
	}{
		{"0", false},
		{"13", false},
		{"12", true},
		{"10", true},
		{"-1", true},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			t.Setenv("GRAPHQL_MAX_DEPTH", tc.raw)
			_, err := Load()
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestLoadLogLevel(t *testing.T) {
	t.Setenv("DB_URL", "memory")
	t.Setenv("DB_MAX_CONNS", "10")
	unsetEnv(t, "GRAPHQL_MAX_DEPTH")

	t.Setenv("APP_ENV", "dev")
	unsetEnv(t, "LOG_LEVEL")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)

	t.Setenv("LOG_LEVEL", "warn")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)

	t.Setenv("LOG_LEVEL", "loud")
	_, err = Load()
	require.Error(t, err)
}

func TestLoadTraceSampleRatio(t *testing.T) {
	t.Setenv("APP_ENV", "local")
	t.Setenv("DB_URL", "memory")
	t.Setenv("DB_MAX_CONNS", "10")
	unsetEnv(t, "GRAPHQL_MAX_DEPTH")
	unsetEnv(t, "LOG_LEVEL")

	unsetEnv(t, "OTEL_TRACES_SAMPLER_RATIO")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 1.0, cfg.TraceSampleRatio)

	t.Setenv("OTEL_TRACES_SAMPLER_RATIO", "0.25")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, 0.25, cfg.TraceSampleRatio)

	t.Setenv("OTEL_TRACES_SAMPLER_RATIO", "2")
	_, err = Load()
	require.Error(t, err)
}
