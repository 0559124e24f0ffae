package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantcore/pkg/config"
)

type testConfig struct {
	Host    string        `env:"CFGTEST_HOST" envDefault:"localhost"`
	Port    int           `env:"CFGTEST_PORT" envDefault:"6379"`
	Timeout time.Duration `env:"CFGTEST_TIMEOUT" envDefault:"5s"`
}

func TestLoadDefaults(t *testing.T) {
	var cfg testConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 6379, cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("CFGTEST_HOST", "redis.internal")
	t.Setenv("CFGTEST_PORT", "6380")

	var cfg testConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "redis.internal", cfg.Host)
	assert.Equal(t, 6380, cfg.Port)
}

func TestLoadNilPointer(t *testing.T) {
	var cfg *testConfig
	err := config.Load(cfg)
	assert.ErrorIs(t, err, config.ErrNilPointer)
}

func TestLoadRequiredMissing(t *testing.T) {
	type strictConfig struct {
		Secret string `env:"CFGTEST_REQUIRED_SECRET,required"`
	}
	var cfg strictConfig
	err := config.Load(&cfg)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestMustLoadPanics(t *testing.T) {
	type strictConfig struct {
		Secret string `env:"CFGTEST_MUST_SECRET,required"`
	}
	assert.Panics(t, func() {
		var cfg strictConfig
		config.MustLoad(&cfg)
	})
}
