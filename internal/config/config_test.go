package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// keep stray .env files out of the picture
	t.Chdir(t.TempDir())

	t.Run("defaults", func(t *testing.T) {
		for _, k := range []string{"APP_ENV", "APP_PORT", "SHOPIFY_API_VERSION", "CACHE_TTL", "PAGE_SIZE"} {
			t.Setenv(k, "")
			os.Unsetenv(k)
		}

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, Development, cfg.Environment())
		assert.Equal(t, "2024-01", cfg.Shopify.APIVersion)
		assert.Equal(t, 100, cfg.Shopify.PageSize)

		ttl, err := cfg.CacheTTL()
		require.NoError(t, err)
		assert.Equal(t, 10*time.Minute, ttl)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		t.Setenv("APP_PORT", "9000")
		t.Setenv("SHOPIFY_DOMAIN", "print.myshopify.com")
		t.Setenv("SHOPIFY_STOREFRONT_TOKEN", "tok")
		t.Setenv("CACHE_TTL", "30s")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "9000", cfg.Port)
		assert.True(t, cfg.Environment().IsProduction())
		assert.NoError(t, cfg.Shopify.Validate())
	})

	t.Run("bad ttl", func(t *testing.T) {
		t.Setenv("CACHE_TTL", "soon")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestShopifyValidate(t *testing.T) {
	assert.Error(t, Shopify{Token: "x"}.Validate())
	assert.Error(t, Shopify{Domain: "x"}.Validate())
}

func TestParseEnvironment(t *testing.T) {
	assert.Equal(t, Production, ParseEnvironment("production"))
	assert.Equal(t, Testing, ParseEnvironment("testing"))
	assert.Equal(t, Development, ParseEnvironment("staging"))
}
