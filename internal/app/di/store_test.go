package di

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fund_backend/internal/platform/config"
)

func TestNewStores_SQL(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_DSN", "file::memory:?cache=shared")
	t.Setenv("RUN_MIGRATIONS", "true")

	cfg := config.Default()
	cfg.Store.Driver = config.StoreSQL

	stores, err := NewStores(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = stores.Close() })

	require.NoError(t, stores.Ping(context.Background()))

	ctx := context.Background()
	id, err := stores.Funds.InsertOne(ctx, cfg.MutualFund.Collection, map[string]any{"error": "x"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	require.NoError(t, stores.Stocks.Upsert(ctx, "additional_data", "ticker", "TCS.NS", map[string]any{"ticker": "TCS.NS"}))
}

func TestNewStores_UnknownDriver(t *testing.T) {
	cfg := config.Default()
	cfg.Store.Driver = "redis"

	stores, err := NewStores(context.Background(), cfg)
	require.Error(t, err)
	assert.Nil(t, stores)
}

func TestNewUsecases(t *testing.T) {
	t.Setenv("MFAPI_BASE_URL", "http://127.0.0.1:1")
	t.Setenv("YAHOO_BASE_URL", "http://127.0.0.1:1")

	cfg := config.Default()
	cfg.Screener.IndexTicker = "^BSESN"

	assert.NotNil(t, NewSchemeUsecase(cfg, nil))
	assert.Equal(t, "^BSESN", NewScreenerUsecase(cfg, nil).IndexTicker())
}
