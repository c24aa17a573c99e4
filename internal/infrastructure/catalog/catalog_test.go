package catalog

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proteincompare/backend/internal/domain"
)

func setupRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisStore(client), mr
}

func TestRedisStore_Read(t *testing.T) {
	ctx := context.Background()

	t.Run("returns stored document", func(t *testing.T) {
		store, mr := setupRedisStore(t)
		require.NoError(t, mr.Set("products", `[{"brand":"Bulk"}]`))

		data, err := store.Read(ctx, "products")
		require.NoError(t, err)
		assert.JSONEq(t, `[{"brand":"Bulk"}]`, string(data))
	})

	t.Run("missing key is not found", func(t *testing.T) {
		store, _ := setupRedisStore(t)

		data, err := store.Read(ctx, "products")
		assert.Nil(t, data)
		assert.ErrorIs(t, err, domain.ErrCatalogNotFound)
	})

	t.Run("closed server is unavailable", func(t *testing.T) {
		store, mr := setupRedisStore(t)
		mr.Close()

		_, err := store.Read(ctx, "products")
		assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
	})
}

func TestNewRedisStoreFromURL(t *testing.T) {
	mr := miniredis.RunT(t)
	require.NoError(t, mr.Set("products", "[]"))

	store, err := NewRedisStoreFromURL("redis://" + mr.Addr() + "/0")
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Ping(context.Background()))
	data, err := store.Read(context.Background(), "products")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	_, err = NewRedisStoreFromURL("not a url")
	assert.Error(t, err)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("reads a copy of the document", func(t *testing.T) {
		store := NewMemoryStore(map[string][]byte{"products": []byte("[]")})

		data, err := store.Read(ctx, "products")
		require.NoError(t, err)
		data[0] = 'x'

		again, err := store.Read(ctx, "products")
		require.NoError(t, err)
		assert.Equal(t, "[]", string(again))
	})

	t.Run("missing and empty keys are not found", func(t *testing.T) {
		store := NewMemoryStore(map[string][]byte{"empty": {}})

		_, err := store.Read(ctx, "products")
		assert.ErrorIs(t, err, domain.ErrCatalogNotFound)

		_, err = store.Read(ctx, "empty")
		assert.ErrorIs(t, err, domain.ErrCatalogNotFound)
	})

	t.Run("put replaces the document", func(t *testing.T) {
		store := NewMemoryStore(nil)
		store.Put("products", []byte(`[{"brand":"Bulk"}]`))

		data, err := store.Read(ctx, "products")
		require.NoError(t, err)
		assert.Contains(t, string(data), "Bulk")
	})

	t.Run("cancelled context is unavailable", func(t *testing.T) {
		store := NewDemoStore("products")
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := store.Read(cancelled, "products")
		assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
	})
}

func TestNewMemoryStoreFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"brand":"Dymatize"}]`), 0o600))

	store, err := NewMemoryStoreFromFile("products", path)
	require.NoError(t, err)

	data, err := store.Read(context.Background(), "products")
	require.NoError(t, err)
	assert.Contains(t, string(data), "Dymatize")

	_, err = NewMemoryStoreFromFile("products", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestDemoCatalog(t *testing.T) {
	var products []domain.Product
	require.NoError(t, json.Unmarshal(DemoCatalog, &products))
	require.Len(t, products, 4)

	for _, p := range products {
		assert.NotEmpty(t, p.ID)
		assert.True(t, p.Identifiable())
		require.NotNil(t, p.PricePerKg)
		require.NotNil(t, p.ProteinPer100g)
	}
	assert.Equal(t, "Optimum Nutrition", products[1].BrandName())
}
