package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinyah/dinesh-pvc-pipes-sub001/internal/domain"
	apperrors "github.com/vinyah/dinesh-pvc-pipes-sub001/pkg/errors"
)

func setupTestRedis(t *testing.T) (*goredis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client, mr
}

func strPtr(s string) *string { return &s }

func sampleCart() *domain.Cart {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &domain.Cart{
		ShopperID: "shopper-001",
		Lines: []domain.LineItem{
			{
				Name:         "Ball Valve",
				Code:         "VLV-BALL",
				Price:        120.50,
				DisplayPrice: "₹120.50",
				Size:         strPtr("19mm"),
				Quantity:     2,
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ---------------------------------------------------------------------------
// Get
// ---------------------------------------------------------------------------

func TestCartRepository_Get_Success(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewCartRepository(client)

	cart := sampleCart()
	data, err := json.Marshal(cart)
	require.NoError(t, err)

	require.NoError(t, mr.Set("cart:"+cart.ShopperID, string(data)))

	got, err := repo.Get(context.Background(), cart.ShopperID)
	require.NoError(t, err)
	assert.Equal(t, cart.ShopperID, got.ShopperID)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, "Ball Valve", got.Lines[0].Name)
	assert.InDelta(t, 120.50, got.Lines[0].Price, 1e-9)
	assert.Equal(t, "₹120.50", got.Lines[0].DisplayPrice)
	assert.Equal(t, 2, got.Lines[0].Quantity)
	require.NotNil(t, got.Lines[0].Size)
	assert.Equal(t, "19mm", *got.Lines[0].Size)
}

func TestCartRepository_Get_NotFound(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewCartRepository(client)

	got, err := repo.Get(context.Background(), "nonexistent-shopper")
	assert.Nil(t, got)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCartRepository_Get_InvalidJSON(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewCartRepository(client)

	require.NoError(t, mr.Set("cart:shopper-bad", "{{not-valid-json"))

	got, err := repo.Get(context.Background(), "shopper-bad")
	assert.Nil(t, got)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal cart")
}

func TestCartRepository_Get_NormalizesStoredLines(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewCartRepository(client)

	// Hand-written stored cart with a broken quantity and negative price.
	cart := sampleCart()
	cart.Lines[0].Quantity = 0
	cart.Lines[0].Price = -5
	data, err := json.Marshal(cart)
	require.NoError(t, err)
	require.NoError(t, mr.Set("cart:"+cart.ShopperID, string(data)))

	got, err := repo.Get(context.Background(), cart.ShopperID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Lines[0].Quantity)
	assert.Zero(t, got.Lines[0].Price)
}

// ---------------------------------------------------------------------------
// Save
// ---------------------------------------------------------------------------

func TestCartRepository_Save_Success(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewCartRepository(client)

	cart := sampleCart()
	err := repo.Save(context.Background(), cart)
	require.NoError(t, err)

	assert.True(t, mr.Exists("cart:"+cart.ShopperID))

	raw, err := mr.Get("cart:" + cart.ShopperID)
	require.NoError(t, err)

	var stored domain.Cart
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	assert.Equal(t, cart.ShopperID, stored.ShopperID)
	require.Len(t, stored.Lines, 1)
	assert.Equal(t, "Ball Valve", stored.Lines[0].Name)
}

func TestCartRepository_Save_NoTTL(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewCartRepository(client)

	cart := sampleCart()
	err := repo.Save(context.Background(), cart)
	require.NoError(t, err)

	// Carts are durable: no expiry on the key.
	assert.Zero(t, mr.TTL("cart:"+cart.ShopperID))
}

func TestCartRepository_Save_RoundTrip(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewCartRepository(client)

	cart := sampleCart()
	require.NoError(t, repo.Save(context.Background(), cart))

	got, err := repo.Get(context.Background(), cart.ShopperID)
	require.NoError(t, err)
	assert.Equal(t, cart.Lines, got.Lines)
}

// ---------------------------------------------------------------------------
// Delete
// ---------------------------------------------------------------------------

func TestCartRepository_Delete_Success(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewCartRepository(client)

	cart := sampleCart()
	require.NoError(t, repo.Save(context.Background(), cart))
	assert.True(t, mr.Exists("cart:"+cart.ShopperID))

	err := repo.Delete(context.Background(), cart.ShopperID)
	require.NoError(t, err)

	assert.False(t, mr.Exists("cart:"+cart.ShopperID))
}

func TestCartRepository_Delete_NonExistent(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewCartRepository(client)

	err := repo.Delete(context.Background(), "nonexistent-shopper")
	assert.NoError(t, err)
}
