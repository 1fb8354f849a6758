package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasketService_AddAndList(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	userID := registerTestUser(t, env, "buyer")
	prod := createTestProduct(t, env, "phone", nil)

	item, err := env.Baskets.Add(ctx, userID, prod.ID)
	require.NoError(t, err)
	assert.Equal(t, userID, item.UserID)
	assert.Equal(t, prod.ID, item.ProductID)
	assert.Equal(t, "phone", item.Product.Name)

	items, err := env.Baskets.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, prod.ID, items[0].ProductID)
	assert.Equal(t, "phone", items[0].Product.Name, "product is eagerly attached")
}

func TestBasketService_Add_MissingProduct(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	userID := registerTestUser(t, env, "buyer")

	_, err := env.Baskets.Add(context.Background(), userID, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBasketService_Add_DuplicatePair(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	userID := registerTestUser(t, env, "buyer")
	prod := createTestProduct(t, env, "phone", nil)

	_, err := env.Baskets.Add(ctx, userID, prod.ID)
	require.NoError(t, err)

	_, err = env.Baskets.Add(ctx, userID, prod.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)

	// after remove the same pair can be re-added
	require.NoError(t, env.Baskets.Remove(ctx, userID, prod.ID))
	_, err = env.Baskets.Add(ctx, userID, prod.ID)
	require.NoError(t, err)
}

func TestBasketService_Add_SameProductDifferentUsers(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	first := registerTestUser(t, env, "first")
	second := registerTestUser(t, env, "second")
	prod := createTestProduct(t, env, "shared", nil)

	_, err := env.Baskets.Add(ctx, first, prod.ID)
	require.NoError(t, err)
	_, err = env.Baskets.Add(ctx, second, prod.ID)
	require.NoError(t, err, "uniqueness is per (user, product) pair")
}

func TestBasketService_Remove_NotFound(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	userID := registerTestUser(t, env, "buyer")

	err := env.Baskets.Remove(context.Background(), userID, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBasketService_Clear(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	userID := registerTestUser(t, env, "buyer")

	// clearing an empty basket is not an error
	require.NoError(t, env.Baskets.Clear(ctx, userID))

	a := createTestProduct(t, env, "a", nil)
	b := createTestProduct(t, env, "b", nil)
	_, err := env.Baskets.Add(ctx, userID, a.ID)
	require.NoError(t, err)
	_, err = env.Baskets.Add(ctx, userID, b.ID)
	require.NoError(t, err)

	require.NoError(t, env.Baskets.Clear(ctx, userID))

	items, err := env.Baskets.List(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, items)
}
