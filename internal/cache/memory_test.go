package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedThing struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMemoryCacheSetGet(t *testing.T) {
	c := NewMemory()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, NamespaceCustomer, "1", cachedThing{Name: "rex", Count: 2}))

	var got cachedThing
	hit, err := c.Get(ctx, NamespaceCustomer, "1", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, cachedThing{Name: "rex", Count: 2}, got)
}

func TestMemoryCacheMiss(t *testing.T) {
	c := NewMemory()

	var got cachedThing
	hit, err := c.Get(context.Background(), NamespaceCustomer, "absent", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestMemoryCacheReturnsCopies(t *testing.T) {
	c := NewMemory()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, NamespaceDoctor, "7", cachedThing{Name: "original"}))

	var first cachedThing
	_, err := c.Get(ctx, NamespaceDoctor, "7", &first)
	require.NoError(t, err)
	first.Name = "mutated"

	var second cachedThing
	_, err = c.Get(ctx, NamespaceDoctor, "7", &second)
	require.NoError(t, err)
	assert.Equal(t, "original", second.Name)
}

func TestMemoryCacheEvictAllIsNamespaceScoped(t *testing.T) {
	c := NewMemory()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, NamespaceCustomersPage, "p0:s20:", cachedThing{Name: "a"}))
	require.NoError(t, c.Set(ctx, NamespaceDoctorsPage, "p0:s20:", cachedThing{Name: "b"}))

	require.NoError(t, c.EvictAll(ctx, NamespaceCustomersPage))

	var got cachedThing
	hit, err := c.Get(ctx, NamespaceCustomersPage, "p0:s20:", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	hit, err = c.Get(ctx, NamespaceDoctorsPage, "p0:s20:", &got)
	require.NoError(t, err)
	assert.True(t, hit)
}
