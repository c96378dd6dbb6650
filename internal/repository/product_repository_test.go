package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// disconnectedCollection arma una colección real sin conexión viva:
// sirve para los caminos que no llegan a tocar la red.
func disconnectedCollection(t *testing.T) *mongo.Collection {
	t.Helper()
	client, err := mongo.NewClient(options.Client().ApplyURI("mongodb://localhost:27017"))
	require.NoError(t, err)
	return client.Database("adeybloom_test").Collection("products")
}

func TestConnected(t *testing.T) {
	assert.False(t, NewProductRepository(nil).Connected())
	assert.True(t, NewProductRepository(disconnectedCollection(t)).Connected())
}

func TestList_NoConnectionReturnsEmpty(t *testing.T) {
	repo := NewProductRepository(nil)

	items, err := repo.List(context.Background(), 10, 0, nil)
	require.NoError(t, err, "absent store is not an error")
	assert.Empty(t, items)
	assert.NotNil(t, items, "empty sequence, not nil")
}

func TestFindByID_NoConnection(t *testing.T) {
	repo := NewProductRepository(nil)

	detail, err := repo.FindByID(context.Background(), "64f1b2c3d4e5f6a7b8c9d0e1")
	require.NoError(t, err)
	assert.Nil(t, detail)
}

func TestFindByID_MalformedID(t *testing.T) {
	repo := NewProductRepository(disconnectedCollection(t))

	detail, err := repo.FindByID(context.Background(), "not-a-hex-id")
	require.NoError(t, err, "malformed id is not-found, never an error")
	assert.Nil(t, detail)
}

func TestCount_NoConnection(t *testing.T) {
	_, err := NewProductRepository(nil).Count(context.Background())
	assert.Error(t, err)
}
