package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Duvhier/jylclean-back/app/errs"
	"github.com/Duvhier/jylclean-back/app/models"
	"github.com/Duvhier/jylclean-back/app/repositories"
)

func newCartService(t *testing.T) (*CartService, *repositories.MemoryProductRepository) {
	t.Helper()
	products := repositories.NewMemoryProductRepository()
	return NewCartService(repositories.NewMemoryCartRepository(), products), products
}

func seedProduct(t *testing.T, products *repositories.MemoryProductRepository, name string, price float64, stock int) *models.Product {
	t.Helper()
	p := &models.Product{Name: name, Price: price, Stock: stock}
	require.NoError(t, products.Create(context.Background(), p))
	return p
}

func TestCartStartsEmpty(t *testing.T) {
	svc, _ := newCartService(t)

	view, err := svc.Get(context.Background(), primitive.NewObjectID())
	require.NoError(t, err)
	assert.Empty(t, view.Products)
	assert.Zero(t, view.Total)
}

func TestCartAddMergesLines(t *testing.T) {
	svc, products := newCartService(t)
	ctx := context.Background()
	userID := primitive.NewObjectID()
	soap := seedProduct(t, products, "Dish soap", 4.25, 10)

	_, err := svc.Add(ctx, userID, CartItemInput{ProductID: soap.ID.Hex(), Quantity: 2})
	require.NoError(t, err)

	view, err := svc.Add(ctx, userID, CartItemInput{ProductID: soap.ID.Hex(), Quantity: 3})
	require.NoError(t, err)

	require.Len(t, view.Products, 1, "same product merges into one line")
	assert.Equal(t, 5, view.Products[0].Quantity)
	assert.InDelta(t, 21.25, view.Products[0].Subtotal, 1e-9)
	assert.InDelta(t, 21.25, view.Total, 1e-9)
}

func TestCartAddChecksMergedQuantityAgainstStock(t *testing.T) {
	svc, products := newCartService(t)
	ctx := context.Background()
	userID := primitive.NewObjectID()
	soap := seedProduct(t, products, "Dish soap", 4.25, 5)

	_, err := svc.Add(ctx, userID, CartItemInput{ProductID: soap.ID.Hex(), Quantity: 3})
	require.NoError(t, err)

	// 3 already in the cart; adding 3 more would exceed the 5 in stock
	// even though 3 alone fits.
	_, err = svc.Add(ctx, userID, CartItemInput{ProductID: soap.ID.Hex(), Quantity: 3})
	require.Error(t, err)
	assert.Equal(t, errs.KindInsufficientStock, errs.KindOf(err))

	view, err := svc.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 3, view.Products[0].Quantity, "failed add leaves the cart unchanged")
}

func TestCartAddUnknownProduct(t *testing.T) {
	svc, _ := newCartService(t)

	_, err := svc.Add(context.Background(), primitive.NewObjectID(), CartItemInput{
		ProductID: primitive.NewObjectID().Hex(),
		Quantity:  1,
	})
	require.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}

func TestCartUpdateLine(t *testing.T) {
	svc, products := newCartService(t)
	ctx := context.Background()
	userID := primitive.NewObjectID()
	soap := seedProduct(t, products, "Dish soap", 4.25, 10)

	_, err := svc.Add(ctx, userID, CartItemInput{ProductID: soap.ID.Hex(), Quantity: 2})
	require.NoError(t, err)

	view, err := svc.UpdateLine(ctx, userID, CartItemInput{ProductID: soap.ID.Hex(), Quantity: 7})
	require.NoError(t, err)
	assert.Equal(t, 7, view.Products[0].Quantity, "update replaces, not merges")

	// Updating a line that is not in the cart fails.
	_, err = svc.UpdateLine(ctx, userID, CartItemInput{ProductID: primitive.NewObjectID().Hex(), Quantity: 1})
	require.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))

	// Update is bounded by stock too.
	_, err = svc.UpdateLine(ctx, userID, CartItemInput{ProductID: soap.ID.Hex(), Quantity: 11})
	require.Error(t, err)
	assert.Equal(t, errs.KindInsufficientStock, errs.KindOf(err))
}

func TestCartRemoveIsIdempotent(t *testing.T) {
	svc, products := newCartService(t)
	ctx := context.Background()
	userID := primitive.NewObjectID()
	soap := seedProduct(t, products, "Dish soap", 4.25, 10)

	_, err := svc.Add(ctx, userID, CartItemInput{ProductID: soap.ID.Hex(), Quantity: 2})
	require.NoError(t, err)

	view, err := svc.Remove(ctx, userID, soap.ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, view.Products)

	// Removing again, or removing garbage, succeeds silently.
	_, err = svc.Remove(ctx, userID, soap.ID.Hex())
	require.NoError(t, err)
	_, err = svc.Remove(ctx, userID, "not-an-id")
	require.NoError(t, err)
}

func TestCartClear(t *testing.T) {
	svc, products := newCartService(t)
	ctx := context.Background()
	userID := primitive.NewObjectID()
	soap := seedProduct(t, products, "Dish soap", 4.25, 10)
	cloth := seedProduct(t, products, "Microfibre cloth", 6.75, 10)

	_, err := svc.Add(ctx, userID, CartItemInput{ProductID: soap.ID.Hex(), Quantity: 2})
	require.NoError(t, err)
	_, err = svc.Add(ctx, userID, CartItemInput{ProductID: cloth.ID.Hex(), Quantity: 1})
	require.NoError(t, err)

	view, err := svc.Clear(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, view.Products)
	assert.Zero(t, view.Total)
}

func TestCartSkipsDeletedProducts(t *testing.T) {
	svc, products := newCartService(t)
	ctx := context.Background()
	userID := primitive.NewObjectID()
	soap := seedProduct(t, products, "Dish soap", 4.25, 10)
	cloth := seedProduct(t, products, "Microfibre cloth", 6.75, 10)

	_, err := svc.Add(ctx, userID, CartItemInput{ProductID: soap.ID.Hex(), Quantity: 2})
	require.NoError(t, err)
	_, err = svc.Add(ctx, userID, CartItemInput{ProductID: cloth.ID.Hex(), Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, products.Delete(ctx, soap.ID))

	view, err := svc.Get(ctx, userID)
	require.NoError(t, err)
	require.Len(t, view.Products, 1, "vanished product is skipped, not an error")
	assert.Equal(t, cloth.ID, view.Products[0].Product.ID)
	assert.InDelta(t, 6.75, view.Total, 1e-9)
}
