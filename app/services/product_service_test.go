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

func newProductService(t *testing.T) (*ProductService, *repositories.MemoryProductRepository) {
	t.Helper()
	products := repositories.NewMemoryProductRepository()
	return NewProductService(products), products
}

func TestProductCreateAndGet(t *testing.T) {
	svc, _ := newProductService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, ProductInput{
		Name:     "Glass cleaner",
		Price:    5.90,
		Stock:    80,
		Category: "cleaners",
	})
	require.NoError(t, err)
	assert.False(t, created.ID.IsZero())

	got, err := svc.Get(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Glass cleaner", got.Name)
	assert.Equal(t, 80, got.Stock)
}

func TestProductGetNotFound(t *testing.T) {
	svc, _ := newProductService(t)
	ctx := context.Background()

	for _, id := range []string{primitive.NewObjectID().Hex(), "not-an-id"} {
		_, err := svc.Get(ctx, id)
		require.Error(t, err)
		assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
	}
}

func TestProductUpdateAppliesPresentZeroValues(t *testing.T) {
	svc, _ := newProductService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, ProductInput{Name: "Glass cleaner", Price: 5.90, Stock: 80})
	require.NoError(t, err)

	// A present zero is applied; an absent field is left alone.
	zero := 0.0
	updated, err := svc.Update(ctx, created.ID.Hex(), models.ProductPatch{Price: &zero})
	require.NoError(t, err)
	assert.Zero(t, updated.Price, "explicit zero price is applied")
	assert.Equal(t, "Glass cleaner", updated.Name, "absent fields untouched")
	assert.Equal(t, 80, updated.Stock)
}

func TestProductDelete(t *testing.T) {
	svc, _ := newProductService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, ProductInput{Name: "Glass cleaner", Price: 5.90, Stock: 80})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID.Hex()))

	_, err = svc.Get(ctx, created.ID.Hex())
	require.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))

	err = svc.Delete(ctx, created.ID.Hex())
	require.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}

func TestProductSetImage(t *testing.T) {
	svc, _ := newProductService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, ProductInput{Name: "Glass cleaner", Price: 5.90, Stock: 80})
	require.NoError(t, err)

	updated, err := svc.SetImage(ctx, created.ID.Hex(), "/storage/products/abc.png")
	require.NoError(t, err)
	assert.Equal(t, "/storage/products/abc.png", updated.Image)
}

func TestProductList(t *testing.T) {
	svc, _ := newProductService(t)
	ctx := context.Background()

	for _, name := range []string{"Soap", "Cloth", "Spray"} {
		_, err := svc.Create(ctx, ProductInput{Name: name, Price: 1, Stock: 1})
		require.NoError(t, err)
	}

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}
