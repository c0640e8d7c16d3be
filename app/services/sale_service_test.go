package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Duvhier/jylclean-back/app/errs"
	"github.com/Duvhier/jylclean-back/app/models"
	"github.com/Duvhier/jylclean-back/app/repositories"
)

func newSaleService(t *testing.T) (*SaleService, *repositories.MemoryProductRepository, *repositories.MemorySaleRepository) {
	t.Helper()
	products := repositories.NewMemoryProductRepository()
	sales := repositories.NewMemorySaleRepository()
	return NewSaleService(sales, products), products, sales
}

func TestSaleCreate(t *testing.T) {
	svc, products, _ := newSaleService(t)
	ctx := context.Background()
	userID := primitive.NewObjectID()
	soap := seedProduct(t, products, "Dish soap", 4.25, 10)
	cloth := seedProduct(t, products, "Microfibre cloth", 6.75, 5)

	sale, err := svc.Create(ctx, userID, SaleInput{Products: []SaleItemInput{
		{ProductID: soap.ID.Hex(), Quantity: 2},
		{ProductID: cloth.ID.Hex(), Quantity: 1},
	}})
	require.NoError(t, err)

	assert.Equal(t, userID, sale.User)
	assert.Equal(t, models.SalePending, sale.Status)
	require.Len(t, sale.Products, 2)
	assert.InDelta(t, 2*4.25+6.75, sale.Total, 1e-9)

	got, err := products.FindByID(ctx, soap.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, got.Stock)
	got, err = products.FindByID(ctx, cloth.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Stock)
}

func TestSalePriceIsSnapshotted(t *testing.T) {
	svc, products, sales := newSaleService(t)
	ctx := context.Background()
	soap := seedProduct(t, products, "Dish soap", 4.25, 10)

	sale, err := svc.Create(ctx, primitive.NewObjectID(), SaleInput{Products: []SaleItemInput{
		{ProductID: soap.ID.Hex(), Quantity: 2},
	}})
	require.NoError(t, err)

	// Raise the catalogue price after the sale.
	newPrice := 9.99
	_, err = products.Update(ctx, soap.ID, models.ProductPatch{Price: &newPrice})
	require.NoError(t, err)

	stored, err := sales.FindByID(ctx, sale.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.25, stored.Products[0].Price, 1e-9, "sale keeps the price at time of purchase")
	assert.InDelta(t, 8.50, stored.Total, 1e-9)
}

func TestSaleInsufficientStockRollsBack(t *testing.T) {
	svc, products, sales := newSaleService(t)
	ctx := context.Background()
	soap := seedProduct(t, products, "Dish soap", 4.25, 10)
	cloth := seedProduct(t, products, "Microfibre cloth", 6.75, 1)

	// First line fits, second does not; the first decrement must be undone.
	_, err := svc.Create(ctx, primitive.NewObjectID(), SaleInput{Products: []SaleItemInput{
		{ProductID: soap.ID.Hex(), Quantity: 3},
		{ProductID: cloth.ID.Hex(), Quantity: 2},
	}})
	require.Error(t, err)
	assert.Equal(t, errs.KindInsufficientStock, errs.KindOf(err))
	assert.Contains(t, errs.MessageOf(err), "Microfibre cloth")

	got, err := products.FindByID(ctx, soap.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Stock, "applied decrement reverted")

	all, err := sales.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all, "no sale recorded")
}

func TestSaleUnknownProductRollsBack(t *testing.T) {
	svc, products, _ := newSaleService(t)
	ctx := context.Background()
	soap := seedProduct(t, products, "Dish soap", 4.25, 10)

	_, err := svc.Create(ctx, primitive.NewObjectID(), SaleInput{Products: []SaleItemInput{
		{ProductID: soap.ID.Hex(), Quantity: 3},
		{ProductID: primitive.NewObjectID().Hex(), Quantity: 1},
	}})
	require.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))

	got, err := products.FindByID(ctx, soap.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Stock)
}

func TestSaleConcurrentCreatesNeverOversell(t *testing.T) {
	svc, products, sales := newSaleService(t)
	ctx := context.Background()
	soap := seedProduct(t, products, "Dish soap", 4.25, 10)

	const buyers = 20
	var wg sync.WaitGroup
	results := make([]error, buyers)

	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.Create(ctx, primitive.NewObjectID(), SaleInput{Products: []SaleItemInput{
				{ProductID: soap.ID.Hex(), Quantity: 1},
			}})
		}(i)
	}
	wg.Wait()

	var succeeded int
	for _, err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.Equal(t, errs.KindInsufficientStock, errs.KindOf(err))
		}
	}
	assert.Equal(t, 10, succeeded, "exactly the stocked quantity sells")

	got, err := products.FindByID(ctx, soap.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Stock)

	all, err := sales.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 10)
}

func TestSaleGetOwnership(t *testing.T) {
	svc, products, _ := newSaleService(t)
	ctx := context.Background()
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()
	soap := seedProduct(t, products, "Dish soap", 4.25, 10)

	sale, err := svc.Create(ctx, owner, SaleInput{Products: []SaleItemInput{
		{ProductID: soap.ID.Hex(), Quantity: 1},
	}})
	require.NoError(t, err)

	// The owner can read it.
	_, err = svc.Get(ctx, sale.ID.Hex(), owner, models.RoleUser)
	require.NoError(t, err)

	// Another regular user cannot.
	_, err = svc.Get(ctx, sale.ID.Hex(), stranger, models.RoleUser)
	require.Error(t, err)
	assert.Equal(t, errs.KindPermission, errs.KindOf(err))

	// Staff can read anyone's sale.
	_, err = svc.Get(ctx, sale.ID.Hex(), stranger, models.RoleAdmin)
	require.NoError(t, err)
	_, err = svc.Get(ctx, sale.ID.Hex(), stranger, models.RoleSuperUser)
	require.NoError(t, err)
}

func TestSaleListMine(t *testing.T) {
	svc, products, _ := newSaleService(t)
	ctx := context.Background()
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	soap := seedProduct(t, products, "Dish soap", 4.25, 100)

	for _, user := range []primitive.ObjectID{alice, alice, bob} {
		_, err := svc.Create(ctx, user, SaleInput{Products: []SaleItemInput{
			{ProductID: soap.ID.Hex(), Quantity: 1},
		}})
		require.NoError(t, err)
	}

	mine, err := svc.ListMine(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestSaleUpdateStatus(t *testing.T) {
	svc, products, _ := newSaleService(t)
	ctx := context.Background()
	soap := seedProduct(t, products, "Dish soap", 4.25, 10)

	sale, err := svc.Create(ctx, primitive.NewObjectID(), SaleInput{Products: []SaleItemInput{
		{ProductID: soap.ID.Hex(), Quantity: 1},
	}})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, sale.ID.Hex(), SaleStatusInput{Status: models.SaleCompleted})
	require.NoError(t, err)
	assert.Equal(t, models.SaleCompleted, updated.Status)

	_, err = svc.UpdateStatus(ctx, sale.ID.Hex(), SaleStatusInput{Status: "shipped"})
	require.Error(t, err)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))

	_, err = svc.UpdateStatus(ctx, primitive.NewObjectID().Hex(), SaleStatusInput{Status: models.SaleCancelled})
	require.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}
