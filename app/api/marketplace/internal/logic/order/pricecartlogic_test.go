package order

import (
	"context"
	stderrors "errors"
	"testing"

	"Savora/app/api/marketplace/internal/svc"
	"Savora/app/common/consts/errno"
	fooddal "Savora/app/dal/food"
	"Savora/app/dal/geo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xerrors "github.com/zeromicro/x/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func codeOf(t *testing.T, err error) int {
	t.Helper()
	var cm *xerrors.CodeMsg
	require.True(t, stderrors.As(err, &cm), "expected a coded error, got %v", err)
	return cm.Code
}

func TestPriceCartFoldsNetAmountInRequestOrder(t *testing.T) {
	foods := newFakeFoods()
	vendorA := primitive.NewObjectID()
	vendorB := primitive.NewObjectID()
	foodX := primitive.NewObjectID()
	foodY := primitive.NewObjectID()
	foods.put(&fooddal.CartFood{ID: foodX, VendorID: vendorA, Price: 10, Pincode: "560001", Location: geo.NewPoint(12.97, 77.59)})
	foods.put(&fooddal.CartFood{ID: foodY, VendorID: vendorB, Price: 5, Pincode: "560002", Location: geo.NewPoint(12.98, 77.60)})

	l := NewPriceCartLogic(context.Background(), &svc.ServiceContext{Foods: foods})
	priced, err := l.Price([]CartLine{
		{FoodID: foodX, Quantity: 2},
		{FoodID: foodY, Quantity: 1},
	})
	require.NoError(t, err)

	assert.Equal(t, float64(25), priced.NetAmount, "10*2 + 5*1")
	require.Len(t, priced.Lines, 2, "one priced line per request line")
	assert.Equal(t, foodX, priced.Lines[0].FoodID)
	assert.Equal(t, 2, priced.Lines[0].Quantity)
	assert.Equal(t, float64(10), priced.Lines[0].UnitPrice)

	// vendors and pincodes in first-appearance order, deduplicated
	assert.Equal(t, []string{vendorA.Hex(), vendorB.Hex()}, priced.VendorIDs)
	assert.Equal(t, []string{"560001", "560002"}, priced.Pincodes)
	require.Len(t, priced.VendorAddresses, 2)
	assert.Equal(t, vendorA, priced.VendorAddresses[0].VendorID)
}

func TestPriceCartSharedVendorCollapses(t *testing.T) {
	foods := newFakeFoods()
	vendor := primitive.NewObjectID()
	foodX := primitive.NewObjectID()
	foodY := primitive.NewObjectID()
	foods.put(&fooddal.CartFood{ID: foodX, VendorID: vendor, Price: 3, Pincode: "110011", Location: geo.NewPoint(28.6, 77.2)})
	foods.put(&fooddal.CartFood{ID: foodY, VendorID: vendor, Price: 7, Pincode: "110011", Location: geo.NewPoint(28.6, 77.2)})

	l := NewPriceCartLogic(context.Background(), &svc.ServiceContext{Foods: foods})
	priced, err := l.Price([]CartLine{
		{FoodID: foodX, Quantity: 1},
		{FoodID: foodY, Quantity: 2},
	})
	require.NoError(t, err)

	assert.Equal(t, float64(17), priced.NetAmount)
	assert.Len(t, priced.VendorIDs, 1)
	assert.Len(t, priced.Pincodes, 1)
	assert.Len(t, priced.VendorAddresses, 1)
}

func TestPriceCartRejectsUnknownIdsNamingEachOne(t *testing.T) {
	foods := newFakeFoods()
	known := primitive.NewObjectID()
	missing1 := primitive.NewObjectID()
	missing2 := primitive.NewObjectID()
	foods.put(&fooddal.CartFood{ID: known, VendorID: primitive.NewObjectID(), Price: 4, Pincode: "1", Location: geo.NewPoint(0, 0)})

	l := NewPriceCartLogic(context.Background(), &svc.ServiceContext{Foods: foods})
	_, err := l.Price([]CartLine{
		{FoodID: missing1, Quantity: 1},
		{FoodID: known, Quantity: 1},
		{FoodID: missing2, Quantity: 1},
	})
	require.Error(t, err)
	assert.Equal(t, int(errno.FoodNotFound), codeOf(t, err))
	assert.Contains(t, err.Error(), missing1.Hex())
	assert.Contains(t, err.Error(), missing2.Hex())
	assert.NotContains(t, err.Error(), known.Hex())
}

func TestPriceCartEmpty(t *testing.T) {
	l := NewPriceCartLogic(context.Background(), &svc.ServiceContext{Foods: newFakeFoods()})
	_, err := l.Price(nil)
	require.Error(t, err)
	assert.Equal(t, int(errno.InvalidParam), codeOf(t, err))
}
