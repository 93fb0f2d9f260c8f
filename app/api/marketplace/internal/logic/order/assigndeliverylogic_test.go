package order

import (
	"context"
	"testing"

	"Savora/app/api/marketplace/internal/svc"
	"Savora/app/common/consts/errno"
	"Savora/app/common/rollback"
	deliverydal "Savora/app/dal/delivery"
	"Savora/app/dal/geo"
	orderdal "Savora/app/dal/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func courier(count int) *deliverydal.Delivery {
	return &deliverydal.Delivery{
		ID:          primitive.NewObjectID(),
		Verified:    true,
		IsAvailable: true,
		Locations:   geo.NewPoint(12.97, 77.59),
		DailyOrder:  deliverydal.DailyOrder{Count: count},
	}
}

func seedOrder(t *testing.T, orders *fakeOrders) *orderdal.Order {
	t.Helper()
	o := &orderdal.Order{OrderID: "1001", OrderStatus: orderdal.StatusWaiting}
	require.NoError(t, orders.Insert(context.Background(), o))
	return o
}

func TestAssignPicksLeastLoadedCourier(t *testing.T) {
	deliveries := newFakeDeliveries()
	busy := courier(9)
	idle := courier(2)
	deliveries.put(busy)
	deliveries.put(idle)

	orders := newFakeOrders()
	o := seedOrder(t, orders)

	svcCtx := &svc.ServiceContext{Orders: orders, Deliveries: deliveries}
	ledger := rollback.NewLedger()

	assigned, err := NewAssignDeliveryLogic(context.Background(), svcCtx).
		Assign(o.ID.Hex(), nil, geo.LatLng{Lat: 12.9, Lng: 77.6}, ledger)
	require.NoError(t, err)

	assert.Equal(t, idle.ID.Hex(), assigned.DeliveryID)
	assert.Equal(t, 3, deliveries.get(idle.ID.Hex()).DailyOrder.Count, "reservation bumps the count")
	assert.Equal(t, 9, deliveries.get(busy.ID.Hex()).DailyOrder.Count)
	assert.Equal(t, 2, ledger.Len(), "release and unbind compensations registered")

	stored, err := orders.FindOne(context.Background(), o.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, idle.ID.Hex(), stored.DeliveryID)
}

func TestAssignFallsThroughOnLostReservation(t *testing.T) {
	deliveries := newFakeDeliveries()
	first := courier(1)
	second := courier(4)
	deliveries.put(first)
	deliveries.put(second)
	deliveries.raceOnce[first.ID.Hex()] = true

	orders := newFakeOrders()
	o := seedOrder(t, orders)

	svcCtx := &svc.ServiceContext{Orders: orders, Deliveries: deliveries}
	assigned, err := NewAssignDeliveryLogic(context.Background(), svcCtx).
		Assign(o.ID.Hex(), nil, geo.LatLng{}, rollback.NewLedger())
	require.NoError(t, err)

	assert.Equal(t, second.ID.Hex(), assigned.DeliveryID, "loser of the race moves to the next candidate")
	assert.Equal(t, 5, deliveries.get(second.ID.Hex()).DailyOrder.Count)
}

func TestAssignNoCourierAvailable(t *testing.T) {
	orders := newFakeOrders()
	o := seedOrder(t, orders)

	svcCtx := &svc.ServiceContext{Orders: orders, Deliveries: newFakeDeliveries()}
	ledger := rollback.NewLedger()
	_, err := NewAssignDeliveryLogic(context.Background(), svcCtx).
		Assign(o.ID.Hex(), nil, geo.LatLng{}, ledger)
	require.Error(t, err)
	assert.Equal(t, int(errno.NoCourierAvailable), codeOf(t, err))
	assert.Zero(t, ledger.Len(), "nothing to compensate when no step succeeded")
}

func TestAssignAllReservationsLost(t *testing.T) {
	deliveries := newFakeDeliveries()
	only := courier(1)
	deliveries.put(only)
	deliveries.raceOnce[only.ID.Hex()] = true

	orders := newFakeOrders()
	o := seedOrder(t, orders)

	svcCtx := &svc.ServiceContext{Orders: orders, Deliveries: deliveries}
	_, err := NewAssignDeliveryLogic(context.Background(), svcCtx).
		Assign(o.ID.Hex(), nil, geo.LatLng{}, rollback.NewLedger())
	require.Error(t, err)
	assert.Equal(t, int(errno.NoCourierAvailable), codeOf(t, err))
}

func TestAssignOrderVanished(t *testing.T) {
	deliveries := newFakeDeliveries()
	deliveries.put(courier(0))

	svcCtx := &svc.ServiceContext{Orders: newFakeOrders(), Deliveries: deliveries}
	_, err := NewAssignDeliveryLogic(context.Background(), svcCtx).
		Assign(primitive.NewObjectID().Hex(), nil, geo.LatLng{}, rollback.NewLedger())
	require.Error(t, err)
	assert.Equal(t, int(errno.OrderNotFound), codeOf(t, err))
}

func TestAssignCentersOnVendorsAndCustomer(t *testing.T) {
	deliveries := newFakeDeliveries()
	deliveries.put(courier(0))

	orders := newFakeOrders()
	o := seedOrder(t, orders)

	addrs := []VendorAddress{
		{VendorID: primitive.NewObjectID(), Location: geo.NewPoint(10, 20)},
		{VendorID: primitive.NewObjectID(), Location: geo.NewPoint(20, 40)},
	}
	svcCtx := &svc.ServiceContext{Orders: orders, Deliveries: deliveries}
	_, err := NewAssignDeliveryLogic(context.Background(), svcCtx).
		Assign(o.ID.Hex(), addrs, geo.LatLng{Lat: 30, Lng: 60}, rollback.NewLedger())
	require.NoError(t, err)

	assert.InDelta(t, 20.0, deliveries.lastCenter.Lat, 1e-9)
	assert.InDelta(t, 40.0, deliveries.lastCenter.Lng, 1e-9)
	assert.Equal(t, int64(maxCourierCandidates), deliveries.lastLimit)
}
