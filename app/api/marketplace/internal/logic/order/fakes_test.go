package order

import (
	"context"
	"sort"
	"sync"

	customerdal "Savora/app/dal/customer"
	deliverydal "Savora/app/dal/delivery"
	fooddal "Savora/app/dal/food"
	"Savora/app/dal/geo"
	orderdal "Savora/app/dal/order"
	txndal "Savora/app/dal/transaction"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory stand-ins for the mongo-backed models. They mirror the write
// semantics the logic relies on (CAS reservation, cart clear on attach) and
// are safe for the concurrent access mr.Finish produces.

type fakeCustomers struct {
	mu        sync.Mutex
	rows      map[string]*customerdal.Customer
	attachErr error
}

func newFakeCustomers() *fakeCustomers {
	return &fakeCustomers{rows: make(map[string]*customerdal.Customer)}
}

func (f *fakeCustomers) put(c *customerdal.Customer) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[c.ID.Hex()] = c
}

func (f *fakeCustomers) get(id string) *customerdal.Customer {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows[id]
}

func (f *fakeCustomers) Insert(ctx context.Context, data *customerdal.Customer) error {
	if data.ID.IsZero() {
		data.ID = primitive.NewObjectID()
	}
	f.put(data)
	return nil
}

func (f *fakeCustomers) FindOne(ctx context.Context, id string) (*customerdal.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok {
		return nil, customerdal.ErrNotFound
	}
	cp := *row
	cp.Cart = append([]customerdal.CartEntry(nil), row.Cart...)
	cp.Orders = append([]primitive.ObjectID(nil), row.Orders...)
	return &cp, nil
}

func (f *fakeCustomers) FindOneByEmail(ctx context.Context, email string) (*customerdal.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if row.Email == email {
			cp := *row
			return &cp, nil
		}
	}
	return nil, customerdal.ErrNotFound
}

func (f *fakeCustomers) AttachOrder(ctx context.Context, id string, orderID primitive.ObjectID) error {
	if f.attachErr != nil {
		return f.attachErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok {
		return customerdal.ErrNotFound
	}
	row.Cart = []customerdal.CartEntry{}
	row.Orders = append(row.Orders, orderID)
	return nil
}

func (f *fakeCustomers) RestoreAfterOrder(ctx context.Context, id string, cart []customerdal.CartEntry, orderID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok {
		return customerdal.ErrNotFound
	}
	row.Cart = cart
	kept := row.Orders[:0]
	for _, oid := range row.Orders {
		if oid != orderID {
			kept = append(kept, oid)
		}
	}
	row.Orders = kept
	return nil
}

type fakeFoods struct {
	mu   sync.Mutex
	rows map[primitive.ObjectID]*fooddal.CartFood
}

func newFakeFoods() *fakeFoods {
	return &fakeFoods{rows: make(map[primitive.ObjectID]*fooddal.CartFood)}
}

func (f *fakeFoods) put(row *fooddal.CartFood) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[row.ID] = row
}

func (f *fakeFoods) Insert(ctx context.Context, data *fooddal.Food) error { return nil }

func (f *fakeFoods) FindOne(ctx context.Context, id string) (*fooddal.Food, error) {
	return nil, fooddal.ErrNotFound
}

func (f *fakeFoods) ResolveCartFoods(ctx context.Context, ids []primitive.ObjectID) ([]*fooddal.CartFood, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*fooddal.CartFood
	for _, id := range ids {
		if row, ok := f.rows[id]; ok {
			cp := *row
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeOrders struct {
	mu              sync.Mutex
	rows            map[string]*orderdal.Order
	deleted         []string
	setDeliveryErr  error
	setDeliveryHook func()
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{rows: make(map[string]*orderdal.Order)}
}

func (f *fakeOrders) Insert(ctx context.Context, data *orderdal.Order) error {
	if data.ID.IsZero() {
		data.ID = primitive.NewObjectID()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *data
	f.rows[data.ID.Hex()] = &cp
	return nil
}

func (f *fakeOrders) FindOne(ctx context.Context, id string) (*orderdal.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok {
		return nil, orderdal.ErrNotFound
	}
	cp := *row
	return &cp, nil
}

func (f *fakeOrders) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*orderdal.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*orderdal.Order
	for _, id := range ids {
		if row, ok := f.rows[id.Hex()]; ok {
			cp := *row
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeOrders) SetDelivery(ctx context.Context, id string, deliveryID string) error {
	if f.setDeliveryHook != nil {
		f.setDeliveryHook()
	}
	if f.setDeliveryErr != nil {
		return f.setDeliveryErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok {
		return orderdal.ErrNotFound
	}
	row.DeliveryID = deliveryID
	return nil
}

func (f *fakeOrders) ClearDelivery(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok {
		return orderdal.ErrNotFound
	}
	row.DeliveryID = ""
	return nil
}

func (f *fakeOrders) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return orderdal.ErrNotFound
	}
	delete(f.rows, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeTransactions struct {
	mu         sync.Mutex
	rows       map[string]*txndal.Transaction
	confirmErr error
}

func newFakeTransactions() *fakeTransactions {
	return &fakeTransactions{rows: make(map[string]*txndal.Transaction)}
}

func (f *fakeTransactions) put(t *txndal.Transaction) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[t.ID.Hex()] = t
}

func (f *fakeTransactions) get(id string) *txndal.Transaction {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows[id]
}

func (f *fakeTransactions) Insert(ctx context.Context, data *txndal.Transaction) error {
	if data.ID.IsZero() {
		data.ID = primitive.NewObjectID()
	}
	f.put(data)
	return nil
}

func (f *fakeTransactions) FindOne(ctx context.Context, id string) (*txndal.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok {
		return nil, txndal.ErrNotFound
	}
	cp := *row
	return &cp, nil
}

func (f *fakeTransactions) Confirm(ctx context.Context, id string, orderID string, vendorIDs []string) error {
	if f.confirmErr != nil {
		return f.confirmErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok {
		return txndal.ErrNotFound
	}
	row.OrderID = orderID
	row.VendorIDs = vendorIDs
	row.Status = txndal.StatusConfirmed
	return nil
}

func (f *fakeTransactions) Restore(ctx context.Context, id string, prior txndal.Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok {
		return txndal.ErrNotFound
	}
	row.OrderID = prior.OrderID
	row.VendorIDs = prior.VendorIDs
	row.Status = prior.Status
	return nil
}

type fakeDeliveries struct {
	mu sync.Mutex
	// reserveCounts lets a test make the stored count diverge from the
	// observed one, simulating a lost reservation race.
	rows          map[string]*deliverydal.Delivery
	raceOnce      map[string]bool
	releasedIDs   []string
	lastCenter    geo.LatLng
	lastLimit     int64
	resetReturned int64
}

func newFakeDeliveries() *fakeDeliveries {
	return &fakeDeliveries{
		rows:     make(map[string]*deliverydal.Delivery),
		raceOnce: make(map[string]bool),
	}
}

func (f *fakeDeliveries) put(d *deliverydal.Delivery) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[d.ID.Hex()] = d
}

func (f *fakeDeliveries) get(id string) *deliverydal.Delivery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows[id]
}

func (f *fakeDeliveries) FindOne(ctx context.Context, id string) (*deliverydal.Delivery, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok {
		return nil, deliverydal.ErrNotFound
	}
	cp := *row
	return &cp, nil
}

func (f *fakeDeliveries) FindNearestAvailable(ctx context.Context, center geo.LatLng, limit int64) ([]*deliverydal.Delivery, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastCenter = center
	f.lastLimit = limit
	var out []*deliverydal.Delivery
	for _, row := range f.rows {
		if row.Verified && row.IsAvailable {
			cp := *row
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DailyOrder.Count < out[j].DailyOrder.Count
	})
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeDeliveries) Reserve(ctx context.Context, id string, observedCount int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok || !row.Verified || !row.IsAvailable {
		return false, nil
	}
	if f.raceOnce[id] {
		// someone else got there first, exactly once
		delete(f.raceOnce, id)
		row.DailyOrder.Count++
		return false, nil
	}
	if row.DailyOrder.Count != observedCount {
		return false, nil
	}
	row.DailyOrder.Count++
	return true, nil
}

func (f *fakeDeliveries) Release(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok {
		return deliverydal.ErrNotFound
	}
	row.DailyOrder.Count--
	f.releasedIDs = append(f.releasedIDs, id)
	return nil
}

func (f *fakeDeliveries) ResetDailyOrders(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		row.DailyOrder.Count = 0
	}
	f.resetReturned = int64(len(f.rows))
	return f.resetReturned, nil
}
