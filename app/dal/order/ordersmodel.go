package order

import (
	"context"
	"time"

	"Savora/app/dal/geo"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = mongo.ErrNoDocuments

// Order status lifecycle. WAITING is set at creation; the remaining states are
// reached later by vendor-processing and delivery flows.
const (
	StatusWaiting    = "WAITING"
	StatusFailed     = "FAILED"
	StatusAccepted   = "ACCEPTED"
	StatusRejected   = "REJECTED"
	StatusProcessing = "PROCESSING"
	StatusReady      = "READY"
)

var _ OrdersModel = (*defaultOrdersModel)(nil)

type (
	// OrdersModel is an interface to be customized, add more methods here,
	// and implement the added methods in defaultOrdersModel.
	OrdersModel interface {
		Insert(ctx context.Context, data *Order) error
		FindOne(ctx context.Context, id string) (*Order, error)
		FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*Order, error)
		// SetDelivery binds a courier to the order; ErrNotFound when the order
		// has vanished underneath the saga.
		SetDelivery(ctx context.Context, id string, deliveryID string) error
		ClearDelivery(ctx context.Context, id string) error
		Delete(ctx context.Context, id string) error
	}

	defaultOrdersModel struct {
		coll *mongo.Collection
	}
)

type OrderItem struct {
	FoodID    primitive.ObjectID `bson:"food" json:"food"`
	VendorID  primitive.ObjectID `bson:"vendorId" json:"vendorId"`
	UnitPrice float64            `bson:"unitPrice" json:"unitPrice"`
	Unit      int                `bson:"unit" json:"unit"`
}

type Order struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID     string             `bson:"orderId" json:"orderId"`
	VendorIDs   []string           `bson:"vendorId" json:"vendorId"`
	Items       []OrderItem        `bson:"items" json:"items"`
	TotalAmount float64            `bson:"totalAmount" json:"totalAmount"`
	PaidAmount  float64            `bson:"paidAmount" json:"paidAmount"`
	OrderDate   time.Time          `bson:"orderDate" json:"orderDate"`
	OrderStatus string             `bson:"orderStatus" json:"orderStatus"`
	Remarks     string             `bson:"remarks" json:"remarks"`
	DeliveryID  string             `bson:"deliveryId" json:"deliveryId"`
	ReadyTime   int                `bson:"readyTime" json:"readyTime"`
	Locations   geo.LatLng         `bson:"locations" json:"locations"`
	CreatedAt   time.Time          `bson:"createdAt,omitempty" json:"-"`
	UpdatedAt   time.Time          `bson:"updatedAt,omitempty" json:"-"`
}

// NewOrdersModel returns a model for the orders collection.
func NewOrdersModel(db *mongo.Database) OrdersModel {
	return &defaultOrdersModel{coll: db.Collection("orders")}
}

func (m *defaultOrdersModel) Insert(ctx context.Context, data *Order) error {
	if data.ID.IsZero() {
		data.ID = primitive.NewObjectID()
		data.CreatedAt = time.Now()
		data.UpdatedAt = time.Now()
	}
	_, err := m.coll.InsertOne(ctx, data)
	return err
}

func (m *defaultOrdersModel) FindOne(ctx context.Context, id string) (*Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var data Order
	if err := m.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (m *defaultOrdersModel) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*Order, error) {
	cur, err := m.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var rows []*Order
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (m *defaultOrdersModel) SetDelivery(ctx context.Context, id string, deliveryID string) error {
	return m.updateDelivery(ctx, id, deliveryID)
}

func (m *defaultOrdersModel) ClearDelivery(ctx context.Context, id string) error {
	return m.updateDelivery(ctx, id, "")
}

func (m *defaultOrdersModel) updateDelivery(ctx context.Context, id string, deliveryID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := m.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{"deliveryId": deliveryID, "updatedAt": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *defaultOrdersModel) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	_, err = m.coll.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
