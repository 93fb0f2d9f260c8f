package customer

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = mongo.ErrNoDocuments

var _ CustomersModel = (*defaultCustomersModel)(nil)

type (
	// CustomersModel is an interface to be customized, add more methods here,
	// and implement the added methods in defaultCustomersModel.
	CustomersModel interface {
		Insert(ctx context.Context, data *Customer) error
		FindOne(ctx context.Context, id string) (*Customer, error)
		FindOneByEmail(ctx context.Context, email string) (*Customer, error)
		// AttachOrder empties the cart and appends the order reference in a
		// single document write.
		AttachOrder(ctx context.Context, id string, orderID primitive.ObjectID) error
		// RestoreAfterOrder is the compensation for AttachOrder: the cart is
		// put back to its pre-saga value and the order reference is pulled.
		RestoreAfterOrder(ctx context.Context, id string, cart []CartEntry, orderID primitive.ObjectID) error
	}

	defaultCustomersModel struct {
		coll *mongo.Collection
	}
)

type CartEntry struct {
	FoodID primitive.ObjectID `bson:"food" json:"food"`
	Unit   int                `bson:"unit" json:"unit"`
}

type Customer struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Email     string               `bson:"email" json:"email"`
	Password  string               `bson:"password" json:"-"`
	Phone     string               `bson:"phone" json:"phone"`
	FirstName string               `bson:"firstName" json:"firstName"`
	LastName  string               `bson:"lastName" json:"lastName"`
	Verified  bool                 `bson:"verified" json:"verified"`
	Cart      []CartEntry          `bson:"cart" json:"cart"`
	Orders    []primitive.ObjectID `bson:"orders" json:"orders"`
	CreatedAt time.Time            `bson:"createdAt,omitempty" json:"-"`
	UpdatedAt time.Time            `bson:"updatedAt,omitempty" json:"-"`
}

// NewCustomersModel returns a model for the customers collection.
func NewCustomersModel(db *mongo.Database) CustomersModel {
	return &defaultCustomersModel{coll: db.Collection("customers")}
}

func (m *defaultCustomersModel) Insert(ctx context.Context, data *Customer) error {
	if data.ID.IsZero() {
		data.ID = primitive.NewObjectID()
		data.CreatedAt = time.Now()
		data.UpdatedAt = time.Now()
	}
	_, err := m.coll.InsertOne(ctx, data)
	return err
}

func (m *defaultCustomersModel) FindOne(ctx context.Context, id string) (*Customer, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var data Customer
	if err := m.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (m *defaultCustomersModel) FindOneByEmail(ctx context.Context, email string) (*Customer, error) {
	var data Customer
	if err := m.coll.FindOne(ctx, bson.M{"email": email}).Decode(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (m *defaultCustomersModel) AttachOrder(ctx context.Context, id string, orderID primitive.ObjectID) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := m.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set":  bson.M{"cart": []CartEntry{}, "updatedAt": time.Now()},
		"$push": bson.M{"orders": orderID},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *defaultCustomersModel) RestoreAfterOrder(ctx context.Context, id string, cart []CartEntry, orderID primitive.ObjectID) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	if cart == nil {
		cart = []CartEntry{}
	}
	_, err = m.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set":  bson.M{"cart": cart, "updatedAt": time.Now()},
		"$pull": bson.M{"orders": orderID},
	})
	return err
}
