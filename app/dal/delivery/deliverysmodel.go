package delivery

import (
	"context"
	"time"

	"Savora/app/dal/geo"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = mongo.ErrNoDocuments

var _ DeliverysModel = (*defaultDeliverysModel)(nil)

type (
	// DeliverysModel is an interface to be customized, add more methods here,
	// and implement the added methods in defaultDeliverysModel.
	DeliverysModel interface {
		FindOne(ctx context.Context, id string) (*Delivery, error)
		// FindNearestAvailable returns verified, available couriers near the
		// given point, sorted by daily load ascending and capped at limit.
		// Requires the 2dsphere index on locations.
		FindNearestAvailable(ctx context.Context, center geo.LatLng, limit int64) ([]*Delivery, error)
		// Reserve bumps the courier's daily count iff it is still available
		// and the count has not moved since it was observed. A false return
		// means the reservation was lost to a concurrent order.
		Reserve(ctx context.Context, id string, observedCount int) (bool, error)
		// Release undoes a reservation.
		Release(ctx context.Context, id string) error
		ResetDailyOrders(ctx context.Context) (int64, error)
	}

	defaultDeliverysModel struct {
		coll *mongo.Collection
	}
)

type DailyOrder struct {
	Count         int       `bson:"count" json:"count"`
	LastResetTime time.Time `bson:"lastResetTime" json:"lastResetTime"`
}

type Delivery struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email       string             `bson:"email" json:"email"`
	Password    string             `bson:"password" json:"-"`
	FirstName   string             `bson:"firstName" json:"firstName"`
	LastName    string             `bson:"lastName" json:"lastName"`
	Address     string             `bson:"address" json:"address"`
	Phone       string             `bson:"phone" json:"phone"`
	Verified    bool               `bson:"verified" json:"verified"`
	IsAvailable bool               `bson:"isAvailable" json:"isAvailable"`
	Pincode     string             `bson:"pincode" json:"pincode"`
	Locations   geo.Point          `bson:"locations" json:"locations"`
	DailyOrder  DailyOrder         `bson:"dailyOrder" json:"dailyOrder"`
	CreatedAt   time.Time          `bson:"createdAt,omitempty" json:"-"`
	UpdatedAt   time.Time          `bson:"updatedAt,omitempty" json:"-"`
}

// NewDeliverysModel returns a model for the deliverys collection.
func NewDeliverysModel(db *mongo.Database) DeliverysModel {
	return &defaultDeliverysModel{coll: db.Collection("deliverys")}
}

func (m *defaultDeliverysModel) FindOne(ctx context.Context, id string) (*Delivery, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var data Delivery
	if err := m.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (m *defaultDeliverysModel) FindNearestAvailable(ctx context.Context, center geo.LatLng, limit int64) ([]*Delivery, error) {
	filter := bson.M{
		"verified":    true,
		"isAvailable": true,
		"locations": bson.M{
			"$nearSphere": bson.M{
				"$geometry": geo.NewPoint(center.Lat, center.Lng),
			},
		},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "dailyOrder.count", Value: 1}}).
		SetLimit(limit)

	cur, err := m.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var rows []*Delivery
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (m *defaultDeliverysModel) Reserve(ctx context.Context, id string, observedCount int) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, ErrNotFound
	}
	res, err := m.coll.UpdateOne(ctx, bson.M{
		"_id":              oid,
		"verified":         true,
		"isAvailable":      true,
		"dailyOrder.count": observedCount,
	}, bson.M{
		"$inc": bson.M{"dailyOrder.count": 1},
		"$set": bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

func (m *defaultDeliverysModel) Release(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	_, err = m.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$inc": bson.M{"dailyOrder.count": -1},
		"$set": bson.M{"updatedAt": time.Now()},
	})
	return err
}

func (m *defaultDeliverysModel) ResetDailyOrders(ctx context.Context) (int64, error) {
	res, err := m.coll.UpdateMany(ctx, bson.M{}, bson.M{
		"$set": bson.M{
			"dailyOrder.count":         0,
			"dailyOrder.lastResetTime": time.Now(),
		},
	})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
