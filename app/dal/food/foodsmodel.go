package food

import (
	"context"
	"time"

	"Savora/app/dal/geo"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = mongo.ErrNoDocuments

var _ FoodsModel = (*defaultFoodsModel)(nil)

type (
	// FoodsModel is an interface to be customized, add more methods here,
	// and implement the added methods in defaultFoodsModel.
	FoodsModel interface {
		Insert(ctx context.Context, data *Food) error
		FindOne(ctx context.Context, id string) (*Food, error)
		// ResolveCartFoods joins each requested food with its owning vendor,
		// projecting the unit price, vendor pincode and vendor geo-location.
		// Unmatched ids are simply absent from the result.
		ResolveCartFoods(ctx context.Context, ids []primitive.ObjectID) ([]*CartFood, error)
	}

	defaultFoodsModel struct {
		coll *mongo.Collection
	}
)

type Food struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	VendorID    primitive.ObjectID `bson:"vendorId" json:"vendorId"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Category    string             `bson:"category" json:"category"`
	FoodType    string             `bson:"foodType" json:"foodType"`
	ReadyTime   int                `bson:"readyTime" json:"readyTime"`
	Price       float64            `bson:"price" json:"price"`
	Rating      float64            `bson:"rating" json:"rating"`
	CreatedAt   time.Time          `bson:"createdAt,omitempty" json:"-"`
	UpdatedAt   time.Time          `bson:"updatedAt,omitempty" json:"-"`
}

// CartFood is one row of the pricing join: a resolved food plus the vendor
// fields needed for delivery-candidate selection.
type CartFood struct {
	ID       primitive.ObjectID `bson:"_id"`
	VendorID primitive.ObjectID `bson:"vendorId"`
	Price    float64            `bson:"price"`
	Pincode  string             `bson:"pincode"`
	Location geo.Point          `bson:"locations"`
}

// NewFoodsModel returns a model for the foods collection.
func NewFoodsModel(db *mongo.Database) FoodsModel {
	return &defaultFoodsModel{coll: db.Collection("foods")}
}

func (m *defaultFoodsModel) Insert(ctx context.Context, data *Food) error {
	if data.ID.IsZero() {
		data.ID = primitive.NewObjectID()
		data.CreatedAt = time.Now()
		data.UpdatedAt = time.Now()
	}
	_, err := m.coll.InsertOne(ctx, data)
	return err
}

func (m *defaultFoodsModel) FindOne(ctx context.Context, id string) (*Food, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var data Food
	if err := m.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (m *defaultFoodsModel) ResolveCartFoods(ctx context.Context, ids []primitive.ObjectID) ([]*CartFood, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}},
		}}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "vendors"},
			{Key: "localField", Value: "vendorId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "pipeline", Value: bson.A{
				bson.D{{Key: "$project", Value: bson.D{
					{Key: "pincode", Value: 1},
					{Key: "locations", Value: 1},
				}}},
			}},
			{Key: "as", Value: "vendor"},
		}}},
		bson.D{{Key: "$unwind", Value: "$vendor"}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "price", Value: 1},
			{Key: "vendorId", Value: 1},
			{Key: "pincode", Value: "$vendor.pincode"},
			{Key: "locations", Value: "$vendor.locations"},
		}}},
	}

	cur, err := m.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var rows []*CartFood
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
