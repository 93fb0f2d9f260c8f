package transaction

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = mongo.ErrNoDocuments

const (
	StatusOpen      = "OPEN"
	StatusConfirmed = "CONFIRMED"
	StatusFailed    = "FAILED"
	StatusSuccess   = "SUCCESS"
)

var _ TransactionsModel = (*defaultTransactionsModel)(nil)

type (
	// TransactionsModel is an interface to be customized, add more methods here,
	// and implement the added methods in defaultTransactionsModel.
	TransactionsModel interface {
		Insert(ctx context.Context, data *Transaction) error
		FindOne(ctx context.Context, id string) (*Transaction, error)
		// Confirm binds the transaction to the freshly created order.
		Confirm(ctx context.Context, id string, orderID string, vendorIDs []string) error
		// Restore is the compensation for Confirm.
		Restore(ctx context.Context, id string, prior Snapshot) error
	}

	defaultTransactionsModel struct {
		coll *mongo.Collection
	}
)

type Transaction struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Customer        string             `bson:"customer" json:"customer"`
	VendorIDs       []string           `bson:"vendorId" json:"vendorId"`
	OrderID         string             `bson:"orderId" json:"orderId"`
	OrderValue      float64            `bson:"orderValue" json:"orderValue"`
	OfferUsed       string             `bson:"offerUsed" json:"offerUsed"`
	Status          string             `bson:"status" json:"status"`
	PaymentMode     string             `bson:"paymentMode" json:"paymentMode"`
	PaymentResponse string             `bson:"paymentResponse" json:"paymentResponse"`
	CreatedAt       time.Time          `bson:"createdAt,omitempty" json:"-"`
	UpdatedAt       time.Time          `bson:"updatedAt,omitempty" json:"-"`
}

// Snapshot carries the pre-saga transaction fields a compensation puts back.
type Snapshot struct {
	VendorIDs []string
	OrderID   string
	Status    string
}

// NewTransactionsModel returns a model for the transactions collection.
func NewTransactionsModel(db *mongo.Database) TransactionsModel {
	return &defaultTransactionsModel{coll: db.Collection("transactions")}
}

func (m *defaultTransactionsModel) Insert(ctx context.Context, data *Transaction) error {
	if data.ID.IsZero() {
		data.ID = primitive.NewObjectID()
		data.CreatedAt = time.Now()
		data.UpdatedAt = time.Now()
	}
	_, err := m.coll.InsertOne(ctx, data)
	return err
}

func (m *defaultTransactionsModel) FindOne(ctx context.Context, id string) (*Transaction, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var data Transaction
	if err := m.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (m *defaultTransactionsModel) Confirm(ctx context.Context, id string, orderID string, vendorIDs []string) error {
	return m.setFields(ctx, id, bson.M{
		"status":   StatusConfirmed,
		"orderId":  orderID,
		"vendorId": vendorIDs,
	})
}

func (m *defaultTransactionsModel) Restore(ctx context.Context, id string, prior Snapshot) error {
	return m.setFields(ctx, id, bson.M{
		"status":   prior.Status,
		"orderId":  prior.OrderID,
		"vendorId": prior.VendorIDs,
	})
}

func (m *defaultTransactionsModel) setFields(ctx context.Context, id string, fields bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	fields["updatedAt"] = time.Now()
	res, err := m.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
