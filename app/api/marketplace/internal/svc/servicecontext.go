// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package svc

import (
	"context"
	"time"

	"Savora/app/api/marketplace/internal/config"
	"Savora/app/common/middleware"
	"Savora/app/common/token"
	customerdal "Savora/app/dal/customer"
	deliverydal "Savora/app/dal/delivery"
	fooddal "Savora/app/dal/food"
	orderdal "Savora/app/dal/order"
	txndal "Savora/app/dal/transaction"

	"github.com/segmentio/kafka-go"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/go-zero/rest"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ServiceContext struct {
	Config config.Config

	AuthMiddleware rest.Middleware

	Cache *redis.Redis
	Guard *token.Guard

	Customers    customerdal.CustomersModel
	Foods        fooddal.FoodsModel
	Orders       orderdal.OrdersModel
	Transactions txndal.TransactionsModel
	Deliveries   deliverydal.DeliverysModel

	// Reusable writer to cut per-publish connection overhead; nil disables
	// order-event publishing.
	KafkaWriter *kafka.Writer
}

func NewServiceContext(c config.Config) *ServiceContext {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	cli, err := mongo.Connect(ctx, options.Client().ApplyURI(c.MongoConf.Uri))
	if err != nil {
		panic(err)
	}
	db := cli.Database(c.MongoConf.Database)

	cache := redis.MustNewRedis(c.RedisConf)
	guard := token.MustNewGuard(c.AuthConf, token.NewRotatingKey(32), cache)

	var writer *kafka.Writer
	if len(c.KafkaConf.Broker) > 0 && c.KafkaConf.OrderTopic != "" {
		writer = &kafka.Writer{
			Addr:                   kafka.TCP(c.KafkaConf.Broker...),
			Topic:                  c.KafkaConf.OrderTopic,
			Balancer:               &kafka.LeastBytes{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
			BatchTimeout:           5 * time.Millisecond,
		}
	}

	return &ServiceContext{
		Config:         c,
		AuthMiddleware: middleware.NewAuthMiddleware(guard).Handle,
		Cache:          cache,
		Guard:          guard,
		Customers:      customerdal.NewCustomersModel(db),
		Foods:          fooddal.NewFoodsModel(db),
		Orders:         orderdal.NewOrdersModel(db),
		Transactions:   txndal.NewTransactionsModel(db),
		Deliveries:     deliverydal.NewDeliverysModel(db),
		KafkaWriter:    writer,
	}
}
