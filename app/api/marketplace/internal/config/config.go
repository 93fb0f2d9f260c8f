// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package config

import (
	"Savora/app/common/token"

	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/go-zero/rest"
)

type Config struct {
	rest.RestConf

	MongoConf MongoConf
	RedisConf redis.RedisConf
	AuthConf  token.Config

	AsynqConf       AsynqRedisConf
	AsynqServerConf AsynqServerConf
	SchedulerConf   SchedulerConf

	KafkaConf KafkaConf
}

type MongoConf struct {
	Uri      string
	Database string
}

// Minimal redis client config for asynq; falls back to RedisConf.Host when
// Addr is empty.
type AsynqRedisConf struct {
	Addr string `json:",optional"`
}

type AsynqServerConf struct {
	Concurrency int            `json:",default=4"`
	Queues      map[string]int `json:",optional"`
}

type SchedulerConf struct {
	ResetDailyCron string `json:",default=0 0 * * *"`
	RotateKeyEvery string `json:",default=@every 24h"`
}

// Kafka order-event producer; publishing is disabled when Broker is empty.
type KafkaConf struct {
	Broker     []string `json:",optional"`
	OrderTopic string   `json:",optional"`
}
