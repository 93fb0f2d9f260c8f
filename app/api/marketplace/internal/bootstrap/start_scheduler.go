package bootstrap

import (
	"Savora/app/api/marketplace/internal/mq"
	"Savora/app/api/marketplace/internal/svc"

	"github.com/hibiken/asynq"
	"github.com/zeromicro/go-zero/core/logx"
)

// StartScheduler runs the asynq server plus the cron scheduler that feeds it:
// the nightly courier-load reset and the periodic signing-key rotation. It
// returns a stop func, or nil when no redis address is configured.
//
// The rotation task swaps the in-process signing key, which assumes a single
// service instance; running several instances needs a KeyProvider backed by
// shared storage so they all verify under the same generation.
func StartScheduler(svcCtx *svc.ServiceContext) func() {
	addr := svcCtx.Config.AsynqConf.Addr
	if addr == "" {
		addr = svcCtx.Config.RedisConf.Host
	}
	if addr == "" {
		return nil
	}
	redisOpt := asynq.RedisClientOpt{Addr: addr}

	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: svcCtx.Config.AsynqServerConf.Concurrency,
		Queues:      svcCtx.Config.AsynqServerConf.Queues,
	})
	go func() {
		if err := srv.Run(mq.NewAsynqMux(svcCtx)); err != nil {
			logx.Errorf("asynq server stopped: %v", err)
		}
	}()

	scheduler := asynq.NewScheduler(redisOpt, nil)
	if _, err := scheduler.Register(svcCtx.Config.SchedulerConf.ResetDailyCron,
		asynq.NewTask(mq.TaskResetDailyOrders, nil)); err != nil {
		panic(err)
	}
	if _, err := scheduler.Register(svcCtx.Config.SchedulerConf.RotateKeyEvery,
		asynq.NewTask(mq.TaskRotateSigningKey, nil)); err != nil {
		panic(err)
	}
	go func() {
		if err := scheduler.Run(); err != nil {
			logx.Errorf("asynq scheduler stopped: %v", err)
		}
	}()

	return func() {
		scheduler.Shutdown()
		srv.Shutdown()
	}
}
