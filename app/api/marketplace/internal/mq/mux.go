package mq

import (
	"context"

	"Savora/app/api/marketplace/internal/svc"

	"github.com/hibiken/asynq"
	"github.com/zeromicro/go-zero/core/logx"
)

func NewAsynqMux(svcCtx *svc.ServiceContext) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskResetDailyOrders, newResetDailyOrdersHandler(svcCtx))
	mux.HandleFunc(TaskRotateSigningKey, newRotateSigningKeyHandler(svcCtx))
	return mux
}

// Couriers accumulate a dailyOrder count as assignments land; the nightly
// reset zeroes it so load balancing starts fresh each day.
func newResetDailyOrdersHandler(svcCtx *svc.ServiceContext) func(context.Context, *asynq.Task) error {
	return func(ctx context.Context, t *asynq.Task) error {
		n, err := svcCtx.Deliveries.ResetDailyOrders(ctx)
		if err != nil {
			logx.WithContext(ctx).Errorf("reset daily order counts failed: %v", err)
			return err
		}
		logx.WithContext(ctx).Infof("reset daily order count for %d couriers", n)
		return nil
	}
}

func newRotateSigningKeyHandler(svcCtx *svc.ServiceContext) func(context.Context, *asynq.Task) error {
	return func(ctx context.Context, t *asynq.Task) error {
		gen := svcCtx.Guard.Keys().Rotate()
		logx.WithContext(ctx).Infof("rotated bearer signing key, generation %d", gen)
		return nil
	}
}
