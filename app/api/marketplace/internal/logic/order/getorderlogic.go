// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package order

import (
	"context"
	stderrors "errors"

	"Savora/app/api/marketplace/internal/logic/helper"
	"Savora/app/api/marketplace/internal/svc"
	"Savora/app/api/marketplace/internal/types"
	"Savora/app/common/consts/errno"
	orderdal "Savora/app/dal/order"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/x/errors"
)

type GetOrderLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewGetOrderLogic(ctx context.Context, svcCtx *svc.ServiceContext) *GetOrderLogic {
	return &GetOrderLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *GetOrderLogic) GetOrder(req *types.GetOrderRequest) (*types.GetOrderResponse, error) {
	row, err := l.svcCtx.Orders.FindOne(l.ctx, req.Id)
	if stderrors.Is(err, orderdal.ErrNotFound) {
		return nil, errors.New(int(errno.OrderNotFound), "order not found")
	}
	if err != nil {
		return nil, err
	}

	csrfToken, err := helper.RefreshAntiForgery(l.ctx, l.svcCtx)
	if err != nil {
		return nil, err
	}
	return &types.GetOrderResponse{
		Order:     helper.ToOrderView(row),
		CsrfToken: csrfToken,
	}, nil
}
