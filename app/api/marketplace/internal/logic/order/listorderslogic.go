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
	"Savora/app/common/util"
	customerdal "Savora/app/dal/customer"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/x/errors"
)

type ListOrdersLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewListOrdersLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ListOrdersLogic {
	return &ListOrdersLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *ListOrdersLogic) ListOrders() (*types.ListOrdersResponse, error) {
	uid, err := util.UserIdFromCtx(l.ctx)
	if err != nil {
		return nil, err
	}

	profile, err := l.svcCtx.Customers.FindOne(l.ctx, uid)
	if stderrors.Is(err, customerdal.ErrNotFound) {
		return nil, errors.New(int(errno.CustomerNotFound), "the customer is not found")
	}
	if err != nil {
		return nil, err
	}

	views := []types.OrderView{}
	if len(profile.Orders) > 0 {
		rows, err := l.svcCtx.Orders.FindByIDs(l.ctx, profile.Orders)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			views = append(views, helper.ToOrderView(row))
		}
	}

	csrfToken, err := helper.RefreshAntiForgery(l.ctx, l.svcCtx)
	if err != nil {
		return nil, err
	}
	return &types.ListOrdersResponse{
		Orders:    views,
		CsrfToken: csrfToken,
	}, nil
}
