// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package order

import (
	"context"

	"Savora/app/api/marketplace/internal/logic/helper"
	"Savora/app/api/marketplace/internal/svc"
	"Savora/app/api/marketplace/internal/types"
	"Savora/app/common/consts/errno"
	"Savora/app/common/util"
	txndal "Savora/app/dal/transaction"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/x/errors"
)

type CreatePaymentLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewCreatePaymentLogic(ctx context.Context, svcCtx *svc.ServiceContext) *CreatePaymentLogic {
	return &CreatePaymentLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// CreatePayment opens a transaction the customer can later place an order
// against. Payment capture is out of band; the transaction starts OPEN.
func (l *CreatePaymentLogic) CreatePayment(req *types.CreatePaymentRequest) (*types.CreatePaymentResponse, error) {
	uid, err := util.UserIdFromCtx(l.ctx)
	if err != nil {
		return nil, err
	}
	if req.Amount <= 0 {
		return nil, errors.New(int(errno.InvalidParam), "amount must be positive")
	}
	if req.PaymentMode == "" {
		return nil, errors.New(int(errno.InvalidParam), "paymentMode is required")
	}

	offer := req.OfferId
	if offer == "" {
		offer = "NA"
	}
	txn := &txndal.Transaction{
		Customer:        uid,
		VendorIDs:       []string{},
		OrderValue:      req.Amount,
		OfferUsed:       offer,
		Status:          txndal.StatusOpen,
		PaymentMode:     req.PaymentMode,
		PaymentResponse: "payment is cash on delivery",
	}
	if err := l.svcCtx.Transactions.Insert(l.ctx, txn); err != nil {
		return nil, err
	}

	csrfToken, err := helper.RefreshAntiForgery(l.ctx, l.svcCtx)
	if err != nil {
		return nil, err
	}
	return &types.CreatePaymentResponse{
		TxnId:     txn.ID.Hex(),
		Status:    txn.Status,
		CsrfToken: csrfToken,
	}, nil
}
