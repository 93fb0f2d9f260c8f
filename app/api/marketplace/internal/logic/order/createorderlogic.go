// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package order

import (
	"context"
	stderrors "errors"
	"time"

	"Savora/app/api/marketplace/internal/logic/helper"
	"Savora/app/api/marketplace/internal/mq"
	"Savora/app/api/marketplace/internal/svc"
	"Savora/app/api/marketplace/internal/types"
	"Savora/app/common/consts/errno"
	"Savora/app/common/rollback"
	"Savora/app/common/snowflake"
	"Savora/app/common/util"
	customerdal "Savora/app/dal/customer"
	"Savora/app/dal/geo"
	orderdal "Savora/app/dal/order"
	txndal "Savora/app/dal/transaction"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/mr"
	"github.com/zeromicro/x/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Minutes until the multi-vendor order is expected to be ready for pickup.
const defaultReadyTime = 45

type CreateOrderLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewCreateOrderLogic(ctx context.Context, svcCtx *svc.ServiceContext) *CreateOrderLogic {
	return &CreateOrderLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// CreateOrder runs the order-placement saga. Every step that mutates state
// registers its compensation on a saga-scoped ledger before or immediately
// after the write; when any later step fails, all registered compensations run
// best-effort and the step's own error is returned unchanged. On success the
// ledger is discarded without running.
func (l *CreateOrderLogic) CreateOrder(req *types.CreateOrderRequest) (*types.CreateOrderResponse, error) {
	uid, err := util.UserIdFromCtx(l.ctx)
	if err != nil {
		return nil, err
	}
	bearer, err := util.TokenFromCtx(l.ctx)
	if err != nil {
		return nil, err
	}
	if req.TxnId == "" {
		return nil, errors.New(int(errno.InvalidParam), "txnId is required")
	}
	lines, err := parseCartLines(req.Items)
	if err != nil {
		return nil, err
	}

	ledger := rollback.NewLedger()
	placed, csrfToken, err := l.placeOrder(ledger, uid, bearer, lines, req)
	if err != nil {
		// undos must run even when the failure was the request context being
		// canceled, so detach them from its cancellation
		ledger.RunAll(context.WithoutCancel(l.ctx))
		return nil, err
	}
	ledger.Clear()

	if pubErr := mq.PublishOrderPlaced(l.svcCtx, mq.OrderPlacedEvent{
		OrderID:     placed.OrderID,
		CustomerID:  uid,
		VendorIDs:   placed.VendorIDs,
		TotalAmount: placed.TotalAmount,
		PlacedAt:    placed.OrderDate.Unix(),
	}); pubErr != nil {
		// the order stands; event delivery is not part of the saga
		l.Errorf("publish order placed event failed: orderId=%s err=%v", placed.OrderID, pubErr)
	}

	return &types.CreateOrderResponse{
		Orders:    helper.ToOrderView(placed),
		CsrfToken: csrfToken,
	}, nil
}

func (l *CreateOrderLogic) placeOrder(ledger *rollback.Ledger, uid, bearer string,
	lines []CartLine, req *types.CreateOrderRequest) (*orderdal.Order, string, error) {

	// rotate the anti-forgery value up front; the compensation puts the
	// previous one back if any later step fails
	priorCsrf, priorTTL, err := l.svcCtx.Guard.CurrentAntiForgery(l.ctx, bearer)
	if err != nil {
		return nil, "", err
	}
	ledger.Register("csrfTokenRollback", func(ctx context.Context) error {
		return l.svcCtx.Guard.RestoreAntiForgery(ctx, bearer, priorCsrf, priorTTL)
	})
	csrfToken, err := l.svcCtx.Guard.IssueAntiForgery(l.ctx, bearer, util.TokenExpiryFromCtx(l.ctx))
	if err != nil {
		return nil, "", err
	}

	var (
		profile *customerdal.Customer
		txn     *txndal.Transaction
		priced  *PricedCart
	)
	if err := mr.Finish(
		func() error {
			var err error
			profile, err = l.svcCtx.Customers.FindOne(l.ctx, uid)
			if stderrors.Is(err, customerdal.ErrNotFound) {
				return errors.New(int(errno.CustomerNotFound), "the customer is not found")
			}
			return err
		},
		func() error {
			var err error
			txn, err = l.svcCtx.Transactions.FindOne(l.ctx, req.TxnId)
			if stderrors.Is(err, txndal.ErrNotFound) {
				return errors.New(int(errno.TransactionNotFound), "transaction id not found")
			}
			if err != nil {
				return err
			}
			if txn.Status == txndal.StatusFailed {
				return errors.New(int(errno.TransactionFailed), "transaction status is FAILED")
			}
			return nil
		},
		func() error {
			var err error
			priced, err = NewPriceCartLogic(l.ctx, l.svcCtx).Price(lines)
			return err
		},
	); err != nil {
		return nil, "", err
	}

	customerLoc := geo.LatLng{Lat: req.Locations.Lat, Lng: req.Locations.Lng}
	created := &orderdal.Order{
		OrderID:     snowflake.NextID(),
		VendorIDs:   priced.VendorIDs,
		Items:       toOrderItems(priced.Lines),
		TotalAmount: priced.NetAmount,
		PaidAmount:  req.Amount,
		OrderDate:   time.Now(),
		OrderStatus: orderdal.StatusWaiting,
		ReadyTime:   defaultReadyTime,
		Locations:   customerLoc,
	}
	if err := l.svcCtx.Orders.Insert(l.ctx, created); err != nil {
		return nil, "", err
	}

	priorCart := profile.Cart
	orderDocID := created.ID
	ledger.Register("createdOrderRollback", func(ctx context.Context) error {
		return mr.Finish(
			func() error {
				return l.svcCtx.Orders.Delete(ctx, orderDocID.Hex())
			},
			func() error {
				return l.svcCtx.Customers.RestoreAfterOrder(ctx, uid, priorCart, orderDocID)
			},
		)
	})
	priorTxn := txndal.Snapshot{
		VendorIDs: txn.VendorIDs,
		OrderID:   txn.OrderID,
		Status:    txn.Status,
	}
	ledger.Register("transactionRollback", func(ctx context.Context) error {
		return l.svcCtx.Transactions.Restore(ctx, req.TxnId, priorTxn)
	})

	// the two confirmation writes are independent; issue them together
	if err := mr.Finish(
		func() error {
			return l.svcCtx.Customers.AttachOrder(l.ctx, uid, orderDocID)
		},
		func() error {
			return l.svcCtx.Transactions.Confirm(l.ctx, req.TxnId, created.OrderID, priced.VendorIDs)
		},
	); err != nil {
		return nil, "", err
	}

	assigned, err := NewAssignDeliveryLogic(l.ctx, l.svcCtx).
		Assign(orderDocID.Hex(), priced.VendorAddresses, customerLoc, ledger)
	if err != nil {
		return nil, "", err
	}
	return assigned, csrfToken, nil
}

// parseCartLines validates the request items. Duplicate food ids are a caller
// contract violation: quantities must be merged client-side so each line's
// quantity is authoritative.
func parseCartLines(items []types.CartItem) ([]CartLine, error) {
	if len(items) == 0 {
		return nil, errors.New(int(errno.InvalidParam), "items must not be empty")
	}
	seen := make(map[string]bool, len(items))
	lines := make([]CartLine, 0, len(items))
	for _, item := range items {
		if item.Unit < 1 {
			return nil, errors.New(int(errno.InvalidParam), "item unit must be at least 1")
		}
		if seen[item.Id] {
			return nil, errors.New(int(errno.InvalidParam), "duplicate food id in items: "+item.Id)
		}
		seen[item.Id] = true
		oid, err := primitive.ObjectIDFromHex(item.Id)
		if err != nil {
			return nil, errors.New(int(errno.InvalidParam), "invalid food id: "+item.Id)
		}
		lines = append(lines, CartLine{FoodID: oid, Quantity: item.Unit})
	}
	return lines, nil
}

func toOrderItems(lines []PricedLine) []orderdal.OrderItem {
	items := make([]orderdal.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, orderdal.OrderItem{
			FoodID:    line.FoodID,
			VendorID:  line.VendorID,
			UnitPrice: line.UnitPrice,
			Unit:      line.Quantity,
		})
	}
	return items
}
