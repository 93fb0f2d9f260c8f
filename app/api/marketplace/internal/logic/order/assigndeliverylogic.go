// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package order

import (
	"context"
	stderrors "errors"

	"Savora/app/api/marketplace/internal/svc"
	"Savora/app/common/consts/errno"
	"Savora/app/common/rollback"
	deliverydal "Savora/app/dal/delivery"
	"Savora/app/dal/geo"
	orderdal "Savora/app/dal/order"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/mr"
	"github.com/zeromicro/x/errors"
)

// Couriers considered per assignment: the nearest window, then lowest daily
// load first within it.
const maxCourierCandidates = 10

type AssignDeliveryLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewAssignDeliveryLogic(ctx context.Context, svcCtx *svc.ServiceContext) *AssignDeliveryLogic {
	return &AssignDeliveryLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Assign picks the least-loaded nearby courier for the order and binds it.
// Reservation is a compare-and-set on the courier's observed daily count, so
// two concurrent orders can never both land on the same count; the loser moves
// on to the next candidate. Successful steps register their compensations on
// the caller's ledger before the binding write happens.
func (l *AssignDeliveryLogic) Assign(orderDocID string, vendorAddrs []VendorAddress,
	customerLoc geo.LatLng, ledger *rollback.Ledger) (*orderdal.Order, error) {

	points := make([]geo.LatLng, 0, len(vendorAddrs)+1)
	for _, addr := range vendorAddrs {
		points = append(points, geo.LatLng{Lat: addr.Location.Lat(), Lng: addr.Location.Lng()})
	}
	points = append(points, customerLoc)
	center := geo.Centroid(points)

	var (
		candidates []*deliverydal.Delivery
		current    *orderdal.Order
	)
	if err := mr.Finish(
		func() error {
			var err error
			candidates, err = l.svcCtx.Deliveries.FindNearestAvailable(l.ctx, center, maxCourierCandidates)
			return err
		},
		func() error {
			var err error
			current, err = l.svcCtx.Orders.FindOne(l.ctx, orderDocID)
			if stderrors.Is(err, orderdal.ErrNotFound) {
				return errors.New(int(errno.OrderNotFound), "order not found")
			}
			return err
		},
	); err != nil {
		return nil, err
	}

	if len(candidates) == 0 {
		return nil, errors.New(int(errno.NoCourierAvailable), "no courier available for this delivery")
	}

	var chosen *deliverydal.Delivery
	for _, cand := range candidates {
		ok, err := l.svcCtx.Deliveries.Reserve(l.ctx, cand.ID.Hex(), cand.DailyOrder.Count)
		if err != nil {
			return nil, err
		}
		if ok {
			chosen = cand
			break
		}
		// lost the reservation race, try the next candidate
	}
	if chosen == nil {
		return nil, errors.New(int(errno.NoCourierAvailable), "no courier available for this delivery")
	}

	courierID := chosen.ID.Hex()
	ledger.Register("releaseCourierRollback", func(ctx context.Context) error {
		return l.svcCtx.Deliveries.Release(ctx, courierID)
	})
	ledger.Register("assignOrderForDeliveryRollback", func(ctx context.Context) error {
		return l.svcCtx.Orders.ClearDelivery(ctx, orderDocID)
	})

	if err := l.svcCtx.Orders.SetDelivery(l.ctx, orderDocID, courierID); err != nil {
		if stderrors.Is(err, orderdal.ErrNotFound) {
			return nil, errors.New(int(errno.OrderNotFound), "order not found")
		}
		return nil, err
	}

	current.DeliveryID = courierID
	return current, nil
}
