package helper

import (
	"context"

	"Savora/app/api/marketplace/internal/svc"
	"Savora/app/api/marketplace/internal/types"
	"Savora/app/common/util"
	orderdal "Savora/app/dal/order"
)

func ToOrderView(o *orderdal.Order) types.OrderView {
	items := make([]types.OrderItemView, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, types.OrderItemView{
			FoodId:    item.FoodID.Hex(),
			VendorId:  item.VendorID.Hex(),
			UnitPrice: item.UnitPrice,
			Unit:      item.Unit,
		})
	}
	return types.OrderView{
		Id:          o.ID.Hex(),
		OrderId:     o.OrderID,
		VendorIds:   o.VendorIDs,
		Items:       items,
		TotalAmount: o.TotalAmount,
		PaidAmount:  o.PaidAmount,
		OrderStatus: o.OrderStatus,
		DeliveryId:  o.DeliveryID,
		ReadyTime:   o.ReadyTime,
		Locations:   types.LatLng{Lat: o.Locations.Lat, Lng: o.Locations.Lng},
	}
}

// RefreshAntiForgery rotates the caller's anti-forgery value so every
// authorized response hands back a fresh csrf token.
func RefreshAntiForgery(ctx context.Context, svcCtx *svc.ServiceContext) (string, error) {
	bearer, err := util.TokenFromCtx(ctx)
	if err != nil {
		return "", err
	}
	return svcCtx.Guard.IssueAntiForgery(ctx, bearer, util.TokenExpiryFromCtx(ctx))
}
