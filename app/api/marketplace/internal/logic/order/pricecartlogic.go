// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package order

import (
	"context"
	"fmt"
	"strings"

	"Savora/app/api/marketplace/internal/svc"
	"Savora/app/common/consts/errno"
	fooddal "Savora/app/dal/food"
	"Savora/app/dal/geo"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/x/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartLine is one deduplicated request line: a food id and the quantity the
// customer asked for. Quantities always come from the request, never from
// stored cart state.
type CartLine struct {
	FoodID   primitive.ObjectID
	Quantity int
}

type PricedLine struct {
	FoodID    primitive.ObjectID
	VendorID  primitive.ObjectID
	UnitPrice float64
	Quantity  int
}

// VendorAddress is the per-vendor pickup location used for courier selection.
type VendorAddress struct {
	VendorID primitive.ObjectID
	Location geo.Point
	Pincode  string
}

type PricedCart struct {
	NetAmount       float64
	Lines           []PricedLine
	VendorIDs       []string
	Pincodes        []string
	VendorAddresses []VendorAddress
}

type PriceCartLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewPriceCartLogic(ctx context.Context, svcCtx *svc.ServiceContext) *PriceCartLogic {
	return &PriceCartLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Price resolves every requested line against current food and vendor records
// and folds the net amount in request order. Every line must resolve: if any
// id is unknown the whole cart is rejected, naming each missing id.
func (l *PriceCartLogic) Price(lines []CartLine) (*PricedCart, error) {
	if len(lines) == 0 {
		return nil, errors.New(int(errno.InvalidParam), "the cart is empty")
	}

	ids := make([]primitive.ObjectID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.FoodID)
	}

	rows, err := l.svcCtx.Foods.ResolveCartFoods(l.ctx, ids)
	if err != nil {
		return nil, err
	}

	resolved := make(map[primitive.ObjectID]*fooddal.CartFood, len(rows))
	for _, row := range rows {
		resolved[row.ID] = row
	}

	if len(rows) < len(lines) {
		var missing []string
		for _, line := range lines {
			if _, ok := resolved[line.FoodID]; !ok {
				missing = append(missing, line.FoodID.Hex())
			}
		}
		return nil, errors.New(int(errno.FoodNotFound),
			fmt.Sprintf("the following food ids are not found: %s", strings.Join(missing, ", ")))
	}

	cart := &PricedCart{
		Lines: make([]PricedLine, 0, len(lines)),
	}
	seenVendors := make(map[primitive.ObjectID]bool)
	seenPincodes := make(map[string]bool)
	for _, line := range lines {
		row := resolved[line.FoodID]
		cart.NetAmount += row.Price * float64(line.Quantity)
		cart.Lines = append(cart.Lines, PricedLine{
			FoodID:    row.ID,
			VendorID:  row.VendorID,
			UnitPrice: row.Price,
			Quantity:  line.Quantity,
		})
		if !seenVendors[row.VendorID] {
			seenVendors[row.VendorID] = true
			cart.VendorIDs = append(cart.VendorIDs, row.VendorID.Hex())
			cart.VendorAddresses = append(cart.VendorAddresses, VendorAddress{
				VendorID: row.VendorID,
				Location: row.Location,
				Pincode:  row.Pincode,
			})
		}
		if !seenPincodes[row.Pincode] {
			seenPincodes[row.Pincode] = true
			cart.Pincodes = append(cart.Pincodes, row.Pincode)
		}
	}
	return cart, nil
}
