// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package handler

import (
	"net/http"

	authhandler "Savora/app/api/marketplace/internal/handler/auth"
	orderhandler "Savora/app/api/marketplace/internal/handler/order"
	"Savora/app/api/marketplace/internal/svc"

	"github.com/zeromicro/go-zero/rest"
)

func RegisterHandlers(server *rest.Server, serverCtx *svc.ServiceContext) {
	server.AddRoutes(
		[]rest.Route{
			{
				Method:  http.MethodPost,
				Path:    "/customer/login",
				Handler: authhandler.LoginHandler(serverCtx),
			},
		},
	)

	server.AddRoutes(
		rest.WithMiddlewares(
			[]rest.Middleware{serverCtx.AuthMiddleware},
			[]rest.Route{
				{
					Method:  http.MethodPost,
					Path:    "/payment",
					Handler: orderhandler.CreatePaymentHandler(serverCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/create-order",
					Handler: orderhandler.CreateOrderHandler(serverCtx),
				},
				{
					Method:  http.MethodGet,
					Path:    "/orders",
					Handler: orderhandler.ListOrdersHandler(serverCtx),
				},
				{
					Method:  http.MethodGet,
					Path:    "/order/:id",
					Handler: orderhandler.GetOrderHandler(serverCtx),
				},
			}...,
		),
		rest.WithPrefix("/customer"),
	)
}
