// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package main

import (
	"flag"
	"fmt"

	"Savora/app/api/marketplace/internal/bootstrap"
	"Savora/app/api/marketplace/internal/config"
	"Savora/app/api/marketplace/internal/handler"
	"Savora/app/api/marketplace/internal/svc"
	"Savora/app/common/response"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/rest"
	"github.com/zeromicro/go-zero/rest/httpx"
)

var configFile = flag.String("f", "etc/marketplace-api.yaml", "the config file")

func main() {
	flag.Parse()

	var c config.Config
	conf.MustLoad(*configFile, &c)
	ctx := svc.NewServiceContext(c)

	server := rest.MustNewServer(c.RestConf)
	defer server.Stop()

	handler.RegisterHandlers(server, ctx)
	httpx.SetErrorHandlerCtx(response.Handler(c.Mode))

	if stop := bootstrap.StartScheduler(ctx); stop != nil {
		defer stop()
	}
	if ctx.KafkaWriter != nil {
		defer ctx.KafkaWriter.Close()
	}

	fmt.Printf("Starting server at %s:%d...\n", c.Host, c.Port)
	server.Start()
}
