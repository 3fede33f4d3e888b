package server

import (
	"fmt"

	"github.com/VaultPoint/LedgerShield/pkg/config"
	handlers "github.com/VaultPoint/LedgerShield/pkg/handlers/http"
	"github.com/VaultPoint/LedgerShield/pkg/infra/prometheus"
	"github.com/VaultPoint/LedgerShield/pkg/middleware"
	"github.com/VaultPoint/LedgerShield/pkg/server/router"
	"github.com/sirupsen/logrus"
)

type (
	ApiServerDI struct {
		Config              *config.Config
		Logger              *logrus.Logger
		MiddlewareTransport middleware.Transport
		HandlerTransport    handlers.HandlerTransport
	}
	ApiServer struct {
		*BaseServer
		middlewareTransport middleware.Transport
		handlerTransport    handlers.HandlerTransport
	}
)

func NewApiServer(di ApiServerDI) *ApiServer {
	prometheus.Initialize(prometheus.MetricsConfig{
		EnableLatency: di.Config.Metrics.EnableLatency,
	})

	s := &ApiServer{
		BaseServer:          NewBaseServer(di.Config, di.Logger),
		middlewareTransport: di.MiddlewareTransport,
		handlerTransport:    di.HandlerTransport,
	}

	s.BaseServer.setupMetricsEndpoint()
	return s
}

func (s *ApiServer) Run() error {
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", s.Config.Server.Host, s.Config.Server.Port)
	s.Logger.WithField("addr", addr).Info("starting api server")
	return s.Router.Listen(addr)
}

func (s *ApiServer) setupRoutes() {
	s.setupHealthCheck()
	s.WithRouters(router.NewApiRouter(&s.middlewareTransport, s.handlerTransport))
}

func (s *ApiServer) Shutdown() error {
	return s.Router.Shutdown()
}
