package http

import (
	"net/http"

	"fulfillment/internal/pkg/authtoken"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RouterConfig carries what NewRouter needs besides the server itself.
type RouterConfig struct {
	Verifier *authtoken.Verifier
	Document *openapi3.T
	Debug    bool
}

// NewRouter builds the echo instance serving the API, health, metrics and
// the interactive documentation. Every /api/v1 request is authenticated
// first and validated against the API document second.
func NewRouter(s *Server, cfg RouterConfig) (*echo.Echo, error) {
	apiRouter, err := legacy.NewRouter(cfg.Document)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.Debug
	if cfg.Debug {
		e.Logger.SetLevel(log.DEBUG)
	} else {
		e.Logger.SetLevel(log.WARN)
	}
	e.HTTPErrorHandler = errorHandler(s.logger)
	e.Use(observe(s.metrics, s.logger))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/api/v1", authenticate(cfg.Verifier), validateRequests(apiRouter))

	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders", s.ListOrders)
	v1.POST("/orders/bulk-delete", s.BulkDeleteOrders)
	v1.POST("/orders/bulk-delete/filter", s.BulkDeleteOrdersByFilter)
	v1.GET("/orders/reference/:reference", s.GetOrderByReference)
	v1.GET("/orders/:id", s.GetOrder)
	v1.PATCH("/orders/:id", s.UpdateOrder)
	v1.DELETE("/orders/:id", s.DeleteOrder)
	v1.POST("/orders/:id/prepare", s.PrepareOrder)
	v1.POST("/orders/:id/control", s.ControlOrder)
	v1.POST("/orders/:id/pack", s.PackOrder)

	v1.GET("/queues/:stage", s.GetStageQueue)
	v1.GET("/dashboard", s.GetDashboard)
	v1.GET("/upstream/orders", s.ListUpstreamOrders)

	v1.GET("/users", s.ListUsers)
	v1.POST("/users", s.RegisterUser)
	v1.DELETE("/users/:id", s.ForgetUser)

	return e, nil
}
