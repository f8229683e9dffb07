package restserver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/labstack/echo"
	echoMidd "github.com/labstack/echo/middleware"

	"github.com/meetnear/broadcast-service/config/env"
	"github.com/meetnear/broadcast-service/pkg/codebase/factory"
	"github.com/meetnear/broadcast-service/pkg/helper"
	"github.com/meetnear/broadcast-service/pkg/logger"
	"github.com/meetnear/broadcast-service/pkg/tracer"
	"github.com/meetnear/broadcast-service/pkg/wrapper"
)

type restServer struct {
	serverEngine *echo.Echo
	service      factory.ServiceFactory
}

// NewServer create new REST server
func NewServer(service factory.ServiceFactory) factory.AppServerFactory {
	return &restServer{
		serverEngine: echo.New(),
		service:      service,
	}
}

func (h *restServer) Serve() {

	h.serverEngine.HTTPErrorHandler = wrapper.CustomHTTPErrorHandler
	h.serverEngine.Use(echoMidd.CORS())

	h.serverEngine.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"message":   fmt.Sprintf("Service %s up and running", h.service.Name()),
			"timestamp": time.Now().Format(time.RFC3339Nano),
		})
	})

	restRootPath := h.serverEngine.Group("",
		tracer.EchoRestTracerMiddleware, echoMidd.Logger(),
	)
	for _, m := range h.service.GetModules() {
		if handler := m.RestHandler(); handler != nil {
			handler.Mount(restRootPath)
		}
	}

	var routes strings.Builder
	httpRoutes := h.serverEngine.Routes()
	sort.Slice(httpRoutes, func(i, j int) bool {
		return httpRoutes[i].Path < httpRoutes[j].Path
	})
	for _, route := range httpRoutes {
		if !strings.Contains(route.Name, "(*Group)") {
			routes.WriteString(helper.StringGreen(fmt.Sprintf("[REST-ROUTE] %-6s %-30s --> %s\n", route.Method, route.Path, route.Name)))
		}
	}
	fmt.Print(routes.String())

	h.serverEngine.HideBanner = true
	h.serverEngine.HidePort = true
	port := fmt.Sprintf(":%d", env.BaseEnv().HTTPPort)
	fmt.Printf("\x1b[34;1m⇨ REST server run at port [::]%s\x1b[0m\n\n", port)
	if err := h.serverEngine.Start(port); err != nil {
		switch e := err.(type) {
		case *net.OpError:
			panic(e)
		}
	}
}

func (h *restServer) Shutdown(ctx context.Context) {
	deferFunc := logger.LogWithDefer("Stopping REST HTTP server...")
	defer deferFunc()

	if err := h.serverEngine.Shutdown(ctx); err != nil {
		panic(err)
	}
}
