package httpapp

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/open-sspm/vulndash/internal/config"
	"github.com/open-sspm/vulndash/internal/dashboard"
	"github.com/open-sspm/vulndash/internal/http/handlers"
)

const maxRequestIDLength = 128

// EchoServer is the HTTP server wrapper.
type EchoServer struct {
	h *handlers.Handlers
	e *echo.Echo
}

// NewEchoServer creates a new HTTP server.
func NewEchoServer(cfg config.Config, dash *dashboard.Dashboard, logger *slog.Logger) *EchoServer {
	if logger == nil {
		logger = slog.Default()
	}
	h := &handlers.Handlers{Cfg: cfg, Dashboard: dash}
	es := &EchoServer{h: h, e: echo.New()}
	es.e.Logger = logger
	es.e.HTTPErrorHandler = es.httpErrorHandler
	es.e.Use(middleware.Recover())
	es.e.Use(requestID())
	es.e.Use(requestLogger())
	es.registerRoutes()
	return es
}

func (es *EchoServer) registerRoutes() {
	es.e.GET("/healthz", es.h.HandleHealthz)

	es.e.GET("/", es.h.HandleDashboard)
	es.e.POST("/filters/:kind/toggle", es.h.HandleFilterToggle)
	es.e.POST("/filters/reset", es.h.HandleFilterReset)
	es.e.POST("/upload", es.h.HandleUpload)
	es.e.GET("/api/charts", es.h.HandleChartsAPI)
	es.e.GET("/charts/:id/svg", es.h.HandleChartSVG)
}

// Handler exposes the router for use with an http.Server.
func (es *EchoServer) Handler() http.Handler {
	return es.e
}

func (es *EchoServer) httpErrorHandler(c *echo.Context, err error) {
	status := httpStatusFromError(err)
	switch status {
	case http.StatusInternalServerError:
		_ = es.h.RenderError(c, err)
	case http.StatusNotFound:
		_ = handlers.RenderNotFound(c)
	default:
		_ = c.String(status, http.StatusText(status))
	}
}

type statusCoder interface {
	StatusCode() int
}

func httpStatusFromError(err error) int {
	var sc statusCoder
	if errors.As(err, &sc) {
		if code := sc.StatusCode(); code > 0 {
			return code
		}
	}
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code > 0 {
		return he.Code
	}
	return http.StatusInternalServerError
}

// requestID reuses a sane incoming X-Request-ID or mints one, and echoes it back.
func requestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			id := strings.TrimSpace(c.Request().Header.Get(echo.HeaderXRequestID))
			if id == "" || len(id) > maxRequestIDLength {
				id = uuid.NewString()
			}
			c.Set(handlers.ContextKeyRequestID, id)
			c.Response().Header().Set(echo.HeaderXRequestID, id)
			return next(c)
		}
	}
}

func requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			start := time.Now()
			err := next(c)

			requestID, _ := c.Get(handlers.ContextKeyRequestID).(string)
			attrs := []any{
				"request_id", requestID,
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"duration_ms", time.Since(start).Milliseconds(),
			}
			if err != nil {
				attrs = append(attrs, "status", httpStatusFromError(err))
				c.Logger().Info("http request failed", attrs...)
				return err
			}
			c.Logger().Debug("http request", attrs...)
			return nil
		}
	}
}
