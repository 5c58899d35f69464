package middleware

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/x-xyz/swiftbid/base/ctx"
	"github.com/x-xyz/swiftbid/base/log"
	"github.com/x-xyz/swiftbid/base/metrics"
)

// GoMiddleware represent the data-struct for middleware
type GoMiddleware struct {
	allowOrigin string
}

// InitMiddleware initialize the middleware
func InitMiddleware(allowOrigin string) *GoMiddleware {
	if allowOrigin == "" {
		allowOrigin = "*"
	}
	return &GoMiddleware{allowOrigin: allowOrigin}
}

// CORS will handle the CORS middleware
func (m *GoMiddleware) CORS(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set(echo.HeaderAccessControlAllowOrigin, m.allowOrigin)
		return next(c)
	}
}

// AddContext binds a ctx.Ctx tagged with the request id to echo.Context under "ctx"
func (m *GoMiddleware) AddContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			id := c.Request().Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = uuid.NewString()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, id)
			c.Set("ctx", ctx.WithRequestID(ctx.Background(), id))
			return next(c)
		}
	}
}

// ResponseLogger logs response for every request
func (m *GoMiddleware) ResponseLogger() echo.MiddlewareFunc {
	met := metrics.New("http")
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer met.BumpTime("request.time", "method", c.Request().Method, "path", c.Path()).End()

			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			fields := log.Fields{
				"ms":         time.Since(start).Seconds() * 1000,
				"httpStatus": res.Status,
				"host":       req.Host,
				"remoteIP":   c.RealIP(),
				"uri":        req.URL.Path,
				"route":      c.Path(),
				"httpMethod": req.Method,
				"size":       res.Size,
				"userAgent":  req.UserAgent(),
				"referer":    req.Header.Get("Referer"),
				"platform":   req.Header.Get("platform"),
				"version":    req.Header.Get("version"),
				"deviceID":   req.Header.Get("deviceID"),
			}
			if userId, ok := c.Get("userId").(string); ok {
				fields["userId"] = userId
			}

			if res.Status >= 400 {
				fields["nextErr"] = err
			}

			logger := log.Log()
			if cont, ok := c.Get("ctx").(ctx.Ctx); ok {
				logger = cont.Logger
			}
			if res.Status >= 500 {
				logger.WithFields(fields).Warn("response")
			} else {
				logger.WithFields(fields).Info("response")
			}
			return nil
		}
	}
}
