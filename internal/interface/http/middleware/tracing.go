package middleware

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/xiebiao/library/pkg/tracing"
)

const tracerName = "library-http"

// Tracing 为每个请求开启一个span，服务层的span挂在它下面
func Tracing() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}

		ctx, span := tracing.StartSpan(c.Request.Context(), tracerName, c.Request.Method+" "+route)
		defer span.End()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.route", route),
			attribute.Int("http.status_code", status),
		)
		if code := c.GetInt(responseCodeKey); code != 0 {
			span.SetAttributes(attribute.Int("app.code", code))
		}
		if status >= 500 {
			span.SetStatus(codes.Error, "server error")
		}
	}
}
