package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/xiebiao/library/docs" // swagger文档注册
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	"github.com/xiebiao/library/pkg/response"
)

// Handlers 路由需要的全部处理器
type Handlers struct {
	Book   *handler.BookHandler
	Card   *handler.CardHandler
	Borrow *handler.BorrowHandler
	Admin  *handler.AdminHandler
}

// New 创建Gin引擎并注册路由
// 中间件顺序：Recovery → Logger → Tracing → Metrics → CORS → Idempotency(仅写接口) → Handler
// idem为nil时不启用幂等
func New(cfg *config.Config, lg *slog.Logger, h Handlers, idem middleware.IdempotencyStore) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(lg))
	r.Use(middleware.Tracing())
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics())
	}
	r.Use(middleware.CORS(cfg.CORS))

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	// 生产环境建议关闭
	if cfg.Server.Swagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/api/v1")
	if idem != nil {
		v1.Use(middleware.Idempotency(idem, cfg.Idempotency, lg))
	}
	{
		books := v1.Group("/books")
		{
			books.GET("", h.Book.QueryBooks)
			books.POST("", h.Book.StoreBook)
			books.POST("/batch", h.Book.StoreBooks)
			books.POST("/import", h.Book.ImportBooks)
			books.PUT("/:id", h.Book.ModifyBook)
			books.PATCH("/:id/stock", h.Book.AdjustStock)
			books.DELETE("/:id", h.Book.RemoveBook)
		}

		cards := v1.Group("/cards")
		{
			cards.GET("", h.Card.ListCards)
			cards.POST("", h.Card.RegisterCard)
			cards.PUT("/:id", h.Card.UpdateCard)
			cards.DELETE("/:id", h.Card.RemoveCard)
			cards.GET("/:id/borrows", h.Borrow.BorrowHistory)
		}

		borrows := v1.Group("/borrows")
		{
			borrows.POST("", h.Borrow.BorrowBook)
			borrows.POST("/return", h.Borrow.ReturnBook)
		}

		// 重置会清空所有数据，默认不注册
		if cfg.Server.AllowReset {
			v1.POST("/admin/reset", h.Admin.Reset)
		}
	}

	return r
}
