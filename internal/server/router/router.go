package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/obsidiancapital/investor-portal/internal/server/handlers"
	"github.com/obsidiancapital/investor-portal/internal/session"
)

// New wires the Gin engine with required routes and middlewares. Every page
// route sits behind the session gate; auth and health endpoints are public.
func New(auth *handlers.AuthHandler, pages *handlers.PageHandler, store *session.Store, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestIDMiddleware())
	r.Use(zapLoggerMiddleware(logger))

	r.POST("/auth/register", auth.Register)
	r.POST("/auth/login", auth.Login)
	r.POST("/auth/logout", auth.Logout)
	r.GET("/auth/session", auth.Session)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authed := r.Group("/", requireSession(store))
	{
		authed.GET("/dashboard", pages.Dashboard)
		authed.POST("/dashboard/refresh", pages.Dashboard)
		authed.POST("/dashboard/select", pages.DashboardSelect)

		authed.GET("/allocations", pages.Allocations)
		authed.POST("/allocations", pages.SubmitAllocation)
		authed.POST("/allocations/refresh", pages.Allocations)
		authed.POST("/allocations/select", pages.SelectAllocation)
		authed.POST("/allocations/hover", pages.HoverAllocation)

		authed.GET("/sales", pages.Sales)
		authed.POST("/sales", pages.SubmitSale)
		authed.POST("/sales/refresh", pages.Sales)
		authed.POST("/sales/select", pages.SelectSale)
		authed.POST("/sales/hover", pages.HoverSale)
		authed.GET("/sales/export", pages.ExportSales)

		authed.GET("/reports", pages.Reports)
		authed.POST("/reports", pages.SubmitReport)
		authed.POST("/reports/refresh", pages.Reports)
		authed.GET("/reports/export", pages.ExportReports)
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

// requireSession rejects page requests until a session token is present.
func requireSession(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !store.IsAuthenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", c.GetString("request_id")),
			zap.String("client_ip", c.ClientIP()))
	}
}
