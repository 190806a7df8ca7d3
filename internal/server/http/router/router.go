package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/gebeyahq/marketadmin/internal/server/http/handlers"
	"github.com/gebeyahq/marketadmin/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.ConsoleFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	adHandler := handlers.NewAdHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	auctionHandler := handlers.NewAuctionHandler(facade)
	healthHandler := handlers.NewHealthHandler(facade)

	engine.GET("/health", healthHandler.Check)

	api := engine.Group("/api")
	api.POST("/admin/login", authHandler.Login)
	api.POST("/ads/payment/callback", adHandler.PaymentCallback)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(facade))
	authed.POST("/ads", adHandler.Submit)
	authed.GET("/ads", adHandler.List)
	authed.POST("/ads/:id/approve", adHandler.Approve)
	authed.POST("/ads/:id/reject", adHandler.Reject)
	authed.PATCH("/orders/:id/payment-status", orderHandler.UpdatePaymentStatus)
	authed.POST("/orders/refund", orderHandler.Refund)
	authed.POST("/auctions", auctionHandler.Submit)
	authed.POST("/auctions/:id/approve", auctionHandler.Approve)
	authed.POST("/auctions/:id/reject", auctionHandler.Reject)

	return engine
}
