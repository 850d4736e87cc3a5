package routes

import (
	"github.com/gin-gonic/gin"

	"spacehive/handlers"
	"spacehive/middleware"
)

// RegisterBookingRoutes registers all endpoints for the booking core.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	booking := r.Group("/api/bookings")
	{
		booking.Use(middleware.AuthMiddleware())
		booking.POST("", hb.Booking.Create)
		booking.GET("", hb.Booking.List)
		booking.GET("/my", hb.Booking.ListMine)
		booking.GET("/partner", hb.Booking.ListPartner)
		booking.GET("/availability", hb.Booking.CheckAvailability)
		booking.GET("/latest", hb.Booking.Latest)
		booking.GET("/:id", hb.Booking.Get)
		booking.PATCH("/:id", hb.Booking.Update)
		booking.POST("/:id/confirm", hb.Booking.Confirm)
		booking.POST("/:id/cancel", hb.Booking.Cancel)
		booking.POST("/:id/complete", hb.Booking.Complete)
		booking.GET("/:id/can-cancel", hb.Booking.CanCancel)
		booking.GET("/:id/kyc", hb.Booking.KycStatus)
		booking.POST("/:id/kyc/require", hb.Booking.RequireKyc)
	}
}

// RegisterWalletRoutes registers the wallet read endpoints.
func RegisterWalletRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	wallet := r.Group("/api/wallet")
	{
		wallet.Use(middleware.AuthMiddleware())
		wallet.GET("", hb.Wallet.Balance)
		wallet.GET("/transactions", hb.Wallet.Transactions)
	}
}
