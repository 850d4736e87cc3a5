package routes

import (
	"github.com/gin-gonic/gin"

	"spacehive/handlers"
	"spacehive/middleware"
)

// RegisterCouponRoutes registers the coupon endpoints.
func RegisterCouponRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	coupon := r.Group("/api/coupons")
	{
		coupon.Use(middleware.AuthMiddleware())
		coupon.POST("/validate", hb.Coupon.Validate)
		coupon.GET("/:id/stats", hb.Coupon.Stats)
		coupon.POST("/:id/activate", hb.Coupon.Activate)
		coupon.POST("/:id/deactivate", hb.Coupon.Deactivate)
	}
}
