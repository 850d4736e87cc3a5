package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"spacehive/middleware"
	"spacehive/services/coupon"
	"spacehive/utils"
)

type CouponHandler struct {
	svc coupon.CouponService
}

func NewCouponHandler(svc coupon.CouponService) *CouponHandler {
	return &CouponHandler{svc: svc}
}

// Validate handles POST /coupons/validate. It is a read-only probe and
// never consumes a use.
func (h *CouponHandler) Validate(c *gin.Context) {
	actor, _ := middleware.ActorFromContext(c)

	var body struct {
		Code        string  `json:"code" binding:"required"`
		OrderAmount float64 `json:"orderAmount" binding:"required"`
		PartnerID   string  `json:"partnerId"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	result, err := h.svc.Validate(c.Request.Context(), body.Code, body.OrderAmount, actor.UserID, body.PartnerID)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Stats handles GET /coupons/:id/stats.
func (h *CouponHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Activate handles POST /coupons/:id/activate.
func (h *CouponHandler) Activate(c *gin.Context) {
	if err := h.svc.Activate(c.Request.Context(), c.Param("id")); err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ACTIVE"})
}

// Deactivate handles POST /coupons/:id/deactivate.
func (h *CouponHandler) Deactivate(c *gin.Context) {
	if err := h.svc.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "INACTIVE"})
}
