package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"spacehive/middleware"
	"spacehive/models"
	"spacehive/services/booking"
	"spacehive/utils"
)

type BookingHandler struct {
	svc booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

// Create handles POST /bookings.
func (h *BookingHandler) Create(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var input booking.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	input.UserID = actor.UserID

	created, err := h.svc.CreateBooking(c.Request.Context(), input)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// CheckAvailability handles GET /bookings/availability.
func (h *BookingHandler) CheckAvailability(c *gin.Context) {
	spaceID := c.Query("spaceId")
	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start must be RFC 3339"})
		return
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end must be RFC 3339"})
		return
	}

	result, err := h.svc.CheckAvailability(c.Request.Context(), spaceID, start, end, c.Query("excludeBookingId"))
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// List handles GET /bookings.
func (h *BookingHandler) List(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	offset, _ := strconv.ParseInt(c.DefaultQuery("offset", "0"), 10, 64)

	query := models.BookingQuery{
		UserID:    c.Query("userId"),
		SpaceID:   c.Query("spaceId"),
		PartnerID: c.Query("partnerId"),
		Status:    c.Query("status"),
		Limit:     limit,
		Offset:    offset,
	}

	bookings, total, err := h.svc.ListBookings(c.Request.Context(), query)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"bookings": bookings,
		"total":    total,
		"limit":    limit,
		"offset":   offset,
	})
}

// ListMine handles GET /bookings/my, scoped to the acting user.
func (h *BookingHandler) ListMine(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	offset, _ := strconv.ParseInt(c.DefaultQuery("offset", "0"), 10, 64)

	bookings, total, err := h.svc.ListBookings(c.Request.Context(), models.BookingQuery{
		UserID: actor.UserID,
		Status: c.Query("status"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"bookings": bookings,
		"total":    total,
		"limit":    limit,
		"offset":   offset,
	})
}

// ListPartner handles GET /bookings/partner, scoped to the acting
// user's partner account.
func (h *BookingHandler) ListPartner(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	offset, _ := strconv.ParseInt(c.DefaultQuery("offset", "0"), 10, 64)

	bookings, total, err := h.svc.ListPartnerBookings(c.Request.Context(), actor, models.BookingQuery{
		SpaceID: c.Query("spaceId"),
		Status:  c.Query("status"),
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"bookings": bookings,
		"total":    total,
		"limit":    limit,
		"offset":   offset,
	})
}

// Latest handles GET /bookings/latest.
func (h *BookingHandler) Latest(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "5"), 10, 64)
	bookings, err := h.svc.LatestBookings(c.Request.Context(), limit)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// Get handles GET /bookings/:id.
func (h *BookingHandler) Get(c *gin.Context) {
	b, err := h.svc.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// Update handles PATCH /bookings/:id.
func (h *BookingHandler) Update(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var patch models.BookingUpdate
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	updated, err := h.svc.UpdateBooking(c.Request.Context(), c.Param("id"), patch, actor)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Confirm handles POST /bookings/:id/confirm.
func (h *BookingHandler) Confirm(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	b, err := h.svc.ConfirmBooking(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// Cancel handles POST /bookings/:id/cancel.
func (h *BookingHandler) Cancel(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var body struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&body)

	b, err := h.svc.CancelBooking(c.Request.Context(), c.Param("id"), body.Reason, actor)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// Complete handles POST /bookings/:id/complete.
func (h *BookingHandler) Complete(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	b, err := h.svc.CompleteBooking(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CanCancel handles GET /bookings/:id/can-cancel.
func (h *BookingHandler) CanCancel(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	canCancel, err := h.svc.CanCancelBooking(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"canCancel": canCancel})
}

// KycStatus handles GET /bookings/:id/kyc.
func (h *BookingHandler) KycStatus(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	status, err := h.svc.KycStatus(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// RequireKyc handles POST /bookings/:id/kyc/require.
func (h *BookingHandler) RequireKyc(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	b, err := h.svc.RequireKyc(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
