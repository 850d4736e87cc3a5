package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"spacehive/middleware"
	"spacehive/services/wallet"
	"spacehive/utils"
)

type WalletHandler struct {
	ledger wallet.Ledger
}

func NewWalletHandler(ledger wallet.Ledger) *WalletHandler {
	return &WalletHandler{ledger: ledger}
}

// Balance handles GET /wallet.
func (h *WalletHandler) Balance(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	w, err := h.ledger.Balance(c.Request.Context(), actor.UserID)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

// Transactions handles GET /wallet/transactions.
func (h *WalletHandler) Transactions(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	txns, err := h.ledger.History(c.Request.Context(), actor.UserID, limit)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": txns})
}
