package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// telegramWebhook accepts one update pushed by the chat platform. The path
// token doubles as authentication; a mismatch is answered 404 so the route's
// existence is not confirmed to probes.
func (h *Handler) telegramWebhook(c *gin.Context) {
	if subtle.ConstantTimeCompare([]byte(c.Param("token")), []byte(h.webhookToken)) != 1 {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if err := h.webhook.Handle(c.Request.Context(), c.Request.Body); err != nil {
		h.logAndJSONError(c, http.StatusBadRequest, "invalid update payload", "webhook_decode_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
