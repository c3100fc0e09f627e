package handlers

import (
	"qna-board/middleware"
	"qna-board/notifier"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	hub *notifier.Hub
}

func NewNotificationHandler(hub *notifier.Hub) *NotificationHandler {
	return &NotificationHandler{hub: hub}
}

// Connect attaches the signed-in user's websocket to the hub. The route is
// guarded by RequireAPIAuth.
func (h *NotificationHandler) Connect(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)
	h.hub.ServeWs(c.Writer, c.Request, userID)
}
