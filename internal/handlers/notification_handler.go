package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ibtida01/Shobarkhamar/internal/models"
	"github.com/Ibtida01/Shobarkhamar/internal/services"
	"github.com/Ibtida01/Shobarkhamar/utils"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) RegisterRoutes(rg *gin.RouterGroup, m *Middleware) {
	notifications := rg.Group("/notifications", m.RequireAuth())
	notifications.GET("", h.ListNotifications)
	notifications.PUT("/:id/read", h.MarkRead)

	feedback := rg.Group("/feedback", m.RequireAuth())
	feedback.POST("", h.SubmitFeedback)
	feedback.GET("", h.ListFeedback)
}

func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	skip, limit, ok := pagination(c)
	if !ok {
		return
	}

	caller := mustIdentity(c)
	resp, err := h.notificationService.ListNotifications(c.Request.Context(), caller.UserID, skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(resp))
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), mustIdentity(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{"message": "notification read"}))
}

func (h *NotificationHandler) SubmitFeedback(c *gin.Context) {
	var req models.CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	caller := mustIdentity(c)
	feedback, err := h.notificationService.SubmitFeedback(c.Request.Context(), caller.UserID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, utils.CreateSuccessResponse(feedback))
}

func (h *NotificationHandler) ListFeedback(c *gin.Context) {
	skip, limit, ok := pagination(c)
	if !ok {
		return
	}

	caller := mustIdentity(c)
	resp, err := h.notificationService.ListFeedback(c.Request.Context(), caller.UserID, skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(resp))
}
