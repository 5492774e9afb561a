package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/advocate-scheduler/internal/httperr"
	"github.com/BruksfildServices01/advocate-scheduler/internal/middleware"
	"github.com/BruksfildServices01/advocate-scheduler/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "user_not_found", "User not found.")
			return
		}
		httperr.Respond(c, err)
		return
	}

	var clients, openInvoices int64
	h.db.WithContext(c.Request.Context()).
		Model(&models.Client{}).
		Where("advocate_id = ?", user.ID).
		Count(&clients)
	h.db.WithContext(c.Request.Context()).
		Model(&models.Invoice{}).
		Where("advocate_id = ? AND status <> ?", user.ID, "paid").
		Count(&openInvoices)

	c.JSON(http.StatusOK, gin.H{
		"user": userJSON(&user),
		"summary": gin.H{
			"clients":       clients,
			"open_invoices": openInvoices,
		},
	})
}
