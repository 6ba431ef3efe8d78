package applications

import (
	"errors"
	"net/http"

	"github.com/vla-de/kinkly-main-sub000/services"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Apps *services.ApplicationService
}

func NewHandler(apps *services.ApplicationService) *Handler {
	return &Handler{Apps: apps}
}

type submitRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Message  string `json:"message"`
	Tier     string `json:"tier"`
}

// Submit handles POST /api/applications.
func (h *Handler) Submit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	id, err := h.Apps.Create(req.FullName, req.Email, req.Message, req.Tier)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Full name, email and tier are required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save application"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"applicationId": id})
}
