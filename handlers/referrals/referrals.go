package referrals

import (
	"errors"
	"net/http"

	"github.com/vla-de/kinkly-main-sub000/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	DB *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db}
}

type createCodeRequest struct {
	Code    string `json:"code"`
	Note    string `json:"note"`
	MaxUses int    `json:"max_uses"`
}

// CreateCode handles POST /api/admin/referral-codes.
func (h *Handler) CreateCode(c *gin.Context) {
	var req createCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if req.Code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Code is required"})
		return
	}

	code := models.ReferralCode{Code: req.Code, Note: req.Note, MaxUses: req.MaxUses}
	if err := h.DB.Create(&code).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Code already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create referral code"})
		return
	}

	c.JSON(http.StatusCreated, code)
}

// ListCodes handles GET /api/admin/referral-codes.
func (h *Handler) ListCodes(c *gin.Context) {
	var codes []models.ReferralCode
	if err := h.DB.Order("created_at desc").Find(&codes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch referral codes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"codes": codes})
}

// RedeemCode handles POST /api/referral-codes/:code/redeem. The increment is
// a single guarded UPDATE; two concurrent redemptions of a code's last use
// cannot both win.
func (h *Handler) RedeemCode(c *gin.Context) {
	code := c.Param("code")

	res := h.DB.Model(&models.ReferralCode{}).
		Where("code = ? AND (max_uses = 0 OR used_count < max_uses)", code).
		Update("used_count", gorm.Expr("used_count + 1"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to redeem code"})
		return
	}
	if res.RowsAffected == 0 {
		var existing models.ReferralCode
		if err := h.DB.Where("code = ?", code).First(&existing).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Referral code not found"})
			return
		}
		c.JSON(http.StatusConflict, gin.H{"error": "Referral code has no uses left"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": true})
}

type setCounterRequest struct {
	Tier      string `json:"tier"`
	Remaining int    `json:"remaining"`
	Total     int    `json:"total"`
}

// SetTicketCounter handles PUT /api/admin/tickets.
func (h *Handler) SetTicketCounter(c *gin.Context) {
	var req setCounterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if req.Tier == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tier is required"})
		return
	}

	var counter models.TicketCounter
	err := h.DB.Where("tier = ?", req.Tier).First(&counter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		counter = models.TicketCounter{Tier: req.Tier, Remaining: req.Remaining, Total: req.Total}
		if err := h.DB.Create(&counter).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create ticket counter"})
			return
		}
		c.JSON(http.StatusCreated, counter)
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch ticket counter"})
		return
	}

	counter.Remaining = req.Remaining
	counter.Total = req.Total
	if err := h.DB.Save(&counter).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update ticket counter"})
		return
	}
	c.JSON(http.StatusOK, counter)
}

// GetTicketCount handles GET /api/tickets/:tier.
func (h *Handler) GetTicketCount(c *gin.Context) {
	tier := c.Param("tier")

	var counter models.TicketCounter
	if err := h.DB.Where("tier = ?", tier).First(&counter).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown tier"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch ticket counter"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tier": counter.Tier, "remaining": counter.Remaining, "total": counter.Total})
}

// ReserveTicket handles POST /api/tickets/:tier/reserve. The decrement is a
// single UPDATE guarded by remaining > 0 so the last ticket cannot be sold
// twice under concurrent requests.
func (h *Handler) ReserveTicket(c *gin.Context) {
	tier := c.Param("tier")

	res := h.DB.Model(&models.TicketCounter{}).
		Where("tier = ? AND remaining > 0", tier).
		Update("remaining", gorm.Expr("remaining - 1"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reserve ticket"})
		return
	}
	if res.RowsAffected == 0 {
		var counter models.TicketCounter
		if err := h.DB.Where("tier = ?", tier).First(&counter).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown tier"})
			return
		}
		c.JSON(http.StatusConflict, gin.H{"error": "Sold out"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reserved": true})
}
