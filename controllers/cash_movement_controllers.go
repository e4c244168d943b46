package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sabordacasa/delivery-app/models"
	"github.com/sabordacasa/delivery-app/utils"
)

type CashMovementController struct {
	DB *gorm.DB
}

func NewCashMovementController(db *gorm.DB) *CashMovementController {
	return &CashMovementController{DB: db}
}

type cashMovementRequest struct {
	Type        string  `json:"type" binding:"required,oneof=in out"`
	Category    string  `json:"category"`
	Description string  `json:"description" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	OccurredAt  string  `json:"occurred_at"`
}

// GetAllMovements lists cash movements, optionally bounded by ?from= and
// ?to= (YYYY-MM-DD).
func (cmc *CashMovementController) GetAllMovements(c *gin.Context) {
	query := cmc.DB.Order("occurred_at desc")

	if from := c.Query("from"); from != "" {
		query = query.Where("DATE(occurred_at) >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("DATE(occurred_at) <= ?", to)
	}

	var movements []models.CashMovement
	if err := query.Find(&movements).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// Running balance for the listed window, decimal so cents never drift.
	balance := decimal.Zero
	for _, m := range movements {
		amount := decimal.NewFromFloat(m.Amount)
		if m.Type == models.CashMovementIn {
			balance = balance.Add(amount)
		} else {
			balance = balance.Sub(amount)
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Cash movements", gin.H{
		"movements": movements,
		"balance":   balance.InexactFloat64(),
	})
}

func (cmc *CashMovementController) CreateMovement(c *gin.Context) {
	var req cashMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	occurredAt := time.Now()
	if req.OccurredAt != "" {
		parsed, err := time.Parse("2006-01-02", req.OccurredAt)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("occurred_at must be YYYY-MM-DD"))
			return
		}
		occurredAt = parsed
	}

	movement := models.CashMovement{
		Type:        req.Type,
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount,
		OccurredAt:  occurredAt,
	}
	if err := cmc.DB.Create(&movement).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Cash movement recorded", movement)
}

func (cmc *CashMovementController) DeleteMovement(c *gin.Context) {
	res := cmc.DB.Delete(&models.CashMovement{}, c.Param("id"))
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("cash movement not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cash movement deleted", nil)
}
