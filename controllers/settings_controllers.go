package controllers

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sabordacasa/delivery-app/models"
	"github.com/sabordacasa/delivery-app/utils"
)

type SettingsController struct {
	DB *gorm.DB
}

func NewSettingsController(db *gorm.DB) *SettingsController {
	return &SettingsController{DB: db}
}

var hhmmPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

type settingsRequest struct {
	Name                      string `json:"name" binding:"required"`
	Phone                     string `json:"phone"`
	Address                   string `json:"address"`
	OpensAt                   string `json:"opens_at" binding:"required"`
	ClosesAt                  string `json:"closes_at" binding:"required"`
	AutoPrintEnabled          *bool  `json:"auto_print_enabled"`
	OnlinePaymentsEnabled     *bool  `json:"online_payments_enabled"`
	TestMode                  *bool  `json:"test_mode"`
	RejectUnknownNeighborhood *bool  `json:"reject_unknown_neighborhood"`
}

func (sc *SettingsController) GetSettings(c *gin.Context) {
	var settings models.StoreSettings
	if err := sc.DB.First(&settings).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Store settings", settings)
}

// UpdateSettings writes the single settings row. Hours must be zero-padded
// HH:MM so the open-window comparison stays a plain string compare.
func (sc *SettingsController) UpdateSettings(c *gin.Context) {
	var settings models.StoreSettings
	if err := sc.DB.First(&settings).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !hhmmPattern.MatchString(req.OpensAt) || !hhmmPattern.MatchString(req.ClosesAt) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("hours must be in HH:MM format"))
		return
	}

	settings.Name = req.Name
	settings.Phone = req.Phone
	settings.Address = req.Address
	settings.OpensAt = req.OpensAt
	settings.ClosesAt = req.ClosesAt
	if req.AutoPrintEnabled != nil {
		settings.AutoPrintEnabled = *req.AutoPrintEnabled
	}
	if req.OnlinePaymentsEnabled != nil {
		settings.OnlinePaymentsEnabled = *req.OnlinePaymentsEnabled
	}
	if req.TestMode != nil {
		settings.TestMode = *req.TestMode
	}
	if req.RejectUnknownNeighborhood != nil {
		settings.RejectUnknownNeighborhood = *req.RejectUnknownNeighborhood
	}

	if err := sc.DB.Save(&settings).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Store settings updated (auto_print=%v, test_mode=%v)",
		settings.AutoPrintEnabled, settings.TestMode)
	utils.RespondJSON(c, http.StatusOK, "Settings updated", settings)
}
