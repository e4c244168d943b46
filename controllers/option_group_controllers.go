package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sabordacasa/delivery-app/models"
	"github.com/sabordacasa/delivery-app/utils"
)

type OptionGroupController struct {
	DB *gorm.DB
}

func NewOptionGroupController(db *gorm.DB) *OptionGroupController {
	return &OptionGroupController{DB: db}
}

type optionGroupRequest struct {
	Name          string `json:"name" binding:"required"`
	MinSelections int    `json:"min_selections" binding:"gte=0"`
	MaxSelections int    `json:"max_selections" binding:"gte=0"`
}

func (req optionGroupRequest) validate() error {
	// max of zero means unlimited, so only a positive cap can conflict.
	if req.MaxSelections > 0 && req.MinSelections > req.MaxSelections {
		return errors.New("min_selections cannot exceed max_selections")
	}
	return nil
}

func (ogc *OptionGroupController) GetAllGroups(c *gin.Context) {
	var groups []models.OptionGroup
	if err := ogc.DB.Preload("Options").Order("name").Find(&groups).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of option groups", groups)
}

func (ogc *OptionGroupController) GetGroup(c *gin.Context) {
	var group models.OptionGroup
	if err := ogc.DB.Preload("Options").First(&group, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("option group not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Option group", group)
}

func (ogc *OptionGroupController) CreateGroup(c *gin.Context) {
	var req optionGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := req.validate(); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	group := models.OptionGroup{
		Name:          req.Name,
		MinSelections: req.MinSelections,
		MaxSelections: req.MaxSelections,
	}
	if err := ogc.DB.Create(&group).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Option group created", group)
}

func (ogc *OptionGroupController) UpdateGroup(c *gin.Context) {
	var group models.OptionGroup
	if err := ogc.DB.First(&group, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("option group not found"))
		return
	}

	var req optionGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := req.validate(); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	group.Name = req.Name
	group.MinSelections = req.MinSelections
	group.MaxSelections = req.MaxSelections
	if err := ogc.DB.Save(&group).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Option group updated", group)
}

func (ogc *OptionGroupController) DeleteGroup(c *gin.Context) {
	var group models.OptionGroup
	if err := ogc.DB.First(&group, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("option group not found"))
		return
	}

	if err := ogc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", group.ID).Delete(&models.Option{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&group).Association("MenuItems").Clear(); err != nil {
			return err
		}
		return tx.Delete(&group).Error
	}); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Option group deleted", nil)
}

type optionRequest struct {
	Name            string  `json:"name" binding:"required"`
	AdditionalPrice float64 `json:"additional_price" binding:"gte=0"`
	Available       *bool   `json:"available"`
	TrackStock      bool    `json:"track_stock"`
	Stock           int     `json:"stock" binding:"gte=0"`
}

func (ogc *OptionGroupController) CreateOption(c *gin.Context) {
	var group models.OptionGroup
	if err := ogc.DB.First(&group, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("option group not found"))
		return
	}

	var req optionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	option := models.Option{
		GroupID:         group.ID,
		Name:            req.Name,
		AdditionalPrice: req.AdditionalPrice,
		Available:       true,
		TrackStock:      req.TrackStock,
		Stock:           req.Stock,
	}
	if req.Available != nil {
		option.Available = *req.Available
	}

	if err := ogc.DB.Create(&option).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Option created", option)
}

func (ogc *OptionGroupController) UpdateOption(c *gin.Context) {
	var option models.Option
	if err := ogc.DB.Where("id = ? AND group_id = ?", c.Param("option_id"), c.Param("id")).
		First(&option).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("option not found"))
		return
	}

	var req optionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	option.Name = req.Name
	option.AdditionalPrice = req.AdditionalPrice
	option.TrackStock = req.TrackStock
	option.Stock = req.Stock
	if req.Available != nil {
		option.Available = *req.Available
	}

	if err := ogc.DB.Save(&option).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Option updated", option)
}

func (ogc *OptionGroupController) DeleteOption(c *gin.Context) {
	res := ogc.DB.Where("id = ? AND group_id = ?", c.Param("option_id"), c.Param("id")).
		Delete(&models.Option{})
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("option not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Option deleted", nil)
}
