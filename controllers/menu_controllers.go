package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sabordacasa/delivery-app/models"
	"github.com/sabordacasa/delivery-app/utils"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

type menuItemRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Category    string  `json:"category" binding:"required"`
	DayOfWeek   string  `json:"day_of_week"`
	ImageURL    *string `json:"image_url"`
	PrepTime    int     `json:"prep_time"`
	Available   *bool   `json:"available"`
}

// GetPublicMenu lists available items for the storefront, with option groups
// and their options preloaded. A ?day= filter narrows to one weekday's dishes;
// items without a day are always included.
func (mc *MenuController) GetPublicMenu(c *gin.Context) {
	query := mc.DB.Preload("OptionGroups.Options").Where("available = ?", true)

	day := c.Query("day")
	if day == "" {
		day = weekdayName(time.Now().Weekday())
	}
	if day != "all" {
		query = query.Where("day_of_week = ? OR day_of_week = ''", day)
	}

	var items []models.MenuItem
	if err := query.Order("category, name").Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu", items)
}

// GetAllMenuItems lists every item for the back office, including unavailable
// ones.
func (mc *MenuController) GetAllMenuItems(c *gin.Context) {
	var items []models.MenuItem
	if err := mc.DB.Preload("OptionGroups.Options").Order("category, name").Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menu items", items)
}

func (mc *MenuController) GetMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := mc.DB.Preload("OptionGroups.Options").First(&item, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item", item)
}

func (mc *MenuController) CreateMenuItem(c *gin.Context) {
	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !models.ValidCategory(req.Category) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid category"))
		return
	}

	item := models.MenuItem{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		DayOfWeek:   req.DayOfWeek,
		ImageURL:    req.ImageURL,
		PrepTime:    req.PrepTime,
		Available:   true,
	}
	if req.Available != nil {
		item.Available = *req.Available
	}

	if err := mc.DB.Create(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Menu item created: %s (id=%d)", item.Name, item.ID)
	utils.RespondJSON(c, http.StatusCreated, "Menu item created", item)
}

func (mc *MenuController) UpdateMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := mc.DB.First(&item, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
		return
	}

	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !models.ValidCategory(req.Category) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid category"))
		return
	}

	item.Name = req.Name
	item.Description = req.Description
	item.Price = req.Price
	item.Category = req.Category
	item.DayOfWeek = req.DayOfWeek
	item.ImageURL = req.ImageURL
	item.PrepTime = req.PrepTime
	if req.Available != nil {
		item.Available = *req.Available
	}

	if err := mc.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu item updated", item)
}

func (mc *MenuController) DeleteMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := mc.DB.First(&item, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
		return
	}

	if err := mc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&item).Association("OptionGroups").Clear(); err != nil {
			return err
		}
		return tx.Delete(&item).Error
	}); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Menu item deleted: %s (id=%d)", item.Name, item.ID)
	utils.RespondJSON(c, http.StatusOK, "Menu item deleted", nil)
}

// LinkOptionGroup attaches an option group to a menu item. Groups are shared:
// the same group can serve many items.
func (mc *MenuController) LinkOptionGroup(c *gin.Context) {
	var item models.MenuItem
	if err := mc.DB.First(&item, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
		return
	}

	var group models.OptionGroup
	if err := mc.DB.First(&group, c.Param("group_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("option group not found"))
		return
	}

	if err := mc.DB.Model(&item).Association("OptionGroups").Append(&group); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Option group linked", nil)
}

func (mc *MenuController) UnlinkOptionGroup(c *gin.Context) {
	var item models.MenuItem
	if err := mc.DB.First(&item, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
		return
	}

	var group models.OptionGroup
	if err := mc.DB.First(&group, c.Param("group_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("option group not found"))
		return
	}

	if err := mc.DB.Model(&item).Association("OptionGroups").Delete(&group); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Option group unlinked", nil)
}

func weekdayName(d time.Weekday) string {
	switch d {
	case time.Monday:
		return "monday"
	case time.Tuesday:
		return "tuesday"
	case time.Wednesday:
		return "wednesday"
	case time.Thursday:
		return "thursday"
	case time.Friday:
		return "friday"
	case time.Saturday:
		return "saturday"
	}
	return "sunday"
}
