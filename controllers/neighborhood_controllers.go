package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sabordacasa/delivery-app/models"
	"github.com/sabordacasa/delivery-app/utils"
)

type NeighborhoodController struct {
	DB *gorm.DB
}

func NewNeighborhoodController(db *gorm.DB) *NeighborhoodController {
	return &NeighborhoodController{DB: db}
}

type neighborhoodRequest struct {
	Name string  `json:"name" binding:"required"`
	Fee  float64 `json:"fee" binding:"gte=0"`
}

func (nc *NeighborhoodController) GetAllNeighborhoods(c *gin.Context) {
	var neighborhoods []models.Neighborhood
	if err := nc.DB.Order("name").Find(&neighborhoods).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of neighborhoods", neighborhoods)
}

func (nc *NeighborhoodController) CreateNeighborhood(c *gin.Context) {
	var req neighborhoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	neighborhood := models.Neighborhood{Name: req.Name, Fee: req.Fee}
	if err := nc.DB.Create(&neighborhood).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Neighborhood created", neighborhood)
}

func (nc *NeighborhoodController) UpdateNeighborhood(c *gin.Context) {
	var neighborhood models.Neighborhood
	if err := nc.DB.First(&neighborhood, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("neighborhood not found"))
		return
	}

	var req neighborhoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	neighborhood.Name = req.Name
	neighborhood.Fee = req.Fee
	if err := nc.DB.Save(&neighborhood).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Neighborhood updated", neighborhood)
}

func (nc *NeighborhoodController) DeleteNeighborhood(c *gin.Context) {
	res := nc.DB.Delete(&models.Neighborhood{}, c.Param("id"))
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("neighborhood not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Neighborhood deleted", nil)
}
