package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sabordacasa/delivery-app/models"
	"github.com/sabordacasa/delivery-app/services"
	"github.com/sabordacasa/delivery-app/utils"
)

type TicketController struct {
	DB       *gorm.DB
	Renderer services.TicketRenderer
}

func NewTicketController(db *gorm.DB, renderer services.TicketRenderer) *TicketController {
	return &TicketController{DB: db, Renderer: renderer}
}

// GetTicket streams the order's kitchen ticket as a PDF. ?download=true
// switches from inline display to attachment.
func (tc *TicketController) GetTicket(c *gin.Context) {
	var order models.Order
	if err := tc.DB.Preload("Items.Options").First(&order, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	document, err := tc.Renderer.Render(order)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	disposition := "inline"
	if c.Query("download") == "true" {
		disposition = "attachment"
	}
	c.Header("Content-Disposition", fmt.Sprintf("%s; filename=ticket-%s.pdf", disposition, order.Token))
	c.Data(http.StatusOK, "application/pdf", document)
}
