package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sabordacasa/delivery-app/models"
	"github.com/sabordacasa/delivery-app/utils"
)

type CustomerController struct {
	DB *gorm.DB
}

func NewCustomerController(db *gorm.DB) *CustomerController {
	return &CustomerController{DB: db}
}

func (cc *CustomerController) GetAllCustomers(c *gin.Context) {
	var customers []models.Customer
	if err := cc.DB.Order("name").Find(&customers).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of customers", customers)
}

// GetCustomerOrders returns a customer with their order history for the
// back office.
func (cc *CustomerController) GetCustomerOrders(c *gin.Context) {
	var customer models.Customer
	if err := cc.DB.First(&customer, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("customer not found"))
		return
	}

	var orders []models.Order
	if err := cc.DB.Preload("Items.Options").
		Where("customer_phone = ?", customer.Phone).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Customer orders", gin.H{
		"customer": customer,
		"orders":   orders,
	})
}
