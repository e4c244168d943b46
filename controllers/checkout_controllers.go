package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sabordacasa/delivery-app/models"
	"github.com/sabordacasa/delivery-app/realtime"
	"github.com/sabordacasa/delivery-app/services"
	"github.com/sabordacasa/delivery-app/utils"
)

type CheckoutController struct {
	DB       *gorm.DB
	Checkout *services.CheckoutService
	CEP      *services.CEPService
}

func NewCheckoutController(db *gorm.DB, checkout *services.CheckoutService, cep *services.CEPService) *CheckoutController {
	return &CheckoutController{DB: db, Checkout: checkout, CEP: cep}
}

// PlaceOrder handles the storefront checkout submission.
func (cc *CheckoutController) PlaceOrder(c *gin.Context) {
	var req services.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	result, err := cc.Checkout.Checkout(req)
	if err != nil {
		if services.IsCheckoutValidationError(err) {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		// A persisted order with a failed gateway handoff still reaches the
		// kitchen; tell the storefront what happened.
		if result != nil {
			utils.ErrorLogger.Printf("Gateway handoff failed for order %s: %v", result.Order.Token, err)
			realtime.BroadcastOrderCreated(result.Order)
			utils.RespondJSON(c, http.StatusCreated, "Order placed, payment handoff unavailable", result)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Order placed: %s (total=%.2f, %s)", result.Order.Token, result.Order.Total, result.Order.PaymentMethod)
	realtime.BroadcastOrderCreated(result.Order)
	utils.RespondJSON(c, http.StatusCreated, "Order placed", result)
}

// TrackOrder lets a customer follow their order by its token. Token knowledge
// is the only credential.
func (cc *CheckoutController) TrackOrder(c *gin.Context) {
	var order models.Order
	if err := cc.DB.Preload("Items.Options").Preload("Courier").
		Where("token = ?", c.Param("token")).First(&order).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order status", order)
}

// GetCustomer prefills the checkout form from a previous order's address.
func (cc *CheckoutController) GetCustomer(c *gin.Context) {
	phone := utils.NormalizePhone(c.Param("phone"))
	if phone == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid phone"))
		return
	}

	var customer models.Customer
	if err := cc.DB.Where("phone = ?", phone).First(&customer).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("customer not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer", customer)
}

// LookupCEP resolves a postal code for address prefill.
func (cc *CheckoutController) LookupCEP(c *gin.Context) {
	cep := utils.NormalizePhone(c.Param("cep")) // digits only, same normalization
	address, err := cc.CEP.Lookup(cep)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCEP) {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		if errors.Is(err, services.ErrCEPNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		utils.RespondError(c, http.StatusBadGateway, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Address", address)
}

// GetStoreInfo exposes the storefront's public view of the settings: name,
// hours, whether the store is currently open, and the delivery fee table.
func (cc *CheckoutController) GetStoreInfo(c *gin.Context) {
	var settings models.StoreSettings
	if err := cc.DB.First(&settings).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var neighborhoods []models.Neighborhood
	if err := cc.DB.Order("name").Find(&neighborhoods).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Store info", gin.H{
		"name":          settings.Name,
		"phone":         settings.Phone,
		"address":       settings.Address,
		"opens_at":      settings.OpensAt,
		"closes_at":     settings.ClosesAt,
		"open":          services.StoreOpen(settings, cc.Checkout.Now()),
		"neighborhoods": neighborhoods,
	})
}
