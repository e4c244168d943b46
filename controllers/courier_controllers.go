package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sabordacasa/delivery-app/models"
	"github.com/sabordacasa/delivery-app/realtime"
	"github.com/sabordacasa/delivery-app/services"
	"github.com/sabordacasa/delivery-app/utils"
)

type CourierController struct {
	DB *gorm.DB
}

func NewCourierController(db *gorm.DB) *CourierController {
	return &CourierController{DB: db}
}

type courierRequest struct {
	Name         string  `json:"name" binding:"required"`
	Phone        string  `json:"phone" binding:"required"`
	Document     string  `json:"document"`
	VehicleType  string  `json:"vehicle_type"`
	VehicleModel string  `json:"vehicle_model"`
	VehiclePlate string  `json:"vehicle_plate"`
	VehicleColor string  `json:"vehicle_color"`
	MaxOrders    int     `json:"max_orders"`
	Rating       float64 `json:"rating"`
	Login        string  `json:"login"`
	Password     string  `json:"password"`
}

// GetAllCouriers lists active couriers for the dashboard.
func (cc *CourierController) GetAllCouriers(c *gin.Context) {
	var couriers []models.Courier
	if err := cc.DB.Where("active = ?", true).Order("name").Find(&couriers).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of couriers", couriers)
}

func (cc *CourierController) GetCourier(c *gin.Context) {
	var courier models.Courier
	if err := cc.DB.First(&courier, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("courier not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Courier", courier)
}

func (cc *CourierController) CreateCourier(c *gin.Context) {
	var req courierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	courier := models.Courier{
		Name:         req.Name,
		Phone:        utils.NormalizePhone(req.Phone),
		Document:     req.Document,
		VehicleType:  req.VehicleType,
		VehicleModel: req.VehicleModel,
		VehiclePlate: req.VehiclePlate,
		VehicleColor: req.VehicleColor,
		Status:       models.CourierStatusOffline,
		MaxOrders:    req.MaxOrders,
		Rating:       req.Rating,
		Active:       true,
		Login:        req.Login,
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		courier.PasswordHash = string(hashed)
	}

	if err := cc.DB.Create(&courier).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Courier created: %s (id=%d)", courier.Name, courier.ID)
	utils.RespondJSON(c, http.StatusCreated, "Courier created", courier)
}

func (cc *CourierController) UpdateCourier(c *gin.Context) {
	var courier models.Courier
	if err := cc.DB.First(&courier, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("courier not found"))
		return
	}

	var req courierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	courier.Name = req.Name
	courier.Phone = utils.NormalizePhone(req.Phone)
	courier.Document = req.Document
	courier.VehicleType = req.VehicleType
	courier.VehicleModel = req.VehicleModel
	courier.VehiclePlate = req.VehiclePlate
	courier.VehicleColor = req.VehicleColor
	courier.MaxOrders = req.MaxOrders
	courier.Rating = req.Rating
	if req.Login != "" {
		courier.Login = req.Login
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		courier.PasswordHash = string(hashed)
	}

	if err := cc.DB.Save(&courier).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Courier updated", courier)
}

// DeleteCourier soft-deletes so past orders keep their courier reference.
func (cc *CourierController) DeleteCourier(c *gin.Context) {
	var courier models.Courier
	if err := cc.DB.First(&courier, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("courier not found"))
		return
	}

	if err := cc.DB.Model(&courier).Updates(map[string]interface{}{
		"active": false,
		"status": models.CourierStatusOffline,
	}).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Courier deactivated", nil)
}

// UpdateCourierStatus lets the dashboard flip a courier's availability.
func (cc *CourierController) UpdateCourierStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !models.ValidCourierStatus(input.Status) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid courier status"))
		return
	}

	var courier models.Courier
	if err := cc.DB.First(&courier, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("courier not found"))
		return
	}

	if err := cc.DB.Model(&courier).Update("status", input.Status).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	courier.Status = input.Status
	realtime.BroadcastCourierUpdate(courier)

	utils.RespondJSON(c, http.StatusOK, "Courier status updated", courier)
}

// Login authenticates a courier for the portal.
func (cc *CourierController) Login(c *gin.Context) {
	var input struct {
		Login    string `json:"login" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var courier models.Courier
	if err := cc.DB.Where("login = ? AND active = ?", input.Login, true).First(&courier).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(courier.PasswordHash), []byte(input.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	token, err := utils.GenerateToken(courier.ID, utils.RoleCourier)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Courier login: %s", courier.Login)
	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token":   token,
		"courier": courier,
	})
}

// GetMyOrders lists the authenticated courier's open deliveries.
func (cc *CourierController) GetMyOrders(c *gin.Context) {
	courierID, ok := contextCourierID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("courier id not found in context"))
		return
	}

	var orders []models.Order
	if err := cc.DB.Preload("Items.Options").
		Where("courier_id = ? AND status = ?", courierID, models.OrderStatusOutForDelivery).
		Order("assigned_at asc").
		Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Assigned orders", orders)
}

// MarkDelivered completes one of the courier's own orders.
func (cc *CourierController) MarkDelivered(c *gin.Context) {
	courierID, ok := contextCourierID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("courier id not found in context"))
		return
	}

	var order models.Order
	if err := cc.DB.Where("id = ? AND courier_id = ?", c.Param("id"), courierID).
		First(&order).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	if err := services.Transition(cc.DB, &order, models.OrderStatusCompleted); err != nil {
		utils.RespondError(c, http.StatusConflict, err)
		return
	}

	var courier models.Courier
	if err := cc.DB.First(&courier, courierID).Error; err == nil {
		var onRoute int64
		cc.DB.Model(&models.Order{}).
			Where("courier_id = ? AND status = ?", courierID, models.OrderStatusOutForDelivery).
			Count(&onRoute)
		updates := map[string]interface{}{
			"deliveries": gorm.Expr("deliveries + 1"),
		}
		if onRoute == 0 {
			updates["status"] = models.CourierStatusAvailable
		}
		if err := cc.DB.Model(&courier).Updates(updates).Error; err == nil {
			cc.DB.First(&courier, courierID)
			realtime.BroadcastCourierUpdate(courier)
		}
	}

	utils.InfoLogger.Printf("Order %s delivered by courier %d", order.Token, courierID)
	realtime.BroadcastOrderUpdated(order)
	utils.RespondJSON(c, http.StatusOK, "Order delivered", order)
}

func contextCourierID(c *gin.Context) (uint, bool) {
	idInterface, exists := c.Get("userID")
	if !exists {
		return 0, false
	}
	id, ok := idInterface.(uint)
	return id, ok
}
