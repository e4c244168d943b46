package Controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sabordacasa/delivery-app/controllers"
	"github.com/sabordacasa/delivery-app/middlewares"
	"github.com/sabordacasa/delivery-app/models"
	"github.com/sabordacasa/delivery-app/utils"
)

func setupUserRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatal(err)
	}

	gin.SetMode(gin.TestMode)
	utils.InitLogger()
	router := gin.Default()

	userCtrl := controllers.NewUserController(db)
	router.POST("/admin/login", userCtrl.Login)
	router.POST("/register", userCtrl.Register)

	auth := router.Group("/admin")
	auth.Use(middlewares.AuthMiddleware(), middlewares.RequireRole(utils.RoleAdmin))
	auth.GET("/profile", userCtrl.GetProfile)
	auth.POST("/logout", userCtrl.Logout)
	return router, db
}

func TestUserRegisterLoginProfile(t *testing.T) {
	router, _ := setupUserRouter(t)

	w := doJSON(router, "POST", "/register", map[string]string{
		"name":     "Ana",
		"email":    "ana@sabordacasa.com.br",
		"password": "super-secret",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Wrong password.
	w = doJSON(router, "POST", "/admin/login", map[string]string{
		"email": "ana@sabordacasa.com.br", "password": "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, "POST", "/admin/login", map[string]string{
		"email": "ana@sabordacasa.com.br", "password": "super-secret",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var loginResp struct {
		Data struct {
			Token string `json:"token"`
			Role  string `json:"role"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResp))
	assert.Equal(t, utils.RoleAdmin, loginResp.Data.Role)

	req, _ := http.NewRequest("GET", "/admin/profile", nil)
	req.Header.Set("Authorization", "Bearer "+loginResp.Data.Token)
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	assert.Equal(t, http.StatusOK, w2.Code)

	// Logout blacklists the token; the next call fails.
	req, _ = http.NewRequest("POST", "/admin/logout", nil)
	req.Header.Set("Authorization", "Bearer "+loginResp.Data.Token)
	w2 = httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	assert.Equal(t, http.StatusOK, w2.Code)

	req, _ = http.NewRequest("GET", "/admin/profile", nil)
	req.Header.Set("Authorization", "Bearer "+loginResp.Data.Token)
	w2 = httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	assert.Equal(t, http.StatusUnauthorized, w2.Code)
}

func TestProfileWithoutToken(t *testing.T) {
	router, _ := setupUserRouter(t)

	req, _ := http.NewRequest("GET", "/admin/profile", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCourierTokenCannotEnterAdmin(t *testing.T) {
	router, _ := setupUserRouter(t)

	token, err := utils.GenerateToken(9, utils.RoleCourier)
	assert.NoError(t, err)

	req, _ := http.NewRequest("GET", "/admin/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
