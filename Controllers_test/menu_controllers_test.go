package Controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sabordacasa/delivery-app/controllers"
	"github.com/sabordacasa/delivery-app/models"
	"github.com/sabordacasa/delivery-app/utils"
)

func setupMenuDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(&models.MenuItem{}, &models.OptionGroup{}, &models.Option{})
	if err != nil {
		t.Fatal(err)
	}
	return db
}

func setupMenuRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()
	router := gin.Default()

	menuCtrl := controllers.NewMenuController(db)
	groupCtrl := controllers.NewOptionGroupController(db)
	router.GET("/api/menu", menuCtrl.GetPublicMenu)
	router.GET("/admin/menu-items", menuCtrl.GetAllMenuItems)
	router.POST("/admin/menu-items", menuCtrl.CreateMenuItem)
	router.GET("/admin/menu-items/:id", menuCtrl.GetMenuItem)
	router.PATCH("/admin/menu-items/:id", menuCtrl.UpdateMenuItem)
	router.DELETE("/admin/menu-items/:id", menuCtrl.DeleteMenuItem)
	router.POST("/admin/menu-items/:id/groups/:group_id", menuCtrl.LinkOptionGroup)
	router.DELETE("/admin/menu-items/:id/groups/:group_id", menuCtrl.UnlinkOptionGroup)
	router.POST("/admin/option-groups", groupCtrl.CreateGroup)
	router.POST("/admin/option-groups/:id/options", groupCtrl.CreateOption)
	return router
}

func TestMenuItemCRUD(t *testing.T) {
	db := setupMenuDB(t)
	router := setupMenuRouter(db)

	w := doJSON(router, "POST", "/admin/menu-items", map[string]interface{}{
		"name":        "Executivo de frango",
		"description": "Arroz, feijão e frango grelhado",
		"price":       25.50,
		"category":    "executive",
		"day_of_week": "monday",
		"prep_time":   20,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var createResp struct {
		Data models.MenuItem `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &createResp))
	itemID := int(createResp.Data.ID)
	assert.True(t, createResp.Data.Available, "new items default to available")

	url := "/admin/menu-items/" + strconv.Itoa(itemID)
	req, _ := http.NewRequest("GET", url, nil)
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	assert.Equal(t, http.StatusOK, w2.Code)

	w = doJSON(router, "PATCH", url, map[string]interface{}{
		"name":      "Executivo de frango",
		"price":     27.00,
		"category":  "executive",
		"available": false,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var stored models.MenuItem
	db.First(&stored, itemID)
	assert.InDelta(t, 27.00, stored.Price, 0.001)
	assert.False(t, stored.Available)

	req, _ = http.NewRequest("DELETE", url, nil)
	w2 = httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	assert.Equal(t, http.StatusOK, w2.Code)
}

func TestCreateMenuItemRejectsBadCategory(t *testing.T) {
	db := setupMenuDB(t)
	router := setupMenuRouter(db)

	w := doJSON(router, "POST", "/admin/menu-items", map[string]interface{}{
		"name":     "Mystery dish",
		"price":    10.0,
		"category": "gigantic",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPublicMenuHidesUnavailable(t *testing.T) {
	db := setupMenuDB(t)
	router := setupMenuRouter(db)

	db.Create(&models.MenuItem{Name: "Visible", Price: 10, Category: models.CategorySmall, Available: true})
	db.Create(&models.MenuItem{Name: "Hidden", Price: 10, Category: models.CategorySmall, Available: false})

	req, _ := http.NewRequest("GET", "/api/menu?day=all", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []models.MenuItem `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, "Visible", resp.Data[0].Name)
}

func TestPublicMenuDayFilter(t *testing.T) {
	db := setupMenuDB(t)
	router := setupMenuRouter(db)

	db.Create(&models.MenuItem{Name: "Feijoada", Price: 30, Category: models.CategoryLarge, DayOfWeek: "saturday", Available: true})
	db.Create(&models.MenuItem{Name: "Marmita", Price: 18, Category: models.CategoryMedium, Available: true})

	req, _ := http.NewRequest("GET", "/api/menu?day=saturday", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp struct {
		Data []models.MenuItem `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	// The Saturday special plus the everyday item.
	assert.Len(t, resp.Data, 2)

	req, _ = http.NewRequest("GET", "/api/menu?day=tuesday", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, "Marmita", resp.Data[0].Name)
}

func TestLinkOptionGroupToItem(t *testing.T) {
	db := setupMenuDB(t)
	router := setupMenuRouter(db)

	item := models.MenuItem{Name: "Churrasco", Price: 35, Category: models.CategoryLarge, Available: true}
	db.Create(&item)

	w := doJSON(router, "POST", "/admin/option-groups", map[string]interface{}{
		"name":           "Meats",
		"min_selections": 1,
		"max_selections": 2,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	var groupResp struct {
		Data models.OptionGroup `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &groupResp))

	w = doJSON(router, "POST", fmt.Sprintf("/admin/option-groups/%d/options", groupResp.Data.ID),
		map[string]interface{}{"name": "Picanha", "additional_price": 3.0})
	assert.Equal(t, http.StatusCreated, w.Code)

	link := fmt.Sprintf("/admin/menu-items/%d/groups/%d", item.ID, groupResp.Data.ID)
	w = doJSON(router, "POST", link, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var stored models.MenuItem
	db.Preload("OptionGroups.Options").First(&stored, item.ID)
	assert.Len(t, stored.OptionGroups, 1)
	assert.Len(t, stored.OptionGroups[0].Options, 1)

	req, _ := http.NewRequest("DELETE", link, nil)
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	assert.Equal(t, http.StatusOK, w2.Code)

	db.Preload("OptionGroups").First(&stored, item.ID)
	assert.Empty(t, stored.OptionGroups)
}

func TestCreateOptionGroupRejectsMinAboveMax(t *testing.T) {
	db := setupMenuDB(t)
	router := setupMenuRouter(db)

	w := doJSON(router, "POST", "/admin/option-groups", map[string]interface{}{
		"name":           "Broken",
		"min_selections": 3,
		"max_selections": 2,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// min > 0 with unlimited max is fine.
	w = doJSON(router, "POST", "/admin/option-groups", map[string]interface{}{
		"name":           "Unlimited",
		"min_selections": 2,
		"max_selections": 0,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}
