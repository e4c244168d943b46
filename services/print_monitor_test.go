package services_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sabordacasa/delivery-app/models"
	"github.com/sabordacasa/delivery-app/services"
	"github.com/sabordacasa/delivery-app/utils"
)

type fakeRenderer struct {
	mu       sync.Mutex
	rendered []string
	fail     map[string]bool
}

func (fr *fakeRenderer) Render(order models.Order) ([]byte, error) {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	if fr.fail[order.Token] {
		return nil, errors.New("render failed")
	}
	fr.rendered = append(fr.rendered, order.Token)
	return []byte("pdf"), nil
}

func setupMonitorDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&models.StoreSettings{}, &models.Order{}, &models.OrderItem{},
		&models.OrderItemOption{}, &models.Option{},
	)
	if err != nil {
		t.Fatal(err)
	}
	db.Create(&models.StoreSettings{AutoPrintEnabled: true})
	return db
}

func newMonitor(db *gorm.DB, renderer services.TicketRenderer) *services.PrintMonitor {
	utils.InitLogger()
	return services.NewPrintMonitor(db, renderer, nil, true)
}

func pendingOrder(db *gorm.DB, token string) models.Order {
	order := models.Order{Token: token, Status: models.OrderStatusPending}
	db.Create(&order)
	return order
}

func TestMonitorPrintsEachPendingOrderOnce(t *testing.T) {
	db := setupMonitorDB(t)
	renderer := &fakeRenderer{}
	monitor := newMonitor(db, renderer)

	pendingOrder(db, "A")
	pendingOrder(db, "B")

	monitor.ProcessCycle()
	assert.Equal(t, []string{"A", "B"}, renderer.rendered)

	var statuses []string
	db.Model(&models.Order{}).Order("id").Pluck("status", &statuses)
	assert.Equal(t, []string{models.OrderStatusPrinted, models.OrderStatusPrinted}, statuses)

	// Repeat cycles are no-ops.
	monitor.ProcessCycle()
	assert.Equal(t, []string{"A", "B"}, renderer.rendered)
}

func TestMonitorSkipsWhenAutoPrintDisabled(t *testing.T) {
	db := setupMonitorDB(t)
	db.Model(&models.StoreSettings{}).Where("1 = 1").Update("auto_print_enabled", false)
	renderer := &fakeRenderer{}
	monitor := newMonitor(db, renderer)

	pendingOrder(db, "A")
	monitor.ProcessCycle()

	assert.Empty(t, renderer.rendered)
	var order models.Order
	db.Where("token = ?", "A").First(&order)
	assert.Equal(t, models.OrderStatusPending, order.Status)
}

func TestMonitorSkipsOffTerminal(t *testing.T) {
	db := setupMonitorDB(t)
	renderer := &fakeRenderer{}
	utils.InitLogger()
	monitor := services.NewPrintMonitor(db, renderer, nil, false)

	pendingOrder(db, "A")
	monitor.ProcessCycle()

	assert.Empty(t, renderer.rendered)
}

func TestMonitorRenderFailureIsNotRetried(t *testing.T) {
	db := setupMonitorDB(t)
	renderer := &fakeRenderer{fail: map[string]bool{"A": true}}
	monitor := newMonitor(db, renderer)

	pendingOrder(db, "A")
	monitor.ProcessCycle()

	// Status write happened before the render, and the failure is final.
	var order models.Order
	db.Where("token = ?", "A").First(&order)
	assert.Equal(t, models.OrderStatusPrinted, order.Status)

	renderer.fail = nil
	monitor.ProcessCycle()
	assert.Empty(t, renderer.rendered)
}

func TestMonitorPicksUpLateOrders(t *testing.T) {
	db := setupMonitorDB(t)
	renderer := &fakeRenderer{}
	monitor := newMonitor(db, renderer)

	pendingOrder(db, "A")
	monitor.ProcessCycle()

	pendingOrder(db, "B")
	monitor.ProcessCycle()

	assert.Equal(t, []string{"A", "B"}, renderer.rendered)
}
