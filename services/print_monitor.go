package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/sabordacasa/delivery-app/models"
	"github.com/sabordacasa/delivery-app/realtime"
	"github.com/sabordacasa/delivery-app/utils"
)

// TicketRenderer produces a printable kitchen-ticket document for an order.
type TicketRenderer interface {
	Render(order models.Order) ([]byte, error)
}

// TicketPrinter sends a rendered ticket to the physical printer. Optional:
// a nil printer means tickets are only rendered to documents.
type TicketPrinter interface {
	Print(order models.Order, document []byte) error
}

// PrintMonitor polls for newly placed orders and advances each one
// pending -> printed exactly once, then drives the render/print side effects.
// It only acts when the shared auto-print setting is on AND this process runs
// on the designated print terminal, so multiple open admin sessions never
// print the same ticket.
type PrintMonitor struct {
	DB       *gorm.DB
	Interval time.Duration
	StopChan chan struct{}
	Renderer TicketRenderer
	Printer  TicketPrinter
	Terminal bool

	// processed is owned exclusively by this loop and lives only as long as
	// the process does. An order that failed mid-cycle before a restart is
	// dropped; the status filter keeps already-printed orders out.
	processed map[uint]struct{}
}

func NewPrintMonitor(db *gorm.DB, renderer TicketRenderer, printer TicketPrinter, terminal bool) *PrintMonitor {
	return &PrintMonitor{
		DB:        db,
		Interval:  5 * time.Second,
		StopChan:  make(chan struct{}),
		Renderer:  renderer,
		Printer:   printer,
		Terminal:  terminal,
		processed: make(map[uint]struct{}),
	}
}

func (pm *PrintMonitor) Start() {
	go func() {
		ticker := time.NewTicker(pm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				pm.ProcessCycle()
			case <-pm.StopChan:
				return
			}
		}
	}()
}

func (pm *PrintMonitor) Stop() {
	close(pm.StopChan)
}

// ProcessCycle runs one poll. Orders are handled sequentially in fetch order.
// Per order the sequence is strict: mark seen first so a slow render cannot
// cause re-entry, then write the status, and only after that write succeeds
// run the slow render/print side effects. A failed status write reverts the
// seen mark so the next cycle retries; a failed render after a successful
// write is logged and never retried (at-most-once print).
func (pm *PrintMonitor) ProcessCycle() {
	if !pm.Terminal {
		return
	}

	var settings models.StoreSettings
	if err := pm.DB.First(&settings).Error; err != nil {
		utils.ErrorLogger.Printf("auto-print: error loading settings: %v", err)
		return
	}
	if !settings.AutoPrintEnabled {
		return
	}

	var orders []models.Order
	if err := pm.DB.Preload("Items").Preload("Items.Options").
		Where("status = ?", models.OrderStatusPending).
		Order("created_at asc").
		Find(&orders).Error; err != nil {
		utils.ErrorLogger.Printf("auto-print: error fetching pending orders: %v", err)
		return
	}

	for _, order := range orders {
		if _, seen := pm.processed[order.ID]; seen {
			continue
		}
		pm.processed[order.ID] = struct{}{}

		if err := Transition(pm.DB, &order, models.OrderStatusPrinted); err != nil {
			delete(pm.processed, order.ID)
			utils.ErrorLogger.Printf("auto-print: error marking order %s printed: %v", order.Token, err)
			continue
		}
		realtime.BroadcastOrderUpdated(order)

		document, err := pm.Renderer.Render(order)
		if err != nil {
			utils.ErrorLogger.Printf("auto-print: error rendering ticket for order %s: %v", order.Token, err)
			continue
		}
		if pm.Printer != nil {
			if err := pm.Printer.Print(order, document); err != nil {
				utils.ErrorLogger.Printf("auto-print: error printing ticket for order %s: %v", order.Token, err)
			}
		}
	}
}
