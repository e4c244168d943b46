package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sabordacasa/delivery-app/models"
	"github.com/sabordacasa/delivery-app/utils"
)

// Errors returned by the checkout flow.
var (
	ErrNameRequired    = errors.New("name is required")
	ErrPhoneRequired   = errors.New("phone is required")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrAddressRequired = errors.New("street, number and neighborhood are required for delivery")
	ErrInvalidMethod   = errors.New("invalid delivery method")
	ErrInvalidPayment  = errors.New("invalid payment method")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrStoreClosed     = errors.New("store is closed")
	ErrItemNotFound    = errors.New("menu item not found")
	ErrItemUnavailable = errors.New("menu item is not available")
	ErrUnknownOption   = errors.New("option not found")
)

// PaymentPreference is the gateway's answer to a preference request.
type PaymentPreference struct {
	ID                 string
	RedirectURL        string
	SandboxRedirectURL string
}

// PaymentGateway creates hosted-checkout preferences for online payments.
// Satisfied by *MercadoPagoService; narrow interface for testability.
type PaymentGateway interface {
	CreatePreference(order models.Order) (*PaymentPreference, error)
}

// CheckoutItem is one cart line as submitted by the storefront.
type CheckoutItem struct {
	MenuItemID uint   `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
	OptionIDs  []uint `json:"option_ids"`
}

// CheckoutRequest is the validated storefront submission.
type CheckoutRequest struct {
	Name           string         `json:"name"`
	Phone          string         `json:"phone"`
	Street         string         `json:"street"`
	Number         string         `json:"number"`
	Complement     string         `json:"complement"`
	Neighborhood   string         `json:"neighborhood"`
	CEP            string         `json:"cep"`
	DeliveryMethod string         `json:"delivery_method"`
	PaymentMethod  string         `json:"payment_method"`
	Observations   string         `json:"observations"`
	Items          []CheckoutItem `json:"items"`
}

// CheckoutResult carries the persisted order plus the handoff the storefront
// should follow: a gateway redirect for online payments, otherwise a WhatsApp
// deep link for manual confirmation.
type CheckoutResult struct {
	Order       models.Order `json:"order"`
	RedirectURL string       `json:"redirect_url,omitempty"`
	WhatsAppURL string       `json:"whatsapp_url,omitempty"`
}

// CheckoutService orchestrates storefront order placement.
type CheckoutService struct {
	DB      *gorm.DB
	Gateway PaymentGateway
	// Now is injectable so the open-hours gate is testable.
	Now func() time.Time
}

func NewCheckoutService(db *gorm.DB, gateway PaymentGateway) *CheckoutService {
	return &CheckoutService{DB: db, Gateway: gateway, Now: time.Now}
}

// StoreOpen compares the local time of day against the configured window.
// Zero-padded HH:MM strings sort exactly like the times they represent, so a
// plain string comparison is correct; the closing minute is inclusive.
// Windows where closesAt < opensAt wrap past midnight.
func StoreOpen(settings models.StoreSettings, now time.Time) bool {
	hhmm := now.Format("15:04")
	if settings.ClosesAt < settings.OpensAt {
		return hhmm >= settings.OpensAt || hhmm <= settings.ClosesAt
	}
	return hhmm >= settings.OpensAt && hhmm <= settings.ClosesAt
}

// MergeItems collapses cart lines that reference the same menu item with an
// identical set of option ids, summing their quantities. Order of option ids
// does not matter.
func MergeItems(items []CheckoutItem) []CheckoutItem {
	var merged []CheckoutItem
	index := make(map[string]int)

	for _, item := range items {
		key := lineKey(item)
		if i, ok := index[key]; ok {
			merged[i].Quantity += item.Quantity
			continue
		}
		index[key] = len(merged)
		merged = append(merged, item)
	}
	return merged
}

func lineKey(item CheckoutItem) string {
	ids := append([]uint(nil), item.OptionIDs...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	parts := make([]string, 0, len(ids)+1)
	parts = append(parts, fmt.Sprint(item.MenuItemID))
	for _, id := range ids {
		parts = append(parts, fmt.Sprint(id))
	}
	return strings.Join(parts, ":")
}

// Checkout validates the submission, persists the customer and order, and
// returns the payment or messaging handoff. Persistence happens before any
// handoff, so a gateway failure leaves a resumable order behind rather than
// corrupting state.
func (cs *CheckoutService) Checkout(req CheckoutRequest) (*CheckoutResult, error) {
	var settings models.StoreSettings
	if err := cs.DB.First(&settings).Error; err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	if err := cs.validate(req, settings); err != nil {
		return nil, err
	}

	items := MergeItems(req.Items)
	orderItems, subtotal, err := cs.buildItems(items)
	if err != nil {
		return nil, err
	}

	fee, err := cs.resolveFee(req, settings)
	if err != nil {
		return nil, err
	}
	total := GrandTotal(subtotal, fee)

	phone := utils.NormalizePhone(req.Phone)
	order := models.Order{
		Token:          newOrderToken(cs.Now()),
		CustomerName:   strings.TrimSpace(req.Name),
		CustomerPhone:  phone,
		DeliveryMethod: req.DeliveryMethod,
		PaymentMethod:  req.PaymentMethod,
		Subtotal:       subtotal.InexactFloat64(),
		DeliveryFee:    fee.InexactFloat64(),
		Total:          total.InexactFloat64(),
		Observations:   req.Observations,
		Status:         models.OrderStatusPending,
		Items:          orderItems,
	}
	if req.DeliveryMethod == models.DeliveryMethodDelivery {
		order.Street = req.Street
		order.Number = req.Number
		order.Complement = req.Complement
		order.Neighborhood = req.Neighborhood
	}
	// Test submissions land directly in cancelled so they never reach the
	// kitchen queue, but are still recorded.
	if settings.TestMode {
		order.Status = models.OrderStatusCancelled
		order.TestOrder = true
	}

	err = cs.DB.Transaction(func(tx *gorm.DB) error {
		if err := upsertCustomer(tx, phone, req); err != nil {
			return err
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		if order.Status == models.OrderStatusPending {
			return ConsumeStock(tx, order.Items)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &CheckoutResult{Order: order}

	online := req.PaymentMethod == models.PaymentMethodPix || req.PaymentMethod == models.PaymentMethodCard
	if online && settings.OnlinePaymentsEnabled && cs.Gateway != nil && !settings.TestMode {
		pref, err := cs.Gateway.CreatePreference(order)
		if err != nil {
			// Order already persisted; surface the failure so the
			// storefront can retry the handoff.
			return result, fmt.Errorf("create payment preference: %w", err)
		}
		if pref.RedirectURL != "" {
			result.RedirectURL = pref.RedirectURL
			return result, nil
		}
	}

	result.WhatsAppURL = BuildWhatsAppLink(settings, order)
	return result, nil
}

func (cs *CheckoutService) validate(req CheckoutRequest, settings models.StoreSettings) error {
	if strings.TrimSpace(req.Name) == "" {
		return ErrNameRequired
	}
	if utils.NormalizePhone(req.Phone) == "" {
		return ErrPhoneRequired
	}
	if len(req.Items) == 0 {
		return ErrEmptyCart
	}
	switch req.DeliveryMethod {
	case models.DeliveryMethodDelivery:
		if req.Street == "" || req.Number == "" || req.Neighborhood == "" {
			return ErrAddressRequired
		}
	case models.DeliveryMethodPickup:
	default:
		return ErrInvalidMethod
	}
	switch req.PaymentMethod {
	case models.PaymentMethodPix, models.PaymentMethodCard, models.PaymentMethodCash:
	default:
		return ErrInvalidPayment
	}
	for i, item := range req.Items {
		if item.Quantity < 1 {
			return fmt.Errorf("items[%d]: %w", i, ErrInvalidQuantity)
		}
	}
	if !StoreOpen(settings, cs.Now()) {
		return ErrStoreClosed
	}
	return nil
}

// buildItems resolves each cart line against the menu, re-validates the
// option choices per linked group and freezes names and prices into order
// rows. Returns the priced lines' subtotal.
func (cs *CheckoutService) buildItems(items []CheckoutItem) ([]models.OrderItem, decimal.Decimal, error) {
	var orderItems []models.OrderItem
	var lines []PricedLine

	for i, item := range items {
		var menuItem models.MenuItem
		if err := cs.DB.Preload("OptionGroups").Preload("OptionGroups.Options").
			First(&menuItem, item.MenuItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, decimal.Zero, fmt.Errorf("items[%d]: %w", i, ErrItemNotFound)
			}
			return nil, decimal.Zero, fmt.Errorf("items[%d]: %w", i, err)
		}
		if !menuItem.Available {
			return nil, decimal.Zero, fmt.Errorf("items[%d] %s: %w", i, menuItem.Name, ErrItemUnavailable)
		}

		chosenByGroup, err := resolveOptions(menuItem, item.OptionIDs)
		if err != nil {
			return nil, decimal.Zero, fmt.Errorf("items[%d]: %w", i, err)
		}
		for _, group := range menuItem.OptionGroups {
			if err := ValidateChoices(group, chosenByGroup[group.ID]); err != nil {
				return nil, decimal.Zero, fmt.Errorf("items[%d]: %w", i, err)
			}
		}

		var optionRows []models.OrderItemOption
		var optionPrices []decimal.Decimal
		for _, group := range menuItem.OptionGroups {
			for _, opt := range chosenByGroup[group.ID] {
				optionRows = append(optionRows, models.OrderItemOption{
					OptionID: opt.ID,
					Name:     opt.Name,
					Price:    opt.AdditionalPrice,
				})
				optionPrices = append(optionPrices, decimal.NewFromFloat(opt.AdditionalPrice))
			}
		}

		unit := LineTotal(decimal.NewFromFloat(menuItem.Price), optionPrices)
		lines = append(lines, PricedLine{UnitPrice: unit, Quantity: item.Quantity})
		orderItems = append(orderItems, models.OrderItem{
			MenuItemID: menuItem.ID,
			Name:       menuItem.Name,
			UnitPrice:  unit.InexactFloat64(),
			Quantity:   item.Quantity,
			Options:    optionRows,
		})
	}

	return orderItems, CartSubtotal(lines), nil
}

// resolveOptions maps the submitted option ids onto the item's linked groups.
// An id that belongs to none of the linked groups is rejected.
func resolveOptions(menuItem models.MenuItem, optionIDs []uint) (map[uint][]models.Option, error) {
	byID := make(map[uint]models.Option)
	for _, group := range menuItem.OptionGroups {
		for _, opt := range group.Options {
			byID[opt.ID] = opt
		}
	}

	chosen := make(map[uint][]models.Option)
	for _, id := range optionIDs {
		opt, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("option %d: %w", id, ErrUnknownOption)
		}
		chosen[opt.GroupID] = append(chosen[opt.GroupID], opt)
	}
	return chosen, nil
}

func (cs *CheckoutService) resolveFee(req CheckoutRequest, settings models.StoreSettings) (decimal.Decimal, error) {
	pickup := req.DeliveryMethod == models.DeliveryMethodPickup
	if pickup {
		return DeliveryFee(true, decimal.Zero, false, false)
	}

	var neighborhood models.Neighborhood
	err := cs.DB.Where("name = ?", req.Neighborhood).First(&neighborhood).Error
	found := err == nil
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, err
	}
	return DeliveryFee(false, decimal.NewFromFloat(neighborhood.Fee), found, settings.RejectUnknownNeighborhood)
}

func upsertCustomer(tx *gorm.DB, phone string, req CheckoutRequest) error {
	customer := models.Customer{Phone: phone}
	if err := tx.Where(models.Customer{Phone: phone}).FirstOrCreate(&customer).Error; err != nil {
		return err
	}
	customer.Name = strings.TrimSpace(req.Name)
	if req.DeliveryMethod == models.DeliveryMethodDelivery {
		customer.Street = req.Street
		customer.Number = req.Number
		customer.Complement = req.Complement
		customer.Neighborhood = req.Neighborhood
		customer.CEP = req.CEP
	}
	return tx.Save(&customer).Error
}

// newOrderToken builds the time-based unique order token, e.g.
// "20260901-183000-9f86d081".
func newOrderToken(now time.Time) string {
	return fmt.Sprintf("%s-%s", now.Format("20060102-150405"), uuid.NewString()[:8])
}

// IsCheckoutValidationError reports whether err is a submission problem the
// storefront should show to the customer (HTTP 400) rather than a server
// fault.
func IsCheckoutValidationError(err error) bool {
	return errors.Is(err, ErrNameRequired) ||
		errors.Is(err, ErrPhoneRequired) ||
		errors.Is(err, ErrEmptyCart) ||
		errors.Is(err, ErrAddressRequired) ||
		errors.Is(err, ErrInvalidMethod) ||
		errors.Is(err, ErrInvalidPayment) ||
		errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrStoreClosed) ||
		errors.Is(err, ErrItemNotFound) ||
		errors.Is(err, ErrItemUnavailable) ||
		errors.Is(err, ErrUnknownOption) ||
		errors.Is(err, ErrUnknownNeighborhood) ||
		errors.Is(err, ErrBelowMinimum) ||
		errors.Is(err, ErrMaxReached) ||
		errors.Is(err, ErrOptionUnavailable) ||
		errors.Is(err, ErrOptionNotInGroup)
}
