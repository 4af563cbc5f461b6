package order

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storesync/backend/internal/domain/shared"
)

// Status is the storefront order status.
type Status string

const (
	// StatusProcessing is the status of a freshly paid order.
	StatusProcessing Status = "processing"
	// StatusPrepared indicates the order has been picked and packed.
	StatusPrepared Status = "prepared"
	// StatusOutForDelivery indicates the order left the branch.
	StatusOutForDelivery Status = "out-for-delivery"
	// StatusCompleted indicates the order was delivered.
	StatusCompleted Status = "completed"
)

// IsValid returns true if the status is one of the known statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusProcessing, StatusPrepared, StatusOutForDelivery, StatusCompleted:
		return true
	default:
		return false
	}
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// DisplayName returns a human-readable name for the status.
func (s Status) DisplayName() string {
	switch s {
	case StatusProcessing:
		return "Processing"
	case StatusPrepared:
		return "Prepared"
	case StatusOutForDelivery:
		return "Out for Delivery"
	case StatusCompleted:
		return "Completed"
	default:
		return string(s)
	}
}

// NextDeliveryStatus returns the status a scan advances to. The chain is
// processing -> prepared -> out-for-delivery -> completed; any other
// current status does not advance.
func (s Status) NextDeliveryStatus() (Status, bool) {
	switch s {
	case StatusProcessing:
		return StatusPrepared, true
	case StatusPrepared:
		return StatusOutForDelivery, true
	case StatusOutForDelivery:
		return StatusCompleted, true
	default:
		return "", false
	}
}

// LineItem is a storefront order line.
type LineItem struct {
	shared.BaseEntity
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	SKU       string          `gorm:"type:varchar(100)"`
	Name      string          `gorm:"type:varchar(200)"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (LineItem) TableName() string {
	return "order_items"
}

// Total returns the line total.
func (l LineItem) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Note is a human-readable annotation on an order. Notes are append-only.
type Note struct {
	shared.BaseEntity
	OrderID uuid.UUID `gorm:"type:uuid;not null;index"`
	Text    string    `gorm:"type:text;not null"`
}

// TableName returns the table name for GORM
func (Note) TableName() string {
	return "order_notes"
}

// Order is a storefront order.
type Order struct {
	shared.BaseEntity
	Number           string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID       uuid.UUID `gorm:"type:uuid;index"` // uuid.Nil for guest orders
	BillingName      string    `gorm:"type:varchar(200)"`
	BillingEmail     string    `gorm:"type:varchar(200)"`
	BillingPhone     string    `gorm:"type:varchar(50)"`
	BillingStreet    string    `gorm:"type:varchar(200)"`
	BillingStreet2   string    `gorm:"type:varchar(200)"`
	BillingCity      string    `gorm:"type:varchar(100)"`
	BillingPostcode  string    `gorm:"type:varchar(20)"`
	ShippingCity     string    `gorm:"type:varchar(100)"`
	ShippingState    string    `gorm:"type:varchar(100)"`
	ShippingPostcode string    `gorm:"type:varchar(20)"`
	ShippingCountry  string    `gorm:"type:varchar(10)"`
	PaymentMethodKey string    `gorm:"type:varchar(50)"`
	Status           Status    `gorm:"type:varchar(30);not null;default:'processing'"`

	Items []LineItem `gorm:"foreignKey:OrderID"`
	Notes []Note     `gorm:"foreignKey:OrderID"`

	// RemoteBranchID caches the branch determined by the last sync attempt.
	// The orchestrator still routes fresh on every trigger.
	RemoteBranchID int `gorm:"not null;default:0"`
	// RemoteReference is the ERP pos_reference of a successfully synced order.
	RemoteReference string `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates an order in the processing state.
func NewOrder(number string, customerID uuid.UUID, items []LineItem) (*Order, error) {
	if strings.TrimSpace(number) == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number is required")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("EMPTY_ORDER", "Order must have at least one line item")
	}
	o := &Order{
		BaseEntity: shared.NewBaseEntity(),
		Number:     number,
		CustomerID: customerID,
		Status:     StatusProcessing,
	}
	for i := range items {
		items[i].BaseEntity = shared.NewBaseEntity()
		items[i].OrderID = o.ID
	}
	o.Items = items
	return o, nil
}

// AddNote appends a note to the order.
func (o *Order) AddNote(text string) {
	o.Notes = append(o.Notes, Note{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    o.ID,
		Text:       text,
	})
	o.UpdatedAt = time.Now()
}

// AdvanceDeliveryStatus moves the order along the delivery chain.
// Returns the new status, or false if the current status does not advance.
func (o *Order) AdvanceDeliveryStatus() (Status, bool) {
	next, ok := o.Status.NextDeliveryStatus()
	if !ok {
		return "", false
	}
	o.Status = next
	o.UpdatedAt = time.Now()
	return next, true
}

// IsGuest reports whether the order was placed without a customer account.
func (o *Order) IsGuest() bool {
	return o.CustomerID == uuid.Nil
}

// Total returns the order total across all lines.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Total())
	}
	return total
}
