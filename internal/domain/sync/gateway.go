package sync

import "context"

// ---------------------------------------------------------------------------
// Remote ERP Value Objects
// ---------------------------------------------------------------------------

// RemotePartner is a partner record as returned by the ERP search endpoints.
type RemotePartner struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Mobile string `json:"mobile"`
}

// PartnerDraft is the creation payload for a new remote partner. Mobile and
// Phone are both set to the customer's phone number on creation.
type PartnerDraft struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Mobile  string `json:"mobile"`
	Phone   string `json:"phone"`
	Street  string `json:"street"`
	Street2 string `json:"street2"`
	City    string `json:"city"`
	Zip     string `json:"zip"`
}

// RemoteProduct is a product record as returned by the ERP product search.
// DefaultCode is the identifying code matched against storefront SKUs.
type RemoteProduct struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	DefaultCode string `json:"default_code"`
}

// ProductUpdate carries the fields pushed to the ERP on a product change.
type ProductUpdate struct {
	Price       string `json:"price"`
	Description string `json:"description"`
}

// Company is a remote organizational unit (branch). Used only to decorate
// order notes with a human-readable branch name.
type Company struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// PaymentMethod is a remote POS payment method.
type PaymentMethod struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	CompanyID int    `json:"company_id"`
}

// POSConfig is a remote POS session template.
type POSConfig struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	CompanyID int    `json:"company_id"`
}

// OrderLine is a single line of the remote order payload.
type OrderLine struct {
	ProductID         int     `json:"product_id"`
	Qty               int     `json:"qty"`
	LotName           *string `json:"lot_name"`
	DiscountByPercent int     `json:"discount_by_percent"`
}

// OrderDraft is the final remote order payload.
type OrderDraft struct {
	SessionID       int         `json:"pos_session_id"`
	PricelistID     int         `json:"pricelist_id"`
	PaymentMethodID int         `json:"payment_method_id"`
	PartnerID       int         `json:"partner_id"`
	Lines           []OrderLine `json:"lines"`
}

// ---------------------------------------------------------------------------
// Gateway Port
// ---------------------------------------------------------------------------

// Gateway is the port onto the remote ERP/POS backend. The concrete HTTP
// client lives in the infrastructure layer.
//
// Search calls use remote substring filters and may over-match; callers own
// the exact-match disambiguation.
type Gateway interface {
	// FindPartnersByPhone searches partners by the mobile field first and
	// falls back to the phone field when the first search returns nothing.
	FindPartnersByPhone(ctx context.Context, phone string) ([]RemotePartner, error)

	// FindPartnersByEmail searches partners by email substring.
	FindPartnersByEmail(ctx context.Context, email string) ([]RemotePartner, error)

	// CreatePartner creates a partner and returns the new remote id.
	// Returns ErrCreateResponseUnparseable when the response shape is
	// unrecognized.
	CreatePartner(ctx context.Context, draft PartnerDraft) (int, error)

	// FindProductsBySKU searches products whose code contains the SKU.
	FindProductsBySKU(ctx context.Context, sku string) ([]RemoteProduct, error)

	// UpdateProduct pushes price/description changes for the given SKU.
	UpdateProduct(ctx context.Context, sku string, update ProductUpdate) error

	// CreateSession opens a POS session for the given config template and
	// returns the session id.
	CreateSession(ctx context.Context, configID int) (int, error)

	// CreateOrder submits the order and returns the remote POS reference.
	CreateOrder(ctx context.Context, draft OrderDraft) (string, error)

	// ListCompanies lists remote branches. Best-effort; used for notes only.
	ListCompanies(ctx context.Context) ([]Company, error)

	// ListPOSConfigs lists all POS session templates, following pagination.
	ListPOSConfigs(ctx context.Context) ([]POSConfig, error)

	// ListPaymentMethods lists payment methods, optionally filtered by
	// company, following pagination.
	ListPaymentMethods(ctx context.Context, companyID int) ([]PaymentMethod, error)
}
