package partner

import (
	"strings"

	"github.com/storesync/backend/internal/domain/shared"
)

// Customer is a storefront customer account.
//
// RemotePartnerID is an advisory cache of the matching ERP partner id.
// Resolution always re-queries the remote system, so a stale cache never
// selects an outdated partner at checkout; the cache carries no
// invalidation rule.
type Customer struct {
	shared.BaseEntity
	FirstName string `gorm:"type:varchar(100)"`
	LastName  string `gorm:"type:varchar(100)"`
	Email     string `gorm:"type:varchar(200);index"`
	Phone     string `gorm:"type:varchar(50);index"`
	Street    string `gorm:"type:varchar(200)"`
	Street2   string `gorm:"type:varchar(200)"`
	City      string `gorm:"type:varchar(100)"`
	Postcode  string `gorm:"type:varchar(20)"`

	RemotePartnerID int `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer with at least one contact channel
func NewCustomer(firstName, lastName, email, phone string) (*Customer, error) {
	if strings.TrimSpace(email) == "" && strings.TrimSpace(phone) == "" {
		return nil, shared.NewDomainError("NO_CONTACT", "Customer needs an email or a phone number")
	}
	return &Customer{
		BaseEntity: shared.NewBaseEntity(),
		FirstName:  firstName,
		LastName:   lastName,
		Email:      strings.TrimSpace(email),
		Phone:      strings.TrimSpace(phone),
	}, nil
}

// FullName returns the customer's display name, falling back to the email
// when no name was captured.
func (c *Customer) FullName() string {
	name := strings.TrimSpace(c.FirstName + " " + c.LastName)
	if name == "" {
		return c.Email
	}
	return name
}

// CacheRemotePartner records a resolved remote partner id. Best-effort; not
// required for correctness of the resolution that produced it.
func (c *Customer) CacheRemotePartner(partnerID int) {
	c.RemotePartnerID = partnerID
}
