package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InvoiceStatus represents the payment status of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
)

// Valid reports whether s is one of the known invoice statuses.
func (s InvoiceStatus) Valid() bool {
	return s == InvoiceStatusPending || s == InvoiceStatusPaid
}

// Invoice represents a single billed amount owed by a customer.
// Amount is stored in minor currency units (cents) to avoid floating-point
// rounding error. Date is the ISO 8601 calendar date assigned at creation;
// id and date are immutable after creation.
type Invoice struct {
	ID         string        `gorm:"primaryKey;size:36" json:"id"`
	CustomerID string        `gorm:"size:36;index;not null" json:"customer_id"`
	Customer   *Customer     `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Amount     int64         `gorm:"not null" json:"amount"`
	Status     InvoiceStatus `gorm:"size:20;not null" json:"status"`
	Date       string        `gorm:"size:10;not null;index" json:"date"`
}

// BeforeCreate assigns a server-side UUID when none is set.
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// Customer is read-only from the dashboard's perspective; rows are created
// by seeding only.
type Customer struct {
	ID       string `gorm:"primaryKey;size:36" json:"id"`
	Name     string `gorm:"size:255;not null" json:"name"`
	Email    string `gorm:"size:255;not null" json:"email"`
	ImageURL string `gorm:"size:255;not null" json:"image_url"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Revenue is a pre-aggregated monthly revenue figure, seeded externally.
type Revenue struct {
	Month   string `gorm:"size:4;uniqueIndex;not null" json:"month"`
	Revenue int64  `gorm:"not null" json:"revenue"`
}
