package models

import (
	"time"

	"github.com/google/uuid"
)

type Cart struct {
	Base
	UserID uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Items  []CartItem `json:"items"`
}

type CartItem struct {
	Base
	CartID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_cart_product;not null"    json:"cart_id"`
	ProductID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_cart_product;not null"    json:"product_id"`
	Quantity  int       `gorm:"not null;default:1;check:quantity>0"                json:"quantity"`
}

const (
	PaymentPayPal     = "PayPal"
	PaymentCreditCard = "Credit Card"
	PaymentStripe     = "Stripe"
)

const (
	StatusPending   = "Pending"
	StatusConfirmed = "Confirmed"
	StatusShipped   = "Shipped"
	StatusDelivered = "Delivered"
	StatusCancelled = "Cancelled"
)

func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentPayPal, PaymentCreditCard, PaymentStripe:
		return true
	}
	return false
}

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

type ShippingAddress struct {
	FullName   string `json:"full_name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type Order struct {
	Base
	UserID          uuid.UUID       `gorm:"type:uuid;index;not null"           json:"user_id"`
	Items           []OrderItem     `json:"items"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:ship_"      json:"shipping_address"`
	PaymentMethod   string          `gorm:"not null"                           json:"payment_method"`
	TotalPrice      float64         `gorm:"not null;default:0"                 json:"total_price"`
	IsPaid          bool            `gorm:"not null;default:false"             json:"is_paid"`
	PaidAt          *time.Time      `json:"paid_at,omitempty"`
	IsDelivered     bool            `gorm:"not null;default:false"             json:"is_delivered"`
	DeliveredAt     *time.Time      `json:"delivered_at,omitempty"`
	Status          string          `gorm:"not null;default:Pending"           json:"status"`
}

// Editable reports whether line items may still change.
func (o *Order) Editable() bool {
	return o.Status == StatusPending && !o.IsPaid
}

type OrderItem struct {
	Base
	OrderID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_order_product;not null" json:"order_id"`
	ProductID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_order_product;not null" json:"product_id"`
	Quantity  int       `gorm:"not null;check:quantity>0"                       json:"quantity"`
	Price     float64   `gorm:"not null"                                        json:"price"`
}
