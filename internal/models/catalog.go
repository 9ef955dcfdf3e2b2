package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Product struct {
	Base
	Name        string                      `gorm:"uniqueIndex;not null"     json:"name"`
	Brand       string                      `gorm:"not null"                 json:"brand"`
	Description string                      `json:"desc"`
	Price       float64                     `gorm:"not null;check:price>=0"  json:"price"`
	Discount    float64                     `gorm:"not null;default:0"       json:"discount"`
	Sold        int                         `gorm:"not null;default:0"       json:"sold"`
	Images      datatypes.JSONSlice[string] `json:"images"`
	CategoryID  uuid.UUID                   `gorm:"type:uuid;index;not null" json:"category_id"`
	Category    *Category                   `json:"category,omitempty"`
	Stock       int                         `gorm:"not null;default:0"       json:"stock"`
	Ratings     float64                     `gorm:"not null;default:0"       json:"ratings"`
	ReviewCount int                         `gorm:"not null;default:0"       json:"review_count"`
	Tags        []Tag                       `gorm:"many2many:product_tags"   json:"tags,omitempty"`
	Reviews     []Review                    `json:"reviews,omitempty"`
}

type Category struct {
	Base
	Name        string     `gorm:"not null"        json:"name"`
	Description string     `gorm:"not null"        json:"desc"`
	ParentID    *uuid.UUID `gorm:"type:uuid;index" json:"parent_id"`
	Level       int        `gorm:"not null;default:0" json:"level"`
}

type Tag struct {
	Base
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

func NormalizeTag(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

type Review struct {
	Base
	ProductID  uuid.UUID  `gorm:"type:uuid;uniqueIndex:idx_review_product_user;not null" json:"product_id"`
	UserID     uuid.UUID  `gorm:"type:uuid;uniqueIndex:idx_review_product_user;not null" json:"user_id"`
	OrderID    *uuid.UUID `gorm:"type:uuid"                      json:"order_id,omitempty"`
	Rating     int        `gorm:"not null;check:rating BETWEEN 1 AND 5" json:"rating"`
	Comment    string     `json:"comment"`
	IsAccepted bool       `gorm:"not null;default:false"         json:"is_accepted"`
}
