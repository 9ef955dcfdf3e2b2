package transport

import (
	"time"

	"github.com/google/uuid"

	"github.com/toomajBandad/MoonShop-Backend/internal/models"
	"github.com/toomajBandad/MoonShop-Backend/internal/util"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Avatar   string `json:"avatar"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
	Cart      *models.Cart `json:"cart,omitempty"`
}

type UpdateUserRequest struct {
	Username  *string   `json:"username"`
	Email     *string   `json:"email"`
	Avatar    *string   `json:"avatar"`
	Addresses *[]string `json:"addresses"`
	Favorites *[]string `json:"favorites"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type CreateProductRequest struct {
	Name        string    `json:"name"`
	Brand       string    `json:"brand"`
	Description string    `json:"desc"`
	Price       float64   `json:"price"`
	Discount    float64   `json:"discount"`
	Sold        int       `json:"sold"`
	Images      []string  `json:"images"`
	CategoryID  uuid.UUID `json:"category_id"`
	Stock       int       `json:"stock"`
}

// PatchProductRequest has no rating fields: ratings are derived from reviews.
type PatchProductRequest struct {
	Name        *string    `json:"name"`
	Brand       *string    `json:"brand"`
	Description *string    `json:"desc"`
	Price       *float64   `json:"price"`
	Discount    *float64   `json:"discount"`
	Sold        *int       `json:"sold"`
	Images      *[]string  `json:"images"`
	CategoryID  *uuid.UUID `json:"category_id"`
	Stock       *int       `json:"stock"`
}

type AssignTagsRequest struct {
	Tags []string `json:"tags"`
}

type CreateCategoryRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"desc"`
	ParentID    *uuid.UUID `json:"parent_id"`
}

// PatchCategoryRequest.ParentID: absent keeps the parent, "" makes a root.
type PatchCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"desc"`
	ParentID    *string `json:"parent_id"`
}

type TagRequest struct {
	Name string `json:"name"`
}

type AddLineItemRequest struct {
	UserID    uuid.UUID `json:"user_id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

type SetLineItemRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  *int      `json:"quantity"`
}

type OrderLine struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

type CreateOrderRequest struct {
	UserID          uuid.UUID              `json:"user_id"`
	Items           []OrderLine            `json:"items"`
	ShippingAddress models.ShippingAddress `json:"shipping_address"`
	PaymentMethod   string                 `json:"payment_method"`
}

type StatusRequest struct {
	Status string `json:"status"`
}

type CreateReviewRequest struct {
	ProductID uuid.UUID  `json:"product_id"`
	OrderID   *uuid.UUID `json:"order_id"`
	Rating    int        `json:"rating"`
	Comment   string     `json:"comment"`
}

type PatchReviewRequest struct {
	Rating     *int    `json:"rating"`
	Comment    *string `json:"comment"`
	IsAccepted *bool   `json:"is_accepted"`
}

type ListResponse[T any] struct {
	Data []T           `json:"data"`
	Meta util.PageMeta `json:"meta"`
}
