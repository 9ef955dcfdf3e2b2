package models

import "gorm.io/datatypes"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	Base
	Username      string                      `gorm:"uniqueIndex;size:20;not null" json:"username"`
	Email         string                      `gorm:"uniqueIndex;not null"         json:"email"`
	PasswordHash  string                      `gorm:"not null"                     json:"-"`
	Avatar        string                      `json:"avatar,omitempty"`
	Role          string                      `gorm:"not null;default:user"        json:"role"`
	Addresses     datatypes.JSONSlice[string] `json:"addresses"`
	Favorites     datatypes.JSONSlice[string] `json:"favorites"`
	Coupons       datatypes.JSONSlice[string] `json:"coupons"`
	CreditBalance float64                     `gorm:"not null;default:0"           json:"credit_balance"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
