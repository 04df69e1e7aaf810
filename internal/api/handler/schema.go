package handler

import (
	"time"

	"github.com/renova/storefront/internal/core/domain"
)

// --- Session ---

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Username        string `json:"username" validate:"required,min=3"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	FullName        string `json:"fullName" validate:"required"`
	Phone           string `json:"phone" validate:"required,min=8"`
	BirthDate       string `json:"birthDate" validate:"required"`
}

type registerResponse struct {
	UserID string `json:"userId"`
}

type profileRequest struct {
	Username  string `json:"username" validate:"required,min=3"`
	Email     string `json:"email" validate:"required,email"`
	FullName  string `json:"fullName" validate:"required"`
	Phone     string `json:"phone" validate:"omitempty,min=8"`
	BirthDate string `json:"birthDate"`
	AvatarURL string `json:"avatarUrl" validate:"omitempty,url"`
}

type sessionResponse struct {
	Authenticated bool             `json:"authenticated"`
	User          *domain.Identity `json:"user,omitempty"`
	ExpiresAt     *time.Time       `json:"expiresAt,omitempty"`
}

// --- Cart ---

type addItemRequest struct {
	ProductID   string  `json:"id" validate:"required"`
	Name        string  `json:"name"`
	Price       float64 `json:"price" validate:"gte=0"`
	MaxQuantity int     `json:"maxQuantity"`
	Image       string  `json:"image"`
	// Quantity defaults to 1 when omitted.
	Quantity *int `json:"quantity"`
}

type updateItemRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

type cartResponse struct {
	Items   []domain.LineItem    `json:"items"`
	Total   float64              `json:"total"`
	Notices []domain.StockNotice `json:"notices,omitempty"`
}
