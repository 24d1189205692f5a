package handlers

import (
	"time"

	"github.com/fakturan-app/pricelist-api/internal/models"
)

type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthUser struct {
	ID        int        `json:"id"`
	Email     string     `json:"email"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

type AuthData struct {
	Token string   `json:"token"`
	User  AuthUser `json:"user"`
}

type CreateProductRequest struct {
	ArticleNo      string   `json:"articleNo"`
	ProductService string   `json:"productService"`
	InPrice        *float64 `json:"inPrice"`
	Price          *float64 `json:"price"`
	Unit           *string  `json:"unit"`
	InStock        *int     `json:"inStock"`
	Description    *string  `json:"description"`
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type ProductListData struct {
	Products   []models.Product `json:"products"`
	Pagination Pagination       `json:"pagination"`
}
