package models

import "time"

// Product is a price-list row. Every row belongs to exactly one user and is
// only ever read or written through queries scoped by that user's id.
// Optional columns are pointers so that NULL survives the round trip.
type Product struct {
	ID             int       `json:"id"`
	ArticleNo      string    `json:"article_no"`
	ProductService string    `json:"product_service"`
	InPrice        *float64  `json:"in_price"`
	Price          float64   `json:"price"`
	Unit           *string   `json:"unit"`
	InStock        *int      `json:"in_stock"`
	Description    *string   `json:"description"`
	UserID         int       `json:"user_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
