package models

import "time"

type Cart struct {
	ID            int64     `json:"id"`
	UserID        *int64    `json:"user_id"`
	Products      LineItems `json:"products"`
	ShareableCode string    `json:"shareable_code"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type CreateCartRequest struct {
	UserID   *int64    `json:"user_id"`
	Products LineItems `json:"products"`
}

type UpdateCartRequest struct {
	Products LineItems `json:"products"`
}
