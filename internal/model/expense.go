package model

import "time"

// Expense is a single spending record owned by a user.
// Amount is a decimal string (e.g. "12.50") mapped to NUMERIC in the store;
// money never travels as a float.
type Expense struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	CategoryID  *int64    `json:"category_id,omitempty"`
	Amount      string    `json:"amount"`
	Description *string   `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
