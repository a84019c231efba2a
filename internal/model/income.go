package model

import "time"

// Income is a single earning record owned by a user.
type Income struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Amount      string    `json:"amount"`
	Source      *string   `json:"source,omitempty"`
	Description *string   `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
