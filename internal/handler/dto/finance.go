// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"time"

	"github.com/fintrack/fintrack/internal/model"
)

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// RegisterResponse acknowledges a successful registration.
// No token is returned: the client must log in next.
type RegisterResponse struct {
	Message string `json:"message"`
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token string `json:"token"`
}

// CategoryResponse represents a category in API responses.
type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CreateCategoryRequest represents the request body for creating a category.
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// ExpenseRequest represents the request body for creating or updating
// an expense. The owner is never part of the payload.
type ExpenseRequest struct {
	CategoryID  *int64  `json:"category_id,omitempty"`
	Amount      string  `json:"amount"`
	Description *string `json:"description,omitempty"`
	Date        string  `json:"date"`
}

// ExpenseResponse represents an expense in API responses.
type ExpenseResponse struct {
	ID          int64     `json:"id"`
	CategoryID  *int64    `json:"category_id,omitempty"`
	Amount      string    `json:"amount"`
	Description *string   `json:"description,omitempty"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IncomeRequest represents the request body for creating or updating
// an income record.
type IncomeRequest struct {
	Amount      string  `json:"amount"`
	Source      *string `json:"source,omitempty"`
	Description *string `json:"description,omitempty"`
	Date        string  `json:"date"`
}

// IncomeResponse represents an income record in API responses.
type IncomeResponse struct {
	ID          int64     `json:"id"`
	Amount      string    `json:"amount"`
	Source      *string   `json:"source,omitempty"`
	Description *string   `json:"description,omitempty"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ToCategoryResponse converts a Category model to its DTO.
func ToCategoryResponse(c *model.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name}
}

// ToExpenseResponse converts an Expense model to its DTO.
// The owner id is deliberately omitted from responses.
func ToExpenseResponse(e *model.Expense) *ExpenseResponse {
	return &ExpenseResponse{
		ID:          e.ID,
		CategoryID:  e.CategoryID,
		Amount:      e.Amount,
		Description: e.Description,
		Date:        e.Date.Format(time.DateOnly),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// ToIncomeResponse converts an Income model to its DTO.
func ToIncomeResponse(in *model.Income) *IncomeResponse {
	return &IncomeResponse{
		ID:          in.ID,
		Amount:      in.Amount,
		Source:      in.Source,
		Description: in.Description,
		Date:        in.Date.Format(time.DateOnly),
		CreatedAt:   in.CreatedAt,
		UpdatedAt:   in.UpdatedAt,
	}
}
