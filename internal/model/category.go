package model

// Category is a shared expense category. Categories are global,
// not per-user; only expenses reference them.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
