package models

// Category is the {id, name} projection returned by category listings.
type Category struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
