package domain

import "time"

type Recipe struct {
	ID          string
	UserID      string // owner, immutable after creation
	Title       string
	TimeMinutes int
	Price       Price
	Link        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
