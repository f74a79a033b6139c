package model

import "time"

// News is one row of the news table.
type News struct {
	ID          int       `json:"id" db:"id"`
	CategoryID  int       `json:"category_id" db:"category_id"`
	Title       string    `json:"title" db:"title"`
	Summary     string    `json:"summary" db:"summary"`
	Content     string    `json:"content" db:"content"`
	Image       string    `json:"image" db:"image"`
	PublishedAt time.Time `json:"published_at" db:"published_at"`
}

// NewsPage is the payload of the in-memory paginated news listing.
type NewsPage struct {
	Message     string `json:"message"`
	Code        int    `json:"code"`
	News        []News `json:"news"`
	CurrentPage int    `json:"currentPage"`
	TotalPages  int    `json:"totalPages"`
}
