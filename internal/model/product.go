package model

// Product is one row of the products table.
//
// Color, Tag and Size are packed columns holding comma-separated lookup ids.
type Product struct {
	ID          int    `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	CategoryID  int    `json:"cat_id" db:"cat_id"`
	Price       int    `json:"price" db:"price"`
	Color       string `json:"color" db:"color"`
	Tag         string `json:"tag" db:"tag"`
	Size        string `json:"size" db:"size"`
	Image       string `json:"image" db:"image"`
	Description string `json:"description" db:"description"`
}

// PageResult is one page of a filtered listing. Total counts the whole
// filtered set, not the page.
type PageResult[T any] struct {
	Total   int `json:"total"`
	PerPage int `json:"perpage"`
	Page    int `json:"page"`
	Data    []T `json:"data"`
}

// Lookup is an entry of a categorical lookup table (category, color, tag, size).
type Lookup struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
