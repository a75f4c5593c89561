package models

// Book represents a catalog entry managed by administrators.
type Book struct {
	BaseModel
	Title        string  `json:"title"`
	Author       string  `json:"author"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
	Availability bool    `json:"availability"`
}
