package models

// PYQ is a previous-year-question document available for download.
type PYQ struct {
	BaseModel
	Title   string `json:"title"`
	Subject string `json:"subject"`
	Year    int    `json:"year"`
	FileURL string `json:"fileUrl"`
}
