package handler

// PriceResponse is one api_data row rendered for the dashboard. Decimal
// fields go out as strings so precision survives the JSON round trip.
type PriceResponse struct {
	Date   string `json:"date"`
	Open   string `json:"open"`
	High   string `json:"high"`
	Low    string `json:"low"`
	Close  string `json:"close"`
	Volume string `json:"volume"`
}

// ArticleResponse is one article_data row rendered for the dashboard.
type ArticleResponse struct {
	Date   string `json:"date"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Link   string `json:"link"`
}

// ListResponse wraps a collection with its size.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}
