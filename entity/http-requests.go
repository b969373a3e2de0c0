package entity

type FetchRequest struct {
	GroupList string `json:"group_list" validate:"required"`
}

type EnrichRequest struct {
	ApiKey string `json:"api_key"`
}

type ProductsPage struct {
	Page       int               `json:"page"`
	TotalPages int               `json:"total_pages"`
	Products   []ProductRecord   `json:"products"`
	Columns    [][]ProductRecord `json:"columns"`
}

type ProductsSummary struct {
	Total      int             `json:"total"`
	TotalPages int             `json:"total_pages"`
	Enriched   bool            `json:"enriched"`
	Products   []ProductRecord `json:"products"`
}
