package model

// Product is a catalog entry as served by the store backend. Points is the
// loyalty value of the product: points earned per unit on a cash purchase,
// and the redemption cost when the product is claimed with points.
type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Points   int     `json:"points,omitempty"`
	ImageURL string  `json:"image_url"`
}

// Category is a catalog grouping derived from the product list.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
