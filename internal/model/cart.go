package model

// CartItem is a single line in the cart. The same product may appear twice,
// once bought with cash and once redeemed with points; those are distinct
// lines and never merge. CashPrice and PointsCost are always present and
// resolved through IsRedemption: a redemption line carries a zero CashPrice
// and a cash line carries a zero PointsCost.
type CartItem struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	CashPrice     float64 `json:"cash_price"`
	PointsCost    int     `json:"points_cost"`
	PointsPerUnit int     `json:"points_per_unit"`
	ImageURL      string  `json:"image_url"`
	IsRedemption  bool    `json:"is_redemption"`
	Quantity      int     `json:"quantity"`
}

// SameLine reports whether other belongs to the same cart line, i.e. shares
// the merge identity (ID, IsRedemption).
func (i CartItem) SameLine(other CartItem) bool {
	return i.ID == other.ID && i.IsRedemption == other.IsRedemption
}

// NewCashItem builds a cart line for a cash purchase of the given product.
func NewCashItem(p Product, quantity int) CartItem {
	return CartItem{
		ID:            p.ID,
		Name:          p.Name,
		CashPrice:     p.Price,
		PointsPerUnit: p.Points,
		ImageURL:      p.ImageURL,
		IsRedemption:  false,
		Quantity:      quantity,
	}
}

// NewRedemptionItem builds a cart line paid entirely with loyalty points.
// Redeemed lines contribute no cash and earn no points.
func NewRedemptionItem(p Product, quantity int) CartItem {
	return CartItem{
		ID:           p.ID,
		Name:         p.Name,
		PointsCost:   p.Points,
		ImageURL:     p.ImageURL,
		IsRedemption: true,
		Quantity:     quantity,
	}
}

// Totals holds the derived cart figures. MoneyDue is floored once here so
// every surface showing the total renders the same integer amount.
type Totals struct {
	ItemCount    int `json:"item_count"`
	MoneyDue     int `json:"money_due"`
	PointsSpent  int `json:"points_spent"`
	PointsEarned int `json:"points_earned"`
}
