package model

// PaymentMethod is the payment selection sent to the store backend. The wire
// values are the Spanish enum the backend expects.
type PaymentMethod string

const (
	PaymentCard PaymentMethod = "tarjeta"
	PaymentCash PaymentMethod = "efectivo"
)

// Valid reports whether the method is one of the accepted enum values.
func (m PaymentMethod) Valid() bool {
	return m == PaymentCard || m == PaymentCash
}

// OrderDraft is the create-order request body. A draft is built fresh per
// submission attempt and never persisted; its lifetime ends at the network
// call. The idempotency key travels as a header, not in the body.
type OrderDraft struct {
	UserID        string        `json:"user_id"`
	Total         int           `json:"total"`
	PointsUsed    int           `json:"points_used"`
	PointsEarned  int           `json:"points_earned"`
	PaymentMethod PaymentMethod `json:"metodoPago"`
	Status        string        `json:"status"`
	OrderItems    []OrderLine   `json:"order_items"`

	IdempotencyKey string `json:"-"`
}

// OrderLine is a single line of the create-order body. Price carries the
// cash price for purchased lines and the points cost for redeemed lines;
// that overloading is the backend's wire contract, not a local model choice.
type OrderLine struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Redeemed  bool    `json:"canjeado"`
}

// NewOrderDraft assembles the request body from a cart snapshot and its
// totals for the given user and payment method.
func NewOrderDraft(userID string, method PaymentMethod, items []CartItem, totals Totals, idempotencyKey string) *OrderDraft {
	lines := make([]OrderLine, len(items))
	for i, item := range items {
		price := item.CashPrice
		if item.IsRedemption {
			price = float64(item.PointsCost)
		}
		lines[i] = OrderLine{
			ProductID: item.ID,
			Quantity:  item.Quantity,
			Price:     price,
			Redeemed:  item.IsRedemption,
		}
	}

	return &OrderDraft{
		UserID:         userID,
		Total:          totals.MoneyDue,
		PointsUsed:     totals.PointsSpent,
		PointsEarned:   totals.PointsEarned,
		PaymentMethod:  method,
		Status:         "pending",
		OrderItems:     lines,
		IdempotencyKey: idempotencyKey,
	}
}
