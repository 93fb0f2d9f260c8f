package mq

// Asynq task names.
const (
	TaskResetDailyOrders = "delivery:reset_daily"
	TaskRotateSigningKey = "auth:rotate_key"
)

// OrderPlacedEvent is published to Kafka once the placement saga commits.
type OrderPlacedEvent struct {
	OrderID     string   `json:"order_id"`
	CustomerID  string   `json:"customer_id"`
	VendorIDs   []string `json:"vendor_ids"`
	TotalAmount float64  `json:"total_amount"`
	PlacedAt    int64    `json:"placed_at"`
}
