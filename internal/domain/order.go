package domain

// OrderKind selects the standard or custom order collection. The wire tag for
// standard orders is "normal".
type OrderKind string

const (
	OrderStandard OrderKind = "normal"
	OrderCustom   OrderKind = "custom"
)

func ValidOrderKind(s string) (OrderKind, bool) {
	switch OrderKind(s) {
	case OrderStandard, OrderCustom:
		return OrderKind(s), true
	}
	return "", false
}

// Order status vocabulary. Closed set; any status is reachable from any
// other, including itself. StatusNone is a render sentinel for standard
// orders with no line items, never a settable value.
const (
	StatusCancelled  = "Cancelled"
	StatusDelivering = "Delivering"
	StatusDelivered  = "Delivered"
	StatusNone       = "N/A"
)

func ValidStatus(s string) bool {
	return s == StatusCancelled || s == StatusDelivering || s == StatusDelivered
}

// StatusCarrier is implemented by both order variants. Standard orders keep
// their status on line-item 0, custom orders on the record itself; callers
// mutate through ApplyStatus instead of branching on the variant.
type StatusCarrier interface {
	Status() string
	ApplyStatus(status string)
}

type OrderItem struct {
	ProductID string `json:"productId,omitempty"`
	Quantity  int    `json:"quantity,omitempty"`
	Status    string `json:"status"`
}

type Order struct {
	ID            string      `json:"_id"`
	UserID        string      `json:"userId"`
	UserNumber    string      `json:"userNumber,omitempty"`
	UserLocation  string      `json:"userLocation,omitempty"`
	TotalPrice    float64     `json:"totalPrice"`
	ProductID     string      `json:"productId,omitempty"`
	Items         []OrderItem `json:"products"`
	CustomMessage string      `json:"cmsg,omitempty"`
}

// Status reports the status of line-item 0, or StatusNone for an order with
// no line items.
func (o *Order) Status() string {
	if len(o.Items) == 0 {
		return StatusNone
	}
	return o.Items[0].Status
}

func (o *Order) ApplyStatus(status string) {
	if len(o.Items) > 0 {
		o.Items[0].Status = status
	}
}

type CustomOrder struct {
	ID           string  `json:"_id"`
	UserID       string  `json:"userId"`
	UserNumber   string  `json:"userNumber,omitempty"`
	UserLocation string  `json:"userLocation,omitempty"`
	TotalPrice   float64 `json:"totalPrice"`
	TshirtColor  string  `json:"tshirtColor,omitempty"`
	ImageURL     string  `json:"imageUrl,omitempty"`
	OrderStatus  string  `json:"status"`
}

func (o *CustomOrder) Status() string { return o.OrderStatus }

func (o *CustomOrder) ApplyStatus(status string) { o.OrderStatus = status }
