package models

import "time"

// OrderStatus represents the status of an order as stored in the backend.
// The set is open-ended by convention; these are the values the dashboards
// know how to display and transition between.
type OrderStatus string

const (
	StatusPidiendo   OrderStatus = "pidiendo"
	StatusConfirmado OrderStatus = "confirmado"
	StatusImpreso    OrderStatus = "impreso"
	StatusPreparando OrderStatus = "preparando"
	StatusEnCamino   OrderStatus = "en camino"
	StatusEntregado  OrderStatus = "entregado"
)

func (s OrderStatus) String() string {
	return string(s)
}

// KnownStatuses lists the statuses the order dashboard cycles through,
// in kitchen order.
var KnownStatuses = []OrderStatus{
	StatusPidiendo,
	StatusConfirmado,
	StatusImpreso,
	StatusPreparando,
	StatusEnCamino,
	StatusEntregado,
}

// Order is a customer order as the webhook backend stores it. The backend
// is the source of truth; the application only keeps a transient snapshot
// per poll cycle and mutates it optimistically pending confirmation.
type Order struct {
	Row         int         `json:"row"`
	Timestamp   string      `json:"timestamp"`
	Name        string      `json:"name"`    // customer name or table name
	Phone       string      `json:"phone"`   // phone or table number
	Address     string      `json:"address"` // street address or table label
	Detail      string      `json:"detail"`  // serialized item list, see app/ticket parser
	Subtotal    int         `json:"subtotal"`
	DeliveryFee int         `json:"delivery_fee"`
	Payment     string      `json:"payment"`
	Status      OrderStatus `json:"status"`
}

// Total is the amount the customer pays: restaurant subtotal plus the
// delivery fee for the customer's zone.
func (o *Order) Total() int {
	return o.Subtotal + o.DeliveryFee
}

// IsDelivery reports whether the order ships to an address rather than
// being served at a table. Table orders carry a table label instead of a
// street address and no delivery fee.
func (o *Order) IsDelivery() bool {
	return o.DeliveryFee > 0 || (o.Address != "" && o.Phone != "")
}

// CheckoutRequest is what the customer-facing checkout wizard submits.
type CheckoutRequest struct {
	Name     string         `json:"name"`
	Phone    string         `json:"phone"`
	Address  string         `json:"address"`
	Area     string         `json:"area"`
	Payment  string         `json:"payment"`
	Items    []CheckoutItem `json:"items"`
	Comments string         `json:"comments,omitempty"`
}

// CheckoutItem is a single cart line in a checkout submission.
type CheckoutItem struct {
	Quantity  int    `json:"quantity"`
	Name      string `json:"name"`
	UnitPrice int    `json:"unit_price"`
	Notes     string `json:"notes,omitempty"`
}

// StatusUpdate is the payload for the backend status-update POST.
type StatusUpdate struct {
	Row       int         `json:"row"`
	Status    OrderStatus `json:"status"`
	UpdatedAt time.Time   `json:"updated_at"`
}
