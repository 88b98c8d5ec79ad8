package models

// SaleRecord is one row of the backend's historical sales sheet, as
// consumed by the analytics dashboard. Detail uses the same serialized
// item format as Order.Detail.
type SaleRecord struct {
	Date        string `json:"date"` // "2006-01-02"
	Detail      string `json:"detail"`
	Subtotal    int    `json:"subtotal"`
	DeliveryFee int    `json:"delivery_fee"`
	Payment     string `json:"payment"`
}

// Total is the full amount charged for the sale.
func (s *SaleRecord) Total() int {
	return s.Subtotal + s.DeliveryFee
}
