package models

// MenuItem is a dish or drink on the restaurant menu, owned by the
// webhook backend and cached in memory for a short TTL.
type MenuItem struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       int    `json:"price"`
	Category    string `json:"category"`
	ImageURL    string `json:"image_url,omitempty"`
	Available   bool   `json:"available"`
}

// DeliveryArea is a delivery zone with its flat fee in pesos.
type DeliveryArea struct {
	Name string `json:"name"`
	Fee  int    `json:"fee"`
}

// Client is a customer record kept by the backend for the admin
// client dashboard.
type Client struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Area    string `json:"area,omitempty"`
	Notes   string `json:"notes,omitempty"`
}
