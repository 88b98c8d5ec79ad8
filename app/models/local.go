package models

import "time"

// SessionPrefs stores the customer convenience fields (name, phone,
// address) keyed by an anonymous session ID, so the checkout wizard can
// prefill them on a return visit. Convenience data only; the backend
// never sees it.
type SessionPrefs struct {
	SessionID string    `gorm:"primaryKey" json:"session_id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Area      string    `json:"area"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PrintJob logs every ticket dispatch for reprints and debugging. The
// payload itself is not stored, only its size and outcome.
type PrintJob struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderRow  int       `gorm:"index" json:"order_row"`
	Target    string    `json:"target"` // "rawbt" or "browser"
	ByteSize  int       `json:"byte_size"`
	Succeeded bool      `json:"succeeded"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
