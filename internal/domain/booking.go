package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

// Toggle flips between unpaid and paid. Unknown values become paid.
func (s PaymentStatus) Toggle() PaymentStatus {
	if s == PaymentStatusPaid {
		return PaymentStatusUnpaid
	}
	return PaymentStatusPaid
}

// Booking is one stay. CheckInDate and CheckOutDate are ISO YYYY-MM-DD dates
// as stored; they are normalized by the availability package before use.
type Booking struct {
	ID            string        `json:"id"`
	OwnerID       string        `json:"owner_id,omitempty"`
	Name          string        `json:"name"`
	Phone         string        `json:"phone,omitempty"`
	CheckInDate   string        `json:"check_in_date"`
	CheckOutDate  string        `json:"check_out_date"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
