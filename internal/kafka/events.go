package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Domenick1991/guesthouse/internal/domain"
	"github.com/segmentio/kafka-go"
)

const (
	EventBookingCreated        = "booking_created"
	EventBookingUpdated        = "booking_updated"
	EventBookingPaymentChanged = "booking_payment_changed"
	EventBookingDeleted        = "booking_deleted"
)

type BookingEvent struct {
	Type          string    `json:"type"`
	BookingID     string    `json:"booking_id"`
	OwnerID       string    `json:"owner_id,omitempty"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone,omitempty"`
	CheckInDate   string    `json:"check_in_date"`
	CheckOutDate  string    `json:"check_out_date"`
	PaymentStatus string    `json:"payment_status"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func NewBookingEvent(eventType string, b *domain.Booking, at time.Time) BookingEvent {
	return BookingEvent{
		Type:          eventType,
		BookingID:     b.ID,
		OwnerID:       b.OwnerID,
		Name:          b.Name,
		Phone:         b.Phone,
		CheckInDate:   b.CheckInDate,
		CheckOutDate:  b.CheckOutDate,
		PaymentStatus: string(b.PaymentStatus),
		OccurredAt:    at,
	}
}

func DecodeBookingEvent(msg kafka.Message) (BookingEvent, error) {
	var event BookingEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return BookingEvent{}, fmt.Errorf("decode booking event at offset %d: %w", msg.Offset, err)
	}
	if event.Type == "" || event.BookingID == "" {
		return BookingEvent{}, fmt.Errorf("booking event at offset %d is missing type or booking id", msg.Offset)
	}
	return event, nil
}
