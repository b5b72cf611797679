package notify

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Domenick1991/guesthouse/internal/kafka"
)

// Sender tells a host what happened to a booking. Delivery is a line on the
// configured writer; a mail or SMS gateway would sit behind the same method.
type Sender struct {
	out io.Writer
}

func NewSender() *Sender {
	return &Sender{out: os.Stdout}
}

func NewSenderTo(out io.Writer) *Sender {
	return &Sender{out: out}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	_, err := fmt.Fprintln(s.out, Message(event))
	return err
}

// Message renders the notification text for an event.
func Message(event kafka.BookingEvent) string {
	switch event.Type {
	case kafka.EventBookingCreated:
		return fmt.Sprintf("new booking %s: %s stays %s → %s", event.BookingID, event.Name, event.CheckInDate, event.CheckOutDate)
	case kafka.EventBookingUpdated:
		return fmt.Sprintf("booking %s changed: %s stays %s → %s", event.BookingID, event.Name, event.CheckInDate, event.CheckOutDate)
	case kafka.EventBookingPaymentChanged:
		return fmt.Sprintf("booking %s of %s is now %s", event.BookingID, event.Name, event.PaymentStatus)
	case kafka.EventBookingDeleted:
		return fmt.Sprintf("booking %s of %s was removed", event.BookingID, event.Name)
	default:
		return fmt.Sprintf("booking %s: %s", event.BookingID, event.Type)
	}
}
