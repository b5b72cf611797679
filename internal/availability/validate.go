package availability

import (
	"fmt"
	"time"
)

// ValidationError is a user-correctable problem with submitted stay dates.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateStay parses both dates and requires at least one night between them.
func ValidateStay(checkIn, checkOut string) (time.Time, time.Time, error) {
	start, err := ParseDate(checkIn)
	if err != nil {
		return time.Time{}, time.Time{}, &ValidationError{Field: "check_in_date", Message: err.Error()}
	}
	end, err := ParseDate(checkOut)
	if err != nil {
		return time.Time{}, time.Time{}, &ValidationError{Field: "check_out_date", Message: err.Error()}
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, &ValidationError{
			Field:   "check_out_date",
			Message: "check-out must be later than check-in",
		}
	}
	return start, end, nil
}
