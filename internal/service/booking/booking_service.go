package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Domenick1991/guesthouse/internal/availability"
	"github.com/Domenick1991/guesthouse/internal/calendar"
	"github.com/Domenick1991/guesthouse/internal/domain"
	"github.com/Domenick1991/guesthouse/internal/kafka"
	"github.com/Domenick1991/guesthouse/internal/repository"
	"github.com/google/uuid"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	// ErrBusy means another write to the same calendar is in progress.
	ErrBusy = errors.New("calendar is being updated, try again")
)

// ConflictError is returned when the requested stay overlaps existing
// bookings. It names them and carries alternative check-in dates.
type ConflictError struct {
	Conflicts   []domain.Booking
	Suggestions []time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("requested dates conflict with %d booking(s)", len(e.Conflicts))
}

type BookingUseCase interface {
	List(ctx context.Context, ownerID string) ([]domain.Booking, error)
	Get(ctx context.Context, ownerID, id string) (*domain.Booking, error)
	Create(ctx context.Context, ownerID string, input BookingInput) (*domain.Booking, error)
	Update(ctx context.Context, ownerID, id string, input BookingInput) (*domain.Booking, error)
	TogglePayment(ctx context.Context, ownerID, id string) (*domain.Booking, error)
	Delete(ctx context.Context, ownerID, id string) error
	CheckAvailability(ctx context.Context, ownerID string, input AvailabilityInput) (*AvailabilityResult, error)
	Suggest(ctx context.Context, ownerID, start string) ([]time.Time, error)
	Calendar(ctx context.Context, ownerID string, year int, month time.Month) (*calendar.Layout, error)
	BookingsOnDay(ctx context.Context, ownerID, day string) ([]domain.Booking, error)
	Stats(ctx context.Context, ownerID string) (*Stats, error)
}

type Cache interface {
	// GetBookings returns nil on a miss. The version it reports is the one a
	// snapshot read after the miss must be stored under.
	GetBookings(ctx context.Context, ownerID string) ([]domain.Booking, int64, error)
	SetBookings(ctx context.Context, ownerID string, version int64, bookings []domain.Booking) error
	InvalidateBookings(ctx context.Context, ownerID string) error
	AcquireOwnerLock(ctx context.Context, ownerID string, ttl time.Duration) (token string, ok bool, err error)
	ReleaseOwnerLock(ctx context.Context, ownerID, token string) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingInput struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
}

type AvailabilityInput struct {
	CheckInDate  string
	CheckOutDate string
	// ExcludeID leaves one booking out of the check, used while editing it.
	ExcludeID string
}

type AvailabilityResult struct {
	Available   bool
	Conflicts   []domain.Booking
	Suggestions []time.Time
}

type BookingService struct {
	bookings           repository.BookingRepository
	cache              Cache
	producer           Producer
	engine             *calendar.Engine
	bookingTopic       string
	notificationsTopic string
	lockTTL            time.Duration
	horizonDays        int
	maxSuggestions     int
	now                func() time.Time
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

// WithSuggestionLimits sets how far ahead and how many alternative dates are offered.
func WithSuggestionLimits(horizonDays, maxResults int) BookingServiceOption {
	return func(s *BookingService) {
		s.horizonDays = horizonDays
		s.maxSuggestions = maxResults
	}
}

func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

// NewBookingService wires the booking use cases. cache and producer may be nil.
func NewBookingService(
	bookings repository.BookingRepository,
	cache Cache,
	producer Producer,
	engine *calendar.Engine,
	bookingTopic string,
	lockTTL time.Duration,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:       bookings,
		cache:          cache,
		producer:       producer,
		engine:         engine,
		bookingTopic:   bookingTopic,
		lockTTL:        lockTTL,
		horizonDays:    availability.DefaultHorizonDays,
		maxSuggestions: availability.DefaultMaxResults,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	if service.engine == nil {
		service.engine = calendar.NewEngine(calendar.DefaultRowHeight)
	}
	return service
}

func (s *BookingService) List(ctx context.Context, ownerID string) ([]domain.Booking, error) {
	return s.snapshot(ctx, ownerID)
}

func (s *BookingService) Get(ctx context.Context, ownerID, id string) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if b.OwnerID != ownerID {
		return nil, ErrBookingNotFound
	}
	return b, nil
}

func (s *BookingService) Create(ctx context.Context, ownerID string, input BookingInput) (*domain.Booking, error) {
	input, start, end, err := validateInput(input)
	if err != nil {
		return nil, err
	}

	release, err := s.lock(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	defer release()

	if err := s.ensureFree(ctx, ownerID, start, end, ""); err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		ID:            uuid.NewString(),
		OwnerID:       ownerID,
		Name:          input.Name,
		Phone:         input.Phone,
		CheckInDate:   availability.FormatDate(start),
		CheckOutDate:  availability.FormatDate(end),
		PaymentStatus: domain.PaymentStatusUnpaid,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.afterWrite(ctx, kafka.EventBookingCreated, booking)
	return booking, nil
}

func (s *BookingService) Update(ctx context.Context, ownerID, id string, input BookingInput) (*domain.Booking, error) {
	input, start, end, err := validateInput(input)
	if err != nil {
		return nil, err
	}

	current, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	release, err := s.lock(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	defer release()

	if err := s.ensureFree(ctx, ownerID, start, end, current.ID); err != nil {
		return nil, err
	}

	updated := *current
	updated.Name = input.Name
	updated.Phone = input.Phone
	updated.CheckInDate = availability.FormatDate(start)
	updated.CheckOutDate = availability.FormatDate(end)
	if err := s.bookings.Update(ctx, &updated); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	s.afterWrite(ctx, kafka.EventBookingUpdated, &updated)
	return &updated, nil
}

func (s *BookingService) TogglePayment(ctx context.Context, ownerID, id string) (*domain.Booking, error) {
	current, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.bookings.UpdatePaymentStatus(ctx, id, current.PaymentStatus.Toggle())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	s.afterWrite(ctx, kafka.EventBookingPaymentChanged, updated)
	return updated, nil
}

func (s *BookingService) Delete(ctx context.Context, ownerID, id string) error {
	current, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if err := s.bookings.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBookingNotFound
		}
		return err
	}

	s.afterWrite(ctx, kafka.EventBookingDeleted, current)
	return nil
}

// CheckAvailability runs the conflict check without writing anything.
func (s *BookingService) CheckAvailability(ctx context.Context, ownerID string, input AvailabilityInput) (*AvailabilityResult, error) {
	start, end, err := availability.ValidateStay(input.CheckInDate, input.CheckOutDate)
	if err != nil {
		return nil, err
	}
	snapshot, err := s.snapshot(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	conflicts := availability.FindConflicts(start, end, snapshot, input.ExcludeID)
	result := &AvailabilityResult{Available: len(conflicts) == 0, Conflicts: conflicts}
	if !result.Available {
		result.Suggestions = availability.SuggestAvailableStarts(start, snapshot, s.horizonDays, s.maxSuggestions)
	}
	return result, nil
}

func (s *BookingService) Suggest(ctx context.Context, ownerID, start string) ([]time.Time, error) {
	from, err := availability.ParseDate(start)
	if err != nil {
		return nil, &availability.ValidationError{Field: "start", Message: err.Error()}
	}
	snapshot, err := s.snapshot(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return availability.SuggestAvailableStarts(from, snapshot, s.horizonDays, s.maxSuggestions), nil
}

func (s *BookingService) Calendar(ctx context.Context, ownerID string, year int, month time.Month) (*calendar.Layout, error) {
	if month < time.January || month > time.December {
		return nil, &availability.ValidationError{Field: "month", Message: "month must be between 1 and 12"}
	}
	snapshot, err := s.snapshot(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	layout := s.engine.LayoutMonth(snapshot, year, month)
	return &layout, nil
}

func (s *BookingService) BookingsOnDay(ctx context.Context, ownerID, day string) ([]domain.Booking, error) {
	d, err := availability.ParseDate(day)
	if err != nil {
		return nil, &availability.ValidationError{Field: "date", Message: err.Error()}
	}
	snapshot, err := s.snapshot(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return calendar.BookingsOnDay(snapshot, d), nil
}

// snapshot serves the owner's bookings from the cache when it can. Cache
// failures only cost a database read.
func (s *BookingService) snapshot(ctx context.Context, ownerID string) ([]domain.Booking, error) {
	cacheable := false
	var version int64
	if s.cache != nil {
		cached, v, err := s.cache.GetBookings(ctx, ownerID)
		if err == nil && cached != nil {
			return cached, nil
		}
		if err != nil {
			log.Printf("WARNING: bookings cache read for %q failed: %v", ownerID, err)
		} else {
			cacheable, version = true, v
		}
	}

	bookings, err := s.bookings.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if cacheable {
		if err := s.cache.SetBookings(ctx, ownerID, version, bookings); err != nil {
			log.Printf("WARNING: bookings cache write for %q failed: %v", ownerID, err)
		}
	}
	return bookings, nil
}

// ensureFree checks [start, end) against a fresh read of the owner's bookings.
func (s *BookingService) ensureFree(ctx context.Context, ownerID string, start, end time.Time, excludeID string) error {
	current, err := s.bookings.List(ctx, ownerID)
	if err != nil {
		return err
	}
	conflicts := availability.FindConflicts(start, end, current, excludeID)
	if len(conflicts) == 0 {
		return nil
	}
	return &ConflictError{
		Conflicts:   conflicts,
		Suggestions: availability.SuggestAvailableStarts(start, current, s.horizonDays, s.maxSuggestions),
	}
}

func (s *BookingService) lock(ctx context.Context, ownerID string) (func(), error) {
	if s.cache == nil {
		return func() {}, nil
	}
	token, ok, err := s.cache.AcquireOwnerLock(ctx, ownerID, s.lockTTL)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrBusy
	}
	return func() {
		if err := s.cache.ReleaseOwnerLock(ctx, ownerID, token); err != nil {
			log.Printf("WARNING: release calendar lock for %q: %v", ownerID, err)
		}
	}, nil
}

func (s *BookingService) afterWrite(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.cache != nil {
		if err := s.cache.InvalidateBookings(ctx, booking.OwnerID); err != nil {
			log.Printf("WARNING: invalidate bookings cache for %q: %v", booking.OwnerID, err)
		}
	}
	if err := s.publish(ctx, eventType, booking); err != nil {
		log.Printf("WARNING: failed to publish %s event for booking %s: %v", eventType, booking.ID, err)
	}
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) error {
	if s.producer == nil || s.bookingTopic == "" {
		return nil
	}
	event := kafka.NewBookingEvent(eventType, booking, s.now())
	if err := s.producer.Publish(ctx, s.bookingTopic, booking.ID, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, booking.ID, event)
	}
	return nil
}

func validateInput(input BookingInput) (BookingInput, time.Time, time.Time, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Phone = strings.TrimSpace(input.Phone)
	if input.Name == "" {
		return input, time.Time{}, time.Time{}, &availability.ValidationError{Field: "name", Message: "name is required"}
	}
	start, end, err := availability.ValidateStay(input.CheckInDate, input.CheckOutDate)
	if err != nil {
		return input, time.Time{}, time.Time{}, err
	}
	return input, start, end, nil
}

var _ BookingUseCase = (*BookingService)(nil)
