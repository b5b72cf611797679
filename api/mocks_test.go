package api

import (
	"context"
	"time"

	"github.com/Domenick1991/guesthouse/internal/calendar"
	"github.com/Domenick1991/guesthouse/internal/domain"
	"github.com/Domenick1991/guesthouse/internal/service/booking"
	"github.com/Domenick1991/guesthouse/internal/service/hosts"
	"github.com/stretchr/testify/mock"
)

// MockBookingUseCase is a mock implementation of booking.BookingUseCase
type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) List(ctx context.Context, ownerID string) ([]domain.Booking, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) Get(ctx context.Context, ownerID, id string) (*domain.Booking, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) Create(ctx context.Context, ownerID string, input booking.BookingInput) (*domain.Booking, error) {
	args := m.Called(ctx, ownerID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) Update(ctx context.Context, ownerID, id string, input booking.BookingInput) (*domain.Booking, error) {
	args := m.Called(ctx, ownerID, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) TogglePayment(ctx context.Context, ownerID, id string) (*domain.Booking, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) Delete(ctx context.Context, ownerID, id string) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *MockBookingUseCase) CheckAvailability(ctx context.Context, ownerID string, input booking.AvailabilityInput) (*booking.AvailabilityResult, error) {
	args := m.Called(ctx, ownerID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.AvailabilityResult), args.Error(1)
}

func (m *MockBookingUseCase) Suggest(ctx context.Context, ownerID, start string) ([]time.Time, error) {
	args := m.Called(ctx, ownerID, start)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]time.Time), args.Error(1)
}

func (m *MockBookingUseCase) Calendar(ctx context.Context, ownerID string, year int, month time.Month) (*calendar.Layout, error) {
	args := m.Called(ctx, ownerID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*calendar.Layout), args.Error(1)
}

func (m *MockBookingUseCase) BookingsOnDay(ctx context.Context, ownerID, day string) ([]domain.Booking, error) {
	args := m.Called(ctx, ownerID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) Stats(ctx context.Context, ownerID string) (*booking.Stats, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Stats), args.Error(1)
}

type MockHostUseCase struct {
	mock.Mock
}

func (m *MockHostUseCase) Register(ctx context.Context, input hosts.RegisterInput) (*domain.Host, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Host), args.Error(1)
}

func (m *MockHostUseCase) Login(ctx context.Context, passcode string) (*hosts.Session, error) {
	args := m.Called(ctx, passcode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hosts.Session), args.Error(1)
}

func (m *MockHostUseCase) Get(ctx context.Context, id string) (*domain.Host, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Host), args.Error(1)
}

func (m *MockHostUseCase) Update(ctx context.Context, id string, input hosts.ProfileInput) (*domain.Host, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Host), args.Error(1)
}

func (m *MockHostUseCase) GuestFormURL(hostID string) (string, error) {
	args := m.Called(hostID)
	return args.String(0), args.Error(1)
}
