package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/guesthouse/internal/domain"
	"github.com/jackc/pgx/v5"
)

var ErrNotFound = errors.New("record not found")

type BookingRepository interface {
	List(ctx context.Context, ownerID string) ([]domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	Create(ctx context.Context, booking *domain.Booking) error
	Update(ctx context.Context, booking *domain.Booking) error
	UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) (*domain.Booking, error)
	Delete(ctx context.Context, id string) error
}

type PGBookingRepository struct {
	db DB
}

func NewBookingRepository(db DB) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `id, owner_id, name, phone, to_char(check_in_date, 'YYYY-MM-DD'), to_char(check_out_date, 'YYYY-MM-DD'), payment_status, created_at, updated_at`

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.OwnerID, &b.Name, &b.Phone, &b.CheckInDate, &b.CheckOutDate, &b.PaymentStatus, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// List returns the bookings of one owner ordered by check-in. An empty
// ownerID selects the bookings that have no owner.
func (r *PGBookingRepository) List(ctx context.Context, ownerID string) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE owner_id=$1 ORDER BY check_in_date, created_at`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	return scanBooking(r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id))
}

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	return r.db.QueryRow(ctx, `INSERT INTO bookings (id, owner_id, name, phone, check_in_date, check_out_date, payment_status)
		VALUES ($1, $2, $3, $4, $5::date, $6::date, $7)
		RETURNING created_at, updated_at`,
		booking.ID, booking.OwnerID, booking.Name, booking.Phone, booking.CheckInDate, booking.CheckOutDate, booking.PaymentStatus).
		Scan(&booking.CreatedAt, &booking.UpdatedAt)
}

// Update rewrites the editable fields. Owner and payment status are kept.
func (r *PGBookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	updated, err := scanBooking(r.db.QueryRow(ctx, `UPDATE bookings
		SET name=$1, phone=$2, check_in_date=$3::date, check_out_date=$4::date, updated_at=now()
		WHERE id=$5
		RETURNING `+bookingColumns,
		booking.Name, booking.Phone, booking.CheckInDate, booking.CheckOutDate, booking.ID))
	if err != nil {
		return err
	}
	*booking = *updated
	return nil
}

func (r *PGBookingRepository) UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) (*domain.Booking, error) {
	return scanBooking(r.db.QueryRow(ctx, `UPDATE bookings SET payment_status=$1, updated_at=now() WHERE id=$2 RETURNING `+bookingColumns, status, id))
}

func (r *PGBookingRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
