package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/guesthouse/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bookingColumnNames = []string{"id", "owner_id", "name", "phone", "check_in_date", "check_out_date", "payment_status", "created_at", "updated_at"}

func TestNewBookingRepository(t *testing.T) {
	pool := &pgxpool.Pool{}
	repo := NewBookingRepository(pool)
	assert.NotNil(t, repo)
}

func TestBookingRepository_List(t *testing.T) {
	db, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	db.ExpectQuery(`to_char\(check_in_date, 'YYYY-MM-DD'\).+FROM bookings WHERE owner_id=\$1 ORDER BY check_in_date`).
		WithArgs("host-1").
		WillReturnRows(pgxmock.NewRows(bookingColumnNames).
			AddRow("b-1", "host-1", "Alice", "555", "2024-03-10", "2024-03-12", domain.PaymentStatusPaid, created, created).
			AddRow("b-2", "host-1", "Bob", "", "2024-03-12", "2024-03-15", domain.PaymentStatusUnpaid, created, created))

	bookings, err := NewBookingRepository(db).List(context.Background(), "host-1")

	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, domain.Booking{
		ID:            "b-1",
		OwnerID:       "host-1",
		Name:          "Alice",
		Phone:         "555",
		CheckInDate:   "2024-03-10",
		CheckOutDate:  "2024-03-12",
		PaymentStatus: domain.PaymentStatusPaid,
		CreatedAt:     created,
		UpdatedAt:     created,
	}, bookings[0])
	assert.Equal(t, "b-2", bookings[1].ID)
	assert.NoError(t, db.ExpectationsWereMet())
}

func TestBookingRepository_List_QueryError(t *testing.T) {
	db, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer db.Close()

	db.ExpectQuery(`FROM bookings WHERE owner_id`).WithArgs("").WillReturnError(errors.New("connection reset"))

	_, err = NewBookingRepository(db).List(context.Background(), "")

	assert.EqualError(t, err, "connection reset")
	assert.NoError(t, db.ExpectationsWereMet())
}

func TestBookingRepository_GetByID_NotFound(t *testing.T) {
	db, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer db.Close()

	db.ExpectQuery(`FROM bookings WHERE id=\$1`).WithArgs("missing").WillReturnError(pgx.ErrNoRows)

	_, err = NewBookingRepository(db).GetByID(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, db.ExpectationsWereMet())
}

func TestBookingRepository_Delete(t *testing.T) {
	db, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer db.Close()

	db.ExpectExec(`DELETE FROM bookings WHERE id=\$1`).WithArgs("b-1").WillReturnResult(pgxmock.NewResult("DELETE", 1))
	db.ExpectExec(`DELETE FROM bookings WHERE id=\$1`).WithArgs("b-1").WillReturnResult(pgxmock.NewResult("DELETE", 0))

	repo := NewBookingRepository(db)
	assert.NoError(t, repo.Delete(context.Background(), "b-1"))
	assert.ErrorIs(t, repo.Delete(context.Background(), "b-1"), ErrNotFound)
	assert.NoError(t, db.ExpectationsWereMet())
}
