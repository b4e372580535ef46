package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Residentia-pg/residentia-backend/models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return db, mock
}

func TestCreateBookingFallsBackToRent(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "properties"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "rent_amount"}).
			AddRow(3, 1, 9500))
	mock.ExpectQuery(`INSERT INTO "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	zero := 0.0
	booking, err := NewBookingService(db).Create(BookingInput{
		PropertyID:  3,
		TenantName:  "Ravi Kumar",
		TenantEmail: "Ravi.Kumar@Example.com",
		TenantPhone: "9876543210",
		Amount:      &zero,
	}, nil, nil)

	require.NoError(t, err)
	assert.Equal(t, 9500.0, booking.Amount)
	assert.Equal(t, "ravi.kumar@example.com", booking.TenantEmail)
	assert.Equal(t, models.BookingStatusPending, booking.Status)
	assert.Equal(t, models.PaymentStatusPending, booking.PaymentStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingPropertyNotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "properties"`).
		WillReturnError(gorm.ErrRecordNotFound)

	_, err := NewBookingService(db).Create(BookingInput{
		PropertyID:  99,
		TenantName:  "Ravi Kumar",
		TenantEmail: "ravi@example.com",
		TenantPhone: "9876543210",
	}, nil, nil)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelBookingIsIdempotent(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).
			AddRow(7, models.BookingStatusConfirmed))
	mock.ExpectExec(`UPDATE "bookings" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	service := NewBookingService(db)
	booking, err := service.Cancel(7)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, booking.Status)

	// second cancel finds the booking already cancelled and writes nothing
	mock.ExpectQuery(`SELECT \* FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).
			AddRow(7, models.BookingStatusCancelled))

	booking, err = service.Cancel(7)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, booking.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRestoreBookingConfirms(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).
			AddRow(7, models.BookingStatusCancelled))
	mock.ExpectExec(`UPDATE "bookings" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	booking, err := NewBookingService(db).Restore(7)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, booking.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateBookingContactFrozenOnceCaptured(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "razorpay_payment_id"}).
			AddRow(7, models.BookingStatusConfirmed, "pay_abc123"))

	email := "newmail@example.com"
	_, err := NewBookingService(db).Update(7, BookingUpdateInput{TenantEmail: &email})

	assert.ErrorIs(t, err, ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateBookingNotesAllowedAfterPayment(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "razorpay_payment_id"}).
			AddRow(7, models.BookingStatusConfirmed, "pay_abc123"))
	mock.ExpectExec(`UPDATE "bookings" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	notes := "late arrival"
	checkOut := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	booking, err := NewBookingService(db).Update(7, BookingUpdateInput{
		Notes:        &notes,
		CheckOutDate: &checkOut,
	})

	require.NoError(t, err)
	assert.Equal(t, "late arrival", booking.Notes)
	assert.NoError(t, mock.ExpectationsWereMet())
}
