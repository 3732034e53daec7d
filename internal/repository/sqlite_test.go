package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/travel-booking/internal/config"
	"github.com/iliyamo/travel-booking/internal/database"
	"github.com/iliyamo/travel-booking/internal/model"
)

func newSQLite(t *testing.T) (*UserRepo, *BookingRepo) {
	t.Helper()
	db, err := database.Open(config.Config{DBDriver: "sqlite3", DBPath: filepath.Join(t.TempDir(), "booking.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(context.Background(), db, "sqlite3"))
	return NewUserRepo(db), NewBookingRepo(db)
}

func TestSQLiteUsers(t *testing.T) {
	users, _ := newSQLite(t)
	ctx := context.Background()

	id, err := users.Create(ctx, model.User{Name: "Alice", Email: "Alice@X.io", PasswordHash: "h", Role: model.RoleUser})
	require.NoError(t, err)

	_, err = users.Create(ctx, model.User{Name: "Other", Email: "alice@x.io", PasswordHash: "h", Role: model.RoleUser})
	assert.ErrorIs(t, err, ErrEmailExists)

	u, err := users.GetByEmail(ctx, "ALICE@x.io")
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)

	_, err = users.GetByID(ctx, 404)
	assert.ErrorIs(t, err, ErrNotFound)

	n, err := users.CountByRole(ctx, model.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSQLiteBookingsRoundTrip(t *testing.T) {
	users, bookings := newSQLite(t)
	ctx := context.Background()
	uid, err := users.Create(ctx, model.User{Name: "Alice", Email: "alice@x.io", PasswordHash: "h", Role: model.RoleUser})
	require.NoError(t, err)

	older := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	newer := older.Add(2 * time.Hour)
	trip := model.Booking{
		UserID: uid, TransportType: "bus", FromPlace: "A", ToPlace: "B", Date: "2025-03-02",
		PassengerName: "Alice", Phone: "9999", Email: "alice@x.io", SeatNo: "12", Fare: 450.5,
	}

	first := trip
	first.CreatedAt = older
	firstID, err := bookings.Create(ctx, first)
	require.NoError(t, err)
	second := trip
	second.CreatedAt = newer
	secondID, err := bookings.Create(ctx, second)
	require.NoError(t, err)

	v, err := bookings.GetByID(ctx, firstID)
	require.NoError(t, err)
	assert.True(t, older.Equal(v.CreatedAt), "created_at %v", v.CreatedAt)
	assert.Equal(t, model.StatusPendingVerification, v.Status)
	assert.Equal(t, "Alice", v.UserName)
	assert.Equal(t, 450.5, v.Fare)
	assert.Nil(t, v.QRCodeURL)

	list, err := bookings.ListByUser(ctx, uid)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, secondID, list[0].ID)
	assert.Equal(t, firstID, list[1].ID)

	require.NoError(t, bookings.SetQRCode(ctx, firstID, "/api/uploads/qr_codes/booking_1.png"))
	require.NoError(t, bookings.SetQRCode(ctx, firstID, "/api/uploads/qr_codes/other.png"))
	require.NoError(t, bookings.UpdatePaymentProof(ctx, firstID, "/p1.png"))
	require.NoError(t, bookings.UpdatePaymentProof(ctx, firstID, "/p2.png"))
	require.NoError(t, bookings.UpdateStatus(ctx, firstID, model.StatusConfirmed))

	v, err = bookings.GetByID(ctx, firstID)
	require.NoError(t, err)
	require.NotNil(t, v.QRCodeURL)
	assert.Equal(t, "/api/uploads/qr_codes/booking_1.png", *v.QRCodeURL)
	require.NotNil(t, v.PaymentProofURL)
	assert.Equal(t, "/p2.png", *v.PaymentProofURL)
	assert.Equal(t, model.StatusConfirmed, v.Status)

	_, err = bookings.GetByID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}
