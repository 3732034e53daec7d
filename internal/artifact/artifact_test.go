package artifact

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/travel-booking/internal/model"
)

func sampleBooking() model.Booking {
	return model.Booking{
		ID: 12, FromPlace: "Delhi", ToPlace: "Agra", Date: "2025-04-01",
		PassengerName: "Alice", SeatNo: "4B", Fare: 1200, TransportType: "train",
		Status: model.StatusPendingVerification,
	}
}

func TestTicketPayloadIsDeterministic(t *testing.T) {
	b := sampleBooking()
	want := "Booking ID: 12\nFrom: Delhi\nTo: Agra\nDate: 2025-04-01\nPassenger: Alice\nSeat: 4B\nFare: ₹1200"
	assert.Equal(t, want, TicketPayload(b))

	b.Phone = "changed"
	assert.Equal(t, want, TicketPayload(b))
}

func TestSaveTicketQR(t *testing.T) {
	fs, err := NewFileStore(t.TempDir(), "/api/uploads/")
	require.NoError(t, err)

	url, err := fs.SaveTicketQR(12, TicketPayload(sampleBooking()))
	require.NoError(t, err)
	assert.Equal(t, "/api/uploads/qr_codes/booking_12.png", url)

	data, err := os.ReadFile(filepath.Join(fs.Root, KindQRCodes, "booking_12.png"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
}

func TestSavePaymentProofAndResolve(t *testing.T) {
	fs, err := NewFileStore(t.TempDir(), "/api/uploads")
	require.NoError(t, err)

	url1, err := fs.SavePaymentProof(3, "jpg", strings.NewReader("first"))
	require.NoError(t, err)
	url2, err := fs.SavePaymentProof(3, "jpg", strings.NewReader("second"))
	require.NoError(t, err)
	assert.NotEqual(t, url1, url2)
	assert.True(t, strings.HasPrefix(url1, "/api/uploads/payments/payment_3_"))
	assert.True(t, strings.HasSuffix(url1, ".jpg"))

	path, err := fs.Resolve(KindPayments, filepath.Base(url2))
	require.NoError(t, err)
	data, _ := os.ReadFile(path)
	assert.Equal(t, "second", string(data))
}

func TestResolveRejectsUnsafeNames(t *testing.T) {
	fs, err := NewFileStore(t.TempDir(), "/api/uploads")
	require.NoError(t, err)

	for _, tc := range []struct{ kind, name string }{
		{"other", "x.png"},
		{KindPayments, "../secret"},
		{KindPayments, ".hidden"},
		{KindPayments, ""},
		{KindQRCodes, "missing.png"},
	} {
		_, err := fs.Resolve(tc.kind, tc.name)
		assert.ErrorIs(t, err, ErrNotFound, "%s/%s", tc.kind, tc.name)
	}
}

func TestTicketPDF(t *testing.T) {
	name := "Express 101"
	b := sampleBooking()
	b.Name = &name
	pdf, err := TicketPDF(model.BookingView{Booking: b, UserName: "Alice"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
}
