package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/iliyamo/travel-booking/internal/model"
)

func TestBookingsXLSX(t *testing.T) {
	proof := "/api/uploads/payments/p.png"
	list := []model.BookingView{
		{
			Booking: model.Booking{
				ID: 2, UserID: 5, TransportType: "bus", FromPlace: "A", ToPlace: "B", Date: "2025-01-02",
				PassengerName: "Alice", Phone: "1", Email: "a@x.io", SeatNo: "7", Fare: 750,
				Status: model.StatusConfirmed, PaymentProofURL: &proof,
				CreatedAt: time.Date(2025, 1, 1, 9, 30, 0, 0, time.UTC),
			},
			UserName: "Alice", UserEmail: "alice@x.io",
		},
	}
	data, err := BookingsXLSX(list)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, headers, rows[0])
	assert.Equal(t, "2", rows[1][0])
	assert.Equal(t, "alice@x.io", rows[1][2])
	assert.Equal(t, "", rows[1][4])
	assert.Equal(t, "Confirmed", rows[1][13])
	assert.Equal(t, proof, rows[1][14])
	assert.Equal(t, "2025-01-01 09:30:00", rows[1][15])
}

func TestBookingsXLSXEmpty(t *testing.T) {
	data, err := BookingsXLSX(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
