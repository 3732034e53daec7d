package artifact

import (
	"fmt"
	"strconv"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/iliyamo/travel-booking/internal/model"
)

const qrSize = 290

// TicketPayload is the text encoded in a booking's QR ticket.  It depends
// only on the booking id and the submitted trip details.
func TicketPayload(b model.Booking) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Booking ID: %d\n", b.ID)
	fmt.Fprintf(&sb, "From: %s\n", b.FromPlace)
	fmt.Fprintf(&sb, "To: %s\n", b.ToPlace)
	fmt.Fprintf(&sb, "Date: %s\n", b.Date)
	fmt.Fprintf(&sb, "Passenger: %s\n", b.PassengerName)
	fmt.Fprintf(&sb, "Seat: %s\n", b.SeatNo)
	fmt.Fprintf(&sb, "Fare: ₹%s", strconv.FormatFloat(b.Fare, 'f', -1, 64))
	return sb.String()
}

// QRPNG encodes payload as a PNG image.
func QRPNG(payload string) ([]byte, error) {
	png, err := qrcode.Encode(payload, qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}
