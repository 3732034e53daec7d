package artifact

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/phpdave11/gofpdf"

	"github.com/iliyamo/travel-booking/internal/model"
)

// TicketPDF renders a one-page e-ticket with the booking details and its
// QR code.
func TicketPDF(v model.BookingView) ([]byte, error) {
	png, err := QRPNG(TicketPayload(v.Booking))
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("E-Ticket #%d", v.ID), false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking ID : %d", v.ID),
		"Status     : " + v.Status,
		"Transport  : " + v.TransportType,
		"From       : " + v.FromPlace,
		"To         : " + v.ToPlace,
		"Date       : " + v.Date,
		"Passenger  : " + v.PassengerName,
		"Seat       : " + v.SeatNo,
		"Fare       : INR " + strconv.FormatFloat(v.Fare, 'f', 2, 64),
	}
	if v.Name != nil && *v.Name != "" {
		lines = append(lines, "Service    : "+*v.Name)
	}
	for _, s := range lines {
		pdf.Cell(0, 7, pdf.UnicodeTranslatorFromDescriptor("")(s))
		pdf.Ln(7)
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(png))
	pdf.ImageOptions("qr", 140, 30, 50, 50, false, opts, 0, "")

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	if v.Status != model.StatusConfirmed {
		pdf.MultiCell(0, 6, "This ticket is valid only after the booking has been confirmed.", "", "", false)
	} else {
		pdf.MultiCell(0, 6, "Please present this ticket at boarding.", "", "", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render ticket pdf: %w", err)
	}
	return buf.Bytes(), nil
}
