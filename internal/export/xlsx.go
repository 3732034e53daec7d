// Package export renders booking lists as spreadsheets for administrators.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/iliyamo/travel-booking/internal/model"
)

const sheetName = "Bookings"

var headers = []string{
	"ID", "Owner", "Owner Email", "Transport", "Name", "From", "To", "Date",
	"Passenger", "Phone", "Email", "Seat", "Fare", "Status", "Payment Proof", "Created At",
}

// BookingsXLSX writes one row per booking below a bold header row.
func BookingsXLSX(list []model.BookingView) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, h)
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(headers), 1)
		_ = f.SetCellStyle(sheetName, "A1", last, style)
	}

	for r, v := range list {
		row := []any{
			v.ID, v.UserName, v.UserEmail, v.TransportType, deref(v.Name), v.FromPlace, v.ToPlace,
			v.Date, v.PassengerName, v.Phone, v.Email, v.SeatNo, v.Fare, v.Status,
			deref(v.PaymentProofURL), v.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		}
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", r+2, err)
		}
	}
	_ = f.SetColWidth(sheetName, "A", "P", 18)

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
