package model

import "time"

// Booking status values.  PendingVerification is the initial state;
// Confirmed and Rejected are terminal.
const (
	StatusPendingVerification = "PendingVerification"
	StatusConfirmed           = "Confirmed"
	StatusRejected            = "Rejected"
)

// Booking records a passenger's trip reservation.  The owner (UserID)
// is fixed at creation.  QRCodeURL is attached once right after the
// row is inserted; PaymentProofURL is written by the owner while the
// booking waits for verification.
type Booking struct {
	ID              uint64    `json:"id"`                // bookings.id
	UserID          uint64    `json:"user_id"`           // bookings.user_id
	TransportType   string    `json:"transport_type"`    // bookings.transport_type
	Name            *string   `json:"name"`              // bookings.name (nullable display name)
	FromPlace       string    `json:"from_place"`        // bookings.from_place
	ToPlace         string    `json:"to_place"`          // bookings.to_place
	Date            string    `json:"date"`              // bookings.date
	PassengerName   string    `json:"passenger_name"`    // bookings.passenger_name
	Phone           string    `json:"phone"`             // bookings.phone
	Email           string    `json:"email"`             // bookings.email
	SeatNo          string    `json:"seat_no"`           // bookings.seat_no
	Fare            float64   `json:"fare"`              // bookings.fare
	Status          string    `json:"status"`            // bookings.status
	PaymentProofURL *string   `json:"payment_proof_url"` // bookings.payment_proof_url (nullable)
	QRCodeURL       *string   `json:"qr_code_url"`       // bookings.qr_code_url (nullable)
	CreatedAt       time.Time `json:"created_at"`        // bookings.created_at
}

// BookingView is a booking joined with its owner's name and email.
type BookingView struct {
	Booking
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
}

// IsTerminal reports whether the status can no longer receive payment proofs.
func IsTerminal(status string) bool {
	return status == StatusConfirmed || status == StatusRejected
}
