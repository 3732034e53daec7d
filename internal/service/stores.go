package service

import (
	"context"
	"io"

	"github.com/iliyamo/travel-booking/internal/model"
	"github.com/iliyamo/travel-booking/internal/queue"
)

// UserStore is the credential store.  Implementations return
// repository.ErrNotFound for unknown users and repository.ErrEmailExists
// on a duplicate email.
type UserStore interface {
	Create(ctx context.Context, u model.User) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	CountByRole(ctx context.Context, role string) (int, error)
}

// BookingStore is the booking store.  GetByID returns
// repository.ErrNotFound for unknown ids.
type BookingStore interface {
	Create(ctx context.Context, b model.Booking) (uint64, error)
	GetByID(ctx context.Context, id uint64) (model.BookingView, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.BookingView, error)
	ListAll(ctx context.Context) ([]model.BookingView, error)
	UpdateStatus(ctx context.Context, id uint64, status string) error
	UpdatePaymentProof(ctx context.Context, id uint64, url string) error
	SetQRCode(ctx context.Context, id uint64, url string) error
}

// Artifacts writes ticket and payment-proof files and returns the public
// URL each one is served under.
type Artifacts interface {
	SaveTicketQR(bookingID uint64, payload string) (string, error)
	SavePaymentProof(bookingID uint64, ext string, r io.Reader) (string, error)
}

// EventPublisher delivers booking lifecycle events.  Failures are logged
// by the caller and never fail the request.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.BookingEvent) error
}
