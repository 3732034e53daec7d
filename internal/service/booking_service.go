package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/iliyamo/travel-booking/internal/artifact"
	"github.com/iliyamo/travel-booking/internal/metrics"
	"github.com/iliyamo/travel-booking/internal/model"
	"github.com/iliyamo/travel-booking/internal/queue"
	"github.com/iliyamo/travel-booking/internal/repository"
)

// Verify actions.
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// allowedProofExtensions lists the image types accepted as payment proof.
var allowedProofExtensions = map[string]bool{"png": true, "jpg": true, "jpeg": true, "gif": true}

// CreateBookingInput carries the fields submitted by the owner.  Text
// fields accept a JSON string or a bare number (a phone or seat sent as
// 12 is still present).  Fare is a pointer so an absent fare can be told
// apart from zero.
type CreateBookingInput struct {
	TransportType Text     `json:"transport_type"`
	Name          Text     `json:"name"`
	FromPlace     Text     `json:"from_place"`
	ToPlace       Text     `json:"to_place"`
	Date          Text     `json:"date"`
	PassengerName Text     `json:"passenger_name"`
	Phone         Text     `json:"phone"`
	Email         Text     `json:"email"`
	SeatNo        Text     `json:"seat_no"`
	Fare          *float64 `json:"fare"`
}

// Validate reports the first missing required field, in submission order.
func (in CreateBookingInput) Validate() error {
	required := []struct {
		name  string
		value Text
	}{
		{"transport_type", in.TransportType},
		{"from_place", in.FromPlace},
		{"to_place", in.ToPlace},
		{"date", in.Date},
		{"passenger_name", in.PassengerName},
		{"phone", in.Phone},
		{"email", in.Email},
		{"seat_no", in.SeatNo},
	}
	for _, f := range required {
		if f.value.trim() == "" {
			return newError(KindValidation, "missing field: %s", f.name)
		}
	}
	if in.Fare == nil {
		return newError(KindValidation, "missing field: fare")
	}
	if *in.Fare <= 0 {
		return newError(KindValidation, "fare must be greater than zero")
	}
	return nil
}

// BookingService implements the booking lifecycle.  Every operation takes
// the caller's Identity and applies the matching access predicate before
// touching the store.
type BookingService struct {
	Bookings  BookingStore
	Artifacts Artifacts
	Events    EventPublisher
	Log       zerolog.Logger
	Now       func() time.Time
}

func NewBookingService(bookings BookingStore, artifacts Artifacts, events EventPublisher, log zerolog.Logger) *BookingService {
	if events == nil {
		events = queue.NopPublisher{}
	}
	return &BookingService{Bookings: bookings, Artifacts: artifacts, Events: events, Log: log, Now: time.Now}
}

// Create persists a new booking in PendingVerification, renders its QR
// ticket and returns the stored record with the owner's details.
func (s *BookingService) Create(ctx context.Context, id Identity, in CreateBookingInput) (model.BookingView, error) {
	if err := in.Validate(); err != nil {
		return model.BookingView{}, err
	}
	b := model.Booking{
		UserID:        id.UserID,
		TransportType: in.TransportType.trim(),
		Name:          in.Name.optional(),
		FromPlace:     in.FromPlace.trim(),
		ToPlace:       in.ToPlace.trim(),
		Date:          in.Date.trim(),
		PassengerName: in.PassengerName.trim(),
		Phone:         in.Phone.trim(),
		Email:         in.Email.trim(),
		SeatNo:        in.SeatNo.trim(),
		Fare:          *in.Fare,
		Status:        model.StatusPendingVerification,
		CreatedAt:     s.now(),
	}
	bookingID, err := s.Bookings.Create(ctx, b)
	if err != nil {
		return model.BookingView{}, fmt.Errorf("create booking: %w", err)
	}
	b.ID = bookingID

	// The QR file is written before its URL is stored; a crash in between
	// leaves an orphaned PNG.
	qrURL, err := s.Artifacts.SaveTicketQR(bookingID, artifact.TicketPayload(b))
	if err != nil {
		return model.BookingView{}, fmt.Errorf("render ticket qr: %w", err)
	}
	if err := s.Bookings.SetQRCode(ctx, bookingID, qrURL); err != nil {
		return model.BookingView{}, fmt.Errorf("store ticket qr: %w", err)
	}

	view, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return model.BookingView{}, fmt.Errorf("reload booking: %w", err)
	}
	metrics.BookingCreated(view.TransportType)
	s.publish(ctx, queue.EventBookingCreated, view.Booking, id.UserID)
	s.Log.Info().Uint64("booking_id", bookingID).Uint64("user_id", id.UserID).Msg("booking created")
	return view, nil
}

// Get returns one booking to its owner or an admin.
func (s *BookingService) Get(ctx context.Context, id Identity, bookingID uint64) (model.BookingView, error) {
	v, err := s.load(ctx, bookingID)
	if err != nil {
		return model.BookingView{}, err
	}
	if err := AuthorizeSelfOrAdmin(id, v.UserID); err != nil {
		return model.BookingView{}, err
	}
	return v, nil
}

// List returns every booking for admins and the caller's own bookings
// otherwise, newest first.
func (s *BookingService) List(ctx context.Context, id Identity) ([]model.BookingView, error) {
	var (
		list []model.BookingView
		err  error
	)
	if id.IsAdmin() {
		list, err = s.Bookings.ListAll(ctx)
	} else {
		list, err = s.Bookings.ListByUser(ctx, id.UserID)
	}
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return list, nil
}

// AttachPaymentProof stores an uploaded image for a pending booking and
// overwrites any earlier proof.  Only the owner may upload; the status is
// left for an admin to change.
func (s *BookingService) AttachPaymentProof(ctx context.Context, id Identity, bookingID uint64, filename string, r io.Reader) (string, error) {
	v, err := s.load(ctx, bookingID)
	if err != nil {
		return "", err
	}
	if v.UserID != id.UserID {
		return "", newError(KindForbidden, "access denied")
	}
	if r == nil {
		return "", newError(KindValidation, "no file provided")
	}
	if strings.TrimSpace(filename) == "" {
		return "", newError(KindValidation, "no file selected")
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if !allowedProofExtensions[ext] {
		return "", newError(KindValidation, "invalid file type")
	}
	if model.IsTerminal(v.Status) {
		return "", newError(KindConflict, "booking is already %s", v.Status)
	}

	url, err := s.Artifacts.SavePaymentProof(bookingID, ext, r)
	if err != nil {
		return "", fmt.Errorf("save payment proof: %w", err)
	}
	if err := s.Bookings.UpdatePaymentProof(ctx, bookingID, url); err != nil {
		return "", fmt.Errorf("store payment proof: %w", err)
	}
	metrics.PaymentProofUploaded()
	s.publish(ctx, queue.EventPaymentUploaded, v.Booking, id.UserID)
	s.Log.Info().Uint64("booking_id", bookingID).Str("url", url).Msg("payment proof uploaded")
	return url, nil
}

// Verify moves a booking to Confirmed or Rejected.  Terminal bookings may
// be verified again; the new action overwrites the status.
func (s *BookingService) Verify(ctx context.Context, id Identity, bookingID uint64, action string) (string, error) {
	if err := AuthorizeAdmin(id); err != nil {
		return "", err
	}
	var status, message string
	switch action {
	case ActionApprove:
		status, message = model.StatusConfirmed, "Booking approved successfully"
	case ActionReject:
		status, message = model.StatusRejected, "Booking rejected"
	default:
		return "", newError(KindValidation, "invalid action")
	}
	v, err := s.load(ctx, bookingID)
	if err != nil {
		return "", err
	}
	if err := s.Bookings.UpdateStatus(ctx, bookingID, status); err != nil {
		return "", fmt.Errorf("update status: %w", err)
	}
	metrics.BookingVerified(action)
	prev := v.Status
	v.Status = status
	s.publish(ctx, queue.EventBookingVerified, v.Booking, id.UserID)
	s.Log.Info().Uint64("booking_id", bookingID).Uint64("admin_id", id.UserID).
		Str("from", prev).Str("status", status).Msg("booking verified")
	return message, nil
}

func (s *BookingService) load(ctx context.Context, bookingID uint64) (model.BookingView, error) {
	v, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.BookingView{}, newError(KindNotFound, "booking not found")
		}
		return model.BookingView{}, fmt.Errorf("load booking: %w", err)
	}
	return v, nil
}

func (s *BookingService) publish(ctx context.Context, typ string, b model.Booking, actorID uint64) {
	ev := queue.BookingEvent{
		Type:       typ,
		BookingID:  b.ID,
		UserID:     b.UserID,
		ActorID:    actorID,
		Status:     b.Status,
		FromPlace:  b.FromPlace,
		ToPlace:    b.ToPlace,
		Date:       b.Date,
		Fare:       b.Fare,
		OccurredAt: s.now(),
	}
	if err := s.Events.Publish(ctx, ev); err != nil {
		s.Log.Warn().Err(err).Str("event", typ).Uint64("booking_id", b.ID).Msg("publish booking event failed")
	}
}

func (s *BookingService) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}
