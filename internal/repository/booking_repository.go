package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/travel-booking/internal/model"
)

// BookingRepo persists rows of the bookings table.  Reads always join the
// owner so callers get a BookingView with the owner's name and email.
type BookingRepo struct{ DB *sql.DB }

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{DB: db} }

const bookingSelect = `SELECT b.id, b.user_id, b.transport_type, b.name, b.from_place, b.to_place,
	b.date, b.passenger_name, b.phone, b.email, b.seat_no, b.fare, b.status,
	b.payment_proof_url, b.qr_code_url, b.created_at, u.name, u.email
	FROM bookings b JOIN users u ON u.id = b.user_id`

// Create inserts a booking and returns its ID.  Status defaults to
// PendingVerification when empty.
func (r *BookingRepo) Create(ctx context.Context, b model.Booking) (uint64, error) {
	if b.Status == "" {
		b.Status = model.StatusPendingVerification
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO bookings (user_id, transport_type, name, from_place, to_place, date,
		passenger_name, phone, email, seat_no, fare, status, payment_proof_url, qr_code_url, created_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		b.UserID, b.TransportType, b.Name, b.FromPlace, b.ToPlace, b.Date,
		b.PassengerName, b.Phone, b.Email, b.SeatNo, b.Fare, b.Status,
		b.PaymentProofURL, b.QRCodeURL, b.CreatedAt)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID returns a single booking with its owner details.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (model.BookingView, error) {
	row := r.DB.QueryRowContext(ctx, bookingSelect+" WHERE b.id=? LIMIT 1", id)
	v, err := scanBooking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.BookingView{}, ErrNotFound
	}
	return v, err
}

// ListByUser returns the user's bookings, newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.BookingView, error) {
	return r.list(ctx, bookingSelect+" WHERE b.user_id=? ORDER BY b.created_at DESC, b.id DESC", userID)
}

// ListAll returns every booking, newest first.
func (r *BookingRepo) ListAll(ctx context.Context) ([]model.BookingView, error) {
	return r.list(ctx, bookingSelect+" ORDER BY b.created_at DESC, b.id DESC")
}

// UpdateStatus overwrites the status column.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE bookings SET status=? WHERE id=?", status, id)
	return err
}

// UpdatePaymentProof overwrites the payment proof URL.
func (r *BookingRepo) UpdatePaymentProof(ctx context.Context, id uint64, url string) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE bookings SET payment_proof_url=? WHERE id=?", url, id)
	return err
}

// SetQRCode records the ticket QR URL.  It only writes when no URL is set
// yet, so a ticket reference cannot be replaced once issued.
func (r *BookingRepo) SetQRCode(ctx context.Context, id uint64, url string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE bookings SET qr_code_url=? WHERE id=? AND qr_code_url IS NULL", url, id)
	return err
}

func (r *BookingRepo) list(ctx context.Context, query string, args ...any) ([]model.BookingView, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.BookingView, 0)
	for rows.Next() {
		v, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBooking(s scanner) (model.BookingView, error) {
	var (
		v       model.BookingView
		name    sql.NullString
		payment sql.NullString
		qr      sql.NullString
	)
	err := s.Scan(&v.ID, &v.UserID, &v.TransportType, &name, &v.FromPlace, &v.ToPlace,
		&v.Date, &v.PassengerName, &v.Phone, &v.Email, &v.SeatNo, &v.Fare, &v.Status,
		&payment, &qr, &v.CreatedAt, &v.UserName, &v.UserEmail)
	if err != nil {
		return model.BookingView{}, err
	}
	v.Name = nullable(name)
	v.PaymentProofURL = nullable(payment)
	v.QRCodeURL = nullable(qr)
	return v, nil
}

func nullable(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
