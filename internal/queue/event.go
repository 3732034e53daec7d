// Package queue defines booking lifecycle events and moves them over
// RabbitMQ.
package queue

import "time"

// Event types.
const (
	EventBookingCreated  = "booking.created"
	EventPaymentUploaded = "booking.payment_uploaded"
	EventBookingVerified = "booking.verified"
)

// BookingEvent is published after each lifecycle step.  It carries enough
// for downstream consumers to log or notify without querying the database.
type BookingEvent struct {
	Type       string    `json:"type"`
	BookingID  uint64    `json:"booking_id"`
	UserID     uint64    `json:"user_id"`
	ActorID    uint64    `json:"actor_id"`
	Status     string    `json:"status"`
	FromPlace  string    `json:"from_place,omitempty"`
	ToPlace    string    `json:"to_place,omitempty"`
	Date       string    `json:"date,omitempty"`
	Fare       float64   `json:"fare,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
