package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/iliyamo/travel-booking/internal/artifact"
	"github.com/iliyamo/travel-booking/internal/export"
	"github.com/iliyamo/travel-booking/internal/service"
)

// BookingHandler serves the booking endpoints for owners and admins.
type BookingHandler struct {
	Bookings *service.BookingService
	Log      zerolog.Logger
}

func NewBookingHandler(bookings *service.BookingService, log zerolog.Logger) *BookingHandler {
	return &BookingHandler{Bookings: bookings, Log: log}
}

// Create books a trip for the caller.
func (h *BookingHandler) Create(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return fail(c, h.Log, err)
	}
	var in service.CreateBookingInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	v, err := h.Bookings.Create(ctx, id, in)
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Booking created successfully", "booking": v})
}

// List returns the caller's bookings, or all bookings for an admin.
func (h *BookingHandler) List(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return fail(c, h.Log, err)
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	list, err := h.Bookings.List(ctx, id)
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *BookingHandler) Get(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return fail(c, h.Log, err)
	}
	bid, ok := bookingID(c)
	if !ok {
		return notFound(c)
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	v, err := h.Bookings.Get(ctx, id, bid)
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, v)
}

// Ticket renders the PDF e-ticket for a booking.
func (h *BookingHandler) Ticket(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return fail(c, h.Log, err)
	}
	bid, ok := bookingID(c)
	if !ok {
		return notFound(c)
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	v, err := h.Bookings.Get(ctx, id, bid)
	if err != nil {
		return fail(c, h.Log, err)
	}
	pdf, err := artifact.TicketPDF(v)
	if err != nil {
		return fail(c, h.Log, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("inline; filename=ticket_%d.pdf", v.ID))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

// UploadPayment accepts a payment-proof image in the multipart field "file".
func (h *BookingHandler) UploadPayment(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return fail(c, h.Log, err)
	}
	bid, ok := bookingID(c)
	if !ok {
		return notFound(c)
	}

	var (
		filename string
		body     io.Reader
	)
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return fail(c, h.Log, fmt.Errorf("open upload: %w", err))
		}
		defer f.Close()
		filename, body = fh.Filename, f
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	url, err := h.Bookings.AttachPaymentProof(ctx, id, bid, filename, body)
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Payment proof uploaded successfully", "payment_url": url})
}

type verifyReq struct {
	Action string `json:"action"`
}

// Verify approves or rejects a booking (admin only).
func (h *BookingHandler) Verify(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return fail(c, h.Log, err)
	}
	bid, ok := bookingID(c)
	if !ok {
		return notFound(c)
	}
	var req verifyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	msg, err := h.Bookings.Verify(ctx, id, bid, req.Action)
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": msg})
}

// Export downloads every booking as an XLSX workbook (admin only).
func (h *BookingHandler) Export(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return fail(c, h.Log, err)
	}
	if err := service.AuthorizeAdmin(id); err != nil {
		return fail(c, h.Log, err)
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	list, err := h.Bookings.List(ctx, id)
	if err != nil {
		return fail(c, h.Log, err)
	}
	data, err := export.BookingsXLSX(list)
	if err != nil {
		return fail(c, h.Log, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=bookings.xlsx")
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
