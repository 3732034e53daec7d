package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/iliyamo/travel-booking/internal/model"
)

// MemoryStore keeps users and bookings in process.  It backs
// DB_DRIVER=memory and the service and handler tests.  Users and
// Bookings share one lock so booking reads can join the owner.
type MemoryStore struct {
	mu          sync.RWMutex
	users       map[uint64]model.User
	bookings    map[uint64]model.Booking
	nextUserID  uint64
	nextBooking uint64
	Users       *MemoryUserRepo
	Bookings    *MemoryBookingRepo
}

type MemoryUserRepo struct{ s *MemoryStore }

type MemoryBookingRepo struct{ s *MemoryStore }

func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		users:    make(map[uint64]model.User),
		bookings: make(map[uint64]model.Booking),
	}
	s.Users = &MemoryUserRepo{s: s}
	s.Bookings = &MemoryBookingRepo{s: s}
	return s
}

func (r *MemoryUserRepo) Create(_ context.Context, u model.User) (uint64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u.Email = normalizeEmail(u.Email)
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return 0, ErrEmailExists
		}
	}
	r.s.nextUserID++
	u.ID = r.s.nextUserID
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	r.s.users[u.ID] = u
	return u.ID, nil
}

func (r *MemoryUserRepo) GetByEmail(_ context.Context, email string) (model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	email = normalizeEmail(email)
	for _, u := range r.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, ErrNotFound
}

func (r *MemoryUserRepo) GetByID(_ context.Context, id uint64) (model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return model.User{}, ErrNotFound
	}
	return u, nil
}

func (r *MemoryUserRepo) CountByRole(_ context.Context, role string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, u := range r.s.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (r *MemoryBookingRepo) Create(_ context.Context, b model.Booking) (uint64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[b.UserID]; !ok {
		return 0, ErrNotFound
	}
	r.s.nextBooking++
	b.ID = r.s.nextBooking
	if b.Status == "" {
		b.Status = model.StatusPendingVerification
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	r.s.bookings[b.ID] = b
	return b.ID, nil
}

func (r *MemoryBookingRepo) GetByID(_ context.Context, id uint64) (model.BookingView, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	b, ok := r.s.bookings[id]
	if !ok {
		return model.BookingView{}, ErrNotFound
	}
	return r.view(b), nil
}

func (r *MemoryBookingRepo) ListByUser(_ context.Context, userID uint64) ([]model.BookingView, error) {
	return r.collect(func(b model.Booking) bool { return b.UserID == userID }), nil
}

func (r *MemoryBookingRepo) ListAll(_ context.Context) ([]model.BookingView, error) {
	return r.collect(func(model.Booking) bool { return true }), nil
}

func (r *MemoryBookingRepo) UpdateStatus(_ context.Context, id uint64, status string) error {
	return r.update(id, func(b *model.Booking) { b.Status = status })
}

func (r *MemoryBookingRepo) UpdatePaymentProof(_ context.Context, id uint64, url string) error {
	return r.update(id, func(b *model.Booking) { b.PaymentProofURL = &url })
}

func (r *MemoryBookingRepo) SetQRCode(_ context.Context, id uint64, url string) error {
	return r.update(id, func(b *model.Booking) {
		if b.QRCodeURL == nil {
			b.QRCodeURL = &url
		}
	})
}

func (r *MemoryBookingRepo) update(id uint64, fn func(*model.Booking)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bookings[id]
	if !ok {
		return nil
	}
	fn(&b)
	r.s.bookings[id] = b
	return nil
}

func (r *MemoryBookingRepo) collect(keep func(model.Booking) bool) []model.BookingView {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]model.BookingView, 0)
	for _, b := range r.s.bookings {
		if keep(b) {
			out = append(out, r.view(b))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

// view must be called with the lock held.
func (r *MemoryBookingRepo) view(b model.Booking) model.BookingView {
	owner := r.s.users[b.UserID]
	return model.BookingView{Booking: b, UserName: owner.Name, UserEmail: owner.Email}
}
