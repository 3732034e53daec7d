// Package artifact writes and serves the files referenced from bookings:
// QR ticket images, uploaded payment proofs and the PDF e-ticket.
package artifact

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Artifact kinds, used as sub-directories and URL segments.
const (
	KindQRCodes  = "qr_codes"
	KindPayments = "payments"
)

// ErrNotFound is returned by Resolve for unknown kinds, unsafe names and
// missing files.
var ErrNotFound = errors.New("artifact not found")

// FileStore keeps artifacts under Root/<kind>/ and exposes them under
// URLPrefix/<kind>/<name>.
type FileStore struct {
	Root      string
	URLPrefix string
}

// NewFileStore creates the kind directories under root.
func NewFileStore(root, urlPrefix string) (*FileStore, error) {
	for _, kind := range []string{KindQRCodes, KindPayments} {
		if err := os.MkdirAll(filepath.Join(root, kind), 0o755); err != nil {
			return nil, fmt.Errorf("create %s dir: %w", kind, err)
		}
	}
	return &FileStore{Root: root, URLPrefix: strings.TrimRight(urlPrefix, "/")}, nil
}

// SaveTicketQR renders payload as a QR PNG named booking_<id>.png.
func (s *FileStore) SaveTicketQR(bookingID uint64, payload string) (string, error) {
	png, err := QRPNG(payload)
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("booking_%d.png", bookingID)
	if err := os.WriteFile(filepath.Join(s.Root, KindQRCodes, name), png, 0o644); err != nil {
		return "", fmt.Errorf("write qr: %w", err)
	}
	return s.url(KindQRCodes, name), nil
}

// SavePaymentProof copies r to payment_<id>_<uuid>.<ext>.  Every upload
// gets a fresh name so a replaced proof never shadows a cached one.
func (s *FileStore) SavePaymentProof(bookingID uint64, ext string, r io.Reader) (string, error) {
	name := fmt.Sprintf("payment_%d_%s.%s", bookingID, uuid.NewString(), ext)
	path := filepath.Join(s.Root, KindPayments, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create proof file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write proof file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close proof file: %w", err)
	}
	return s.url(KindPayments, name), nil
}

// Resolve maps a kind and file name from a request path to a file on disk.
func (s *FileStore) Resolve(kind, name string) (string, error) {
	if kind != KindQRCodes && kind != KindPayments {
		return "", ErrNotFound
	}
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", ErrNotFound
	}
	path := filepath.Join(s.Root, kind, name)
	st, err := os.Stat(path)
	if err != nil || st.IsDir() {
		return "", ErrNotFound
	}
	return path, nil
}

func (s *FileStore) url(kind, name string) string {
	return s.URLPrefix + "/" + kind + "/" + name
}
