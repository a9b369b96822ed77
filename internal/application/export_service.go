package application

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"path"

	"github.com/google/uuid"

	"github.com/oksasatya/roundup-savings/internal/domain/repository"
)

// ErrExportUnavailable means no object storage is configured.
var ErrExportUnavailable = errors.New("statement export is not configured")

const statementRows = 10000

// ExportService writes a user's ledger as CSV to object storage.
type ExportService struct {
	Ledger   repository.LedgerRepository
	Users    repository.UserRepository
	Uploader ObjectUploader
	NewID    func() string
}

func NewExportService(ledger repository.LedgerRepository, users repository.UserRepository, up ObjectUploader) *ExportService {
	return &ExportService{Ledger: ledger, Users: users, Uploader: up, NewID: uuid.NewString}
}

// ExportStatement uploads statements/<uid>/<id>.csv, newest rows first, and
// returns its URL.
func (s *ExportService) ExportStatement(ctx context.Context, userID string) (string, error) {
	if s.Uploader == nil {
		return "", ErrExportUnavailable
	}
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	txns, err := s.Ledger.ListTransactionsByUser(ctx, userID, statementRows)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"id", "created_at", "description", "amount", "applied_rounding", "saved_amount", "currency"})
	for _, t := range txns {
		_ = w.Write([]string{
			t.ID,
			t.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
			t.Description,
			t.Amount.StringFixed(2),
			t.AppliedRounding.StringFixed(2),
			t.SavedAmount.StringFixed(2),
			u.Currency,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	object := path.Join("statements", userID, s.NewID()+".csv")
	return s.Uploader.Upload(ctx, object, "text/csv", &buf)
}
