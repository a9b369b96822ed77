package application

import (
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"github.com/oksasatya/roundup-savings/internal/domain"
	"github.com/oksasatya/roundup-savings/internal/infrastructure/memory"
)

func TestExportStatement(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	u := seedUser(t, store, "amina@example.com")
	posting := NewPostingService(store.Ledger(), store.Users(), nil)
	for _, amt := range []string{"7.30", "2.50"} {
		if _, err := posting.Post(ctx, u.ID, dec(amt), "item, with comma"); err != nil {
			t.Fatalf("post: %v", err)
		}
	}

	up := &fakeUploader{}
	svc := NewExportService(store.Ledger(), store.Users(), up)
	svc.NewID = func() string { return "fixed" }

	url, err := svc.ExportStatement(ctx, u.ID)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	wantPath := "statements/" + u.ID + "/fixed.csv"
	if up.path != wantPath || url != "https://storage.test/"+wantPath || up.contentType != "text/csv" {
		t.Fatalf("unexpected upload %q %q %q", up.path, url, up.contentType)
	}

	rows, err := csv.NewReader(strings.NewReader(string(up.body))).ReadAll()
	if err != nil {
		t.Fatalf("csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[1][2] != "item, with comma" || rows[1][3] != "2.50" || rows[1][5] != "0.50" || rows[1][6] != "MAD" {
		t.Fatalf("unexpected newest row: %v", rows[1])
	}
}

func TestExportStatementErrors(t *testing.T) {
	store := memory.New()
	if _, err := NewExportService(store.Ledger(), store.Users(), nil).ExportStatement(context.Background(), "u"); !errors.Is(err, ErrExportUnavailable) {
		t.Fatalf("expected ErrExportUnavailable, got %v", err)
	}
	if _, err := NewExportService(store.Ledger(), store.Users(), &fakeUploader{}).ExportStatement(context.Background(), "missing"); !errors.Is(err, domain.ErrUnknownUser) {
		t.Fatalf("expected ErrUnknownUser, got %v", err)
	}
}
