package application

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/oksasatya/roundup-savings/internal/domain"
	"github.com/oksasatya/roundup-savings/internal/domain/entity"
	"github.com/oksasatya/roundup-savings/internal/domain/repository"
	"github.com/oksasatya/roundup-savings/internal/infrastructure/memory"
	"github.com/oksasatya/roundup-savings/pkg/mailer"
)

type fakePublisher struct {
	mu   sync.Mutex
	jobs []mailer.EmailJob
	err  error
}

func (p *fakePublisher) PublishJSON(_ context.Context, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	if job, ok := body.(mailer.EmailJob); ok {
		p.jobs = append(p.jobs, job)
	}
	return nil
}

type fakeIndexer struct {
	mu   sync.Mutex
	docs []entity.Transaction
	err  error
}

func (f *fakeIndexer) IndexTransaction(_ context.Context, t entity.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.docs = append(f.docs, t)
	return nil
}

type fakeUploader struct {
	path        string
	contentType string
	body        []byte
}

func (f *fakeUploader) Upload(_ context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", err
	}
	f.path, f.contentType, f.body = objectPath, contentType, buf.Bytes()
	return "https://storage.test/" + objectPath, nil
}

// brokenLedger fails every write the way an unreachable database would.
type brokenLedger struct {
	repository.LedgerRepository
}

func (brokenLedger) PostTransaction(context.Context, repository.PostParams) (*entity.Transaction, error) {
	return nil, domain.Persistence("begin", errors.New("connection refused"))
}

func seedUser(t *testing.T, s *memory.Store, email string) *entity.User {
	t.Helper()
	u := &entity.User{Email: email, Name: "Amina", PasswordHash: "x", Currency: "MAD"}
	if err := s.Users().Create(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}
