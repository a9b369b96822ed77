package mailer

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type recordingSender struct {
	to, subject, text, html string
	err                     error
}

func (r *recordingSender) Send(_ context.Context, to, subject, text, html string) error {
	r.to, r.subject, r.text, r.html = to, subject, text, html
	return r.err
}

func TestDeliverRendersTemplate(t *testing.T) {
	s := &recordingSender{}
	body := `{"to":"amina@example.com","template":"roundup_receipt","data":{"Name":"Amina","Description":"coffee","Amount":"7.30","AppliedRounding":"8.00","SavedAmount":"0.70","TotalSaved":"0.70","Currency":"MAD"}}`
	if err := Deliver(context.Background(), s, []byte(body)); err != nil {
		t.Fatalf("deliver: %v", err)
	}
	if s.to != "amina@example.com" {
		t.Fatalf("unexpected recipient %q", s.to)
	}
	if !strings.Contains(s.subject, "0.70 MAD") || !strings.Contains(s.subject, "coffee") {
		t.Fatalf("unexpected subject %q", s.subject)
	}
	if s.html == "" || s.text == "" {
		t.Fatalf("expected both bodies")
	}
}

func TestDeliverBadJobs(t *testing.T) {
	for _, body := range []string{
		`not json`,
		`{"template":"welcome"}`,
		`{"to":"a@example.com","template":"password_reset"}`,
		`{"to":"a@example.com"}`,
	} {
		s := &recordingSender{}
		err := Deliver(context.Background(), s, []byte(body))
		if !errors.Is(err, ErrBadJob) {
			t.Fatalf("%s: expected ErrBadJob, got %v", body, err)
		}
		if s.to != "" {
			t.Fatalf("%s: nothing should be sent", body)
		}
	}
}

func TestDeliverPropagatesSendFailure(t *testing.T) {
	boom := errors.New("mailgun down")
	s := &recordingSender{err: boom}
	err := Deliver(context.Background(), s, []byte(`{"to":"a@example.com","subject":"hi","text":"hello"}`))
	if !errors.Is(err, boom) || errors.Is(err, ErrBadJob) {
		t.Fatalf("expected retryable send error, got %v", err)
	}
}
