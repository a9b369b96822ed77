package mailer

import (
	"errors"
	"strings"
	"testing"

	mailtpl "github.com/oksasatya/roundup-savings/pkg/mailer/templates"
)

func TestCompose(t *testing.T) {
	tests := []struct {
		name    string
		job     EmailJob
		wantErr bool
		subject string
	}{
		{name: "missing recipient", job: EmailJob{Subject: "s", Text: "t"}, wantErr: true},
		{name: "raw body", job: EmailJob{To: "a@example.com", Subject: "hello", Text: "t"}, subject: "hello"},
		{name: "raw without body", job: EmailJob{To: "a@example.com", Subject: "hello"}, wantErr: true},
		{name: "unknown template", job: EmailJob{To: "a@example.com", Template: "universal"}, wantErr: true},
		{
			name:    "template fills recipient",
			job:     EmailJob{To: "a@example.com", Template: mailtpl.Welcome, Data: map[string]any{"Name": "Sam"}},
			subject: "Welcome to Round-up Savings, Sam",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject, text, _, err := Compose(tt.job)
			if tt.wantErr {
				if !errors.Is(err, ErrBadJob) {
					t.Fatalf("expected ErrBadJob, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("compose: %v", err)
			}
			if subject != tt.subject {
				t.Fatalf("expected subject %q, got %q", tt.subject, subject)
			}
			if tt.job.Template != "" && !strings.Contains(text, "a@example.com") {
				t.Fatalf("expected recipient in body, got:\n%s", text)
			}
		})
	}
}
