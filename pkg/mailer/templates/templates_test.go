package templates

import (
	"strings"
	"testing"
	"time"
)

func TestRenderRoundupReceipt(t *testing.T) {
	b := Brand{CompanyName: "Dirham Smart", AppName: "roundup", DashboardURL: "http://localhost/dashboard"}
	data := NewRoundupReceiptData(b, "Amina", "amina@example.com",
		WithReceipt("Coffee <large>", "7.30", "8.00", "0.70", "12.40", "MAD"),
		WithTime(time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)),
	)

	subject, text, html, err := Render(RoundupReceipt, data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := "You saved 0.70 MAD on Coffee <large>"; subject != want {
		t.Fatalf("expected subject %q, got %q", want, subject)
	}
	if !strings.Contains(text, "Total saved so far: 12.40 MAD") {
		t.Fatalf("text body missing total:\n%s", text)
	}
	if strings.Contains(html, "<large>") || !strings.Contains(html, "Coffee &lt;large&gt;") {
		t.Fatalf("html body must escape the description:\n%s", html)
	}
}

func TestRenderWelcomeDefaults(t *testing.T) {
	subject, _, _, err := Render(Welcome, NewWelcomeData(Brand{}, "", "x@example.com"))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := "Welcome to Round-up Savings, there"; subject != want {
		t.Fatalf("expected %q, got %q", want, subject)
	}
}

func TestKnown(t *testing.T) {
	if !Known(Welcome) || !Known(RoundupReceipt) || Known("universal") {
		t.Fatalf("unexpected template registry")
	}
}
