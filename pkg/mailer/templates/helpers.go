package templates

import "time"

// Brand carries the product fields every email shows.
type Brand struct {
	CompanyName  string
	AppName      string
	SupportURL   string
	DashboardURL string
}

type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
	}
}

// WithReceipt fills the round-up lines; amounts are preformatted strings.
func WithReceipt(description, amount, rounded, saved, total, currency string) Option {
	return func(d *EmailData) {
		d.Description = description
		d.Amount = amount
		d.AppliedRounding = rounded
		d.SavedAmount = saved
		d.TotalSaved = total
		d.Currency = currency
	}
}

func NewBaseEmailData(b Brand, typ, name, email string, opts ...Option) EmailData {
	d := EmailData{
		Name:           name,
		Email:          email,
		RecipientEmail: email,
		Type:           typ,
		CompanyName:    b.CompanyName,
		AppName:        b.AppName,
		SupportURL:     b.SupportURL,
		DashboardURL:   b.DashboardURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewWelcomeData(b Brand, name, email string, opts ...Option) map[string]any {
	return ToMap(NewBaseEmailData(b, Welcome, name, email, opts...))
}

func NewRoundupReceiptData(b Brand, name, email string, opts ...Option) map[string]any {
	return ToMap(NewBaseEmailData(b, RoundupReceipt, name, email, opts...))
}
